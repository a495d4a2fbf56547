package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/katoyeung/data-node/internal/domain/document"
)

func TestParserFor(t *testing.T) {
	tests := []struct {
		ct   string
		want DocumentParser
	}{
		{"", &JSONParser{}},
		{"application/json", &JSONParser{}},
		{"application/json; charset=utf-8", &JSONParser{}},
		{"application/x-ndjson", &NDJSONParser{}},
		{"application/jsonl", &NDJSONParser{}},
		{"application/msgpack", &MsgpackParser{}},
		{"application/x-msgpack", &MsgpackParser{}},
	}
	for _, tc := range tests {
		t.Run(tc.ct, func(t *testing.T) {
			p, err := ParserFor(tc.ct)
			require.NoError(t, err)
			assert.IsType(t, tc.want, p)
		})
	}

	_, err := ParserFor("text/csv")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
	_, err = ParserFor("not a media type;;")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestJSONParser(t *testing.T) {
	p := &JSONParser{}

	single, err := p.Parse([]byte(` {"source":"news","n":1} `))
	require.NoError(t, err)
	assert.False(t, single.Batch)
	assert.Equal(t, []document.Document{{"source": "news", "n": 1.0}}, single.Docs)

	batch, err := p.Parse([]byte(`[{"source":"a"},{"source":"b"}]`))
	require.NoError(t, err)
	assert.True(t, batch.Batch)
	assert.Len(t, batch.Docs, 2)

	for _, bad := range []string{"", "  ", "42", `"str"`, `{"broken"`, `[1,2]`} {
		_, err := p.Parse([]byte(bad))
		assert.ErrorIs(t, err, ErrMalformedPayload, "input %q", bad)
	}
}

func TestNDJSONParser(t *testing.T) {
	p := &NDJSONParser{}

	out, err := p.Parse([]byte("{\"source\":\"a\"}\n\n{\"source\":\"b\"}\r\n"))
	require.NoError(t, err)
	assert.True(t, out.Batch)
	require.Len(t, out.Docs, 2)
	assert.Equal(t, "b", out.Docs[1]["source"])

	_, err = p.Parse([]byte("{\"source\":\"a\"}\nnope\n"))
	assert.ErrorIs(t, err, ErrMalformedPayload)
	assert.Contains(t, err.Error(), "line 2")
}

func TestMsgpackParser(t *testing.T) {
	p := &MsgpackParser{}

	data, err := msgpack.Marshal([]map[string]any{{"source": "a", "n": 1}, {"source": "b"}})
	require.NoError(t, err)
	out, err := p.Parse(data)
	require.NoError(t, err)
	assert.True(t, out.Batch)
	require.Len(t, out.Docs, 2)
	assert.Equal(t, "a", out.Docs[0]["source"])

	data, err = msgpack.Marshal(map[string]any{"source": "solo"})
	require.NoError(t, err)
	out, err = p.Parse(data)
	require.NoError(t, err)
	assert.False(t, out.Batch)
	assert.Equal(t, "solo", out.Docs[0].Source())

	data, err = msgpack.Marshal([]any{"not a map"})
	require.NoError(t, err)
	_, err = p.Parse(data)
	assert.ErrorIs(t, err, ErrMalformedPayload)

	_, err = p.Parse([]byte{0xc1})
	assert.ErrorIs(t, err, ErrMalformedPayload)
}
