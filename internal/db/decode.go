package db

import (
	"strings"

	"github.com/bytedance/sonic"

	"github.com/katoyeung/data-node/internal/db/reply"
	"github.com/katoyeung/data-node/internal/domain/document"
)

// DecodeSearchReply maps a positional FT.SEARCH reply to documents and the
// total hit count.
//
// Layout: [total, key1, fields1, key2, fields2, ...]. The JSON payload sits
// at payloadIndex inside each fields array. Elements that do not fit this
// layout are dropped; total is kept regardless.
func DecodeSearchReply(raw reply.Value, payloadIndex int) ([]document.Document, uint64) {
	items, ok := raw.Items()
	if !ok || len(items) == 0 {
		return []document.Document{}, 0
	}

	total := decodeTotal(items[0])
	if total == 0 {
		return []document.Document{}, 0
	}

	docs := make([]document.Document, 0, (len(items)-1)/2)
	for i := 2; i < len(items); i += 2 {
		doc, ok := decodePayload(items[i], payloadIndex)
		if !ok {
			continue
		}
		docs = append(docs, doc)
	}
	return docs, total
}

func decodeTotal(v reply.Value) uint64 {
	switch v.Kind() {
	case reply.Integer:
		n, _ := v.Int64()
		if n < 0 {
			return 0
		}
		return uint64(n)
	case reply.Absent, reply.Text, reply.List, reply.Status:
	}
	return 0
}

func decodePayload(fields reply.Value, payloadIndex int) (document.Document, bool) {
	if fields.Kind() != reply.List {
		return nil, false
	}
	s, ok := fields.At(payloadIndex).Str()
	if !ok {
		return nil, false
	}

	var doc document.Document
	if err := sonic.UnmarshalString(s, &doc); err != nil || doc == nil {
		return nil, false
	}
	return doc, true
}

// ParseInfo turns an INFO text block into a flat map. Comment lines (#) and
// blank lines are skipped; each line splits on its first colon.
func ParseInfo(text string) map[string]string {
	out := make(map[string]string)
	for line := range strings.SplitSeq(text, "\n") {
		line = strings.TrimRight(line, "\r")
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		k, v, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		out[k] = v
	}
	return out
}

// NormalizeIndexInfo flattens an FT.INFO reply into JSON-friendly values:
// Integer to int64, Text/Status to string, List to its string elements.
// Absent elements are omitted.
func NormalizeIndexInfo(raw reply.Value) []any {
	items, ok := raw.Items()
	if !ok {
		return []any{}
	}

	out := make([]any, 0, len(items))
	for _, v := range items {
		switch v.Kind() {
		case reply.Integer:
			n, _ := v.Int64()
			out = append(out, n)
		case reply.Text, reply.Status:
			s, _ := v.Str()
			out = append(out, s)
		case reply.List:
			out = append(out, listStrings(v))
		case reply.Absent:
			continue
		}
	}
	return out
}

func listStrings(v reply.Value) []string {
	items, _ := v.Items()
	out := make([]string, 0, len(items))
	for _, it := range items {
		if s, ok := it.Str(); ok {
			out = append(out, s)
		}
	}
	return out
}
