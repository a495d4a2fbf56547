package format

import (
	"fmt"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/katoyeung/data-node/internal/domain/document"
)

// MsgpackParser accepts a MessagePack map or an array of maps.
type MsgpackParser struct{}

// Parse implements DocumentParser.
func (p *MsgpackParser) Parse(data []byte) (Payload, error) {
	var v any
	if err := msgpack.Unmarshal(data, &v); err != nil {
		return Payload{}, fmt.Errorf("%w: invalid MessagePack data: %w", ErrMalformedPayload, err)
	}

	switch t := v.(type) {
	case map[string]any:
		return Payload{Docs: []document.Document{t}}, nil
	case []any:
		docs := make([]document.Document, len(t))
		for i, e := range t {
			m, ok := e.(map[string]any)
			if !ok {
				return Payload{}, fmt.Errorf("%w: element %d is %T, not a map", ErrMalformedPayload, i, e)
			}
			docs[i] = m
		}
		return Payload{Docs: docs, Batch: true}, nil
	default:
		return Payload{}, fmt.Errorf("%w: expected a map or an array of maps, got %T", ErrMalformedPayload, v)
	}
}
