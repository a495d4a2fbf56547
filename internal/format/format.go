// Package format decodes /add request bodies in the supported wire formats.
package format

import (
	"errors"
	"mime"
	"strings"

	"github.com/katoyeung/data-node/internal/domain/document"
)

// Content types accepted for ingestion.
const (
	ContentTypeJSON    = "application/json"
	ContentTypeNDJSON  = "application/x-ndjson"
	ContentTypeJSONL   = "application/jsonl"
	ContentTypeMsgpack = "application/msgpack"
	contentTypeXMsgpk  = "application/x-msgpack"
)

var (
	// ErrUnsupportedFormat is returned when the content type has no parser.
	ErrUnsupportedFormat = errors.New("unsupported format")
	// ErrMalformedPayload is returned when the body does not decode to documents.
	ErrMalformedPayload = errors.New("malformed payload")
)

// Payload is a decoded request body. Batch is false only for a lone JSON or
// msgpack object.
type Payload struct {
	Docs  []document.Document
	Batch bool
}

// DocumentParser parses documents from one wire format.
type DocumentParser interface {
	Parse(data []byte) (Payload, error)
}

// ParserFor returns the parser for a Content-Type header value. An empty
// header selects JSON.
func ParserFor(contentType string) (DocumentParser, error) {
	mt := ContentTypeJSON
	if strings.TrimSpace(contentType) != "" {
		parsed, _, err := mime.ParseMediaType(contentType)
		if err != nil {
			return nil, errors.Join(ErrUnsupportedFormat, err)
		}
		mt = parsed
	}

	switch mt {
	case ContentTypeJSON, "text/json":
		return &JSONParser{}, nil
	case ContentTypeNDJSON, ContentTypeJSONL:
		return &NDJSONParser{}, nil
	case ContentTypeMsgpack, contentTypeXMsgpk:
		return &MsgpackParser{}, nil
	default:
		return nil, ErrUnsupportedFormat
	}
}
