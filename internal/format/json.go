package format

import (
	"bufio"
	"bytes"
	"fmt"
	"strings"

	"github.com/bytedance/sonic"

	"github.com/katoyeung/data-node/internal/domain/document"
)

// JSONParser accepts a single JSON object or an array of objects.
type JSONParser struct{}

// Parse implements DocumentParser.
func (p *JSONParser) Parse(data []byte) (Payload, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return Payload{}, fmt.Errorf("%w: empty body", ErrMalformedPayload)
	}

	switch trimmed[0] {
	case '{':
		var doc document.Document
		if err := sonic.Unmarshal(trimmed, &doc); err != nil {
			return Payload{}, fmt.Errorf("%w: %w", ErrMalformedPayload, err)
		}
		return Payload{Docs: []document.Document{doc}}, nil
	case '[':
		var docs []document.Document
		if err := sonic.Unmarshal(trimmed, &docs); err != nil {
			return Payload{}, fmt.Errorf("%w: %w", ErrMalformedPayload, err)
		}
		return Payload{Docs: docs, Batch: true}, nil
	default:
		return Payload{}, fmt.Errorf("%w: expected a JSON object or array", ErrMalformedPayload)
	}
}

// NDJSONParser accepts one JSON object per line. Blank lines are skipped.
type NDJSONParser struct{}

// Parse implements DocumentParser.
func (p *NDJSONParser) Parse(data []byte) (Payload, error) {
	var docs []document.Document

	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}

		var doc document.Document
		if err := sonic.UnmarshalString(line, &doc); err != nil {
			return Payload{}, fmt.Errorf("%w: invalid JSON on line %d: %w", ErrMalformedPayload, lineNum, err)
		}
		docs = append(docs, doc)
	}

	if err := scanner.Err(); err != nil {
		return Payload{}, fmt.Errorf("error reading input: %w", err)
	}

	return Payload{Docs: docs, Batch: true}, nil
}
