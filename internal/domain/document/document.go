// Package document assigns storage keys and ingestion timestamps to
// caller-supplied JSON documents.
package document

import (
	"maps"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/katoyeung/data-node/internal/domain"
)

// Fields owned by the gateway. They are overwritten on every ingest.
const (
	FieldSource    = "source"
	FieldKey       = "key"
	FieldCreatedAt = "created_at"
	FieldCreatedTS = "created_ts"
)

// Document is an arbitrary JSON object.
type Document map[string]any

// Source returns the trimmed source field, or "" when it is absent or not a string.
func (d Document) Source() string {
	s, ok := d[FieldSource].(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(s)
}

// KeyPrefix normalizes a source into the key prefix shared by its documents.
// Surrounding whitespace is dropped before inner spaces become underscores.
func KeyPrefix(source string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(source), " ", "_"))
}

// Encoder derives keys and enrichment fields.
type Encoder struct {
	now   func() time.Time
	newID func() string
}

// Option configures an Encoder.
type Option func(*Encoder)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(e *Encoder) { e.now = now }
}

// WithIDGenerator overrides the random key suffix generator.
func WithIDGenerator(gen func() string) Option {
	return func(e *Encoder) { e.newID = gen }
}

// NewEncoder creates an Encoder using the wall clock and random UUIDs.
func NewEncoder(opts ...Option) *Encoder {
	e := &Encoder{now: time.Now, newID: uuid.NewString}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Encode validates doc and returns its key plus an enriched copy.
// The input map is not modified.
func (e *Encoder) Encode(doc Document) (string, Document, error) {
	source := doc.Source()
	if source == "" {
		return "", nil, domain.ErrMissingSource
	}

	key := KeyPrefix(source) + ":" + e.newID()
	now := e.now().UTC()

	enriched := maps.Clone(doc)
	enriched[FieldKey] = key
	enriched[FieldCreatedAt] = now.Format(time.RFC3339)
	enriched[FieldCreatedTS] = now.Unix()

	return key, enriched, nil
}
