// Package schema describes an index definition submitted for (re)creation.
package schema

import (
	"fmt"
	"strings"

	"github.com/katoyeung/data-node/internal/domain"
)

// Field is one SCHEMA entry.
type Field struct {
	Name     string
	Alias    string // optional AS alias
	Type     string // TEXT, TAG, NUMERIC, GEO, ...
	Sortable bool
}

// Schema is an index definition.
type Schema struct {
	Name        string
	StorageType string // HASH or JSON
	Prefixes    []string
	Language    string
	Fields      []Field
}

// Validate checks required parts and names the first missing one.
func (s *Schema) Validate() error {
	switch {
	case strings.TrimSpace(s.Name) == "":
		return fmt.Errorf("%w: index_name is required", domain.ErrInvalidSchema)
	case strings.TrimSpace(s.StorageType) == "":
		return fmt.Errorf("%w: type is required", domain.ErrInvalidSchema)
	case len(s.Prefixes) == 0:
		return fmt.Errorf("%w: prefixes must not be empty", domain.ErrInvalidSchema)
	case len(s.Fields) == 0:
		return fmt.Errorf("%w: schema must not be empty", domain.ErrInvalidSchema)
	}

	for i, f := range s.Fields {
		if f.Name == "" {
			return fmt.Errorf("%w: schema[%d].field_name is required", domain.ErrInvalidSchema, i)
		}
		if f.Type == "" {
			return fmt.Errorf("%w: schema[%d].field_type is required for %q", domain.ErrInvalidSchema, i, f.Name)
		}
	}
	return nil
}
