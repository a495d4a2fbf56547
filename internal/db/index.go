package db

import (
	"fmt"
	"strconv"

	"github.com/katoyeung/data-node/internal/domain"
	"github.com/katoyeung/data-node/internal/domain/schema"
)

// Storage types accepted by FT.CREATE ON.
const (
	StorageHash = "HASH"
	StorageJSON = "JSON"
)

// IndexField describes a single field in an FT index schema.
type IndexField struct {
	Name     string
	Alias    string // AS alias in FT.CREATE SCHEMA
	Type     string
	Sortable bool
}

// IndexDefinition is a complete FT index definition used by FT.CREATE.
type IndexDefinition struct {
	Name        string
	StorageType string
	Prefixes    []string
	Language    string
	Fields      []IndexField
}

// Validate checks that the index definition is well-formed.
func (idx *IndexDefinition) Validate() error {
	if idx.Name == "" {
		return fmt.Errorf("%w: index_name is required", domain.ErrInvalidSchema)
	}
	if idx.StorageType == "" {
		return fmt.Errorf("%w: type is required", domain.ErrInvalidSchema)
	}
	if len(idx.Prefixes) == 0 {
		return fmt.Errorf("%w: prefixes must not be empty", domain.ErrInvalidSchema)
	}
	if len(idx.Fields) == 0 {
		return fmt.Errorf("%w: schema must not be empty", domain.ErrInvalidSchema)
	}

	seen := make(map[string]bool)
	for i := range idx.Fields {
		f := &idx.Fields[i]
		if f.Name == "" {
			return fmt.Errorf("%w: field name is required at index %d", domain.ErrInvalidSchema, i)
		}
		if f.Type == "" {
			return fmt.Errorf("%w: field type is required for %q", domain.ErrInvalidSchema, f.Name)
		}
		key := f.Name
		if f.Alias != "" {
			key = f.Alias
		}
		if seen[key] {
			return fmt.Errorf("%w: duplicate field name: %s", domain.ErrInvalidSchema, key)
		}
		seen[key] = true
	}
	return nil
}

// CreateArgs returns the FT.CREATE arguments, in protocol order.
func (idx *IndexDefinition) CreateArgs() []string {
	args := make([]string, 0, 8+len(idx.Prefixes)+4*len(idx.Fields))
	args = append(args, idx.Name, "ON", idx.StorageType)

	args = append(args, "PREFIX", strconv.Itoa(len(idx.Prefixes)))
	args = append(args, idx.Prefixes...)

	if idx.Language != "" {
		args = append(args, "LANGUAGE", idx.Language)
	}

	args = append(args, "SCHEMA")
	for i := range idx.Fields {
		f := &idx.Fields[i]
		args = append(args, f.Name)
		if f.Alias != "" {
			args = append(args, "AS", f.Alias)
		}
		args = append(args, f.Type)
		if f.Sortable {
			args = append(args, "SORTABLE")
		}
	}
	return args
}

// BuildIndex validates s and returns its index definition. The index name is
// sent as a single argument, so any non-empty name is accepted.
func BuildIndex(s *schema.Schema) (*IndexDefinition, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	b := NewIndex(s.Name).On(s.StorageType).Prefix(s.Prefixes...).Language(s.Language)
	for _, f := range s.Fields {
		b.Field(IndexField{Name: f.Name, Alias: f.Alias, Type: f.Type, Sortable: f.Sortable})
	}
	return b.Build()
}

// Commands returns the drop-then-create pair that (re)defines the index.
func (idx *IndexDefinition) Commands() (drop, create Command) {
	return NewCommand(OpDropIndex, idx.Name), NewCommand(OpCreateIdx, idx.CreateArgs()...)
}
