package db

import (
	"errors"
	"strings"
	"testing"

	"github.com/katoyeung/data-node/internal/domain"
	"github.com/katoyeung/data-node/internal/domain/schema"
)

func TestBuildIndex(t *testing.T) {
	s := &schema.Schema{
		Name:        "idx",
		StorageType: "HASH",
		Prefixes:    []string{"doc:"},
		Fields:      []schema.Field{{Name: "title", Type: "TEXT", Sortable: true}},
	}

	drop, create, err := buildCommands(s)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	equalArgs(t, drop.Argv(), []string{"FT.DROPINDEX", "idx"})
	equalArgs(t, create.Argv(), []string{"FT.CREATE", "idx", "ON", "HASH", "PREFIX", "1", "doc:", "SCHEMA", "title", "TEXT", "SORTABLE"})
	if !strings.HasSuffix(strings.Join(create.Args, " "), "SCHEMA title TEXT SORTABLE") {
		t.Errorf("create args = %q", create.Args)
	}
}

func TestBuildIndex_FullOrder(t *testing.T) {
	s := &schema.Schema{
		Name:        "posts",
		StorageType: "json",
		Prefixes:    []string{"twitter:", "reddit:"},
		Language:    "chinese",
		Fields: []schema.Field{
			{Name: "$.title", Alias: "title", Type: "TEXT"},
			{Name: "$.post_timestamp", Alias: "post_timestamp", Type: "NUMERIC", Sortable: true},
			{Name: "$.source", Alias: "source", Type: "TAG"},
		},
	}

	_, create, err := buildCommands(s)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	equalArgs(t, create.Args, []string{
		"posts", "ON", "JSON",
		"PREFIX", "2", "twitter:", "reddit:",
		"LANGUAGE", "chinese",
		"SCHEMA",
		"$.title", "AS", "title", "TEXT",
		"$.post_timestamp", "AS", "post_timestamp", "NUMERIC", "SORTABLE",
		"$.source", "AS", "source", "TAG",
	})
}

func TestBuildIndex_WhitespacePrefixStaysIntact(t *testing.T) {
	s := &schema.Schema{
		Name: "idx", StorageType: "HASH", Prefixes: []string{"my source:"},
		Fields: []schema.Field{{Name: "post title", Type: "TEXT"}},
	}
	_, create, err := buildCommands(s)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if create.Args[5] != "my source:" || create.Args[7] != "post title" {
		t.Errorf("create args = %q", create.Args)
	}
}

func TestBuildIndex_Invalid(t *testing.T) {
	base := func() *schema.Schema {
		return &schema.Schema{
			Name: "idx", StorageType: "HASH", Prefixes: []string{"doc:"},
			Fields: []schema.Field{{Name: "title", Type: "TEXT"}},
		}
	}
	tests := []struct {
		name   string
		mutate func(*schema.Schema)
		want   string
	}{
		{"no name", func(s *schema.Schema) { s.Name = "" }, "index_name"},
		{"no storage", func(s *schema.Schema) { s.StorageType = "" }, "type"},
		{"no prefixes", func(s *schema.Schema) { s.Prefixes = nil }, "prefixes"},
		{"no fields", func(s *schema.Schema) { s.Fields = nil }, "schema"},
		{"duplicate", func(s *schema.Schema) {
			s.Fields = append(s.Fields, schema.Field{Name: "title", Type: "TAG"})
		}, "duplicate"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := base()
			tc.mutate(s)
			_, _, err := buildCommands(s)
			if !errors.Is(err, domain.ErrInvalidSchema) {
				t.Fatalf("expected ErrInvalidSchema, got %v", err)
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Errorf("error %q should mention %q", err, tc.want)
			}
		})
	}
}

func TestBuildIndex_DottedName(t *testing.T) {
	s := &schema.Schema{
		Name: "posts.v2", StorageType: "json", Prefixes: []string{"news:"},
		Fields: []schema.Field{{Name: "$.title", Alias: "title", Type: "TEXT"}},
	}
	drop, create, err := buildCommands(s)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	equalArgs(t, drop.Argv(), []string{"FT.DROPINDEX", "posts.v2"})
	if create.Args[0] != "posts.v2" {
		t.Errorf("create args = %q", create.Args)
	}
}

func TestIndexBuilder(t *testing.T) {
	idx, err := NewIndex("test-idx").
		Prefix("doc:").
		Field(IndexField{Name: "title", Type: "TEXT", Sortable: true}).
		Field(IndexField{Name: "category", Type: "TAG"}).
		Field(IndexField{Name: "price", Type: "NUMERIC"}).
		Build()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if idx.StorageType != StorageJSON {
		t.Errorf("storage = %q, want JSON", idx.StorageType)
	}
	if len(idx.Fields) != 3 {
		t.Fatalf("fields count = %d, want 3", len(idx.Fields))
	}
	want := "FT.CREATE test-idx ON JSON PREFIX 1 doc: SCHEMA title TEXT SORTABLE category TAG price NUMERIC"
	if idx.String() != want {
		t.Errorf("String() = %q, want %q", idx.String(), want)
	}
}

func TestIndexBuilder_BuildRejectsEmptyName(t *testing.T) {
	if _, err := NewIndex("").Build(); !errors.Is(err, domain.ErrInvalidSchema) {
		t.Fatalf("expected ErrInvalidSchema, got %v", err)
	}
}

func buildCommands(s *schema.Schema) (drop, create Command, err error) {
	def, err := BuildIndex(s)
	if err != nil {
		return Command{}, Command{}, err
	}
	drop, create = def.Commands()
	return drop, create, nil
}
