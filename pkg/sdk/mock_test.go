package datanode

import (
	"context"

	domdoc "github.com/katoyeung/data-node/internal/domain/document"
	"github.com/katoyeung/data-node/internal/domain/schema"
	"github.com/katoyeung/data-node/internal/domain/search/query"
	"github.com/katoyeung/data-node/internal/domain/search/result"
	healthuc "github.com/katoyeung/data-node/internal/usecase/health"
	indexuc "github.com/katoyeung/data-node/internal/usecase/index"
)

// --- documentUseCase mock ---

type mockDocumentUC struct {
	ingestFn func(ctx context.Context, doc domdoc.Document) (string, error)
	batchFn  func(ctx context.Context, docs []domdoc.Document) ([]string, error)
	deleteFn func(ctx context.Context, keys []string, source string) (int64, error)
}

func (m *mockDocumentUC) Ingest(ctx context.Context, doc domdoc.Document) (string, error) {
	return m.ingestFn(ctx, doc)
}

func (m *mockDocumentUC) IngestBatch(ctx context.Context, docs []domdoc.Document) ([]string, error) {
	return m.batchFn(ctx, docs)
}

func (m *mockDocumentUC) Delete(ctx context.Context, keys []string, source string) (int64, error) {
	return m.deleteFn(ctx, keys, source)
}

// --- searchUseCase mock ---

type mockSearchUC struct {
	fn func(ctx context.Context, q *query.Query) (result.Result, error)
}

func (m *mockSearchUC) Search(ctx context.Context, q *query.Query) (result.Result, error) {
	return m.fn(ctx, q)
}

// --- indexUseCase mock ---

type mockIndexUC struct {
	defineFn func(ctx context.Context, s *schema.Schema) (indexuc.Outcome, error)
	infoFn   func(ctx context.Context, name string) ([]any, error)
}

func (m *mockIndexUC) Define(ctx context.Context, s *schema.Schema) (indexuc.Outcome, error) {
	return m.defineFn(ctx, s)
}

func (m *mockIndexUC) Info(ctx context.Context, name string) ([]any, error) {
	return m.infoFn(ctx, name)
}

// --- statusUseCase / healthUseCase mocks ---

type mockStatusUC struct {
	info map[string]string
	err  error
}

func (m *mockStatusUC) Server(context.Context) (map[string]string, error) { return m.info, m.err }

type mockHealthUC struct{ status healthuc.Status }

func (m *mockHealthUC) Check(context.Context) healthuc.Report {
	return healthuc.Report{Status: m.status}
}
