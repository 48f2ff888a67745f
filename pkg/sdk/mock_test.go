package recdex

import (
	"context"

	"github.com/kailas-cloud/recdex/internal/db"
	dombatch "github.com/kailas-cloud/recdex/internal/domain/batch"
	domrec "github.com/kailas-cloud/recdex/internal/domain/record"
	"github.com/kailas-cloud/recdex/internal/domain/search/query"
	"github.com/kailas-cloud/recdex/internal/domain/search/request"
	"github.com/kailas-cloud/recdex/internal/domain/search/result"
	healthuc "github.com/kailas-cloud/recdex/internal/usecase/health"
)

// --- searchUseCase mock ---

type mockSearchUC struct {
	searchFn  func(ctx context.Context, userID int64, req *request.Request) (result.Page, error)
	explainFn func(req *request.Request) query.Search
}

func (m *mockSearchUC) Search(ctx context.Context, userID int64, req *request.Request) (result.Page, error) {
	return m.searchFn(ctx, userID, req)
}

func (m *mockSearchUC) Explain(req *request.Request) query.Search {
	return m.explainFn(req)
}

// --- ingestUseCase mock ---

type mockIngestUC struct {
	putFn    func(ctx context.Context, p domrec.Params) error
	ingestFn func(ctx context.Context, items []domrec.Params) []dombatch.Result
}

func (m *mockIngestUC) Put(ctx context.Context, p domrec.Params) error {
	return m.putFn(ctx, p)
}

func (m *mockIngestUC) Ingest(ctx context.Context, items []domrec.Params) []dombatch.Result {
	return m.ingestFn(ctx, items)
}

// --- indexManager mock ---

type mockIndex struct {
	name    string
	created bool
	err     error
	lastDef *db.IndexDefinition
}

func (m *mockIndex) EnsureIndex(_ context.Context, def *db.IndexDefinition) (bool, error) {
	m.lastDef = def
	return m.created, m.err
}

func (m *mockIndex) Index() string { return m.name }

// --- healthUseCase mock ---

type mockHealthUC struct {
	report healthuc.Report
}

func (m *mockHealthUC) Check(context.Context) healthuc.Report { return m.report }
