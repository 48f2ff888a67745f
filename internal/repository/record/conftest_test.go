package record

import (
	"context"
	"testing"

	"github.com/kailas-cloud/recdex/internal/db"
)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	readableRecordsFn func(ctx context.Context, q *db.AllowListQuery) ([]int64, error)
	putRecordFn       func(ctx context.Context, row *db.RecordRow) error
}

func (m *mockStore) ReadableRecords(ctx context.Context, q *db.AllowListQuery) ([]int64, error) {
	if m.readableRecordsFn != nil {
		return m.readableRecordsFn(ctx, q)
	}
	return []int64{}, nil
}

func (m *mockStore) PutRecord(ctx context.Context, row *db.RecordRow) error {
	if m.putRecordFn != nil {
		return m.putRecordFn(ctx, row)
	}
	return nil
}

func newTestRepo(t *testing.T) (*Repo, *mockStore) {
	t.Helper()
	ms := &mockStore{}
	return New(ms), ms
}
