package db

import (
	"context"
	"time"
)

// Store is the record-metadata database facade combining all sub-interfaces.
type Store interface {
	Pinger
	AllowLister
	RecordWriter
	Close()
	WaitForReady(ctx context.Context, timeout time.Duration) error
}

// Pinger checks database connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// AllowLister answers which records a user may read.
type AllowLister interface {
	// ReadableRecords returns the ids matching q in ascending order.
	ReadableRecords(ctx context.Context, q *AllowListQuery) ([]int64, error)
}

// RecordWriter persists the access and filter metadata of records.
type RecordWriter interface {
	// PutRecord replaces all metadata of row.ID.
	PutRecord(ctx context.Context, row *RecordRow) error
}
