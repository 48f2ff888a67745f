package db

import "errors"

// Sentinel errors for database operations.
var (
	ErrNotReady      = errors.New("db: not ready")
	ErrInvalidRecord = errors.New("db: invalid record")
	ErrIndexExists   = errors.New("db: index already exists")
)

// Op constants name the failing operation for error context.
const (
	OpPing     = "PING"
	OpSMembers = "SMEMBERS"
	OpSAdd     = "SADD"
	OpSRem     = "SREM"
	OpGet      = "GET"
	OpSet      = "SET"
	OpSelect   = "SELECT"
	OpUpsert   = "UPSERT"
	OpSchema   = "SCHEMA"
)

// Error wraps an underlying error with the operation name for diagnostics.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string { return e.Op + ": " + e.Err.Error() }
func (e *Error) Unwrap() error { return e.Err }
