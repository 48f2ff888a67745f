// Package batch describes per-record outcomes of a bulk ingest.
package batch

// ItemStatus is the processing outcome of a single ingested record.
type ItemStatus string

// Item status values.
const (
	StatusOK    ItemStatus = "ok"
	StatusError ItemStatus = "error"
)

// Result is the outcome of ingesting one record.
// Position is the record's offset in the submitted batch.
type Result struct {
	position int
	id       int64
	status   ItemStatus
	err      error
}

// NewOK creates a successful result.
func NewOK(position int, id int64) Result {
	return Result{position: position, id: id, status: StatusOK}
}

// NewError creates a failed result.
func NewError(position int, id int64, err error) Result {
	return Result{position: position, id: id, status: StatusError, err: err}
}

// Position returns the offset of the record in its batch.
func (r Result) Position() int { return r.position }

// ID returns the record id.
func (r Result) ID() int64 { return r.id }

// Status returns the processing outcome.
func (r Result) Status() ItemStatus { return r.status }

// Err returns the error, if any.
func (r Result) Err() error { return r.err }

// Failed counts the error results.
func Failed(results []Result) int {
	n := 0
	for _, r := range results {
		if r.status == StatusError {
			n++
		}
	}
	return n
}
