package recdex

import (
	"context"
	"fmt"
	"time"

	dombatch "github.com/kailas-cloud/recdex/internal/domain/batch"
	domrec "github.com/kailas-cloud/recdex/internal/domain/record"
)

// Put validates and stores one record, replacing any earlier version.
func (c *Client) Put(ctx context.Context, r Record) (err error) {
	start := time.Now()
	defer func() { c.obs.observe("put", start, 1, err) }()

	return c.ingestSvc.Put(ctx, toParams(&r))
}

// Ingest stores records and returns one result per record in input order.
// An invalid record fails alone; a store or index failure fails the rest.
func (c *Client) Ingest(ctx context.Context, records []Record) []BatchResult {
	start := time.Now()

	params := make([]domrec.Params, len(records))
	for i := range records {
		params[i] = toParams(&records[i])
	}
	results := c.ingestSvc.Ingest(ctx, params)

	out := make([]BatchResult, len(results))
	for i, r := range results {
		out[i] = BatchResult{
			Position: r.Position(),
			ID:       r.ID(),
			OK:       r.Status() == dombatch.StatusOK,
			Err:      r.Err(),
		}
	}

	var err error
	if failed := dombatch.Failed(results); failed > 0 {
		err = &batchFailure{failed: failed, total: len(results)}
	}
	c.obs.observe("ingest", start, len(records), err)
	return out
}

type batchFailure struct{ failed, total int }

func (e *batchFailure) Error() string {
	return fmt.Sprintf("%d of %d records failed", e.failed, e.total)
}

func toParams(r *Record) domrec.Params {
	return domrec.Params{
		ID:               r.ID,
		Identifier:       r.Identifier,
		Title:            r.Title,
		PlainDescription: r.PlainDescription,
		Type:             r.Type,
		Public:           r.Public,
		Readers:          r.Readers,
		Tags:             r.Tags,
		Collections:      r.Collections,
		Mimetypes:        r.Mimetypes,
		Extras:           r.Extras,
		CreatedAt:        r.CreatedAt,
	}
}
