package elastic

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/elastic/go-elasticsearch/v8/esapi"

	"github.com/kailas-cloud/recdex/internal/domain/extra"
	domrec "github.com/kailas-cloud/recdex/internal/domain/record"
)

// IndexRecord writes rec as one document keyed by its id. Extras are
// flattened into their partitions.
func (c *Client) IndexRecord(ctx context.Context, rec *domrec.Record) error {
	data, err := json.Marshal(Document(rec))
	if err != nil {
		return fmt.Errorf("marshal record %d: %w", rec.ID(), err)
	}

	_, err = c.do(ctx, opIndexRecord, func(ctx context.Context) (*esapi.Response, error) {
		return c.es.Index(c.index, bytes.NewReader(data),
			c.es.Index.WithContext(ctx),
			c.es.Index.WithDocumentID(strconv.FormatInt(rec.ID(), 10)),
			c.es.Index.WithRefresh("wait_for"),
		)
	}, nil)
	return err
}

// Document builds the index document of rec.
func Document(rec *domrec.Record) map[string]any {
	doc := map[string]any{
		FieldID:               rec.ID(),
		FieldIdentifier:       rec.Identifier(),
		FieldTitle:            rec.Title(),
		FieldPlainDescription: rec.PlainDescription(),
		FieldRecordType:       rec.Type(),
		FieldCreatedAt:        extra.FormatDate(rec.CreatedAt()),
	}
	for p, entries := range extra.Flatten(rec.Extras()) {
		doc[string(p)] = entries
	}
	return doc
}
