package elastic

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/elastic/go-elasticsearch/v8/esapi"

	"github.com/kailas-cloud/recdex/internal/domain/search/query"
	"github.com/kailas-cloud/recdex/internal/domain/search/result"
)

// sourceFields are the stored fields returned with every hit.
var sourceFields = []string{FieldID, FieldIdentifier, FieldTitle}

type searchResponse struct {
	Hits struct {
		Total struct {
			Value int `json:"value"`
		} `json:"total"`
		Hits []searchHit `json:"hits"`
	} `json:"hits"`
}

type searchHit struct {
	Score  *float64 `json:"_score"`
	Source struct {
		ID         int64  `json:"id"`
		Identifier string `json:"identifier"`
		Title      string `json:"title"`
	} `json:"_source"`
}

// Search executes q and returns one page of hits.
func (c *Client) Search(ctx context.Context, q *query.Search) (result.Page, error) {
	body := q.Body()
	body["_source"] = sourceFields
	body["track_total_hits"] = true

	data, err := json.Marshal(body)
	if err != nil {
		return result.Page{}, fmt.Errorf("marshal search: %w", err)
	}

	var resp searchResponse
	_, err = c.do(ctx, opSearch, func(ctx context.Context) (*esapi.Response, error) {
		return c.es.Search(
			c.es.Search.WithContext(ctx),
			c.es.Search.WithIndex(c.index),
			c.es.Search.WithBody(bytes.NewReader(data)),
		)
	}, &resp)
	if err != nil {
		return result.Page{}, err
	}

	items := make([]result.Hit, 0, len(resp.Hits.Hits))
	for i := range resp.Hits.Hits {
		h := &resp.Hits.Hits[i]
		var score float64
		if h.Score != nil {
			score = *h.Score
		}
		items = append(items, result.NewHit(h.Source.ID, score, h.Source.Identifier, h.Source.Title))
	}
	return result.NewPage(items, resp.Hits.Total.Value, q.Page, q.PerPage), nil
}
