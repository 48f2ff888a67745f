package recdex

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/kailas-cloud/recdex/internal/domain/search/request"
)

// Search runs q on behalf of userID. Only records the user may read are
// returned; user 0 sees public records only.
func (c *Client) Search(ctx context.Context, userID int64, q Query) (page Page, err error) {
	start := time.Now()
	defer func() { c.obs.observe("search", start, len(page.Items), err) }()

	req, err := c.buildRequest(&q)
	if err != nil {
		return Page{}, err
	}
	res, err := c.searchSvc.Search(ctx, userID, &req)
	if err != nil {
		return Page{}, err
	}

	page = Page{
		Total:   res.Total(),
		Page:    res.Page(),
		PerPage: res.PerPage(),
		Pages:   res.Pages(),
		Items:   make([]Hit, 0, len(res.Items())),
	}
	for _, h := range res.Items() {
		page.Items = append(page.Items, Hit{
			ID:         h.ID(),
			Score:      h.Score(),
			Identifier: h.Identifier(),
			Title:      h.Title(),
		})
	}
	return page, nil
}

// Explain returns the index query body q compiles to, without the
// allow-list of any user.
func (c *Client) Explain(q Query) (json.RawMessage, error) {
	req, err := c.buildRequest(&q)
	if err != nil {
		return nil, err
	}
	compiled := c.searchSvc.Explain(&req)
	data, err := json.Marshal(&compiled)
	if err != nil {
		return nil, fmt.Errorf("encode query: %w", err)
	}
	return data, nil
}

func (c *Client) buildRequest(q *Query) (request.Request, error) {
	in := &request.Input{
		Text:    q.Text,
		Sort:    q.Sort,
		Page:    q.Page,
		PerPage: q.PerPage,
	}
	if len(q.Extras) > 0 {
		data, err := json.Marshal(q.Extras)
		if err != nil {
			return request.Request{}, fmt.Errorf("encode extras: %w", err)
		}
		in.Extras = data
	}
	if f := q.Filters; f != nil {
		in.Filters = &request.FilterInput{
			Collections: f.Collections,
			Tags:        f.Tags,
			TagOperator: f.TagOperator,
			RecordTypes: f.RecordTypes,
			Mimetypes:   f.Mimetypes,
			HidePublic:  f.HidePublic,
		}
	}
	return request.Build(in, c.limits)
}
