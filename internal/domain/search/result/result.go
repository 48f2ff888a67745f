package result

// Hit is a single matching record.
type Hit struct {
	id         int64
	score      float64
	identifier string
	title      string
}

// NewHit creates a search hit.
func NewHit(id int64, score float64, identifier, title string) Hit {
	return Hit{id: id, score: score, identifier: identifier, title: title}
}

// ID returns the record identifier.
func (h *Hit) ID() int64 { return h.id }

// Score returns the relevance score reported by the index.
func (h *Hit) Score() float64 { return h.score }

// Identifier returns the human-readable record identifier.
func (h *Hit) Identifier() string { return h.identifier }

// Title returns the record title.
func (h *Hit) Title() string { return h.title }

// Page is one page of search hits. Page metadata is always present, even when empty.
type Page struct {
	items   []Hit
	total   int
	page    int
	perPage int
}

// NewPage creates a result page.
func NewPage(items []Hit, total, page, perPage int) Page {
	if items == nil {
		items = []Hit{}
	}
	return Page{items: items, total: total, page: page, perPage: perPage}
}

// Empty returns a page without hits.
func Empty(page, perPage int) Page { return NewPage(nil, 0, page, perPage) }

// Items returns the hits of this page.
func (p *Page) Items() []Hit { return p.items }

// Total returns the number of matching records across all pages.
func (p *Page) Total() int { return p.total }

// Page returns the 1-based page number.
func (p *Page) Page() int { return p.page }

// PerPage returns the page size.
func (p *Page) PerPage() int { return p.perPage }

// Pages returns the number of pages needed for Total hits.
func (p *Page) Pages() int {
	if p.perPage <= 0 || p.total == 0 {
		return 0
	}
	return (p.total + p.perPage - 1) / p.perPage
}
