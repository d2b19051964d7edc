// Package pagination pages transaction listings.
package pagination

// Page size limits shared by the HTTP API and the CLI.
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// PageRequest holds pagination parameters parsed from query strings.
type PageRequest struct {
	Page     int `form:"page" binding:"omitempty,min=1"`
	PageSize int `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// Defaults fills in page 1 and DefaultPageSize for missing values and clamps
// oversized pages to MaxPageSize.
func (p *PageRequest) Defaults() {
	if p.Page < 1 {
		p.Page = 1
	}
	switch {
	case p.PageSize < 1:
		p.PageSize = DefaultPageSize
	case p.PageSize > MaxPageSize:
		p.PageSize = MaxPageSize
	}
}

// Bounds returns the half-open index range of the page within a list of
// total items. Both ends are clamped to total.
func (p PageRequest) Bounds(total int) (start, end int) {
	start = min((p.Page-1)*p.PageSize, total)
	end = min(start+p.PageSize, total)
	return start, end
}

// PageResponse is one page of items plus the totals needed to render a pager.
type PageResponse[T any] struct {
	Data       []T   `json:"data"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalItems int64 `json:"total_items"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
}

// NewPageResponse builds the page envelope. A nil data slice is rendered as [].
func NewPageResponse[T any](data []T, page, pageSize int, totalItems int64) PageResponse[T] {
	if data == nil {
		data = []T{}
	}
	var pages int
	if pageSize > 0 {
		pages = int((totalItems + int64(pageSize) - 1) / int64(pageSize))
	}
	return PageResponse[T]{
		Data:       data,
		Page:       page,
		PageSize:   pageSize,
		TotalItems: totalItems,
		TotalPages: pages,
		HasNext:    page < pages,
	}
}

// Slice pages an in-memory list. The returned page owns its backing array.
// A page past the end is empty but still reports the totals.
func Slice[T any](items []T, req PageRequest) PageResponse[T] {
	req.Defaults()
	start, end := req.Bounds(len(items))
	page := append([]T(nil), items[start:end]...)
	return NewPageResponse(page, req.Page, req.PageSize, int64(len(items)))
}
