// Package pagination converts page/page_size request parameters into
// offset/limit queries and wraps results in a page envelope.
package pagination

import "math"

const (
	// DefaultPageSize is used when the client does not ask for a size.
	DefaultPageSize = 20
	// MaxPageSize caps the number of items a single page may carry.
	MaxPageSize = 100
)

// Params holds normalized pagination request parameters.
type Params struct {
	Page     int
	PageSize int
}

// NewParams clamps raw page/page_size values into a valid Params.
func NewParams(page, pageSize int) Params {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	return Params{Page: page, PageSize: pageSize}
}

// Offset returns the number of rows to skip.
func (p Params) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// Limit returns the maximum number of rows to fetch.
func (p Params) Limit() int {
	return p.PageSize
}

// Page is the response envelope carrying one page of items plus navigation
// metadata derived from the total row count.
type Page[T any] struct {
	Items      []T   `json:"items"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
	HasPrev    bool  `json:"has_prev"`
}

// NewPage builds the envelope for one page of results.
func NewPage[T any](items []T, total int64, p Params) Page[T] {
	totalPages := 0
	if p.PageSize > 0 {
		totalPages = int(math.Ceil(float64(total) / float64(p.PageSize)))
	}
	if items == nil {
		items = []T{}
	}
	return Page[T]{
		Items:      items,
		Total:      total,
		Page:       p.Page,
		PageSize:   p.PageSize,
		TotalPages: totalPages,
		HasNext:    p.Page < totalPages,
		HasPrev:    p.Page > 1,
	}
}
