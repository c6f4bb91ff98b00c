package pagination

import "math"

// Params represents the page-based pagination inputs of the clients listing.
// Pages are 1-indexed on the wire.
type Params struct {
	Page     int `form:"page" json:"page"`
	PageSize int `form:"page_size" json:"page_size"`
}

// Default returns the default pagination values.
func Default() Params {
	return Params{Page: 1, PageSize: 10}
}

// Validate clamps pagination parameters into valid ranges.
func (p *Params) Validate() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = 10
	}
	if p.PageSize > 100 {
		p.PageSize = 100
	}
}

// Offset calculates the offset for database queries.
func (p *Params) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// Result represents one page of results together with the server-side total.
type Result[T any] struct {
	Results    []T   `json:"results"`
	TotalCount int64 `json:"total_count"`
}

// NewResult creates a paginated result.
func NewResult[T any](results []T, totalCount int64) *Result[T] {
	return &Result[T]{Results: results, TotalCount: totalCount}
}

// TotalPages derives the page count for a given page size.
func (r *Result[T]) TotalPages(pageSize int) int {
	if pageSize < 1 {
		return 0
	}
	return int(math.Ceil(float64(r.TotalCount) / float64(pageSize)))
}
