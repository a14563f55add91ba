package models

import "math"

// CompareOp is a comparison understood by every store implementation
type CompareOp string

const (
	OpEq  CompareOp = "$eq"
	OpLte CompareOp = "$lte"
	OpGte CompareOp = "$gte"
)

// Condition constrains one document field. Conditions in a list are ANDed.
type Condition struct {
	Field string
	Op    CompareOp
	Value interface{}
}

// Page is a resolved page request
type Page struct {
	Number int64
	Limit  int64
}

// Skip returns the number of documents before the page. Pages too far out
// to address saturate at math.MaxInt64 and come back empty.
func (p Page) Skip() int64 {
	if p.Number <= 1 || p.Limit <= 0 {
		return 0
	}
	if p.Number-1 > math.MaxInt64/p.Limit {
		return math.MaxInt64
	}
	return (p.Number - 1) * p.Limit
}

// Paginated is the envelope returned by list endpoints
type Paginated[T any] struct {
	Data  []T   `json:"data"`
	Total int64 `json:"total"`
	Page  int64 `json:"page"`
	Pages int64 `json:"pages"`
}

// NewPaginated fills in the page count as ceil(total/limit)
func NewPaginated[T any](data []T, total int64, page Page) Paginated[T] {
	if data == nil {
		data = []T{}
	}
	var pages int64
	if page.Limit > 0 {
		pages = (total + page.Limit - 1) / page.Limit
	}
	return Paginated[T]{Data: data, Total: total, Page: page.Number, Pages: pages}
}
