package service

import (
	"bookhub/internal/search"
)

// Page is one window of a list result.
type Page[T any] struct {
	Items    []T
	Total    int64
	Page     int
	PageSize int
}

func newPage[T any](items []T, total int64, q search.Query) *Page[T] {
	p := &Page[T]{Items: items, Total: total, PageSize: q.Limit, Page: 1}
	if q.Limit > 0 {
		p.Page = q.Offset/q.Limit + 1
	}
	return p
}

func (p *Page[T]) TotalPages() int {
	if p.PageSize <= 0 {
		return 0
	}
	return int((p.Total + int64(p.PageSize) - 1) / int64(p.PageSize))
}
