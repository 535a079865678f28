// Package service implements the per-entity load/create/update/delete
// contract the console views are built on. Every operation talks to the
// remote inventory API through the authenticated client; nothing here
// touches storage directly.
package service

import (
	"net/url"
	"strconv"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// ListQuery is the common filter for paginated list endpoints.
type ListQuery struct {
	Search   string
	Page     int
	PageSize int
	DateFrom string
	DateTo   string
}

// Normalize clamps paging to sane bounds before the query is sent.
func (q ListQuery) Normalize() ListQuery {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize <= 0 || q.PageSize > maxPageSize {
		q.PageSize = defaultPageSize
	}
	return q
}

func (q ListQuery) Values() url.Values {
	q = q.Normalize()
	params := url.Values{}
	params.Set("page", strconv.Itoa(q.Page))
	params.Set("pageSize", strconv.Itoa(q.PageSize))
	if q.Search != "" {
		params.Set("search", q.Search)
	}
	if q.DateFrom != "" {
		params.Set("dateFrom", q.DateFrom)
	}
	if q.DateTo != "" {
		params.Set("dateTo", q.DateTo)
	}
	return params
}
