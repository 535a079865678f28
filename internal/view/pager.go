// Package view implements the load-filter-paginate pattern every list
// screen repeats: one page of rows, pagination controls, a debounced
// search box, and a per-view error banner.
package view

import (
	"fmt"

	"invdesk/internal/model"
)

// EmptyMessage is shown when a list has no rows at all.
const EmptyMessage = "No records found"

type Pager struct {
	model.PageMeta
}

// Label renders e.g. "Page 2 of 3 (25 total)".
func (p Pager) Label() string {
	pages := p.TotalPages
	if pages < 1 {
		pages = 1
	}
	return fmt.Sprintf("Page %d of %d (%d total)", p.Page, pages, p.Total)
}

func (p Pager) HasPrev() bool {
	return p.Page > 1
}

func (p Pager) HasNext() bool {
	return p.Page < p.TotalPages
}

func (p Pager) Empty() bool {
	return p.Total == 0
}
