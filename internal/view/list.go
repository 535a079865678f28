package view

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"invdesk/internal/model"
	"invdesk/internal/service"
)

// LoadFailedMessage is the generic banner for any failed list load.
const LoadFailedMessage = "Failed to load data"

// DefaultDebounce is how long search input must settle before a load fires.
const DefaultDebounce = 400 * time.Millisecond

type Loader[T any] func(ctx context.Context, q service.ListQuery) (*model.Page[T], error)

// ListController drives one list screen. Loads carry a monotonically
// increasing sequence number; a response is applied only if it is the
// latest issued, so a slow stale response can never overwrite a newer one.
type ListController[T any] struct {
	loader   Loader[T]
	debounce time.Duration

	seq atomic.Int64

	mu     sync.Mutex
	query  service.ListQuery
	rows   []T
	pager  Pager
	banner string
	timer  *time.Timer
}

func NewList[T any](loader Loader[T], debounce time.Duration) *ListController[T] {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &ListController[T]{
		loader:   loader,
		debounce: debounce,
		query:    service.ListQuery{Page: 1},
	}
}

// Reload fetches the current page with the current filters.
func (l *ListController[T]) Reload(ctx context.Context) error {
	l.mu.Lock()
	q := l.query
	l.mu.Unlock()
	return l.load(ctx, q)
}

func (l *ListController[T]) SetPage(ctx context.Context, page int) error {
	l.mu.Lock()
	l.query.Page = page
	q := l.query
	l.mu.Unlock()
	return l.load(ctx, q)
}

// SetDates applies a date filter and reloads from page 1.
func (l *ListController[T]) SetDates(ctx context.Context, from, to string) error {
	l.mu.Lock()
	l.query.DateFrom = from
	l.query.DateTo = to
	l.query.Page = 1
	q := l.query
	l.mu.Unlock()
	return l.load(ctx, q)
}

// Search records the new search text and schedules a load once input has
// settled for the debounce window. The page resets to 1.
func (l *ListController[T]) Search(ctx context.Context, text string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.query.Search = text
	l.query.Page = 1
	q := l.query

	if l.timer != nil {
		l.timer.Stop()
	}
	l.timer = time.AfterFunc(l.debounce, func() {
		_ = l.load(ctx, q)
	})
}

func (l *ListController[T]) load(ctx context.Context, q service.ListQuery) error {
	n := l.seq.Add(1)

	page, err := l.loader(ctx, q)

	l.mu.Lock()
	defer l.mu.Unlock()
	if n != l.seq.Load() {
		// A newer load was issued while this one was in flight.
		return nil
	}
	if err != nil {
		l.banner = LoadFailedMessage
		return err
	}
	l.banner = ""
	l.rows = page.Data
	l.pager = Pager{PageMeta: page.PageMeta}
	return nil
}

func (l *ListController[T]) Rows() []T {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.rows
}

func (l *ListController[T]) Pager() Pager {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.pager
}

// Banner returns the last failed load's message, empty after a success.
func (l *ListController[T]) Banner() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.banner
}

func (l *ListController[T]) Query() service.ListQuery {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.query
}
