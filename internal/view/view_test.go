package view

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invdesk/internal/model"
	"invdesk/internal/service"
)

func TestPagerLabelMiddlePage(t *testing.T) {
	p := Pager{PageMeta: model.PageMeta{Page: 2, PageSize: 10, Total: 25, TotalPages: 3}}
	assert.Equal(t, "Page 2 of 3 (25 total)", p.Label())
	assert.True(t, p.HasPrev())
	assert.True(t, p.HasNext())
	assert.False(t, p.Empty())
}

func TestPagerEmptyList(t *testing.T) {
	p := Pager{PageMeta: model.PageMeta{Page: 1, PageSize: 10, Total: 0, TotalPages: 1}}
	assert.True(t, p.Empty())
	assert.False(t, p.HasPrev())
	assert.False(t, p.HasNext())
	assert.Equal(t, "Page 1 of 1 (0 total)", p.Label())
}

func TestPagerLastPage(t *testing.T) {
	p := Pager{PageMeta: model.PageMeta{Page: 3, PageSize: 10, Total: 25, TotalPages: 3}}
	assert.True(t, p.HasPrev())
	assert.False(t, p.HasNext())
}

func staticLoader(rows []model.Item, meta model.PageMeta) Loader[model.Item] {
	return func(ctx context.Context, q service.ListQuery) (*model.Page[model.Item], error) {
		return &model.Page[model.Item]{Data: rows, PageMeta: meta}, nil
	}
}

func TestListReloadAppliesPage(t *testing.T) {
	l := NewList(staticLoader(
		[]model.Item{{ID: 1, Name: "Soap"}},
		model.PageMeta{Page: 1, PageSize: 10, Total: 1, TotalPages: 1},
	), time.Millisecond)

	require.NoError(t, l.Reload(context.Background()))
	assert.Len(t, l.Rows(), 1)
	assert.Empty(t, l.Banner())
	assert.Equal(t, "Page 1 of 1 (1 total)", l.Pager().Label())
}

func TestListLoadErrorSetsBanner(t *testing.T) {
	boom := errors.New("boom")
	l := NewList(func(ctx context.Context, q service.ListQuery) (*model.Page[model.Item], error) {
		return nil, boom
	}, time.Millisecond)

	err := l.Reload(context.Background())
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, LoadFailedMessage, l.Banner())

	// A later success clears the banner.
	l.loader = staticLoader(nil, model.PageMeta{Page: 1, TotalPages: 1})
	require.NoError(t, l.Reload(context.Background()))
	assert.Empty(t, l.Banner())
}

func TestStaleResponseNeverApplied(t *testing.T) {
	slowStarted := make(chan struct{})
	release := make(chan struct{})

	l := NewList(func(ctx context.Context, q service.ListQuery) (*model.Page[model.Item], error) {
		if q.Page == 1 {
			close(slowStarted)
			<-release // first load resolves last
			return &model.Page[model.Item]{
				Data:     []model.Item{{Name: "stale"}},
				PageMeta: model.PageMeta{Page: 1, TotalPages: 3, Total: 25},
			}, nil
		}
		return &model.Page[model.Item]{
			Data:     []model.Item{{Name: "fresh"}},
			PageMeta: model.PageMeta{Page: 2, TotalPages: 3, Total: 25},
		}, nil
	}, time.Millisecond)

	done := make(chan error, 1)
	go func() { done <- l.Reload(context.Background()) }()
	<-slowStarted

	require.NoError(t, l.SetPage(context.Background(), 2))
	close(release)
	require.NoError(t, <-done)

	require.Len(t, l.Rows(), 1)
	assert.Equal(t, "fresh", l.Rows()[0].Name, "late first response must not overwrite the newer page")
	assert.Equal(t, 2, l.Pager().Page)
}

func TestSearchDebouncesAndResetsPage(t *testing.T) {
	var loads int32
	var lastQuery atomic.Value

	l := NewList(func(ctx context.Context, q service.ListQuery) (*model.Page[model.Item], error) {
		atomic.AddInt32(&loads, 1)
		lastQuery.Store(q)
		return &model.Page[model.Item]{PageMeta: model.PageMeta{Page: q.Page, TotalPages: 1}}, nil
	}, 30*time.Millisecond)

	require.NoError(t, l.SetPage(context.Background(), 3))
	require.Equal(t, int32(1), atomic.LoadInt32(&loads))

	// Rapid typing: only the settled text triggers a load.
	l.Search(context.Background(), "s")
	l.Search(context.Background(), "so")
	l.Search(context.Background(), "soap")
	time.Sleep(100 * time.Millisecond)

	assert.Equal(t, int32(2), atomic.LoadInt32(&loads), "one load for the whole burst")
	q := lastQuery.Load().(service.ListQuery)
	assert.Equal(t, "soap", q.Search)
	assert.Equal(t, 1, q.Page, "search resets to the first page")
}
