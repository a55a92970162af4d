package collection

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/Koyo-os/learnhub-admin/internal/entity"
	"github.com/stretchr/testify/assert"
)

type row struct {
	ID    string
	Title string
}

func (r row) EntityID() string { return r.ID }

func rows(ids ...string) []row {
	out := make([]row, len(ids))
	for i, id := range ids {
		out[i] = row{ID: id, Title: "item " + id}
	}
	return out
}

// pagedFetcher serves a fixed sequence of pages and counts calls.
func pagedFetcher(pages [][]row) (Fetcher[row], *int) {
	calls := new(int)

	return func(_ context.Context, req Request) ([]row, entity.PageMeta, error) {
		*calls++
		if req.Page > len(pages) {
			return nil, entity.PageMeta{}, nil
		}
		meta := entity.PageMeta{
			Page:        req.Page,
			Take:        req.PageSize,
			HasNextPage: req.Page < len(pages),
		}
		return pages[req.Page-1], meta, nil
	}, calls
}

func TestFetchNext_AppendsPagesInOrder(t *testing.T) {
	fetch, calls := pagedFetcher([][]row{rows("a", "b"), rows("c", "d")})
	sync := New(fetch, 2, "DESC")

	assert.NoError(t, sync.FetchNext(context.Background(), false))
	assert.NoError(t, sync.FetchNext(context.Background(), false))

	assert.Equal(t, rows("a", "b", "c", "d"), sync.Items())
	assert.Equal(t, 3, sync.CurrentPage())
	assert.Equal(t, 2, *calls)
	assert.False(t, sync.HasMore())
}

func TestFetchNext_InFlightGuard(t *testing.T) {
	var sync *Synchronizer[row]
	calls := 0

	fetch := func(ctx context.Context, req Request) ([]row, entity.PageMeta, error) {
		calls++
		if calls == 1 {
			// a second trigger while this fetch is in flight must be
			// swallowed without another network call
			assert.NoError(t, sync.FetchNext(ctx, false))
		}
		return rows("a"), entity.PageMeta{HasNextPage: true}, nil
	}

	sync = New(fetch, 10, "DESC")
	assert.NoError(t, sync.FetchNext(context.Background(), false))

	assert.Equal(t, 1, calls)
	assert.Equal(t, 2, sync.CurrentPage())
	assert.False(t, sync.Loading())
}

func TestFetchNext_DeduplicatesAcrossPages(t *testing.T) {
	fetch, _ := pagedFetcher([][]row{rows("a", "x"), rows("x", "b")})
	sync := New(fetch, 2, "DESC")

	assert.NoError(t, sync.FetchNext(context.Background(), false))
	assert.NoError(t, sync.FetchNext(context.Background(), false))

	assert.Equal(t, rows("a", "x", "b"), sync.Items())
}

func TestFetchNext_ExhaustionIsTerminal(t *testing.T) {
	fetch, calls := pagedFetcher([][]row{rows("a")})
	sync := New(fetch, 10, "DESC")

	assert.NoError(t, sync.FetchNext(context.Background(), false))
	assert.False(t, sync.HasMore())

	page := sync.CurrentPage()
	assert.NoError(t, sync.FetchNext(context.Background(), false))
	assert.NoError(t, sync.FetchNext(context.Background(), false))

	assert.Equal(t, 1, *calls)
	assert.Equal(t, page, sync.CurrentPage())
}

func TestFetchNext_EmptyPageForcesExhaustion(t *testing.T) {
	fetch := func(context.Context, Request) ([]row, entity.PageMeta, error) {
		// server erroneously keeps the flag set on an empty page
		return nil, entity.PageMeta{HasNextPage: true}, nil
	}
	sync := New(Fetcher[row](fetch), 10, "DESC")

	assert.NoError(t, sync.FetchNext(context.Background(), false))
	assert.False(t, sync.HasMore())
	assert.Empty(t, sync.Items())
}

func TestFetchNext_FailureLeavesStateRetryable(t *testing.T) {
	fail := true
	fetch := func(_ context.Context, req Request) ([]row, entity.PageMeta, error) {
		if fail {
			return nil, entity.PageMeta{}, errors.New("boom")
		}
		return rows("a"), entity.PageMeta{HasNextPage: false}, nil
	}
	sync := New(Fetcher[row](fetch), 10, "DESC")

	err := sync.FetchNext(context.Background(), false)
	assert.EqualError(t, err, "boom")
	assert.False(t, sync.Loading())
	assert.Equal(t, 1, sync.CurrentPage())
	assert.True(t, sync.HasMore())

	// the same call retries cleanly
	fail = false
	assert.NoError(t, sync.FetchNext(context.Background(), false))
	assert.Equal(t, rows("a"), sync.Items())
}

func TestFetchNext_ResetClearsAndRewinds(t *testing.T) {
	fetch, _ := pagedFetcher([][]row{rows("a", "b"), rows("c")})
	sync := New(fetch, 2, "DESC")

	assert.NoError(t, sync.FetchNext(context.Background(), false))
	assert.NoError(t, sync.FetchNext(context.Background(), false))
	assert.False(t, sync.HasMore())

	assert.NoError(t, sync.FetchNext(context.Background(), true))

	assert.Equal(t, rows("a", "b"), sync.Items())
	assert.Equal(t, 2, sync.CurrentPage())
	assert.True(t, sync.HasMore())
}

func TestFetchNext_StaleResultDiscardedAfterReset(t *testing.T) {
	var sync *Synchronizer[row]
	calls := 0

	fetch := func(ctx context.Context, req Request) ([]row, entity.PageMeta, error) {
		calls++
		if calls == 1 {
			// a reset supersedes this fetch while it is still in
			// flight; its nested fetch resolves first
			assert.NoError(t, sync.FetchNext(ctx, true))
			return rows("stale"), entity.PageMeta{HasNextPage: true}, nil
		}
		return rows("fresh"), entity.PageMeta{HasNextPage: false}, nil
	}

	sync = New(fetch, 10, "DESC")
	assert.NoError(t, sync.FetchNext(context.Background(), false))

	assert.Equal(t, rows("fresh"), sync.Items())
	assert.False(t, sync.Loading())
	assert.False(t, sync.HasMore())
	assert.Equal(t, 2, sync.CurrentPage())
}

func TestOnQueryChange_ResetsWithNewQuery(t *testing.T) {
	var got []string
	fetch := func(_ context.Context, req Request) ([]row, entity.PageMeta, error) {
		got = append(got, fmt.Sprintf("%d:%s", req.Page, req.Query))
		return rows("a"), entity.PageMeta{HasNextPage: true}, nil
	}
	sync := New(Fetcher[row](fetch), 10, "DESC")

	assert.NoError(t, sync.FetchNext(context.Background(), false))
	assert.NoError(t, sync.OnQueryChange(context.Background(), "go"))

	// unchanged query is a no-op
	assert.NoError(t, sync.OnQueryChange(context.Background(), "go"))

	assert.Equal(t, []string{"1:", "1:go"}, got)
	assert.Equal(t, 2, sync.CurrentPage())
}

func TestOnParentIDChange_ResetsForNewParent(t *testing.T) {
	var parents []string
	fetch := func(_ context.Context, req Request) ([]row, entity.PageMeta, error) {
		parents = append(parents, req.ParentID)
		return rows(req.ParentID), entity.PageMeta{}, nil
	}
	sync := New(Fetcher[row](fetch), 10, "DESC")

	assert.NoError(t, sync.OnParentIDChange(context.Background(), "module-1"))
	assert.NoError(t, sync.OnParentIDChange(context.Background(), "module-2"))
	assert.NoError(t, sync.OnParentIDChange(context.Background(), "module-2"))

	assert.Equal(t, []string{"module-1", "module-2"}, parents)
	assert.Equal(t, rows("module-2"), sync.Items())
}
