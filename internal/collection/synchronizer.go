// Package collection implements the paged incremental-fetch state machine
// behind every list screen: pages from a fetch collaborator are merged into a
// client-owned collection, deduplicated by entity id, with loading and
// exhaustion tracked explicitly.
package collection

import (
	"context"
	"sync"

	"github.com/Koyo-os/learnhub-admin/internal/entity"
	"github.com/Koyo-os/learnhub-admin/pkg/logger"
	"go.uber.org/zap"
)

type (
	// Identifier is implemented by every entity that can live in a
	// synchronized collection. The id must be stable across pages.
	Identifier interface {
		EntityID() string
	}

	// Request describes one page fetch issued to the collaborator.
	Request struct {
		Page     int
		PageSize int
		Order    string
		Query    string
		ParentID string
	}

	// Fetcher is the page-fetch collaborator. It returns the items of the
	// requested page together with the server-side paging meta.
	Fetcher[T Identifier] func(ctx context.Context, req Request) ([]T, entity.PageMeta, error)

	// Synchronizer owns one synchronized collection. It is safe for use
	// from concurrent callers; at most one fetch mutates the collection
	// at a time.
	Synchronizer[T Identifier] struct {
		mu     sync.Mutex
		fetch  Fetcher[T]
		logger *logger.Logger

		pageSize int
		order    string
		query    string
		parentID string

		items       []T
		seen        map[string]struct{}
		currentPage int
		hasMore     bool
		loading     bool

		// epoch tags every issued fetch; a reset bumps it so that
		// resolutions of superseded fetches are discarded as stale.
		epoch uint64
	}
)

// New creates a Synchronizer over the given page-fetch collaborator.
func New[T Identifier](fetch Fetcher[T], pageSize int, order string) *Synchronizer[T] {
	return &Synchronizer[T]{
		fetch:       fetch,
		logger:      logger.Get(),
		pageSize:    pageSize,
		order:       order,
		seen:        make(map[string]struct{}),
		currentPage: 1,
		hasMore:     true,
	}
}

// FetchNext loads the next page into the collection. With reset it clears
// the collection, rewinds to page 1 and fetches again. Without reset the
// call is a no-op while a fetch is in flight or after the collection is
// exhausted, which shields the collaborator from rapid repeat triggers.
func (s *Synchronizer[T]) FetchNext(ctx context.Context, reset bool) error {
	s.mu.Lock()

	if !reset && (s.loading || !s.hasMore) {
		s.mu.Unlock()
		return nil
	}

	if reset {
		s.epoch++
		s.currentPage = 1
		s.items = nil
		s.seen = make(map[string]struct{})
		s.hasMore = true
	}

	req := Request{
		Page:     s.currentPage,
		PageSize: s.pageSize,
		Order:    s.order,
		Query:    s.query,
		ParentID: s.parentID,
	}
	tag := s.epoch
	s.loading = true
	s.mu.Unlock()

	items, meta, err := s.fetch(ctx, req)

	s.mu.Lock()
	defer s.mu.Unlock()

	if tag != s.epoch {
		// A newer reset superseded this fetch while it was in flight.
		// Its owner fetch manages the loading flag, so nothing is
		// touched here.
		s.logger.Debug("discarding stale page fetch",
			zap.Int("page", req.Page),
			zap.String("query", req.Query))
		return nil
	}

	s.loading = false

	if err != nil {
		s.logger.Error("error fetch page",
			zap.Int("page", req.Page),
			zap.Error(err))
		return err
	}

	if len(items) == 0 {
		// Guard against a server that keeps hasNextPage set on an
		// empty tail page.
		s.hasMore = false
		return nil
	}

	for _, item := range items {
		id := item.EntityID()
		if _, dup := s.seen[id]; dup {
			continue
		}
		s.seen[id] = struct{}{}
		s.items = append(s.items, item)
	}

	s.hasMore = meta.HasNextPage
	s.currentPage = req.Page + 1

	return nil
}

// OnQueryChange installs a new filter query and resets the collection.
// An unchanged query is a no-op.
func (s *Synchronizer[T]) OnQueryChange(ctx context.Context, query string) error {
	s.mu.Lock()
	if s.query == query {
		s.mu.Unlock()
		return nil
	}
	s.query = query
	s.mu.Unlock()

	return s.FetchNext(ctx, true)
}

// OnParentIDChange points the collection at another parent entity (for
// example content within a different module) and resets it.
func (s *Synchronizer[T]) OnParentIDChange(ctx context.Context, parentID string) error {
	s.mu.Lock()
	if s.parentID == parentID {
		s.mu.Unlock()
		return nil
	}
	s.parentID = parentID
	s.mu.Unlock()

	return s.FetchNext(ctx, true)
}

// Items returns a snapshot of the merged collection in append order.
func (s *Synchronizer[T]) Items() []T {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]T, len(s.items))
	copy(out, s.items)

	return out
}

// Loading reports whether a fetch is currently in flight.
func (s *Synchronizer[T]) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.loading
}

// HasMore reports whether another page may still be fetched.
func (s *Synchronizer[T]) HasMore() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.hasMore
}

// CurrentPage returns the page number the next fetch would request.
func (s *Synchronizer[T]) CurrentPage() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.currentPage
}
