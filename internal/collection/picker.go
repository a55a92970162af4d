package collection

import (
	"context"
	"sync"

	"github.com/Koyo-os/learnhub-admin/pkg/logger"
	"go.uber.org/zap"
)

// Picker is the search-as-you-scroll variant of the synchronizer used by
// selection dropdowns. It differs from Synchronizer in two ways: newly
// fetched pages are prepended ahead of previously loaded items, and entities
// referenced by the current selection are never evicted, not even across a
// reset, so a chosen item stays renderable after the list is re-filtered.
type Picker[T Identifier] struct {
	mu     sync.Mutex
	fetch  Fetcher[T]
	logger *logger.Logger

	pageSize int
	order    string
	query    string
	parentID string

	items    []T
	selected map[string]T

	currentPage int
	hasMore     bool
	loading     bool
	epoch       uint64
}

// NewPicker creates a Picker over the given page-fetch collaborator.
func NewPicker[T Identifier](fetch Fetcher[T], pageSize int, order string) *Picker[T] {
	return &Picker[T]{
		fetch:       fetch,
		logger:      logger.Get(),
		pageSize:    pageSize,
		order:       order,
		selected:    make(map[string]T),
		currentPage: 1,
		hasMore:     true,
	}
}

// mergePages combines fetched items into the existing collection. Fetched
// items not yet present are prepended in their server order; duplicates by
// id are dropped. On reset only entities referenced by retained survive
// from the previous collection.
func mergePages[T Identifier](existing, fetched []T, retained map[string]struct{}, reset bool) []T {
	if reset {
		kept := existing[:0:0]
		for _, item := range existing {
			if _, ok := retained[item.EntityID()]; ok {
				kept = append(kept, item)
			}
		}
		existing = kept
	}

	seen := make(map[string]struct{}, len(existing))
	for _, item := range existing {
		seen[item.EntityID()] = struct{}{}
	}

	fresh := make([]T, 0, len(fetched))
	for _, item := range fetched {
		id := item.EntityID()
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		fresh = append(fresh, item)
	}

	return append(fresh, existing...)
}

// FetchNext loads the next page into the picker, with the same guard,
// exhaustion and staleness semantics as Synchronizer.FetchNext.
func (p *Picker[T]) FetchNext(ctx context.Context, reset bool) error {
	p.mu.Lock()

	if !reset && (p.loading || !p.hasMore) {
		p.mu.Unlock()
		return nil
	}

	if reset {
		p.epoch++
		p.currentPage = 1
		p.hasMore = true
	}

	req := Request{
		Page:     p.currentPage,
		PageSize: p.pageSize,
		Order:    p.order,
		Query:    p.query,
		ParentID: p.parentID,
	}
	tag := p.epoch
	p.loading = true
	p.mu.Unlock()

	items, meta, err := p.fetch(ctx, req)

	p.mu.Lock()
	defer p.mu.Unlock()

	if tag != p.epoch {
		p.logger.Debug("discarding stale picker fetch",
			zap.Int("page", req.Page),
			zap.String("query", req.Query))
		return nil
	}

	p.loading = false

	if err != nil {
		p.logger.Error("error fetch picker page",
			zap.Int("page", req.Page),
			zap.Error(err))
		return err
	}

	if len(items) == 0 {
		if reset {
			p.items = mergePages(p.items, nil, p.retainedIDs(), true)
		}
		p.hasMore = false
		return nil
	}

	p.items = mergePages(p.items, items, p.retainedIDs(), reset)
	p.hasMore = meta.HasNextPage
	p.currentPage = req.Page + 1

	return nil
}

// SetQuery installs a new search query. A changed query behaves exactly
// like a reset; an unchanged one is a no-op.
func (p *Picker[T]) SetQuery(ctx context.Context, query string) error {
	p.mu.Lock()
	if p.query == query {
		p.mu.Unlock()
		return nil
	}
	p.query = query
	p.mu.Unlock()

	return p.FetchNext(ctx, true)
}

// Select marks an entity as chosen. The entity itself is kept so it stays
// renderable even if later pages or filters no longer contain it.
func (p *Picker[T]) Select(item T) {
	p.mu.Lock()
	defer p.mu.Unlock()

	id := item.EntityID()
	p.selected[id] = item

	for _, existing := range p.items {
		if existing.EntityID() == id {
			return
		}
	}
	p.items = append([]T{item}, p.items...)
}

// Deselect removes an entity from the selection. It stays in the collection
// until the next reset evicts it.
func (p *Picker[T]) Deselect(id string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	delete(p.selected, id)
}

// Selected reports whether the entity with the given id is chosen.
func (p *Picker[T]) Selected(id string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	_, ok := p.selected[id]
	return ok
}

// SelectedItems returns the chosen entities in collection order.
func (p *Picker[T]) SelectedItems() []T {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := make([]T, 0, len(p.selected))
	for _, item := range p.items {
		if _, ok := p.selected[item.EntityID()]; ok {
			out = append(out, item)
		}
	}

	return out
}

// Items returns a snapshot of the merged collection, newest page first.
func (p *Picker[T]) Items() []T {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := make([]T, len(p.items))
	copy(out, p.items)

	return out
}

// Loading reports whether a fetch is currently in flight.
func (p *Picker[T]) Loading() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.loading
}

// HasMore reports whether another page may still be fetched.
func (p *Picker[T]) HasMore() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.hasMore
}

func (p *Picker[T]) retainedIDs() map[string]struct{} {
	ids := make(map[string]struct{}, len(p.selected))
	for id := range p.selected {
		ids[id] = struct{}{}
	}

	return ids
}
