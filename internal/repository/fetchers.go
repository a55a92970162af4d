package repository

import (
	"context"

	"github.com/Koyo-os/learnhub-admin/internal/collection"
	"github.com/Koyo-os/learnhub-admin/internal/entity"
)

// ModuleFetcher adapts the module listing to the collection page-fetch
// contract used by the list synchronizers.
func (repo *Repository) ModuleFetcher() collection.Fetcher[entity.Module] {
	return func(ctx context.Context, req collection.Request) ([]entity.Module, entity.PageMeta, error) {
		return repo.ListModules(req.Page, req.PageSize, req.Order, req.Query)
	}
}

// ContentFetcher adapts the content listing; the request's parent id
// scopes the page to one module.
func (repo *Repository) ContentFetcher() collection.Fetcher[entity.Content] {
	return func(ctx context.Context, req collection.Request) ([]entity.Content, entity.PageMeta, error) {
		return repo.ListContent(req.Page, req.PageSize, req.Order, req.Query, req.ParentID)
	}
}

// PlaylistFetcher adapts the playlist listing.
func (repo *Repository) PlaylistFetcher() collection.Fetcher[entity.Playlist] {
	return func(ctx context.Context, req collection.Request) ([]entity.Playlist, entity.PageMeta, error) {
		return repo.ListPlaylists(req.Page, req.PageSize, req.Order, req.Query)
	}
}

// UserFetcher adapts the user listing, backing both the user list and
// the creator picker.
func (repo *Repository) UserFetcher() collection.Fetcher[entity.User] {
	return func(ctx context.Context, req collection.Request) ([]entity.User, entity.PageMeta, error) {
		return repo.ListUsers(req.Page, req.PageSize, req.Order, req.Query)
	}
}
