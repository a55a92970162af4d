package service

import (
	"context"

	"github.com/Koyo-os/learnhub-admin/internal/entity"
	"github.com/google/uuid"
)

type (
	Repository interface {
		Create(any) error
		GetModule(uuid.UUID) (*entity.Module, error)
		GetContent(uuid.UUID) (*entity.Content, error)
		GetPlaylist(uuid.UUID) (*entity.Playlist, error)
		Update(model any, ID uuid.UUID, key string, value any) error
		UpdateMany(model any, ID uuid.UUID, values any) error
		Delete(model any, ID uuid.UUID) error
		ReplaceQuestions(contentID uuid.UUID, questions []entity.Question) error
	}

	Publisher interface {
		Publish(any, string) error
	}

	Casher interface {
		AddToCash(ctx context.Context, key string, payload any) error // payload must to be pointer
		RemoveFromCash(ctx context.Context, key string) error
		GetCashFor(ctx context.Context, key string) ([]byte, error)
	}
)
