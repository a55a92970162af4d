// Package service implements the admin operations over modules, content,
// playlists and users, composing the repository, cache and event publisher.
package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Koyo-os/learnhub-admin/internal/editor"
	"github.com/Koyo-os/learnhub-admin/internal/entity"
	"github.com/Koyo-os/learnhub-admin/pkg/logger"
	"github.com/Koyo-os/learnhub-admin/pkg/retrier"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Service struct {
	casher    Casher
	repo      Repository
	publisher Publisher

	cashTimeout time.Duration
	cashRetry   retrier.RetrierOpts
}

// Init creates a Service over the given collaborators. retryOpts controls
// how cache writes are retried; nil selects the defaults.
func Init(casher Casher, repo Repository, publisher Publisher, cashTimeout time.Duration, retryOpts *retrier.RetrierOpts) *Service {
	if retryOpts == nil {
		retryOpts = &retrier.RetrierOpts{Count: 3, Interval: 5}
	}

	return &Service{
		casher:      casher,
		repo:        repo,
		publisher:   publisher,
		cashTimeout: cashTimeout,
		cashRetry:   *retryOpts,
	}
}

// cash stores payload under key with retry, bounded by the cache timeout.
func (s *Service) cash(key string, payload any) error {
	ctx, cancel := context.WithTimeout(context.Background(), s.cashTimeout)
	defer cancel()

	return retrier.Do(uint8(s.cashRetry.Count), s.cashRetry.Interval, func() error {
		return s.casher.AddToCash(ctx, key, payload)
	})
}

// GetModule serves a module read cache-first: a cached snapshot is
// decoded and returned without touching the database; on a miss the
// module is loaded from the repository and the cache is warmed.
func (s *Service) GetModule(moduleID uuid.UUID) (*entity.Module, error) {
	ctx, cancel := context.WithTimeout(context.Background(), s.cashTimeout)
	defer cancel()

	if data, err := s.casher.GetCashFor(ctx, moduleID.String()); err == nil {
		var module entity.Module
		if err = json.Unmarshal(data, &module); err == nil {
			return &module, nil
		}
		// an undecodable entry falls through to the repository
	}

	module, err := s.repo.GetModule(moduleID)
	if err != nil {
		return nil, fmt.Errorf("failed to get module from repository: %w", err)
	}

	cherr := make(chan error, 1)

	go func() {
		cherr <- s.cash(module.ID.String(), module)
	}()

	if err := <-cherr; err != nil {
		logger.Get().Error("error warm module cache",
			zap.String("module_id", moduleID.String()),
			zap.Error(err))
	}

	return module, nil
}

// GetContent serves a content read cache-first, warming the cache on a
// miss like GetModule.
func (s *Service) GetContent(contentID uuid.UUID) (*entity.Content, error) {
	ctx, cancel := context.WithTimeout(context.Background(), s.cashTimeout)
	defer cancel()

	if data, err := s.casher.GetCashFor(ctx, contentID.String()); err == nil {
		var content entity.Content
		if err = json.Unmarshal(data, &content); err == nil {
			return &content, nil
		}
	}

	content, err := s.repo.GetContent(contentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get content from repository: %w", err)
	}

	cherr := make(chan error, 1)

	go func() {
		cherr <- s.cash(content.ID.String(), content)
	}()

	if err := <-cherr; err != nil {
		logger.Get().Error("error warm content cache",
			zap.String("content_id", contentID.String()),
			zap.Error(err))
	}

	return content, nil
}

// CreateModule persists a new module, caches it and publishes the
// module.created event.
func (s *Service) CreateModule(module *entity.Module) error {
	if module == nil {
		return errors.New("module cannot be nil")
	}

	if err := s.repo.Create(module); err != nil {
		return fmt.Errorf("failed to create module in repository: %w", err)
	}

	cherr := make(chan error, 1)

	go func() {
		cherr <- s.cash(module.ID.String(), module)
	}()

	if err := s.publisher.Publish(module, entity.EventModuleCreated); err != nil {
		return fmt.Errorf("failed to publish module.created: %w", err)
	}

	return <-cherr
}

// UpdateModule updates multiple module columns, refreshes the cache and
// publishes the module.updated event.
func (s *Service) UpdateModule(moduleID uuid.UUID, values map[string]any) error {
	if values == nil {
		return errors.New("values cannot be nil")
	}

	if err := s.repo.UpdateMany(&entity.Module{}, moduleID, values); err != nil {
		return fmt.Errorf("failed to update module in repository: %w", err)
	}

	return s.republishModule(moduleID)
}

// UpdateModuleStatus changes the publication status of a module.
func (s *Service) UpdateModuleStatus(moduleID uuid.UUID, status string) error {
	if err := s.repo.Update(&entity.Module{}, moduleID, "Status", status); err != nil {
		return fmt.Errorf("failed to update module status in repository: %w", err)
	}

	return s.republishModule(moduleID)
}

// DeleteModule removes a module, evicts it from the cache and publishes
// the module.deleted event.
func (s *Service) DeleteModule(moduleID uuid.UUID) error {
	if err := s.repo.Delete(&entity.Module{}, moduleID); err != nil {
		return fmt.Errorf("failed to delete module in repository: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.cashTimeout)
	defer cancel()

	if err := s.casher.RemoveFromCash(ctx, moduleID.String()); err != nil {
		return fmt.Errorf("failed to evict module from cache: %w", err)
	}

	return s.publisher.Publish(moduleID.String(), entity.EventModuleDeleted)
}

// republishModule reloads a module and pushes its fresh state to the
// cache and the output exchange.
func (s *Service) republishModule(moduleID uuid.UUID) error {
	module, err := s.repo.GetModule(moduleID)
	if err != nil {
		return fmt.Errorf("failed to retrieve updated module: %w", err)
	}

	cherr := make(chan error, 1)

	go func() {
		cherr <- s.cash(module.ID.String(), module)
	}()

	if err := s.publisher.Publish(module, entity.EventModuleUpdated); err != nil {
		return fmt.Errorf("failed to publish module.updated: %w", err)
	}

	return <-cherr
}

// CreateContent persists a new content item, caches it and publishes the
// content.created event.
func (s *Service) CreateContent(content *entity.Content) error {
	if content == nil {
		return errors.New("content cannot be nil")
	}

	if err := s.repo.Create(content); err != nil {
		return fmt.Errorf("failed to create content in repository: %w", err)
	}

	cherr := make(chan error, 1)

	go func() {
		cherr <- s.cash(content.ID.String(), content)
	}()

	if err := s.publisher.Publish(content, entity.EventContentCreated); err != nil {
		return fmt.Errorf("failed to publish content.created: %w", err)
	}

	return <-cherr
}

// UpdateContent updates multiple content columns, refreshes the cache and
// publishes the content.updated event.
func (s *Service) UpdateContent(contentID uuid.UUID, values map[string]any) error {
	if values == nil {
		return errors.New("values cannot be nil")
	}

	if err := s.repo.UpdateMany(&entity.Content{}, contentID, values); err != nil {
		return fmt.Errorf("failed to update content in repository: %w", err)
	}

	return s.republishContent(contentID)
}

// DeleteContent removes a content item and its cache entry.
func (s *Service) DeleteContent(contentID uuid.UUID) error {
	if err := s.repo.Delete(&entity.Content{}, contentID); err != nil {
		return fmt.Errorf("failed to delete content in repository: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.cashTimeout)
	defer cancel()

	if err := s.casher.RemoveFromCash(ctx, contentID.String()); err != nil {
		return fmt.Errorf("failed to evict content from cache: %w", err)
	}

	return s.publisher.Publish(contentID.String(), entity.EventContentDeleted)
}

// SaveQuestionnaire replaces the questionnaire of a content item with the
// finalized questions emitted by the option builder.
func (s *Service) SaveQuestionnaire(contentID uuid.UUID, questions []editor.Question) error {
	if err := s.repo.ReplaceQuestions(contentID, questionEntities(questions)); err != nil {
		return fmt.Errorf("failed to replace questionnaire in repository: %w", err)
	}

	return s.republishContent(contentID)
}

// republishContent reloads a content item and pushes its fresh state to
// the cache and the output exchange.
func (s *Service) republishContent(contentID uuid.UUID) error {
	content, err := s.repo.GetContent(contentID)
	if err != nil {
		return fmt.Errorf("failed to retrieve updated content: %w", err)
	}

	cherr := make(chan error, 1)

	go func() {
		cherr <- s.cash(content.ID.String(), content)
	}()

	if err := s.publisher.Publish(content, entity.EventContentUpdated); err != nil {
		return fmt.Errorf("failed to publish content.updated: %w", err)
	}

	return <-cherr
}

// questionEntities converts finalized builder questions into their stored
// representation. The builder already rewrote option order to match the
// final positions.
func questionEntities(questions []editor.Question) []entity.Question {
	out := make([]entity.Question, len(questions))

	for i, q := range questions {
		options := make([]entity.Option, len(q.Options))
		for j, o := range q.Options {
			options[j] = entity.Option{
				OptionValue: o.OptionValue,
				OptionOrder: uint(o.OptionOrder),
				IsCorrect:   o.IsCorrect,
			}
		}

		out[i] = entity.Question{
			QuestionText: q.QuestionText,
			OrderNumber:  uint(i),
			Options:      options,
		}
	}

	return out
}

// CreatePlaylist persists a new playlist, caches it and publishes the
// playlist.created event.
func (s *Service) CreatePlaylist(playlist *entity.Playlist) error {
	if playlist == nil {
		return errors.New("playlist cannot be nil")
	}

	if err := s.repo.Create(playlist); err != nil {
		return fmt.Errorf("failed to create playlist in repository: %w", err)
	}

	cherr := make(chan error, 1)

	go func() {
		cherr <- s.cash(playlist.ID.String(), playlist)
	}()

	if err := s.publisher.Publish(playlist, entity.EventPlaylistCreated); err != nil {
		return fmt.Errorf("failed to publish playlist.created: %w", err)
	}

	return <-cherr
}

// UpdatePlaylist updates multiple playlist columns, refreshes the cache
// and publishes the playlist.updated event.
func (s *Service) UpdatePlaylist(playlistID uuid.UUID, values map[string]any) error {
	if values == nil {
		return errors.New("values cannot be nil")
	}

	if err := s.repo.UpdateMany(&entity.Playlist{}, playlistID, values); err != nil {
		return fmt.Errorf("failed to update playlist in repository: %w", err)
	}

	playlist, err := s.repo.GetPlaylist(playlistID)
	if err != nil {
		return fmt.Errorf("failed to retrieve updated playlist: %w", err)
	}

	cherr := make(chan error, 1)

	go func() {
		cherr <- s.cash(playlist.ID.String(), playlist)
	}()

	if err := s.publisher.Publish(playlist, entity.EventPlaylistUpdated); err != nil {
		return fmt.Errorf("failed to publish playlist.updated: %w", err)
	}

	return <-cherr
}

// InviteUser persists a new user account and publishes the user.invited
// event so the notification service can send the invitation.
func (s *Service) InviteUser(user *entity.User) error {
	if user == nil {
		return errors.New("user cannot be nil")
	}

	if err := s.repo.Create(user); err != nil {
		return fmt.Errorf("failed to create user in repository: %w", err)
	}

	return s.publisher.Publish(user, entity.EventUserInvited)
}

// UpdateUser updates multiple user columns and publishes the user.updated
// event.
func (s *Service) UpdateUser(userID uuid.UUID, values map[string]any) error {
	if values == nil {
		return errors.New("values cannot be nil")
	}

	if err := s.repo.UpdateMany(&entity.User{}, userID, values); err != nil {
		return fmt.Errorf("failed to update user in repository: %w", err)
	}

	return s.publisher.Publish(userID.String(), entity.EventUserUpdated)
}
