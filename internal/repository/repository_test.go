package repository

import (
	"context"
	"fmt"
	"testing"

	"github.com/Koyo-os/learnhub-admin/internal/collection"
	"github.com/Koyo-os/learnhub-admin/internal/entity"
	"github.com/Koyo-os/learnhub-admin/pkg/logger"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupRepo(t *testing.T) *Repository {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	repo := Init(db, logger.Get())
	require.NoError(t, repo.Migrate())

	return repo
}

func createModules(t *testing.T, repo *Repository, titles ...string) []entity.Module {
	t.Helper()

	modules := make([]entity.Module, len(titles))
	for i, title := range titles {
		modules[i] = entity.Module{
			ID:     uuid.New(),
			Title:  title,
			Status: entity.StatusDraft,
		}
		require.NoError(t, repo.Create(&modules[i]))
	}

	return modules
}

func TestCreateAndGetModule(t *testing.T) {
	repo := setupRepo(t)

	creator := entity.User{
		ID:       uuid.New(),
		UserName: "maria",
		Email:    "maria@example.com",
		Role:     entity.RoleAdmin,
	}
	require.NoError(t, repo.Create(&creator))

	module := entity.Module{
		ID:          uuid.New(),
		Title:       "Intro to Go",
		Status:      entity.StatusDraft,
		CreatedByID: creator.ID,
		Keywords: []entity.Keyword{
			{ID: uuid.New(), Name: "go"},
			{ID: uuid.New(), Name: "basics"},
		},
	}
	require.NoError(t, repo.Create(&module))

	got, err := repo.GetModule(module.ID)
	require.NoError(t, err)

	assert.Equal(t, "Intro to Go", got.Title)
	assert.Equal(t, "maria", got.CreatedBy.UserName)
	assert.Len(t, got.Keywords, 2)
}

func TestUpdateAndDeleteModule(t *testing.T) {
	repo := setupRepo(t)
	modules := createModules(t, repo, "Draft module")

	err := repo.Update(&entity.Module{}, modules[0].ID, "status", entity.StatusPublished)
	require.NoError(t, err)

	got, err := repo.GetModule(modules[0].ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusPublished, got.Status)

	require.NoError(t, repo.Delete(&entity.Module{}, modules[0].ID))

	_, err = repo.GetModule(modules[0].ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestListModulesPagination(t *testing.T) {
	repo := setupRepo(t)
	createModules(t, repo, "Go 1", "Go 2", "Go 3", "Rust 1", "Rust 2")

	t.Run("pages carry meta for the full result set", func(t *testing.T) {
		modules, meta, err := repo.ListModules(1, 2, "ASC", "")
		require.NoError(t, err)

		assert.Len(t, modules, 2)
		assert.Equal(t, 5, meta.ItemCount)
		assert.Equal(t, 3, meta.PageCount)
		assert.False(t, meta.HasPreviousPage)
		assert.True(t, meta.HasNextPage)
	})

	t.Run("last page has no next page", func(t *testing.T) {
		modules, meta, err := repo.ListModules(3, 2, "ASC", "")
		require.NoError(t, err)

		assert.Len(t, modules, 1)
		assert.True(t, meta.HasPreviousPage)
		assert.False(t, meta.HasNextPage)
	})

	t.Run("query filters by title substring", func(t *testing.T) {
		modules, meta, err := repo.ListModules(1, 10, "ASC", "Rust")
		require.NoError(t, err)

		assert.Len(t, modules, 2)
		assert.Equal(t, 2, meta.ItemCount)
	})
}

func TestListContentScopedToModule(t *testing.T) {
	repo := setupRepo(t)

	moduleA := uuid.New()
	moduleB := uuid.New()

	for i, moduleID := range []uuid.UUID{moduleA, moduleA, moduleB} {
		content := entity.Content{
			ID:          uuid.New(),
			ModuleID:    moduleID,
			Title:       fmt.Sprintf("Session %d", i+1),
			SessionNo:   uint(i + 1),
			ContentType: entity.ContentTypeVideo,
		}
		require.NoError(t, repo.Create(&content))
	}

	content, meta, err := repo.ListContent(1, 10, "ASC", "", moduleA.String())
	require.NoError(t, err)

	assert.Len(t, content, 2)
	assert.Equal(t, 2, meta.ItemCount)
}

func TestReplaceQuestions(t *testing.T) {
	repo := setupRepo(t)

	content := entity.Content{
		ID:                  uuid.New(),
		ModuleID:            uuid.New(),
		Title:               "Quiz session",
		ContentType:         entity.ContentTypeVideo,
		QuestionnaireStatus: true,
	}
	require.NoError(t, repo.Create(&content))

	first := []entity.Question{
		{
			QuestionText: "What is the capital of France?",
			Options: []entity.Option{
				{OptionValue: "Paris", OptionOrder: 0, IsCorrect: true},
				{OptionValue: "London", OptionOrder: 1},
			},
		},
		{
			QuestionText: "Pick the even numbers.",
			Options: []entity.Option{
				{OptionValue: "2", OptionOrder: 0, IsCorrect: true},
				{OptionValue: "3", OptionOrder: 1},
				{OptionValue: "4", OptionOrder: 2, IsCorrect: true},
			},
		},
	}
	require.NoError(t, repo.ReplaceQuestions(content.ID, first))

	got, err := repo.GetContent(content.ID)
	require.NoError(t, err)
	require.Len(t, got.Questions, 2)
	assert.Equal(t, uint(0), got.Questions[0].OrderNumber)
	assert.Equal(t, uint(1), got.Questions[1].OrderNumber)
	assert.Len(t, got.Questions[1].Options, 3)

	second := []entity.Question{
		{
			QuestionText: "Replaced question",
			Options: []entity.Option{
				{OptionValue: "Only", OptionOrder: 0, IsCorrect: true},
				{OptionValue: "Two", OptionOrder: 1},
			},
		},
	}
	require.NoError(t, repo.ReplaceQuestions(content.ID, second))

	got, err = repo.GetContent(content.ID)
	require.NoError(t, err)
	require.Len(t, got.Questions, 1)
	assert.Equal(t, "Replaced question", got.Questions[0].QuestionText)

	require.NoError(t, repo.ReplaceQuestions(content.ID, nil))

	got, err = repo.GetContent(content.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Questions)
}

func TestModuleFetcherFeedsSynchronizer(t *testing.T) {
	repo := setupRepo(t)
	createModules(t, repo, "M1", "M2", "M3", "M4", "M5")

	sync := collection.New(repo.ModuleFetcher(), 2, "ASC")
	ctx := context.Background()

	require.NoError(t, sync.FetchNext(ctx, false))
	assert.Len(t, sync.Items(), 2)
	assert.True(t, sync.HasMore())

	require.NoError(t, sync.FetchNext(ctx, false))
	require.NoError(t, sync.FetchNext(ctx, false))

	assert.Len(t, sync.Items(), 5)
	assert.False(t, sync.HasMore())
}

func TestUserFetcherFeedsPicker(t *testing.T) {
	repo := setupRepo(t)

	for _, name := range []string{"ana", "ben", "carl"} {
		user := entity.User{
			ID:       uuid.New(),
			UserName: name,
			Email:    name + "@example.com",
			Role:     entity.RoleMember,
		}
		require.NoError(t, repo.Create(&user))
	}

	picker := collection.NewPicker(repo.UserFetcher(), 10, "ASC")
	ctx := context.Background()

	require.NoError(t, picker.FetchNext(ctx, true))
	require.Len(t, picker.Items(), 3)

	selected := picker.Items()[1]
	picker.Select(selected)

	require.NoError(t, picker.SetQuery(ctx, "no-such-user"))

	items := picker.Items()
	require.Len(t, items, 1)
	assert.Equal(t, selected.EntityID(), items[0].EntityID())
}
