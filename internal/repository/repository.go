// Package repository provides data persistence functionality using GORM
package repository

import (
	"fmt"
	"strings"

	"github.com/Koyo-os/learnhub-admin/internal/entity"
	"github.com/Koyo-os/learnhub-admin/pkg/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Repository handles database operations using GORM
type Repository struct {
	db     *gorm.DB
	logger *logger.Logger
}

// Init creates and returns a new Repository instance
func Init(db *gorm.DB, logger *logger.Logger) *Repository {
	return &Repository{
		db:     db,
		logger: logger,
	}
}

// Migrate creates or updates the schema for all managed entities.
func (repo *Repository) Migrate() error {
	return repo.db.AutoMigrate(
		&entity.User{},
		&entity.Keyword{},
		&entity.Module{},
		&entity.Content{},
		&entity.Question{},
		&entity.Option{},
		&entity.Playlist{},
		&entity.PlaylistContent{},
	)
}

// IsHealthy reports whether the underlying database answers a ping.
func (repo *Repository) IsHealthy() bool {
	db, err := repo.db.DB()
	if err != nil {
		return false
	}

	return db.Ping() == nil
}

// Create persists a new entity in the database
func (repo *Repository) Create(payload any) error {
	res := repo.db.Create(payload)

	if err := res.Error; err != nil {
		repo.logger.Error("error create entity", zap.Error(err))
		return err
	}

	return nil
}

// GetModule retrieves a module by its ID, including keywords and creator
func (repo *Repository) GetModule(ID uuid.UUID) (*entity.Module, error) {
	var module entity.Module

	res := repo.db.
		Preload("Keywords").
		Preload("CreatedBy").
		Where("ID = ?", ID).
		First(&module)
	if err := res.Error; err != nil {
		repo.logger.Error("error get module",
			zap.String("module_id", ID.String()),
			zap.Error(err),
		)
		return nil, err
	}

	return &module, nil
}

// GetContent retrieves a content item by its ID, including its questions
// and their options
func (repo *Repository) GetContent(ID uuid.UUID) (*entity.Content, error) {
	var content entity.Content

	res := repo.db.
		Preload("Questions.Options").
		Where("ID = ?", ID).
		First(&content)
	if err := res.Error; err != nil {
		repo.logger.Error("error get content",
			zap.String("content_id", ID.String()),
			zap.Error(err),
		)
		return nil, err
	}

	return &content, nil
}

// GetPlaylist retrieves a playlist by its ID, including keywords and
// content references
func (repo *Repository) GetPlaylist(ID uuid.UUID) (*entity.Playlist, error) {
	var playlist entity.Playlist

	res := repo.db.
		Preload("Keywords").
		Preload("Content").
		Where("ID = ?", ID).
		First(&playlist)
	if err := res.Error; err != nil {
		repo.logger.Error("error get playlist",
			zap.String("playlist_id", ID.String()),
			zap.Error(err),
		)
		return nil, err
	}

	return &playlist, nil
}

// GetUser retrieves a user by its ID
func (repo *Repository) GetUser(ID uuid.UUID) (*entity.User, error) {
	var user entity.User

	res := repo.db.Where("ID = ?", ID).First(&user)
	if err := res.Error; err != nil {
		repo.logger.Error("error get user",
			zap.String("user_id", ID.String()),
			zap.Error(err),
		)
		return nil, err
	}

	return &user, nil
}

// Update modifies a single column of an entity identified by model and ID
func (repo *Repository) Update(model any, ID uuid.UUID, key string, value any) error {
	res := repo.db.Model(model).Where("ID = ?", ID).Update(key, value)

	if err := res.Error; err != nil {
		repo.logger.Error("error update entity",
			zap.String("id", ID.String()),
			zap.String("column", key),
			zap.Error(err),
		)
		return err
	}

	return nil
}

// UpdateMany updates multiple columns of an entity simultaneously
func (repo *Repository) UpdateMany(model any, ID uuid.UUID, values any) error {
	res := repo.db.Model(model).Where("ID = ?", ID).Updates(values)

	if err := res.Error; err != nil {
		repo.logger.Error("error update many",
			zap.String("id", ID.String()),
			zap.Error(err))
		return err
	}

	return nil
}

// Delete removes an entity by ID
func (repo *Repository) Delete(model any, ID uuid.UUID) error {
	res := repo.db.Where("ID = ?", ID).Delete(model)

	if err := res.Error; err != nil {
		repo.logger.Error("error delete entity",
			zap.String("id", ID.String()),
			zap.Error(err),
		)
		return err
	}

	return nil
}

// normalizeOrder restricts the order parameter to the two directions the
// listing endpoints accept.
func normalizeOrder(order string) string {
	if strings.EqualFold(order, "ASC") {
		return "ASC"
	}

	return "DESC"
}

// paginate applies the requested page window to a query.
func paginate(db *gorm.DB, page, take int) *gorm.DB {
	if page < 1 {
		page = 1
	}
	if take < 1 {
		take = 10
	}

	return db.Offset((page - 1) * take).Limit(take)
}

// ListModules returns one page of modules ordered by creation time,
// optionally filtered by a title substring.
func (repo *Repository) ListModules(page, take int, order, query string) ([]entity.Module, entity.PageMeta, error) {
	var (
		modules []entity.Module
		count   int64
	)

	base := repo.db.Model(&entity.Module{})
	if query != "" {
		base = base.Where("title LIKE ?", "%"+query+"%")
	}

	if err := base.Count(&count).Error; err != nil {
		repo.logger.Error("error count modules", zap.Error(err))
		return nil, entity.PageMeta{}, err
	}

	res := paginate(base, page, take).
		Order(fmt.Sprintf("created_at %s", normalizeOrder(order))).
		Preload("Keywords").
		Preload("CreatedBy").
		Find(&modules)
	if err := res.Error; err != nil {
		repo.logger.Error("error list modules",
			zap.Int("page", page),
			zap.Error(err))
		return nil, entity.PageMeta{}, err
	}

	return modules, entity.NewPageMeta(page, take, int(count)), nil
}

// ListContent returns one page of content, scoped to a module when
// moduleID is not empty.
func (repo *Repository) ListContent(page, take int, order, query, moduleID string) ([]entity.Content, entity.PageMeta, error) {
	var (
		content []entity.Content
		count   int64
	)

	base := repo.db.Model(&entity.Content{})
	if moduleID != "" {
		base = base.Where("module_id = ?", moduleID)
	}
	if query != "" {
		base = base.Where("title LIKE ?", "%"+query+"%")
	}

	if err := base.Count(&count).Error; err != nil {
		repo.logger.Error("error count content", zap.Error(err))
		return nil, entity.PageMeta{}, err
	}

	res := paginate(base, page, take).
		Order(fmt.Sprintf("session_no %s", normalizeOrder(order))).
		Preload("Questions.Options").
		Find(&content)
	if err := res.Error; err != nil {
		repo.logger.Error("error list content",
			zap.Int("page", page),
			zap.String("module_id", moduleID),
			zap.Error(err))
		return nil, entity.PageMeta{}, err
	}

	return content, entity.NewPageMeta(page, take, int(count)), nil
}

// ListPlaylists returns one page of playlists.
func (repo *Repository) ListPlaylists(page, take int, order, query string) ([]entity.Playlist, entity.PageMeta, error) {
	var (
		playlists []entity.Playlist
		count     int64
	)

	base := repo.db.Model(&entity.Playlist{})
	if query != "" {
		base = base.Where("name LIKE ?", "%"+query+"%")
	}

	if err := base.Count(&count).Error; err != nil {
		repo.logger.Error("error count playlists", zap.Error(err))
		return nil, entity.PageMeta{}, err
	}

	res := paginate(base, page, take).
		Order(fmt.Sprintf("created_at %s", normalizeOrder(order))).
		Preload("Keywords").
		Preload("Content").
		Find(&playlists)
	if err := res.Error; err != nil {
		repo.logger.Error("error list playlists",
			zap.Int("page", page),
			zap.Error(err))
		return nil, entity.PageMeta{}, err
	}

	return playlists, entity.NewPageMeta(page, take, int(count)), nil
}

// ListUsers returns one page of users, optionally filtered by name or
// email substring.
func (repo *Repository) ListUsers(page, take int, order, query string) ([]entity.User, entity.PageMeta, error) {
	var (
		users []entity.User
		count int64
	)

	base := repo.db.Model(&entity.User{})
	if query != "" {
		pattern := "%" + query + "%"
		base = base.Where("user_name LIKE ? OR email LIKE ?", pattern, pattern)
	}

	if err := base.Count(&count).Error; err != nil {
		repo.logger.Error("error count users", zap.Error(err))
		return nil, entity.PageMeta{}, err
	}

	res := paginate(base, page, take).
		Order(fmt.Sprintf("created_at %s", normalizeOrder(order))).
		Find(&users)
	if err := res.Error; err != nil {
		repo.logger.Error("error list users",
			zap.Int("page", page),
			zap.Error(err))
		return nil, entity.PageMeta{}, err
	}

	return users, entity.NewPageMeta(page, take, int(count)), nil
}

// ReplaceQuestions swaps the stored questionnaire of a content item for
// the finalized question list emitted by the option builder.
func (repo *Repository) ReplaceQuestions(contentID uuid.UUID, questions []entity.Question) error {
	return repo.db.Transaction(func(tx *gorm.DB) error {
		var existing []entity.Question
		if err := tx.Where("content_id = ?", contentID).Find(&existing).Error; err != nil {
			return err
		}

		for i := range existing {
			if err := tx.Where("question_id = ?", existing[i].ID).
				Delete(&entity.Option{}).Error; err != nil {
				return err
			}
		}

		if err := tx.Where("content_id = ?", contentID).
			Delete(&entity.Question{}).Error; err != nil {
			return err
		}

		for i := range questions {
			questions[i].ContentID = contentID
			questions[i].OrderNumber = uint(i)
		}

		if len(questions) == 0 {
			return nil
		}

		if err := tx.Create(&questions).Error; err != nil {
			repo.logger.Error("error replace questions",
				zap.String("content_id", contentID.String()),
				zap.Error(err))
			return err
		}

		return nil
	})
}
