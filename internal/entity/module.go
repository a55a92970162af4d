// Package entity defines the core data structures used throughout the application
package entity

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Module publication states.
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
	StatusArchived  = "archived"
)

type (
	// Keyword is a reusable tag attached to modules and playlists
	Keyword struct {
		ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
		Name      string    `gorm:"uniqueIndex"          json:"name"`
		CreatedAt time.Time `json:"created_at"`
		UpdatedAt time.Time `json:"updated_at"`
	}

	// Module represents a learning module grouping related content
	Module struct {
		ID           uuid.UUID `gorm:"type:uuid;primaryKey"` // Unique identifier
		Title        string    // Module name shown in lists
		Description  string    // What the module covers
		Thumbnail    string    // Stored-object key of the banner image
		Status       string    // draft, published or archived
		CreatedByID  uuid.UUID `gorm:"type:uuid"`
		CreatedBy    User      `gorm:"foreignKey:CreatedByID"`
		Keywords     []Keyword `gorm:"many2many:module_keywords"`
		ContentCount uint      // Number of content items attached
		CreatedAt    time.Time
		UpdatedAt    time.Time
	}

	// OutputKeyword is a DTO for keyword data in API responses
	OutputKeyword struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}

	// OutputModule is a DTO for module data in API responses
	OutputModule struct {
		ID           string          `json:"id"`
		Title        string          `json:"title"`
		Description  string          `json:"description"`
		Thumbnail    string          `json:"thumbnail"`
		Status       string          `json:"status"`
		CreatedBy    string          `json:"created_by"`
		Keywords     []OutputKeyword `json:"keywords"`
		ContentCount uint            `json:"content_count"`
		CreatedAt    string          `json:"created_at"`
	}
)

func (m *Module) Validate() error {
	if m.ID == uuid.Nil {
		return errors.New("module ID can not be nil")
	}
	if m.Title == "" {
		return errors.New("module title can not be empty")
	}

	return nil
}

// EntityID implements the stable identity used when merging paged results.
func (m Module) EntityID() string {
	return m.ID.String()
}

// ToOutput converts a Keyword entity to its DTO representation
func (k *Keyword) ToOutput() OutputKeyword {
	return OutputKeyword{
		ID:   k.ID.String(),
		Name: k.Name,
	}
}

// ToOutput converts a Module entity to its DTO representation
// including all attached keywords
func (m *Module) ToOutput() OutputModule {
	keywords := make([]OutputKeyword, len(m.Keywords))
	for i, k := range m.Keywords {
		keywords[i] = k.ToOutput()
	}

	return OutputModule{
		ID:           m.ID.String(),
		Title:        m.Title,
		Description:  m.Description,
		Thumbnail:    m.Thumbnail,
		Status:       m.Status,
		CreatedBy:    m.CreatedBy.UserName,
		Keywords:     keywords,
		ContentCount: m.ContentCount,
		CreatedAt:    m.CreatedAt.String(),
	}
}

// ToJson converts a Module entity to its JSON representation
func (m *Module) ToJson() ([]byte, error) {
	out := m.ToOutput()

	moduleJson, err := json.Marshal(&out)
	return moduleJson, err
}
