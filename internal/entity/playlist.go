package entity

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

type (
	// PlaylistContent links a playlist to a content item at a position
	PlaylistContent struct {
		PlaylistID uuid.UUID `gorm:"type:uuid;primaryKey"`
		ContentID  uuid.UUID `gorm:"type:uuid;primaryKey"`
		Position   uint      // Ordering of the content inside the playlist
	}

	// Playlist represents a curated ordered set of content items
	Playlist struct {
		ID          uuid.UUID `gorm:"type:uuid;primaryKey"` // Unique identifier
		Name        string    // Playlist name shown in lists
		Description string    // What the playlist covers
		Thumbnail   string    // Stored-object key of the cover image
		Status      string    // draft, published or archived
		CreatedByID uuid.UUID `gorm:"type:uuid"`
		CreatedBy   User      `gorm:"foreignKey:CreatedByID"`
		Keywords    []Keyword `gorm:"many2many:playlist_keywords"`
		Content     []PlaylistContent `gorm:"foreignKey:PlaylistID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
		CreatedAt   time.Time
		UpdatedAt   time.Time
	}

	// OutputPlaylist is a DTO for playlist data in API responses
	OutputPlaylist struct {
		ID          string          `json:"id"`
		Name        string          `json:"name"`
		Description string          `json:"description"`
		Thumbnail   string          `json:"thumbnail"`
		Status      string          `json:"status"`
		CreatedBy   string          `json:"created_by"`
		Keywords    []OutputKeyword `json:"keywords"`
		ContentIDs  []string        `json:"content_ids"`
		CreatedAt   string          `json:"created_at"`
	}
)

func (p *Playlist) Validate() error {
	if p.ID == uuid.Nil {
		return errors.New("playlist ID can not be nil")
	}
	if p.Name == "" {
		return errors.New("playlist name can not be empty")
	}
	if len(p.Content) == 0 {
		return errors.New("playlist must reference at least one content item")
	}

	return nil
}

// EntityID implements the stable identity used when merging paged results.
func (p Playlist) EntityID() string {
	return p.ID.String()
}

// ToOutput converts a Playlist entity to its DTO representation
func (p *Playlist) ToOutput() OutputPlaylist {
	keywords := make([]OutputKeyword, len(p.Keywords))
	for i, k := range p.Keywords {
		keywords[i] = k.ToOutput()
	}

	contentIDs := make([]string, len(p.Content))
	for i, c := range p.Content {
		contentIDs[i] = c.ContentID.String()
	}

	return OutputPlaylist{
		ID:          p.ID.String(),
		Name:        p.Name,
		Description: p.Description,
		Thumbnail:   p.Thumbnail,
		Status:      p.Status,
		CreatedBy:   p.CreatedBy.UserName,
		Keywords:    keywords,
		ContentIDs:  contentIDs,
		CreatedAt:   p.CreatedAt.String(),
	}
}
