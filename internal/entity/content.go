package entity

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Content media kinds.
const (
	ContentTypeVideo    = "video"
	ContentTypeAudio    = "audio"
	ContentTypeDocument = "document"
)

type (
	// Option represents a single answer option of a questionnaire question
	Option struct {
		gorm.Model
		QuestionID  uint   // Reference to the parent question
		OptionValue string // The answer text
		OptionOrder uint   // Position of the option within the question
		IsCorrect   bool   // Whether this option is a correct answer
	}

	// Question represents a questionnaire question attached to content
	Question struct {
		gorm.Model
		ContentID    uuid.UUID `gorm:"type:uuid"` // Reference to the parent content
		QuestionText string    // The actual question text
		OrderNumber  uint      // Position of question in the questionnaire
		Options      []Option  `gorm:"foreignKey:QuestionID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	}

	// Content represents a single media item inside a module
	Content struct {
		ID                  uuid.UUID `gorm:"type:uuid;primaryKey"` // Unique identifier
		ModuleID            uuid.UUID `gorm:"type:uuid"`            // Reference to the parent module
		Title               string    // Content title
		Description         string    // Content description
		SessionNo           uint      // Session the content belongs to
		Length              *uint     // Duration in seconds, nil for documents
		Thumbnail           string    // Stored-object key of the preview image
		ContentType         string    // video, audio or document
		URL                 string    // Stored-object key of the media itself
		QuestionnaireStatus bool      // Whether the questionnaire is enabled
		Questions           []Question `gorm:"foreignKey:ContentID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
		CreatedAt           time.Time
		UpdatedAt           time.Time
	}

	// OutputOption is a DTO for option data in API responses
	OutputOption struct {
		OptionValue string `json:"option_value"`
		OptionOrder uint   `json:"option_order"`
		IsCorrect   bool   `json:"is_correct"`
	}

	// OutputQuestion is a DTO for question data in API responses
	OutputQuestion struct {
		QuestionText string         `json:"question_text"`
		OrderNumber  uint           `json:"order_number"`
		Options      []OutputOption `json:"options"`
	}

	// OutputContent is a DTO for content data in API responses
	OutputContent struct {
		ID                  string           `json:"id"`
		ModuleID            string           `json:"module_id"`
		Title               string           `json:"title"`
		Description         string           `json:"description"`
		SessionNo           uint             `json:"session_no"`
		ContentType         string           `json:"content_type"`
		URL                 string           `json:"url"`
		QuestionnaireStatus bool             `json:"questionnaire_status"`
		Questions           []OutputQuestion `json:"questions"`
		CreatedAt           string           `json:"created_at"`
	}
)

func (c *Content) Validate() error {
	if c.ID == uuid.Nil {
		return errors.New("content ID can not be nil")
	}
	if c.ModuleID == uuid.Nil {
		return errors.New("content module ID can not be nil")
	}
	if c.Title == "" {
		return errors.New("content title can not be empty")
	}

	return nil
}

// EntityID implements the stable identity used when merging paged results.
func (c Content) EntityID() string {
	return c.ID.String()
}

// ToOutput converts an Option entity to its DTO representation
func (o *Option) ToOutput() OutputOption {
	return OutputOption{
		OptionValue: o.OptionValue,
		OptionOrder: o.OptionOrder,
		IsCorrect:   o.IsCorrect,
	}
}

// ToOutput converts a Question entity to its DTO representation
func (q *Question) ToOutput() OutputQuestion {
	options := make([]OutputOption, len(q.Options))
	for i, o := range q.Options {
		options[i] = o.ToOutput()
	}

	return OutputQuestion{
		QuestionText: q.QuestionText,
		OrderNumber:  q.OrderNumber,
		Options:      options,
	}
}

// ToOutput converts a Content entity to its DTO representation
// including all related questions
func (c *Content) ToOutput() OutputContent {
	questions := make([]OutputQuestion, len(c.Questions))
	for i, q := range c.Questions {
		questions[i] = q.ToOutput()
	}

	return OutputContent{
		ID:                  c.ID.String(),
		ModuleID:            c.ModuleID.String(),
		Title:               c.Title,
		Description:         c.Description,
		SessionNo:           c.SessionNo,
		ContentType:         c.ContentType,
		URL:                 c.URL,
		QuestionnaireStatus: c.QuestionnaireStatus,
		Questions:           questions,
		CreatedAt:           c.CreatedAt.String(),
	}
}

// ToJson converts a Content entity to its JSON representation
func (c *Content) ToJson() ([]byte, error) {
	out := c.ToOutput()

	contentJson, err := json.Marshal(&out)
	return contentJson, err
}
