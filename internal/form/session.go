// Package form implements the form session shared by every create/edit
// screen: it owns the values object, recomputes the error map through the
// rule engine on every change, and drives submission against the external
// persistence, upload and notification collaborators.
package form

import (
	"context"
	"errors"
	"sync"

	"github.com/Koyo-os/learnhub-admin/internal/validation"
	"github.com/Koyo-os/learnhub-admin/pkg/logger"
	"go.uber.org/zap"
)

// ErrInvalid is returned by Submit when the error map is not empty. The
// per-field messages stay available through Errors for inline display.
var ErrInvalid = errors.New("form has validation errors")

type (
	// Persister saves the finalized payload of one form submission.
	Persister interface {
		Persist(ctx context.Context, payload validation.Values) error
	}

	// Notifier is the sink for user-facing success and error messages.
	Notifier interface {
		Success(message string)
		Error(err error, fallback string)
	}

	// FileUpload carries a dirty file field awaiting upload.
	FileUpload struct {
		Name        string
		ContentType string
		Data        []byte
	}

	// Uploader stores a file and returns its stored-object key.
	Uploader interface {
		Upload(ctx context.Context, file FileUpload) (string, error)
	}

	// APIError is a structured rejection from the persistence
	// collaborator. Its message takes precedence over the generic
	// fallback when the failure is surfaced.
	APIError struct {
		Message string
		Status  int
	}

	// Session owns the transient state of one mounted form.
	Session struct {
		mu         sync.Mutex
		rules      validation.RuleSet
		values     validation.Values
		errors     validation.Errors
		submitting bool

		dirtyFiles map[string]FileUpload

		persister Persister
		uploader  Uploader
		notifier  Notifier
	}
)

func (e *APIError) Error() string {
	return e.Message
}

// NewSession creates a Session for one form type. uploader may be nil for
// forms without file fields.
func NewSession(rules validation.RuleSet, persister Persister, uploader Uploader, notifier Notifier) *Session {
	return &Session{
		rules:      rules,
		values:     make(validation.Values),
		errors:     make(validation.Errors),
		dirtyFiles: make(map[string]FileUpload),
		persister:  persister,
		uploader:   uploader,
		notifier:   notifier,
	}
}

// Set stores a field value and recomputes the error map.
func (s *Session) Set(field string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.values[field] = value
	s.errors = validation.Evaluate(s.values, s.rules)
}

// SetAll replaces several fields at once, then recomputes the error map.
// Used when seeding an edit form from a fetched entity.
func (s *Session) SetAll(values validation.Values) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for field, value := range values {
		s.values[field] = value
	}
	s.errors = validation.Evaluate(s.values, s.rules)
}

// AttachFile marks a file field dirty. The file is pushed through the
// upload collaborator on submit and the resulting key becomes the field
// value.
func (s *Session) AttachFile(field string, file FileUpload) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.dirtyFiles[field] = file
}

// Validate recomputes the error map from scratch and returns it.
func (s *Session) Validate() validation.Errors {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.errors = validation.Evaluate(s.values, s.rules)

	return s.snapshotErrors()
}

// Submit uploads dirty files, validates, and persists the payload. While a
// submission is in flight further Submit calls are no-ops. On persistence
// failure the values and errors are left as they are so the user can retry
// without re-entering data.
func (s *Session) Submit(ctx context.Context) error {
	s.mu.Lock()
	if s.submitting {
		s.mu.Unlock()
		return nil
	}
	s.submitting = true
	dirty := make(map[string]FileUpload, len(s.dirtyFiles))
	for field, file := range s.dirtyFiles {
		dirty[field] = file
	}
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.submitting = false
		s.mu.Unlock()
	}()

	if len(dirty) > 0 && s.uploader == nil {
		err := errors.New("form has file fields but no uploader")
		logger.Get().Error("error upload file field", zap.Error(err))
		s.notifier.Error(err, "Failed to upload file")
		return err
	}

	// A file leaves the dirty set only once its upload succeeded, so a
	// failed submission can be retried without re-attaching anything.
	for field, file := range dirty {
		key, err := s.uploader.Upload(ctx, file)
		if err != nil {
			logger.Get().Error("error upload file field",
				zap.String("field", field),
				zap.Error(err))

			s.notifier.Error(err, "Failed to upload file")
			return err
		}

		s.mu.Lock()
		s.values[field] = key
		delete(s.dirtyFiles, field)
		s.mu.Unlock()
	}

	s.mu.Lock()
	s.errors = validation.Evaluate(s.values, s.rules)
	if len(s.errors) > 0 {
		s.mu.Unlock()
		return ErrInvalid
	}
	payload := make(validation.Values, len(s.values))
	for field, value := range s.values {
		payload[field] = value
	}
	s.mu.Unlock()

	if err := s.persister.Persist(ctx, payload); err != nil {
		logger.Get().Error("error persist form payload", zap.Error(err))
		s.notifier.Error(err, "Failed to save changes")
		return err
	}

	s.notifier.Success("Saved successfully")

	return nil
}

// Values returns a snapshot of the current values object.
func (s *Session) Values() validation.Values {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(validation.Values, len(s.values))
	for field, value := range s.values {
		out[field] = value
	}

	return out
}

// Errors returns a snapshot of the current error map.
func (s *Session) Errors() validation.Errors {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.snapshotErrors()
}

// Submitting reports whether a submission is in flight.
func (s *Session) Submitting() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.submitting
}

// Reset destroys the transient form state, as on unmount.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.values = make(validation.Values)
	s.errors = make(validation.Errors)
	s.dirtyFiles = make(map[string]FileUpload)
}

func (s *Session) snapshotErrors() validation.Errors {
	out := make(validation.Errors, len(s.errors))
	for field, message := range s.errors {
		out[field] = message
	}

	return out
}
