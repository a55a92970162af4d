// Package editor implements the questionnaire option builder: an ordered set
// of answer options with a correctness subset, edited in place and flattened
// into the host content form's question list on save.
package editor

import (
	"errors"
	"strings"

	"github.com/Koyo-os/learnhub-admin/internal/validation"
	"github.com/google/uuid"
)

type (
	// Option is an in-progress answer option. LocalID is a client-only
	// identity used for drag ordering and correctness tracking; it is
	// generated once and never reused, even after reordering.
	Option struct {
		LocalID string
		Value   string
	}

	// QuestionOption is one finalized answer option as persisted.
	QuestionOption struct {
		OptionValue string `json:"option_value"`
		OptionOrder int    `json:"option_order"`
		IsCorrect   bool   `json:"is_correct"`
	}

	// Question is one finalized questionnaire entry in the host form.
	Question struct {
		QuestionText string           `json:"question_text"`
		Options      []QuestionOption `json:"options"`
	}

	// PendingDelete records a requested question deletion awaiting
	// confirmation.
	PendingDelete struct {
		Index        int
		QuestionText string
	}

	// Editor is the stateful controller behind the add/edit question
	// modal. One instance belongs to one open modal session.
	Editor struct {
		idgen func() string

		open         bool
		questionText string
		options      []Option
		correct      map[string]struct{}
		editingIndex int // -1 while adding a new question

		pending *PendingDelete
	}
)

// saveRules are the question-level constraints checked on save, evaluated
// through the shared rule engine.
var saveRules = validation.RuleSet{
	"questionText": {
		Required: &validation.Required{Value: true, Message: "Question cannot be empty or whitespace."},
	},
	"options": {
		Custom: validation.Predicate(func(value any, _ validation.Values) string {
			opts, _ := value.([]string)
			for _, v := range opts {
				if v == "" {
					return "All options must have non-empty values."
				}
			}
			if len(opts) < 2 {
				return "Please add at least two options."
			}
			return ""
		}),
	},
	"correctOptionIds": {
		Required: &validation.Required{Value: true, Message: "Please select at least one correct answer."},
	},
}

// saveOrder fixes which constraint is reported first, since only one
// message is surfaced per failed save.
var saveOrder = []string{"questionText", "options", "correctOptionIds"}

// New creates an Editor. idgen supplies the option identity keys; pass nil
// for random UUIDs.
func New(idgen func() string) *Editor {
	if idgen == nil {
		idgen = uuid.NewString
	}

	return &Editor{
		idgen:        idgen,
		correct:      make(map[string]struct{}),
		editingIndex: -1,
	}
}

// Open starts an add-new-question session with blank state.
func (e *Editor) Open() {
	e.open = true
	e.questionText = ""
	e.options = nil
	e.correct = make(map[string]struct{})
	e.editingIndex = -1
}

// OpenForEdit starts an edit session seeded from an existing question. The
// correctness set is rebuilt from the stored IsCorrect flags; each option
// receives its identity key once and keeps it for the whole session.
func (e *Editor) OpenForEdit(index int, question Question) {
	e.open = true
	e.questionText = question.QuestionText
	e.editingIndex = index
	e.options = make([]Option, len(question.Options))
	e.correct = make(map[string]struct{})

	for i, opt := range question.Options {
		localID := e.idgen()
		e.options[i] = Option{LocalID: localID, Value: opt.OptionValue}
		if opt.IsCorrect {
			e.correct[localID] = struct{}{}
		}
	}
}

// AddOption appends a blank option and returns its identity key so the
// caller can move focus to it.
func (e *Editor) AddOption() string {
	localID := e.idgen()
	e.options = append(e.options, Option{LocalID: localID})

	return localID
}

// RemoveOption drops the option and its correctness mark.
func (e *Editor) RemoveOption(localID string) {
	for i, opt := range e.options {
		if opt.LocalID == localID {
			e.options = append(e.options[:i], e.options[i+1:]...)
			break
		}
	}

	delete(e.correct, localID)
}

// SetOptionValue replaces the text of one option.
func (e *Editor) SetOptionValue(localID, value string) {
	for i := range e.options {
		if e.options[i].LocalID == localID {
			e.options[i].Value = value
			return
		}
	}
}

// SetQuestionText replaces the question text.
func (e *Editor) SetQuestionText(text string) {
	e.questionText = text
}

// Reorder moves the option at from to position to. Identity keys and the
// correctness set are untouched, so reordering can never change which
// options count as correct.
func (e *Editor) Reorder(from, to int) {
	if from < 0 || from >= len(e.options) || to < 0 || to >= len(e.options) || from == to {
		return
	}

	moved := e.options[from]
	e.options = append(e.options[:from], e.options[from+1:]...)

	rest := append(e.options[:to:to], moved)
	e.options = append(rest, e.options[to:]...)
}

// ToggleCorrect flips the correctness mark of one option. Any number of
// options may be correct at the same time.
func (e *Editor) ToggleCorrect(localID string) {
	if _, ok := e.correct[localID]; ok {
		delete(e.correct, localID)
		return
	}

	for _, opt := range e.options {
		if opt.LocalID == localID {
			e.correct[localID] = struct{}{}
			return
		}
	}
}

// Save finalizes the session into host. Texts are trimmed, the constraints
// are checked through the rule engine and the first failing one is returned
// without closing the editor. On success the option order is rewritten to
// the final positions, the question replaces the entry at the editing index
// or is appended, and the editor closes.
func (e *Editor) Save(host *[]Question) error {
	text := strings.TrimSpace(e.questionText)

	optionValues := make([]string, len(e.options))
	for i, opt := range e.options {
		optionValues[i] = strings.TrimSpace(opt.Value)
	}

	correctIDs := make([]string, 0, len(e.correct))
	for id := range e.correct {
		correctIDs = append(correctIDs, id)
	}

	errs := validation.Evaluate(validation.Values{
		"questionText":     text,
		"options":          optionValues,
		"correctOptionIds": correctIDs,
	}, saveRules)

	for _, field := range saveOrder {
		if msg := errs[field]; msg != "" {
			return errors.New(msg)
		}
	}

	question := Question{
		QuestionText: text,
		Options:      make([]QuestionOption, len(e.options)),
	}
	for i, opt := range e.options {
		_, isCorrect := e.correct[opt.LocalID]
		question.Options[i] = QuestionOption{
			OptionValue: optionValues[i],
			OptionOrder: i,
			IsCorrect:   isCorrect,
		}
	}

	if e.editingIndex >= 0 && e.editingIndex < len(*host) {
		(*host)[e.editingIndex] = question
	} else {
		*host = append(*host, question)
	}

	e.reset()

	return nil
}

// Cancel discards all in-progress edits; the host question list is
// untouched.
func (e *Editor) Cancel() {
	e.reset()
}

func (e *Editor) reset() {
	e.open = false
	e.questionText = ""
	e.options = nil
	e.correct = make(map[string]struct{})
	e.editingIndex = -1
}

// IsOpen reports whether a modal session is active.
func (e *Editor) IsOpen() bool {
	return e.open
}

// QuestionText returns the current question text.
func (e *Editor) QuestionText() string {
	return e.questionText
}

// Options returns a snapshot of the current option order.
func (e *Editor) Options() []Option {
	out := make([]Option, len(e.options))
	copy(out, e.options)

	return out
}

// IsCorrect reports whether the option is marked correct.
func (e *Editor) IsCorrect(localID string) bool {
	_, ok := e.correct[localID]
	return ok
}

// EditingIndex returns the host index being edited, or -1 when adding.
func (e *Editor) EditingIndex() int {
	return e.editingIndex
}

// RequestDelete records a pending deletion of the question at index. The
// host list is not touched until the deletion is confirmed.
func (e *Editor) RequestDelete(index int, host []Question) {
	if index < 0 || index >= len(host) {
		return
	}

	e.pending = &PendingDelete{
		Index:        index,
		QuestionText: host[index].QuestionText,
	}
}

// Pending returns the deletion awaiting confirmation, if any.
func (e *Editor) Pending() (PendingDelete, bool) {
	if e.pending == nil {
		return PendingDelete{}, false
	}

	return *e.pending, true
}

// ConfirmDelete removes the pending question from host and clears the
// pending record.
func (e *Editor) ConfirmDelete(host *[]Question) {
	if e.pending == nil {
		return
	}

	index := e.pending.Index
	if index >= 0 && index < len(*host) {
		*host = append((*host)[:index], (*host)[index+1:]...)
	}

	e.pending = nil
}

// DismissDelete clears the pending record without mutating the host list.
func (e *Editor) DismissDelete() {
	e.pending = nil
}
