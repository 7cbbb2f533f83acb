package domain

import (
	"time"

	"github.com/google/uuid"
)

// ComposerState - состояние формы создания расписания
type ComposerState string

const (
	ComposerEditing    ComposerState = "editing"
	ComposerValidating ComposerState = "validating"
	ComposerCommitting ComposerState = "committing"
	ComposerClosed     ComposerState = "closed"
)

// ScheduleDraft - открытая форма создания расписания
type ScheduleDraft struct {
	ID        uuid.UUID     `json:"id"`
	State     ComposerState `json:"state"`
	Timestamp time.Time     `json:"timestamp"`
	Route     string        `json:"route"`
	Pickup    string        `json:"pickup"`
	Type      Provider      `json:"type"`
	Tier      Tier          `json:"tier"`
	Seating   Seating       `json:"seating"`
	Rating    *float64      `json:"rating,omitempty"`
	Plate     string        `json:"plate"`
	OpenedAt  time.Time     `json:"opened_at"`

	// ScheduleID заполняется после успешного коммита
	ScheduleID *uuid.UUID `json:"schedule_id,omitempty"`
}

// Editable - поля можно менять только в editing
func (d *ScheduleDraft) Editable() bool {
	return d.State == ComposerEditing
}
