package dto

import (
	"time"

	"github.com/nextbus-service/internal/domain"
)

// UpdateDraftRequest - частичное изменение черновика; nil поля не трогаются
type UpdateDraftRequest struct {
	Timestamp *time.Time `json:"timestamp,omitempty"`
	Route     *string    `json:"route,omitempty" validate:"omitempty,max=128"`
	Pickup    *string    `json:"pickup,omitempty" validate:"omitempty,max=255"`
	Type      *string    `json:"type,omitempty" validate:"omitempty,max=32"`
	Tier      *string    `json:"tier,omitempty" validate:"omitempty,max=16"`
	Seating   *string    `json:"seating,omitempty" validate:"omitempty,max=32"`
	Rating    *float64   `json:"rating,omitempty"`
	Plate     *string    `json:"plate,omitempty" validate:"omitempty,max=16"`
}

// DraftResponse - состояние черновика
type DraftResponse struct {
	ID         string    `json:"id"`
	State      string    `json:"state"`
	Timestamp  time.Time `json:"timestamp"`
	Route      string    `json:"route"`
	Pickup     string    `json:"pickup"`
	Type       string    `json:"type"`
	Tier       string    `json:"tier"`
	TierLabel  string    `json:"tier_label"`
	Seating    string    `json:"seating"`
	Rating     *float64  `json:"rating,omitempty"`
	Plate      string    `json:"plate"`
	OpenedAt   time.Time `json:"opened_at"`
	ScheduleID string    `json:"schedule_id,omitempty"`
}

// ConfirmDraftResponse - результат подтверждения черновика
type ConfirmDraftResponse struct {
	Draft    DraftResponse           `json:"draft"`
	Schedule *ScheduleDetailResponse `json:"schedule"`
}

func NewDraftResponse(d *domain.ScheduleDraft) DraftResponse {
	resp := DraftResponse{
		ID:        d.ID.String(),
		State:     string(d.State),
		Timestamp: d.Timestamp,
		Route:     d.Route,
		Pickup:    d.Pickup,
		Type:      d.Type.String(),
		Tier:      d.Tier.Code(),
		TierLabel: d.Tier.Label(),
		Seating:   d.Seating.String(),
		Rating:    d.Rating,
		Plate:     d.Plate,
		OpenedAt:  d.OpenedAt,
	}
	if d.ScheduleID != nil {
		resp.ScheduleID = d.ScheduleID.String()
	}
	return resp
}
