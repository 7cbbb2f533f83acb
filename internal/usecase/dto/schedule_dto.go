package dto

import (
	"fmt"
	"time"

	"github.com/nextbus-service/internal/domain"
)

// ScheduleListItem - строка списка расписаний с вычисленными полями отображения
type ScheduleListItem struct {
	ID            string    `json:"id"`
	Timestamp     time.Time `json:"timestamp"`
	Route         string    `json:"route"`
	Place         string    `json:"place"`
	City          string    `json:"city"`
	ProviderLabel string    `json:"provider_label"`
	TierLabel     string    `json:"tier_label"`
	SeatingLabel  string    `json:"seating_label"`
	SeatingLevel  int       `json:"seating_level"`
	RatingText    string    `json:"rating_text"`
	MapEligible   bool      `json:"map_eligible"`
}

// ScheduleListResponse - ответ списка расписаний
type ScheduleListResponse struct {
	Schedules []ScheduleListItem `json:"schedules"`
	Total     int                `json:"total"`
}

// BusDTO - автобус записи
type BusDTO struct {
	Type          string   `json:"type,omitempty"`
	ProviderLabel string   `json:"provider_label"`
	Tier          string   `json:"tier,omitempty"`
	TierLabel     string   `json:"tier_label"`
	Rating        *float64 `json:"rating,omitempty"`
	RatingText    string   `json:"rating_text"`
	Plate         string   `json:"plate,omitempty"`
}

// ScheduleDetailResponse - детальная карточка расписания
type ScheduleDetailResponse struct {
	ScheduleListItem
	Bus        BusDTO             `json:"bus"`
	Seating    string             `json:"seating,omitempty"`
	Coordinate *domain.Coordinate `json:"coordinate,omitempty"`
	Address    string             `json:"address"`
	Location   map[string]string  `json:"location,omitempty"`
	CreatedAt  time.Time          `json:"created_at"`
}

// CreateScheduleRequest - создание записи одним запросом (open + update + confirm)
type CreateScheduleRequest struct {
	Timestamp *time.Time `json:"timestamp,omitempty"`
	Route     string     `json:"route"`
	Pickup    string     `json:"pickup,omitempty" validate:"omitempty,max=255"`
	Type      *string    `json:"type,omitempty" validate:"omitempty,max=32"`
	Tier      *string    `json:"tier,omitempty" validate:"omitempty,max=16"`
	Seating   *string    `json:"seating,omitempty" validate:"omitempty,max=32"`
	Rating    *float64   `json:"rating,omitempty"`
	Plate     string     `json:"plate,omitempty" validate:"omitempty,max=16"`
}

// RatingText - рейтинг с одним знаком после запятой, "" если не задан
func RatingText(rating *float64) string {
	if rating == nil {
		return ""
	}
	return fmt.Sprintf("%.1f", *rating)
}

// NewScheduleListItem - конвертация записи в строку списка
func NewScheduleListItem(s *domain.BusSchedule) ScheduleListItem {
	item := ScheduleListItem{
		ID:           s.ID.String(),
		Timestamp:    s.Timestamp,
		Route:        s.Route,
		Place:        s.Place,
		City:         s.City(),
		SeatingLabel: s.Seating.Label(),
		SeatingLevel: s.Seating.Level(),
		MapEligible:  s.Location.MapEligible(),
	}
	if s.Bus != nil {
		item.ProviderLabel = s.Bus.Type.Label()
		item.TierLabel = s.Bus.Tier.Label()
		item.RatingText = RatingText(s.Bus.Rating)
	}
	return item
}

// NewScheduleDetail - конвертация записи в детальную карточку
func NewScheduleDetail(s *domain.BusSchedule) *ScheduleDetailResponse {
	detail := &ScheduleDetailResponse{
		ScheduleListItem: NewScheduleListItem(s),
		Seating:          s.Seating.String(),
		Address:          s.Location.Address(),
		Location:         s.Location,
		CreatedAt:        s.CreatedAt,
	}
	if coord, ok := s.Location.Coordinate(); ok {
		detail.Coordinate = &coord
	}
	if s.Bus != nil {
		detail.Bus = BusDTO{
			Type:          s.Bus.Type.String(),
			ProviderLabel: s.Bus.Type.Label(),
			Tier:          s.Bus.Tier.Code(),
			TierLabel:     s.Bus.Tier.Label(),
			Rating:        s.Bus.Rating,
			RatingText:    RatingText(s.Bus.Rating),
			Plate:         s.Bus.Plate,
		}
	}
	return detail
}
