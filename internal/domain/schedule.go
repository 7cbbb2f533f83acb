package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Bus - описание автобуса, принадлежит ровно одному расписанию
type Bus struct {
	ID     uuid.UUID `json:"id" db:"id"`
	Type   Provider  `json:"type" db:"type"`
	Tier   Tier      `json:"tier" db:"tier"`
	Rating *float64  `json:"rating,omitempty" db:"rating"`
	Plate  string    `json:"plate,omitempty" db:"plate"`
}

// BusSchedule - одна запись о поездке
type BusSchedule struct {
	ID        uuid.UUID      `json:"id" db:"id"`
	Timestamp time.Time      `json:"timestamp" db:"departure_at"`
	Route     string         `json:"route" db:"route"`
	Place     string         `json:"place" db:"place"`
	Location  PickupLocation `json:"location,omitempty" db:"location"`
	Bus       *Bus           `json:"bus" db:"-"`
	Seating   Seating        `json:"seating" db:"seating"`
	CreatedAt time.Time      `json:"created_at" db:"created_at"`
}

// HasRoute - маршрут непустой после TrimSpace
func (s *BusSchedule) HasRoute() bool {
	return strings.TrimSpace(s.Route) != ""
}

// City - город для списка: эвристика по адресу, иначе place
func (s *BusSchedule) City() string {
	if city, ok := ExtractCity(s.Location.Address()); ok {
		return city
	}
	return s.Place
}
