package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Ключи карты локации расписания
const (
	LocationKeyLat     = "lat"
	LocationKeyLng     = "lng"
	LocationKeyAddress = "address"
)

type Coordinate struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// PickupLocation - место посадки в том виде, в каком оно хранится:
// строки под ключами lat, lng, address. nil означает отсутствие локации.
type PickupLocation map[string]string

// NewPickupLocation строит локацию из координаты и адреса
func NewPickupLocation(c Coordinate, address string) PickupLocation {
	return PickupLocation{
		LocationKeyLat:     strconv.FormatFloat(c.Lat, 'f', -1, 64),
		LocationKeyLng:     strconv.FormatFloat(c.Lng, 'f', -1, 64),
		LocationKeyAddress: address,
	}
}

// Coordinate - координата, если lat и lng присутствуют и парсятся как float.
// Частичные или битые значения дают ok=false, а не ошибку.
func (l PickupLocation) Coordinate() (Coordinate, bool) {
	if l == nil {
		return Coordinate{}, false
	}
	latStr, ok := l[LocationKeyLat]
	if !ok {
		return Coordinate{}, false
	}
	lngStr, ok := l[LocationKeyLng]
	if !ok {
		return Coordinate{}, false
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(latStr), 64)
	if err != nil {
		return Coordinate{}, false
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(lngStr), 64)
	if err != nil {
		return Coordinate{}, false
	}
	return Coordinate{Lat: lat, Lng: lng}, true
}

// MapEligible - можно ли показать карту
func (l PickupLocation) MapEligible() bool {
	_, ok := l.Coordinate()
	return ok
}

func (l PickupLocation) Address() string {
	if l == nil {
		return ""
	}
	return l[LocationKeyAddress]
}

// Value - JSONB
func (l PickupLocation) Value() (driver.Value, error) {
	if l == nil {
		return nil, nil
	}
	b, err := json.Marshal(map[string]string(l))
	if err != nil {
		return nil, fmt.Errorf("marshal pickup location: %w", err)
	}
	return string(b), nil
}

func (l *PickupLocation) Scan(src interface{}) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*l = nil
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("scan pickup location: unsupported type %T", src)
	}

	m := map[string]string{}
	if err := json.Unmarshal(raw, &m); err != nil {
		return fmt.Errorf("scan pickup location: %w", err)
	}
	*l = m
	return nil
}

// AuthorizationStatus - статус разрешения на геолокацию, сообщаемый устройством
type AuthorizationStatus string

const (
	AuthorizationNotDetermined AuthorizationStatus = "not_determined"
	AuthorizationRequested     AuthorizationStatus = "requested"
	AuthorizationAuthorized    AuthorizationStatus = "authorized"
	AuthorizationDenied        AuthorizationStatus = "denied"
	AuthorizationRestricted    AuthorizationStatus = "restricted"
)

func ParseAuthorizationStatus(s string) (AuthorizationStatus, bool) {
	switch st := AuthorizationStatus(strings.ToLower(strings.TrimSpace(s))); st {
	case AuthorizationNotDetermined, AuthorizationAuthorized, AuthorizationDenied, AuthorizationRestricted:
		return st, true
	default:
		return "", false
	}
}

// LocationEventType - тип события фида локации
type LocationEventType string

const (
	LocationEventCoordinate    LocationEventType = "coordinate"
	LocationEventAddress       LocationEventType = "address"
	LocationEventAuthorization LocationEventType = "authorization"
)

// LocationEvent - изменение наблюдаемого состояния провайдера локации
type LocationEvent struct {
	Type          LocationEventType   `json:"type"`
	Coordinate    *Coordinate         `json:"coordinate,omitempty"`
	Address       string              `json:"address,omitempty"`
	Authorization AuthorizationStatus `json:"authorization,omitempty"`
	At            time.Time           `json:"at"`
}
