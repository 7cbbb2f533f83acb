package dto

import "github.com/nextbus-service/internal/domain"

// CoordinateRequest - координата от клиента
type CoordinateRequest struct {
	Lat *float64 `json:"lat" validate:"required,min=-90,max=90"`
	Lng *float64 `json:"lng" validate:"required,min=-180,max=180"`
}

// ReportFixRequest - фикс позиции устройства
type ReportFixRequest struct {
	CoordinateRequest
	Accuracy *float64 `json:"accuracy,omitempty" validate:"omitempty,min=0"`
}

// SetAuthorizationRequest - результат системного запроса разрешения
type SetAuthorizationRequest struct {
	Status string `json:"status" validate:"notblank" example:"authorized"`
}

// FetchAddressRequest - явная координата необязательна, иначе берётся последняя известная
type FetchAddressRequest struct {
	Lat *float64 `json:"lat,omitempty" validate:"omitempty,min=-90,max=90"`
	Lng *float64 `json:"lng,omitempty" validate:"omitempty,min=-180,max=180"`
}

// LocationResponse - снимок состояния провайдера локации
type LocationResponse struct {
	Authorization    string             `json:"authorization"`
	Updating         bool               `json:"updating"`
	Coordinate       *domain.Coordinate `json:"coordinate,omitempty"`
	Address          string             `json:"address,omitempty"`
	AddressAvailable bool               `json:"address_available"`
}

// ReportFixResponse - принят ли фикс
type ReportFixResponse struct {
	Accepted bool `json:"accepted"`
}

// AddressResponse - результат обратного геокодирования
type AddressResponse struct {
	Address    string             `json:"address,omitempty"`
	Available  bool               `json:"available"`
	Coordinate *domain.Coordinate `json:"coordinate,omitempty"`
}

// Partial - передана только одна из координат
func (r FetchAddressRequest) Partial() bool {
	return (r.Lat == nil) != (r.Lng == nil)
}

// Coordinate - nil если координата не передана
func (r FetchAddressRequest) Coordinate() *domain.Coordinate {
	if r.Lat == nil || r.Lng == nil {
		return nil
	}
	return &domain.Coordinate{Lat: *r.Lat, Lng: *r.Lng}
}

// Coordinate - координата запроса; поля уже проверены валидатором
func (r CoordinateRequest) Coordinate() domain.Coordinate {
	return domain.Coordinate{Lat: *r.Lat, Lng: *r.Lng}
}
