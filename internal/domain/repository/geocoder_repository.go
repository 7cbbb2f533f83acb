package repository

import (
	"context"

	"github.com/nextbus-service/internal/domain"
)

// GeocoderRepository - обратное геокодирование координаты в адрес.
// Пустая строка без ошибки означает, что геокодер ничего не нашёл.
type GeocoderRepository interface {
	ReverseGeocode(ctx context.Context, coord domain.Coordinate) (string, error)
}
