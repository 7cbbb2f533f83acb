package utils

import (
	"fmt"
	"math"
)

// ValidateCoordinates проверяет валидность координат
func ValidateCoordinates(lat, lon float64) bool {
	if math.IsNaN(lat) || math.IsNaN(lon) {
		return false
	}
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}

// RoundedKey - ключ кеша для точки, округлённой до precision знаков
func RoundedKey(prefix string, lat, lon float64, precision int) string {
	return fmt.Sprintf("%s:%.*f:%.*f", prefix, precision, lat, precision, lon)
}
