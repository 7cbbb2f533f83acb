package domain

import "strings"

// ExtractCity выбирает город из адреса вида "улица, город, регион, страна".
// Сегменты делятся по запятой; один-два сегмента -> первый, три и более ->
// средний (count/2). Эвристика предполагает, что страна и регион в конце.
func ExtractCity(address string) (string, bool) {
	parts := strings.Split(address, ",")
	segments := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			segments = append(segments, trimmed)
		}
	}

	switch n := len(segments); {
	case n == 0:
		return "", false
	case n <= 2:
		return segments[0], true
	default:
		return segments[n/2], true
	}
}
