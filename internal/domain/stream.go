package domain

import "time"

// Stream names
const (
	StreamLocationFixes = "stream:location:fixes"
)

// LocationFixEvent - фикс позиции устройства из стрима
type LocationFixEvent struct {
	Lat        float64   `json:"lat"`
	Lng        float64   `json:"lng"`
	Accuracy   *float64  `json:"accuracy,omitempty"`
	RecordedAt time.Time `json:"recorded_at"`
}

// StreamMessage - сообщение из Redis Stream
type StreamMessage struct {
	ID   string
	Data string
}

func (e LocationFixEvent) Coordinate() Coordinate {
	return Coordinate{Lat: e.Lat, Lng: e.Lng}
}
