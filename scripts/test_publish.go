//go:build ignore
// +build ignore

package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
)

type LocationFixEvent struct {
	Lat        float64   `json:"lat"`
	Lng        float64   `json:"lng"`
	Accuracy   *float64  `json:"accuracy,omitempty"`
	RecordedAt time.Time `json:"recorded_at"`
}

type locationResponse struct {
	Authorization    string `json:"authorization"`
	Updating         bool   `json:"updating"`
	Address          string `json:"address"`
	AddressAvailable bool   `json:"address_available"`
}

func main() {
	redisAddr := flag.String("redis", "localhost:6379", "Redis address for streams")
	apiAddr := flag.String("api", "http://localhost:8080", "NextBus API base URL")
	lat := flag.Float64("lat", 6.9355, "latitude")
	lng := flag.Float64("lng", 79.8428, "longitude")
	flag.Parse()

	client := redis.NewClient(&redis.Options{
		Addr: *redisAddr,
	})
	defer client.Close()

	ctx := context.Background()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	// Фиксы принимаются только при включённых обновлениях
	resp, err := http.Post(*apiAddr+"/api/v1/location/updating/start", "application/json", nil)
	if err != nil {
		log.Fatalf("Failed to start location updates: %v", err)
	}
	resp.Body.Close()

	accuracy := 12.5
	event := LocationFixEvent{
		Lat:        *lat,
		Lng:        *lng,
		Accuracy:   &accuracy,
		RecordedAt: time.Now().UTC(),
	}

	data, err := json.Marshal(event)
	if err != nil {
		log.Fatalf("Failed to marshal event: %v", err)
	}

	result, err := client.XAdd(ctx, &redis.XAddArgs{
		Stream: "stream:location:fixes",
		Values: map[string]interface{}{
			"data": string(data),
		},
	}).Result()
	if err != nil {
		log.Fatalf("Failed to publish event: %v", err)
	}

	fmt.Printf("Fix published\n")
	fmt.Printf("   Stream: stream:location:fixes\n")
	fmt.Printf("   Message ID: %s\n", result)
	fmt.Printf("   Coordinates: %.6f, %.6f\n", event.Lat, event.Lng)

	fmt.Printf("\nWaiting for address on %s/api/v1/location...\n", *apiAddr)

	timeout := time.After(30 * time.Second)
	ticker := time.NewTicker(1 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-timeout:
			fmt.Println("Timeout waiting for address")
			return
		case <-ticker.C:
			resp, err := http.Get(*apiAddr + "/api/v1/location")
			if err != nil {
				continue
			}

			var state locationResponse
			err = json.NewDecoder(resp.Body).Decode(&state)
			resp.Body.Close()
			if err != nil || !state.AddressAvailable {
				continue
			}

			pretty, _ := json.MarshalIndent(state, "", "  ")
			fmt.Printf("\nAddress resolved:\n%s\n", pretty)
			return
		}
	}
}
