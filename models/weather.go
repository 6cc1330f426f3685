package models

import (
	"encoding/json"
	"time"
)

// WeatherReport wraps the upstream provider's payload. The payload is passed
// through unshaped; only the cache envelope is ours.
type WeatherReport struct {
	City      string          `json:"city"`
	Raw       json.RawMessage `json:"raw"`
	FetchedAt time.Time       `json:"fetchedAt"`
}
