package tracker

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/zvrva/farewatch/internal/domain"
)

//go:embed flights.json
var seedData []byte

// SampleFlights decodes the embedded demo dataset. Each call returns a
// fresh slice so callers may mutate it.
func SampleFlights() ([]domain.Flight, error) {
	var flights []domain.Flight
	if err := json.Unmarshal(seedData, &flights); err != nil {
		return nil, fmt.Errorf("failed to decode seed data: %w", err)
	}
	return flights, nil
}
