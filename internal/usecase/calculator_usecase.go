package usecase

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"
)

// ErrEmptyRange is returned when the lower bound exceeds the upper bound
var ErrEmptyRange = errors.New("empty range for random number")

// ServerInfo is the static metadata document of the calculator
type ServerInfo struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Version     string   `json:"version"`
	Tools       []string `json:"tools"`
	Author      string   `json:"author"`
}

// DefaultServerInfo describes the calculator service
func DefaultServerInfo(version string) ServerInfo {
	return ServerInfo{
		Name:        "calculator-server",
		Description: "Basic arithmetic and random number generation",
		Version:     version,
		Tools:       []string{"add", "random_number"},
		Author:      "FreePeak",
	}
}

// Calculator implements the calculator operations
type Calculator struct {
	mu   sync.Mutex
	rng  *rand.Rand
	info ServerInfo
}

// NewCalculator creates a calculator. A nil rng is replaced by a time-seeded source.
func NewCalculator(rng *rand.Rand, info ServerInfo) *Calculator {
	if rng == nil {
		seed := uint64(time.Now().UnixNano())
		rng = rand.New(rand.NewPCG(seed, seed>>1|1))
	}
	return &Calculator{rng: rng, info: info}
}

// Add returns a + b
func (c *Calculator) Add(a, b int64) int64 {
	return a + b
}

// RandomNumber returns a uniformly chosen integer in [minVal, maxVal]
func (c *Calculator) RandomNumber(minVal, maxVal int64) (int64, error) {
	if minVal > maxVal {
		return 0, fmt.Errorf("%w: [%d, %d]", ErrEmptyRange, minVal, maxVal)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	span := uint64(maxVal) - uint64(minVal)
	if span == ^uint64(0) {
		return int64(c.rng.Uint64()), nil
	}
	return minVal + int64(c.rng.Uint64N(span+1)), nil
}

// InfoJSON returns the server metadata as a JSON document
func (c *Calculator) InfoJSON() (string, error) {
	data, err := json.MarshalIndent(c.info, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode server info: %w", err)
	}
	return string(data), nil
}
