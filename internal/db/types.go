// Package db provides result caches for scoring output, backed by PostgreSQL or SQLite.
package db

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/jonathan/offer-scorer/internal/types"
)

// CacheError is returned for any failed cache operation
type CacheError struct {
	Op    string // get, put, prune or migrate
	Key   string
	Cause error
}

func (e *CacheError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("cache %s %s: %v", e.Op, e.Key, e.Cause)
	}
	return fmt.Sprintf("cache %s: %v", e.Op, e.Cause)
}

func (e *CacheError) Unwrap() error {
	return e.Cause
}

// CachedResult is a stored analysis row
type CachedResult struct {
	ID          string               `json:"id"`
	InputHash   string               `json:"input_hash"`
	ContentType string               `json:"content_type"`
	Result      *types.ScoringResult `json:"result"`
	CreatedAt   time.Time            `json:"created_at"`
}

// expired reports whether a row created at createdAt is older than ttl.
// A ttl of zero never expires.
func expired(createdAt, now time.Time, ttl time.Duration) bool {
	if ttl <= 0 {
		return false
	}
	return now.Sub(createdAt) > ttl
}

func encodeResult(result *types.ScoringResult) ([]byte, error) {
	if result == nil {
		return nil, fmt.Errorf("result is nil")
	}
	jsonBytes, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}
	return jsonBytes, nil
}

func decodeResult(data []byte) (*types.ScoringResult, error) {
	var result types.ScoringResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal result: %w", err)
	}
	return &result, nil
}
