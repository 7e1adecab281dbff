// Package store persists small JSON documents under string keys.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/osse101/PixelPet_Go/internal/domain"
)

// ErrNotFound is returned when a key has no value
var ErrNotFound = domain.ErrStoreNotFound

// Store is a string-keyed byte store. Implementations must be safe for concurrent use.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Remove(ctx context.Context, key string) error
}

// GetJSON loads key into target. It returns ErrNotFound untouched so callers can fall back to defaults.
func GetJSON(ctx context.Context, s Store, key string, target interface{}) error {
	data, err := s.Get(ctx, key)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return err
		}
		return fmt.Errorf("%s %q: %w", ErrContextGet, key, err)
	}
	if err := json.Unmarshal(data, target); err != nil {
		return fmt.Errorf("%s %q: %w", ErrContextDecode, key, err)
	}
	return nil
}

// SetJSON stores value under key as JSON
func SetJSON(ctx context.Context, s Store, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("%s %q: %w", ErrContextEncode, key, err)
	}
	if err := s.Set(ctx, key, data); err != nil {
		return fmt.Errorf("%s %q: %w", ErrContextSet, key, err)
	}
	return nil
}
