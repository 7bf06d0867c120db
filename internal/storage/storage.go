// Package storage is the server-side stand-in for browser storage: a string
// key/value store partitioned into one namespace per client.
package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/goccy/go-json"
)

// SharedNamespace holds lists that every client reads, such as trainings.
const SharedNamespace = "shared"

// Store is the client storage contract.
type Store interface {
	Get(ctx context.Context, ns, key string) (string, bool, error)
	// GetMany omits absent keys from the result.
	GetMany(ctx context.Context, ns string, keys ...string) (map[string]string, error)
	// SetMany writes all values in one atomic operation.
	SetMany(ctx context.Context, ns string, values map[string]string) error
	Delete(ctx context.Context, ns string, keys ...string) error
	// Apply sets and deletes keys of one namespace atomically.
	Apply(ctx context.Context, ns string, set map[string]string, del []string) error
}

// ErrEmptyNamespace is returned when a caller forgets the client id.
var ErrEmptyNamespace = errors.New("storage: empty namespace")

// GetJSON decodes the value stored at key into dst. found is false when the key is absent.
func GetJSON(ctx context.Context, s Store, ns, key string, dst any) (bool, error) {
	raw, found, err := s.Get(ctx, ns, key)
	if err != nil || !found {
		return false, err
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		return true, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

// SetJSON encodes v and stores it at key.
func SetJSON(ctx context.Context, s Store, ns, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return s.SetMany(ctx, ns, map[string]string{key: string(raw)})
}
