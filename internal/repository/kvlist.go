package repository

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/brightrock/efficiency-platform/internal/storage"
	apperrors "github.com/brightrock/efficiency-platform/pkg/util/errorutil"
)

// kvList keeps a whole collection as one JSON array under a storage key and
// rewrites it on every change. Writers in this process are serialized; other
// processes sharing the store may still interleave.
type kvList[T any] struct {
	store   storage.Store
	ns      string
	key     string
	latency time.Duration
	id      func(*T) *string

	mu sync.Mutex
}

func newKVList[T any](store storage.Store, key string, latency time.Duration, id func(*T) *string) *kvList[T] {
	return &kvList[T]{store: store, ns: storage.SharedNamespace, key: key, latency: latency, id: id}
}

// simulateLatency stands in for a network round trip and gives up when ctx ends.
func simulateLatency(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (l *kvList[T]) all(ctx context.Context) ([]T, error) {
	if err := simulateLatency(ctx, l.latency); err != nil {
		return nil, err
	}
	return l.read(ctx)
}

func (l *kvList[T]) read(ctx context.Context) ([]T, error) {
	var items []T
	if _, err := storage.GetJSON(ctx, l.store, l.ns, l.key, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (l *kvList[T]) get(ctx context.Context, id string) (*T, error) {
	items, err := l.all(ctx)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if *l.id(&items[i]) == id {
			item := items[i]
			return &item, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (l *kvList[T]) find(ctx context.Context, match func(*T) bool) (*T, error) {
	items, err := l.all(ctx)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if match(&items[i]) {
			item := items[i]
			return &item, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

// insert assigns an id when missing. prepend puts newest first.
func (l *kvList[T]) insert(ctx context.Context, item *T, prepend bool) error {
	if id := l.id(item); *id == "" {
		*id = uuid.NewString()
	}
	return l.mutate(ctx, func(items []T) ([]T, error) {
		if prepend {
			return append([]T{*item}, items...), nil
		}
		return append(items, *item), nil
	})
}

func (l *kvList[T]) replace(ctx context.Context, item *T) error {
	id := *l.id(item)
	return l.mutate(ctx, func(items []T) ([]T, error) {
		for i := range items {
			if *l.id(&items[i]) == id {
				items[i] = *item
				return items, nil
			}
		}
		return nil, apperrors.ErrNotFound
	})
}

func (l *kvList[T]) remove(ctx context.Context, id string) error {
	return l.mutate(ctx, func(items []T) ([]T, error) {
		for i := range items {
			if *l.id(&items[i]) == id {
				return append(items[:i], items[i+1:]...), nil
			}
		}
		return nil, apperrors.ErrNotFound
	})
}

func (l *kvList[T]) mutate(ctx context.Context, fn func([]T) ([]T, error)) error {
	if err := simulateLatency(ctx, l.latency); err != nil {
		return err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	items, err := l.read(ctx)
	if err != nil {
		return err
	}
	next, err := fn(items)
	if err != nil {
		return err
	}
	return storage.SetJSON(ctx, l.store, l.ns, l.key, next)
}
