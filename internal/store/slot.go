package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"printshop/internal/redis"
)

// KV is the persistence surface a Slot needs; *redis.Client satisfies it.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// Slot is one named JSON value with a typed default.
//
// Load never fails: a missing, null or undecodable value yields defaults().
// With merge enabled the stored JSON is decoded on top of defaults(), so
// fields absent from the stored object keep their default value.
type Slot[T any] struct {
	kv       KV
	key      string
	defaults func() T
	merge    bool
}

func NewSlot[T any](kv KV, key string, defaults func() T, merge bool) *Slot[T] {
	return &Slot[T]{kv: kv, key: key, defaults: defaults, merge: merge}
}

func (s *Slot[T]) Key() string { return s.key }

func (s *Slot[T]) Load(ctx context.Context) T {
	raw, err := s.kv.Get(ctx, s.key)
	if err != nil {
		if !errors.Is(err, redis.ErrNotFound) {
			log.Printf("Warning: failed to read slot %s, using defaults: %v", s.key, err)
		}
		return s.defaults()
	}
	if len(bytes.TrimSpace(raw)) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return s.defaults()
	}

	var value T
	if s.merge {
		value = s.defaults()
	}
	if err := json.Unmarshal(raw, &value); err != nil {
		log.Printf("Warning: slot %s holds invalid JSON, using defaults: %v", s.key, err)
		return s.defaults()
	}
	return value
}

func (s *Slot[T]) Save(ctx context.Context, value T) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal slot %s: %w", s.key, err)
	}
	return s.kv.Set(ctx, s.key, raw, 0)
}

func (s *Slot[T]) Clear(ctx context.Context) error {
	return s.kv.Delete(ctx, s.key)
}
