// Package storage is the durable client-side key-value store shared by every
// view of one operator profile. Values are opaque bytes; GetJSON and SetJSON
// layer structured records on top.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrDiscarded reports that a stored value could not be decoded and was
// removed. The caller receives its default instead.
var ErrDiscarded = errors.New("stored value was corrupt and has been discarded")

// ErrClosed is returned by operations on a closed store.
var ErrClosed = errors.New("storage is closed")

// Store reads and writes raw values. Get returns nil, nil for an absent key.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Remove(ctx context.Context, key string) error
}

// ChangeFunc receives the new value of a key; nil means it was removed.
type ChangeFunc func(value []byte)

// Watcher delivers writes made by other instances sharing the same profile.
// Writes made through the receiving instance are never reported back to it.
type Watcher interface {
	OnExternalChange(key string, fn ChangeFunc) (cancel func())
}

// Profile is a store that can also report external changes.
type Profile interface {
	Store
	Watcher
	Close() error
}

// GetJSON decodes the value under key into a T. An absent key yields def.
// A value that does not decode is removed and def is returned together with
// ErrDiscarded.
func GetJSON[T any](ctx context.Context, s Store, key string, def T) (T, error) {
	raw, err := s.Get(ctx, key)
	if err != nil {
		return def, err
	}
	if raw == nil {
		return def, nil
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		if rmErr := s.Remove(ctx, key); rmErr != nil {
			return def, fmt.Errorf("remove corrupt %q: %w", key, rmErr)
		}
		return def, fmt.Errorf("%s: %w", key, ErrDiscarded)
	}
	return v, nil
}

// SetJSON encodes v and stores it under key.
func SetJSON[T any](ctx context.Context, s Store, key string, v T) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %q: %w", key, err)
	}
	return s.Set(ctx, key, raw)
}

// DecodeJSON is the ChangeFunc counterpart of GetJSON; ok is false when the
// key was removed or the value does not decode.
func DecodeJSON[T any](raw []byte) (v T, ok bool) {
	if raw == nil {
		return v, false
	}
	if err := json.Unmarshal(raw, &v); err != nil {
		return v, false
	}
	return v, true
}

// subscription is one OnExternalChange registration.
type subscription struct {
	key string
	fn  ChangeFunc
}

// clone keeps callers from aliasing stored bytes.
func clone(b []byte) []byte {
	if b == nil {
		return nil
	}
	return append([]byte(nil), b...)
}
