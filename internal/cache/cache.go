// Package cache provides the two key/value storage scopes used by mpp.
//
// The local scope persists between runs and the session scope lives for
// the current process. Each scope is a Store over a pluggable Backend
// (file, memory, sqlite or redis). Values are stored as JSON; a missing or
// undecodable value reads as absent.
package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// Scope names a storage scope.
type Scope string

// Storage scopes.
const (
	Local   Scope = "local"
	Session Scope = "session"
)

// Dir returns the XDG-compliant cache directory for mpp.
func Dir() string {
	if xdg := os.Getenv("XDG_CACHE_HOME"); xdg != "" {
		return filepath.Join(xdg, "mpp")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".cache", "mpp")
}

// Backend stores raw values by key.
type Backend interface {
	// Get returns the value and true, or false when the key is absent.
	Get(key string) ([]byte, bool, error)
	Set(key string, value []byte) error
	// Remove deletes a key. Removing an absent key is not an error.
	Remove(key string) error
	Clear() error
	// Keys returns all keys in ascending order.
	Keys() ([]string, error)
	Close() error
}

// Store is one storage scope over a backend.
type Store struct {
	scope   Scope
	backend Backend
	logger  *zap.Logger
}

// NewStore wraps backend as the given scope. A nil logger discards output.
func NewStore(scope Scope, backend Backend, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		scope:   scope,
		backend: backend,
		logger:  logger.With(zap.String("scope", string(scope))),
	}
}

// Scope returns the scope this store serves.
func (s *Store) Scope() Scope {
	return s.scope
}

// Set stores value as JSON. A nil value is stored as null and reads back
// as present.
func (s *Store) Set(key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshaling %q: %w", key, err)
	}
	if err := s.backend.Set(key, data); err != nil {
		return fmt.Errorf("storing %q: %w", key, err)
	}
	s.logger.Debug("stored value", zap.String("key", key), zap.Int("bytes", len(data)))
	return nil
}

// SetJSON is Set under its object-storage name.
func (s *Store) SetJSON(key string, value any) error {
	return s.Set(key, value)
}

// GetJSON returns the stored JSON document for key.
func (s *Store) GetJSON(key string) (json.RawMessage, bool) {
	data, ok := s.Raw(key)
	if !ok || !json.Valid(data) {
		return nil, false
	}
	return json.RawMessage(data), true
}

// Raw returns the stored bytes for key. Backend errors read as absent.
func (s *Store) Raw(key string) ([]byte, bool) {
	data, ok, err := s.backend.Get(key)
	if err != nil {
		s.logger.Warn("reading value", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	return data, ok
}

// Remove deletes key.
func (s *Store) Remove(key string) error {
	if err := s.backend.Remove(key); err != nil {
		return fmt.Errorf("removing %q: %w", key, err)
	}
	return nil
}

// Clear removes every key in the scope.
func (s *Store) Clear() error {
	if err := s.backend.Clear(); err != nil {
		return fmt.Errorf("clearing %s storage: %w", s.scope, err)
	}
	return nil
}

// Keys lists the keys in the scope in ascending order.
func (s *Store) Keys() ([]string, error) {
	keys, err := s.backend.Keys()
	if err != nil {
		return nil, fmt.Errorf("listing %s storage: %w", s.scope, err)
	}
	return keys, nil
}

// Close releases the backend.
func (s *Store) Close() error {
	return s.backend.Close()
}

// Get decodes the value stored under key. Returns the zero value and false
// when the key is absent or the stored JSON does not decode into T.
func Get[T any](s *Store, key string) (T, bool) {
	var zero T

	data, ok := s.Raw(key)
	if !ok {
		return zero, false
	}

	var value T
	if err := json.Unmarshal(data, &value); err != nil {
		s.logger.Debug("discarding undecodable value", zap.String("key", key), zap.Error(err))
		return zero, false
	}
	return value, true
}

// GetOrRefresh implements the invalidate-on-miss pattern. It first checks the
// store. If the value is present, lookup is called. If lookup returns true,
// the result is returned. Otherwise refresh repopulates the key and lookup
// is retried.
func GetOrRefresh[T any, R any](
	s *Store,
	key string,
	refresh func() (T, error),
	lookup func(T) (R, bool),
) (R, error) {
	var zero R

	if cached, ok := Get[T](s, key); ok {
		if result, found := lookup(cached); found {
			return result, nil
		}
	}

	fresh, err := refresh()
	if err != nil {
		return zero, err
	}

	if err := s.Set(key, fresh); err != nil {
		return zero, fmt.Errorf("updating cache: %w", err)
	}

	if result, found := lookup(fresh); found {
		return result, nil
	}

	return zero, nil
}
