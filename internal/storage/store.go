// Package storage is the storefront's persistent store adapter: named JSON values
// over a kv.Backend. It never returns errors; failures are logged and callers see
// an absent value.
package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"

	"github.com/Skotchmaster/storefront/internal/kv"
)

const (
	KeyUsers       = "users"
	KeyProducts    = "products"
	KeyOrders      = "orders"
	KeyCurrentUser = "currentUser"
	KeyLastOrder   = "lastOrder"
	KeyGuestCart   = "cart_guest"
)

// CartKey is the identity-scoped cart key; an empty username means guest.
func CartKey(username string) string {
	if username == "" {
		return KeyGuestCart
	}
	return "cart_" + username
}

type Store struct {
	backend kv.Backend
	log     *slog.Logger
}

func New(backend kv.Backend, log *slog.Logger) *Store {
	if log == nil {
		log = slog.Default()
	}
	return &Store{backend: backend, log: log.With("component", "storage")}
}

// Save encodes value and writes it under key. On failure the previous entry stays.
func (s *Store) Save(ctx context.Context, key string, value any) {
	data, err := json.Marshal(value)
	if err != nil {
		s.log.Warn("storage_save_failed", "key", key, "reason", "encode", "error", err)
		return
	}
	if err := s.backend.Set(ctx, key, string(data)); err != nil {
		s.log.Warn("storage_save_failed", "key", key, "reason", "backend", "error", err)
	}
}

// Load decodes the entry under key into dst and reports whether a value was present.
// A corrupt entry is deleted so the next Save starts clean.
func (s *Store) Load(ctx context.Context, key string, dst any) bool {
	raw, ok, err := s.backend.Get(ctx, key)
	if err != nil {
		s.log.Warn("storage_load_failed", "key", key, "error", err)
		return false
	}
	if !ok {
		return false
	}

	trimmed := bytes.TrimSpace([]byte(raw))
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return false
	}

	if err := json.Unmarshal(trimmed, dst); err != nil {
		s.log.Warn("storage_load_corrupt", "key", key, "error", err)
		s.Remove(ctx, key)
		return false
	}
	return true
}

func (s *Store) Remove(ctx context.Context, key string) {
	if err := s.backend.Delete(ctx, key); err != nil {
		s.log.Warn("storage_remove_failed", "key", key, "error", err)
	}
}
