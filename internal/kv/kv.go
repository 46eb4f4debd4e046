// Package kv holds the raw key-value backends behind the storefront's local store.
// Values are opaque text; encoding is the storage package's business.
package kv

import (
	"context"
	"errors"
)

var ErrQuotaExceeded = errors.New("kv: quota exceeded")

type Backend interface {
	// Get reports ok=false when the key has no entry.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}
