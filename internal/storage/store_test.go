package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/storefront/internal/kv"
	"github.com/Skotchmaster/storefront/internal/logging"
)

type brokenBackend struct{}

func (brokenBackend) Get(context.Context, string) (string, bool, error) {
	return "", false, errors.New("disk unavailable")
}
func (brokenBackend) Set(context.Context, string, string) error { return errors.New("disk unavailable") }
func (brokenBackend) Delete(context.Context, string) error      { return errors.New("disk unavailable") }

func newStore() (*Store, *kv.MemoryBackend) {
	b := kv.NewMemoryBackend(0)
	return New(b, logging.Discard()), b
}

func TestLoad_NeverWrittenKeyIsAbsentAndSideEffectFree(t *testing.T) {
	ctx := context.Background()
	s, b := newStore()

	var v any
	assert.False(t, s.Load(ctx, "orders", &v))
	assert.False(t, s.Load(ctx, "orders", &v))
	assert.Equal(t, 0, b.Len())
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s, _ := newStore()

	tests := []struct {
		name  string
		value any
	}{
		{name: "string", value: "testuser@example.com"},
		{name: "number", value: float64(7)},
		{name: "bool", value: true},
		{name: "array", value: []any{map[string]any{"productId": float64(1), "quantity": float64(2)}}},
		{name: "object", value: map[string]any{"name": "Jane Doe", "tags": []any{"a", "b"}, "nested": map[string]any{"ok": false}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s.Save(ctx, "k_"+tt.name, tt.value)

			var got any
			require.True(t, s.Load(ctx, "k_"+tt.name, &got))
			assert.Equal(t, tt.value, got)
		})
	}
}

func TestLoad_CorruptEntryIsPurged(t *testing.T) {
	ctx := context.Background()
	s, b := newStore()
	require.NoError(t, b.Set(ctx, "products", "{not json"))

	var v []map[string]any
	assert.False(t, s.Load(ctx, "products", &v))

	_, ok, err := b.Get(ctx, "products")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLoad_EmptyAndNullAreAbsent(t *testing.T) {
	ctx := context.Background()
	s, b := newStore()
	require.NoError(t, b.Set(ctx, "lastOrder", ""))
	require.NoError(t, b.Set(ctx, "currentUser", "null"))

	var id int
	assert.False(t, s.Load(ctx, "lastOrder", &id))
	var name string
	assert.False(t, s.Load(ctx, "currentUser", &name))
}

func TestSave_FailureKeepsPriorValue(t *testing.T) {
	ctx := context.Background()
	b := kv.NewMemoryBackend(32)
	s := New(b, logging.Discard())

	s.Save(ctx, "cart_guest", []int{1})
	s.Save(ctx, "cart_guest", make([]int, 64))

	var got []int
	require.True(t, s.Load(ctx, "cart_guest", &got))
	assert.Equal(t, []int{1}, got)

	s.Save(ctx, "cart_guest", map[string]any{"bad": make(chan int)})
	require.True(t, s.Load(ctx, "cart_guest", &got))
	assert.Equal(t, []int{1}, got)
}

func TestStore_BackendErrorsAreSwallowed(t *testing.T) {
	ctx := context.Background()
	s := New(brokenBackend{}, logging.Discard())

	s.Save(ctx, "users", []string{"x"})
	s.Remove(ctx, "users")

	var v []string
	assert.False(t, s.Load(ctx, "users", &v))
}

func TestCartKey(t *testing.T) {
	assert.Equal(t, "cart_guest", CartKey(""))
	assert.Equal(t, "cart_a@b.com", CartKey("a@b.com"))
}
