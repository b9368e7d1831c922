package memkv

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quay/internal/store"
)

func TestGetPutDelete(t *testing.T) {
	ctx := context.Background()
	kv := New()

	_, err := kv.Get(ctx, "missing")
	assert.ErrorIs(t, err, store.ErrNotFound)

	require.NoError(t, kv.Put(ctx, "k", "v1"))
	v, err := kv.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v1", v)

	require.NoError(t, kv.Put(ctx, "k", "v2"))
	v, err = kv.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v2", v)

	require.NoError(t, kv.Delete(ctx, "k"))
	_, err = kv.Get(ctx, "k")
	assert.ErrorIs(t, err, store.ErrNotFound)

	// Deleting a missing key is not an error.
	assert.NoError(t, kv.Delete(ctx, "k"))
}

func TestPutMulti(t *testing.T) {
	ctx := context.Background()
	kv := New()

	require.NoError(t, kv.PutMulti(ctx, map[string]string{
		"a": "1",
		"b": "2",
	}))

	for key, want := range map[string]string{"a": "1", "b": "2"} {
		v, err := kv.Get(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, want, v)
	}
	assert.Equal(t, 2, kv.Len())
}

func TestConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	kv := New()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 200; i++ {
			_ = kv.PutMulti(ctx, map[string]string{"a": "x", "b": "y"})
		}
	}()
	for i := 0; i < 200; i++ {
		_, _ = kv.Get(ctx, "a")
		_ = kv.Put(ctx, "c", "z")
	}
	<-done
}
