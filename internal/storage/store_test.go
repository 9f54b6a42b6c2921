package storage

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStoreContract(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	_, err := s.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrKeyNotFound)

	require.NoError(t, s.Put(ctx, "users", []byte(`[{"id":1}]`)))
	blob, err := s.Get(ctx, "users")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":1}]`, string(blob))

	// Put replaces the whole blob.
	require.NoError(t, s.Put(ctx, "users", []byte(`[]`)))
	blob, err = s.Get(ctx, "users")
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(blob))

	require.NoError(t, s.Delete(ctx, "users"))
	_, err = s.Get(ctx, "users")
	assert.ErrorIs(t, err, ErrKeyNotFound)

	// Deleting an absent key is not an error.
	assert.NoError(t, s.Delete(ctx, "users"))
}

func TestMemoryStore(t *testing.T) {
	testStoreContract(t, NewMemoryStore())
}

func TestFileStore(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	testStoreContract(t, s)
}

func TestRedisStore(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	testStoreContract(t, NewRedisStore(client, ""))
}

func TestFileStorePersistsAcrossOpens(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	s, err := NewFileStore(dir)
	require.NoError(t, err)
	require.NoError(t, s.Put(ctx, "companies", []byte(`[{"id":7}]`)))

	reopened, err := NewFileStore(dir)
	require.NoError(t, err)
	blob, err := reopened.Get(ctx, "companies")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":7}]`, string(blob))
}

func TestMemoryStoreReturnsCopies(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "k", []byte("abc")))
	blob, err := s.Get(ctx, "k")
	require.NoError(t, err)
	blob[0] = 'X'

	again, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), again)
}
