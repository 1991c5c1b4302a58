package media

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRedisSessionStore(t *testing.T, ttl time.Duration, limits SessionLimits) (*RedisSessionStore, *miniredis.Miniredis) {
	t.Helper()
	srv, err := miniredis.Run()
	if err != nil {
		t.Skipf("miniredis unavailable: %v", err)
	}
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() {
		client.Close()
		srv.Close()
	})
	return NewRedisSessionStore(client, ttl, limits), srv
}

func TestRedisSessionStore(t *testing.T) {
	ctx := context.Background()
	store, srv := setupRedisSessionStore(t, time.Hour, SessionLimits{})

	id, err := store.Create(ctx, "user-1")
	require.NoError(t, err)
	assert.True(t, srv.Exists("draft:"+id))

	table, err := store.Open(ctx, id, "user-1")
	require.NoError(t, err)

	payload := []byte{0xff, 0xd8, 0xff, 0x00, 0x10}
	ref, err := table.Put(ctx, Blob{Data: payload, ContentType: "image/jpeg"})
	require.NoError(t, err)
	assert.Equal(t, KindEphemeral, ref.Kind())

	blob, err := table.Get(ctx, ref)
	require.NoError(t, err)
	assert.Equal(t, payload, blob.Data)
	assert.Equal(t, "image/jpeg", blob.ContentType)

	_, err = store.Open(ctx, id, "user-2")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	require.NoError(t, table.Release(ctx, ref))
	_, err = table.Get(ctx, ref)
	assert.ErrorIs(t, err, ErrInvalidReference)
}

func TestRedisSessionStore_Discard(t *testing.T) {
	ctx := context.Background()
	store, srv := setupRedisSessionStore(t, time.Hour, SessionLimits{})

	id, err := store.Create(ctx, "user-1")
	require.NoError(t, err)
	table, err := store.Open(ctx, id, "user-1")
	require.NoError(t, err)
	ref, err := table.Put(ctx, Blob{Data: []byte("x")})
	require.NoError(t, err)

	require.NoError(t, store.Discard(ctx, id, "user-1"))

	assert.False(t, srv.Exists("draft:"+id))
	assert.False(t, srv.Exists(blobKey(id, ref.Handle())))
	_, err = store.Open(ctx, id, "user-1")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestRedisSessionStore_Expiry(t *testing.T) {
	ctx := context.Background()
	store, srv := setupRedisSessionStore(t, time.Minute, SessionLimits{})

	id, err := store.Create(ctx, "user-1")
	require.NoError(t, err)
	table, err := store.Open(ctx, id, "user-1")
	require.NoError(t, err)
	ref, err := table.Put(ctx, Blob{Data: []byte("x")})
	require.NoError(t, err)

	srv.FastForward(2 * time.Minute)

	_, err = table.Get(ctx, ref)
	assert.ErrorIs(t, err, ErrInvalidReference)
	_, err = store.Open(ctx, id, "user-1")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestRedisSessionStore_Limits(t *testing.T) {
	tests := []struct {
		name   string
		limits SessionLimits
		sizes  []int
		full   int // index of the first Put expected to fail
	}{
		{name: "file count", limits: SessionLimits{MaxFiles: 2}, sizes: []int{1, 1, 1}, full: 2},
		{name: "total bytes", limits: SessionLimits{MaxBytes: 10}, sizes: []int{4, 6, 1}, full: 2},
		{name: "single file over byte limit", limits: SessionLimits{MaxBytes: 10}, sizes: []int{11}, full: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			store, srv := setupRedisSessionStore(t, time.Hour, tt.limits)

			id, err := store.Create(ctx, "user-1")
			require.NoError(t, err)
			table, err := store.Open(ctx, id, "user-1")
			require.NoError(t, err)

			for i, size := range tt.sizes {
				_, err := table.Put(ctx, Blob{Data: make([]byte, size), ContentType: "image/png"})
				if i < tt.full {
					require.NoError(t, err, "put %d", i)
					continue
				}
				assert.ErrorIs(t, err, ErrSessionFull)
				break
			}

			members, err := srv.SMembers(sessionHandlesKey(id))
			if tt.full == 0 {
				assert.Empty(t, members)
			} else {
				require.NoError(t, err)
				assert.Len(t, members, tt.full)
			}
		})
	}
}

func TestRedisSessionStore_ReleaseFreesQuota(t *testing.T) {
	ctx := context.Background()
	store, srv := setupRedisSessionStore(t, time.Hour, SessionLimits{MaxFiles: 1, MaxBytes: 8})

	id, err := store.Create(ctx, "user-1")
	require.NoError(t, err)
	table, err := store.Open(ctx, id, "user-1")
	require.NoError(t, err)

	ref, err := table.Put(ctx, Blob{Data: []byte("12345678")})
	require.NoError(t, err)
	_, err = table.Put(ctx, Blob{Data: []byte("9")})
	require.ErrorIs(t, err, ErrSessionFull)

	require.NoError(t, table.Release(ctx, ref))
	// a second release of the same handle must not free quota twice
	require.NoError(t, table.Release(ctx, ref))

	files, err := srv.Get(sessionFilesKey(id))
	require.NoError(t, err)
	assert.Equal(t, "0", files)
	total, err := srv.Get(sessionBytesKey(id))
	require.NoError(t, err)
	assert.Equal(t, "0", total)

	_, err = table.Put(ctx, Blob{Data: []byte("abcdefgh")})
	assert.NoError(t, err)
}
