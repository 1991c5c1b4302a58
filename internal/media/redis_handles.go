package media

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RedisSessionStore keeps draft sessions in Redis so that every API instance
// can resolve handles staged through any other one. All keys expire after ttl.
type RedisSessionStore struct {
	client *redis.Client
	ttl    time.Duration
	limits SessionLimits
}

// NewRedisSessionStore creates a Redis-backed session store.
func NewRedisSessionStore(client *redis.Client, ttl time.Duration, limits SessionLimits) *RedisSessionStore {
	return &RedisSessionStore{client: client, ttl: ttl, limits: limits}
}

func sessionKey(id string) string {
	return "draft:" + id
}

func sessionHandlesKey(id string) string {
	return "draft:" + id + ":handles"
}

func sessionFilesKey(id string) string {
	return "draft:" + id + ":files"
}

func sessionBytesKey(id string) string {
	return "draft:" + id + ":bytes"
}

func blobKey(sessionID, handle string) string {
	return "draft:" + sessionID + ":blob:" + handle
}

// Create opens a new session for ownerID.
func (s *RedisSessionStore) Create(ctx context.Context, ownerID string) (string, error) {
	id := uuid.NewString()
	if err := s.client.Set(ctx, sessionKey(id), ownerID, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("failed to create draft session: %w", err)
	}
	return id, nil
}

// Open returns the session's handle table.
func (s *RedisSessionStore) Open(ctx context.Context, sessionID, ownerID string) (HandleTable, error) {
	owner, err := s.client.Get(ctx, sessionKey(sessionID)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open draft session: %w", err)
	}
	if owner != ownerID {
		return nil, ErrSessionNotFound
	}
	return &redisTable{client: s.client, sessionID: sessionID, ttl: s.ttl, limits: s.limits}, nil
}

// Discard removes the session and its staged blobs.
func (s *RedisSessionStore) Discard(ctx context.Context, sessionID, ownerID string) error {
	if _, err := s.Open(ctx, sessionID, ownerID); err != nil {
		return err
	}

	handles, err := s.client.SMembers(ctx, sessionHandlesKey(sessionID)).Result()
	if err != nil {
		return fmt.Errorf("failed to list draft handles: %w", err)
	}

	keys := []string{sessionKey(sessionID), sessionHandlesKey(sessionID), sessionFilesKey(sessionID), sessionBytesKey(sessionID)}
	for _, handle := range handles {
		keys = append(keys, blobKey(sessionID, handle))
	}
	if err := s.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to discard draft session: %w", err)
	}
	return nil
}

type redisTable struct {
	client    *redis.Client
	sessionID string
	ttl       time.Duration
	limits    SessionLimits
}

func (t *redisTable) Put(ctx context.Context, blob Blob) (Ref, error) {
	size := int64(len(blob.Data))
	if err := t.reserve(ctx, size); err != nil {
		return Ref{}, err
	}

	handle := uuid.NewString()
	key := blobKey(t.sessionID, handle)

	pipe := t.client.TxPipeline()
	pipe.HSet(ctx, key, "data", blob.Data, "content_type", blob.ContentType)
	pipe.Expire(ctx, key, t.ttl)
	pipe.SAdd(ctx, sessionHandlesKey(t.sessionID), handle)
	pipe.Expire(ctx, sessionHandlesKey(t.sessionID), t.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		t.unreserve(ctx, size)
		return Ref{}, fmt.Errorf("failed to stage draft file: %w", err)
	}
	return Ephemeral(handle), nil
}

// reserve counts one more file of size bytes against the session's limits.
// Counters go up before the check, so concurrent Puts never both fit.
func (t *redisTable) reserve(ctx context.Context, size int64) error {
	pipe := t.client.TxPipeline()
	files := pipe.Incr(ctx, sessionFilesKey(t.sessionID))
	total := pipe.IncrBy(ctx, sessionBytesKey(t.sessionID), size)
	pipe.Expire(ctx, sessionFilesKey(t.sessionID), t.ttl)
	pipe.Expire(ctx, sessionBytesKey(t.sessionID), t.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to count draft file: %w", err)
	}

	if !t.limits.allows(int(files.Val()), total.Val()) {
		t.unreserve(ctx, size)
		return fmt.Errorf("%w: %d files, %d bytes staged", ErrSessionFull, files.Val()-1, total.Val()-size)
	}
	return nil
}

func (t *redisTable) unreserve(ctx context.Context, size int64) {
	pipe := t.client.TxPipeline()
	pipe.Decr(ctx, sessionFilesKey(t.sessionID))
	pipe.DecrBy(ctx, sessionBytesKey(t.sessionID), size)
	pipe.Exec(ctx)
}

func (t *redisTable) Get(ctx context.Context, ref Ref) (Blob, error) {
	if ref.Kind() != KindEphemeral {
		return Blob{}, fmt.Errorf("%w: %s reference has no staged bytes", ErrInvalidReference, ref.Kind())
	}

	fields, err := t.client.HGetAll(ctx, blobKey(t.sessionID, ref.Handle())).Result()
	if err != nil {
		return Blob{}, fmt.Errorf("failed to read draft file: %w", err)
	}
	data, ok := fields["data"]
	if !ok {
		return Blob{}, fmt.Errorf("%w: handle %s is not staged", ErrInvalidReference, ref.Handle())
	}
	return Blob{Data: []byte(data), ContentType: fields["content_type"]}, nil
}

func (t *redisTable) Release(ctx context.Context, ref Ref) error {
	key := blobKey(t.sessionID, ref.Handle())
	size, err := t.client.HStrLen(ctx, key, "data").Result()
	if err != nil {
		return fmt.Errorf("failed to release draft file: %w", err)
	}

	pipe := t.client.TxPipeline()
	deleted := pipe.Del(ctx, key)
	pipe.SRem(ctx, sessionHandlesKey(t.sessionID), ref.Handle())
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to release draft file: %w", err)
	}

	// only the caller that actually removed the blob gives its quota back
	if deleted.Val() > 0 {
		t.unreserve(ctx, size)
	}
	return nil
}
