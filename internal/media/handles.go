package media

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"
)

// Blob is staged file content.
type Blob struct {
	Data        []byte
	ContentType string
}

// SessionLimits caps what one draft session may hold. Zero means no limit.
type SessionLimits struct {
	MaxFiles int
	MaxBytes int64
}

func (l SessionLimits) allows(files int, bytes int64) bool {
	if l.MaxFiles > 0 && files > l.MaxFiles {
		return false
	}
	if l.MaxBytes > 0 && bytes > l.MaxBytes {
		return false
	}
	return true
}

// HandleTable maps the handles of one draft session to their bytes.
type HandleTable interface {
	// Put stages a blob and returns its ephemeral reference. It fails with
	// ErrSessionFull when the blob does not fit the session's limits.
	Put(ctx context.Context, blob Blob) (Ref, error)
	// Get returns the bytes behind an ephemeral reference. Unknown, released
	// or non-ephemeral references fail with ErrInvalidReference.
	Get(ctx context.Context, ref Ref) (Blob, error)
	// Release forgets a handle. Releasing an unknown handle is not an error.
	Release(ctx context.Context, ref Ref) error
}

// SessionStore owns draft sessions, one per form being edited.
type SessionStore interface {
	// Create opens a new session for ownerID and returns its id.
	Create(ctx context.Context, ownerID string) (string, error)
	// Open returns the handle table of a session owned by ownerID.
	// Sessions that expired or belong to another owner fail with ErrSessionNotFound.
	Open(ctx context.Context, sessionID, ownerID string) (HandleTable, error)
	// Discard drops the session and everything staged in it.
	Discard(ctx context.Context, sessionID, ownerID string) error
}

// memoryTable is a HandleTable held in process memory.
type memoryTable struct {
	mu     sync.RWMutex
	blobs  map[string]Blob
	size   int64
	limits SessionLimits
}

// NewMemoryHandleTable returns an empty in-process handle table.
func NewMemoryHandleTable(limits SessionLimits) HandleTable {
	return newMemoryTable(limits)
}

func newMemoryTable(limits SessionLimits) *memoryTable {
	return &memoryTable{blobs: make(map[string]Blob), limits: limits}
}

func (t *memoryTable) Put(_ context.Context, blob Blob) (Ref, error) {
	handle := uuid.NewString()
	data := make([]byte, len(blob.Data))
	copy(data, blob.Data)

	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.limits.allows(len(t.blobs)+1, t.size+int64(len(data))) {
		return Ref{}, fmt.Errorf("%w: %d files, %d bytes staged", ErrSessionFull, len(t.blobs), t.size)
	}
	t.blobs[handle] = Blob{Data: data, ContentType: blob.ContentType}
	t.size += int64(len(data))

	return Ephemeral(handle), nil
}

func (t *memoryTable) Get(_ context.Context, ref Ref) (Blob, error) {
	if ref.Kind() != KindEphemeral {
		return Blob{}, fmt.Errorf("%w: %s reference has no staged bytes", ErrInvalidReference, ref.Kind())
	}

	t.mu.RLock()
	blob, ok := t.blobs[ref.Handle()]
	t.mu.RUnlock()

	if !ok {
		return Blob{}, fmt.Errorf("%w: handle %s is not staged", ErrInvalidReference, ref.Handle())
	}
	return blob, nil
}

func (t *memoryTable) Release(_ context.Context, ref Ref) error {
	t.mu.Lock()
	if blob, ok := t.blobs[ref.Handle()]; ok {
		t.size -= int64(len(blob.Data))
		delete(t.blobs, ref.Handle())
	}
	t.mu.Unlock()
	return nil
}

type memorySession struct {
	owner string
	table *memoryTable
}

// MemorySessionStore keeps draft sessions in a size-bounded LRU whose entries
// expire after a fixed TTL. Sessions do not survive a restart.
type MemorySessionStore struct {
	sessions *expirable.LRU[string, *memorySession]
	limits   SessionLimits
}

// NewMemorySessionStore creates a store holding at most maxSessions sessions,
// each living for ttl after creation and bounded by limits.
func NewMemorySessionStore(maxSessions int, ttl time.Duration, limits SessionLimits) *MemorySessionStore {
	return &MemorySessionStore{
		sessions: expirable.NewLRU[string, *memorySession](maxSessions, nil, ttl),
		limits:   limits,
	}
}

// Create opens a new session for ownerID.
func (s *MemorySessionStore) Create(_ context.Context, ownerID string) (string, error) {
	id := uuid.NewString()
	s.sessions.Add(id, &memorySession{owner: ownerID, table: newMemoryTable(s.limits)})
	return id, nil
}

// Open returns the session's handle table.
func (s *MemorySessionStore) Open(_ context.Context, sessionID, ownerID string) (HandleTable, error) {
	sess, ok := s.sessions.Get(sessionID)
	if !ok || sess.owner != ownerID {
		return nil, ErrSessionNotFound
	}
	return sess.table, nil
}

// Discard removes the session.
func (s *MemorySessionStore) Discard(ctx context.Context, sessionID, ownerID string) error {
	if _, err := s.Open(ctx, sessionID, ownerID); err != nil {
		return err
	}
	s.sessions.Remove(sessionID)
	return nil
}
