package sessions

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"
)

type memEntry struct {
	data    []byte
	expires time.Time
}

// MemoryRepo keeps sessions in process. Values are stored as JSON
// snapshots so callers never share a *Session with the repo.
type MemoryRepo struct {
	mu      sync.RWMutex
	entries map[string]memEntry
	ttl     time.Duration
	now     func() time.Time
}

// NewMemoryRepo creates an in-process repo. A ttl <= 0 uses DefaultTTL.
func NewMemoryRepo(ttl time.Duration) *MemoryRepo {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &MemoryRepo{
		entries: map[string]memEntry{},
		ttl:     ttl,
		now:     time.Now,
	}
}

var _ Repo = (*MemoryRepo)(nil)

func (r *MemoryRepo) put(s *Session) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	r.entries[s.ID] = memEntry{data: data, expires: r.now().Add(r.ttl)}
	return nil
}

// load returns a decoded copy; the caller must hold r.mu.
func (r *MemoryRepo) load(id string) (*Session, error) {
	e, ok := r.entries[id]
	if !ok || r.now().After(e.expires) {
		return nil, ErrNotFound
	}
	var s Session
	if err := json.Unmarshal(e.data, &s); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &s, nil
}

func (r *MemoryRepo) Create(_ context.Context, s *Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sweep()
	return r.put(s)
}

func (r *MemoryRepo) Get(_ context.Context, id string) (*Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.load(id)
}

func (r *MemoryRepo) Update(_ context.Context, id string, fn func(*Session) error) (*Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, err := r.load(id)
	if err != nil {
		return nil, err
	}
	if err := fn(s); err != nil {
		return nil, err
	}
	s.UpdatedAt = r.now()
	if err := r.put(s); err != nil {
		return nil, err
	}
	return s, nil
}

func (r *MemoryRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, id)
	return nil
}

// Len reports the number of live sessions.
func (r *MemoryRepo) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	n := 0
	now := r.now()
	for _, e := range r.entries {
		if !now.After(e.expires) {
			n++
		}
	}
	return n
}

// sweep drops expired entries; the caller must hold the write lock.
func (r *MemoryRepo) sweep() {
	now := r.now()
	for id, e := range r.entries {
		if now.After(e.expires) {
			delete(r.entries, id)
		}
	}
}
