package cache

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"phCV/internal/cv"
)

type memoryEntry struct {
	data    cv.CVData
	created time.Time
}

// MemoryStore 是进程内的 TTL 缓存，供 CLI 与测试使用。
// 每次写入顺带清理过期条目，读路径同样拒绝过期数据。
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	ttl     time.Duration
	now     func() time.Time
}

// NewMemoryStore 构造进程内缓存；ttl<=0 时使用 DefaultTTL。
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (s *MemoryStore) Put(_ context.Context, data cv.CVData) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for id, entry := range s.entries {
		if now.Sub(entry.created) > s.ttl {
			delete(s.entries, id)
		}
	}

	id := uuid.NewString()
	s.entries[id] = memoryEntry{data: data.Clone(), created: now}
	return id, nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (cv.CVData, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[id]
	if !ok {
		return cv.CVData{}, ErrNotFound
	}
	if s.now().Sub(entry.created) > s.ttl {
		delete(s.entries, id)
		return cv.CVData{}, ErrNotFound
	}
	return entry.data.Clone(), nil
}
