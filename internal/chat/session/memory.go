package session

import (
	"context"
	"hash/fnv"
	"sync"

	"food-assistant/internal/models"
)

const DefaultShards = 32

// MemoryStore is a process-local Store partitioned into independently
// locked shards.
type MemoryStore struct {
	shards []*shard
}

type shard struct {
	mu     sync.RWMutex
	states map[string]models.ConversationState
}

func NewMemoryStore(shards int) *MemoryStore {
	if shards <= 0 {
		shards = DefaultShards
	}
	s := &MemoryStore{shards: make([]*shard, shards)}
	for i := range s.shards {
		s.shards[i] = &shard{states: make(map[string]models.ConversationState)}
	}
	return s
}

func (s *MemoryStore) Get(_ context.Context, userID string) (models.ConversationState, error) {
	sh := s.shardFor(userID)
	sh.mu.RLock()
	defer sh.mu.RUnlock()
	return sh.states[userID], nil
}

func (s *MemoryStore) Set(_ context.Context, userID string, state models.ConversationState) error {
	sh := s.shardFor(userID)
	sh.mu.Lock()
	defer sh.mu.Unlock()
	sh.states[userID] = state
	return nil
}

// Len returns the number of users with stored state.
func (s *MemoryStore) Len() int {
	n := 0
	for _, sh := range s.shards {
		sh.mu.RLock()
		n += len(sh.states)
		sh.mu.RUnlock()
	}
	return n
}

func (s *MemoryStore) shardFor(key string) *shard {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return s.shards[h.Sum32()%uint32(len(s.shards))]
}
