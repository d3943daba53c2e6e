// Package session holds the in-memory session dedup store for notifications.
package session

import (
	"sync"

	portssvc "github.com/finpal/finpal-backend/internal/core/ports/services"
)

// MemorySentStore keeps the per-user set of notification keys that have
// already fired this session. State lives only in process memory, so a
// restart naturally starts a fresh session for everyone.
type MemorySentStore struct {
	mu   sync.RWMutex
	sent map[string]map[string]struct{} // userID -> key set
}

var _ portssvc.SentNotificationStore = (*MemorySentStore)(nil)

func NewMemorySentStore() *MemorySentStore {
	return &MemorySentStore{sent: make(map[string]map[string]struct{})}
}

func (s *MemorySentStore) AlreadySent(userID string, key string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.sent[userID][key]
	return ok
}

func (s *MemorySentStore) MarkSent(userID string, key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	keys, ok := s.sent[userID]
	if !ok {
		keys = make(map[string]struct{})
		s.sent[userID] = keys
	}
	keys[key] = struct{}{}
}

func (s *MemorySentStore) Reset(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sent, userID)
}
