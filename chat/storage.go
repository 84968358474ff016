package chat

import (
	"context"
	"sync"
	"time"
)

// SessionStateRepository defines the database operations for session state.
type SessionStateRepository interface {
	SaveSessionState(ctx context.Context, state *SessionState) error
	LoadSessionState(ctx context.Context, sessionID string) (*SessionState, error)
	DeleteSessionState(ctx context.Context, sessionID string) error
	ListIdleSessions(ctx context.Context, olderThan time.Time) ([]string, error)
}

// RepositoryStorage adapts the database repository to SessionStateStorage.
type RepositoryStorage struct {
	repo SessionStateRepository
}

// NewRepositoryStorage creates session state storage backed by a repository.
func NewRepositoryStorage(repo SessionStateRepository) *RepositoryStorage {
	return &RepositoryStorage{repo: repo}
}

func (s *RepositoryStorage) Save(ctx context.Context, state *SessionState) error {
	return s.repo.SaveSessionState(ctx, state)
}

func (s *RepositoryStorage) Load(ctx context.Context, sessionID string) (*SessionState, error) {
	return s.repo.LoadSessionState(ctx, sessionID)
}

func (s *RepositoryStorage) Delete(ctx context.Context, sessionID string) error {
	return s.repo.DeleteSessionState(ctx, sessionID)
}

func (s *RepositoryStorage) ListIdle(ctx context.Context, olderThan time.Time) ([]string, error) {
	return s.repo.ListIdleSessions(ctx, olderThan)
}

// MemoryStorage keeps session states in memory. Used when Mongo is
// disabled; sessions then do not survive a restart.
type MemoryStorage struct {
	mu     sync.RWMutex
	states map[string]*SessionState
}

// NewMemoryStorage creates an in-memory session state storage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{states: make(map[string]*SessionState)}
}

func (s *MemoryStorage) Save(ctx context.Context, state *SessionState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.states[state.SessionID] = state
	return nil
}

func (s *MemoryStorage) Load(ctx context.Context, sessionID string) (*SessionState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	state, ok := s.states[sessionID]
	if !ok {
		return nil, nil
	}
	return state, nil
}

func (s *MemoryStorage) Delete(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.states, sessionID)
	return nil
}

func (s *MemoryStorage) ListIdle(ctx context.Context, olderThan time.Time) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var idle []string
	for id, state := range s.states {
		if state.UpdatedAt.Before(olderThan) {
			idle = append(idle, id)
		}
	}
	return idle, nil
}
