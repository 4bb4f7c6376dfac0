// Package storage keeps cataloging sessions in memory. Sessions live for the
// duration of the server process; drafts are persisted in the back office,
// not here.
package storage

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/auktionera/cataloger/internal/models"
)

type SessionStore struct {
	sessions map[string]*models.CatalogSession
	mu       sync.RWMutex
}

func New() *SessionStore {
	return &SessionStore{
		sessions: make(map[string]*models.CatalogSession),
	}
}

// Create allocates a session around the given record snapshot and stores it.
func (s *SessionStore) Create(record models.CatalogRecord) *models.CatalogSession {
	now := time.Now()
	session := &models.CatalogSession{
		ID:         fmt.Sprintf("session_%d", now.UnixNano()),
		Record:     record,
		CreatedAt:  now,
		ModifiedAt: now,
	}
	s.Set(session.ID, session)
	return session
}

func (s *SessionStore) Get(sessionID string) (*models.CatalogSession, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, exists := s.sessions[sessionID]
	return session, exists
}

func (s *SessionStore) Set(sessionID string, session *models.CatalogSession) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sessionID] = session
}

// List returns all sessions, newest first.
func (s *SessionStore) List() []*models.CatalogSession {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*models.CatalogSession, 0, len(s.sessions))
	for _, session := range s.sessions {
		result = append(result, session)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result
}

func (s *SessionStore) Delete(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
}
