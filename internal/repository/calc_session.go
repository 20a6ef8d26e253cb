package repository

import (
	"sync"

	"github.com/fuelinnovation/line-autoreply/internal/model"
)

// CalcSessionRepository holds in-flight savings calculations, one per user.
type CalcSessionRepository interface {
	Find(userID string) (*model.CalcSession, bool)
	Save(userID string, session model.CalcSession)
	Delete(userID string)
	Count() int
}

type memoryCalcSessionRepo struct {
	mu       sync.RWMutex
	sessions map[string]model.CalcSession
}

func NewMemoryCalcSessionRepository() CalcSessionRepository {
	return &memoryCalcSessionRepo{sessions: make(map[string]model.CalcSession)}
}

func (r *memoryCalcSessionRepo) Find(userID string) (*model.CalcSession, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.sessions[userID]
	if !ok {
		return nil, false
	}
	return &s, true
}

func (r *memoryCalcSessionRepo) Save(userID string, session model.CalcSession) {
	r.mu.Lock()
	r.sessions[userID] = session
	r.mu.Unlock()
}

func (r *memoryCalcSessionRepo) Delete(userID string) {
	r.mu.Lock()
	delete(r.sessions, userID)
	r.mu.Unlock()
}

func (r *memoryCalcSessionRepo) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
