package repository

import (
	"sort"
	"sync"

	"github.com/devendraBainda/AI-Interview-Agent/internal/model"
)

// MemorySessionRepository keeps sessions in process memory. Used for
// single-instance deployments without Postgres and as the test double for
// the session machine. Records are deep-copied on the way in and out so a
// caller can never mutate stored state except through Save.
type MemorySessionRepository struct {
	mu       sync.RWMutex
	sessions map[string]*model.Session
}

func NewMemorySessionRepository() *MemorySessionRepository {
	return &MemorySessionRepository{sessions: make(map[string]*model.Session)}
}

func (r *MemorySessionRepository) Save(session *model.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[session.ID.String()] = cloneSession(session)
	return nil
}

func (r *MemorySessionRepository) FindByID(id string) (*model.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	session, ok := r.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return cloneSession(session), nil
}

func (r *MemorySessionRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
	return nil
}

func (r *MemorySessionRepository) List(offset, limit int) ([]model.Session, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make([]model.Session, 0, len(r.sessions))
	for _, s := range r.sessions {
		all = append(all, *cloneSession(s))
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})

	total := int64(len(all))
	if offset >= len(all) {
		return []model.Session{}, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func cloneSession(s *model.Session) *model.Session {
	clone := *s
	clone.Questions = append([]string(nil), s.Questions...)
	clone.Answers = append([]string(nil), s.Answers...)
	clone.Evaluations = append([]model.Evaluation(nil), s.Evaluations...)
	return &clone
}
