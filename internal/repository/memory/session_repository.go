package memory

import (
	"robotics-tutor-be/pkg/store"

	"github.com/patrickmn/go-cache"
)

// SessionRepository stores conversation transcripts in process memory.
// Entries never expire; only an explicit clear removes a session, and
// a restart drops them all.
type SessionRepository struct {
	cache *cache.Cache
}

func NewSessionRepository() *SessionRepository {
	return &SessionRepository{cache: cache.New(cache.NoExpiration, 0)}
}

func (r *SessionRepository) Get(sessionID string) (*store.Session, bool) {
	entry, found := r.cache.Get(sessionID)
	if !found {
		return nil, false
	}
	return entry.(*store.Session), true
}

func (r *SessionRepository) Save(session *store.Session) {
	r.cache.Set(session.ID, session, cache.NoExpiration)
}

func (r *SessionRepository) Delete(sessionID string) {
	r.cache.Delete(sessionID)
}
