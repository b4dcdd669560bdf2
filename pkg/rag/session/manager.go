package session

import (
	"sync"
	"time"

	"robotics-tutor-be/internal/repository/memory"
	"robotics-tutor-be/pkg/store"
)

// Manager wraps the session repository with per-session mutual exclusion so
// concurrent turns on the same session never interleave their read-modify-
// write cycles. Different sessions proceed independently.
type Manager struct {
	repo *memory.SessionRepository

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewManager(repo *memory.SessionRepository) *Manager {
	return &Manager{
		repo:  repo,
		locks: make(map[string]*sync.Mutex),
	}
}

func (m *Manager) lockFor(sessionID string) *sync.Mutex {
	m.mu.Lock()
	defer m.mu.Unlock()
	lock, ok := m.locks[sessionID]
	if !ok {
		lock = &sync.Mutex{}
		m.locks[sessionID] = lock
	}
	return lock
}

// History returns a copy of the most recent turns, at most
// store.HistoryWindow of them. Unknown sessions yield an empty history, they
// are not created until a turn is appended.
func (m *Manager) History(sessionID string) []store.ConversationTurn {
	lock := m.lockFor(sessionID)
	lock.Lock()
	defer lock.Unlock()

	sess, ok := m.repo.Get(sessionID)
	if !ok {
		return nil
	}

	turns := sess.Turns
	if len(turns) > store.HistoryWindow {
		turns = turns[len(turns)-store.HistoryWindow:]
	}
	out := make([]store.ConversationTurn, len(turns))
	copy(out, turns)
	return out
}

// AppendTurn records one completed exchange, creating the session on first
// use and trimming it to the newest store.MaxTurns entries.
func (m *Manager) AppendTurn(sessionID, query, answer string, sources []string) {
	lock := m.lockFor(sessionID)
	lock.Lock()
	defer lock.Unlock()

	sess, ok := m.repo.Get(sessionID)
	if !ok {
		sess = &store.Session{ID: sessionID}
	}

	now := float64(time.Now().UnixNano()) / 1e9
	sess.Turns = append(sess.Turns,
		store.ConversationTurn{
			Role:      store.RoleUser,
			Content:   query,
			Timestamp: now,
		},
		store.ConversationTurn{
			Role:      store.RoleAssistant,
			Content:   answer,
			Timestamp: now,
			Sources:   sources,
		},
	)

	if len(sess.Turns) > store.MaxTurns {
		sess.Turns = sess.Turns[len(sess.Turns)-store.MaxTurns:]
	}

	m.repo.Save(sess)
}

// Transcript returns every retained turn, oldest first.
func (m *Manager) Transcript(sessionID string) []store.ConversationTurn {
	lock := m.lockFor(sessionID)
	lock.Lock()
	defer lock.Unlock()

	sess, ok := m.repo.Get(sessionID)
	if !ok {
		return nil
	}
	out := make([]store.ConversationTurn, len(sess.Turns))
	copy(out, sess.Turns)
	return out
}

// Clear removes the session and reports whether it existed.
func (m *Manager) Clear(sessionID string) bool {
	lock := m.lockFor(sessionID)
	lock.Lock()
	defer lock.Unlock()

	_, existed := m.repo.Get(sessionID)
	m.repo.Delete(sessionID)
	return existed
}
