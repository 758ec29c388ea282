// Package session keeps live games in memory. Sessions are ephemeral:
// nothing is written to durable storage, and idle sessions are pruned
// after a TTL.
package session

import (
	"errors"
	"sync"
	"time"

	"github.com/sweepcore/sweepd/internal/board"
)

var ErrNotFound = errors.New("session not found")

// Session binds one game to an id. The engine itself is single
// threaded, so every access to the game goes through Do, which holds
// the session lock for the duration of the callback.
type Session struct {
	ID        int64
	StartedAt time.Time
	EndedAt   *time.Time

	mu       sync.Mutex
	game     *board.Game
	lastUsed time.Time
}

func (s *Session) Do(f func(g *board.Game)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastUsed = time.Now()
	f(s.game)
}

// MarkEnded records the moment a game reached a terminal state. The
// first terminal transition wins; a later restart clears it.
func (s *Session) MarkEnded(at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.EndedAt == nil {
		s.EndedAt = &at
	}
}

func (s *Session) ClearEnded() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.EndedAt = nil
}

type Store struct {
	mu       sync.RWMutex
	nextId   int64
	sessions map[int64]*Session
	ttl      time.Duration
}

func NewStore(ttl time.Duration) *Store {
	return &Store{
		sessions: make(map[int64]*Session),
		ttl:      ttl,
	}
}

func (st *Store) Create(g *board.Game) *Session {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.nextId++
	s := &Session{
		ID:        st.nextId,
		StartedAt: time.Now().UTC(),
		game:      g,
		lastUsed:  time.Now(),
	}
	st.sessions[s.ID] = s
	return s
}

func (st *Store) Get(id int64) (*Session, error) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	s, ok := st.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return s, nil
}

func (st *Store) Count() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}

// Prune drops sessions idle for longer than the store TTL and reports
// how many were dropped.
func (st *Store) Prune(now time.Time) int {
	st.mu.Lock()
	defer st.mu.Unlock()
	dropped := 0
	for id, s := range st.sessions {
		s.mu.Lock()
		idle := now.Sub(s.lastUsed)
		s.mu.Unlock()
		if idle > st.ttl {
			delete(st.sessions, id)
			dropped++
		}
	}
	return dropped
}
