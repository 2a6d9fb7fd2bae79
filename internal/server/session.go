package server

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/pathgrid/pkg/replay"
)

// session is one remote replay. The controller is single-threaded, so every
// access goes through mu and hands out frame copies only.
type session struct {
	ID        string
	CreatedAt time.Time

	mu       sync.Mutex
	ctrl     *replay.Controller
	lastSeen time.Time
}

func newSession(ctrl *replay.Controller, now time.Time) *session {
	ctrl.Setup()
	return &session{
		ID:        uuid.NewString(),
		CreatedAt: now,
		ctrl:      ctrl,
		lastSeen:  now,
	}
}

// tick advances the replay by one frame.
func (s *session) tick(now time.Time) replay.Frame {
	s.mu.Lock()
	defer s.mu.Unlock()
	f := s.ctrl.Update(now.Sub(s.lastSeen), nil)
	s.lastSeen = now
	return f
}

// apply performs one edit and returns the restarted frame.
func (s *session) apply(e replay.Edit, now time.Time) (bool, replay.Frame) {
	s.mu.Lock()
	defer s.mu.Unlock()
	applied := s.ctrl.Apply(e)
	s.lastSeen = now
	return applied, s.ctrl.Snapshot()
}

// snapshot returns the current frame without advancing the replay.
func (s *session) snapshot(now time.Time) replay.Frame {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSeen = now
	return s.ctrl.Snapshot()
}

func (s *session) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

// store holds live sessions keyed by ID.
type store struct {
	mu       sync.RWMutex
	sessions map[string]*session
}

func newStore() *store {
	return &store{sessions: make(map[string]*session)}
}

func (st *store) get(id string) (*session, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	s, ok := st.sessions[id]
	return s, ok
}

// add stores s unless the store already holds limit sessions.
func (st *store) add(s *session, limit int) bool {
	st.mu.Lock()
	defer st.mu.Unlock()
	if len(st.sessions) >= limit {
		return false
	}
	st.sessions[s.ID] = s
	return true
}

func (st *store) delete(id string) bool {
	st.mu.Lock()
	defer st.mu.Unlock()
	if _, ok := st.sessions[id]; !ok {
		return false
	}
	delete(st.sessions, id)
	return true
}

// full reports whether the store holds limit sessions or more.
func (st *store) full(limit int) bool {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions) >= limit
}

func (st *store) len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}

// cleanup removes sessions idle since before cutoff and returns how many.
func (st *store) cleanup(cutoff time.Time) int {
	st.mu.Lock()
	defer st.mu.Unlock()
	n := 0
	for id, s := range st.sessions {
		if s.idleSince().Before(cutoff) {
			delete(st.sessions, id)
			n++
		}
	}
	return n
}
