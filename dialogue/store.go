package dialogue

import "sync"

// Store keeps conversation state per chat, in memory only. Sessions do
// not survive a restart; a chat mid-conversation after a crash has to
// run /poll again.
type Store struct {
	mu       sync.Mutex
	sessions map[int64]*session
}

type session struct {
	mu    sync.Mutex
	state State
}

func NewStore() *Store {
	return &Store{sessions: make(map[int64]*session)}
}

func (s *Store) session(chatID int64) *session {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[chatID]
	if !ok {
		sess = &session{state: Start{}}
		s.sessions[chatID] = sess
	}
	return sess
}

// Lock serializes conversation transitions for one chat. Handlers hold
// the lock across their read-act-write sequence so two rapid events on
// the same chat cannot interleave. Returns the unlock func.
func (s *Store) Lock(chatID int64) func() {
	sess := s.session(chatID)
	sess.mu.Lock()
	return sess.mu.Unlock
}

// Get returns the chat's current state, Start if the chat was never seen.
func (s *Store) Get(chatID int64) State {
	return s.session(chatID).state
}

// Set replaces the chat's state. Callers are expected to hold the chat's
// lock when Set is part of a transition.
func (s *Store) Set(chatID int64, state State) {
	s.session(chatID).state = state
}

// Reset puts the chat back to Start.
func (s *Store) Reset(chatID int64) {
	s.Set(chatID, Start{})
}
