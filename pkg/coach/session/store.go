// Package session holds per-session conversation history.
package session

import (
	"sync"

	"github.com/Shivsankar1987/deutschcoach/pkg/core/chat"
)

// DefaultMaxTurns is the number of user/assistant pairs kept per session.
const DefaultMaxTurns = 6

// Store maps session ids to bounded conversation histories. All state is
// in-memory and lost on restart. Mutations on the same id are serialized;
// collaborator calls must never run while a store lock is held.
type Store struct {
	mu       sync.RWMutex
	maxTurns int
	entries  map[string][]chat.Message
}

// NewStore creates a store keeping the most recent maxTurns pairs per id.
func NewStore(maxTurns int) *Store {
	if maxTurns <= 0 {
		maxTurns = DefaultMaxTurns
	}
	return &Store{
		maxTurns: maxTurns,
		entries:  make(map[string][]chat.Message),
	}
}

// Snapshot returns a copy of the history for id, or nil when the session
// has no recorded turns. No entry is created for unknown ids.
func (s *Store) Snapshot(id string) []chat.Message {
	s.mu.RLock()
	defer s.mu.RUnlock()

	history, ok := s.entries[id]
	if !ok {
		return nil
	}
	out := make([]chat.Message, len(history))
	copy(out, history)
	return out
}

// AppendTurn records one user/assistant pair and evicts the oldest
// records beyond 2*maxTurns.
func (s *Store) AppendTurn(id, userText, assistantText string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	history := append(s.entries[id],
		chat.Message{Role: chat.RoleUser, Content: userText},
		chat.Message{Role: chat.RoleAssistant, Content: assistantText},
	)
	if max := 2 * s.maxTurns; len(history) > max {
		history = history[len(history)-max:]
	}
	s.entries[id] = history
}

// Delete removes the session's history. Unknown ids are a no-op.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, id)
}

// Len reports the number of stored records for id.
func (s *Store) Len(id string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries[id])
}
