// Package dictation implements the dictation exercise state machine:
// topic-scoped item generation and the sequential reveal cursor.
package dictation

import (
	"errors"
	"fmt"
	"strings"
	"sync"
)

// ItemCount is the fixed exercise length: 4 single words followed by
// 2 short sentences.
const ItemCount = 6

// fillerItem pads undersized generations so the exercise always has
// exactly ItemCount entries.
const fillerItem = "Hallo"

// ErrNotStarted is returned when advancing a session with no exercise.
var ErrNotStarted = errors.New("dictation not started")

// Status describes where an exercise is in its lifecycle.
type Status string

const (
	StatusReady      Status = "ready"       // cursor at 0, nothing revealed
	StatusInProgress Status = "in_progress" // 0 < cursor < ItemCount
	StatusComplete   Status = "complete"    // all items revealed
)

// Exercise is one session's dictation state. Items are generated once at
// start and never mutated; only the cursor moves.
type Exercise struct {
	Topic  string
	Items  []string
	Cursor int
}

// Status reports the exercise lifecycle state.
func (e *Exercise) Status() Status {
	switch {
	case e.Cursor <= 0:
		return StatusReady
	case e.Cursor < len(e.Items):
		return StatusInProgress
	default:
		return StatusComplete
	}
}

// Step is the outcome of one Advance call.
type Step struct {
	Item     string // revealed item text, empty on a terminal read
	Index    int    // zero-based position of the revealed item
	Revealed bool   // false when the exercise was already complete
	Done     bool   // true once the final item has been revealed
}

// Store maps session ids to dictation exercises. Starting a new exercise
// replaces any prior one for the same id.
type Store struct {
	mu      sync.Mutex
	entries map[string]*Exercise
}

// NewStore creates an empty dictation store.
func NewStore() *Store {
	return &Store{entries: make(map[string]*Exercise)}
}

// Start installs a fresh exercise for id, overwriting any prior state.
func (s *Store) Start(id, topic string, items []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[id] = &Exercise{Topic: topic, Items: items}
}

// Advance reveals the next item and moves the cursor by exactly one.
// A completed exercise yields a terminal Step without moving the cursor,
// so repeated calls after the end are idempotent. Returns ErrNotStarted
// when the session has no exercise.
func (s *Store) Advance(id string) (Step, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ex, ok := s.entries[id]
	if !ok {
		return Step{}, ErrNotStarted
	}
	if ex.Cursor >= len(ex.Items) {
		return Step{Done: true}, nil
	}

	step := Step{
		Item:     ex.Items[ex.Cursor],
		Index:    ex.Cursor,
		Revealed: true,
	}
	ex.Cursor++
	step.Done = ex.Cursor == len(ex.Items)
	return step, nil
}

// Get returns a copy of the exercise for id.
func (s *Store) Get(id string) (Exercise, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ex, ok := s.entries[id]
	if !ok {
		return Exercise{}, false
	}
	out := Exercise{Topic: ex.Topic, Cursor: ex.Cursor, Items: make([]string, len(ex.Items))}
	copy(out.Items, ex.Items)
	return out, true
}

// Delete removes the session's exercise. Unknown ids are a no-op.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, id)
}

// GenerationPrompt is the strict item-generation instruction sent to the
// completion collaborator for a topic.
func GenerationPrompt(topic string) string {
	return fmt.Sprintf(
		"Erstelle ein Diktat für ein Volksschulkind (Niveau A1) zum Thema %q. "+
			"Gib genau 6 Zeilen aus: zuerst 4 einzelne Wörter, dann 2 kurze Sätze. "+
			"Eine Zeile pro Eintrag. Keine Nummerierung, keine Aufzählungszeichen, keine Erklärungen.",
		topic,
	)
}

// BuildItems parses collaborator output into exactly ItemCount items.
// Blank lines and stray list markers are dropped; short output is padded
// with a filler word so a degraded generation still yields a usable
// exercise.
func BuildItems(raw string) []string {
	items := make([]string, 0, ItemCount)
	for _, line := range strings.Split(raw, "\n") {
		line = stripListMarker(strings.TrimSpace(line))
		if line == "" {
			continue
		}
		items = append(items, line)
		if len(items) == ItemCount {
			break
		}
	}
	for len(items) < ItemCount {
		items = append(items, fillerItem)
	}
	return items
}

func stripListMarker(line string) string {
	trimmed := strings.TrimLeft(line, "-*• \t")
	// "1. Hund" / "2) Katze"
	if i := strings.IndexAny(trimmed, ".)"); i > 0 && i <= 2 {
		if isDigits(trimmed[:i]) {
			trimmed = strings.TrimSpace(trimmed[i+1:])
		}
	}
	return strings.TrimSpace(trimmed)
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}
