// Package premove stages a single candidate move made while it is not yet
// the local player's turn. Legality is judged only when the staged move is
// taken for execution, against the board as it exists at that moment.
package premove

import (
	"sync"

	"checkerscli/internal/engine"
)

// Staged is the one pending from/to pair.
type Staged struct {
	From engine.Coord
	To   engine.Coord
}

// Queue is a one-slot staging area. Staging a new move silently discards
// the previous one.
type Queue struct {
	mu     sync.Mutex
	staged *Staged
}

// New returns an empty queue.
func New() *Queue {
	return &Queue{}
}

// Stage records from/to as the pending premove, replacing any earlier one.
func (q *Queue) Stage(from, to engine.Coord) {
	q.mu.Lock()
	q.staged = &Staged{From: from, To: to}
	q.mu.Unlock()
}

// Cancel drops the pending premove, if any.
func (q *Queue) Cancel() {
	q.mu.Lock()
	q.staged = nil
	q.mu.Unlock()
}

// Pending returns the staged move without consuming it.
func (q *Queue) Pending() (Staged, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.staged == nil {
		return Staged{}, false
	}
	return *q.staged, true
}

// Take removes and returns the staged move. The queue empties regardless of
// what the caller then does with it.
func (q *Queue) Take() (Staged, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.staged == nil {
		return Staged{}, false
	}
	s := *q.staged
	q.staged = nil
	return s, true
}
