package premove

import (
	"testing"

	"checkerscli/internal/engine"
)

func TestStageAndTake(t *testing.T) {
	q := New()
	if _, ok := q.Pending(); ok {
		t.Fatalf("new queue should be empty")
	}
	q.Stage(engine.Coord{Row: 5, Col: 2}, engine.Coord{Row: 4, Col: 3})
	s, ok := q.Take()
	if !ok {
		t.Fatalf("expected staged move")
	}
	if s.From != (engine.Coord{Row: 5, Col: 2}) || s.To != (engine.Coord{Row: 4, Col: 3}) {
		t.Fatalf("took %+v", s)
	}
	if _, ok := q.Take(); ok {
		t.Fatalf("Take should consume the slot")
	}
}

func TestStagingReplacesPrevious(t *testing.T) {
	q := New()
	q.Stage(engine.Coord{Row: 5, Col: 2}, engine.Coord{Row: 4, Col: 1})
	q.Stage(engine.Coord{Row: 5, Col: 4}, engine.Coord{Row: 4, Col: 5})
	s, ok := q.Take()
	if !ok || s.From != (engine.Coord{Row: 5, Col: 4}) {
		t.Fatalf("expected only the most recent premove, got %+v ok=%v", s, ok)
	}
	if _, ok := q.Pending(); ok {
		t.Fatalf("queue should hold at most one move")
	}
}

func TestCancel(t *testing.T) {
	q := New()
	q.Stage(engine.Coord{Row: 5, Col: 2}, engine.Coord{Row: 4, Col: 3})
	q.Cancel()
	if _, ok := q.Pending(); ok {
		t.Fatalf("cancel should empty the queue")
	}
	// Cancel on an empty queue is a no-op.
	q.Cancel()
}
