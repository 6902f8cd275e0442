package gameclock

import (
	"testing"
	"time"

	"github.com/benbjohnson/clock"

	"checkerscli/internal/board"
	"checkerscli/internal/ledger"
)

func activeClock(mock *clock.Mock, redMs, blackMs int64, active board.Turn, movedAgo time.Duration) *ledger.Clock {
	// The mock starts at the epoch; move well past it so lastMoveAt stays
	// a positive timestamp.
	mock.Add(24 * time.Hour)
	last := mock.Now().Add(-movedAgo).UnixMilli() * 1000
	return &ledger.Clock{
		RedTimeMs:    redMs,
		BlackTimeMs:  blackMs,
		LastMoveAt:   last,
		ActivePlayer: &active,
	}
}

func TestResyncChargesActiveSideForElapsed(t *testing.T) {
	mock := clock.NewMock()
	m := NewManager(mock, nil)

	m.Resync(activeClock(mock, 60000, 60000, board.TurnRed, 2500*time.Millisecond), ledger.StatusActive, board.TurnRed)

	st := m.State()
	if st.RedMs != 57500 {
		t.Fatalf("red bank = %d, want 57500", st.RedMs)
	}
	if st.BlackMs != 60000 {
		t.Fatalf("black bank = %d, want 60000 untouched", st.BlackMs)
	}
	if !st.Running || st.Active != board.TurnRed {
		t.Fatalf("state = %+v, want running with red active", st)
	}
}

func TestAdvanceCountsDownOnlyActiveSide(t *testing.T) {
	mock := clock.NewMock()
	m := NewManager(mock, nil)
	m.Resync(activeClock(mock, 10000, 10000, board.TurnBlack, 0), ledger.StatusActive, board.TurnBlack)

	for i := 0; i < 5; i++ {
		m.Advance(TickInterval)
	}

	st := m.State()
	if st.BlackMs != 9500 {
		t.Fatalf("black bank = %d, want 9500", st.BlackMs)
	}
	if st.RedMs != 10000 {
		t.Fatalf("red bank = %d, want 10000", st.RedMs)
	}
}

func TestAdvanceFloorsAtZero(t *testing.T) {
	mock := clock.NewMock()
	m := NewManager(mock, nil)
	m.Resync(activeClock(mock, 150, 10000, board.TurnRed, 0), ledger.StatusActive, board.TurnRed)

	for i := 0; i < 4; i++ {
		m.Advance(TickInterval)
	}

	if got := m.State().RedMs; got != 0 {
		t.Fatalf("red bank = %d, want floored at 0", got)
	}
}

func TestResyncOverwritesLocalCountdown(t *testing.T) {
	mock := clock.NewMock()
	m := NewManager(mock, nil)
	m.Resync(activeClock(mock, 10000, 10000, board.TurnRed, 0), ledger.StatusActive, board.TurnRed)
	for i := 0; i < 20; i++ {
		m.Advance(TickInterval)
	}

	// The server says red actually has more time than the local countdown
	// believes. Its word is final.
	m.Resync(activeClock(mock, 9300, 9950, board.TurnBlack, 0), ledger.StatusActive, board.TurnBlack)

	st := m.State()
	if st.RedMs != 9300 || st.BlackMs != 9950 {
		t.Fatalf("banks = %d/%d, want 9300/9950", st.RedMs, st.BlackMs)
	}
	if st.Active != board.TurnBlack {
		t.Fatalf("active = %s, want BLACK", st.Active)
	}
}

func TestPendingGameDoesNotRun(t *testing.T) {
	mock := clock.NewMock()
	m := NewManager(mock, nil)
	m.Resync(&ledger.Clock{RedTimeMs: 60000, BlackTimeMs: 60000}, ledger.StatusPending, board.TurnRed)

	m.Advance(TickInterval)

	st := m.State()
	if st.Running {
		t.Fatal("pending game should not be counting down")
	}
	if st.RedMs != 60000 {
		t.Fatalf("red bank = %d, want untouched", st.RedMs)
	}
}

func TestResyncWithoutClockStops(t *testing.T) {
	mock := clock.NewMock()
	m := NewManager(mock, nil)
	m.Resync(activeClock(mock, 10000, 10000, board.TurnRed, 0), ledger.StatusActive, board.TurnRed)

	m.Resync(nil, ledger.StatusActive, board.TurnRed)

	st := m.State()
	if st.Running || st.RedMs != 0 || st.BlackMs != 0 {
		t.Fatalf("state after clockless resync = %+v, want stopped and zeroed", st)
	}
}

func TestOnTickObservesEveryStep(t *testing.T) {
	mock := clock.NewMock()
	m := NewManager(mock, nil)
	var seen []State
	m.OnTick(func(st State) { seen = append(seen, st) })

	m.Resync(activeClock(mock, 1000, 1000, board.TurnRed, 0), ledger.StatusActive, board.TurnRed)
	m.Advance(TickInterval)
	m.Advance(TickInterval)

	if len(seen) != 3 {
		t.Fatalf("observer ran %d times, want 3", len(seen))
	}
	if seen[2].RedMs != 800 {
		t.Fatalf("final observed red bank = %d, want 800", seen[2].RedMs)
	}
}
