package gameclock

import (
	"testing"
	"time"

	"github.com/benbjohnson/clock"

	"checkerscli/internal/board"
	"checkerscli/internal/ledger"
)

func runningState(redMs, blackMs int64) State {
	return State{RedMs: redMs, BlackMs: blackMs, Active: board.TurnRed, Running: true}
}

func TestArbiterOwnFlagMeansResign(t *testing.T) {
	a := NewArbiter(clock.NewMock(), 0)
	if got := a.Evaluate(runningState(0, 5000), board.TurnRed, ledger.StatusActive); got != ActionResign {
		t.Fatalf("action = %v, want ActionResign", got)
	}
}

func TestArbiterOpponentFlagMeansClaim(t *testing.T) {
	a := NewArbiter(clock.NewMock(), 0)
	if got := a.Evaluate(runningState(5000, 0), board.TurnRed, ledger.StatusActive); got != ActionClaimWin {
		t.Fatalf("action = %v, want ActionClaimWin", got)
	}
}

func TestArbiterOwnFlagWinsWhenBothExpired(t *testing.T) {
	a := NewArbiter(clock.NewMock(), 0)
	if got := a.Evaluate(runningState(0, 0), board.TurnBlack, ledger.StatusActive); got != ActionResign {
		t.Fatalf("action = %v, want ActionResign when both flags are down", got)
	}
}

func TestArbiterSilentWhileTimeRemains(t *testing.T) {
	a := NewArbiter(clock.NewMock(), 0)
	if got := a.Evaluate(runningState(100, 100), board.TurnRed, ledger.StatusActive); got != ActionNone {
		t.Fatalf("action = %v, want ActionNone", got)
	}
}

func TestArbiterIgnoresFinishedAndStoppedGames(t *testing.T) {
	a := NewArbiter(clock.NewMock(), 0)
	if got := a.Evaluate(runningState(0, 5000), board.TurnRed, ledger.StatusFinished); got != ActionNone {
		t.Fatalf("finished game: action = %v, want ActionNone", got)
	}
	stopped := runningState(0, 5000)
	stopped.Running = false
	if got := a.Evaluate(stopped, board.TurnRed, ledger.StatusActive); got != ActionNone {
		t.Fatalf("stopped clock: action = %v, want ActionNone", got)
	}
}

func TestArbiterCooldownSuppressesRepeats(t *testing.T) {
	mock := clock.NewMock()
	a := NewArbiter(mock, 3*time.Second)
	st := runningState(0, 5000)

	if got := a.Evaluate(st, board.TurnRed, ledger.StatusActive); got != ActionResign {
		t.Fatalf("first evaluation = %v, want ActionResign", got)
	}
	// Ticks keep arriving every 100ms while the resign is in flight.
	for i := 0; i < 10; i++ {
		mock.Add(100 * time.Millisecond)
		if got := a.Evaluate(st, board.TurnRed, ledger.StatusActive); got != ActionNone {
			t.Fatalf("tick %d inside cooldown fired %v", i, got)
		}
	}
	mock.Add(3 * time.Second)
	if got := a.Evaluate(st, board.TurnRed, ledger.StatusActive); got != ActionResign {
		t.Fatalf("after cooldown = %v, want ActionResign again", got)
	}
}

func TestArbiterResetClearsCooldown(t *testing.T) {
	mock := clock.NewMock()
	a := NewArbiter(mock, time.Minute)
	st := runningState(0, 5000)

	if got := a.Evaluate(st, board.TurnRed, ledger.StatusActive); got != ActionResign {
		t.Fatalf("first evaluation = %v, want ActionResign", got)
	}
	a.Reset()
	if got := a.Evaluate(st, board.TurnRed, ledger.StatusActive); got != ActionResign {
		t.Fatalf("after reset = %v, want ActionResign", got)
	}
}
