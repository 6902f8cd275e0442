package gameclock

import (
	"sync"
	"time"

	"github.com/benbjohnson/clock"

	"checkerscli/internal/board"
	"checkerscli/internal/ledger"
)

// Action is the mutation a timeout observation calls for.
type Action int

const (
	ActionNone Action = iota
	// ActionResign fires when the local player's own bank is exhausted.
	ActionResign
	// ActionClaimWin fires when the opponent's bank is exhausted.
	ActionClaimWin
)

// DefaultCooldown spaces repeated timeout mutations while the ledger
// catches up with one already sent.
const DefaultCooldown = 3 * time.Second

// Arbiter turns clock states into at most one timeout action per cooldown
// window. Own-flag expiry always wins over the opponent's, so the two
// actions are mutually exclusive on any single observation.
type Arbiter struct {
	clk      clock.Clock
	cooldown time.Duration

	mu    sync.Mutex
	until time.Time
}

// NewArbiter builds an arbiter with the given cooldown; zero takes
// DefaultCooldown.
func NewArbiter(clk clock.Clock, cooldown time.Duration) *Arbiter {
	if cooldown <= 0 {
		cooldown = DefaultCooldown
	}
	return &Arbiter{clk: clk, cooldown: cooldown}
}

// Evaluate inspects one clock observation for the seat the local player
// holds. It returns ActionNone while the game is not active, the clock is
// not running, neither bank is empty, or a previous action is still inside
// its cooldown window.
func (a *Arbiter) Evaluate(st State, seat board.Turn, status ledger.GameStatus) Action {
	if status != ledger.StatusActive || !st.Running {
		return ActionNone
	}

	var act Action
	switch {
	case st.Remaining(seat) <= 0:
		act = ActionResign
	case st.Remaining(seat.Opponent()) <= 0:
		act = ActionClaimWin
	default:
		return ActionNone
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	now := a.clk.Now()
	if now.Before(a.until) {
		return ActionNone
	}
	a.until = now.Add(a.cooldown)
	return act
}

// Reset clears the cooldown window, for use when the selected game changes.
func (a *Arbiter) Reset() {
	a.mu.Lock()
	a.until = time.Time{}
	a.mu.Unlock()
}
