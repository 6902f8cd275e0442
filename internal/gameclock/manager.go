// Package gameclock keeps the two countdown timers for the selected game in
// step with server-reported clocks, and decides when a timeout should turn
// into a resign or claim-win mutation.
package gameclock

import (
	"context"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"go.uber.org/zap"

	"checkerscli/internal/board"
	"checkerscli/internal/ledger"
)

// TickInterval is the local countdown resolution.
const TickInterval = 100 * time.Millisecond

// State is one observation of both clocks.
type State struct {
	RedMs   int64
	BlackMs int64
	Active  board.Turn
	Running bool
}

// Remaining returns the bank for the given side.
func (s State) Remaining(side board.Turn) int64 {
	if side == board.TurnRed {
		return s.RedMs
	}
	return s.BlackMs
}

// Manager counts the active side down between snapshots. Server clock data
// always overwrites the local countdown wholesale; the manager never extends
// a bank on its own.
type Manager struct {
	clk clock.Clock
	log *zap.Logger

	mu      sync.Mutex
	red     int64
	black   int64
	active  board.Turn
	running bool
	onTick  func(State)
}

// NewManager builds a stopped manager.
func NewManager(clk clock.Clock, log *zap.Logger) *Manager {
	return &Manager{clk: clk, log: log, active: board.TurnRed}
}

// OnTick registers the observer invoked after every countdown step and
// every resync. Must be set before Run.
func (m *Manager) OnTick(fn func(State)) {
	m.mu.Lock()
	m.onTick = fn
	m.mu.Unlock()
}

// Resync overwrites both banks from a snapshot. The side to move is charged
// for the time elapsed since the server's lastMoveAt; the idle side keeps
// its reported bank. A snapshot without clock data stops the countdown.
func (m *Manager) Resync(c *ledger.Clock, status ledger.GameStatus, turn board.Turn) {
	m.mu.Lock()
	if c == nil {
		m.running = false
		m.red, m.black = 0, 0
		fn, st := m.onTick, m.state()
		m.mu.Unlock()
		notify(fn, st)
		return
	}

	m.red, m.black = c.RedTimeMs, c.BlackTimeMs
	m.active = turn
	if c.ActivePlayer != nil {
		m.active = *c.ActivePlayer
	}
	m.running = status == ledger.StatusActive && c.ActivePlayer != nil

	if m.running && c.LastMoveAt > 0 {
		// lastMoveAt is a microsecond epoch; banks are milliseconds.
		elapsed := m.clk.Now().UnixMilli() - c.LastMoveAt/1000
		if elapsed > 0 {
			m.charge(elapsed)
		}
	}
	fn, st := m.onTick, m.state()
	m.mu.Unlock()
	if m.log != nil {
		m.log.Debug("clock resync",
			zap.Int64("redMs", st.RedMs),
			zap.Int64("blackMs", st.BlackMs),
			zap.Bool("running", st.Running))
	}
	notify(fn, st)
}

// Stop halts the countdown without clearing the banks, for display after a
// game finishes or is deselected.
func (m *Manager) Stop() {
	m.mu.Lock()
	m.running = false
	m.mu.Unlock()
}

// Advance performs one countdown step of the given duration and reports the
// resulting state. Run calls this on every tick; tests call it directly.
func (m *Manager) Advance(d time.Duration) State {
	m.mu.Lock()
	if m.running {
		m.charge(d.Milliseconds())
	}
	fn, st := m.onTick, m.state()
	m.mu.Unlock()
	notify(fn, st)
	return st
}

// charge deducts from the active side's bank, floored at zero. Caller holds
// the lock.
func (m *Manager) charge(ms int64) {
	if m.active == board.TurnRed {
		m.red = maxInt64(0, m.red-ms)
	} else {
		m.black = maxInt64(0, m.black-ms)
	}
}

func (m *Manager) state() State {
	return State{RedMs: m.red, BlackMs: m.black, Active: m.active, Running: m.running}
}

// State returns the current observation.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state()
}

// Run drives the countdown until the context is cancelled. The ticker is
// torn down with the context, so a deselected game stops ticking.
func (m *Manager) Run(ctx context.Context) {
	ticker := m.clk.Ticker(TickInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.Advance(TickInterval)
		}
	}
}

func notify(fn func(State), st State) {
	if fn != nil {
		fn(st)
	}
}

func maxInt64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}
