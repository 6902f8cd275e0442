// Package session reconciles the local view of one selected game with the
// ledger. It submits moves optimistically, confirms them by polling, and
// folds the clock countdown and premove queue into the same update path.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"go.uber.org/zap"

	"checkerscli/internal/board"
	"checkerscli/internal/gameclock"
	"checkerscli/internal/ledger"
	"checkerscli/internal/premove"
	"checkerscli/internal/storage"
)

var (
	ErrNoGame      = errors.New("session: no game selected")
	ErrNotSeated   = errors.New("session: spectating, no seat in this game")
	ErrNotYourTurn = errors.New("session: not your turn")
	ErrIllegalMove = errors.New("session: illegal move")
	ErrBusy        = errors.New("session: another request is still in flight")
	ErrUnconfirmed = errors.New("session: move sent but not yet confirmed")
)

// Config tunes the reconciliation loop.
type Config struct {
	PollInterval   time.Duration
	SettleDelay    time.Duration
	ConfirmRetries int
	ConfirmBackoff time.Duration
}

// DefaultConfig returns the tuning used by the CLI.
func DefaultConfig() Config {
	return Config{
		PollInterval:   2 * time.Second,
		SettleDelay:    600 * time.Millisecond,
		ConfirmRetries: 5,
		ConfirmBackoff: 500 * time.Millisecond,
	}
}

// View is a copy of the session's current state handed to observers.
type View struct {
	Game      ledger.Game
	Board     board.Board
	Turn      board.Turn
	MoveCount int
	Seat      *board.Turn
	Clock     gameclock.State
}

// MyTurn reports whether the local player is to move.
func (v View) MyTurn() bool {
	return v.Seat != nil && *v.Seat == v.Turn && v.Game.Status == ledger.StatusActive
}

// Session owns the selected game. All mutations funnel through it so the
// in-flight guards can keep each request class single-flight.
type Session struct {
	client   *ledger.Client
	store    *storage.Store
	clocks   *gameclock.Manager
	arbiter  *gameclock.Arbiter
	premoves *premove.Queue
	clk      clock.Clock
	log      *zap.Logger
	cfg      Config
	playerID string

	mu        sync.Mutex
	epoch     uint64
	game      *ledger.Game
	seat      *board.Turn
	boardNow  board.Board
	turnNow   board.Turn
	moveCount int
	cancel    context.CancelFunc

	moveInFlight   bool
	actionInFlight bool
	aiInFlight     bool
	aiAskedAt      int

	onUpdate func(View)
}

// New wires a session. store may be nil to run without the local cache.
func New(client *ledger.Client, store *storage.Store, clk clock.Clock, log *zap.Logger, playerID string, cfg Config) *Session {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Session{
		client:   client,
		store:    store,
		clocks:   gameclock.NewManager(clk, log),
		arbiter:  gameclock.NewArbiter(clk, 0),
		premoves: premove.New(),
		clk:      clk,
		log:      log,
		cfg:      cfg,
		playerID: playerID,
	}
	s.clocks.OnTick(s.onClockTick)
	return s
}

// PlayerID returns the identity this session mutates as.
func (s *Session) PlayerID() string { return s.playerID }

// OnUpdate registers the observer called after every accepted snapshot and
// every optimistic change. Set it before Select.
func (s *Session) OnUpdate(fn func(View)) {
	s.mu.Lock()
	s.onUpdate = fn
	s.mu.Unlock()
}

// View returns a copy of the current state.
func (s *Session) View() (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.game == nil {
		return View{}, ErrNoGame
	}
	return s.view(), nil
}

// view builds the observer copy. Caller holds the lock.
func (s *Session) view() View {
	return View{
		Game:      *s.game,
		Board:     s.boardNow,
		Turn:      s.turnNow,
		MoveCount: s.moveCount,
		Seat:      s.seat,
		Clock:     s.clocks.State(),
	}
}

// Select fetches the game and starts the poll and clock loops for it. Any
// previously selected game is deselected first, which abandons its pending
// confirmations.
func (s *Session) Select(ctx context.Context, gameID string) error {
	g, err := s.client.Game(ctx, gameID)
	if err != nil {
		return fmt.Errorf("select game %s: %w", gameID, err)
	}

	s.Deselect()

	b, err := board.Decode(g.BoardState)
	if err != nil {
		return fmt.Errorf("select game %s: %w", gameID, err)
	}

	loopCtx, cancel := context.WithCancel(context.Background())
	s.mu.Lock()
	s.game = g
	s.boardNow = b
	s.turnNow = g.CurrentTurn
	s.moveCount = g.MoveCount
	s.aiAskedAt = -1
	s.cancel = cancel
	if seat, ok := g.SeatOf(s.playerID); ok {
		s.seat = &seat
	}
	epoch := s.epoch
	s.mu.Unlock()

	s.clocks.Resync(g.Clock, g.Status, g.CurrentTurn)
	s.cacheSnapshot(ctx, g)
	s.notify()
	s.log.Info("game selected",
		zap.String("game", gameID),
		zap.Int("moveCount", g.MoveCount),
		zap.String("status", string(g.Status)))

	go s.pollLoop(loopCtx, epoch)
	go s.clocks.Run(loopCtx)
	return nil
}

// Deselect tears down the poll and clock loops and resets every guard. Any
// confirmation loop still running observes the epoch bump and abandons.
func (s *Session) Deselect() {
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.epoch++
	s.game = nil
	s.seat = nil
	s.moveCount = 0
	s.moveInFlight = false
	s.actionInFlight = false
	s.aiInFlight = false
	s.aiAskedAt = -1
	s.mu.Unlock()

	s.premoves.Cancel()
	s.arbiter.Reset()
	s.clocks.Stop()
}

// pollLoop refreshes the snapshot until its context is cancelled.
func (s *Session) pollLoop(ctx context.Context, epoch uint64) {
	ticker := s.clk.Ticker(s.cfg.PollInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.refresh(ctx, epoch)
		}
	}
}

// refresh fetches the current snapshot and folds it in. Poll results only
// need to be as new as what we already hold.
func (s *Session) refresh(ctx context.Context, epoch uint64) {
	s.mu.Lock()
	if s.game == nil || epoch != s.epoch {
		s.mu.Unlock()
		return
	}
	gameID := s.game.ID
	s.mu.Unlock()

	g, err := s.client.Game(ctx, gameID)
	if err != nil {
		s.log.Debug("poll failed", zap.String("game", gameID), zap.Error(err))
		return
	}
	s.acceptSnapshot(ctx, g, epoch, -1)
}

// acceptSnapshot folds an authoritative snapshot into the session. Snapshots
// arrive out of order, so anything older than what we hold is dropped: a
// background poll must carry moveCount >= ours, and a move confirmation must
// carry moveCount > minCount (pass -1 for polls). Returns whether the
// snapshot was accepted.
func (s *Session) acceptSnapshot(ctx context.Context, g *ledger.Game, epoch uint64, minCount int) bool {
	b, err := board.Decode(g.BoardState)
	if err != nil {
		s.log.Warn("snapshot with bad board dropped", zap.String("game", g.ID), zap.Error(err))
		return false
	}

	s.mu.Lock()
	if s.game == nil || epoch != s.epoch || g.ID != s.game.ID {
		s.mu.Unlock()
		return false
	}
	// A confirm must show progress past minCount, and no snapshot may move
	// the held count backwards: the larger moveCount wins regardless of
	// arrival order, even when a poll overtakes a confirm response.
	if minCount >= 0 && g.MoveCount <= minCount {
		s.mu.Unlock()
		return false
	}
	if g.MoveCount < s.moveCount {
		s.mu.Unlock()
		return false
	}

	s.game = g
	s.boardNow = b
	s.turnNow = g.CurrentTurn
	s.moveCount = g.MoveCount
	if seat, ok := g.SeatOf(s.playerID); ok {
		s.seat = &seat
	}
	ended := g.Status != ledger.StatusActive
	drain := s.premoveReady()
	askAI := s.aiTurnArrived()
	if askAI {
		s.aiAskedAt = s.moveCount
	}
	s.mu.Unlock()

	s.clocks.Resync(g.Clock, g.Status, g.CurrentTurn)
	s.cacheSnapshot(ctx, g)
	s.notify()
	if ended {
		s.premoves.Cancel()
	}
	if drain {
		go s.drainPremove(epoch)
	}
	if askAI {
		go func() {
			if err := s.RequestAIMove(context.Background()); err != nil {
				s.log.Debug("ai move request failed", zap.Error(err))
			}
		}()
	}
	return true
}

// aiTurnArrived reports whether this snapshot hands the turn to an AI
// opponent we have not asked yet at this move count. Caller holds the lock.
func (s *Session) aiTurnArrived() bool {
	if s.game == nil || s.seat == nil || s.aiInFlight {
		return false
	}
	if s.game.Status != ledger.StatusActive || !s.game.OpponentIsAI(*s.seat) {
		return false
	}
	return s.turnNow == s.seat.Opponent() && s.aiAskedAt != s.moveCount
}

// premoveReady reports whether the staged premove should fire: our turn,
// active game, nothing in flight. Caller holds the lock.
func (s *Session) premoveReady() bool {
	if s.game == nil || s.seat == nil || s.moveInFlight {
		return false
	}
	if _, ok := s.premoves.Pending(); !ok {
		return false
	}
	return s.game.Status == ledger.StatusActive && s.turnNow == *s.seat
}

// notify calls the observer with a fresh view, if both are present.
func (s *Session) notify() {
	s.mu.Lock()
	fn := s.onUpdate
	var v View
	if s.game != nil {
		v = s.view()
	} else {
		fn = nil
	}
	s.mu.Unlock()
	if fn != nil {
		fn(v)
	}
}

func (s *Session) cacheSnapshot(ctx context.Context, g *ledger.Game) {
	if s.store == nil {
		return
	}
	if err := s.store.SaveSnapshot(ctx, g); err != nil {
		s.log.Debug("cache write failed", zap.String("game", g.ID), zap.Error(err))
	}
}
