package session

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"checkerscli/internal/engine"
	"checkerscli/internal/ledger"
)

// SubmitMove validates a move locally, applies it optimistically, sends it,
// and then confirms it against the ledger. Only one move may be in flight at
// a time. The mutation result itself is opaque; confirmation is a later
// snapshot whose moveCount has advanced past the pre-move count.
func (s *Session) SubmitMove(ctx context.Context, from, to engine.Coord) error {
	s.mu.Lock()
	if s.game == nil {
		s.mu.Unlock()
		return ErrNoGame
	}
	if s.seat == nil {
		s.mu.Unlock()
		return ErrNotSeated
	}
	if s.moveInFlight {
		s.mu.Unlock()
		return ErrBusy
	}
	if s.game.Status != ledger.StatusActive || s.turnNow != *s.seat {
		s.mu.Unlock()
		return ErrNotYourTurn
	}
	if !s.seat.Owns(s.boardNow.Get(from.Row, from.Col)) {
		s.mu.Unlock()
		return ErrIllegalMove
	}
	m := engine.NewMove(from, to)
	if !engine.IsLegal(s.boardNow, m) {
		s.mu.Unlock()
		return ErrIllegalMove
	}

	// Optimistic apply. The server decides whether a multi-jump continues,
	// so the local view always hands the turn over and lets the confirming
	// snapshot correct it.
	prevBoard := s.boardNow
	prevTurn := s.turnNow
	prevCount := s.moveCount
	epoch := s.epoch
	gameID := s.game.ID
	s.boardNow, _ = engine.Apply(s.boardNow, m)
	s.turnNow = s.turnNow.Opponent()
	s.moveCount = prevCount + 1
	s.moveInFlight = true
	s.mu.Unlock()
	s.notify()

	err := s.client.MakeMove(ctx, gameID, from.Row, from.Col, to.Row, to.Col, s.playerID)
	if err != nil {
		// The move never reached the ledger; restore the pre-move view
		// unless the game changed underneath us.
		s.mu.Lock()
		if epoch == s.epoch {
			s.boardNow = prevBoard
			s.turnNow = prevTurn
			s.moveCount = prevCount
			s.moveInFlight = false
		}
		s.mu.Unlock()
		s.notify()
		return fmt.Errorf("submit move: %w", err)
	}

	return s.confirmMove(ctx, gameID, epoch, prevCount)
}

// confirmMove polls until a snapshot shows progress past prevCount, the
// retries run out, or the selected game changes. The in-flight guard is
// released on every path.
func (s *Session) confirmMove(ctx context.Context, gameID string, epoch uint64, prevCount int) error {
	defer func() {
		s.mu.Lock()
		if epoch == s.epoch {
			s.moveInFlight = false
		}
		s.mu.Unlock()
	}()

	s.clk.Sleep(s.cfg.SettleDelay)
	for attempt := 0; attempt < s.cfg.ConfirmRetries; attempt++ {
		if attempt > 0 {
			s.clk.Sleep(s.cfg.ConfirmBackoff)
		}
		s.mu.Lock()
		abandoned := epoch != s.epoch
		s.mu.Unlock()
		if abandoned {
			return nil
		}

		g, err := s.client.Game(ctx, gameID)
		if err != nil {
			s.log.Debug("confirm poll failed",
				zap.String("game", gameID), zap.Int("attempt", attempt), zap.Error(err))
			continue
		}
		if s.acceptSnapshot(ctx, g, epoch, prevCount) {
			return nil
		}
	}

	// The ledger may just be slow; keep the optimistic view and let the
	// background poll reconcile it.
	s.log.Warn("move unconfirmed after retries", zap.String("game", gameID), zap.Int("prevCount", prevCount))
	return ErrUnconfirmed
}

// StagePremove queues a move to fire when the turn next comes around. The
// source square must hold one of the local player's pieces; full legality is
// checked only when the premove fires. Staging a second premove replaces the
// first.
func (s *Session) StagePremove(from, to engine.Coord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.game == nil {
		return ErrNoGame
	}
	if s.seat == nil {
		return ErrNotSeated
	}
	if !s.seat.Owns(s.boardNow.Get(from.Row, from.Col)) {
		return ErrIllegalMove
	}
	s.premoves.Stage(from, to)
	return nil
}

// CancelPremove discards the staged premove, if any.
func (s *Session) CancelPremove() {
	s.premoves.Cancel()
}

// drainPremove fires the staged premove through the normal submission path.
// The premove is consumed whether or not it is still legal on the board the
// turn arrived with.
func (s *Session) drainPremove(epoch uint64) {
	s.clk.Sleep(s.cfg.SettleDelay)

	s.mu.Lock()
	stale := s.game == nil || epoch != s.epoch
	s.mu.Unlock()
	if stale {
		return
	}

	staged, ok := s.premoves.Take()
	if !ok {
		return
	}
	if err := s.SubmitMove(context.Background(), staged.From, staged.To); err != nil {
		s.log.Info("premove dropped", zap.Error(err))
	}
}
