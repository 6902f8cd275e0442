package session

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"checkerscli/internal/gameclock"
	"checkerscli/internal/ledger"
)

// action runs one non-move mutation under the shared action guard, then
// refreshes the snapshot so the effect becomes visible.
func (s *Session) action(ctx context.Context, name string, fn func(ctx context.Context, gameID string) error) error {
	s.mu.Lock()
	if s.game == nil {
		s.mu.Unlock()
		return ErrNoGame
	}
	if s.actionInFlight {
		s.mu.Unlock()
		return ErrBusy
	}
	s.actionInFlight = true
	gameID := s.game.ID
	epoch := s.epoch
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		if epoch == s.epoch {
			s.actionInFlight = false
		}
		s.mu.Unlock()
	}()

	if err := fn(ctx, gameID); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}

	s.clk.Sleep(s.cfg.SettleDelay)
	s.refresh(ctx, epoch)
	return nil
}

// Resign concedes the selected game.
func (s *Session) Resign(ctx context.Context) error {
	return s.action(ctx, "resign", func(ctx context.Context, gameID string) error {
		return s.client.Resign(ctx, gameID, s.playerID)
	})
}

// OfferDraw places a draw offer on the selected game.
func (s *Session) OfferDraw(ctx context.Context) error {
	return s.action(ctx, "offer draw", s.client.OfferDraw)
}

// AcceptDraw accepts the opponent's pending draw offer.
func (s *Session) AcceptDraw(ctx context.Context) error {
	return s.action(ctx, "accept draw", s.client.AcceptDraw)
}

// DeclineDraw declines the opponent's pending draw offer.
func (s *Session) DeclineDraw(ctx context.Context) error {
	return s.action(ctx, "decline draw", s.client.DeclineDraw)
}

// ClaimTimeWin asks the ledger to adjudicate the opponent's flag fall.
func (s *Session) ClaimTimeWin(ctx context.Context) error {
	return s.action(ctx, "claim time win", s.client.ClaimTimeWin)
}

// RequestAIMove asks the service to move for the AI seat. It carries its own
// guard so a human action and an AI request do not block each other.
func (s *Session) RequestAIMove(ctx context.Context) error {
	s.mu.Lock()
	if s.game == nil {
		s.mu.Unlock()
		return ErrNoGame
	}
	if s.aiInFlight {
		s.mu.Unlock()
		return ErrBusy
	}
	if s.seat == nil || !s.game.OpponentIsAI(*s.seat) {
		s.mu.Unlock()
		return fmt.Errorf("request ai move: opponent is not the ai")
	}
	s.aiInFlight = true
	gameID := s.game.ID
	epoch := s.epoch
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		if epoch == s.epoch {
			s.aiInFlight = false
		}
		s.mu.Unlock()
	}()

	if err := s.client.RequestAIMove(ctx, gameID); err != nil {
		return fmt.Errorf("request ai move: %w", err)
	}
	s.clk.Sleep(s.cfg.SettleDelay)
	s.refresh(ctx, epoch)
	return nil
}

// onClockTick feeds every clock observation to the arbiter. A flagged local
// player resigns; a flagged opponent triggers a time-win claim. Both go
// through the normal action path so the guards and refresh apply.
func (s *Session) onClockTick(st gameclock.State) {
	s.mu.Lock()
	if s.game == nil || s.seat == nil {
		s.mu.Unlock()
		return
	}
	seat := *s.seat
	status := s.game.Status
	s.mu.Unlock()

	switch s.arbiter.Evaluate(st, seat, status) {
	case gameclock.ActionResign:
		go func() {
			if err := s.Resign(context.Background()); err != nil {
				s.log.Warn("timeout resign failed", zap.Error(err))
			}
		}()
	case gameclock.ActionClaimWin:
		go func() {
			if err := s.ClaimTimeWin(context.Background()); err != nil {
				s.log.Warn("time win claim failed", zap.Error(err))
			}
		}()
	}
}

// Lobby passthroughs. These do not touch the selected game, so they need no
// guard beyond the client's own timeout.

// CreateGame asks the ledger for a new game and returns nothing; the caller
// discovers the new game through PendingGames or PlayerGames.
func (s *Session) CreateGame(ctx context.Context, opts ledger.CreateGameOptions) error {
	return s.client.CreateGame(ctx, s.playerID, opts)
}

// JoinGame claims the open seat in a pending game.
func (s *Session) JoinGame(ctx context.Context, gameID string) error {
	return s.client.JoinGame(ctx, gameID, s.playerID)
}

// JoinQueue enters the matchmaking queue for a time control.
func (s *Session) JoinQueue(ctx context.Context, tc ledger.TimeControl) error {
	return s.client.JoinQueue(ctx, s.playerID, tc)
}

// LeaveQueue leaves the matchmaking queue.
func (s *Session) LeaveQueue(ctx context.Context) error {
	return s.client.LeaveQueue(ctx, s.playerID)
}
