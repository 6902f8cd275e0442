package storage

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"checkerscli/internal/ledger"
)

// Store wraps a gorm DB instance and provides helper methods for caching
// ledger snapshots locally.
type Store struct {
	db *gorm.DB
}

// NewStore creates a new store helper from a gorm DB.
func NewStore(db *gorm.DB) *Store {
	if db == nil {
		return nil
	}
	return &Store{db: db}
}

// DB exposes the underlying gorm DB instance.
func (s *Store) DB() *gorm.DB {
	if s == nil {
		return nil
	}
	return s.db
}

// ErrNotFound is returned when a record is not found.
var ErrNotFound = gorm.ErrRecordNotFound

// ErrMissingGame is returned when attempting to operate on a non-existing game.
var ErrMissingGame = errors.New("game not found")

// SaveSnapshot upserts the cached row for a game and appends any moves the
// cache has not seen yet. Conflicting rows are overwritten; the ledger's
// view always wins.
func (s *Store) SaveSnapshot(ctx context.Context, g *ledger.Game) error {
	if s == nil || g == nil {
		return nil
	}
	row := Game{
		ID:          g.ID,
		BoardState:  g.BoardState,
		CurrentTurn: string(g.CurrentTurn),
		Status:      string(g.Status),
		RedType:     string(g.RedType),
		BlackType:   string(g.BlackType),
		MoveCount:   g.MoveCount,
		DrawOffer:   string(g.DrawOffer),
		IsRated:     g.IsRated,
		ServerTime:  g.UpdatedAt,
		SyncedAt:    time.Now(),
	}
	if g.Result != nil {
		row.Result = string(*g.Result)
	}
	if g.RedPlayer != nil {
		row.RedPlayer = *g.RedPlayer
	}
	if g.BlackPlayer != nil {
		row.BlackPlayer = *g.BlackPlayer
	}

	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(&row).Error
	if err != nil {
		return err
	}
	return s.appendMoves(ctx, g)
}

// appendMoves stores moves past the highest number already cached.
func (s *Store) appendMoves(ctx context.Context, g *ledger.Game) error {
	var have int64
	if err := s.db.WithContext(ctx).Model(&Move{}).Where("game_id = ?", g.ID).Count(&have).Error; err != nil {
		return err
	}
	for i := int(have); i < len(g.Moves); i++ {
		mv := g.Moves[i]
		row := Move{
			ID:          uuid.New(),
			GameID:      g.ID,
			Number:      i + 1,
			FromRow:     mv.FromRow,
			FromCol:     mv.FromCol,
			ToRow:       mv.ToRow,
			ToCol:       mv.ToCol,
			CapturedRow: mv.CapturedRow,
			CapturedCol: mv.CapturedCol,
			Promoted:    mv.Promoted,
			PlayedAt:    mv.Timestamp,
		}
		if err := s.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&row).Error; err != nil {
			return err
		}
	}
	return nil
}

// LoadGame fetches a cached game with its move history.
func (s *Store) LoadGame(ctx context.Context, id string) (*Game, error) {
	if s == nil {
		return nil, ErrNotFound
	}
	var game Game
	if err := s.db.WithContext(ctx).First(&game, "id = ?", id).Error; err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).
		Where("game_id = ?", id).
		Order("number asc").
		Find(&game.Moves).Error; err != nil {
		return nil, err
	}
	return &game, nil
}

// RecentGames lists the most recently synced games, newest first.
func (s *Store) RecentGames(ctx context.Context, limit int) ([]Game, error) {
	if s == nil {
		return nil, nil
	}
	var games []Game
	err := s.db.WithContext(ctx).
		Order("synced_at desc").
		Limit(limit).
		Find(&games).Error
	return games, err
}

// ForgetGame removes a game and its moves from the cache.
func (s *Store) ForgetGame(ctx context.Context, id string) error {
	if s == nil {
		return nil
	}
	res := s.db.WithContext(ctx).Delete(&Game{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrMissingGame
	}
	return s.db.WithContext(ctx).Delete(&Move{}, "game_id = ?", id).Error
}

// Stats represents aggregate counts over the cached games.
type Stats struct {
	Seen     int64 `json:"seen"`
	Active   int64 `json:"active"`
	Finished int64 `json:"finished"`
	Won      int64 `json:"won"`
	Lost     int64 `json:"lost"`
	Drawn    int64 `json:"drawn"`
}

// FetchStats aggregates the cached record of the given player.
func (s *Store) FetchStats(ctx context.Context, playerID string) (Stats, error) {
	var stats Stats
	if s == nil {
		return stats, nil
	}
	mine := func() *gorm.DB {
		return s.db.WithContext(ctx).Model(&Game{}).
			Where("red_player = ? OR black_player = ?", playerID, playerID)
	}
	if err := mine().Count(&stats.Seen).Error; err != nil {
		return stats, err
	}
	if err := mine().Where("status = ?", string(ledger.StatusActive)).Count(&stats.Active).Error; err != nil {
		return stats, err
	}
	if err := mine().Where("status = ?", string(ledger.StatusFinished)).Count(&stats.Finished).Error; err != nil {
		return stats, err
	}

	var n int64
	if err := s.db.WithContext(ctx).Model(&Game{}).
		Where("red_player = ? AND result = ?", playerID, string(ledger.ResultRedWins)).
		Count(&n).Error; err != nil {
		return stats, err
	}
	stats.Won += n
	if err := s.db.WithContext(ctx).Model(&Game{}).
		Where("black_player = ? AND result = ?", playerID, string(ledger.ResultBlackWins)).
		Count(&n).Error; err != nil {
		return stats, err
	}
	stats.Won += n
	if err := s.db.WithContext(ctx).Model(&Game{}).
		Where("red_player = ? AND result = ?", playerID, string(ledger.ResultBlackWins)).
		Count(&n).Error; err != nil {
		return stats, err
	}
	stats.Lost += n
	if err := s.db.WithContext(ctx).Model(&Game{}).
		Where("black_player = ? AND result = ?", playerID, string(ledger.ResultRedWins)).
		Count(&n).Error; err != nil {
		return stats, err
	}
	stats.Lost += n
	if err := s.db.WithContext(ctx).Model(&Game{}).
		Where("(red_player = ? OR black_player = ?) AND result = ?", playerID, playerID, string(ledger.ResultDraw)).
		Count(&stats.Drawn).Error; err != nil {
		return stats, err
	}
	return stats, nil
}
