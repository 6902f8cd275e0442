package storage

import (
	"time"

	"github.com/google/uuid"
)

// Game is a locally cached snapshot of a ledger game. The row is a mirror,
// not an authority: every sync overwrites it wholesale.
type Game struct {
	ID          string `gorm:"primaryKey"`
	BoardState  string
	CurrentTurn string
	Status      string `gorm:"index"`
	Result      string
	RedPlayer   string
	BlackPlayer string
	RedType     string
	BlackType   string
	MoveCount   int
	DrawOffer   string
	IsRated     bool
	ServerTime  int64
	SyncedAt    time.Time `gorm:"index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Moves       []Move `gorm:"constraint:OnDelete:CASCADE;"`
}

// Move is one confirmed move copied out of a snapshot's history.
type Move struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	GameID      string    `gorm:"index;uniqueIndex:idx_game_move"`
	Number      int       `gorm:"uniqueIndex:idx_game_move"`
	FromRow     int
	FromCol     int
	ToRow       int
	ToCol       int
	CapturedRow *int
	CapturedCol *int
	Promoted    bool
	PlayedAt    int64
	CreatedAt   time.Time
}
