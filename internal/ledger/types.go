package ledger

import "checkerscli/internal/board"

// GameStatus mirrors the service's game lifecycle enum.
type GameStatus string

const (
	StatusPending  GameStatus = "PENDING"
	StatusActive   GameStatus = "ACTIVE"
	StatusFinished GameStatus = "FINISHED"
)

// GameResult mirrors the service's result enum.
type GameResult string

const (
	ResultRedWins    GameResult = "RED_WINS"
	ResultBlackWins  GameResult = "BLACK_WINS"
	ResultDraw       GameResult = "DRAW"
	ResultInProgress GameResult = "IN_PROGRESS"
)

// PlayerType distinguishes human seats from the built-in AI.
type PlayerType string

const (
	PlayerHuman PlayerType = "HUMAN"
	PlayerAI    PlayerType = "AI"
)

// DrawOffer mirrors the pending draw-offer state on a game.
type DrawOffer string

const (
	DrawNone           DrawOffer = "NONE"
	DrawOfferedByRed   DrawOffer = "OFFERED_BY_RED"
	DrawOfferedByBlack DrawOffer = "OFFERED_BY_BLACK"
)

// ColorPreference is the creator's seat request on createGame.
type ColorPreference string

const (
	PreferRed    ColorPreference = "RED"
	PreferBlack  ColorPreference = "BLACK"
	PreferRandom ColorPreference = "RANDOM"
)

// TimeControl names one of the service's fixed time controls.
type TimeControl string

const (
	Bullet1_0 TimeControl = "BULLET1_0"
	Bullet2_1 TimeControl = "BULLET2_1"
	Blitz3_0  TimeControl = "BLITZ3_0"
	Blitz5_3  TimeControl = "BLITZ5_3"
	Rapid10_0 TimeControl = "RAPID10_0"
)

// TimeControls lists every control the service accepts.
func TimeControls() []TimeControl {
	return []TimeControl{Bullet1_0, Bullet2_1, Blitz3_0, Blitz5_3, Rapid10_0}
}

// InitialMs returns the starting bank for the control, in milliseconds.
func (tc TimeControl) InitialMs() int64 {
	switch tc {
	case Bullet1_0:
		return 60_000
	case Bullet2_1:
		return 120_000
	case Blitz3_0:
		return 180_000
	case Blitz5_3:
		return 300_000
	case Rapid10_0:
		return 600_000
	}
	return 0
}

// IncrementMs returns the per-move increment for the control.
func (tc TimeControl) IncrementMs() int64 {
	switch tc {
	case Bullet2_1:
		return 1_000
	case Blitz5_3:
		return 3_000
	}
	return 0
}

// Move is one confirmed move in a game's history.
type Move struct {
	FromRow     int   `json:"fromRow"`
	FromCol     int   `json:"fromCol"`
	ToRow       int   `json:"toRow"`
	ToCol       int   `json:"toCol"`
	CapturedRow *int  `json:"capturedRow"`
	CapturedCol *int  `json:"capturedCol"`
	Promoted    bool  `json:"promoted"`
	Timestamp   int64 `json:"timestamp"`
}

// Clock is the server-reported state of both time banks. Banks are in
// milliseconds; LastMoveAt is a microsecond epoch timestamp.
type Clock struct {
	InitialTimeMs int64       `json:"initialTimeMs"`
	IncrementMs   int64       `json:"incrementMs"`
	RedTimeMs     int64       `json:"redTimeMs"`
	BlackTimeMs   int64       `json:"blackTimeMs"`
	LastMoveAt    int64       `json:"lastMoveAt"`
	ActivePlayer  *board.Turn `json:"activePlayer"`
}

// Game is one authoritative snapshot of a game, identified by its move
// count for reconciliation.
type Game struct {
	ID          string      `json:"id"`
	RedPlayer   *string     `json:"redPlayer"`
	BlackPlayer *string     `json:"blackPlayer"`
	RedType     PlayerType  `json:"redPlayerType"`
	BlackType   PlayerType  `json:"blackPlayerType"`
	BoardState  string      `json:"boardState"`
	CurrentTurn board.Turn  `json:"currentTurn"`
	Moves       []Move      `json:"moves"`
	MoveCount   int         `json:"moveCount"`
	Status      GameStatus  `json:"status"`
	Result      *GameResult `json:"result"`
	CreatedAt   int64       `json:"createdAt"`
	UpdatedAt   int64       `json:"updatedAt"`
	Clock       *Clock      `json:"clock"`
	DrawOffer   DrawOffer   `json:"drawOffer"`
	IsRated     bool        `json:"isRated"`
}

// SeatOf returns the color the given player occupies, if any.
func (g *Game) SeatOf(playerID string) (board.Turn, bool) {
	if g.RedPlayer != nil && *g.RedPlayer == playerID {
		return board.TurnRed, true
	}
	if g.BlackPlayer != nil && *g.BlackPlayer == playerID {
		return board.TurnBlack, true
	}
	return "", false
}

// OpponentIsAI reports whether the seat opposite the given color is the AI.
func (g *Game) OpponentIsAI(color board.Turn) bool {
	if color == board.TurnRed {
		return g.BlackType == PlayerAI
	}
	return g.RedType == PlayerAI
}

// PlayerStats is the read-only per-player record shown in lists.
type PlayerStats struct {
	ChainID      string `json:"chainId"`
	GamesPlayed  int    `json:"gamesPlayed"`
	GamesWon     int    `json:"gamesWon"`
	GamesLost    int    `json:"gamesLost"`
	GamesDrawn   int    `json:"gamesDrawn"`
	WinStreak    int    `json:"winStreak"`
	BestStreak   int    `json:"bestStreak"`
	BulletRating int    `json:"bulletRating"`
	BulletGames  int    `json:"bulletGames"`
	BlitzRating  int    `json:"blitzRating"`
	BlitzGames   int    `json:"blitzGames"`
	RapidRating  int    `json:"rapidRating"`
	RapidGames   int    `json:"rapidGames"`
}

// QueueStatus is the matchmaking queue depth for one time control.
type QueueStatus struct {
	TimeControl TimeControl `json:"timeControl"`
	PlayerCount int         `json:"playerCount"`
}

// QueueEntry is the caller's own position in the matchmaking queue.
type QueueEntry struct {
	ChainID     string      `json:"chainId"`
	TimeControl TimeControl `json:"timeControl"`
	JoinedAt    int64       `json:"joinedAt"`
}
