package ledger

import "context"

// gameFields is the selection set shared by every query returning games.
const gameFields = `
  id
  redPlayer
  blackPlayer
  redPlayerType
  blackPlayerType
  boardState
  currentTurn
  moves { fromRow fromCol toRow toCol capturedRow capturedCol promoted timestamp }
  moveCount
  status
  result
  createdAt
  updatedAt
  clock { initialTimeMs incrementMs redTimeMs blackTimeMs lastMoveAt activePlayer }
  drawOffer
  isRated
`

const statsFields = `
  chainId
  gamesPlayed
  gamesWon
  gamesLost
  gamesDrawn
  winStreak
  bestStreak
  bulletRating
  bulletGames
  blitzRating
  blitzGames
  rapidRating
  rapidGames
`

// Game fetches one snapshot by id. A null game becomes ErrNotFound.
func (c *Client) Game(ctx context.Context, id string) (*Game, error) {
	var payload struct {
		Game *Game `json:"game"`
	}
	query := `query($id: String!) { game(id: $id) {` + gameFields + `} }`
	if err := c.do(ctx, query, map[string]any{"id": id}, &payload); err != nil {
		return nil, err
	}
	if payload.Game == nil {
		return nil, ErrNotFound
	}
	return payload.Game, nil
}

// AllGames lists every game the service knows about.
func (c *Client) AllGames(ctx context.Context) ([]Game, error) {
	var payload struct {
		AllGames []Game `json:"allGames"`
	}
	query := `query { allGames {` + gameFields + `} }`
	if err := c.do(ctx, query, nil, &payload); err != nil {
		return nil, err
	}
	return payload.AllGames, nil
}

// PendingGames lists games waiting for an opponent.
func (c *Client) PendingGames(ctx context.Context) ([]Game, error) {
	var payload struct {
		PendingGames []Game `json:"pendingGames"`
	}
	query := `query { pendingGames {` + gameFields + `} }`
	if err := c.do(ctx, query, nil, &payload); err != nil {
		return nil, err
	}
	return payload.PendingGames, nil
}

// ActiveGames lists games currently being played.
func (c *Client) ActiveGames(ctx context.Context) ([]Game, error) {
	var payload struct {
		ActiveGames []Game `json:"activeGames"`
	}
	query := `query { activeGames {` + gameFields + `} }`
	if err := c.do(ctx, query, nil, &payload); err != nil {
		return nil, err
	}
	return payload.ActiveGames, nil
}

// PlayerGames lists the games a player sits in, either seat.
func (c *Client) PlayerGames(ctx context.Context, playerID string) ([]Game, error) {
	var payload struct {
		PlayerGames []Game `json:"playerGames"`
	}
	query := `query($chainId: String!) { playerGames(chainId: $chainId) {` + gameFields + `} }`
	if err := c.do(ctx, query, map[string]any{"chainId": playerID}, &payload); err != nil {
		return nil, err
	}
	return payload.PlayerGames, nil
}

// PlayerStats fetches the read-only stats record for one player.
func (c *Client) PlayerStats(ctx context.Context, playerID string) (*PlayerStats, error) {
	var payload struct {
		PlayerStats *PlayerStats `json:"playerStats"`
	}
	query := `query($chainId: String!) { playerStats(chainId: $chainId) {` + statsFields + `} }`
	if err := c.do(ctx, query, map[string]any{"chainId": playerID}, &payload); err != nil {
		return nil, err
	}
	return payload.PlayerStats, nil
}

// Leaderboard fetches the top players by wins.
func (c *Client) Leaderboard(ctx context.Context, limit int) ([]PlayerStats, error) {
	var payload struct {
		Leaderboard []PlayerStats `json:"leaderboard"`
	}
	query := `query($limit: Int) { leaderboard(limit: $limit) {` + statsFields + `} }`
	if err := c.do(ctx, query, map[string]any{"limit": limit}, &payload); err != nil {
		return nil, err
	}
	return payload.Leaderboard, nil
}

// QueueStatus fetches matchmaking queue depths per time control.
func (c *Client) QueueStatus(ctx context.Context) ([]QueueStatus, error) {
	var payload struct {
		QueueStatus []QueueStatus `json:"queueStatus"`
	}
	query := `query { queueStatus { timeControl playerCount } }`
	if err := c.do(ctx, query, nil, &payload); err != nil {
		return nil, err
	}
	return payload.QueueStatus, nil
}

// MyQueueStatus fetches the caller's own queue entry, nil when not queued.
func (c *Client) MyQueueStatus(ctx context.Context, playerID string) (*QueueEntry, error) {
	var payload struct {
		MyQueueStatus *QueueEntry `json:"myQueueStatus"`
	}
	query := `query($chainId: String!) { myQueueStatus(chainId: $chainId) { chainId timeControl joinedAt } }`
	if err := c.do(ctx, query, map[string]any{"chainId": playerID}, &payload); err != nil {
		return nil, err
	}
	return payload.MyQueueStatus, nil
}
