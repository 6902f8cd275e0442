package ledger

import "context"

// CreateGameOptions configures createGame. Zero values fall back to the
// service defaults (human opponent, rated, red seat, no clock).
type CreateGameOptions struct {
	VsAI            bool
	TimeControl     *TimeControl
	ColorPreference *ColorPreference
	IsRated         *bool
}

// CreateGame asks the service to open a new game owned by playerID.
func (c *Client) CreateGame(ctx context.Context, playerID string, opts CreateGameOptions) error {
	query := `mutation($vsAi: Boolean!, $timeControl: TimeControl, $colorPreference: ColorPreference, $isRated: Boolean, $playerId: String!) {
  createGame(vsAi: $vsAi, timeControl: $timeControl, colorPreference: $colorPreference, isRated: $isRated, playerId: $playerId)
}`
	vars := map[string]any{
		"vsAi":     opts.VsAI,
		"playerId": playerID,
	}
	if opts.TimeControl != nil {
		vars["timeControl"] = *opts.TimeControl
	}
	if opts.ColorPreference != nil {
		vars["colorPreference"] = *opts.ColorPreference
	}
	if opts.IsRated != nil {
		vars["isRated"] = *opts.IsRated
	}
	return c.mutate(ctx, "createGame", query, vars)
}

// JoinGame seats playerID in a pending game.
func (c *Client) JoinGame(ctx context.Context, gameID, playerID string) error {
	query := `mutation($gameId: String!, $playerId: String!) {
  joinGame(gameId: $gameId, playerId: $playerId)
}`
	return c.mutate(ctx, "joinGame", query, map[string]any{"gameId": gameID, "playerId": playerID})
}

// MakeMove submits one move. The acknowledgement carries no state; the
// caller must re-query the game to observe the effect.
func (c *Client) MakeMove(ctx context.Context, gameID string, fromRow, fromCol, toRow, toCol int, playerID string) error {
	query := `mutation($gameId: String!, $fromRow: Int!, $fromCol: Int!, $toRow: Int!, $toCol: Int!, $playerId: String!) {
  makeMove(gameId: $gameId, fromRow: $fromRow, fromCol: $fromCol, toRow: $toRow, toCol: $toCol, playerId: $playerId)
}`
	return c.mutate(ctx, "makeMove", query, map[string]any{
		"gameId":   gameID,
		"fromRow":  fromRow,
		"fromCol":  fromCol,
		"toRow":    toRow,
		"toCol":    toCol,
		"playerId": playerID,
	})
}

// Resign concedes the game for playerID.
func (c *Client) Resign(ctx context.Context, gameID, playerID string) error {
	query := `mutation($gameId: String!, $playerId: String!) {
  resign(gameId: $gameId, playerId: $playerId)
}`
	return c.mutate(ctx, "resign", query, map[string]any{"gameId": gameID, "playerId": playerID})
}

// RequestAIMove asks the service to play the AI seat's move.
func (c *Client) RequestAIMove(ctx context.Context, gameID string) error {
	query := `mutation($gameId: String!) { requestAiMove(gameId: $gameId) }`
	return c.mutate(ctx, "requestAiMove", query, map[string]any{"gameId": gameID})
}

// OfferDraw places a draw offer on the game.
func (c *Client) OfferDraw(ctx context.Context, gameID string) error {
	query := `mutation($gameId: String!) { offerDraw(gameId: $gameId) }`
	return c.mutate(ctx, "offerDraw", query, map[string]any{"gameId": gameID})
}

// AcceptDraw accepts the opponent's pending draw offer.
func (c *Client) AcceptDraw(ctx context.Context, gameID string) error {
	query := `mutation($gameId: String!) { acceptDraw(gameId: $gameId) }`
	return c.mutate(ctx, "acceptDraw", query, map[string]any{"gameId": gameID})
}

// DeclineDraw declines the opponent's pending draw offer.
func (c *Client) DeclineDraw(ctx context.Context, gameID string) error {
	query := `mutation($gameId: String!) { declineDraw(gameId: $gameId) }`
	return c.mutate(ctx, "declineDraw", query, map[string]any{"gameId": gameID})
}

// ClaimTimeWin claims victory over a flagged opponent.
func (c *Client) ClaimTimeWin(ctx context.Context, gameID string) error {
	query := `mutation($gameId: String!) { claimTimeWin(gameId: $gameId) }`
	return c.mutate(ctx, "claimTimeWin", query, map[string]any{"gameId": gameID})
}

// JoinQueue enters matchmaking for the given time control.
func (c *Client) JoinQueue(ctx context.Context, playerID string, tc TimeControl) error {
	query := `mutation($timeControl: TimeControl!, $playerId: String!) {
  joinQueue(timeControl: $timeControl, playerId: $playerId)
}`
	return c.mutate(ctx, "joinQueue", query, map[string]any{"timeControl": tc, "playerId": playerID})
}

// LeaveQueue withdraws from matchmaking.
func (c *Client) LeaveQueue(ctx context.Context, playerID string) error {
	query := `mutation($playerId: String!) { leaveQueue(playerId: $playerId) }`
	return c.mutate(ctx, "leaveQueue", query, map[string]any{"playerId": playerID})
}
