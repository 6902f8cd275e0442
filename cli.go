package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"checkerscli/internal/board"
	"checkerscli/internal/engine"
	"checkerscli/internal/ledger"
	"checkerscli/internal/session"
	"checkerscli/internal/storage"
)

const cmdTimeout = 20 * time.Second

type cli struct {
	sess   *session.Session
	client *ledger.Client
	store  *storage.Store
	log    *zap.Logger
	out    io.Writer
}

func newCLI(sess *session.Session, client *ledger.Client, store *storage.Store, log *zap.Logger) *cli {
	return &cli{sess: sess, client: client, store: store, log: log}
}

// run reads commands line by line until quit or EOF.
func (c *cli) run(in io.Reader, out io.Writer) error {
	c.out = out
	c.sess.OnUpdate(c.onUpdate)

	fmt.Fprintln(out, `type "help" for commands`)
	sc := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !sc.Scan() {
			return sc.Err()
		}
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		if fields[0] == "quit" || fields[0] == "exit" {
			return nil
		}
		if err := c.dispatch(fields); err != nil {
			c.log.Debug("command failed", zap.String("cmd", fields[0]), zap.Error(err))
			fmt.Fprintf(out, "error: %v\n", err)
		}
	}
}

func (c *cli) dispatch(fields []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), cmdTimeout)
	defer cancel()

	cmd, args := fields[0], fields[1:]
	switch cmd {
	case "help":
		c.printHelp()
		return nil
	case "create":
		return c.cmdCreate(ctx, args)
	case "join":
		if len(args) != 1 {
			return errors.New("usage: join <game-id>")
		}
		return c.sess.JoinGame(ctx, args[0])
	case "select", "watch":
		if len(args) != 1 {
			return fmt.Errorf("usage: %s <game-id>", cmd)
		}
		return c.sess.Select(ctx, args[0])
	case "deselect":
		c.sess.Deselect()
		return nil
	case "board", "show":
		return c.cmdBoard()
	case "moves":
		return c.cmdMoves(args)
	case "move":
		from, to, err := parseMove(args)
		if err != nil {
			return err
		}
		return c.sess.SubmitMove(ctx, from, to)
	case "premove":
		if len(args) == 1 && args[0] == "cancel" {
			c.sess.CancelPremove()
			return nil
		}
		from, to, err := parseMove(args)
		if err != nil {
			return err
		}
		return c.sess.StagePremove(from, to)
	case "resign":
		return c.sess.Resign(ctx)
	case "draw":
		return c.cmdDraw(ctx, args)
	case "claim":
		return c.sess.ClaimTimeWin(ctx)
	case "ai":
		return c.sess.RequestAIMove(ctx)
	case "games", "pending", "active", "mine":
		return c.cmdList(ctx, cmd)
	case "stats":
		return c.cmdStats(ctx, args)
	case "leaderboard":
		return c.cmdLeaderboard(ctx)
	case "queue":
		return c.cmdQueue(ctx, args)
	case "recent":
		return c.cmdRecent(ctx)
	case "forget":
		if len(args) != 1 {
			return errors.New("usage: forget <game-id>")
		}
		return c.store.ForgetGame(ctx, args[0])
	}
	return fmt.Errorf("unknown command %q", cmd)
}

func (c *cli) printHelp() {
	fmt.Fprint(c.out, `lobby:
  games | pending | active | mine     list games
  create [tc] [red|black] [ai] [unrated]
  join <id>     take the open seat
  queue join <tc> | queue leave | queue status
play (after select <id>):
  board                  print the position
  move R,C R,C           submit a move (rows and cols 0-7)
  moves R,C               list legal destinations for a piece
  premove R,C R,C        stage a move for your next turn
  premove cancel
  resign | claim | ai
  draw offer | draw accept | draw decline
info:
  stats [player] | leaderboard | recent | forget <id>
  quit
`)
}

func (c *cli) cmdCreate(ctx context.Context, args []string) error {
	opts := ledger.CreateGameOptions{}
	for _, a := range args {
		switch strings.ToLower(a) {
		case "ai":
			opts.VsAI = true
		case "red":
			p := ledger.PreferRed
			opts.ColorPreference = &p
		case "black":
			p := ledger.PreferBlack
			opts.ColorPreference = &p
		case "unrated":
			f := false
			opts.IsRated = &f
		default:
			tc := ledger.TimeControl(strings.ToUpper(a))
			if tc.InitialMs() == 0 {
				return fmt.Errorf("unknown time control %q (one of %v)", a, ledger.TimeControls())
			}
			opts.TimeControl = &tc
		}
	}
	if err := c.sess.CreateGame(ctx, opts); err != nil {
		return err
	}
	fmt.Fprintln(c.out, `game requested; find it with "mine" or "pending"`)
	return nil
}

func (c *cli) cmdBoard() error {
	v, err := c.sess.View()
	if err != nil {
		return err
	}
	fmt.Fprint(c.out, renderView(v))
	return nil
}

func (c *cli) cmdMoves(args []string) error {
	if len(args) != 1 {
		return errors.New("usage: moves R,C")
	}
	sq, err := parseCoord(args[0])
	if err != nil {
		return err
	}
	v, err := c.sess.View()
	if err != nil {
		return err
	}
	targets := engine.LegalMoves(v.Board, sq.Row, sq.Col)
	if len(targets) == 0 {
		fmt.Fprintln(c.out, "no legal moves for that piece")
		return nil
	}
	var parts []string
	for _, t := range targets {
		parts = append(parts, fmt.Sprintf("%d,%d", t.Row, t.Col))
	}
	fmt.Fprintln(c.out, strings.Join(parts, " "))
	return nil
}

func (c *cli) cmdDraw(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: draw offer|accept|decline")
	}
	switch args[0] {
	case "offer":
		return c.sess.OfferDraw(ctx)
	case "accept":
		return c.sess.AcceptDraw(ctx)
	case "decline":
		return c.sess.DeclineDraw(ctx)
	}
	return fmt.Errorf("unknown draw action %q", args[0])
}

func (c *cli) cmdList(ctx context.Context, which string) error {
	var (
		games []ledger.Game
		err   error
	)
	switch which {
	case "pending":
		games, err = c.client.PendingGames(ctx)
	case "active":
		games, err = c.client.ActiveGames(ctx)
	case "mine":
		games, err = c.client.PlayerGames(ctx, c.sess.PlayerID())
	default:
		games, err = c.client.AllGames(ctx)
	}
	if err != nil {
		return err
	}
	if len(games) == 0 {
		fmt.Fprintln(c.out, "no games")
		return nil
	}
	for _, g := range games {
		fmt.Fprintln(c.out, summarizeGame(&g))
	}
	return nil
}

func (c *cli) cmdStats(ctx context.Context, args []string) error {
	player := c.sess.PlayerID()
	if len(args) == 1 {
		player = args[0]
	}
	st, err := c.client.PlayerStats(ctx, player)
	if err != nil {
		if errors.Is(err, ledger.ErrNotFound) {
			fmt.Fprintf(c.out, "no stats recorded for %s\n", player)
			return nil
		}
		return err
	}
	fmt.Fprintf(c.out, "%s: %d played, %d won, %d lost, %d drawn (streak %d, best %d)\n",
		st.ChainID, st.GamesPlayed, st.GamesWon, st.GamesLost, st.GamesDrawn, st.WinStreak, st.BestStreak)
	fmt.Fprintf(c.out, "ratings: bullet %d (%d), blitz %d (%d), rapid %d (%d)\n",
		st.BulletRating, st.BulletGames, st.BlitzRating, st.BlitzGames, st.RapidRating, st.RapidGames)

	if c.store != nil {
		local, err := c.store.FetchStats(ctx, player)
		if err == nil && local.Seen > 0 {
			fmt.Fprintf(c.out, "cached locally: %d seen, %d finished\n", local.Seen, local.Finished)
		}
	}
	return nil
}

func (c *cli) cmdLeaderboard(ctx context.Context) error {
	rows, err := c.client.Leaderboard(ctx, 10)
	if err != nil {
		return err
	}
	for i, st := range rows {
		fmt.Fprintf(c.out, "%2d. %s  %dW/%dL/%dD\n", i+1, st.ChainID, st.GamesWon, st.GamesLost, st.GamesDrawn)
	}
	return nil
}

func (c *cli) cmdQueue(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.New("usage: queue join <tc> | queue leave | queue status")
	}
	switch args[0] {
	case "join":
		if len(args) != 2 {
			return errors.New("usage: queue join <tc>")
		}
		tc := ledger.TimeControl(strings.ToUpper(args[1]))
		if tc.InitialMs() == 0 {
			return fmt.Errorf("unknown time control %q", args[1])
		}
		return c.sess.JoinQueue(ctx, tc)
	case "leave":
		return c.sess.LeaveQueue(ctx)
	case "status":
		rows, err := c.client.QueueStatus(ctx)
		if err != nil {
			return err
		}
		for _, q := range rows {
			fmt.Fprintf(c.out, "%-10s %d waiting\n", q.TimeControl, q.PlayerCount)
		}
		if me, err := c.client.MyQueueStatus(ctx, c.sess.PlayerID()); err == nil && me != nil {
			fmt.Fprintf(c.out, "you are queued for %s\n", me.TimeControl)
		}
		return nil
	}
	return fmt.Errorf("unknown queue action %q", args[0])
}

func (c *cli) cmdRecent(ctx context.Context) error {
	if c.store == nil {
		return errors.New("local cache is disabled")
	}
	games, err := c.store.RecentGames(ctx, 10)
	if err != nil {
		return err
	}
	if len(games) == 0 {
		fmt.Fprintln(c.out, "nothing cached yet")
		return nil
	}
	for _, g := range games {
		fmt.Fprintf(c.out, "%s  %s  %d moves  %s\n", g.ID, g.Status, g.MoveCount, g.SyncedAt.Format("2006-01-02 15:04"))
	}
	return nil
}

// onUpdate prints a one-line status whenever the session state changes.
func (c *cli) onUpdate(v session.View) {
	if v.Game.Status == ledger.StatusFinished && v.Game.Result != nil {
		fmt.Fprintf(c.out, "\ngame over: %s\n", *v.Game.Result)
		return
	}
	if v.MyTurn() {
		fmt.Fprintf(c.out, "\nyour move (%s)  %s\n", v.Turn, formatClocks(v))
	}
}

func parseMove(args []string) (engine.Coord, engine.Coord, error) {
	var zero engine.Coord
	nums := make([]int, 0, 4)
	for _, a := range args {
		for _, part := range strings.FieldsFunc(a, func(r rune) bool { return r == ',' }) {
			n, err := strconv.Atoi(part)
			if err != nil {
				return zero, zero, fmt.Errorf("bad square %q", part)
			}
			nums = append(nums, n)
		}
	}
	if len(nums) != 4 {
		return zero, zero, errors.New("usage: move fromRow,fromCol toRow,toCol")
	}
	return engine.Coord{Row: nums[0], Col: nums[1]}, engine.Coord{Row: nums[2], Col: nums[3]}, nil
}

func parseCoord(s string) (engine.Coord, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return engine.Coord{}, fmt.Errorf("bad square %q", s)
	}
	row, err := strconv.Atoi(parts[0])
	if err != nil {
		return engine.Coord{}, fmt.Errorf("bad square %q", s)
	}
	col, err := strconv.Atoi(parts[1])
	if err != nil {
		return engine.Coord{}, fmt.Errorf("bad square %q", s)
	}
	return engine.Coord{Row: row, Col: col}, nil
}

func summarizeGame(g *ledger.Game) string {
	red, black := "-", "-"
	if g.RedPlayer != nil {
		red = *g.RedPlayer
	}
	if g.BlackPlayer != nil {
		black = *g.BlackPlayer
	}
	s := fmt.Sprintf("%s  %-8s  red=%s black=%s  %d moves", g.ID, g.Status, red, black, g.MoveCount)
	if g.Result != nil {
		s += "  " + string(*g.Result)
	}
	return s
}

// renderView draws the board with row/col indexes, red at the top moving
// down, matching the coordinates the service uses.
func renderView(v session.View) string {
	var sb strings.Builder
	sb.WriteString("  0 1 2 3 4 5 6 7\n")
	for row := 0; row < board.Size; row++ {
		sb.WriteString(strconv.Itoa(row))
		for col := 0; col < board.Size; col++ {
			sb.WriteByte(' ')
			sb.WriteByte(pieceGlyph(v.Board.Get(row, col), row, col))
		}
		sb.WriteByte('\n')
	}
	sb.WriteString(fmt.Sprintf("%s to move, move %d, %s\n", v.Turn, v.MoveCount, formatClocks(v)))
	if v.Game.DrawOffer != ledger.DrawNone && v.Game.DrawOffer != "" {
		sb.WriteString(fmt.Sprintf("draw offer pending: %s\n", v.Game.DrawOffer))
	}
	return sb.String()
}

func pieceGlyph(p board.Piece, row, col int) byte {
	switch p {
	case board.Red:
		return 'r'
	case board.RedKing:
		return 'R'
	case board.Black:
		return 'b'
	case board.BlackKing:
		return 'B'
	}
	if board.IsPlayable(row, col) {
		return '.'
	}
	return ' '
}

func formatClocks(v session.View) string {
	if !v.Clock.Running && v.Clock.RedMs == 0 && v.Clock.BlackMs == 0 {
		return "no clock"
	}
	return fmt.Sprintf("red %s / black %s", formatMs(v.Clock.RedMs), formatMs(v.Clock.BlackMs))
}

func formatMs(ms int64) string {
	if ms < 0 {
		ms = 0
	}
	d := time.Duration(ms) * time.Millisecond
	min := int(d.Minutes())
	sec := int(d.Seconds()) % 60
	if min == 0 && sec < 20 {
		return fmt.Sprintf("%d.%01ds", sec, (ms%1000)/100)
	}
	return fmt.Sprintf("%d:%02d", min, sec)
}
