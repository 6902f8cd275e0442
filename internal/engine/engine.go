// Package engine computes legal checkers moves client-side: destinations for
// a selected piece, the mandatory-capture rule, and pure move application
// with capture removal and promotion. It never mutates a board in place; the
// server remains the final authority on legality.
package engine

import "checkerscli/internal/board"

// Coord is a square on the board.
type Coord struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Move describes one board transform. IsCapture and Captured are derived
// from the geometry (a two-row diagonal hop); Promoted is filled in by Apply.
type Move struct {
	From      Coord
	To        Coord
	IsCapture bool
	Captured  Coord
	Promoted  bool
}

// NewMove builds a move between two squares and derives its capture facts.
func NewMove(from, to Coord) Move {
	m := Move{From: from, To: to}
	if abs(to.Row-from.Row) == 2 {
		m.IsCapture = true
		m.Captured = Coord{Row: (from.Row + to.Row) / 2, Col: (from.Col + to.Col) / 2}
	}
	return m
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// directions returns the diagonal step set for a piece: both forward
// diagonals for a man, all four for a king. Forward is +row for red and
// -row for black.
func directions(p board.Piece) [][2]int {
	if p.IsKing() {
		return [][2]int{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}}
	}
	if p.IsRed() {
		return [][2]int{{1, -1}, {1, 1}}
	}
	return [][2]int{{-1, -1}, {-1, 1}}
}

// captureTargets returns the landing squares of the piece's available jumps.
func captureTargets(b board.Board, row, col int, p board.Piece) []Coord {
	side, ok := p.Side()
	if !ok {
		return nil
	}
	var out []Coord
	for _, d := range directions(p) {
		midR, midC := row+d[0], col+d[1]
		toR, toC := row+2*d[0], col+2*d[1]
		if !board.InBounds(toR, toC) {
			continue
		}
		if side.Opponent().Owns(b.Get(midR, midC)) && b.Get(toR, toC).IsEmpty() {
			out = append(out, Coord{Row: toR, Col: toC})
		}
	}
	return out
}

// simpleTargets returns the empty adjacent diagonal squares the piece may
// step to, ignoring the mandatory-capture rule.
func simpleTargets(b board.Board, row, col int, p board.Piece) []Coord {
	var out []Coord
	for _, d := range directions(p) {
		toR, toC := row+d[0], col+d[1]
		if board.InBounds(toR, toC) && b.Get(toR, toC).IsEmpty() {
			out = append(out, Coord{Row: toR, Col: toC})
		}
	}
	return out
}

// HasCapture reports whether the piece at row, col has at least one jump.
func HasCapture(b board.Board, row, col int) bool {
	return len(captureTargets(b, row, col, b.Get(row, col))) > 0
}

// HasAnyCapture reports whether any piece of the given side has a jump
// available. Recomputed on every selection; captures appear and disappear as
// the board changes.
func HasAnyCapture(b board.Board, side board.Turn) bool {
	for r := 0; r < board.Size; r++ {
		for c := 0; c < board.Size; c++ {
			p := b.Get(r, c)
			if side.Owns(p) && len(captureTargets(b, r, c, p)) > 0 {
				return true
			}
		}
	}
	return false
}

// LegalMoves returns the destinations the piece at row, col may move to,
// honoring the mandatory-capture rule: a piece with jumps gets only its jump
// landings; a piece without jumps gets nothing while any friendly piece can
// jump, and its simple steps otherwise. Empty squares yield nil.
func LegalMoves(b board.Board, row, col int) []Coord {
	p := b.Get(row, col)
	side, ok := p.Side()
	if !ok {
		return nil
	}
	if caps := captureTargets(b, row, col, p); len(caps) > 0 {
		return caps
	}
	if HasAnyCapture(b, side) {
		return nil
	}
	return simpleTargets(b, row, col, p)
}

// IsLegal reports whether from -> to is in the piece's legal destination set.
func IsLegal(b board.Board, m Move) bool {
	for _, c := range LegalMoves(b, m.From.Row, m.From.Col) {
		if c == m.To {
			return true
		}
	}
	return false
}

// promotes reports whether a man of this color kings on the given row.
func promotes(p board.Piece, toRow int) bool {
	switch p {
	case board.Red:
		return toRow == board.Size-1
	case board.Black:
		return toRow == 0
	}
	return false
}

// Apply plays the move on a copy of the board: source vacated, captured
// piece removed, destination filled, promotion applied in the same
// transform. It returns the new board and the move with Promoted set. Apply
// does not re-check legality.
func Apply(b board.Board, m Move) (board.Board, Move) {
	p := b.Get(m.From.Row, m.From.Col)
	b.Set(m.From.Row, m.From.Col, board.Empty)
	if m.IsCapture {
		b.Set(m.Captured.Row, m.Captured.Col, board.Empty)
	}
	if promotes(p, m.To.Row) {
		p = p.Promote()
		m.Promoted = true
	}
	b.Set(m.To.Row, m.To.Col, p)
	return b, m
}

// HasAnyMove reports whether the side has any legal move at all, used to
// recognize a blocked (lost) position client-side.
func HasAnyMove(b board.Board, side board.Turn) bool {
	for r := 0; r < board.Size; r++ {
		for c := 0; c < board.Size; c++ {
			p := b.Get(r, c)
			if !side.Owns(p) {
				continue
			}
			if len(captureTargets(b, r, c, p)) > 0 || len(simpleTargets(b, r, c, p)) > 0 {
				return true
			}
		}
	}
	return false
}
