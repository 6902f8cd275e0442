// Package board holds the 8x8 checkers board representation and the flat
// row-per-line wire codec used by the ledger service.
package board

import (
	"fmt"
	"strings"
)

// Piece is the content of one square.
type Piece int

const (
	Empty Piece = iota
	Red
	Black
	RedKing
	BlackKing
)

// IsRed reports whether the piece belongs to red.
func (p Piece) IsRed() bool { return p == Red || p == RedKing }

// IsBlack reports whether the piece belongs to black.
func (p Piece) IsBlack() bool { return p == Black || p == BlackKing }

// IsKing reports whether the piece is promoted.
func (p Piece) IsKing() bool { return p == RedKing || p == BlackKing }

// IsEmpty reports whether the square is vacant.
func (p Piece) IsEmpty() bool { return p == Empty }

// Promote returns the king of the same color. Kings and empty squares are
// returned unchanged.
func (p Piece) Promote() Piece {
	switch p {
	case Red:
		return RedKing
	case Black:
		return BlackKing
	}
	return p
}

// Side returns the turn owning the piece, or false for empty squares.
func (p Piece) Side() (Turn, bool) {
	switch {
	case p.IsRed():
		return TurnRed, true
	case p.IsBlack():
		return TurnBlack, true
	}
	return TurnRed, false
}

func (p Piece) glyph() byte {
	switch p {
	case Red:
		return 'r'
	case Black:
		return 'b'
	case RedKing:
		return 'R'
	case BlackKing:
		return 'B'
	}
	return ' '
}

// Turn identifies which side moves.
type Turn string

const (
	TurnRed   Turn = "RED"
	TurnBlack Turn = "BLACK"
)

// Opponent returns the other side.
func (t Turn) Opponent() Turn {
	if t == TurnRed {
		return TurnBlack
	}
	return TurnRed
}

// Owns reports whether the piece belongs to this side.
func (t Turn) Owns(p Piece) bool {
	if t == TurnRed {
		return p.IsRed()
	}
	return p.IsBlack()
}

// Size is the board edge length.
const Size = 8

// StartingLayout is the wire encoding of the initial position: red on rows
// 0-2 moving toward row 7, black on rows 5-7 moving toward row 0.
const StartingLayout = " r r r r/r r r r / r r r r/        /        /b b b b / b b b b/b b b b "

// Board is an 8x8 grid of squares. The zero value is an empty board; it is a
// value type and copies freely, which the optimistic-rollback path relies on.
type Board [Size][Size]Piece

// Starting returns the initial position.
func Starting() Board {
	b, _ := Decode(StartingLayout)
	return b
}

// InBounds reports whether row, col lies on the board.
func InBounds(row, col int) bool {
	return row >= 0 && row < Size && col >= 0 && col < Size
}

// IsPlayable reports whether the square is one of the dark squares pieces
// actually occupy.
func IsPlayable(row, col int) bool {
	return InBounds(row, col) && (row+col)%2 == 1
}

// Get returns the piece at row, col. Out-of-bounds squares read as empty,
// matching the service's tolerant accessor.
func (b Board) Get(row, col int) Piece {
	if !InBounds(row, col) {
		return Empty
	}
	return b[row][col]
}

// Set places a piece at row, col, ignoring out-of-bounds coordinates.
func (b *Board) Set(row, col int, p Piece) {
	if !InBounds(row, col) {
		return
	}
	b[row][col] = p
}

// Count returns the number of red and black pieces on the board.
func (b Board) Count() (red, black int) {
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			switch {
			case b[r][c].IsRed():
				red++
			case b[r][c].IsBlack():
				black++
			}
		}
	}
	return red, black
}

// Decode parses the wire encoding: eight rows of eight characters joined by
// '/'. Occupied squares are r/b/R/B; ' ' is empty, and '.' is accepted as
// empty because the service writes dots on vacated dark squares.
func Decode(s string) (Board, error) {
	var b Board
	rows := strings.Split(s, "/")
	if len(rows) != Size {
		return b, fmt.Errorf("board: expected %d rows, got %d", Size, len(rows))
	}
	for r, row := range rows {
		if len(row) != Size {
			return b, fmt.Errorf("board: row %d has %d squares", r, len(row))
		}
		for c := 0; c < Size; c++ {
			switch row[c] {
			case 'r':
				b[r][c] = Red
			case 'b':
				b[r][c] = Black
			case 'R':
				b[r][c] = RedKing
			case 'B':
				b[r][c] = BlackKing
			case ' ', '.':
				b[r][c] = Empty
			default:
				return b, fmt.Errorf("board: unknown square %q at %d,%d", row[c], r, c)
			}
		}
	}
	return b, nil
}

// Encode renders the wire encoding. Empty squares always encode as ' ', so
// encoding a decoded well-formed string reproduces it exactly.
func (b Board) Encode() string {
	var sb strings.Builder
	sb.Grow(Size*Size + Size - 1)
	for r := 0; r < Size; r++ {
		if r > 0 {
			sb.WriteByte('/')
		}
		for c := 0; c < Size; c++ {
			sb.WriteByte(b[r][c].glyph())
		}
	}
	return sb.String()
}
