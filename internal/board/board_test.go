package board

import (
	"strings"
	"testing"
)

func TestDecodeStartingLayout(t *testing.T) {
	b, err := Decode(StartingLayout)
	if err != nil {
		t.Fatalf("decode starting layout: %v", err)
	}
	if !b.Get(0, 1).IsRed() || !b.Get(2, 7).IsRed() {
		t.Fatalf("expected red men on rows 0-2")
	}
	if !b.Get(5, 0).IsBlack() || !b.Get(7, 6).IsBlack() {
		t.Fatalf("expected black men on rows 5-7")
	}
	if !b.Get(3, 0).IsEmpty() || !b.Get(4, 5).IsEmpty() {
		t.Fatalf("expected middle rows empty")
	}
	red, black := b.Count()
	if red != 12 || black != 12 {
		t.Fatalf("expected 12 pieces each, got red=%d black=%d", red, black)
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	cases := []string{
		StartingLayout,
		" R R R R/        /        /        /        /        /        /B B B B ",
		"        /        /        /   r    /        /        /        /        ",
	}
	for _, s := range cases {
		b, err := Decode(s)
		if err != nil {
			t.Fatalf("decode %q: %v", s, err)
		}
		if got := b.Encode(); got != s {
			t.Fatalf("round trip mismatch:\n in  %q\n out %q", s, got)
		}
	}
}

func TestDecodeAcceptsDotsAsEmpty(t *testing.T) {
	dotted := strings.ReplaceAll(StartingLayout, " ", ".")
	b, err := Decode(dotted)
	if err != nil {
		t.Fatalf("decode dotted layout: %v", err)
	}
	// Re-encoding normalizes dots back to spaces.
	if got := b.Encode(); got != StartingLayout {
		t.Fatalf("expected normalized encoding, got %q", got)
	}
}

func TestDecodeRejectsMalformed(t *testing.T) {
	cases := []string{
		"",
		"r r r r",
		StartingLayout + "/        ",
		" r r r r/r r r r / r r r r/        /        /b b b b / b b b b/b b b",
		strings.Replace(StartingLayout, "r", "x", 1),
	}
	for _, s := range cases {
		if _, err := Decode(s); err == nil {
			t.Fatalf("expected error decoding %q", s)
		}
	}
}

func TestPiecePredicates(t *testing.T) {
	if !Red.IsRed() || !RedKing.IsRed() || Black.IsRed() {
		t.Fatalf("IsRed misclassifies")
	}
	if !Black.IsBlack() || !BlackKing.IsBlack() || RedKing.IsBlack() {
		t.Fatalf("IsBlack misclassifies")
	}
	if !RedKing.IsKing() || !BlackKing.IsKing() || Red.IsKing() {
		t.Fatalf("IsKing misclassifies")
	}
	if Red.Promote() != RedKing || Black.Promote() != BlackKing {
		t.Fatalf("Promote should king men")
	}
	if RedKing.Promote() != RedKing || Empty.Promote() != Empty {
		t.Fatalf("Promote should leave kings and empties alone")
	}
}

func TestTurnOpponentAndOwnership(t *testing.T) {
	if TurnRed.Opponent() != TurnBlack || TurnBlack.Opponent() != TurnRed {
		t.Fatalf("Opponent is not an involution")
	}
	if !TurnRed.Owns(RedKing) || TurnRed.Owns(Black) || !TurnBlack.Owns(Black) {
		t.Fatalf("ownership misclassifies")
	}
}

func TestIsPlayable(t *testing.T) {
	if IsPlayable(0, 0) || IsPlayable(7, 7) {
		t.Fatalf("light squares are not playable")
	}
	if !IsPlayable(0, 1) || !IsPlayable(7, 6) {
		t.Fatalf("dark squares are playable")
	}
	if IsPlayable(8, 1) || IsPlayable(-1, 0) {
		t.Fatalf("out of bounds is not playable")
	}
}

func TestGetOutOfBoundsReadsEmpty(t *testing.T) {
	b := Starting()
	if !b.Get(8, 0).IsEmpty() || !b.Get(0, 8).IsEmpty() || !b.Get(-1, -1).IsEmpty() {
		t.Fatalf("out-of-bounds reads should be empty")
	}
}
