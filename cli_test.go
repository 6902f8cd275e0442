package main

import (
	"strings"
	"testing"

	"checkerscli/internal/board"
	"checkerscli/internal/engine"
	"checkerscli/internal/session"
)

func TestParseMoveForms(t *testing.T) {
	want := [2]engine.Coord{{Row: 2, Col: 1}, {Row: 3, Col: 2}}
	for _, args := range [][]string{
		{"2,1", "3,2"},
		{"2", "1", "3", "2"},
	} {
		from, to, err := parseMove(args)
		if err != nil {
			t.Fatalf("parseMove(%v): %v", args, err)
		}
		if from != want[0] || to != want[1] {
			t.Fatalf("parseMove(%v) = %v %v", args, from, to)
		}
	}
}

func TestParseMoveRejectsGarbage(t *testing.T) {
	for _, args := range [][]string{
		{},
		{"2,1"},
		{"a,b", "3,2"},
		{"2,1", "3,2", "4,3"},
	} {
		if _, _, err := parseMove(args); err == nil {
			t.Fatalf("parseMove(%v) should fail", args)
		}
	}
}

func TestRenderViewShowsPosition(t *testing.T) {
	b, err := board.Decode(board.StartingLayout)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	out := renderView(session.View{Board: b, Turn: board.TurnRed})
	if !strings.Contains(out, "0 1 2 3 4 5 6 7") {
		t.Fatalf("missing header:\n%s", out)
	}
	if !strings.Contains(out, "RED to move") {
		t.Fatalf("missing turn line:\n%s", out)
	}
	if strings.Count(out, "r") < 12 {
		t.Fatalf("red men missing:\n%s", out)
	}
}

func TestFormatMs(t *testing.T) {
	cases := map[int64]string{
		600000: "10:00",
		61000:  "1:01",
		19300:  "19.3s",
		500:    "0.5s",
		0:      "0.0s",
	}
	for ms, want := range cases {
		if got := formatMs(ms); got != want {
			t.Fatalf("formatMs(%d) = %q, want %q", ms, got, want)
		}
	}
}
