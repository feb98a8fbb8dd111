package model

import (
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func labels(squares []Square) []string {
	if len(squares) == 0 {
		return nil
	}
	out := make([]string, 0, len(squares))
	for _, sq := range squares {
		out = append(out, sq.Label())
	}
	sort.Strings(out)
	return out
}

func TestRookCandidates(t *testing.T) {
	b := NewBoard()
	rook := NewPiece(Rook, White, MustSquare("d4"))
	b.Place(rook)

	if got := len(rook.CandidateSquares(b)); got != 14 {
		t.Errorf("rook on empty board has %d candidates; want 14", got)
	}

	// A friendly piece blocks short of itself, an enemy piece is a capture
	// target and blocks beyond.
	b.Place(NewPiece(Pawn, White, MustSquare("d6")))
	b.Place(NewPiece(Pawn, Black, MustSquare("f4")))
	got := labels(rook.CandidateSquares(b))
	want := []string{"a4", "b4", "c4", "d1", "d2", "d3", "d5", "e4", "f4"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("rook candidates mismatch (-want +got):\n%s", diff)
	}
}

func TestKnightCandidatesAtStart(t *testing.T) {
	g, err := NewGame(&Player{Color: White}, &Player{Color: Black})
	if err != nil {
		t.Fatal(err)
	}
	knight := g.Board().PieceAt(MustSquare("b1"))
	got := labels(knight.CandidateSquares(g.Board()))
	want := []string{"a3", "c3"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("knight candidates mismatch (-want +got):\n%s", diff)
	}
}

func TestPawnCandidates(t *testing.T) {
	tests := []struct {
		name  string
		color Color
		pos   string
		setup func(*Board)
		want  []string
	}{
		{
			name:  "white double step from start row",
			color: White,
			pos:   "e2",
			want:  []string{"e3", "e4"},
		},
		{
			name:  "black double step from start row",
			color: Black,
			pos:   "d7",
			want:  []string{"d5", "d6"},
		},
		{
			name:  "single step only once moved",
			color: White,
			pos:   "e4",
			want:  []string{"e5"},
		},
		{
			name:  "blocked pawn has no forward move",
			color: White,
			pos:   "e4",
			setup: func(b *Board) { b.Place(NewPiece(Pawn, Black, MustSquare("e5"))) },
			want:  nil,
		},
		{
			name:  "double step blocked on the far square",
			color: White,
			pos:   "e2",
			setup: func(b *Board) { b.Place(NewPiece(Knight, Black, MustSquare("e4"))) },
			want:  []string{"e3"},
		},
		{
			name:  "diagonal captures",
			color: White,
			pos:   "d4",
			setup: func(b *Board) {
				b.Place(NewPiece(Pawn, Black, MustSquare("c5")))
				b.Place(NewPiece(Pawn, Black, MustSquare("e5")))
			},
			want: []string{"c5", "d5", "e5"},
		},
		{
			name:  "no capture of friendly pieces",
			color: White,
			pos:   "d4",
			setup: func(b *Board) { b.Place(NewPiece(Pawn, White, MustSquare("c5"))) },
			want:  []string{"d5"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBoard()
			pawn := NewPiece(Pawn, tt.color, MustSquare(tt.pos))
			b.Place(pawn)
			if tt.setup != nil {
				tt.setup(b)
			}
			got := labels(pawn.CandidateSquares(b))
			var want []string
			if tt.want != nil {
				want = append([]string{}, tt.want...)
				sort.Strings(want)
			}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("pawn candidates mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestPawnAttackingSquares(t *testing.T) {
	b := NewBoard()
	pawn := NewPiece(Pawn, White, MustSquare("e2"))
	b.Place(pawn)

	// Threatened diagonals count whether or not a capture is available there.
	got := labels(pawn.AttackingSquares(b))
	want := []string{"d3", "f3"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("pawn attacks mismatch (-want +got):\n%s", diff)
	}

	edge := NewPiece(Pawn, Black, MustSquare("a7"))
	b.Place(edge)
	if got := labels(edge.AttackingSquares(b)); len(got) != 1 || got[0] != "b6" {
		t.Errorf("edge pawn attacks %v; want [b6]", got)
	}
}

func TestPieceScore(t *testing.T) {
	tests := []struct {
		name  string
		piece *Piece
		want  int
	}{
		{"white pawn on its start square", NewPiece(Pawn, White, MustSquare("e2")), 10},
		{"white pawn advanced to the center", NewPiece(Pawn, White, MustSquare("e4")), 12},
		{"black pawn mirrors the white table", NewPiece(Pawn, Black, MustSquare("e5")), -12},
		{"white knight in the corner", NewPiece(Knight, White, MustSquare("a1")), 25},
		{"white knight in the center", NewPiece(Knight, White, MustSquare("d4")), 33},
		{"black queen at home", NewPiece(Queen, Black, MustSquare("d8")), -90},
		{"white king castled short", NewPiece(King, White, MustSquare("g1")), 1001},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.piece.Score(); got != tt.want {
				t.Errorf("Score() = %d; want %d", got, tt.want)
			}
		})
	}
}

func TestColorHelpers(t *testing.T) {
	if White.Opponent() != Black || Black.Opponent() != White {
		t.Error("Opponent is not an involution over the two colors")
	}
	if White.Sign() != 1 || Black.Sign() != -1 {
		t.Errorf("Sign() = %d/%d; want 1/-1", White.Sign(), Black.Sign())
	}
}
