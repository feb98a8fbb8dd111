package engine

import (
	"math/rand"
	"testing"

	"github.com/chesscore/chess-server/internal/model"
)

// hangingQueenBoard leaves a black queen where the white rook can take it.
func hangingQueenBoard() *model.Board {
	b := model.NewBoard()
	b.Place(model.NewPiece(model.King, model.White, model.MustSquare("e1")))
	b.Place(model.NewPiece(model.Rook, model.White, model.MustSquare("d1")))
	b.Place(model.NewPiece(model.King, model.Black, model.MustSquare("h8")))
	b.Place(model.NewPiece(model.Queen, model.Black, model.MustSquare("d4")))
	return b
}

// poisonedPawnBoard offers the white rook a pawn defended by a rook. Taking it
// wins ten and loses fifty.
func poisonedPawnBoard() *model.Board {
	b := model.NewBoard()
	b.Place(model.NewPiece(model.King, model.White, model.MustSquare("e1")))
	b.Place(model.NewPiece(model.Rook, model.White, model.MustSquare("a1")))
	b.Place(model.NewPiece(model.King, model.Black, model.MustSquare("e8")))
	b.Place(model.NewPiece(model.Pawn, model.Black, model.MustSquare("a7")))
	b.Place(model.NewPiece(model.Rook, model.Black, model.MustSquare("a8")))
	return b
}

func allowedFor(t *testing.T, b *model.Board, color model.Color) []*model.Move {
	t.Helper()
	var calc model.MoveCalculator
	moves := model.AllowedMoves(calc.LegalMoves(b, color))
	if len(moves) == 0 {
		t.Fatal("position has no allowed moves")
	}
	return moves
}

func TestGreedyTakesTheHangingQueen(t *testing.T) {
	b := hangingQueenBoard()
	p := NewGreedy(model.White, rand.New(rand.NewSource(7)))

	move := p.ChooseMove(b, allowedFor(t, b, model.White))
	if move == nil || move.To != model.MustSquare("d4") {
		t.Errorf("greedy played %v; want the rook capture on d4", move)
	}
}

func TestGreedyMinimizesAsBlack(t *testing.T) {
	// Mirror setup: the black rook can take a hanging white queen.
	b := model.NewBoard()
	b.Place(model.NewPiece(model.King, model.Black, model.MustSquare("e8")))
	b.Place(model.NewPiece(model.Rook, model.Black, model.MustSquare("d8")))
	b.Place(model.NewPiece(model.King, model.White, model.MustSquare("h1")))
	b.Place(model.NewPiece(model.Queen, model.White, model.MustSquare("d4")))

	p := NewGreedy(model.Black, rand.New(rand.NewSource(7)))
	move := p.ChooseMove(b, allowedFor(t, b, model.Black))
	if move == nil || move.To != model.MustSquare("d4") {
		t.Errorf("greedy played %v; want the rook capture on d4", move)
	}
}

func TestGreedyTakesThePoisonedPawn(t *testing.T) {
	b := poisonedPawnBoard()
	p := NewGreedy(model.White, rand.New(rand.NewSource(7)))

	move := p.ChooseMove(b, allowedFor(t, b, model.White))
	if move == nil || move.To != model.MustSquare("a7") {
		t.Errorf("greedy played %v; want the pawn grab on a7", move)
	}
}

func TestTwoPlyDeclinesThePoisonedPawn(t *testing.T) {
	b := poisonedPawnBoard()
	p := NewTwoPly(model.White, rand.New(rand.NewSource(7)))

	move := p.ChooseMove(b, allowedFor(t, b, model.White))
	if move == nil {
		t.Fatal("two-ply returned nil")
	}
	if move.To == model.MustSquare("a7") {
		t.Error("two-ply grabbed the defended pawn")
	}
}

func TestMinimaxDeclinesThePoisonedPawn(t *testing.T) {
	b := poisonedPawnBoard()
	p := NewMinimax(model.White, 2, rand.New(rand.NewSource(7)))

	move := p.ChooseMove(b, allowedFor(t, b, model.White))
	if move == nil {
		t.Fatal("minimax returned nil")
	}
	if move.To == model.MustSquare("a7") {
		t.Error("minimax at depth 2 grabbed the defended pawn")
	}
	if p.LeafCount() == 0 {
		t.Error("minimax scored no leaves")
	}
}

func TestAlphaBetaMatchesMinimaxWithFewerLeaves(t *testing.T) {
	b := poisonedPawnBoard()
	moves := allowedFor(t, b, model.White)

	mm := NewMinimax(model.White, 3, rand.New(rand.NewSource(7)))
	ab := NewAlphaBeta(model.White, 3, rand.New(rand.NewSource(7)))

	mmMove := mm.ChooseMove(b, moves)
	abMove := ab.ChooseMove(b, moves)
	if mmMove == nil || abMove == nil {
		t.Fatal("search returned nil")
	}
	if mmMove.From != abMove.From || mmMove.To != abMove.To {
		t.Errorf("alpha-beta played %v, minimax played %v; want the same move", abMove, mmMove)
	}
	if ab.LeafCount() > mm.LeafCount() {
		t.Errorf("alpha-beta scored %d leaves, minimax %d; pruning must not add work",
			ab.LeafCount(), mm.LeafCount())
	}
	if ab.LeafCount() == 0 {
		t.Error("alpha-beta scored no leaves")
	}
}

func TestSearchWithSingleAllowedMove(t *testing.T) {
	only := model.NewMove(model.MustSquare("e2"), model.MustSquare("e3"), "Pawn", model.White)
	moves := []*model.Move{only}

	mm := NewMinimax(model.White, 4, rand.New(rand.NewSource(1)))
	if got := mm.ChooseMove(model.NewBoard(), moves); got != only {
		t.Errorf("minimax = %v; want the only move back without a search", got)
	}
	ab := NewAlphaBeta(model.White, 4, rand.New(rand.NewSource(1)))
	if got := ab.ChooseMove(model.NewBoard(), moves); got != only {
		t.Errorf("alpha-beta = %v; want the only move back without a search", got)
	}
}
