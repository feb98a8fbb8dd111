package service

import (
	"errors"
	"strings"
	"testing"

	"github.com/chesscore/chess-server/internal/model"
)

func TestCreateGameAgainstComputer(t *testing.T) {
	gm := NewGameManager()

	gameID, err := gm.CreateGame("player-1", 0, model.White)
	if err != nil {
		t.Fatalf("CreateGame failed: %v", err)
	}
	if gameID == "" {
		t.Fatal("CreateGame returned an empty id")
	}

	snap, err := gm.GetSnapshot(gameID)
	if err != nil {
		t.Fatalf("GetSnapshot failed: %v", err)
	}
	if snap.ToMove != model.White {
		t.Errorf("side to move = %v; want the human's white", snap.ToMove)
	}
	if snap.White == nil || snap.White.ID != "player-1" {
		t.Errorf("white player = %v; want player-1", snap.White)
	}
	if snap.Black == nil || snap.Black.Name != "Toe Deep Blue" {
		t.Errorf("black player = %v; want the level 0 opponent", snap.Black)
	}
}

func TestComputerAsWhiteOpensImmediately(t *testing.T) {
	gm := NewGameManager()

	gameID, err := gm.CreateGame("player-1", 0, model.Black)
	if err != nil {
		t.Fatalf("CreateGame failed: %v", err)
	}
	snap, err := gm.GetSnapshot(gameID)
	if err != nil {
		t.Fatal(err)
	}
	if snap.MoveCount != 1 {
		t.Errorf("move count = %d; want 1 after the computer's opening move", snap.MoveCount)
	}
	if snap.ToMove != model.Black {
		t.Errorf("side to move = %v; want the human's black", snap.ToMove)
	}
}

func TestMakeMoveAndComputerReply(t *testing.T) {
	gm := NewGameManager()
	gameID, err := gm.CreateGame("player-1", 0, model.White)
	if err != nil {
		t.Fatal(err)
	}

	if err := gm.MakeMove(gameID, "player-1", MoveRequest{From: "e2", To: "e4"}); err != nil {
		t.Fatalf("MakeMove failed: %v", err)
	}
	snap, err := gm.GetSnapshot(gameID)
	if err != nil {
		t.Fatal(err)
	}
	if snap.MoveCount != 2 {
		t.Errorf("move count = %d; want 2 after human move and computer reply", snap.MoveCount)
	}
	if snap.ToMove != model.White {
		t.Errorf("side to move = %v; want white again", snap.ToMove)
	}
}

func TestMakeMoveCompactForm(t *testing.T) {
	gm := NewGameManager()
	gameID, err := gm.CreateGame("player-1", 0, model.White)
	if err != nil {
		t.Fatal(err)
	}

	if err := gm.MakeMove(gameID, "player-1", MoveRequest{From: "d2d4"}); err != nil {
		t.Fatalf("compact move failed: %v", err)
	}
	snap, err := gm.GetSnapshot(gameID)
	if err != nil {
		t.Fatal(err)
	}
	if p := snap.Board[model.MustSquare("d4").Row][model.MustSquare("d4").Col]; p == nil || p.Type != model.Pawn {
		t.Errorf("d4 holds %v; want the advanced pawn", p)
	}
}

func TestMakeMoveValidation(t *testing.T) {
	gm := NewGameManager()
	gameID, err := gm.CreateGame("player-1", 0, model.White)
	if err != nil {
		t.Fatal(err)
	}

	t.Run("unknown game", func(t *testing.T) {
		err := gm.MakeMove("nope", "player-1", MoveRequest{From: "e2", To: "e4"})
		if !errors.Is(err, ErrGameNotFound) {
			t.Errorf("err = %v; want ErrGameNotFound", err)
		}
	})

	t.Run("wrong player", func(t *testing.T) {
		err := gm.MakeMove(gameID, "intruder", MoveRequest{From: "e2", To: "e4"})
		if err == nil || !strings.Contains(err.Error(), "not in this game") {
			t.Errorf("err = %v; want a membership rejection", err)
		}
	})

	t.Run("malformed square", func(t *testing.T) {
		err := gm.MakeMove(gameID, "player-1", MoveRequest{From: "e9", To: "e4"})
		var coordErr *model.InvalidCoordinateError
		if !errors.As(err, &coordErr) {
			t.Errorf("err = %v; want *InvalidCoordinateError", err)
		}
	})

	t.Run("move not on offer", func(t *testing.T) {
		err := gm.MakeMove(gameID, "player-1", MoveRequest{From: "e2", To: "e5"})
		if err == nil || !strings.Contains(err.Error(), "not an available move") {
			t.Errorf("err = %v; want the not-available explanation", err)
		}
	})
}

func TestGetMoves(t *testing.T) {
	gm := NewGameManager()
	gameID, err := gm.CreateGame("player-1", 1, model.White)
	if err != nil {
		t.Fatal(err)
	}

	moves, err := gm.GetMoves(gameID, model.White)
	if err != nil {
		t.Fatalf("GetMoves failed: %v", err)
	}
	if len(moves) != 20 {
		t.Errorf("opening offer has %d moves; want 20", len(moves))
	}

	if _, err := gm.GetMoves("nope", model.White); !errors.Is(err, ErrGameNotFound) {
		t.Errorf("unknown game err = %v; want ErrGameNotFound", err)
	}
}
