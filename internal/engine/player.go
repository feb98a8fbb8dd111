// Package engine implements the automated opponents: a ladder of move
// selection strategies from uniform-random up to alpha-beta tree search. Every
// strategy explores on independent board copies; only the game state machine
// ever mutates the canonical board.
package engine

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/chesscore/chess-server/internal/model"
)

// Player selects a move for one side. The moves passed in are the game's
// current offer for that side (castling and en passant included), with
// disallowed moves still flagged in place; implementations must pick from the
// allowed ones. ChooseMove returns nil when no allowed move exists.
type Player interface {
	Color() model.Color
	Name() string
	ChooseMove(board *model.Board, moves []*model.Move) *model.Move
}

// ForLevel returns the player for a strength level: 0 plays randomly, 1
// searches one ply, 2 searches two plies, and anything above runs alpha-beta
// to that depth. rng may be nil for a time-seeded source.
func ForLevel(color model.Color, level int, rng *rand.Rand) Player {
	switch {
	case level <= 0:
		return NewRandom(color, rng)
	case level == 1:
		return NewGreedy(color, rng)
	case level == 2:
		return NewTwoPly(color, rng)
	}
	return NewAlphaBeta(color, level, rng)
}

func newRand(rng *rand.Rand) *rand.Rand {
	if rng != nil {
		return rng
	}
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

// Random plays a uniformly random allowed move.
type Random struct {
	color model.Color
	name  string
	rng   *rand.Rand
}

func NewRandom(color model.Color, rng *rand.Rand) *Random {
	return &Random{color: color, name: "Toe Deep Blue", rng: newRand(rng)}
}

func (p *Random) Color() model.Color { return p.color }
func (p *Random) Name() string       { return p.name }

func (p *Random) ChooseMove(board *model.Board, moves []*model.Move) *model.Move {
	allowed := model.AllowedMoves(moves)
	if len(allowed) == 0 {
		return nil
	}
	return allowed[p.rng.Intn(len(allowed))]
}

// applyToCopy plays a move out on a copy of the board, including the compound
// effects of en passant and castling, and returns the copy.
func applyToCopy(board *model.Board, m *model.Move) *model.Board {
	cp := board.Copy()
	if _, err := cp.Move(m.From, m.To); err != nil {
		return cp
	}
	if m.Kind == model.MoveKindEnPassant {
		cp.Remove(m.Captured)
	}
	if m.Kind == model.MoveKindCastling {
		cp.Move(m.RookFrom, m.RookTo)
	}
	return cp
}

func levelName(name string, depth int) string {
	return fmt.Sprintf("%s (level %d)", name, depth)
}
