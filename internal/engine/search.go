package engine

import (
	"math/rand"

	"github.com/chesscore/chess-server/internal/model"
)

// Score sentinels sit well outside any reachable board total, which is
// bounded by the piece values on a full board.
const (
	scoreFloor   = -99999
	scoreCeiling = 99999
)

// Greedy evaluates the position after each of its moves and picks the highest
// scoring one for its side. It will take a hanging piece but never considers
// the reply, so it trades its queen for a defended pawn without regret.
type Greedy struct {
	color model.Color
	name  string
	rng   *rand.Rand
	calc  model.MoveCalculator
}

func NewGreedy(color model.Color, rng *rand.Rand) *Greedy {
	return &Greedy{color: color, name: "Shallow Blue", rng: newRand(rng)}
}

func (p *Greedy) Color() model.Color { return p.color }
func (p *Greedy) Name() string       { return p.name }

func (p *Greedy) ChooseMove(board *model.Board, moves []*model.Move) *model.Move {
	allowed := model.AllowedMoves(moves)
	if len(allowed) == 0 {
		return nil
	}
	move, _ := p.bestAfterOne(board, p.color, allowed)
	return move
}

// bestAfterOne scores the board after each candidate move and returns the one
// maximizing the signed score for color (white maximizes, black minimizes).
// The scan is seeded with a random candidate so equal-value alternatives vary
// between games. A nil moves slice means "compute the allowed moves here",
// which is how the two-ply player asks for the opponent's best reply.
func (p *Greedy) bestAfterOne(board *model.Board, color model.Color, moves []*model.Move) (*model.Move, int) {
	if moves == nil {
		moves = model.AllowedMoves(p.calc.LegalMoves(board, color))
	}
	if len(moves) == 0 {
		return nil, board.Score()
	}
	factor := color.Sign()
	best := moves[p.rng.Intn(len(moves))]
	bestScore := applyToCopy(board, best).Score()
	for _, m := range moves {
		if score := applyToCopy(board, m).Score(); score*factor > bestScore*factor {
			best, bestScore = m, score
		}
	}
	return best, bestScore
}

// TwoPly assumes the opponent answers each of its moves with the greedy best
// reply and picks the move that is best after that reply. One level of
// minimax without further recursion: it stops offering free sacrifices.
type TwoPly struct {
	Greedy
}

func NewTwoPly(color model.Color, rng *rand.Rand) *TwoPly {
	return &TwoPly{Greedy{color: color, name: "Out of your depth Blue", rng: newRand(rng)}}
}

func (p *TwoPly) ChooseMove(board *model.Board, moves []*model.Move) *model.Move {
	allowed := model.AllowedMoves(moves)
	if len(allowed) == 0 {
		return nil
	}
	factor := p.color.Sign()
	opponent := p.color.Opponent()

	best := allowed[p.rng.Intn(len(allowed))]
	_, bestScore := p.bestAfterOne(applyToCopy(board, best), opponent, nil)
	for _, m := range allowed {
		_, score := p.bestAfterOne(applyToCopy(board, m), opponent, nil)
		if score*factor > bestScore*factor {
			best, bestScore = m, score
		}
	}
	return best
}

// Minimax searches the full move tree to a fixed depth, alternating between
// maximizing (white) and minimizing (black) levels, scoring leaves with the
// static board total. Exhaustive: the tree grows exponentially with depth.
type Minimax struct {
	color     model.Color
	name      string
	depth     int
	rng       *rand.Rand
	calc      model.MoveCalculator
	leafCount int
}

func NewMinimax(color model.Color, depth int, rng *rand.Rand) *Minimax {
	return &Minimax{color: color, name: levelName("Deepish Blue", depth), depth: depth, rng: newRand(rng)}
}

func (p *Minimax) Color() model.Color { return p.color }
func (p *Minimax) Name() string       { return p.name }

// LeafCount reports how many leaf positions the last search scored.
func (p *Minimax) LeafCount() int { return p.leafCount }

func (p *Minimax) ChooseMove(board *model.Board, moves []*model.Move) *model.Move {
	allowed := model.AllowedMoves(moves)
	if len(allowed) == 0 {
		return nil
	}
	if len(allowed) == 1 {
		return allowed[0]
	}
	p.leafCount = 0
	_, move := p.best(p.depth, board, p.color, allowed)
	return move
}

func (p *Minimax) best(depth int, board *model.Board, color model.Color, moves []*model.Move) (int, *model.Move) {
	if depth == 0 {
		p.leafCount++
		return board.Score(), nil
	}
	if moves == nil {
		moves = model.AllowedMoves(p.calc.LegalMoves(board, color))
	}
	if len(moves) == 0 {
		p.leafCount++
		return board.Score(), nil
	}

	factor := color.Sign()
	bestScore := scoreFloor * factor
	var bestMove *model.Move
	for _, m := range moves {
		score, _ := p.best(depth-1, applyToCopy(board, m), color.Opponent(), nil)
		if score*factor > bestScore*factor {
			bestScore, bestMove = score, m
		}
	}
	return bestScore, bestMove
}

// AlphaBeta is Minimax with an (alpha, beta) window threaded through the
// recursion. Once beta <= alpha the remaining sibling moves cannot change the
// result given what the rest of the tree already guarantees, so they are
// skipped. Same move selection as Minimax at the same depth, far fewer leaves.
type AlphaBeta struct {
	color     model.Color
	name      string
	depth     int
	rng       *rand.Rand
	calc      model.MoveCalculator
	leafCount int
}

func NewAlphaBeta(color model.Color, depth int, rng *rand.Rand) *AlphaBeta {
	return &AlphaBeta{color: color, name: levelName("Deeper Blue", depth), depth: depth, rng: newRand(rng)}
}

func (p *AlphaBeta) Color() model.Color { return p.color }
func (p *AlphaBeta) Name() string       { return p.name }

// LeafCount reports how many leaf positions the last search scored.
func (p *AlphaBeta) LeafCount() int { return p.leafCount }

func (p *AlphaBeta) ChooseMove(board *model.Board, moves []*model.Move) *model.Move {
	allowed := model.AllowedMoves(moves)
	if len(allowed) == 0 {
		return nil
	}
	if len(allowed) == 1 {
		return allowed[0]
	}
	p.leafCount = 0
	_, move := p.best(p.depth, scoreFloor, scoreCeiling, board, p.color, allowed)
	return move
}

func (p *AlphaBeta) best(depth, alpha, beta int, board *model.Board, color model.Color, moves []*model.Move) (int, *model.Move) {
	if depth == 0 {
		p.leafCount++
		return board.Score(), nil
	}
	if moves == nil {
		moves = model.AllowedMoves(p.calc.LegalMoves(board, color))
	}
	if len(moves) == 0 {
		p.leafCount++
		return board.Score(), nil
	}

	var bestMove *model.Move
	if color == model.Black {
		bestScore := scoreCeiling
		for _, m := range moves {
			score, _ := p.best(depth-1, alpha, beta, applyToCopy(board, m), model.White, nil)
			if score < bestScore {
				bestScore, bestMove = score, m
			}
			if score < beta {
				beta = score
			}
			if beta <= alpha {
				break
			}
		}
		return bestScore, bestMove
	}

	bestScore := scoreFloor
	for _, m := range moves {
		score, _ := p.best(depth-1, alpha, beta, applyToCopy(board, m), model.Black, nil)
		if score > bestScore {
			bestScore, bestMove = score, m
		}
		if score > alpha {
			alpha = score
		}
		if beta <= alpha {
			break
		}
	}
	return bestScore, bestMove
}
