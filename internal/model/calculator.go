package model

import "fmt"

// MoveCalculator derives moves for a side: first the raw per-piece candidates,
// then a legality pass that simulates each candidate on a board copy and marks
// the ones leaving the mover's own king attacked. Keeping check-avoidance out
// of the per-piece geometry and enforcing it by simulation is what lets the
// same generation code serve move listing, check detection and search.
type MoveCalculator struct{}

// PossibleMoves builds one move per (piece, candidate square) pair for color.
// No legality filtering happens here.
func (MoveCalculator) PossibleMoves(b *Board, color Color) []*Move {
	var moves []*Move
	for _, p := range b.PiecesOf(color) {
		for _, sq := range p.CandidateSquares(b) {
			moves = append(moves, NewMove(p.Pos, sq, p.Type.Description(), color))
		}
	}
	return moves
}

// LegalMoves returns every candidate move for color with those that would
// place or leave the mover's own king in check marked disallowed. Disallowed
// moves stay in the list so callers can explain them.
func (c MoveCalculator) LegalMoves(b *Board, color Color) []*Move {
	moves := c.PossibleMoves(b, color)
	for _, m := range moves {
		cp := b.Copy()
		if _, err := cp.Move(m.From, m.To); err != nil {
			continue
		}
		if c.InCheck(cp, color) {
			piece := b.PieceAt(m.From)
			m.Disallow(fmt.Sprintf("Cannot make move %s: %s->%s as that would place / leave you in check.",
				piece.Type.Description(), m.From.Label(), m.To.Label()))
		}
	}
	return moves
}

// InCheck reports whether color's king is currently attacked. A board with no
// king of that color reports false; the analyzer treats such positions as an
// internal fault before this matters.
func (c MoveCalculator) InCheck(b *Board, color Color) bool {
	king, ok := kingSquare(b, color)
	if !ok {
		return false
	}
	return c.IsSquareAttacked(b, color.Opponent(), king)
}

// IsSquareAttacked reports whether any piece of attacker threatens sq. Pawns
// count their capture diagonals whether or not a capture is available there.
func (MoveCalculator) IsSquareAttacked(b *Board, attacker Color, sq Square) bool {
	for _, p := range b.PiecesOf(attacker) {
		for _, s := range p.AttackingSquares(b) {
			if s == sq {
				return true
			}
		}
	}
	return false
}

// AllowedMoves filters a move list down to the moves not marked disallowed.
func AllowedMoves(moves []*Move) []*Move {
	var allowed []*Move
	for _, m := range moves {
		if !m.Disallowed {
			allowed = append(allowed, m)
		}
	}
	return allowed
}

func kingSquare(b *Board, color Color) (Square, bool) {
	for _, p := range b.PiecesOf(color) {
		if p.Type == King {
			return p.Pos, true
		}
	}
	return Square{}, false
}
