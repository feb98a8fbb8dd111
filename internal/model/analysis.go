package model

import "fmt"

// CastlingRights tracks which of the castling-relevant pieces have moved.
// The flags only ever flip to true; a king or rook returning to its home
// square does not restore the right.
type CastlingRights struct {
	WhiteKingMoved      bool
	WhiteKingRookMoved  bool
	WhiteQueenRookMoved bool
	BlackKingMoved      bool
	BlackKingRookMoved  bool
	BlackQueenRookMoved bool
}

// Analysis is an immutable snapshot of one position: both sides' move lists
// with legality flags, check and checkmate state, the castling and en-passant
// moves currently on offer, and at most one pawn awaiting promotion. A fresh
// snapshot is produced after every applied move; the previous one is
// discarded.
type Analysis struct {
	WhiteInCheck   bool
	BlackInCheck   bool
	WhiteCheckmate bool
	BlackCheckmate bool
	WhiteMoves     []*Move
	BlackMoves     []*Move
	WhiteCastling  []*Move
	BlackCastling  []*Move
	EnPassant      []*Move
	PromotedPawn   *Piece

	// MaterialDraw reports the conservative insufficient-material rule: one
	// side reduced to a lone king while the other holds nothing from
	// {queen, pawn, rook, two bishops, knight+bishop}. Deliberately not a
	// complete draw detector.
	MaterialDraw bool
}

// InCheck reports whether color's king is attacked in this position.
func (a *Analysis) InCheck(color Color) bool {
	if color == Black {
		return a.BlackInCheck
	}
	return a.WhiteInCheck
}

// Checkmate reports whether color is mated in this position.
func (a *Analysis) Checkmate(color Color) bool {
	if color == Black {
		return a.BlackCheckmate
	}
	return a.WhiteCheckmate
}

// Moves returns color's plain moves, disallowed ones included.
func (a *Analysis) Moves(color Color) []*Move {
	if color == Black {
		return a.BlackMoves
	}
	return a.WhiteMoves
}

// CastlingMoves returns the castling moves currently offered to color.
func (a *Analysis) CastlingMoves(color Color) []*Move {
	if color == Black {
		return a.BlackCastling
	}
	return a.WhiteCastling
}

// AvailableMoves returns every move on offer to color in this position:
// plain moves (with legality flags), eligible castling moves and any
// en-passant capture.
func (a *Analysis) AvailableMoves(color Color) []*Move {
	moves := append([]*Move{}, a.Moves(color)...)
	moves = append(moves, a.CastlingMoves(color)...)
	for _, m := range a.EnPassant {
		if m.Color == color {
			moves = append(moves, m)
		}
	}
	return moves
}

// castlingTemplates returns the four castling moves for a standard board.
// Each carries the squares that must be empty between king and rook and the
// squares (the king's own plus the ones it crosses or lands on) that must not
// be attacked.
func castlingTemplates() map[Color][]*Move {
	return map[Color][]*Move{
		White: {
			newCastlingMove(MustSquare("e1"), MustSquare("g1"), MustSquare("h1"), MustSquare("f1"), White,
				[]Square{MustSquare("f1"), MustSquare("g1")},
				[]Square{MustSquare("e1"), MustSquare("f1"), MustSquare("g1")},
				"White King Side Castling"),
			newCastlingMove(MustSquare("e1"), MustSquare("c1"), MustSquare("a1"), MustSquare("d1"), White,
				[]Square{MustSquare("b1"), MustSquare("c1"), MustSquare("d1")},
				[]Square{MustSquare("c1"), MustSquare("d1"), MustSquare("e1")},
				"White Queen Side Castling"),
		},
		Black: {
			newCastlingMove(MustSquare("e8"), MustSquare("g8"), MustSquare("h8"), MustSquare("f8"), Black,
				[]Square{MustSquare("f8"), MustSquare("g8")},
				[]Square{MustSquare("e8"), MustSquare("f8"), MustSquare("g8")},
				"Black King Side Castling"),
			newCastlingMove(MustSquare("e8"), MustSquare("c8"), MustSquare("a8"), MustSquare("d8"), Black,
				[]Square{MustSquare("b8"), MustSquare("c8"), MustSquare("d8")},
				[]Square{MustSquare("c8"), MustSquare("d8"), MustSquare("e8")},
				"Black Queen Side Castling"),
		},
	}
}

// AnalyzeBoard produces the analysis snapshot for a position. lastMove is the
// move just applied to reach it (nil for a freshly set up board) and is the
// only trigger for en-passant detection. An impossible position — a missing
// king, or more than one promoted pawn — returns an error wrapping
// ErrInternalConsistency.
func AnalyzeBoard(b *Board, lastMove *Move, rights CastlingRights) (*Analysis, error) {
	var calc MoveCalculator

	for _, color := range []Color{White, Black} {
		if _, ok := kingSquare(b, color); !ok {
			return nil, fmt.Errorf("%w: no %s king on the board", ErrInternalConsistency, color)
		}
	}

	a := &Analysis{
		WhiteInCheck: calc.InCheck(b, White),
		BlackInCheck: calc.InCheck(b, Black),
		WhiteMoves:   calc.LegalMoves(b, White),
		BlackMoves:   calc.LegalMoves(b, Black),
	}
	a.WhiteCheckmate = a.WhiteInCheck && len(AllowedMoves(a.WhiteMoves)) == 0
	a.BlackCheckmate = a.BlackInCheck && len(AllowedMoves(a.BlackMoves)) == 0

	promoted, err := findPromotedPawn(b)
	if err != nil {
		return nil, err
	}
	a.PromotedPawn = promoted

	templates := castlingTemplates()
	a.WhiteCastling = eligibleCastling(b, templates[White], rights, attackedSquares(a.BlackMoves))
	a.BlackCastling = eligibleCastling(b, templates[Black], rights, attackedSquares(a.WhiteMoves))

	if lastMove != nil {
		a.EnPassant = enPassantMoves(b, lastMove)
	}

	a.MaterialDraw = materialDraw(b, White) || materialDraw(b, Black)

	return a, nil
}

// findPromotedPawn scans the two back ranks for a pawn that reached its far
// rank. Positions are analyzed after every move, so more than one at a time
// is a fault.
func findPromotedPawn(b *Board) (*Piece, error) {
	var promoted []*Piece
	for c := 0; c < boardSize; c++ {
		if p := b.PieceAt(Square{Row: 0, Col: c}); p != nil && p.Type == Pawn && p.Color == White {
			promoted = append(promoted, p)
		}
		if p := b.PieceAt(Square{Row: boardSize - 1, Col: c}); p != nil && p.Type == Pawn && p.Color == Black {
			promoted = append(promoted, p)
		}
	}
	switch len(promoted) {
	case 0:
		return nil, nil
	case 1:
		return promoted[0], nil
	}
	return nil, fmt.Errorf("%w: %d pawns promoted at once", ErrInternalConsistency, len(promoted))
}

// attackedSquares collects the destinations of the allowed moves in the list.
func attackedSquares(moves []*Move) map[Square]bool {
	attacked := make(map[Square]bool)
	for _, m := range moves {
		if !m.Disallowed {
			attacked[m.To] = true
		}
	}
	return attacked
}

// eligibleCastling filters the side's castling templates down to those whose
// conditions hold right now: neither king nor that rook has moved, the
// between squares are empty, and neither the king's square nor any square it
// crosses is under attack.
func eligibleCastling(b *Board, templates []*Move, rights CastlingRights, attacked map[Square]bool) []*Move {
	var eligible []*Move
	for _, cm := range templates {
		if castlingDisabled(cm, rights) {
			continue
		}
		ok := true
		for _, sq := range cm.mustBeEmpty {
			if b.PieceAt(sq) != nil {
				ok = false
				break
			}
		}
		if !ok {
			continue
		}
		for _, sq := range cm.mustBeSafe {
			if attacked[sq] {
				ok = false
				break
			}
		}
		if ok {
			eligible = append(eligible, cm)
		}
	}
	return eligible
}

func castlingDisabled(cm *Move, rights CastlingRights) bool {
	kingSide := cm.RookFrom.Col == boardSize-1
	if cm.Color == White {
		if rights.WhiteKingMoved {
			return true
		}
		if kingSide {
			return rights.WhiteKingRookMoved
		}
		return rights.WhiteQueenRookMoved
	}
	if rights.BlackKingMoved {
		return true
	}
	if kingSide {
		return rights.BlackKingRookMoved
	}
	return rights.BlackQueenRookMoved
}

// enPassantMoves synthesizes the captures made available by lastMove: if it
// was a two-rank pawn advance, any opposing pawn sitting laterally adjacent
// to the landing square may capture onto the square behind it. These expire
// with the next applied move since analysis is rebuilt from the move that
// follows.
func enPassantMoves(b *Board, lastMove *Move) []*Move {
	moved := b.PieceAt(lastMove.To)
	if moved == nil || moved.Type != Pawn {
		return nil
	}
	if abs(lastMove.From.Row-lastMove.To.Row) != 2 {
		return nil
	}
	var moves []*Move
	for _, d := range []Square{{Col: 1}, {Col: -1}} {
		side, ok := b.Offset(lastMove.To, d)
		if !ok {
			continue
		}
		p := b.PieceAt(side)
		if p == nil || p.Type != Pawn || p.Color == moved.Color {
			continue
		}
		behind, ok := b.Offset(lastMove.To, Square{Row: -p.Color.Sign()})
		if !ok {
			continue
		}
		moves = append(moves, NewEnPassant(p.Pos, behind, p.Color, moved.Pos))
	}
	return moves
}

// materialDraw implements the documented heuristic: once the defender is down
// to a lone king, the attacker can only win while it still holds a queen, a
// pawn, a rook, two bishops, or knight and bishop together. Anything else is
// called a draw. Known to be non-exhaustive.
func materialDraw(b *Board, attacker Color) bool {
	if len(b.PiecesOf(attacker.Opponent())) > 1 {
		return false
	}
	attacking := b.PiecesOf(attacker)
	if len(attacking) > 3 {
		return false
	}
	counts := make(map[PieceType]int)
	for _, p := range attacking {
		counts[p.Type]++
	}
	if counts[Queen] > 0 || counts[Pawn] > 0 || counts[Rook] > 0 {
		return false
	}
	if counts[Bishop] > 1 {
		return false
	}
	if counts[Knight] > 0 && counts[Bishop] > 0 {
		return false
	}
	return true
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
