package model

import "fmt"

type PieceType string

const (
	King   PieceType = "king"
	Queen  PieceType = "queen"
	Rook   PieceType = "rook"
	Bishop PieceType = "bishop"
	Knight PieceType = "knight"
	Pawn   PieceType = "pawn"
)

// Description returns the piece name as used in move descriptions and warnings.
func (p PieceType) Description() string {
	switch p {
	case King:
		return "King"
	case Queen:
		return "Queen"
	case Rook:
		return "Rook"
	case Bishop:
		return "Bishop"
	case Knight:
		return "Knight"
	case Pawn:
		return "Pawn"
	}
	return ""
}

type Color string

const (
	White Color = "white"
	Black Color = "black"
)

func (c Color) Opponent() Color {
	if c == White {
		return Black
	}
	return White
}

// Sign is +1 for white and -1 for black. Scores are signed so that white
// maximizes and black minimizes a single total.
func (c Color) Sign() int {
	if c == Black {
		return -1
	}
	return 1
}

func (c Color) String() string {
	if c == Black {
		return "Black"
	}
	return "White"
}

// Piece is a single piece on the board. Its Pos always matches the cell of the
// board that holds it; Board.Move updates both as one unit of work.
type Piece struct {
	Type  PieceType `json:"type"`
	Color Color     `json:"color"`
	Pos   Square    `json:"position"`
}

func NewPiece(t PieceType, c Color, pos Square) *Piece {
	return &Piece{Type: t, Color: c, Pos: pos}
}

func (p *Piece) Clone() *Piece {
	cp := *p
	return &cp
}

func (p *Piece) String() string {
	return fmt.Sprintf("%s %s at %s", p.Color, p.Type.Description(), p.Pos.Label())
}

// Glyph returns the unicode chess figurine for the piece.
func (p *Piece) Glyph() rune {
	white := map[PieceType]rune{King: '♔', Queen: '♕', Rook: '♖', Bishop: '♗', Knight: '♘', Pawn: '♙'}
	black := map[PieceType]rune{King: '♚', Queen: '♛', Rook: '♜', Bishop: '♝', Knight: '♞', Pawn: '♟'}
	if p.Color == Black {
		return black[p.Type]
	}
	return white[p.Type]
}

// baseValues are the material values per kind. The king's value stands in for
// infinity: losing it means losing the game.
var baseValues = map[PieceType]int{
	Pawn:   10,
	Knight: 30,
	Bishop: 30,
	Rook:   50,
	Queen:  90,
	King:   999,
}

// Score is the signed material value plus the positional adjustment for the
// square the piece stands on. White scores positive, black negative.
func (p *Piece) Score() int {
	base := baseValues[p.Type]
	table := adjustments[p.Type]
	if p.Color == Black {
		return -(base + table[boardSize-1-p.Pos.Row][p.Pos.Col])
	}
	return base + table[p.Pos.Row][p.Pos.Col]
}

// adjustments hold the positional value tables from white's point of view
// (row 0 is the opponent's back rank). Black's adjustment is the vertical
// mirror, negated.
var adjustments = map[PieceType][boardSize][boardSize]int{
	Pawn: {
		{80, 80, 80, 80, 80, 80, 80, 80},
		{30, 30, 30, 30, 30, 30, 30, 30},
		{10, 10, 10, 10, 10, 10, 10, 10},
		{0, 0, 0, 0, 0, 0, 0, 0},
		{0, 0, 0, 2, 2, 0, 0, 0},
		{0, 0, 0, 1, 1, 0, 0, 0},
		{0, 0, 0, 0, 0, 0, 0, 0},
		{0, 0, 0, 0, 0, 0, 0, 0},
	},
	Knight: {
		{-5, -4, -3, -3, -3, -3, -4, -5},
		{-4, -2, 0, 0, 0, 0, -2, -4},
		{-3, 0, 1, 2, 2, 1, 0, -3},
		{-3, 1, 2, 3, 3, 2, 1, -3},
		{-3, 1, 2, 3, 3, 2, 1, -3},
		{-3, 0, 1, 2, 2, 1, 0, -3},
		{-4, -2, 0, 0, 0, 0, -2, -4},
		{-5, -4, -3, -3, -3, -3, -4, -5},
	},
	Bishop: {
		{-2, -1, -1, -1, -1, -1, -1, -2},
		{-1, 0, 0, 0, 0, 0, 0, -1},
		{-1, 0, 1, 1, 1, 1, 0, -1},
		{-1, 0, 1, 1, 1, 1, 0, -1},
		{-1, 0, 1, 1, 1, 1, 0, -1},
		{-1, 0, 1, 1, 1, 1, 0, -1},
		{-1, 0, 0, 0, 0, 0, 0, -1},
		{-2, -1, -1, -1, -1, -1, -1, -2},
	},
	Rook: {
		{0, 0, 0, 0, 0, 0, 0, 0},
		{0, 1, 1, 1, 1, 1, 1, 0},
		{-1, 0, 0, 0, 0, 0, 0, -1},
		{-1, 0, 0, 0, 0, 0, 0, -1},
		{-1, 0, 0, 0, 0, 0, 0, -1},
		{-1, 0, 0, 0, 0, 0, 0, -1},
		{0, 0, 0, 0, 0, 0, 0, 0},
		{0, 0, 0, 1, 1, 1, 0, 0},
	},
	Queen: {
		{-2, -1, -1, 0, 0, -1, -1, -2},
		{-1, 0, 0, 0, 0, 0, 0, -1},
		{-1, 0, 1, 1, 1, 1, 0, -1},
		{0, 0, 1, 1, 1, 1, 0, 0},
		{0, 0, 1, 1, 1, 1, 0, 0},
		{-1, 0, 1, 1, 1, 1, 0, -1},
		{-1, 0, 0, 0, 0, 0, 0, -1},
		{-2, -1, -1, 0, 0, -1, -1, -2},
	},
	King: {
		{-3, -4, -5, -5, -5, -5, -4, -3},
		{-3, -4, -5, -5, -5, -5, -4, -3},
		{-3, -4, -5, -5, -5, -5, -4, -3},
		{-3, -4, -5, -5, -5, -5, -4, -3},
		{-2, -3, -3, -4, -4, -3, -3, -1},
		{-1, -2, -2, -2, -2, -2, -2, -1},
		{2, 2, 0, 0, 0, 0, 2, 2},
		{3, 2, 1, 0, 0, 1, 2, 3},
	},
}

var (
	rookDirs   = []Square{{Row: 1, Col: 0}, {Row: -1, Col: 0}, {Row: 0, Col: 1}, {Row: 0, Col: -1}}
	bishopDirs = []Square{{Row: 1, Col: 1}, {Row: 1, Col: -1}, {Row: -1, Col: 1}, {Row: -1, Col: -1}}
	queenDirs  = append(append([]Square{}, rookDirs...), bishopDirs...)
	knightDirs = []Square{
		{Row: 2, Col: 1}, {Row: 2, Col: -1}, {Row: -2, Col: 1}, {Row: -2, Col: -1},
		{Row: 1, Col: 2}, {Row: 1, Col: -2}, {Row: -1, Col: 2}, {Row: -1, Col: -2},
	}
)

// motion is the movement rule for a non-pawn kind: the direction vectors and
// whether the piece slides along them repeatedly.
type motion struct {
	dirs   []Square
	slides bool
}

var motions = map[PieceType]motion{
	Rook:   {dirs: rookDirs, slides: true},
	Bishop: {dirs: bishopDirs, slides: true},
	Queen:  {dirs: queenDirs, slides: true},
	King:   {dirs: queenDirs, slides: false},
	Knight: {dirs: knightDirs, slides: false},
}

// CandidateSquares returns the destinations the piece could geometrically reach
// on the given board, ignoring whether the move would expose its own king.
func (p *Piece) CandidateSquares(b *Board) []Square {
	if p.Type == Pawn {
		return p.pawnCandidates(b)
	}
	m := motions[p.Type]
	var squares []Square
	for _, d := range m.dirs {
		pos := p.Pos
		for {
			next, ok := b.Offset(pos, d)
			if !ok {
				break
			}
			target := b.PieceAt(next)
			if target == nil {
				squares = append(squares, next)
			} else if target.Color != p.Color {
				squares = append(squares, next)
				break
			} else {
				break
			}
			if !m.slides {
				break
			}
			pos = next
		}
	}
	return squares
}

// AttackingSquares returns the squares the piece threatens. For every kind but
// the pawn this matches CandidateSquares; pawns threaten their capture
// diagonals whether or not they can move there.
func (p *Piece) AttackingSquares(b *Board) []Square {
	if p.Type != Pawn {
		return p.CandidateSquares(b)
	}
	var squares []Square
	for _, d := range p.pawnCaptureDirs() {
		if next, ok := b.Offset(p.Pos, d); ok {
			squares = append(squares, next)
		}
	}
	return squares
}

func (p *Piece) pawnCandidates(b *Board) []Square {
	var squares []Square
	forward := Square{Row: -1}
	startRow := boardSize - 2
	if p.Color == Black {
		forward = Square{Row: 1}
		startRow = 1
	}

	if next, ok := b.Offset(p.Pos, forward); ok && b.PieceAt(next) == nil {
		squares = append(squares, next)
		if p.Pos.Row == startRow {
			if two, ok := b.Offset(next, forward); ok && b.PieceAt(two) == nil {
				squares = append(squares, two)
			}
		}
	}

	for _, d := range p.pawnCaptureDirs() {
		next, ok := b.Offset(p.Pos, d)
		if !ok {
			continue
		}
		if target := b.PieceAt(next); target != nil && target.Color != p.Color {
			squares = append(squares, next)
		}
	}
	return squares
}

func (p *Piece) pawnCaptureDirs() []Square {
	if p.Color == Black {
		return []Square{{Row: 1, Col: 1}, {Row: 1, Col: -1}}
	}
	return []Square{{Row: -1, Col: 1}, {Row: -1, Col: -1}}
}
