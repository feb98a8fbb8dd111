package model

import (
	"fmt"
	"strings"
)

const boardSize = 8

// Square addresses a cell by zero-based grid coordinates. Row 0 is the top
// rank (rank 8); rank 1 is row 7. The two-character label form runs column
// letter first, rank digit second, rank 1 at the bottom.
type Square struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// ParseSquare converts a two-character label such as "e2" into coordinates.
// Input is case-insensitive. A malformed or out-of-range label yields an
// *InvalidCoordinateError; it is never silently corrected.
func ParseSquare(label string) (Square, error) {
	if len(label) != 2 {
		return Square{}, &InvalidCoordinateError{Label: label, Reason: "squares are two characters, a column letter then a rank digit"}
	}
	col := int(strings.ToLower(label)[0] - 'a')
	if col < 0 || col >= boardSize {
		return Square{}, &InvalidCoordinateError{Label: label, Reason: fmt.Sprintf("column must be in a..%c", 'a'+boardSize-1)}
	}
	rank := int(label[1] - '0')
	if rank < 1 || rank > boardSize {
		return Square{}, &InvalidCoordinateError{Label: label, Reason: fmt.Sprintf("rank must be in 1..%d", boardSize)}
	}
	return Square{Row: boardSize - rank, Col: col}, nil
}

// MustSquare parses a label known to be valid, panicking otherwise. For use
// with literals only.
func MustSquare(label string) Square {
	sq, err := ParseSquare(label)
	if err != nil {
		panic(err)
	}
	return sq
}

// Label is the inverse of ParseSquare.
func (s Square) Label() string {
	return fmt.Sprintf("%c%d", 'a'+s.Col, boardSize-s.Row)
}

func (s Square) String() string { return s.Label() }

func (s Square) onBoard() bool {
	return s.Row >= 0 && s.Row < boardSize && s.Col >= 0 && s.Col < boardSize
}

// Board is an 8x8 grid of optional pieces. It maintains placement state only
// and knows nothing about the rules of the game played on it: Move will
// happily relocate a piece onto a friendly piece or move a pawn backwards.
// The board owns the pieces placed on it; Remove transfers ownership out.
type Board struct {
	grid [boardSize][boardSize]*Piece

	// publisher receives square-change events for the canonical game board.
	// Copies made for search have none and stay silent.
	publisher *Publisher
}

func NewBoard() *Board {
	return &Board{}
}

// Reset clears every cell.
func (b *Board) Reset() {
	b.grid = [boardSize][boardSize]*Piece{}
	b.publish(BoardReset{})
}

// Place puts a piece on the cell matching its position, overwriting whatever
// was there.
func (b *Board) Place(p *Piece) {
	b.grid[p.Pos.Row][p.Pos.Col] = p
	b.publish(SquareChanged{Row: p.Pos.Row, Col: p.Pos.Col, Piece: p})
}

// Remove clears a cell and returns the removed piece, or nil if it was empty.
func (b *Board) Remove(sq Square) *Piece {
	p := b.grid[sq.Row][sq.Col]
	b.grid[sq.Row][sq.Col] = nil
	b.publish(SquareChanged{Row: sq.Row, Col: sq.Col})
	return p
}

// Move relocates the piece on from to to, returning any captured piece. No
// legality checking happens here; moving an empty square is a caller error.
func (b *Board) Move(from, to Square) (*Piece, error) {
	moving := b.Remove(from)
	if moving == nil {
		return nil, fmt.Errorf("no piece on %s to move", from.Label())
	}
	captured := b.Remove(to)
	moving.Pos = to
	b.Place(moving)
	return captured, nil
}

// PieceAt returns the piece on a square, or nil.
func (b *Board) PieceAt(sq Square) *Piece {
	return b.grid[sq.Row][sq.Col]
}

// PieceAtLabel is PieceAt for a label form square.
func (b *Board) PieceAtLabel(label string) (*Piece, error) {
	sq, err := ParseSquare(label)
	if err != nil {
		return nil, err
	}
	return b.PieceAt(sq), nil
}

// Pieces returns every piece still on the board.
func (b *Board) Pieces() []*Piece {
	var pieces []*Piece
	for r := 0; r < boardSize; r++ {
		for c := 0; c < boardSize; c++ {
			if p := b.grid[r][c]; p != nil {
				pieces = append(pieces, p)
			}
		}
	}
	return pieces
}

// PiecesOf returns the pieces of one color still on the board.
func (b *Board) PiecesOf(color Color) []*Piece {
	var pieces []*Piece
	for _, p := range b.Pieces() {
		if p.Color == color {
			pieces = append(pieces, p)
		}
	}
	return pieces
}

// Offset returns the square d.Row rows and d.Col columns from sq, reporting
// false when that lands off the board.
func (b *Board) Offset(sq Square, d Square) (Square, bool) {
	next := Square{Row: sq.Row + d.Row, Col: sq.Col + d.Col}
	return next, next.onBoard()
}

// Score sums the signed score of every piece on the board. White positive,
// black negative; one total serves both sides.
func (b *Board) Score() int {
	score := 0
	for _, p := range b.Pieces() {
		score += p.Score()
	}
	return score
}

// Copy produces an independent deep copy of the placement state. Mutating the
// copy never disturbs the original; the search engine leans on this to explore
// hypothetical positions. The copy carries no event publisher.
func (b *Board) Copy() *Board {
	cp := NewBoard()
	for r := 0; r < boardSize; r++ {
		for c := 0; c < boardSize; c++ {
			if p := b.grid[r][c]; p != nil {
				cp.grid[r][c] = p.Clone()
			}
		}
	}
	return cp
}

// Grid returns the full grid for state snapshots.
func (b *Board) Grid() [boardSize][boardSize]*Piece {
	return b.grid
}

func (b *Board) setPublisher(pub *Publisher) {
	b.publisher = pub
}

func (b *Board) publish(ev Event) {
	if b.publisher != nil {
		b.publisher.Publish(ev)
	}
}

// String renders the board as a terminal grid with figurines, ranks on the
// sides and files above and below.
func (b *Board) String() string {
	var sb strings.Builder
	line := strings.Repeat("-", boardSize*4+4)
	header := " |"
	for c := 0; c < boardSize; c++ {
		header += fmt.Sprintf(" %c |", 'a'+c)
	}
	sb.WriteString("\n" + header + "\n" + line + "\n")
	for r := 0; r < boardSize; r++ {
		sb.WriteString(fmt.Sprintf("%d|", boardSize-r))
		for c := 0; c < boardSize; c++ {
			if p := b.grid[r][c]; p != nil {
				sb.WriteString(fmt.Sprintf(" %c |", p.Glyph()))
			} else {
				sb.WriteString("   |")
			}
		}
		sb.WriteString(fmt.Sprintf("%d\n%s\n", boardSize-r, line))
	}
	sb.WriteString(header + "\n")
	return sb.String()
}
