package model

import (
	"errors"
	"sync"
)

type Status int

const (
	StatusInProgress Status = iota
	StatusNewGameNoMoves
	StatusGameOver
)

func (s Status) String() string {
	switch s {
	case StatusInProgress:
		return "inProgress"
	case StatusNewGameNoMoves:
		return "newGame"
	case StatusGameOver:
		return "gameOver"
	}
	return "unknown"
}

// Game is the state machine for one chess game: it owns the live board, the
// move counter that drives turn order, the castling bookkeeping and the
// current analysis snapshot. It is created once per game and reset for a new
// one; GameOver is absorbing.
type Game struct {
	mu        sync.Mutex
	board     *Board
	publisher *Publisher
	white     *Player
	black     *Player
	moveCount int
	status    Status
	analysis  *Analysis
	rights    CastlingRights
}

// NewGame builds a game between the two players and sets up the opening
// position.
func NewGame(white, black *Player) (*Game, error) {
	g := &Game{
		board:     NewBoard(),
		publisher: NewPublisher(),
		white:     white,
		black:     black,
		status:    StatusNewGameNoMoves,
	}
	g.board.setPublisher(g.publisher)
	if err := g.Reset(); err != nil {
		return nil, err
	}
	return g, nil
}

// Subscribe registers a subscriber for all events the game publishes.
// Subscribers run synchronously on the goroutine applying the move.
func (g *Game) Subscribe(fn Subscriber) {
	g.publisher.Subscribe(fn)
}

// Reset repopulates the board with the standard opening layout, zeroes the
// move counter and restores all castling rights.
func (g *Game) Reset() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.board.Reset()
	backRank := []PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}
	for c := 0; c < boardSize; c++ {
		g.board.Place(NewPiece(backRank[c], Black, Square{Row: 0, Col: c}))
		g.board.Place(NewPiece(Pawn, Black, Square{Row: 1, Col: c}))
		g.board.Place(NewPiece(Pawn, White, Square{Row: boardSize - 2, Col: c}))
		g.board.Place(NewPiece(backRank[c], White, Square{Row: boardSize - 1, Col: c}))
	}
	g.moveCount = 0
	g.rights = CastlingRights{}

	analysis, err := AnalyzeBoard(g.board, nil, g.rights)
	if err != nil {
		return err
	}
	g.analysis = analysis
	g.setStatus(StatusNewGameNoMoves)
	return nil
}

// SideToMove returns the color whose turn it is. White moves on even counts.
func (g *Game) SideToMove() Color {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.sideToMove()
}

func (g *Game) sideToMove() Color {
	if g.moveCount%2 == 1 {
		return Black
	}
	return White
}

// PlayerToMove returns the player whose turn it is.
func (g *Game) PlayerToMove() *Player {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.playerFor(g.sideToMove())
}

func (g *Game) playerFor(color Color) *Player {
	if g.black != nil && g.black.Color == color {
		return g.black
	}
	return g.white
}

// Players returns the white and black players.
func (g *Game) Players() (white, black *Player) {
	return g.white, g.black
}

func (g *Game) Status() Status {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.status
}

func (g *Game) MoveCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.moveCount
}

// Board exposes the live game board. Only ApplyMove mutates it; search
// players must work on copies.
func (g *Game) Board() *Board {
	return g.board
}

// Analysis returns the current position snapshot.
func (g *Game) Analysis() *Analysis {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.analysis
}

// AvailableMoves returns every move on offer to color in the current
// position, castling and en passant included, disallowed moves flagged.
func (g *Game) AvailableMoves(color Color) []*Move {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.analysis.AvailableMoves(color)
}

// AvailableSquaresFrom returns the destinations of the allowed moves for the
// piece on sq, for front ends highlighting where a selected piece can go.
func (g *Game) AvailableSquaresFrom(sq Square) []Square {
	g.mu.Lock()
	defer g.mu.Unlock()

	p := g.board.PieceAt(sq)
	if p == nil {
		return nil
	}
	var squares []Square
	for _, m := range g.analysis.AvailableMoves(p.Color) {
		if m.From == sq && !m.Disallowed {
			squares = append(squares, m.To)
		}
	}
	return squares
}

// InCheck reports whether color is currently in check.
func (g *Game) InCheck(color Color) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.analysis.InCheck(color)
}

// PendingPromotion returns the pawn awaiting a promotion choice, if any.
func (g *Game) PendingPromotion() *Piece {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.analysis.PromotedPawn
}

// ApplyMove commits a validated move for player: it performs the move's
// compound board effects, advances the turn, rebuilds the analysis snapshot
// and publishes the resulting events. The caller is expected to pass a move
// from the current move list that is not disallowed; turn order is enforced
// here, legality is not re-checked.
func (g *Game) ApplyMove(player *Player, move *Move) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.status == StatusGameOver {
		return ErrGameOver
	}
	if player == nil || move == nil {
		return errors.New("player and move are required")
	}
	if side := g.sideToMove(); player.Color != side {
		return &WrongTurnError{Moving: player.Color, ToMove: side}
	}

	if move.Kind == MoveKindPromotion {
		if err := g.promotePawn(g.analysis.PromotedPawn, move.Choice); err != nil {
			return err
		}
		g.publisher.Publish(PromotionCompleted{Move: move})
		return nil
	}

	if _, err := g.board.Move(move.From, move.To); err != nil {
		return err
	}
	if move.Kind == MoveKindEnPassant {
		g.board.Remove(move.Captured)
	}
	if move.Kind == MoveKindCastling {
		if _, err := g.board.Move(move.RookFrom, move.RookTo); err != nil {
			return err
		}
	}
	g.updateCastlingRights(move)
	g.moveCount++
	g.publisher.Publish(MoveApplied{Player: player, Move: move})

	return g.refreshAnalysis(move)
}

// PromotePawn swaps the pawn for the chosen piece kind in place and rebuilds
// the analysis. Choice is Q, R, B or K (knight), defaulting to queen when
// empty; anything else fails with *InvalidPromotionError and leaves the game
// unchanged.
func (g *Game) PromotePawn(pawn *Piece, choice string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if err := g.promotePawn(pawn, choice); err != nil {
		return err
	}
	g.publisher.Publish(PromotionCompleted{Move: NewPawnPromotion(pawn.Pos, pawn.Color, choice)})
	return nil
}

func (g *Game) promotePawn(pawn *Piece, choice string) error {
	if pawn == nil {
		return errors.New("no pawn awaiting promotion")
	}
	if choice == "" {
		choice = "Q"
	}
	c, ok := normalizePromotionChoice(choice)
	if !ok {
		return &InvalidPromotionError{Choice: choice}
	}
	g.board.Remove(pawn.Pos)
	g.board.Place(NewPiece(promotionKinds[c], pawn.Color, pawn.Pos))
	return g.refreshAnalysis(nil)
}

// updateCastlingRights flips the has-moved flags when a castling-relevant
// square is vacated, and when a rook's corner is captured onto.
func (g *Game) updateCastlingRights(move *Move) {
	flip := func(sq Square) {
		switch sq.Label() {
		case "e1":
			g.rights.WhiteKingMoved = true
		case "a1":
			g.rights.WhiteQueenRookMoved = true
		case "h1":
			g.rights.WhiteKingRookMoved = true
		case "e8":
			g.rights.BlackKingMoved = true
		case "a8":
			g.rights.BlackQueenRookMoved = true
		case "h8":
			g.rights.BlackKingRookMoved = true
		}
	}
	flip(move.From)
	flip(move.To)
}

// refreshAnalysis rebuilds the snapshot after a board change and publishes
// what it finds. Event priority follows the analysis: promotion first (the
// move is not over until the pawn is replaced), then checkmate, check, and
// the two stalemate rules.
func (g *Game) refreshAnalysis(lastMove *Move) error {
	analysis, err := AnalyzeBoard(g.board, lastMove, g.rights)
	if err != nil {
		// Unrecoverable for this game instance.
		g.setStatus(StatusGameOver)
		return err
	}
	g.analysis = analysis

	if analysis.PromotedPawn != nil {
		g.publisher.Publish(PromotionRequired{Pawn: analysis.PromotedPawn})
		g.setStatus(StatusInProgress)
		return nil
	}

	gameOver := false
	switch {
	case analysis.WhiteCheckmate:
		g.publisher.Publish(Checkmate{Color: White})
		gameOver = true
	case analysis.BlackCheckmate:
		g.publisher.Publish(Checkmate{Color: Black})
		gameOver = true
	case analysis.WhiteInCheck:
		g.publisher.Publish(Check{Color: White})
	case analysis.BlackInCheck:
		g.publisher.Publish(Check{Color: Black})
	default:
		side := g.sideToMove()
		if len(AllowedMoves(analysis.AvailableMoves(side))) == 0 {
			g.publisher.Publish(Stalemate{Reason: side.String() + " cannot move"})
			gameOver = true
		} else if analysis.MaterialDraw {
			g.publisher.Publish(Stalemate{Reason: "too few pieces to win"})
			gameOver = true
		}
	}

	if gameOver {
		g.setStatus(StatusGameOver)
	} else {
		g.setStatus(StatusInProgress)
	}
	return nil
}

func (g *Game) setStatus(status Status) {
	if status != g.status {
		g.status = status
		g.publisher.Publish(StatusChanged{Status: status})
	}
}

// StateSnapshot is the serializable view of a game handed to front ends.
type StateSnapshot struct {
	Board            [boardSize][boardSize]*Piece `json:"board"`
	ToMove           Color                        `json:"toMove"`
	Status           string                       `json:"status"`
	MoveCount        int                          `json:"moveCount"`
	WhiteInCheck     bool                         `json:"whiteInCheck"`
	BlackInCheck     bool                         `json:"blackInCheck"`
	PendingPromotion *Piece                       `json:"pendingPromotion"`
	Winner           *Color                       `json:"winner"`
	Draw             bool                         `json:"draw"`
	White            *Player                      `json:"white"`
	Black            *Player                      `json:"black"`
}

// Snapshot captures the current state for serialization.
func (g *Game) Snapshot() StateSnapshot {
	g.mu.Lock()
	defer g.mu.Unlock()

	snap := StateSnapshot{
		Board:            g.board.Grid(),
		ToMove:           g.sideToMove(),
		Status:           g.status.String(),
		MoveCount:        g.moveCount,
		WhiteInCheck:     g.analysis.WhiteInCheck,
		BlackInCheck:     g.analysis.BlackInCheck,
		PendingPromotion: g.analysis.PromotedPawn,
		White:            g.white,
		Black:            g.black,
	}
	if g.status == StatusGameOver {
		switch {
		case g.analysis.WhiteCheckmate:
			winner := Black
			snap.Winner = &winner
		case g.analysis.BlackCheckmate:
			winner := White
			snap.Winner = &winner
		default:
			snap.Draw = true
		}
	}
	return snap
}
