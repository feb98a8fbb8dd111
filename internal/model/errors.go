package model

import (
	"errors"
	"fmt"
)

// ErrGameOver is returned when a move is applied to a finished game.
var ErrGameOver = errors.New("game is over")

// ErrInternalConsistency marks positions the analyzer cannot explain: more than
// one promoted pawn at once, or a side with no king. These indicate a bug in the
// engine rather than bad caller input and the game instance should be abandoned.
var ErrInternalConsistency = errors.New("internal consistency fault")

// InvalidCoordinateError reports a malformed or out-of-range square label.
type InvalidCoordinateError struct {
	Label  string
	Reason string
}

func (e *InvalidCoordinateError) Error() string {
	return fmt.Sprintf("invalid square %q: %s", e.Label, e.Reason)
}

// WrongTurnError reports a move attempted by the side not currently to move.
type WrongTurnError struct {
	Moving Color
	ToMove Color
}

func (e *WrongTurnError) Error() string {
	return fmt.Sprintf("wrong player trying to move: next move is %s but %s is moving", e.ToMove, e.Moving)
}

// InvalidPromotionError reports an unrecognized promotion piece choice.
type InvalidPromotionError struct {
	Choice string
}

func (e *InvalidPromotionError) Error() string {
	return fmt.Sprintf("invalid promotion choice %q: valid choices are Q, R, B and K", e.Choice)
}
