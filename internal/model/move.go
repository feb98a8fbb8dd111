package model

import "fmt"

type MoveKind string

const (
	MoveKindNormal    MoveKind = "move"
	MoveKindPromotion MoveKind = "promotion"
	MoveKindEnPassant MoveKind = "enPassant"
	MoveKindCastling  MoveKind = "castling"
)

// Move records a single candidate move for one side. A move that is
// geometrically possible but rules-illegal (it would leave the mover's own
// king in check) is not an error: it stays in the move list with Disallowed
// set and a human-readable Warning, so front ends can tell "against the rules"
// apart from "malformed input".
type Move struct {
	Kind        MoveKind `json:"kind"`
	From        Square   `json:"from"`
	To          Square   `json:"to"`
	Description string   `json:"description"`
	Color       Color    `json:"color"`
	Disallowed  bool     `json:"disallowed"`
	Warning     string   `json:"warning,omitempty"`

	// Choice is the replacement kind for a promotion: Q, R, B or K (knight).
	Choice string `json:"choice,omitempty"`

	// Captured is the square of the pawn an en-passant capture removes. It is
	// not the destination square.
	Captured Square `json:"captured"`

	// RookFrom/RookTo describe the paired rook move of a castling move.
	RookFrom Square `json:"rookFrom"`
	RookTo   Square `json:"rookTo"`

	// Castling rule data: squares between king and rook that must be empty,
	// and squares the king sits on or passes through that must not be under
	// attack.
	mustBeEmpty []Square
	mustBeSafe  []Square

	// preChecked moves bypass the simulate-for-own-check filter because they
	// were derived from an already-validated move.
	preChecked bool
}

func NewMove(from, to Square, description string, color Color) *Move {
	return &Move{Kind: MoveKindNormal, From: from, To: to, Description: description, Color: color}
}

// NewPawnPromotion builds the in-place piece swap move for a pawn on square.
// An unrecognized choice falls back to queen, matching the default the state
// machine applies.
func NewPawnPromotion(square Square, color Color, choice string) *Move {
	c, ok := normalizePromotionChoice(choice)
	if !ok {
		c = "Q"
	}
	return &Move{
		Kind:        MoveKindPromotion,
		From:        square,
		To:          square,
		Description: "Pawn Promotion",
		Color:       color,
		Choice:      c,
	}
}

// NewEnPassant builds the capture synthesized after an opposing pawn's
// two-square advance. It is pre-checked: the advance it derives from already
// passed the legality filter.
func NewEnPassant(from, to Square, color Color, captured Square) *Move {
	return &Move{
		Kind:        MoveKindEnPassant,
		From:        from,
		To:          to,
		Description: "En Passant",
		Color:       color,
		Captured:    captured,
		preChecked:  true,
	}
}

func newCastlingMove(kingFrom, kingTo, rookFrom, rookTo Square, color Color, mustBeEmpty, mustBeSafe []Square, description string) *Move {
	return &Move{
		Kind:        MoveKindCastling,
		From:        kingFrom,
		To:          kingTo,
		Description: description,
		Color:       color,
		RookFrom:    rookFrom,
		RookTo:      rookTo,
		mustBeEmpty: mustBeEmpty,
		mustBeSafe:  mustBeSafe,
	}
}

// PreChecked reports whether the move is exempt from the own-king-safety
// simulation.
func (m *Move) PreChecked() bool {
	return m.preChecked
}

// Disallow marks the move rules-illegal with an explanation.
func (m *Move) Disallow(warning string) {
	m.Disallowed = true
	m.Warning = warning
}

// Matches reports whether the move goes from from to to.
func (m *Move) Matches(from, to Square) bool {
	return m.From == from && m.To == to
}

func (m *Move) String() string {
	if m.Kind == MoveKindPromotion {
		return fmt.Sprintf("%s: %s promoted to %s", m.Description, m.From.Label(), promotionKinds[m.Choice].Description())
	}
	if m.Kind == MoveKindEnPassant {
		return fmt.Sprintf("%s: %s->%s (removing piece at %s)", m.Description, m.From.Label(), m.To.Label(), m.Captured.Label())
	}
	return fmt.Sprintf("%s: %s->%s", m.Description, m.From.Label(), m.To.Label())
}

// promotionKinds maps the single-letter promotion codes to piece kinds.
// K stands for knight; there is no N code.
var promotionKinds = map[string]PieceType{
	"Q": Queen,
	"R": Rook,
	"B": Bishop,
	"K": Knight,
}

// ParseMoveText splits a four-character move string such as "e2e4" into its
// from and to squares. Single-character control tokens used by front ends
// never collide with this form.
func ParseMoveText(text string) (from, to Square, err error) {
	if len(text) != 4 {
		return Square{}, Square{}, &InvalidCoordinateError{Label: text, Reason: "a move is two concatenated square labels"}
	}
	if from, err = ParseSquare(text[:2]); err != nil {
		return Square{}, Square{}, err
	}
	if to, err = ParseSquare(text[2:]); err != nil {
		return Square{}, Square{}, err
	}
	return from, to, nil
}

func normalizePromotionChoice(choice string) (string, bool) {
	switch choice {
	case "Q", "q":
		return "Q", true
	case "R", "r":
		return "R", true
	case "B", "b":
		return "B", true
	case "K", "k":
		return "K", true
	}
	return "", false
}
