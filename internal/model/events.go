package model

// EventKind names each event variant for subscribers that route on it (and for
// the wire, where events travel tagged by kind).
type EventKind string

const (
	EventSquareChanged      EventKind = "squareChanged"
	EventBoardReset         EventKind = "boardReset"
	EventMoveApplied        EventKind = "moveApplied"
	EventCheck              EventKind = "check"
	EventCheckmate          EventKind = "checkmate"
	EventStalemate          EventKind = "stalemate"
	EventPromotionRequired  EventKind = "promotionRequired"
	EventPromotionCompleted EventKind = "promotionCompleted"
	EventStatusChanged      EventKind = "statusChanged"
)

// Event is the closed set of notifications the core publishes. Delivery is a
// synchronous fan-out: every subscriber runs in-process before the triggering
// call returns, so subscribers must not block.
type Event interface {
	EventKind() EventKind
}

// SquareChanged reports a single cell's new content. Piece is nil when the
// cell was cleared.
type SquareChanged struct {
	Row   int    `json:"row"`
	Col   int    `json:"col"`
	Piece *Piece `json:"piece"`
}

func (SquareChanged) EventKind() EventKind { return EventSquareChanged }

// BoardReset reports that the whole board changed at once.
type BoardReset struct{}

func (BoardReset) EventKind() EventKind { return EventBoardReset }

// MoveApplied reports a validated move committed to the game board.
type MoveApplied struct {
	Player *Player `json:"player"`
	Move   *Move   `json:"move"`
}

func (MoveApplied) EventKind() EventKind { return EventMoveApplied }

// Check reports that Color's king is in check.
type Check struct {
	Color Color `json:"color"`
}

func (Check) EventKind() EventKind { return EventCheck }

// Checkmate reports that Color has been mated and lost.
type Checkmate struct {
	Color Color `json:"color"`
}

func (Checkmate) EventKind() EventKind { return EventCheckmate }

// Stalemate reports a drawn game.
type Stalemate struct {
	Reason string `json:"reason"`
}

func (Stalemate) EventKind() EventKind { return EventStalemate }

// PromotionRequired reports a pawn that reached its far rank and awaits a
// replacement choice.
type PromotionRequired struct {
	Pawn *Piece `json:"pawn"`
}

func (PromotionRequired) EventKind() EventKind { return EventPromotionRequired }

// PromotionCompleted reports a finished promotion.
type PromotionCompleted struct {
	Move *Move `json:"move"`
}

func (PromotionCompleted) EventKind() EventKind { return EventPromotionCompleted }

// StatusChanged reports a game status transition.
type StatusChanged struct {
	Status Status `json:"status"`
}

func (StatusChanged) EventKind() EventKind { return EventStatusChanged }

// Subscriber receives published events.
type Subscriber func(Event)

// Publisher is a synchronous fan-out of core events to registered
// subscribers.
type Publisher struct {
	subscribers []Subscriber
}

func NewPublisher() *Publisher {
	return &Publisher{}
}

// Subscribe registers fn for all future events.
func (p *Publisher) Subscribe(fn Subscriber) {
	p.subscribers = append(p.subscribers, fn)
}

// Publish delivers ev to every subscriber, in registration order, before
// returning.
func (p *Publisher) Publish(ev Event) {
	for _, fn := range p.subscribers {
		fn(ev)
	}
}
