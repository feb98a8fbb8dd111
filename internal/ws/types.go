package ws

import (
	"encoding/json"
)

// MessageType represents the different kinds of messages our system can handle
type MessageType string

const (
	MessageTypeMove      MessageType = "move"
	MessageTypeGameState MessageType = "gameState"
	MessageTypeEvent     MessageType = "event"
	MessageTypeError     MessageType = "error"
)

// Message represents a WebSocket message in our system
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// EventPayload wraps a core event for the wire, tagged with its kind so
// clients can route without inspecting the body.
type EventPayload struct {
	Kind  string      `json:"kind"`
	Event interface{} `json:"event"`
}

// Envelope marshals payload into a Message of the given type.
func Envelope(t MessageType, payload interface{}) (Message, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return Message{}, err
	}
	return Message{Type: t, Payload: data}, nil
}
