package ws

import (
	"encoding/json"
	"testing"
)

func TestEnvelope(t *testing.T) {
	msg, err := Envelope(MessageTypeEvent, EventPayload{Kind: "check", Event: map[string]string{"color": "white"}})
	if err != nil {
		t.Fatalf("Envelope failed: %v", err)
	}
	if msg.Type != MessageTypeEvent {
		t.Errorf("Type = %q; want %q", msg.Type, MessageTypeEvent)
	}

	var payload EventPayload
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		t.Fatalf("payload did not round-trip: %v", err)
	}
	if payload.Kind != "check" {
		t.Errorf("Kind = %q; want \"check\"", payload.Kind)
	}
}

func TestMessageWireFormat(t *testing.T) {
	raw := []byte(`{"type":"move","payload":{"from":"e2","to":"e4"}}`)
	var msg Message
	if err := json.Unmarshal(raw, &msg); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if msg.Type != MessageTypeMove {
		t.Errorf("Type = %q; want %q", msg.Type, MessageTypeMove)
	}
	var body struct {
		From string `json:"from"`
		To   string `json:"to"`
	}
	if err := json.Unmarshal(msg.Payload, &body); err != nil {
		t.Fatalf("payload unmarshal failed: %v", err)
	}
	if body.From != "e2" || body.To != "e4" {
		t.Errorf("payload = %+v; want e2/e4", body)
	}
}
