// Package notify pushes "model changed" events to view clients over
// websocket and relays the operations they submit back to the editor.
package notify

import "encoding/json"

type Message struct {
	Type     string          `json:"type"`
	ClientID string          `json:"clientId,omitempty"`
	Version  uint64          `json:"version,omitempty"`
	Payload  json.RawMessage `json:"payload,omitempty"`
}

const (
	// Connection
	TypeWelcome = "welcome"
	TypeError   = "error"

	// Server to client
	TypeModelChanged = "model.changed"

	// Client to server: Payload carries one editor operation.
	TypeOpSubmit = "op.submit"
	TypeOpAck    = "op.ack"
	TypeOpNack   = "op.nack"
)

type ErrorPayload struct {
	Reason string `json:"reason"`
}
