package broadcast

import "time"

// MessageTypeView carries a full display View.
const MessageTypeView = "view"

// Message is the envelope written to every display socket.
type Message struct {
	Type      string    `json:"type"`
	Payload   any       `json:"payload"`
	Timestamp time.Time `json:"timestamp"`
}
