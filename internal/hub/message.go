package hub

import (
	"time"

	"github.com/soar/mapview/internal/controller"
	"github.com/soar/mapview/internal/session"
)

// WSMessage represents a WebSocket message sent from server to client.
type WSMessage struct {
	Type      string               `json:"type"`              // Message type: "full", "delta", "state", "frame", "error"
	Seq       int64                `json:"seq"`               // Sequence number for ordering
	Timestamp int64                `json:"timestamp"`         // Unix timestamp in milliseconds
	Frame     string               `json:"frame,omitempty"`   // SVG document for "full" and "frame"
	State     *session.Snapshot    `json:"state,omitempty"`   // Session state for "full", "delta" and "state"
	Changes   *controller.MapDelta `json:"changes,omitempty"` // Changed bindings for type "delta"
	Error     string               `json:"error,omitempty"`
}

// NewFullMessage creates a "full" type message with the complete state and the current frame.
func NewFullMessage(seq int64, state *session.Snapshot, frame []byte) *WSMessage {
	return &WSMessage{
		Type:      "full",
		Seq:       seq,
		Timestamp: time.Now().UnixMilli(),
		Frame:     string(frame),
		State:     state,
	}
}

// NewDeltaMessage creates a "delta" type message for a preset change. Bindings are left
// out of the state; Changes carries them.
func NewDeltaMessage(seq int64, state *session.Snapshot, changes *controller.MapDelta) *WSMessage {
	return &WSMessage{
		Type:      "delta",
		Seq:       seq,
		Timestamp: time.Now().UnixMilli(),
		State:     withoutBindings(state),
		Changes:   changes,
	}
}

// NewStateMessage creates a "state" type message for view/page/selection changes.
func NewStateMessage(seq int64, state *session.Snapshot) *WSMessage {
	return &WSMessage{
		Type:      "state",
		Seq:       seq,
		Timestamp: time.Now().UnixMilli(),
		State:     withoutBindings(state),
	}
}

// NewFrameMessage creates a "frame" type message carrying a rendered SVG frame.
func NewFrameMessage(seq int64, frame []byte) *WSMessage {
	return &WSMessage{
		Type:      "frame",
		Seq:       seq,
		Timestamp: time.Now().UnixMilli(),
		Frame:     string(frame),
	}
}

// NewErrorMessage reports a rejected client command.
func NewErrorMessage(err error) *WSMessage {
	return &WSMessage{
		Type:      "error",
		Timestamp: time.Now().UnixMilli(),
		Error:     err.Error(),
	}
}

func withoutBindings(state *session.Snapshot) *session.Snapshot {
	if state == nil {
		return nil
	}
	s := *state
	s.Bindings = nil
	return &s
}

// ClientMessage represents a message sent from the client to the server.
// Type "command" applies the embedded command; "sync" requests a full message.
type ClientMessage struct {
	Type string `json:"type"`
	session.Command
}
