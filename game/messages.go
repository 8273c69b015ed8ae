// File: game/messages.go
package game

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/lguibr/duopong/bollywood"
	"golang.org/x/net/websocket"
)

// --- Match actor inputs ---

// KeyStateMessage updates the held key state of one paddle. It stays in effect
// until the next KeyStateMessage for that side.
type KeyStateMessage struct {
	Side  Side
	State KeyState
}

// PauseToggle pauses or resumes ticking.
type PauseToggle struct{}

// AdvanceTick runs one simulation tick. The match ticker sends it to itself;
// matches spawned without AutoTick are driven by sending it explicitly.
type AdvanceTick struct{}

// GetSnapshotRequest asks the match for its current Snapshot (Ask reply: Snapshot).
type GetSnapshotRequest struct{}

// GetScoreRequest asks the match for its Score (Ask reply: Score).
type GetScoreRequest struct{}

// AddObserver subscribes an actor to FrameMessage publications.
type AddObserver struct {
	PID *bollywood.PID
}

// RemoveObserver unsubscribes an actor.
type RemoveObserver struct {
	PID *bollywood.PID
}

// --- Match actor outputs ---

// FrameMessage is published to observers after every tick.
type FrameMessage struct {
	MatchID  string
	Paused   bool
	Result   TickResult
	Snapshot Snapshot
}

// --- Broadcaster inputs ---

// AddClient registers a spectator connection with the broadcaster.
type AddClient struct {
	Conn *websocket.Conn
}

// RemoveClient drops a spectator connection.
type RemoveClient struct {
	Conn *websocket.Conn
}

// GetClientCountRequest asks the broadcaster how many spectators it serves (Ask reply: int).
type GetClientCountRequest struct{}

// --- WebSocket messages (server -> spectator) ---

// MessageHeader identifies a spectator message type before full decoding.
type MessageHeader struct {
	MessageType string `json:"messageType"`
}

// SpectatorFrame carries one tick of match state.
type SpectatorFrame struct {
	MessageType string           `json:"messageType"` // "frame"
	MatchID     string           `json:"matchId"`
	Paused      bool             `json:"paused"`
	Collisions  []CollisionEvent `json:"collisions,omitempty"`
	Snapshot    Snapshot         `json:"snapshot"`
}

// ScoreUpdate announces a point. It follows the frame of the tick it was scored in.
type ScoreUpdate struct {
	MessageType string     `json:"messageType"` // "scoreUpdate"
	MatchID     string     `json:"matchId"`
	Event       ScoreEvent `json:"event"`
}

const (
	MessageTypeFrame       = "frame"
	MessageTypeScoreUpdate = "scoreUpdate"
)

// ErrUnknownMessageType is returned for spectator messages with an unrecognised messageType.
var ErrUnknownMessageType = errors.New("unknown spectator message type")

// NewSpectatorFrame converts a published frame to its wire form.
func NewSpectatorFrame(frame FrameMessage) SpectatorFrame {
	return SpectatorFrame{
		MessageType: MessageTypeFrame,
		MatchID:     frame.MatchID,
		Paused:      frame.Paused,
		Collisions:  frame.Result.Collisions,
		Snapshot:    frame.Snapshot,
	}
}

func typeName(message interface{}) string {
	return fmt.Sprintf("%T", message)
}

// DecodeSpectatorMessage decodes one message of the spectator feed into a
// SpectatorFrame or a ScoreUpdate.
func DecodeSpectatorMessage(data []byte) (interface{}, error) {
	var header MessageHeader
	if err := json.Unmarshal(data, &header); err != nil {
		return nil, fmt.Errorf("decode spectator message header: %w", err)
	}
	switch header.MessageType {
	case MessageTypeFrame:
		var frame SpectatorFrame
		if err := json.Unmarshal(data, &frame); err != nil {
			return nil, fmt.Errorf("decode spectator frame: %w", err)
		}
		return frame, nil
	case MessageTypeScoreUpdate:
		var update ScoreUpdate
		if err := json.Unmarshal(data, &update); err != nil {
			return nil, fmt.Errorf("decode score update: %w", err)
		}
		return update, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownMessageType, header.MessageType)
}
