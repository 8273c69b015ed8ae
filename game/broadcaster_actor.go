// File: game/broadcaster_actor.go
package game

import (
	"strings"
	"time"

	"github.com/lguibr/duopong/bollywood"
	"github.com/rs/zerolog"
	"golang.org/x/net/websocket"
)

// DefaultSpectatorWriteTimeout bounds a single write to one spectator.
const DefaultSpectatorWriteTimeout = 250 * time.Millisecond

// BroadcasterActor fans match frames out to read-only spectator connections.
// It subscribes itself to the match on Started.
type BroadcasterActor struct {
	clients      map[*websocket.Conn]bool
	selfPID      *bollywood.PID
	matchPID     *bollywood.PID
	writeTimeout time.Duration
	log          zerolog.Logger
}

// NewBroadcasterProducer creates a producer for BroadcasterActor. A spectator
// whose write does not finish within writeTimeout is dropped; zero selects
// DefaultSpectatorWriteTimeout.
func NewBroadcasterProducer(matchPID *bollywood.PID, writeTimeout time.Duration, log zerolog.Logger) bollywood.Producer {
	if writeTimeout == 0 {
		writeTimeout = DefaultSpectatorWriteTimeout
	}
	return func() bollywood.Actor {
		return &BroadcasterActor{
			clients:      make(map[*websocket.Conn]bool),
			matchPID:     matchPID,
			writeTimeout: writeTimeout,
			log:          log,
		}
	}
}

// Receive handles messages for the BroadcasterActor.
func (a *BroadcasterActor) Receive(ctx bollywood.Context) {
	if a.selfPID == nil {
		a.selfPID = ctx.Self()
	}

	switch msg := ctx.Message().(type) {
	case bollywood.Started:
		if a.matchPID != nil {
			ctx.Engine().Send(a.matchPID, AddObserver{PID: a.selfPID}, a.selfPID)
		}

	case AddClient:
		if msg.Conn != nil {
			a.clients[msg.Conn] = true
			a.log.Info().Str("remote", remoteAddr(msg.Conn)).Int("clients", len(a.clients)).Msg("Broadcaster: spectator joined")
		}

	case RemoveClient:
		if msg.Conn != nil && a.clients[msg.Conn] {
			delete(a.clients, msg.Conn)
			a.log.Info().Str("remote", remoteAddr(msg.Conn)).Int("clients", len(a.clients)).Msg("Broadcaster: spectator left")
		}

	case GetClientCountRequest:
		ctx.Reply(len(a.clients))

	case FrameMessage:
		a.broadcast(NewSpectatorFrame(msg))
		if msg.Result.Score != nil {
			a.broadcast(ScoreUpdate{
				MessageType: MessageTypeScoreUpdate,
				MatchID:     msg.MatchID,
				Event:       *msg.Result.Score,
			})
		}

	case bollywood.Stopping:
		if a.matchPID != nil {
			ctx.Engine().Send(a.matchPID, RemoveObserver{PID: a.selfPID}, a.selfPID)
		}
		a.closeAllConnections()

	case bollywood.Stopped:

	default:
		a.log.Warn().Str("type", typeName(msg)).Msg("Broadcaster: unknown message")
	}
}

// broadcast sends payload to every client. Any failed or timed out write
// drops that client.
func (a *BroadcasterActor) broadcast(payload interface{}) {
	if len(a.clients) == 0 {
		return
	}

	var disconnected []*websocket.Conn
	for ws := range a.clients {
		if err := a.send(ws, payload); err != nil {
			if !isClosedConnError(err) {
				a.log.Warn().Err(err).Str("remote", remoteAddr(ws)).Msg("Broadcaster: failed to write to spectator")
			}
			disconnected = append(disconnected, ws)
		}
	}

	for _, ws := range disconnected {
		delete(a.clients, ws)
		_ = ws.Close()
	}
	if len(disconnected) > 0 {
		a.log.Info().Int("dropped", len(disconnected)).Int("clients", len(a.clients)).Msg("Broadcaster: dropped disconnected spectators")
	}
}

func (a *BroadcasterActor) send(ws *websocket.Conn, payload interface{}) error {
	if err := ws.SetWriteDeadline(time.Now().Add(a.writeTimeout)); err != nil {
		return err
	}
	return websocket.JSON.Send(ws, payload)
}

func (a *BroadcasterActor) closeAllConnections() {
	if len(a.clients) > 0 {
		a.log.Info().Int("clients", len(a.clients)).Msg("Broadcaster: closing spectator connections")
	}
	for ws := range a.clients {
		_ = ws.Close()
	}
	a.clients = make(map[*websocket.Conn]bool)
}

func isClosedConnError(err error) bool {
	errStr := err.Error()
	return strings.Contains(errStr, "use of closed network connection") ||
		strings.Contains(errStr, "broken pipe") ||
		strings.Contains(errStr, "connection reset by peer") ||
		strings.Contains(errStr, "EOF") ||
		strings.Contains(errStr, "write: connection timed out")
}

func remoteAddr(ws *websocket.Conn) string {
	if ws == nil || ws.Request() == nil {
		return "unknown"
	}
	return ws.Request().RemoteAddr
}
