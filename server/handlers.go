// File: server/handlers.go
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"runtime/debug"

	"github.com/lguibr/duopong/bollywood"
	"github.com/lguibr/duopong/game"
	"golang.org/x/net/websocket"
)

type healthResponse struct {
	Status  string `json:"status"`
	MatchID string `json:"matchId"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// HandleHealth reports liveness and whether the match actor is still running.
func (s *Server) HandleHealth() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := "ok"
		code := http.StatusOK
		if !s.engine.Running(s.matchPID) {
			status = "match stopped"
			code = http.StatusServiceUnavailable
		}
		s.writeJSON(w, code, healthResponse{Status: status, MatchID: s.matchID})
	}
}

// HandleGetState returns the current match Snapshot.
func (s *Server) HandleGetState() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		reply, err := s.engine.Ask(s.matchPID, game.GetSnapshotRequest{}, s.askTimeout)
		if err != nil {
			s.writeAskError(w, err)
			return
		}
		snapshot, ok := reply.(game.Snapshot)
		if !ok {
			s.log.Error().Str("type", typeName(reply)).Msg("HandleGetState: unexpected reply")
			s.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "unexpected reply from match"})
			return
		}
		s.writeJSON(w, http.StatusOK, snapshot)
	}
}

// HandleGetScore returns the current Score.
func (s *Server) HandleGetScore() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		reply, err := s.engine.Ask(s.matchPID, game.GetScoreRequest{}, s.askTimeout)
		if err != nil {
			s.writeAskError(w, err)
			return
		}
		score, ok := reply.(game.Score)
		if !ok {
			s.log.Error().Str("type", typeName(reply)).Msg("HandleGetScore: unexpected reply")
			s.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "unexpected reply from match"})
			return
		}
		s.writeJSON(w, http.StatusOK, score)
	}
}

// HandleSubscribe registers the connection with the broadcaster and blocks
// until the spectator goes away. Anything the spectator sends is discarded.
func (s *Server) HandleSubscribe() func(ws *websocket.Conn) {
	return func(ws *websocket.Conn) {
		remote := "unknown"
		if ws.Request() != nil {
			remote = ws.Request().RemoteAddr
		}

		defer func() {
			if r := recover(); r != nil {
				s.log.Error().Str("remote", remote).Interface("panic", r).Bytes("stack", debug.Stack()).Msg("HandleSubscribe: panic recovered")
			}
			_ = ws.Close()
		}()

		if s.engine == nil || !s.engine.Running(s.broadcasterPID) {
			s.log.Warn().Str("remote", remote).Msg("HandleSubscribe: broadcaster not running, closing connection")
			return
		}

		s.engine.Send(s.broadcasterPID, game.AddClient{Conn: ws}, nil)
		s.readLoop(ws, remote)
		s.engine.Send(s.broadcasterPID, game.RemoveClient{Conn: ws}, nil)
	}
}

// readLoop drains the connection until it fails.
func (s *Server) readLoop(ws *websocket.Conn, remote string) {
	for {
		var discarded string
		if err := websocket.Message.Receive(ws, &discarded); err != nil {
			if !errors.Is(err, io.EOF) {
				s.log.Debug().Err(err).Str("remote", remote).Msg("readLoop: spectator connection ended")
			}
			return
		}
	}
}

func (s *Server) writeAskError(w http.ResponseWriter, err error) {
	code := http.StatusInternalServerError
	switch {
	case errors.Is(err, bollywood.ErrTimeout):
		code = http.StatusGatewayTimeout
	case errors.Is(err, bollywood.ErrActorNotFound), errors.Is(err, bollywood.ErrEngineStopping):
		code = http.StatusServiceUnavailable
	}
	s.log.Warn().Err(err).Int("status", code).Msg("Server: match query failed")
	s.writeJSON(w, code, errorResponse{Error: err.Error()})
}

func (s *Server) writeJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.log.Error().Err(err).Msg("Server: failed to write response")
	}
}

func typeName(v interface{}) string {
	return fmt.Sprintf("%T", v)
}
