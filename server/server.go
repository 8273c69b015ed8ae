// File: server/server.go
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/lguibr/duopong/bollywood"
	"github.com/rs/zerolog"
	"golang.org/x/net/websocket"
)

const (
	defaultAskTimeout   = 500 * time.Millisecond
	readHeaderTimeout   = 5 * time.Second
	shutdownGracePeriod = 2 * time.Second
)

// Server exposes a running match to read-only spectators over HTTP and WebSocket.
type Server struct {
	engine         *bollywood.Engine
	matchPID       *bollywood.PID
	broadcasterPID *bollywood.PID
	matchID        string
	askTimeout     time.Duration
	log            zerolog.Logger
	httpServer     *http.Server
}

// New creates a Server for the match behind matchPID. broadcasterPID receives
// every spectator connection. An empty matchID gets a fresh UUID.
func New(engine *bollywood.Engine, matchPID, broadcasterPID *bollywood.PID, matchID string, log zerolog.Logger) *Server {
	if matchID == "" {
		matchID = NewMatchID()
	}
	return &Server{
		engine:         engine,
		matchPID:       matchPID,
		broadcasterPID: broadcasterPID,
		matchID:        matchID,
		askTimeout:     defaultAskTimeout,
		log:            log,
	}
}

// NewMatchID returns a random match identifier.
func NewMatchID() string {
	return uuid.NewString()
}

// MatchID returns the identifier reported to spectators.
func (s *Server) MatchID() string { return s.matchID }

// Router builds the HTTP routes.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/health", s.HandleHealth()).Methods(http.MethodGet)
	r.HandleFunc("/state", s.HandleGetState()).Methods(http.MethodGet)
	r.HandleFunc("/score", s.HandleGetScore()).Methods(http.MethodGet)
	r.Handle("/subscribe", websocket.Handler(s.HandleSubscribe()))
	return r
}

// ListenAndServe serves the router on addr until ctx is cancelled, then shuts
// the listener down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", addr).Str("match", s.matchID).Msg("Server: spectator feed listening")
		errCh <- s.httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGracePeriod)
		defer cancel()
		s.log.Info().Msg("Server: shutting down")
		return s.httpServer.Shutdown(shutdownCtx)
	}
}
