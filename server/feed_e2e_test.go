// File: server/feed_e2e_test.go
package server

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/lguibr/duopong/bollywood"
	"github.com/lguibr/duopong/game"
	"github.com/lguibr/duopong/utils"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/websocket"
)

// A spectator sees every frame in order and a score update right after the
// frame of the scoring tick.
func TestSpectatorFeedEndToEnd(t *testing.T) {
	sim, err := game.NewSimulation(utils.DefaultConfig(), utils.NewRandomSource(21))
	require.NoError(t, err)
	ball := sim.World().Ball
	ball.Position = utils.Vec2{X: -450, Y: 200}
	ball.Velocity = utils.Vec2{X: -5}

	engine := bollywood.NewEngine(zerolog.Nop())
	defer engine.Shutdown(time.Second)

	matchPID := engine.Spawn(bollywood.NewProps(game.NewMatchActorProducer(sim, game.MatchOptions{MatchID: "e2e", Log: zerolog.Nop()})))
	broadcasterPID := engine.Spawn(bollywood.NewProps(game.NewBroadcasterProducer(matchPID, 0, zerolog.Nop())))
	srv := New(engine, matchPID, broadcasterPID, "e2e", zerolog.Nop())

	httpServer := httptest.NewServer(srv.Router())
	defer httpServer.Close()

	ws, err := websocket.Dial("ws"+strings.TrimPrefix(httpServer.URL, "http")+"/subscribe", "", "http://localhost/")
	require.NoError(t, err)
	defer ws.Close()

	require.Eventually(t, func() bool {
		reply, err := engine.Ask(broadcasterPID, game.GetClientCountRequest{}, time.Second)
		return err == nil && reply.(int) == 1
	}, 2*time.Second, 10*time.Millisecond)

	const ticks = 20
	for i := 0; i < ticks; i++ {
		engine.Send(matchPID, game.AdvanceTick{}, nil)
	}

	require.NoError(t, ws.SetReadDeadline(time.Now().Add(3*time.Second)))
	var (
		lastTick uint64
		lastMsg  interface{}
		update   *game.ScoreUpdate
	)
	for lastTick < ticks {
		var raw string
		require.NoError(t, websocket.Message.Receive(ws, &raw))
		decoded, err := game.DecodeSpectatorMessage([]byte(raw))
		require.NoError(t, err)

		switch msg := decoded.(type) {
		case game.SpectatorFrame:
			assert.Equal(t, lastTick+1, msg.Snapshot.Tick, "frames arrive in tick order")
			lastTick = msg.Snapshot.Tick
		case game.ScoreUpdate:
			require.Nil(t, update, "one point only")
			frame, ok := lastMsg.(game.SpectatorFrame)
			require.True(t, ok, "score update follows a frame")
			assert.Equal(t, msg.Event.Tick, frame.Snapshot.Tick)
			assert.Equal(t, game.Score{Right: 1}, frame.Snapshot.Score)
			update = &msg
		}
		lastMsg = decoded
	}

	require.NotNil(t, update, "the ball crossed the left end wall")
	assert.Equal(t, "e2e", update.MatchID)
	assert.Equal(t, game.SideRight, update.Event.Scorer)
	assert.Equal(t, game.SideLeft, update.Event.Conceder)

	reply, err := engine.Ask(matchPID, game.GetScoreRequest{}, time.Second)
	require.NoError(t, err)
	assert.Equal(t, game.Score{Right: 1}, reply)
}
