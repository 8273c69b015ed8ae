package game

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/lguibr/duopong/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeSpectatorMessage(t *testing.T) {
	sim, err := NewSimulation(utils.DefaultConfig(), utils.NewRandomSource(5))
	require.NoError(t, err)
	result := sim.Step(InputFrame{})

	t.Run("frame", func(t *testing.T) {
		wire := NewSpectatorFrame(FrameMessage{MatchID: "m", Paused: true, Result: result, Snapshot: sim.Snapshot()})
		data, err := json.Marshal(wire)
		require.NoError(t, err)
		assert.Contains(t, string(data), `"messageType":"frame"`)

		decoded, err := DecodeSpectatorMessage(data)
		require.NoError(t, err)
		frame, ok := decoded.(SpectatorFrame)
		require.True(t, ok, "decoded %T", decoded)
		assert.Equal(t, "m", frame.MatchID)
		assert.True(t, frame.Paused)
		assert.Equal(t, sim.Snapshot(), frame.Snapshot)
	})

	t.Run("score update", func(t *testing.T) {
		update := ScoreUpdate{
			MessageType: MessageTypeScoreUpdate,
			MatchID:     "m",
			Event:       ScoreEvent{Scorer: SideLeft, Conceder: SideRight, Score: Score{Left: 3, Right: 1}, Round: 4},
		}
		data, err := json.Marshal(update)
		require.NoError(t, err)

		decoded, err := DecodeSpectatorMessage(data)
		require.NoError(t, err)
		got, ok := decoded.(ScoreUpdate)
		require.True(t, ok, "decoded %T", decoded)
		assert.Equal(t, SideLeft, got.Event.Scorer)
		assert.Equal(t, Score{Left: 3, Right: 1}, got.Event.Score)
	})

	t.Run("unknown type", func(t *testing.T) {
		_, err := DecodeSpectatorMessage([]byte(`{"messageType":"chat"}`))
		assert.True(t, errors.Is(err, ErrUnknownMessageType))
	})

	t.Run("not json", func(t *testing.T) {
		_, err := DecodeSpectatorMessage([]byte(`<html>`))
		assert.Error(t, err)
	})
}
