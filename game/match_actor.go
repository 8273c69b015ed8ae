// File: game/match_actor.go
package game

import (
	"time"

	"github.com/lguibr/duopong/bollywood"
	"github.com/rs/zerolog"
)

// MatchOptions configures a MatchActor.
type MatchOptions struct {
	MatchID string
	// AutoTick starts a ticker at the simulation's TickPeriod on Started.
	AutoTick bool
	Log      zerolog.Logger
}

// MatchActor owns one Simulation. Every access to it happens inside Receive,
// so the simulation stays single-threaded while the rest of the process is not.
type MatchActor struct {
	sim          *Simulation
	opts         MatchOptions
	keys         InputFrame
	paused       bool
	observers    map[string]*bollywood.PID
	ticker       *time.Ticker
	stopTickerCh chan struct{}
	tickerDone   bool
	selfPID      *bollywood.PID
	log          zerolog.Logger
}

// NewMatchActorProducer creates a producer for a MatchActor driving sim.
// sim must not be used by the caller after the actor is spawned.
func NewMatchActorProducer(sim *Simulation, opts MatchOptions) bollywood.Producer {
	return func() bollywood.Actor {
		return &MatchActor{
			sim:          sim,
			opts:         opts,
			observers:    make(map[string]*bollywood.PID),
			stopTickerCh: make(chan struct{}),
			log:          opts.Log.With().Str("match", opts.MatchID).Logger(),
		}
	}
}

// Receive is the main message handler for the MatchActor.
func (a *MatchActor) Receive(ctx bollywood.Context) {
	if a.selfPID == nil {
		a.selfPID = ctx.Self()
	}

	switch msg := ctx.Message().(type) {
	case bollywood.Started:
		a.log.Info().Str("pid", a.selfPID.String()).Bool("autoTick", a.opts.AutoTick).Msg("MatchActor: started")
		if a.opts.AutoTick {
			a.ticker = time.NewTicker(a.sim.Config().TickPeriod)
			go runTickerLoop(ctx.Engine(), a.selfPID, a.ticker.C, a.stopTickerCh)
		}

	case AdvanceTick:
		a.advance(ctx)

	case KeyStateMessage:
		a.keys = a.keys.With(msg.Side, msg.State)

	case PauseToggle:
		a.paused = !a.paused
		a.log.Info().Bool("paused", a.paused).Msg("MatchActor: pause toggled")

	case GetSnapshotRequest:
		ctx.Reply(a.sim.Snapshot())

	case GetScoreRequest:
		ctx.Reply(a.sim.Score())

	case AddObserver:
		if msg.PID != nil {
			a.observers[msg.PID.ID] = msg.PID
		}

	case RemoveObserver:
		if msg.PID != nil {
			delete(a.observers, msg.PID.ID)
		}

	case bollywood.Stopping:
		a.stopTicker()
		a.log.Info().Interface("score", a.sim.Score()).Uint64("tick", a.sim.Tick()).Msg("MatchActor: stopping")

	case bollywood.Stopped:

	default:
		a.log.Warn().Str("type", typeName(msg)).Msg("MatchActor: unknown message")
	}
}

// advance steps the simulation unless paused and publishes the frame.
func (a *MatchActor) advance(ctx bollywood.Context) {
	var result TickResult
	if a.paused {
		result = TickResult{Tick: a.sim.Tick()}
	} else {
		result = a.sim.Step(a.keys)
	}

	if result.Score != nil {
		a.log.Info().
			Stringer("scorer", result.Score.Scorer).
			Int("left", result.Score.Score.Left).
			Int("right", result.Score.Score.Right).
			Int("round", result.Score.Round).
			Msg("MatchActor: point scored")
	}

	if len(a.observers) == 0 {
		return
	}
	frame := FrameMessage{
		MatchID:  a.opts.MatchID,
		Paused:   a.paused,
		Result:   result,
		Snapshot: a.sim.Snapshot(),
	}
	for _, pid := range a.observers {
		ctx.Engine().Send(pid, frame, a.selfPID)
	}
}

// runTickerLoop owns its channels; it never touches actor state.
func runTickerLoop(engine *bollywood.Engine, self *bollywood.PID, ticks <-chan time.Time, stop <-chan struct{}) {
	for {
		select {
		case <-stop:
			return
		case <-ticks:
			engine.Send(self, AdvanceTick{}, nil)
		}
	}
}

func (a *MatchActor) stopTicker() {
	if a.ticker == nil || a.tickerDone {
		return
	}
	a.ticker.Stop()
	close(a.stopTickerCh)
	a.tickerDone = true
}
