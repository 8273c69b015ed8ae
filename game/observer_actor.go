// File: game/observer_actor.go
package game

import (
	"github.com/lguibr/duopong/bollywood"
)

// ObserverActor forwards match frames to a channel so code outside the actor
// system (the terminal front end, tests) can consume them. Frames are dropped
// while the channel is full; a renderer only ever needs the latest one.
type ObserverActor struct {
	frames   chan<- FrameMessage
	matchPID *bollywood.PID
	selfPID  *bollywood.PID
}

// NewObserverProducer creates a producer for an ObserverActor subscribed to matchPID.
func NewObserverProducer(matchPID *bollywood.PID, frames chan<- FrameMessage) bollywood.Producer {
	return func() bollywood.Actor {
		return &ObserverActor{frames: frames, matchPID: matchPID}
	}
}

// Receive handles messages for the ObserverActor.
func (a *ObserverActor) Receive(ctx bollywood.Context) {
	if a.selfPID == nil {
		a.selfPID = ctx.Self()
	}

	switch msg := ctx.Message().(type) {
	case bollywood.Started:
		ctx.Engine().Send(a.matchPID, AddObserver{PID: a.selfPID}, a.selfPID)
	case FrameMessage:
		select {
		case a.frames <- msg:
		default:
		}
	case bollywood.Stopping:
		ctx.Engine().Send(a.matchPID, RemoveObserver{PID: a.selfPID}, a.selfPID)
	}
}
