package bollywood

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

var (
	// ErrTimeout is returned by Ask when no reply arrives in time.
	ErrTimeout = errors.New("bollywood: ask timed out")
	// ErrActorNotFound is returned by Ask when the target is not running.
	ErrActorNotFound = errors.New("bollywood: actor not found")
	// ErrEngineStopping is returned by Ask once Shutdown has begun.
	ErrEngineStopping = errors.New("bollywood: engine is stopping")
)

// Engine manages the lifecycle and message dispatching for actors.
type Engine struct {
	pidCounter uint64
	actors     map[string]*process
	mu         sync.RWMutex // Protects the actors map
	stopping   atomic.Bool
	log        zerolog.Logger
}

// NewEngine creates a new actor engine logging through log.
func NewEngine(log zerolog.Logger) *Engine {
	return &Engine{
		actors: make(map[string]*process),
		log:    log,
	}
}

func (e *Engine) nextPID() *PID {
	id := atomic.AddUint64(&e.pidCounter, 1)
	return &PID{ID: fmt.Sprintf("actor-%d", id)}
}

// Spawn starts a new actor and returns its PID, or nil once the engine is stopping.
func (e *Engine) Spawn(props *Props) *PID {
	if e.stopping.Load() {
		e.log.Warn().Msg("Engine: stopping, cannot spawn new actors")
		return nil
	}

	pid := e.nextPID()
	proc := newProcess(e, pid, props)

	e.mu.Lock()
	e.actors[pid.ID] = proc
	e.mu.Unlock()

	go proc.run()
	e.Send(pid, Started{}, nil)
	return pid
}

// Send delivers a message to the actor identified by pid. Messages to unknown
// actors are dropped.
func (e *Engine) Send(pid *PID, message interface{}, sender *PID) {
	if pid == nil {
		return
	}
	if e.stopping.Load() && !isSystemMessage(message) {
		return
	}

	proc, ok := e.lookup(pid)
	if ok {
		proc.sendMessage(message, sender)
	}
}

// Ask sends message to pid and waits up to timeout for the first reply.
func (e *Engine) Ask(pid *PID, message interface{}, timeout time.Duration) (interface{}, error) {
	if e.stopping.Load() {
		return nil, ErrEngineStopping
	}
	if _, ok := e.lookup(pid); !ok {
		return nil, fmt.Errorf("%w: %s", ErrActorNotFound, pid)
	}

	replies := make(chan interface{}, 1)
	future := e.Spawn(NewProps(func() Actor {
		return ActorFunc(func(ctx Context) {
			if isSystemMessage(ctx.Message()) {
				return
			}
			select {
			case replies <- ctx.Message():
			default:
			}
		})
	}).WithMailboxSize(4))
	if future == nil {
		return nil, ErrEngineStopping
	}
	defer e.Stop(future)

	e.Send(pid, message, future)

	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case reply := <-replies:
		return reply, nil
	case <-timer.C:
		return nil, fmt.Errorf("%w after %v waiting on %s", ErrTimeout, timeout, pid)
	}
}

// Stop asks an actor to shut down. The Stopping message lets it clean up; the
// stop channel guarantees termination even when its mailbox is full.
func (e *Engine) Stop(pid *PID) {
	proc, ok := e.lookup(pid)
	if !ok {
		return
	}
	e.Send(pid, Stopping{}, nil)
	proc.closeStop()
}

// Running reports whether pid is still registered.
func (e *Engine) Running(pid *PID) bool {
	_, ok := e.lookup(pid)
	return ok
}

func (e *Engine) lookup(pid *PID) (*process, bool) {
	if pid == nil {
		return nil, false
	}
	e.mu.RLock()
	proc, ok := e.actors[pid.ID]
	e.mu.RUnlock()
	return proc, ok
}

func (e *Engine) remove(pid *PID) {
	e.mu.Lock()
	delete(e.actors, pid.ID)
	e.mu.Unlock()
}

// Shutdown stops all actors and waits up to timeout for them to exit.
func (e *Engine) Shutdown(timeout time.Duration) {
	if !e.stopping.CompareAndSwap(false, true) {
		e.log.Warn().Msg("Engine: already shutting down")
		return
	}

	e.mu.RLock()
	pidsToStop := make([]*PID, 0, len(e.actors))
	for _, proc := range e.actors {
		pidsToStop = append(pidsToStop, proc.pid)
	}
	e.mu.RUnlock()

	e.log.Info().Int("actors", len(pidsToStop)).Msg("Engine: shutdown initiated")
	for _, pid := range pidsToStop {
		e.Stop(pid)
	}

	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		e.mu.RLock()
		remaining := len(e.actors)
		e.mu.RUnlock()
		if remaining == 0 {
			e.log.Info().Msg("Engine: all actors stopped")
			return
		}
		time.Sleep(10 * time.Millisecond)
	}

	e.mu.Lock()
	remaining := make([]string, 0, len(e.actors))
	for id := range e.actors {
		remaining = append(remaining, id)
	}
	e.actors = make(map[string]*process)
	e.mu.Unlock()
	e.log.Warn().Strs("remaining", remaining).Msg("Engine: shutdown timeout, actors did not stop gracefully")
}
