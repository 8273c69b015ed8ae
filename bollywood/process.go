package bollywood

import (
	"runtime/debug"
	"sync"
	"sync/atomic"
)

const defaultMailboxSize = 1024

// process is the running instance of an actor: its mailbox and goroutine.
type process struct {
	engine   *Engine
	pid      *PID
	actor    Actor
	mailbox  chan *messageEnvelope
	props    *Props
	stopCh   chan struct{}
	stopOnce sync.Once
	stopped  atomic.Bool
}

func newProcess(engine *Engine, pid *PID, props *Props) *process {
	size := props.mailboxSize
	if size <= 0 {
		size = defaultMailboxSize
	}
	return &process{
		engine:  engine,
		pid:     pid,
		props:   props,
		mailbox: make(chan *messageEnvelope, size),
		stopCh:  make(chan struct{}),
	}
}

func (p *process) closeStop() {
	p.stopOnce.Do(func() { close(p.stopCh) })
}

// sendMessage enqueues without blocking; a full mailbox drops the message.
func (p *process) sendMessage(message interface{}, sender *PID) {
	if p.stopped.Load() && !isSystemMessage(message) {
		return
	}

	select {
	case p.mailbox <- &messageEnvelope{Sender: sender, Message: message}:
	default:
		p.engine.log.Warn().Str("pid", p.pid.ID).Str("type", typeName(message)).Msg("Actor: mailbox full, dropping message")
	}
}

// run is the actor goroutine.
func (p *process) run() {
	defer func() {
		p.stopped.Store(true)
		if p.actor != nil {
			p.invokeReceive(Stopped{}, nil)
		}
		p.engine.remove(p.pid)
	}()

	defer func() {
		if r := recover(); r != nil {
			p.engine.log.Error().Str("pid", p.pid.ID).Interface("panic", r).Bytes("stack", debug.Stack()).Msg("Actor: run loop panicked")
			p.stopped.Store(true)
			p.closeStop()
		}
	}()

	p.actor = p.props.Produce()
	if p.actor == nil {
		panic("bollywood: producer returned nil actor for " + p.pid.ID)
	}

	for {
		select {
		case <-p.stopCh:
			if p.stopped.CompareAndSwap(false, true) {
				p.invokeReceive(Stopping{}, nil)
			}
			return

		case envelope := <-p.mailbox:
			switch msg := envelope.Message.(type) {
			case Stopping:
				if p.stopped.CompareAndSwap(false, true) {
					p.invokeReceive(msg, envelope.Sender)
				}
				p.closeStop()
			case Stopped:
				// Delivered by the deferred cleanup only.
			default:
				if p.stopped.Load() {
					continue
				}
				p.invokeReceive(envelope.Message, envelope.Sender)
			}
		}
	}
}

// invokeReceive calls Receive, recovering from panics so one bad message does
// not take the actor down.
func (p *process) invokeReceive(msg interface{}, sender *PID) {
	ctx := &context{
		engine:  p.engine,
		self:    p.pid,
		sender:  sender,
		message: msg,
	}

	defer func() {
		if r := recover(); r != nil {
			p.engine.log.Error().Str("pid", p.pid.ID).Str("type", typeName(msg)).Interface("panic", r).Bytes("stack", debug.Stack()).Msg("Actor: panic during Receive")
		}
	}()
	p.actor.Receive(ctx)
}
