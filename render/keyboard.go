// File: render/keyboard.go
package render

import (
	"time"
	"unicode"

	"github.com/gdamore/tcell/v2"
	"github.com/lguibr/duopong/game"
)

// ActionKind is what a key event asks the front end to do.
type ActionKind int

const (
	ActionNone ActionKind = iota
	ActionPaddle
	ActionQuit
	ActionPause
	ActionToggleSound
)

// Action is a translated key event. Side and Up are set for ActionPaddle only.
type Action struct {
	Kind ActionKind
	Side game.Side
	Up   bool
}

// TranslateKey maps a key event to an Action.
// Left paddle: w/s. Right paddle: arrow keys or i/k.
func TranslateKey(ev *tcell.EventKey) Action {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return Action{Kind: ActionQuit}
	case tcell.KeyUp:
		return Action{Kind: ActionPaddle, Side: game.SideRight, Up: true}
	case tcell.KeyDown:
		return Action{Kind: ActionPaddle, Side: game.SideRight, Up: false}
	case tcell.KeyRune:
	default:
		return Action{}
	}

	switch unicode.ToLower(ev.Rune()) {
	case 'w':
		return Action{Kind: ActionPaddle, Side: game.SideLeft, Up: true}
	case 's':
		return Action{Kind: ActionPaddle, Side: game.SideLeft, Up: false}
	case 'i':
		return Action{Kind: ActionPaddle, Side: game.SideRight, Up: true}
	case 'k':
		return Action{Kind: ActionPaddle, Side: game.SideRight, Up: false}
	case 'q':
		return Action{Kind: ActionQuit}
	case 'p':
		return Action{Kind: ActionPause}
	case 'm':
		return Action{Kind: ActionToggleSound}
	}
	return Action{}
}

type latchKey struct {
	side game.Side
	up   bool
}

// KeyLatch turns press-only key events into held key state: a key counts as
// held until hold has passed since its latest press. Not safe for concurrent use.
type KeyLatch struct {
	hold    time.Duration
	pressed map[latchKey]time.Time
}

// NewKeyLatch creates a latch with the given hold window.
func NewKeyLatch(hold time.Duration) *KeyLatch {
	return &KeyLatch{hold: hold, pressed: make(map[latchKey]time.Time)}
}

// Press records a key press for one paddle direction.
func (l *KeyLatch) Press(side game.Side, up bool, at time.Time) {
	l.pressed[latchKey{side: side, up: up}] = at
}

// Release forgets every press of one paddle.
func (l *KeyLatch) Release(side game.Side) {
	delete(l.pressed, latchKey{side: side, up: true})
	delete(l.pressed, latchKey{side: side, up: false})
}

func (l *KeyLatch) held(side game.Side, up bool, now time.Time) bool {
	at, ok := l.pressed[latchKey{side: side, up: up}]
	if !ok {
		return false
	}
	if now.Sub(at) >= l.hold {
		delete(l.pressed, latchKey{side: side, up: up})
		return false
	}
	return true
}

// State returns the key state of one paddle at now.
func (l *KeyLatch) State(side game.Side, now time.Time) game.KeyState {
	return game.KeyStateFrom(l.held(side, true, now), l.held(side, false, now))
}

// Frame returns the key state of both paddles at now.
func (l *KeyLatch) Frame(now time.Time) game.InputFrame {
	return game.InputFrame{
		Left:  l.State(game.SideLeft, now),
		Right: l.State(game.SideRight, now),
	}
}
