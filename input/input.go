// Package input turns window callbacks into an ordered event queue that the
// frame loop drains once per frame.
package input

import "fmt"

// Key identifies a keyboard key. Values match GLFW key codes so the window
// can forward them unchanged.
type Key int

const (
	KeyUnknown Key = -1
	KeySpace   Key = 32
	KeyA       Key = 65
	KeyD       Key = 68
	KeyQ       Key = 81
	KeyR       Key = 82
	KeyS       Key = 83
	KeyW       Key = 87
	KeyZ       Key = 90
	KeyEscape  Key = 256
	KeyRight   Key = 262
	KeyLeft    Key = 263
	KeyDown    Key = 264
	KeyUp      Key = 265

	keyLast = 348
)

var keyNames = map[Key]string{
	KeySpace:  "Space",
	KeyA:      "A",
	KeyD:      "D",
	KeyQ:      "Q",
	KeyR:      "R",
	KeyS:      "S",
	KeyW:      "W",
	KeyZ:      "Z",
	KeyEscape: "Escape",
	KeyRight:  "Right",
	KeyLeft:   "Left",
	KeyDown:   "Down",
	KeyUp:     "Up",
}

func (k Key) String() string {
	if n, ok := keyNames[k]; ok {
		return n
	}
	return fmt.Sprintf("Key(%d)", int(k))
}

// ParseKey looks a key up by the name String returns.
func ParseKey(name string) (Key, bool) {
	for k, n := range keyNames {
		if n == name {
			return k, true
		}
	}
	return KeyUnknown, false
}

// Action is what happened to a key.
type Action int

const (
	Release Action = iota
	Press
	Repeat
)

// Kind tags an Event.
type Kind int

const (
	KeyEvent Kind = iota
	CursorEvent
	ScrollEvent
	ResizeEvent
	CloseEvent
	FocusEvent
)

// Event is one normalized window callback. Only the fields of its Kind are
// set: Key/Action for keys, X/Y for cursor position and scroll offsets,
// Width/Height for framebuffer resizes, Focused for focus changes.
type Event struct {
	Kind    Kind
	Key     Key
	Action  Action
	X, Y    float64
	Width   int
	Height  int
	Focused bool
}

// Queue collects events between frames. It is only touched from the thread
// that polls the window.
type Queue struct {
	events []Event
}

func (q *Queue) Push(ev Event) {
	q.events = append(q.events, ev)
}

// Drain returns the queued events in arrival order and empties the queue.
func (q *Queue) Drain() []Event {
	out := q.events
	q.events = nil
	return out
}

func (q *Queue) Len() int { return len(q.events) }

// Keys is the set of keys currently held.
type Keys struct {
	down [keyLast + 1]bool
}

// Apply updates held state from a key event. Repeat keeps a key held.
func (k *Keys) Apply(ev Event) {
	if ev.Kind != KeyEvent || ev.Key < 0 || int(ev.Key) > keyLast {
		return
	}
	k.down[ev.Key] = ev.Action != Release
}

func (k *Keys) IsDown(key Key) bool {
	if key < 0 || int(key) > keyLast {
		return false
	}
	return k.down[key]
}

// Clear releases every key, e.g. when the window loses focus.
func (k *Keys) Clear() {
	k.down = [keyLast + 1]bool{}
}
