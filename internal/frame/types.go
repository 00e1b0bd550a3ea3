package frame

import (
	"image"
	"image/color"
)

type EventKind int

const (
	EventOther EventKind = iota
	EventQuit
	EventKeyDown
)

type Key int

const (
	KeyUnknown Key = iota
	KeyEscape
)

type Event struct {
	Kind EventKind
	Key  Key
}

// Stops reports whether the event ends the loop.
func (e Event) Stops() bool {
	return e.Kind == EventQuit || (e.Kind == EventKeyDown && e.Key == KeyEscape)
}

type Canvas interface {
	Clear(c color.RGBA) error
	DrawPoints(pts []image.Point, c color.RGBA) error
	Copy(t Texture, dst image.Rectangle) error
	Present() error
}

type Texture interface {
	Release()
}

type Typesetter interface {
	Render(text string, c color.RGBA) (Texture, error)
}

// Input returns every event queued since the previous call without blocking.
type Input interface {
	PollEvents() []Event
}

// Backend bundles the collaborators a Driver draws through.
type Backend interface {
	Canvas
	Typesetter
	Input
}

type State int

const (
	Running State = iota
	Stopped
)

func (s State) String() string {
	if s == Stopped {
		return "stopped"
	}
	return "running"
}
