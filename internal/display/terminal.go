package display

import (
	"fmt"
	"image"
	"image/color"

	"github.com/gdamore/tcell/v2"
	"github.com/hashicorp/go-hclog"
	"github.com/san-kum/orbs/internal/frame"
)

const eventBuffer = 100

// Terminal renders screen-space points into a tcell screen. The world is
// scaled to the braille sub-pixel grid, so a 1920x1080 scene fits any
// terminal size.
type Terminal struct {
	screen tcell.Screen
	events chan tcell.Event
	log    hclog.Logger

	worldW, worldH int
	canvas         *Braille
	bg             color.RGBA
	labels         []label
}

type label struct {
	col, row int
	text     string
	style    tcell.Style
}

type terminalText struct {
	text  string
	color color.RGBA
}

func (terminalText) Release() {}

// OpenTerminal takes over the controlling terminal.
func OpenTerminal(worldW, worldH int, logger hclog.Logger) (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTerminal, err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTerminal, err)
	}
	return NewTerminal(screen, worldW, worldH, logger), nil
}

// NewTerminal wraps an initialized screen and starts pumping its events.
func NewTerminal(screen tcell.Screen, worldW, worldH int, logger hclog.Logger) *Terminal {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	screen.HideCursor()

	t := &Terminal{
		screen: screen,
		events: make(chan tcell.Event, eventBuffer),
		log:    logger,
		worldW: worldW,
		worldH: worldH,
		canvas: NewBraille(screen.Size()),
	}
	go t.pump()

	cols, rows := screen.Size()
	t.log.Debug("terminal ready", "cols", cols, "rows", rows)
	return t
}

// pump feeds the blocking PollEvent into a channel. It exits when the screen
// is finalized.
func (t *Terminal) pump() {
	defer close(t.events)
	for {
		ev := t.screen.PollEvent()
		if ev == nil {
			return
		}
		t.events <- ev
	}
}

func (t *Terminal) Close() {
	t.screen.Fini()
}

func (t *Terminal) PollEvents() []frame.Event {
	var out []frame.Event
	for {
		select {
		case ev, ok := <-t.events:
			if !ok {
				return append(out, frame.Event{Kind: frame.EventQuit})
			}
			out = append(out, t.translate(ev))
		default:
			return out
		}
	}
}

func (t *Terminal) translate(ev tcell.Event) frame.Event {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape:
			return frame.Event{Kind: frame.EventKeyDown, Key: frame.KeyEscape}
		case tcell.KeyCtrlC:
			return frame.Event{Kind: frame.EventQuit}
		}
		return frame.Event{Kind: frame.EventKeyDown, Key: frame.KeyUnknown}
	case *tcell.EventResize:
		t.screen.Sync()
		cols, rows := t.screen.Size()
		t.canvas.Resize(cols, rows)
		t.log.Debug("terminal resized", "cols", cols, "rows", rows)
	}
	return frame.Event{Kind: frame.EventOther}
}

func (t *Terminal) Clear(c color.RGBA) error {
	t.bg = c
	t.canvas.Clear()
	t.labels = t.labels[:0]
	return nil
}

// toSub maps a screen-space point to braille sub-pixels.
func (t *Terminal) toSub(p image.Point) (int, int, bool) {
	if p.X < 0 || p.Y < 0 || p.X >= t.worldW || p.Y >= t.worldH {
		return 0, 0, false
	}
	sw, sh := t.canvas.SubSize()
	return p.X * sw / t.worldW, p.Y * sh / t.worldH, true
}

func (t *Terminal) DrawPoints(pts []image.Point, c color.RGBA) error {
	for _, p := range pts {
		if x, y, ok := t.toSub(p); ok {
			t.canvas.Set(x, y, c)
		}
	}
	return nil
}

func (t *Terminal) Render(text string, c color.RGBA) (frame.Texture, error) {
	return terminalText{text: text, color: c}, nil
}

// Copy writes the text starting at the cell under dst's top-left corner.
func (t *Terminal) Copy(tex frame.Texture, dst image.Rectangle) error {
	tt, ok := tex.(terminalText)
	if !ok {
		return fmt.Errorf("%w: %T", ErrTexture, tex)
	}
	col, row := 0, 0
	if x, y, ok := t.toSub(dst.Min); ok {
		col, row = x/2, y/4
	}
	t.labels = append(t.labels, label{
		col:   col,
		row:   row,
		text:  tt.text,
		style: tcell.StyleDefault.Foreground(rgb(tt.color)).Background(rgb(t.bg)).Bold(true),
	})
	return nil
}

func (t *Terminal) Present() error {
	bg := rgb(t.bg)
	for row := 0; row < t.canvas.Height; row++ {
		for col := 0; col < t.canvas.Width; col++ {
			style := tcell.StyleDefault.Background(bg).Foreground(rgb(t.canvas.Colors[row][col]))
			t.screen.SetContent(col, row, t.canvas.Grid[row][col], nil, style)
		}
	}
	for _, l := range t.labels {
		for i, r := range []rune(l.text) {
			t.screen.SetContent(l.col+i, l.row, r, nil, l.style)
		}
	}
	t.screen.Show()
	return nil
}

func rgb(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
