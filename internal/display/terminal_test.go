package display

import (
	"image"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/orbs/internal/frame"
)

func newSimTerminal(t *testing.T, cols, rows int) (*Terminal, tcell.SimulationScreen) {
	t.Helper()
	sim := tcell.NewSimulationScreen("UTF-8")
	if err := sim.Init(); err != nil {
		t.Fatal(err)
	}
	sim.SetSize(cols, rows)
	// world matches the sub-pixel grid one to one
	term := NewTerminal(sim, cols*2, rows*4, nil)
	return term, sim
}

func cellRune(sim tcell.SimulationScreen, col, row int) rune {
	cells, w, _ := sim.GetContents()
	c := cells[row*w+col]
	if len(c.Runes) == 0 {
		return 0
	}
	return c.Runes[0]
}

func TestTerminalDrawsBraille(t *testing.T) {
	g := NewWithT(t)
	term, sim := newSimTerminal(t, 10, 5)
	defer term.Close()

	g.Expect(term.Clear(black)).To(Succeed())
	g.Expect(term.DrawPoints([]image.Point{{2, 0}, {3, 7}, {-5, 1}, {999, 1}}, green)).To(Succeed())
	g.Expect(term.Present()).To(Succeed())

	g.Expect(cellRune(sim, 1, 0)).To(Equal(rune(0x2801)))
	g.Expect(cellRune(sim, 1, 1)).To(Equal(rune(0x2880)))
	g.Expect(cellRune(sim, 0, 0)).To(Equal(rune(brailleBlank)))
}

func TestTerminalTextOverlay(t *testing.T) {
	g := NewWithT(t)
	term, sim := newSimTerminal(t, 10, 5)
	defer term.Close()

	g.Expect(term.Clear(black)).To(Succeed())
	tex, err := term.Render("42", red)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(term.Copy(tex, image.Rect(0, 0, 4, 4))).To(Succeed())
	tex.Release()
	g.Expect(term.Present()).To(Succeed())

	g.Expect(cellRune(sim, 0, 0)).To(Equal('4'))
	g.Expect(cellRune(sim, 1, 0)).To(Equal('2'))

	// overlays do not survive the next clear
	g.Expect(term.Clear(black)).To(Succeed())
	g.Expect(term.Present()).To(Succeed())
	g.Expect(cellRune(sim, 0, 0)).To(Equal(rune(brailleBlank)))
}

func TestTerminalCopyForeignTexture(t *testing.T) {
	g := NewWithT(t)
	term, _ := newSimTerminal(t, 4, 4)
	defer term.Close()

	g.Expect(term.Copy(foreignTexture{}, image.Rect(0, 0, 1, 1))).To(MatchError(ErrTexture))
}

func TestTerminalKeys(t *testing.T) {
	g := NewWithT(t)
	term, sim := newSimTerminal(t, 4, 4)
	defer term.Close()

	sim.InjectKey(tcell.KeyRune, 'x', tcell.ModNone)
	sim.InjectKey(tcell.KeyEscape, 0, tcell.ModNone)

	var got []frame.Event
	g.Eventually(func() []frame.Event {
		got = append(got, term.PollEvents()...)
		return got
	}, time.Second, 5*time.Millisecond).Should(ContainElement(frame.Event{Kind: frame.EventKeyDown, Key: frame.KeyEscape}))
	g.Expect(got).To(ContainElement(frame.Event{Kind: frame.EventKeyDown, Key: frame.KeyUnknown}))
}

func TestTerminalCtrlCQuits(t *testing.T) {
	g := NewWithT(t)
	term, sim := newSimTerminal(t, 4, 4)
	defer term.Close()

	sim.InjectKey(tcell.KeyCtrlC, 0, tcell.ModCtrl)
	g.Eventually(term.PollEvents, time.Second, 5*time.Millisecond).
		Should(ContainElement(frame.Event{Kind: frame.EventQuit}))
}

func TestTerminalClosedScreenQuits(t *testing.T) {
	g := NewWithT(t)
	term, _ := newSimTerminal(t, 4, 4)
	term.Close()

	g.Eventually(term.PollEvents, time.Second, 5*time.Millisecond).
		Should(ContainElement(frame.Event{Kind: frame.EventQuit}))
}

func TestTerminalResize(t *testing.T) {
	g := NewWithT(t)
	term, sim := newSimTerminal(t, 4, 4)
	defer term.Close()

	sim.SetSize(8, 2)
	_ = sim.PostEvent(tcell.NewEventResize(8, 2))

	g.Eventually(func() int {
		term.PollEvents()
		return term.canvas.Width
	}, time.Second, 5*time.Millisecond).Should(Equal(8))
	g.Expect(term.canvas.Height).To(Equal(2))
}
