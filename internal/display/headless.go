package display

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"

	"github.com/san-kum/orbs/internal/frame"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Headless draws into an RGBA image. Input is scripted with Inject and
// QuitAfter.
type Headless struct {
	img     *image.RGBA
	pending []frame.Event

	// QuitAfter, when positive, queues a quit event once that many frames
	// have been presented.
	QuitAfter int

	Presented int
	Batches   int
	Points    int
	Clipped   int
	LastText  string
	LastRect  image.Rectangle
	Live      int // textures rendered but not yet released

	failOp  string
	failErr error
}

func NewHeadless(width, height int) *Headless {
	return &Headless{img: image.NewRGBA(image.Rect(0, 0, width, height))}
}

// Inject queues events for the next PollEvents call.
func (h *Headless) Inject(evs ...frame.Event) {
	h.pending = append(h.pending, evs...)
}

// FailOn makes the named operation ("clear", "draw", "render", "copy" or
// "present") return err from now on.
func (h *Headless) FailOn(op string, err error) {
	h.failOp, h.failErr = op, err
}

func (h *Headless) fail(op string) error {
	if h.failOp == op {
		return h.failErr
	}
	return nil
}

func (h *Headless) Image() *image.RGBA { return h.img }

func (h *Headless) WritePNG(w io.Writer) error {
	return png.Encode(w, h.img)
}

func (h *Headless) PollEvents() []frame.Event {
	if h.QuitAfter > 0 && h.Presented >= h.QuitAfter {
		h.pending = append(h.pending, frame.Event{Kind: frame.EventQuit})
	}
	evs := h.pending
	h.pending = nil
	return evs
}

func (h *Headless) Clear(c color.RGBA) error {
	if err := h.fail("clear"); err != nil {
		return err
	}
	xdraw.Draw(h.img, h.img.Bounds(), image.NewUniform(c), image.Point{}, xdraw.Src)
	return nil
}

func (h *Headless) DrawPoints(pts []image.Point, c color.RGBA) error {
	if err := h.fail("draw"); err != nil {
		return err
	}
	h.Batches++
	b := h.img.Bounds()
	for _, p := range pts {
		h.Points++
		if !p.In(b) {
			h.Clipped++
			continue
		}
		h.img.SetRGBA(p.X, p.Y, c)
	}
	return nil
}

type imageTexture struct {
	img  *image.RGBA
	text string
	h    *Headless
}

func (t *imageTexture) Release() {
	if t.h != nil {
		t.h.Live--
		t.h = nil
	}
}

// Render rasterizes text with the built-in 7x13 bitmap face into a texture
// sized to the text.
func (h *Headless) Render(text string, c color.RGBA) (frame.Texture, error) {
	if err := h.fail("render"); err != nil {
		return nil, err
	}
	face := basicfont.Face7x13
	width := font.MeasureString(face, text).Ceil()
	if width == 0 {
		width = 1
	}
	metrics := face.Metrics()
	img := image.NewRGBA(image.Rect(0, 0, width, metrics.Height.Ceil()))

	d := font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.Point26_6{X: 0, Y: metrics.Ascent},
	}
	d.DrawString(text)

	h.Live++
	return &imageTexture{img: img, text: text, h: h}, nil
}

// Copy scales the texture into dst.
func (h *Headless) Copy(t frame.Texture, dst image.Rectangle) error {
	if err := h.fail("copy"); err != nil {
		return err
	}
	tex, ok := t.(*imageTexture)
	if !ok {
		return fmt.Errorf("%w: %T", ErrTexture, t)
	}
	xdraw.NearestNeighbor.Scale(h.img, dst, tex.img, tex.img.Bounds(), xdraw.Over, nil)
	h.LastText = tex.text
	h.LastRect = dst
	return nil
}

func (h *Headless) Present() error {
	if err := h.fail("present"); err != nil {
		return err
	}
	h.Presented++
	return nil
}
