package frame_test

import (
	"context"
	"errors"
	"image"
	"image/color"
	"math/rand/v2"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/orbs/internal/config"
	"github.com/san-kum/orbs/internal/display"
	"github.com/san-kum/orbs/internal/frame"
	"github.com/san-kum/orbs/internal/orbit"
)

var (
	black = color.RGBA{0, 0, 0, 255}
	green = color.RGBA{0, 255, 0, 255}
	red   = color.RGBA{255, 0, 0, 255}
)

// tick returns a clock that advances by step on every call.
func tick(step time.Duration) func() time.Time {
	t := time.Unix(0, 0)
	return func() time.Time {
		t = t.Add(step)
		return t
	}
}

func newDriver(h *display.Headless, n int) *frame.Driver {
	field := orbit.NewField(960, 540, orbit.DefaultG, orbit.DefaultMass, orbit.DefaultSpeed)
	orbs := field.Spawn(n, 10, 1920, 1080, rand.New(rand.NewPCG(1, 2)))
	return frame.New(h, field, orbs, frame.Options{
		Background: black,
		Orb:        green,
		Text:       red,
		Counter:    image.Rect(0, 0, 80, 40),
		Now:        tick(10 * time.Millisecond),
	})
}

var _ = Describe("Driver", func() {
	var (
		h *display.Headless
		d *frame.Driver
	)

	BeforeEach(func() {
		h = display.NewHeadless(1920, 1080)
		d = newDriver(h, 50)
	})

	Describe("Frame", func() {
		It("draws one batch per orb and presents once", func() {
			Expect(d.Frame()).To(Succeed())

			Expect(h.Batches).To(Equal(50))
			Expect(h.Presented).To(Equal(1))
			Expect(d.Frames()).To(BeEquivalentTo(1))
			Expect(d.State()).To(Equal(frame.Running))
		})

		It("shows the smoothed rate in the counter rectangle", func() {
			Expect(d.Frame()).To(Succeed())

			Expect(h.LastText).To(Equal("100"))
			Expect(h.LastRect).To(Equal(image.Rect(0, 0, 80, 40)))
			Expect(h.Live).To(BeZero())
		})

		It("keeps at most the window of samples", func() {
			for i := 0; i < 30; i++ {
				Expect(d.Frame()).To(Succeed())
			}
			Expect(d.Samples()).To(HaveLen(20))
			rate, ok := d.Rate()
			Expect(ok).To(BeTrue())
			Expect(rate).To(BeNumerically("~", 100, 1e-9))
		})

		It("moves the population every frame", func() {
			before := append([]orbit.Orb(nil), d.Orbs()...)
			Expect(d.Frame()).To(Succeed())
			for i, o := range d.Orbs() {
				Expect(o.X != before[i].X || o.Y != before[i].Y).To(BeTrue(), "orb %d did not move", i)
			}
		})

		It("paints orbs over the background", func() {
			Expect(d.Frame()).To(Succeed())
			img := h.Image()
			lit := 0
			for y := 40; y < 1080; y++ {
				for x := 80; x < 1920; x++ {
					if img.RGBAAt(x, y) == green {
						lit++
					}
				}
			}
			Expect(lit).To(BeNumerically(">", 0))
		})
	})

	Describe("input", func() {
		DescribeTable("stopping events",
			func(ev frame.Event, stops bool) {
				h.Inject(ev)
				Expect(d.Frame()).To(Succeed())
				if stops {
					Expect(d.State()).To(Equal(frame.Stopped))
					Expect(h.Presented).To(BeZero())
					Expect(d.Frames()).To(BeZero())
				} else {
					Expect(d.State()).To(Equal(frame.Running))
					Expect(h.Presented).To(Equal(1))
				}
			},
			Entry("quit", frame.Event{Kind: frame.EventQuit}, true),
			Entry("escape", frame.Event{Kind: frame.EventKeyDown, Key: frame.KeyEscape}, true),
			Entry("other key", frame.Event{Kind: frame.EventKeyDown, Key: frame.KeyUnknown}, false),
			Entry("other event", frame.Event{Kind: frame.EventOther}, false),
		)

		It("refuses frames once stopped", func() {
			d.Stop("test")
			Expect(d.Frame()).To(MatchError(frame.ErrStopped))
			d.Stop("again")
			Expect(d.State()).To(Equal(frame.Stopped))
		})
	})

	Describe("Run", func() {
		It("blanks the screen and runs until quit", func() {
			h.QuitAfter = 5
			Expect(d.Run(context.Background())).To(Succeed())

			// one blanking present plus the frames
			Expect(h.Presented).To(Equal(5))
			Expect(d.Frames()).To(BeEquivalentTo(4))
			Expect(d.State()).To(Equal(frame.Stopped))
		})

		It("returns the context error when cancelled", func() {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()

			err := d.Run(ctx)
			Expect(err).To(MatchError(context.Canceled))
			Expect(d.State()).To(Equal(frame.Stopped))
			Expect(h.Presented).To(Equal(1))
		})

		DescribeTable("fatal backend errors",
			func(op, wantOp string) {
				boom := errors.New("boom")
				h.QuitAfter = 10
				Expect(d.Frame()).To(Succeed())
				h.FailOn(op, boom)

				err := d.Run(context.Background())
				Expect(err).To(HaveOccurred())
				Expect(errors.Is(err, boom)).To(BeTrue())

				var fe *frame.Error
				Expect(errors.As(err, &fe)).To(BeTrue())
				Expect(fe.Op).To(Equal(wantOp))
				Expect(d.State()).To(Equal(frame.Stopped))
				Expect(h.Live).To(BeZero())
			},
			Entry("clear", "clear", "clear"),
			Entry("draw", "draw", "draw points"),
			Entry("render", "render", "render text"),
			Entry("copy", "copy", "copy text"),
			Entry("present", "present", "present"),
		)
	})

	Describe("Setup", func() {
		It("builds a driver from configuration", func() {
			cfg := config.DefaultConfig()
			cfg.Orbs = 12
			cfg.Seed = 7

			drv, err := frame.Setup(cfg, h, nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(drv.Orbs()).To(HaveLen(12))
			Expect(drv.Field().CX).To(BeNumerically("==", 960))

			again, err := frame.Setup(cfg, display.NewHeadless(10, 10), nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(again.Orbs()[0].X).To(Equal(drv.Orbs()[0].X))
		})

		It("rejects invalid configuration", func() {
			cfg := config.DefaultConfig()
			cfg.Width = 0
			_, err := frame.Setup(cfg, h, nil)
			Expect(err).To(MatchError(config.ErrInvalid))
		})

		It("runs the default population", func() {
			cfg := config.DefaultConfig()
			cfg.Seed = 1
			drv, err := frame.Setup(cfg, h, nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(drv.Orbs()).To(HaveLen(config.DefaultOrbs))

			h.QuitAfter = 3
			Expect(drv.Run(context.Background())).To(Succeed())
			Expect(h.Batches).To(Equal(2 * config.DefaultOrbs))
		})
	})
})
