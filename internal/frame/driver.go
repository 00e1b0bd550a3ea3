package frame

import (
	"context"
	"image"
	"image/color"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/san-kum/orbs/internal/fps"
	"github.com/san-kum/orbs/internal/orbit"
	"github.com/san-kum/orbs/internal/raster"
)

type Options struct {
	Background color.RGBA
	Orb        color.RGBA
	Text       color.RGBA
	// Counter is where the FPS text is copied each frame.
	Counter image.Rectangle
	Now     func() time.Time
	Logger  hclog.Logger
}

type Driver struct {
	backend Backend
	field   orbit.Field
	orbs    []orbit.Orb
	opts    Options
	log     hclog.Logger

	est    fps.Estimator
	state  State
	last   time.Time
	frames uint64
	points []image.Point
}

func New(backend Backend, field orbit.Field, orbs []orbit.Orb, opts Options) *Driver {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = hclog.NewNullLogger()
	}

	maxPoints := 0
	for i := range orbs {
		if n := len(orbs[i].Circle); n > maxPoints {
			maxPoints = n
		}
	}

	return &Driver{
		backend: backend,
		field:   field,
		orbs:    orbs,
		opts:    opts,
		log:     opts.Logger,
		state:   Running,
		last:    opts.Now(),
		points:  make([]image.Point, 0, maxPoints),
	}
}

func (d *Driver) State() State       { return d.state }
func (d *Driver) Frames() uint64     { return d.frames }
func (d *Driver) Orbs() []orbit.Orb  { return d.orbs }
func (d *Driver) Field() orbit.Field { return d.field }

// Rate returns the smoothed frames per second over the last fps.Window frames.
func (d *Driver) Rate() (float64, bool) { return d.est.Rate() }

func (d *Driver) Samples() []time.Duration { return d.est.Samples() }

// Stop moves the driver to the stopped state. It is idempotent.
func (d *Driver) Stop(reason string) {
	if d.state == Stopped {
		return
	}
	d.state = Stopped
	d.log.Info("stopped", "reason", reason, "frames", d.frames)
}

// Run clears the screen once and then renders frames until an input event
// stops the driver, a frame fails or ctx is cancelled. Cancellation is only
// observed between frames.
func (d *Driver) Run(ctx context.Context) error {
	if err := d.Blank(); err != nil {
		return err
	}
	d.log.Info("running", "orbs", len(d.orbs))

	for d.state == Running {
		select {
		case <-ctx.Done():
			d.Stop("canceled")
			return ctx.Err()
		default:
		}

		if err := d.Frame(); err != nil {
			return err
		}
	}
	return nil
}

// Frame runs one iteration of the loop. A quit or escape event stops the
// driver before anything is drawn. Any backend error is fatal and stops the
// driver.
func (d *Driver) Frame() error {
	if d.state == Stopped {
		return ErrStopped
	}

	for _, ev := range d.backend.PollEvents() {
		if ev.Stops() {
			d.Stop(stopReason(ev))
			return nil
		}
	}

	now := d.opts.Now()
	d.est.Add(now.Sub(d.last))
	d.last = now
	d.frames++

	d.field.StepAll(d.orbs)

	if err := d.backend.Clear(d.opts.Background); err != nil {
		return d.fail("clear", err)
	}

	for i := range d.orbs {
		o := &d.orbs[i]
		d.points = raster.Translate(d.points[:0], o.Circle, o.X, o.Y)
		if err := d.backend.DrawPoints(d.points, d.opts.Orb); err != nil {
			return d.fail("draw points", err)
		}
	}

	if err := d.drawRate(); err != nil {
		return err
	}

	if err := d.backend.Present(); err != nil {
		return d.fail("present", err)
	}
	return nil
}

func (d *Driver) drawRate() error {
	rate, ok := d.est.Rate()
	if !ok {
		return nil
	}

	tex, err := d.backend.Render(fps.Label(rate), d.opts.Text)
	if err != nil {
		return d.fail("render text", err)
	}
	defer tex.Release()

	if err := d.backend.Copy(tex, d.opts.Counter); err != nil {
		return d.fail("copy text", err)
	}
	return nil
}

// Blank clears and presents once so the first frame starts from the
// background colour.
func (d *Driver) Blank() error {
	if err := d.backend.Clear(d.opts.Background); err != nil {
		return d.fail("clear", err)
	}
	if err := d.backend.Present(); err != nil {
		return d.fail("present", err)
	}
	return nil
}

func (d *Driver) fail(op string, err error) error {
	d.state = Stopped
	d.log.Error("frame failed", "frame", d.frames, "op", op, "error", err)
	return &Error{Frame: d.frames, Op: op, Err: err}
}

func stopReason(ev Event) string {
	if ev.Kind == EventQuit {
		return "quit"
	}
	return "escape"
}
