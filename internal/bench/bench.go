// Package bench drives the frame loop against the headless backend and
// reports throughput.
package bench

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/hashicorp/go-hclog"

	"github.com/san-kum/orbs/internal/config"
	"github.com/san-kum/orbs/internal/display"
	"github.com/san-kum/orbs/internal/frame"
)

var ErrFrames = errors.New("bench: frame count must be positive")

type Progress struct {
	Frame   int
	Total   int
	Rate    float64
	Elapsed time.Duration
}

type Options struct {
	Frames int
	// Backend is drawn into when set, so callers can snapshot the last frame.
	Backend  *display.Headless
	Logger   hclog.Logger
	Progress func(Progress)
}

type Report struct {
	Orbs        int
	Frames      int
	Elapsed     time.Duration
	MeanFPS     float64
	MinFPS      float64
	MaxFPS      float64
	StepsPerSec float64
	History     []float64
}

// Run renders opts.Frames frames and records the smoothed rate after each.
// It stops early, returning the partial report, if ctx is cancelled.
func Run(ctx context.Context, cfg *config.Config, opts Options) (*Report, error) {
	if opts.Frames <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrFrames, opts.Frames)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if opts.Logger == nil {
		opts.Logger = hclog.NewNullLogger()
	}
	backend := opts.Backend
	if backend == nil {
		backend = display.NewHeadless(cfg.Width, cfg.Height)
	}

	d, err := frame.Setup(cfg, backend, opts.Logger.Named("frame"))
	if err != nil {
		return nil, err
	}

	rep := &Report{
		Orbs:    len(d.Orbs()),
		MinFPS:  math.Inf(1),
		History: make([]float64, 0, opts.Frames),
	}
	opts.Logger.Info("bench started", "orbs", rep.Orbs, "frames", opts.Frames)

	if err := d.Blank(); err != nil {
		return nil, err
	}

	start := time.Now()
	for i := 0; i < opts.Frames; i++ {
		if err := ctx.Err(); err != nil {
			rep.finish(time.Since(start))
			return rep, err
		}
		if err := d.Frame(); err != nil {
			return nil, err
		}

		rate, _ := d.Rate()
		rep.History = append(rep.History, rate)
		rep.MinFPS = math.Min(rep.MinFPS, rate)
		rep.MaxFPS = math.Max(rep.MaxFPS, rate)
		rep.Frames++

		if opts.Progress != nil {
			opts.Progress(Progress{Frame: i + 1, Total: opts.Frames, Rate: rate, Elapsed: time.Since(start)})
		}
	}
	rep.finish(time.Since(start))

	opts.Logger.Info("bench finished", "elapsed", rep.Elapsed, "mean_fps", rep.MeanFPS)
	return rep, nil
}

func (r *Report) finish(elapsed time.Duration) {
	r.Elapsed = elapsed
	if r.Frames == 0 {
		r.MinFPS = 0
		return
	}
	secs := elapsed.Seconds()
	if secs <= 0 {
		return
	}
	r.MeanFPS = float64(r.Frames) / secs
	r.StepsPerSec = float64(r.Frames*r.Orbs) / secs
}

// Plot charts the smoothed rate over the run.
func (r *Report) Plot() string {
	if len(r.History) == 0 {
		return ""
	}
	return asciigraph.Plot(r.History,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("fps over %d frames", r.Frames)),
	)
}

func (r *Report) Table(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ORBS\tFRAMES\tELAPSED\tMEAN FPS\tMIN FPS\tMAX FPS\tSTEPS/S")
	fmt.Fprintf(tw, "%d\t%d\t%s\t%.1f\t%.1f\t%.1f\t%.3g\n",
		r.Orbs,
		r.Frames,
		r.Elapsed.Round(time.Millisecond),
		r.MeanFPS,
		r.MinFPS,
		r.MaxFPS,
		r.StepsPerSec,
	)
	return tw.Flush()
}
