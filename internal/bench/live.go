package bench

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/orbs/internal/config"
)

const (
	liveHistory  = 60
	liveInterval = 50 * time.Millisecond
	barWidth     = 40
)

type progressMsg Progress

type doneMsg struct {
	report *Report
	err    error
}

type liveModel struct {
	title   string
	cancel  context.CancelFunc
	last    Progress
	history []float64
	report  *Report
	err     error
	done    bool
}

func newLiveModel(title string, cancel context.CancelFunc) liveModel {
	return liveModel{title: title, cancel: cancel}
}

func (m liveModel) Init() tea.Cmd {
	return nil
}

func (m liveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			m.cancel()
			return m, tea.Quit
		}
	case progressMsg:
		m.last = Progress(msg)
		m.history = append(m.history, msg.Rate)
		if len(m.history) > liveHistory {
			m.history = m.history[len(m.history)-liveHistory:]
		}
	case doneMsg:
		m.report, m.err, m.done = msg.report, msg.err, true
		return m, tea.Quit
	}
	return m, nil
}

func (m liveModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.title) + "\n")

	pct := 0.0
	if m.last.Total > 0 {
		pct = float64(m.last.Frame) / float64(m.last.Total)
	}
	b.WriteString(progressBar(pct, barWidth))
	fmt.Fprintf(&b, " %d/%d\n\n", m.last.Frame, m.last.Total)

	b.WriteString(row("fps", fmt.Sprintf("%.1f", m.last.Rate)) + "\n")
	b.WriteString(row("elapsed", m.last.Elapsed.Round(time.Millisecond).String()) + "\n")

	if len(m.history) > 1 {
		graph := asciigraph.Plot(m.history, asciigraph.Height(6), asciigraph.Width(liveHistory))
		b.WriteString(graphStyle.Render(graph) + "\n")
	}
	if m.err != nil {
		b.WriteString(errStyle.Render(m.err.Error()) + "\n")
	}
	b.WriteString(helpStyle.Render("q quit"))

	return lipgloss.JoinVertical(lipgloss.Left, panelStyle.Render(b.String()))
}

// RunLive runs the benchmark behind a progress view on out. Quitting the
// view cancels the run.
func RunLive(ctx context.Context, cfg *config.Config, opts Options, in io.Reader, out io.Writer) (*Report, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	title := fmt.Sprintf("orbs bench: %d orbs, %d frames", cfg.Orbs, opts.Frames)
	p := tea.NewProgram(newLiveModel(title, cancel), tea.WithInput(in), tea.WithOutput(out))

	var sent time.Time
	opts.Progress = func(pr Progress) {
		if pr.Frame < pr.Total && time.Since(sent) < liveInterval {
			return
		}
		sent = time.Now()
		p.Send(progressMsg(pr))
	}

	go func() {
		rep, err := Run(ctx, cfg, opts)
		p.Send(doneMsg{report: rep, err: err})
	}()

	final, err := p.Run()
	if err != nil {
		return nil, err
	}
	m := final.(liveModel)
	if !m.done {
		return nil, context.Canceled
	}
	return m.report, m.err
}
