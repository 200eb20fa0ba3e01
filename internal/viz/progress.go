package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/bakermap/internal/frame"
)

// FrameMsg reports that frame Step of a run is ready.
type FrameMsg struct {
	Step     int
	Dim      int
	Distinct int
}

// DoneMsg ends the progress view. Err is the run's error, if any.
type DoneMsg struct {
	Err    error
	Output string
}

// ProgressModel shows how far a render has come. It never drives the run;
// the caller feeds it through ProgressObserver and finishes it with DoneMsg.
type ProgressModel struct {
	total    int
	step     int
	distinct []float64
	done     bool
	err      error
	output   string
	width    int
}

func NewProgressModel(total int) ProgressModel {
	return ProgressModel{total: total, step: -1, width: 40}
}

func (m ProgressModel) Init() tea.Cmd { return nil }

func (m ProgressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" || msg.String() == "q" {
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.width = max(10, min(60, msg.Width-20))
	case FrameMsg:
		m.step = msg.Step
		m.distinct = append(m.distinct, float64(msg.Distinct))
	case DoneMsg:
		m.done = true
		m.err = msg.Err
		m.output = msg.Output
		return m, tea.Quit
	}
	return m, nil
}

func (m ProgressModel) Done() bool { return m.done }
func (m ProgressModel) Err() error { return m.err }

// Fraction is the share of frames produced so far, in [0, 1].
func (m ProgressModel) Fraction() float64 {
	if m.total <= 0 {
		return 1
	}
	return float64(m.step+1) / float64(m.total)
}

func (m ProgressModel) View() string {
	t := CurrentTheme
	var b strings.Builder
	b.WriteString(t.Title().Render("baker's map"))
	b.WriteString("\n\n")
	b.WriteString(ProgressBar(m.Fraction(), m.width))
	b.WriteString(t.Label().Render(fmt.Sprintf("  %d/%d frames", m.step+1, m.total)))
	b.WriteString("\n")
	if len(m.distinct) > 0 {
		b.WriteString(t.Label().Render("colours "))
		b.WriteString(Sparkline(m.distinct, m.width))
		b.WriteString(t.Value().Render(fmt.Sprintf(" %d", int(m.distinct[len(m.distinct)-1]))))
		b.WriteString("\n")
	}
	switch {
	case m.err != nil:
		b.WriteString(t.Fail().Render("error: " + m.err.Error()))
		b.WriteString("\n")
	case m.done:
		b.WriteString(t.Ok().Render("wrote " + m.output))
		b.WriteString("\n")
	}
	return b.String()
}

// Sender is satisfied by *tea.Program.
type Sender interface {
	Send(msg tea.Msg)
}

// ProgressObserver forwards generated frames to a running progress view.
type ProgressObserver struct {
	Target Sender
}

func (p *ProgressObserver) OnFrame(step int, f frame.Frame) {
	p.Target.Send(FrameMsg{Step: step, Dim: f.Dim(), Distinct: len(f.Histogram())})
}
