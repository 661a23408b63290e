// Package live is the interactive terminal view of a running simulation.
package live

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/trusslab/internal/session"
	"github.com/san-kum/trusslab/internal/structure"
	"github.com/san-kum/trusslab/internal/viz"
)

const (
	canvasWidth  = 78
	canvasHeight = 22

	frameRate     = 30
	ticksPerFrame = 2

	traceWindow = 120
	graphHeight = 5
)

type tickMsg time.Time

// Model drives a session from a frame timer and renders it each frame.
type Model struct {
	name     string
	st       *structure.Structure
	sess     *session.Session
	renderer *viz.Renderer

	trace  []float64
	paused bool
	ticks  int
}

func NewModel(name string, st *structure.Structure, sess *session.Session) *Model {
	return &Model{
		name:     name,
		st:       st,
		sess:     sess,
		renderer: viz.NewRenderer(canvasWidth, canvasHeight, st),
	}
}

func (m *Model) Init() tea.Cmd {
	m.sess.Start(m.st)
	return frameTick()
}

func frameTick() tea.Cmd {
	return tea.Tick(time.Second/frameRate, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.sess.Stop()
			return m, tea.Quit
		case " ":
			m.paused = !m.paused
		case "r":
			m.sess.Stop()
			m.trace = m.trace[:0]
			m.ticks = 0
			m.sess.Start(m.st)
		}
		return m, nil

	case tickMsg:
		if !m.paused {
			for i := 0; i < ticksPerFrame; i++ {
				m.sess.Step()
				m.ticks++
			}
			m.sess.UpdateStress()
			m.trace = append(m.trace, m.sess.MaxStress())
			if len(m.trace) > traceWindow {
				m.trace = m.trace[len(m.trace)-traceWindow:]
			}
		}
		return m, frameTick()
	}

	return m, nil
}

func (m *Model) View() string {
	var b strings.Builder

	state := "running"
	if m.paused {
		state = "paused"
	}
	b.WriteString(viz.Title(fmt.Sprintf("trusslab · %s · %s · t=%.1fs", m.name, state,
		float64(m.ticks)/60.0)))
	b.WriteString("\n")
	b.WriteString(m.renderer.Render(m.st, m.sess.Running()))
	b.WriteString(viz.Summary(m.st))
	b.WriteString("\n")

	if len(m.trace) > 1 {
		b.WriteString(asciigraph.Plot(m.trace,
			asciigraph.Height(graphHeight),
			asciigraph.Caption("max stress"),
		))
		b.WriteString("\n")
	}

	b.WriteString("space pause · r reset · q quit\n")
	return b.String()
}

// Run opens the live view and blocks until the user quits.
func Run(name string, st *structure.Structure, sess *session.Session) error {
	p := tea.NewProgram(NewModel(name, st, sess))
	_, err := p.Run()
	return err
}
