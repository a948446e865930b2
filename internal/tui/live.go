// Package tui renders a running Lorenz-96 trajectory in the terminal.
package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/feiyulu/L96-demo/internal/ode"
)

const historyCapacity = 400

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true)
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

type TickMsg time.Time

// Model steps the system on a timer and graphs one slow variable's
// recent history.
type Model struct {
	sys       ode.System
	integ     ode.Integrator
	modelName string

	state    ode.State
	initial  ode.State
	t, dt    float64
	slowDim  int
	selected int
	history  []float64
	running  bool
	diverged bool
	err      error
}

func NewModel(sys ode.System, integ ode.Integrator, x0 ode.State, dt float64, slowDim int, modelName string) Model {
	return Model{
		sys:       sys,
		integ:     integ,
		modelName: modelName,
		state:     x0.Clone(),
		initial:   x0.Clone(),
		dt:        dt,
		slowDim:   slowDim,
		history:   make([]float64, 0, historyCapacity),
		running:   true,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Tick(time.Second/30, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.state = m.initial.Clone()
			m.t = 0
			m.history = m.history[:0]
			m.diverged = false
			m.err = nil
			m.running = true
		case "tab", "right", "l":
			m.selected = (m.selected + 1) % m.slowDim
			m.history = m.history[:0]
		case "left", "h":
			m.selected = (m.selected + m.slowDim - 1) % m.slowDim
			m.history = m.history[:0]
		}
		return m, nil

	case TickMsg:
		if m.running && !m.diverged && m.err == nil {
			// A few substeps per frame keeps the display responsive
			// without dropping dt accuracy.
			for i := 0; i < 4; i++ {
				next, err := m.integ.Step(m.sys, m.state, m.t, m.dt)
				if err != nil {
					m.err = err
					break
				}
				m.state = next
				m.t += m.dt
				if !m.state.IsValid() || m.state.MaxAbs() > ode.DivergeThreshold {
					m.diverged = true
					break
				}
			}
			m.history = append(m.history, m.state[m.selected])
			if len(m.history) > historyCapacity {
				m.history = m.history[len(m.history)-historyCapacity:]
			}
		}
		return m, tea.Tick(time.Second/30, func(t time.Time) tea.Msg { return TickMsg(t) })
	}
	return m, nil
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(headerStyle.Render(fmt.Sprintf("L96 %s", m.modelName)))
	b.WriteString("\n")
	b.WriteString(labelStyle.Render("t: ") + valueStyle.Render(fmt.Sprintf("%.2f", m.t)))
	b.WriteString(labelStyle.Render("   var: ") + valueStyle.Render(fmt.Sprintf("X[%d]", m.selected)))
	if m.diverged {
		b.WriteString("  " + warnStyle.Render("DIVERGED"))
	}
	if m.err != nil {
		b.WriteString("  " + warnStyle.Render(m.err.Error()))
	}
	b.WriteString("\n")

	if len(m.history) > 1 {
		graph := asciigraph.Plot(m.history,
			asciigraph.Height(14),
			asciigraph.Width(76),
			asciigraph.Caption(fmt.Sprintf("X[%d](t)", m.selected)),
		)
		b.WriteString(graphStyle.Render(graph))
		b.WriteString("\n")
	}

	// Instantaneous slow field as a bar row.
	b.WriteString(labelStyle.Render("field: "))
	for k := 0; k < m.slowDim; k++ {
		b.WriteString(bar(m.state[k]))
	}
	b.WriteString("\n")

	b.WriteString(helpStyle.Render("space pause  tab/arrows switch variable  r reset  q quit"))
	return b.String()
}

var barRunes = []rune(" ▁▂▃▄▅▆▇█")

func bar(v float64) string {
	// Map roughly [-10, 20] onto the rune ramp.
	idx := int((v + 10) / 30 * float64(len(barRunes)))
	if idx < 0 {
		idx = 0
	}
	if idx >= len(barRunes) {
		idx = len(barRunes) - 1
	}
	return string(barRunes[idx])
}

// Run starts the live view and blocks until quit.
func Run(sys ode.System, integ ode.Integrator, x0 ode.State, dt float64, slowDim int, modelName string) error {
	p := tea.NewProgram(NewModel(sys, integ, x0, dt, slowDim, modelName))
	_, err := p.Run()
	return err
}
