// Package tui replays a computed trajectory in the terminal.
package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Zymrael/torchODE/internal/solver"
)

var (
	cyan   = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	white  = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dim    = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	green  = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	yellow = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
)

const (
	barWidth    = 36
	maxElements = 8
)

type tickMsg time.Time

type model struct {
	traj   *solver.Trajectory
	method string
	fps    int
	frame  int
	paused bool
	scale  float64
}

// RunLive replays tr frame by frame at the given frame rate.
func RunLive(tr *solver.Trajectory, method string, fps int) error {
	if fps <= 0 {
		fps = 30
	}

	scale := 0.0
	for _, s := range tr.States {
		if m := s.MaxAbs(); m > scale {
			scale = m
		}
	}
	if scale == 0 {
		scale = 1
	}

	m := model{traj: tr, method: method, fps: fps, scale: scale}
	_, err := tea.NewProgram(m).Run()
	return err
}

func (m model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m model) Init() tea.Cmd {
	return m.tick()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case " ":
			m.paused = !m.paused
		case "r":
			m.frame = 0
		}
	case tickMsg:
		if !m.paused && m.frame < len(m.traj.States)-1 {
			m.frame++
		}
		return m, m.tick()
	}
	return m, nil
}

func (m model) View() string {
	var b strings.Builder

	t := m.traj.Times[m.frame]
	status := green.Render("playing")
	if m.paused {
		status = yellow.Render("paused")
	}
	b.WriteString(fmt.Sprintf("\n  %s  %s  %s  %s\n\n",
		cyan.Render("torchode replay"),
		white.Render(m.method),
		dim.Render(fmt.Sprintf("t=%.3f  frame %d/%d", t, m.frame, len(m.traj.States)-1)),
		status))

	state := m.traj.States[m.frame]
	shown := len(state)
	if shown > maxElements {
		shown = maxElements
	}

	for i := 0; i < shown; i++ {
		b.WriteString("  " + dim.Render(fmt.Sprintf("x%-2d", i)) + bar(state[i], m.scale) +
			white.Render(fmt.Sprintf(" %+.4f", state[i])) + "\n")
	}
	if shown < len(state) {
		b.WriteString(dim.Render(fmt.Sprintf("  ... %d more elements\n", len(state)-shown)))
	}

	b.WriteString("\n  " + dim.Render("space pause · r restart · q quit") + "\n")
	return b.String()
}

// bar renders a signed magnitude bar around a centered zero axis.
func bar(v, scale float64) string {
	half := barWidth / 2
	n := int(v / scale * float64(half))
	if n > half {
		n = half
	}
	if n < -half {
		n = -half
	}

	left := strings.Repeat(" ", half)
	right := strings.Repeat(" ", half)
	if n >= 0 {
		right = green.Render(strings.Repeat("█", n)) + strings.Repeat(" ", half-n)
	} else {
		left = strings.Repeat(" ", half+n) + yellow.Render(strings.Repeat("█", -n))
	}
	return left + dim.Render("│") + right
}
