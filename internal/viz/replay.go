package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/windsim/internal/sim"
)

const (
	replayFrame   = 50 * time.Millisecond
	historyWindow = 200
)

type tickMsg time.Time

// Replay plays back a recorded run in the terminal.
//
//	space  pause/resume
//	← →    step one sample
//	+ -    change playback speed
//	t      cycle theme
//	q      quit
type Replay struct {
	state   *sim.State
	title   string
	cursor  int
	speed   float64
	paused  bool
	azimuth float64
	theme   int
	styles  Styles
	canvas  *Canvas
	carry   float64
}

func NewReplay(st *sim.State, title string) *Replay {
	return &Replay{
		state:  st,
		title:  title,
		speed:  1,
		styles: NewStyles(Themes[0]),
		canvas: NewCanvas(16, 8),
	}
}

func tick() tea.Cmd {
	return tea.Tick(replayFrame, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m *Replay) Init() tea.Cmd { return tick() }

func (m *Replay) Cursor() int { return m.cursor }

func (m *Replay) Done() bool { return m.cursor >= m.state.Len()-1 }

func (m *Replay) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case " ":
			m.paused = !m.paused
		case "right", "l":
			m.advance(1)
		case "left", "h":
			m.advance(-1)
		case "+", "=":
			m.speed = min(m.speed*2, 64)
		case "-":
			m.speed = max(m.speed/2, 0.125)
		case "t":
			m.theme = (m.theme + 1) % len(Themes)
			m.styles = NewStyles(Themes[m.theme])
		}
		return m, nil

	case tickMsg:
		if !m.paused && !m.Done() {
			m.play(replayFrame.Seconds())
		}
		return m, tick()
	}
	return m, nil
}

// play advances by wall-clock seconds scaled by the playback speed.
func (m *Replay) play(wall float64) {
	dt := m.state.Dt
	if dt <= 0 {
		dt = 1
	}
	m.carry += wall * m.speed / dt
	steps := int(m.carry + 1e-9)
	m.carry -= float64(steps)
	m.advance(steps)
}

func (m *Replay) advance(steps int) {
	if steps == 0 || m.state.Len() == 0 {
		return
	}
	next := max(0, min(m.cursor+steps, m.state.Len()-1))
	for i := m.cursor; i < next; i++ {
		m.azimuth += m.state.RotorSpeed[i+1] * (m.state.Time[i+1] - m.state.Time[i])
	}
	for i := m.cursor; i > next; i-- {
		m.azimuth -= m.state.RotorSpeed[i] * (m.state.Time[i] - m.state.Time[i-1])
	}
	m.cursor = next
}

func (m *Replay) View() string {
	if m.state.Len() == 0 {
		return "empty run\n"
	}
	x := m.state.At(m.cursor)
	s := m.styles

	status := s.Running.Render("PLAYING")
	if m.paused {
		status = s.Paused.Render("PAUSED")
	} else if m.Done() {
		status = s.Paused.Render("END")
	}

	m.canvas.Clear()
	m.canvas.DrawRotor(m.azimuth, x.BladePitch)

	var v strings.Builder
	fmt.Fprintf(&v, "%s  %s  x%g\n\n", s.Title.Render(m.title), status, m.speed)

	rows := []struct {
		label string
		value string
	}{
		{"time", fmt.Sprintf("%.2f s", x.Time)},
		{"wind speed", fmt.Sprintf("%.2f m/s", x.WindSpeed)},
		{"rotor speed", fmt.Sprintf("%.3f rad/s", x.RotorSpeed)},
		{"generator speed", fmt.Sprintf("%.2f rad/s", x.GenSpeed)},
		{"aero torque", fmt.Sprintf("%.4g N·m", x.AeroTorque)},
		{"generator torque", fmt.Sprintf("%.4g N·m", x.GenTorque)},
		{"blade pitch", fmt.Sprintf("%.2f deg", x.BladePitch)},
		{"generator power", fmt.Sprintf("%.4g W", x.GenPower)},
	}
	var panel strings.Builder
	for _, r := range rows {
		panel.WriteString(s.Label.Render(r.label) + s.Value.Render(r.value) + "\n")
	}
	v.WriteString(s.Panel.Render(m.canvas.String() + "\n" + strings.TrimRight(panel.String(), "\n")))
	v.WriteString("\n\n")

	from := max(0, m.cursor-historyWindow)
	v.WriteString(s.Label.Render("rotor speed") + s.Sparkline(m.state.RotorSpeed[from:m.cursor+1], 40) + "\n")
	v.WriteString(s.Label.Render("pitch") + s.Sparkline(m.state.BladePitch[from:m.cursor+1], 40) + "\n")
	progress := float64(m.cursor) / float64(max(m.state.Len()-1, 1))
	v.WriteString(s.Label.Render("progress") + s.ProgressBar(progress, 40) + "\n\n")
	v.WriteString(s.Hint.Render("space pause · ←/→ step · +/- speed · t theme · q quit"))
	return v.String()
}
