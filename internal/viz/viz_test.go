package viz

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/windsim/internal/sim"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rampState(n int) *sim.State {
	st := &sim.State{Turbine: "NREL-5MW", Dt: 0.1, Metrics: map[string]float64{"mean_power": 1.5e6, "energy": 3e8}}
	for i := 0; i < n; i++ {
		f := float64(i)
		st.Time = append(st.Time, f*0.1)
		st.WindSpeed = append(st.WindSpeed, 10)
		st.RotorSpeed = append(st.RotorSpeed, 1+0.01*f)
		st.GenSpeed = append(st.GenSpeed, (1+0.01*f)*97)
		st.AeroTorque = append(st.AeroTorque, 2e6)
		st.GenTorque = append(st.GenTorque, 2e4)
		st.BladePitch = append(st.BladePitch, 0.1*f)
		st.GenPower = append(st.GenPower, 1e6+f)
	}
	return st
}

func TestCanvasLineAndRotor(t *testing.T) {
	c := NewCanvas(4, 2)
	c.DrawLine(0, 0, 7, 0)
	lines := strings.Split(strings.TrimRight(c.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "⠉⠉⠉⠉", lines[0])
	assert.Equal(t, "⠀⠀⠀⠀", lines[1])

	c.Set(-1, 3)
	c.Set(100, 100)

	rotor := NewCanvas(16, 8)
	rotor.DrawRotor(0, 0)
	assert.NotEqual(t, NewCanvas(16, 8).String(), rotor.String())
	// Blade 1 points straight up from the hub.
	assert.NotEqual(t, rune(brailleBlank), rotor.Grid[0][8])
}

func TestPlotSeries(t *testing.T) {
	st := rampState(50)
	out, err := PlotSeries(st, []string{"rotor_speed", "blade_pitch"}, 40, 6)
	require.NoError(t, err)
	assert.Contains(t, out, "rotor_speed [rad/s]")
	assert.Contains(t, out, "blade_pitch [deg]")

	_, err = PlotSeries(st, []string{"yaw"}, 40, 6)
	assert.ErrorContains(t, err, "unknown series")
}

func TestPlotSweep(t *testing.T) {
	out, err := PlotSweep([]*sim.State{rampState(20), nil, rampState(30)}, "gen_power", 40, 6)
	require.NoError(t, err)
	assert.Contains(t, out, "2 runs")

	_, err = PlotSweep(nil, "gen_power", 40, 6)
	assert.Error(t, err)
}

func TestSummary(t *testing.T) {
	out := Summary("run", rampState(1).Metrics, NewStyles(GetTheme("minimal")))
	assert.Contains(t, out, "mean_power")
	assert.Contains(t, out, "1.5e+06")
	assert.Less(t, strings.Index(out, "energy"), strings.Index(out, "mean_power"))
}

func TestThemes(t *testing.T) {
	assert.Equal(t, "retro", GetTheme("retro").Name)
	assert.Equal(t, Themes[0].Name, GetTheme("nope").Name)
	assert.Len(t, ThemeNames(), len(Themes))
}

func TestReplayPlayback(t *testing.T) {
	st := rampState(100)
	m := NewReplay(st, "test")
	require.NotNil(t, m.Init())

	_, cmd := m.Update(tickMsg{})
	require.NotNil(t, cmd)
	// 50 ms at 1x with dt 0.1 s is half a sample.
	assert.Equal(t, 0, m.Cursor())
	m.Update(tickMsg{})
	assert.Equal(t, 1, m.Cursor())

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'+'}})
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'+'}})
	m.Update(tickMsg{})
	assert.Equal(t, 3, m.Cursor())

	m.Update(tea.KeyMsg{Type: tea.KeySpace})
	m.Update(tickMsg{})
	assert.Equal(t, 3, m.Cursor())
	assert.Contains(t, m.View(), "PAUSED")

	m.Update(tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, 4, m.Cursor())
	m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, 2, m.Cursor())

	for i := 0; i < 200; i++ {
		m.Update(tea.KeyMsg{Type: tea.KeyRight})
	}
	assert.True(t, m.Done())
	assert.Equal(t, 99, m.Cursor())

	view := m.View()
	assert.Contains(t, view, "blade pitch")
	assert.Contains(t, view, "9.90 deg")

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestReplayAzimuthReturnsWhenSteppingBack(t *testing.T) {
	m := NewReplay(rampState(10), "test")
	m.advance(5)
	assert.Greater(t, m.azimuth, 0.0)
	m.advance(-5)
	assert.InDelta(t, 0, m.azimuth, 1e-12)
}
