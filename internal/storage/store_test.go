package storage

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/san-kum/windsim/internal/aero"
	"github.com/san-kum/windsim/internal/sim"
	"github.com/san-kum/windsim/internal/turbine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleState() *sim.State {
	return &sim.State{
		Turbine:    "NREL-5MW",
		Dt:         0.05,
		Aero:       aero.VariantInterpolated,
		Time:       []float64{0, 0.05, 0.1},
		WindSpeed:  []float64{10, 10, 10.5},
		RotorSpeed: []float64{1.0471975511965976, 1.05, 1.0512345678901234},
		GenSpeed:   []float64{101.57816246606997, 101.85, 101.96975308534197},
		AeroTorque: []float64{1000, 2.1e6, 2.2e6},
		GenTorque:  []float64{1, 21000, 21500},
		BladePitch: []float64{0, 0.25, 0.5},
		GenPower:   []float64{0, 212345.5, 219876.25},
		Metrics:    map[string]float64{"mean_power": 144073.9},
	}
}

func nrel(t *testing.T) turbine.Params {
	t.Helper()
	p, ok := turbine.Preset("NREL-5MW")
	require.True(t, ok)
	return p
}

func TestStoreSaveLoad(t *testing.T) {
	st := New(t.TempDir())
	require.NoError(t, st.Init())

	state := sampleState()
	runID, err := st.Save(RunInfo{Params: nrel(t), Controller: "baseline", Wind: "constant 10 m/s"}, state)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(runID, "nrel-5mw_"))

	meta, err := st.Load(runID)
	require.NoError(t, err)
	assert.Equal(t, "NREL-5MW", meta.Turbine)
	assert.Equal(t, 3, meta.Steps)
	assert.Equal(t, "interpolated", meta.Aero)
	assert.Equal(t, "baseline", meta.Controller)
	assert.Equal(t, 97.0, meta.Params.GearboxRatio)
	assert.Equal(t, 144073.9, meta.Metrics["mean_power"])

	loaded, err := st.LoadState(runID)
	require.NoError(t, err)
	assert.Equal(t, state.Time, loaded.Time)
	assert.Equal(t, state.RotorSpeed, loaded.RotorSpeed)
	assert.Equal(t, state.GenSpeed, loaded.GenSpeed)
	assert.Equal(t, state.GenPower, loaded.GenPower)
	assert.Equal(t, aero.VariantInterpolated, loaded.Aero)
	assert.Equal(t, 0.05, loaded.Dt)
}

func TestStoreListNewestFirst(t *testing.T) {
	st := New(t.TempDir())
	require.NoError(t, st.Init())

	first, err := st.Save(RunInfo{Params: nrel(t), Case: "a"}, sampleState())
	require.NoError(t, err)
	second, err := st.Save(RunInfo{Params: nrel(t), Case: "b"}, sampleState())
	require.NoError(t, err)

	require.NoError(t, os.MkdirAll(filepath.Join(st.baseDir, "junk"), 0755))

	runs, err := st.List()
	require.NoError(t, err)
	require.Len(t, runs, 2)
	ids := []string{runs[0].ID, runs[1].ID}
	assert.ElementsMatch(t, []string{first, second}, ids)
	assert.False(t, runs[0].Timestamp.Before(runs[1].Timestamp))
}

func TestStoreListMissingDir(t *testing.T) {
	runs, err := New(filepath.Join(t.TempDir(), "absent")).List()
	require.NoError(t, err)
	assert.Empty(t, runs)
}

func TestStoreResolve(t *testing.T) {
	st := New(t.TempDir())
	require.NoError(t, st.Init())

	runID, err := st.Save(RunInfo{Params: nrel(t)}, sampleState())
	require.NoError(t, err)

	got, err := st.Resolve(runID)
	require.NoError(t, err)
	assert.Equal(t, runID, got)

	got, err = st.Resolve(runID[:len("nrel-5mw_")+6])
	require.NoError(t, err)
	assert.Equal(t, runID, got)

	_, err = st.Save(RunInfo{Params: nrel(t)}, sampleState())
	require.NoError(t, err)
	_, err = st.Resolve("nrel-5mw_")
	assert.ErrorIs(t, err, ErrAmbiguousRun)

	_, err = st.Resolve("iea")
	assert.ErrorIs(t, err, ErrRunNotFound)
}

func TestStoreLoadMissing(t *testing.T) {
	st := New(t.TempDir())
	_, err := st.Load("nope")
	assert.ErrorIs(t, err, ErrRunNotFound)
	_, err = st.LoadState("nope")
	assert.ErrorIs(t, err, ErrRunNotFound)
}

func TestLoadStateRejectsMissingColumn(t *testing.T) {
	st := New(t.TempDir())
	require.NoError(t, st.Init())
	runID, err := st.Save(RunInfo{Params: nrel(t)}, sampleState())
	require.NoError(t, err)

	path := filepath.Join(st.baseDir, runID, seriesFile)
	require.NoError(t, os.WriteFile(path, []byte("time,wind_speed\n0,10\n"), 0644))
	_, err = st.LoadState(runID)
	assert.ErrorIs(t, err, ErrBadSeries)
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sampleState()))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "time,wind_speed,rotor_speed,gen_speed,aero_torque,gen_torque,blade_pitch,gen_power", lines[0])
	assert.True(t, strings.HasPrefix(lines[2], "0.05,10,1.05,"))
}

func TestExportJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, ExportJSON(&buf, nil, sampleState()))

	var data ExportData
	require.NoError(t, json.Unmarshal(buf.Bytes(), &data))
	assert.Nil(t, data.Run)
	assert.Equal(t, 3, data.Steps)
	assert.Equal(t, "interpolated", data.Aero)
	assert.Len(t, data.Series, 8)
	assert.Equal(t, []float64{0, 0.25, 0.5}, data.Series["blade_pitch"])
}
