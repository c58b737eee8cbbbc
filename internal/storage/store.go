package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/san-kum/windsim/internal/aero"
	"github.com/san-kum/windsim/internal/sim"
	"github.com/san-kum/windsim/internal/turbine"
)

var (
	ErrRunNotFound  = errors.New("storage: run not found")
	ErrAmbiguousRun = errors.New("storage: run id prefix is ambiguous")
	ErrBadSeries    = errors.New("storage: malformed series file")
)

const (
	metadataFile = "metadata.json"
	seriesFile   = "series.csv"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID         string             `json:"id"`
	Turbine    string             `json:"turbine"`
	Params     turbine.Params     `json:"params"`
	Timestamp  time.Time          `json:"timestamp"`
	Dt         float64            `json:"dt"`
	Steps      int                `json:"steps"`
	Aero       string             `json:"aero"`
	Controller string             `json:"controller"`
	Wind       string             `json:"wind"`
	Case       string             `json:"case,omitempty"`
	Metrics    map[string]float64 `json:"metrics"`
}

// RunInfo describes how a run was set up. The rest of the metadata comes
// from the state itself.
type RunInfo struct {
	Params     turbine.Params
	Controller string
	Wind       string
	Case       string
}

// Save writes metadata.json and series.csv into a new run directory and
// returns the run id.
func (s *Store) Save(info RunInfo, st *sim.State) (string, error) {
	runID := fmt.Sprintf("%s_%s", slug(info.Params.Name), uuid.NewString())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:         runID,
		Turbine:    info.Params.Name,
		Params:     info.Params,
		Timestamp:  time.Now(),
		Dt:         st.Dt,
		Steps:      st.Len(),
		Aero:       st.Aero.String(),
		Controller: info.Controller,
		Wind:       info.Wind,
		Case:       info.Case,
		Metrics:    st.Metrics,
	}

	if err := writeJSON(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", err
	}

	f, err := os.Create(filepath.Join(runDir, seriesFile))
	if err != nil {
		return "", err
	}
	defer f.Close()

	if err := WriteCSV(f, st); err != nil {
		return "", err
	}
	return runID, f.Close()
}

// List returns all readable runs, newest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.After(runs[j].Timestamp)
	})
	return runs, nil
}

// Resolve expands a unique prefix of a run id.
func (s *Store) Resolve(prefix string) (string, error) {
	if _, err := os.Stat(filepath.Join(s.baseDir, prefix, metadataFile)); err == nil {
		return prefix, nil
	}

	entries, err := os.ReadDir(s.baseDir)
	if err != nil && !os.IsNotExist(err) {
		return "", err
	}
	var matches []string
	for _, entry := range entries {
		if entry.IsDir() && strings.HasPrefix(entry.Name(), prefix) {
			matches = append(matches, entry.Name())
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("%w: %s", ErrRunNotFound, prefix)
	case 1:
		return matches[0], nil
	}
	return "", fmt.Errorf("%w: %s matches %d runs", ErrAmbiguousRun, prefix, len(matches))
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadState rebuilds the recorded trajectory of a run.
func (s *Store) LoadState(runID string) (*sim.State, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(filepath.Join(s.baseDir, runID, seriesFile))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: no header", ErrBadSeries)
	}

	st := &sim.State{
		Turbine: meta.Turbine,
		Dt:      meta.Dt,
		Metrics: meta.Metrics,
	}
	if v, ok := aero.ParseVariant(meta.Aero); ok {
		st.Aero = v
	}

	names, _ := st.Columns()
	index := make(map[string]int, len(records[0]))
	for i, h := range records[0] {
		index[h] = i
	}
	for _, name := range names {
		if _, ok := index[name]; !ok {
			return nil, fmt.Errorf("%w: missing column %q", ErrBadSeries, name)
		}
	}

	series := make([][]float64, len(names))
	for i := range series {
		series[i] = make([]float64, 0, len(records)-1)
	}
	for row, rec := range records[1:] {
		for i, name := range names {
			v, err := strconv.ParseFloat(rec[index[name]], 64)
			if err != nil {
				return nil, fmt.Errorf("%w: row %d column %s: %v", ErrBadSeries, row+2, name, err)
			}
			series[i] = append(series[i], v)
		}
	}
	// series follows Columns order.
	st.Time, st.WindSpeed, st.RotorSpeed, st.GenSpeed = series[0], series[1], series[2], series[3]
	st.AeroTorque, st.GenTorque, st.BladePitch, st.GenPower = series[4], series[5], series[6], series[7]
	return st, nil
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return err
	}
	return f.Close()
}

func slug(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return "run"
	}
	return strings.Map(func(r rune) rune {
		if r >= 'a' && r <= 'z' || r >= '0' && r <= '9' {
			return r
		}
		return '-'
	}, name)
}
