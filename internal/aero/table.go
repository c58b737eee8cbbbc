package aero

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// PerformanceTable is the content of a rotor performance text file as
// written by the ROSCO toolbox.
type PerformanceTable struct {
	Pitch     []float64
	TSR       []float64
	WindSpeed []float64
	Cp        [][]float64
	Ct        [][]float64
	Cq        [][]float64
}

type section int

const (
	secNone section = iota
	secPitch
	secTSR
	secWind
	secCp
	secCt
	secCq
)

func ReadPerformanceFile(path string) (*PerformanceTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	tbl, err := ParsePerformance(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return tbl, nil
}

func ParsePerformance(r io.Reader) (*PerformanceTable, error) {
	tbl := &PerformanceTable{}
	cur := secNone

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "#") {
			cur = classify(line)
			continue
		}
		if cur == secNone {
			continue
		}

		vals, err := parseRow(line)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrMalformedGrid, lineNo, err)
		}

		switch cur {
		case secPitch:
			tbl.Pitch = append(tbl.Pitch, vals...)
		case secTSR:
			tbl.TSR = append(tbl.TSR, vals...)
		case secWind:
			tbl.WindSpeed = append(tbl.WindSpeed, vals...)
		case secCp:
			tbl.Cp = append(tbl.Cp, vals)
		case secCt:
			tbl.Ct = append(tbl.Ct, vals)
		case secCq:
			tbl.Cq = append(tbl.Cq, vals)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}

	if len(tbl.Cq) == 0 {
		return nil, fmt.Errorf("%w: no torque coefficient table", ErrMalformedGrid)
	}
	return tbl, nil
}

// Surface builds the interpolation surface; Cp and Ct are attached when
// both are present.
func (t *PerformanceTable) Surface() (*Surface, error) {
	s, err := NewSurface(t.Pitch, t.TSR, t.Cq)
	if err != nil {
		return nil, err
	}
	if len(t.Cp) > 0 && len(t.Ct) > 0 {
		if err := s.WithPowerThrust(t.Cp, t.Ct); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func classify(header string) section {
	h := strings.ToLower(header)
	switch {
	case strings.Contains(h, "pitch angle"):
		return secPitch
	case strings.Contains(h, "tsr"):
		return secTSR
	case strings.Contains(h, "wind speed"):
		return secWind
	case strings.Contains(h, "power coef"):
		return secCp
	case strings.Contains(h, "thrust coef"):
		return secCt
	case strings.Contains(h, "torque coef"):
		return secCq
	}
	return secNone
}

func parseRow(line string) ([]float64, error) {
	fields := strings.Fields(line)
	vals := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, err
		}
		vals[i] = v
	}
	return vals, nil
}
