package storage

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"

	"github.com/san-kum/windsim/internal/sim"
)

type ExportData struct {
	Run     *RunMetadata         `json:"run,omitempty"`
	Turbine string               `json:"turbine"`
	Aero    string               `json:"aero"`
	Dt      float64              `json:"dt"`
	Steps   int                  `json:"steps"`
	Series  map[string][]float64 `json:"series"`
	Metrics map[string]float64   `json:"metrics"`
}

// WriteCSV writes one row per timestep with a named header.
func WriteCSV(w io.Writer, st *sim.State) error {
	cw := csv.NewWriter(w)
	names, cols := st.Columns()
	if err := cw.Write(names); err != nil {
		return err
	}

	row := make([]string, len(cols))
	for i := 0; i < st.Len(); i++ {
		for j, col := range cols {
			row[j] = strconv.FormatFloat(col[i], 'g', -1, 64)
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportJSON writes the full trajectory as a single JSON document. meta may
// be nil for runs that were never stored.
func ExportJSON(w io.Writer, meta *RunMetadata, st *sim.State) error {
	names, cols := st.Columns()
	data := ExportData{
		Run:     meta,
		Turbine: st.Turbine,
		Aero:    st.Aero.String(),
		Dt:      st.Dt,
		Steps:   st.Len(),
		Series:  make(map[string][]float64, len(names)),
		Metrics: st.Metrics,
	}
	for i, name := range names {
		data.Series[name] = cols[i]
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}
