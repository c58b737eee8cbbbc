package wind

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// LoadSeries reads a two-column time,wind_speed CSV file. A non-numeric first
// row is treated as a header.
func LoadSeries(path string) (times, speeds []float64, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	times, speeds, err = ReadSeries(f)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}
	return times, speeds, nil
}

func ReadSeries(r io.Reader) (times, speeds []float64, err error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.Comment = '#'
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, nil, err
	}

	for i, rec := range records {
		if len(rec) < 2 {
			return nil, nil, fmt.Errorf("%w: row %d has %d columns", ErrBadProfile, i+1, len(rec))
		}
		t, errT := strconv.ParseFloat(strings.TrimSpace(rec[0]), 64)
		v, errV := strconv.ParseFloat(strings.TrimSpace(rec[1]), 64)
		if errT != nil || errV != nil {
			if i == 0 {
				continue
			}
			return nil, nil, fmt.Errorf("%w: row %d is not numeric", ErrBadProfile, i+1)
		}
		times = append(times, t)
		speeds = append(speeds, v)
	}
	return times, speeds, nil
}
