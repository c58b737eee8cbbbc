package wind

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeGrid(t *testing.T) {
	times, err := TimeGrid(1, 9)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, times)

	times, err = TimeGrid(0.025, 1)
	require.NoError(t, err)
	assert.Len(t, times, 41)

	_, err = TimeGrid(0, 1)
	assert.ErrorIs(t, err, ErrBadProfile)
	_, err = TimeGrid(1, 0.5)
	assert.ErrorIs(t, err, ErrBadProfile)
}

func TestProfiles(t *testing.T) {
	times := []float64{0, 1, 2, 3, 4}

	assert.Equal(t, []float64{10, 10, 10, 10, 10}, Sample(Constant{Speed: 10}, times))
	assert.Equal(t, []float64{8, 8, 12, 12, 12}, Sample(Step{Before: 8, After: 12, Time: 2}, times))
	assert.Equal(t, []float64{5, 5, 7.5, 10, 10}, Sample(Ramp{From: 5, To: 10, Start: 1, End: 3}, times))
}

func TestReadSeries(t *testing.T) {
	in := "time,wind\n0,8\n0.5, 8.5\n# gust\n1.0,9\n"
	times, speeds, err := ReadSeries(strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0.5, 1}, times)
	assert.Equal(t, []float64{8, 8.5, 9}, speeds)

	_, _, err = ReadSeries(strings.NewReader("0,8\nx,9\n"))
	assert.ErrorIs(t, err, ErrBadProfile)

	_, _, err = ReadSeries(strings.NewReader("0\n"))
	assert.ErrorIs(t, err, ErrBadProfile)
}

func TestLoadSeries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wind.csv")
	require.NoError(t, os.WriteFile(path, []byte("0,10\n1,11\n"), 0644))

	times, speeds, err := LoadSeries(path)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 1}, times)
	assert.Equal(t, []float64{10, 11}, speeds)
}
