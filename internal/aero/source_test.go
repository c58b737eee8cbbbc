package aero

import (
	"errors"
	"testing"

	"github.com/san-kum/windsim/internal/turbine"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEvaluator struct {
	calls   int
	err     error
	lastRPM float64
}

func (f *fakeEvaluator) Evaluate(windSpeed, rotorRPM, pitch float64) (Performance, error) {
	f.calls++
	f.lastRPM = rotorRPM
	if f.err != nil {
		return Performance{}, f.err
	}
	return Performance{Cq: 0.07, Cp: 0.45, Ct: 0.8}, nil
}

func TestSelectUsesEvaluatorWhenItAnswers(t *testing.T) {
	ev := &fakeEvaluator{}
	src, variant, err := Select(ev, planeSurface(t), 63, Query{WindSpeed: 10, RotorSpeed: turbine.RPMToRadSec(12)}, nil)
	require.NoError(t, err)
	assert.Equal(t, VariantEvaluator, variant)
	assert.Equal(t, 1, ev.calls)
	assert.InDelta(t, 12.0, ev.lastRPM, 1e-12, "evaluator receives rpm")

	c, err := src.Coefficients(Query{WindSpeed: 10, RotorSpeed: 1})
	require.NoError(t, err)
	assert.Equal(t, 0.07, c.Cq)
	assert.True(t, c.HasPowerThrust)
}

func TestSelectFallsBackOnce(t *testing.T) {
	logger, hook := test.NewNullLogger()
	ev := &fakeEvaluator{err: ErrOutsideEnvelope}

	src, variant, err := Select(ev, planeSurface(t), 10, Query{WindSpeed: 10, RotorSpeed: 1}, logrus.NewEntry(logger))
	require.NoError(t, err)
	assert.Equal(t, VariantInterpolated, variant)
	require.Len(t, hook.AllEntries(), 1)
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)

	for i := 0; i < 5; i++ {
		_, err := src.Coefficients(Query{WindSpeed: 8, RotorSpeed: 2, Pitch: 1})
		require.NoError(t, err)
	}
	assert.Equal(t, 1, ev.calls, "evaluator must not be retried after fallback")
}

func TestSelectWithoutSurfaceReturnsEvaluationError(t *testing.T) {
	_, _, err := Select(Unavailable{}, nil, 63, Query{WindSpeed: 10}, nil)
	var evalErr *EvaluationError
	require.True(t, errors.As(err, &evalErr))
	assert.ErrorIs(t, err, ErrNoEvaluator)
}

func TestSelectNilEvaluator(t *testing.T) {
	_, variant, err := Select(nil, planeSurface(t), 63, Query{}, nil)
	require.NoError(t, err)
	assert.Equal(t, VariantInterpolated, variant)

	_, _, err = Select(nil, nil, 63, Query{}, nil)
	assert.ErrorIs(t, err, ErrNoSource)
}

func TestSurfaceSourceTipSpeedRatio(t *testing.T) {
	src := NewSurfaceSource(planeSurface(t), 50)

	c, err := src.Coefficients(Query{WindSpeed: 10, RotorSpeed: 1, Pitch: 5})
	require.NoError(t, err)
	// tsr = 1 * 50 / 10
	assert.InDelta(t, 0.01*5+0.001*5, c.Cq, 1e-12)
	assert.False(t, c.HasPowerThrust)

	_, err = src.Coefficients(Query{WindSpeed: 0, RotorSpeed: 1})
	assert.ErrorIs(t, err, ErrZeroWindSpeed)
}

func TestVariantString(t *testing.T) {
	assert.Equal(t, "evaluator", VariantEvaluator.String())
	assert.Equal(t, "interpolated", VariantInterpolated.String())
	assert.Equal(t, "unknown", Variant(9).String())
}

func TestParseVariant(t *testing.T) {
	for _, v := range []Variant{VariantEvaluator, VariantInterpolated} {
		got, ok := ParseVariant(v.String())
		assert.True(t, ok)
		assert.Equal(t, v, got)
	}
	_, ok := ParseVariant("unknown")
	assert.False(t, ok)
}
