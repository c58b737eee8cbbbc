package control

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPIDProportional(t *testing.T) {
	p := NewPID(2, 0, 0, -10, 10)
	assert.InDelta(t, 3.0, p.Update(1.5, 0.1), 1e-12)
	assert.InDelta(t, -4.0, p.Update(-2, 0.1), 1e-12)
}

func TestPIDSaturates(t *testing.T) {
	p := NewPID(100, 0, 0, 0, 1)
	assert.Equal(t, 1.0, p.Update(5, 0.1))
	assert.Equal(t, 0.0, p.Update(-5, 0.1))
}

func TestPIDAntiWindup(t *testing.T) {
	p := NewPID(0, 1, 0, 0, 1)
	for i := 0; i < 1000; i++ {
		p.Update(10, 0.1)
	}
	// Integral is held at the upper limit, so a negative error pulls the
	// output off saturation on the very next step.
	out := p.Update(-1, 0.1)
	assert.InDelta(t, 0.9, out, 1e-9)
}

func TestPIDDerivativeSkipsFirstSample(t *testing.T) {
	p := NewPID(0, 0, 1, -100, 100)
	assert.Equal(t, 0.0, p.Update(5, 0.1))
	assert.InDelta(t, 10.0, p.Update(6, 0.1), 1e-9)
}

func TestPIDPresetAndReset(t *testing.T) {
	p := NewPID(1, 0.5, 0, 0, 2)
	p.Preset(0.4)
	assert.InDelta(t, 0.4, p.Update(0, 0.1), 1e-12)

	p.Reset()
	assert.InDelta(t, 0.0, p.Update(0, 0.1), 1e-12)
}
