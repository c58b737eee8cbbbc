package control

import (
	"errors"
	"fmt"
	"math"

	"github.com/san-kum/windsim/internal/discon"
	"github.com/san-kum/windsim/internal/turbine"
)

var ErrBadGains = errors.New("control: invalid baseline gains")

// Gains configures the baseline controller. Speeds are generator side in
// rad/s, pitch limits in degrees. OptimalGain is k in the below-rated law
// torque = k*omega^2.
type Gains struct {
	RatedGenSpeed float64 `yaml:"rated_gen_speed" json:"rated_gen_speed"`
	RatedTorque   float64 `yaml:"rated_torque" json:"rated_torque"`
	OptimalGain   float64 `yaml:"optimal_gain" json:"optimal_gain"`
	MaxTorqueRate float64 `yaml:"max_torque_rate" json:"max_torque_rate"`

	PitchKp      float64 `yaml:"pitch_kp" json:"pitch_kp"`
	PitchKi      float64 `yaml:"pitch_ki" json:"pitch_ki"`
	MinPitch     float64 `yaml:"min_pitch" json:"min_pitch"`
	MaxPitch     float64 `yaml:"max_pitch" json:"max_pitch"`
	MaxPitchRate float64 `yaml:"max_pitch_rate" json:"max_pitch_rate"`
}

// NREL5MWGains follows the published NREL 5-MW baseline controller.
func NREL5MWGains() Gains {
	return Gains{
		RatedGenSpeed: 122.9096,
		RatedTorque:   43093.55,
		OptimalGain:   2.332287,
		MaxTorqueRate: 15000,
		PitchKp:       0.01882681,
		PitchKi:       0.008068634,
		MinPitch:      0,
		MaxPitch:      90,
		MaxPitchRate:  8,
	}
}

func (g Gains) Validate() error {
	switch {
	case g.RatedGenSpeed <= 0:
		return fmt.Errorf("%w: rated generator speed must be positive", ErrBadGains)
	case g.RatedTorque <= 0:
		return fmt.Errorf("%w: rated torque must be positive", ErrBadGains)
	case g.OptimalGain < 0:
		return fmt.Errorf("%w: optimal gain must not be negative", ErrBadGains)
	case g.MaxPitch <= g.MinPitch:
		return fmt.Errorf("%w: pitch range [%g, %g] is empty", ErrBadGains, g.MinPitch, g.MaxPitch)
	case g.MaxTorqueRate < 0 || g.MaxPitchRate < 0:
		return fmt.Errorf("%w: rate limits must not be negative", ErrBadGains)
	}
	return nil
}

// Baseline is an in-process controller speaking the DISCON calling
// convention: variable-speed torque control below rated with a PI pitch
// loop on generator speed above rated. It satisfies [discon.Library].
type Baseline struct {
	gains Gains
	pitch *PID

	torque   float64
	pitchRad float64
	calls    int
}

func NewBaseline(g Gains) (*Baseline, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}
	return &Baseline{
		gains: g,
		pitch: NewPID(g.PitchKp, g.PitchKi, 0, turbine.DegToRad(g.MinPitch), turbine.DegToRad(g.MaxPitch)),
	}, nil
}

func (b *Baseline) Discon(swap *float32, fail *int32, inFile, outName, msg *byte) {
	s := discon.View(swap, discon.MinSwapSize)
	status := s.Status()
	if status == discon.StatusFinal {
		return
	}

	dt := s.CommInterval()
	if dt <= 0 || math.IsNaN(dt) {
		*fail = -1
		discon.WriteMessage(msg, s.MessageLength(), fmt.Sprintf("baseline: communication interval %g s is not positive", dt))
		return
	}

	w := s.GenSpeed()
	if status == discon.StatusFirstCall {
		b.torque = b.torqueLaw(w)
		b.pitchRad, _, _ = s.MeasuredPitch()
		b.pitch.Preset(b.pitchRad)
	}
	b.calls++

	b.torque = rateLimit(b.torque, b.torqueLaw(w), b.gains.MaxTorqueRate, dt)
	b.pitchRad = rateLimit(b.pitchRad, b.pitch.Update(w-b.gains.RatedGenSpeed, dt), turbine.DegToRad(b.gains.MaxPitchRate), dt)

	s.SetDemandedGenTorque(b.torque)
	s.SetDemandedPitch(b.pitchRad)
}

func (b *Baseline) torqueLaw(w float64) float64 {
	if w <= 0 {
		return 0
	}
	return math.Min(b.gains.OptimalGain*w*w, b.gains.RatedTorque)
}

// Calls is the number of non-final invocations handled.
func (b *Baseline) Calls() int { return b.calls }

func (b *Baseline) Close() error { return nil }

func rateLimit(prev, next, maxRate, dt float64) float64 {
	if maxRate <= 0 {
		return next
	}
	step := maxRate * dt
	return clamp(next, prev-step, prev+step)
}
