package control

// PID is a discrete PID loop with output saturation. The integral is clamped
// so that its contribution alone stays inside [Min, Max].
type PID struct {
	Kp  float64
	Ki  float64
	Kd  float64
	Min float64
	Max float64

	integral float64
	prevErr  float64
	first    bool
}

func NewPID(kp, ki, kd, min, max float64) *PID {
	return &PID{
		Kp:    kp,
		Ki:    ki,
		Kd:    kd,
		Min:   min,
		Max:   max,
		first: true,
	}
}

// Update advances the loop by dt with the current error.
func (p *PID) Update(err, dt float64) float64 {
	if p.first {
		p.prevErr = err
		p.first = false
	}

	p.integral += err * dt
	if p.Ki != 0 {
		lo, hi := p.Min/p.Ki, p.Max/p.Ki
		if lo > hi {
			lo, hi = hi, lo
		}
		p.integral = clamp(p.integral, lo, hi)
	}

	var derivative float64
	if dt > 0 {
		derivative = (err - p.prevErr) / dt
	}
	p.prevErr = err

	return clamp(p.Kp*err+p.Ki*p.integral+p.Kd*derivative, p.Min, p.Max)
}

// Preset loads the integral so that the next zero-error output equals u.
func (p *PID) Preset(u float64) {
	p.Reset()
	if p.Ki != 0 {
		p.integral = clamp(u, p.Min, p.Max) / p.Ki
	}
}

// Reset clears integral and derivative state
func (p *PID) Reset() {
	p.integral = 0
	p.prevErr = 0
	p.first = true
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
