package aero

import (
	"github.com/san-kum/windsim/internal/turbine"
	"github.com/sirupsen/logrus"
)

type Variant int

const (
	VariantEvaluator Variant = iota
	VariantInterpolated
)

func (v Variant) String() string {
	switch v {
	case VariantEvaluator:
		return "evaluator"
	case VariantInterpolated:
		return "interpolated"
	default:
		return "unknown"
	}
}

// ParseVariant is the inverse of Variant.String.
func ParseVariant(s string) (Variant, bool) {
	switch s {
	case "evaluator":
		return VariantEvaluator, true
	case "interpolated":
		return VariantInterpolated, true
	}
	return 0, false
}

type EvaluatorSource struct {
	ev Evaluator
}

func NewEvaluatorSource(ev Evaluator) *EvaluatorSource {
	return &EvaluatorSource{ev: ev}
}

func (s *EvaluatorSource) Coefficients(q Query) (Coefficients, error) {
	perf, err := s.ev.Evaluate(q.WindSpeed, turbine.RadSecToRPM(q.RotorSpeed), q.Pitch)
	if err != nil {
		return Coefficients{}, &EvaluationError{Query: q, Wrapped: err}
	}
	return Coefficients{Cq: perf.Cq, Cp: perf.Cp, Ct: perf.Ct, HasPowerThrust: true}, nil
}

type SurfaceSource struct {
	surface     *Surface
	rotorRadius float64
}

func NewSurfaceSource(s *Surface, rotorRadius float64) *SurfaceSource {
	return &SurfaceSource{surface: s, rotorRadius: rotorRadius}
}

func (s *SurfaceSource) TipSpeedRatio(q Query) (float64, error) {
	if q.WindSpeed == 0 {
		return 0, ErrZeroWindSpeed
	}
	return q.RotorSpeed * s.rotorRadius / q.WindSpeed, nil
}

func (s *SurfaceSource) Coefficients(q Query) (Coefficients, error) {
	tsr, err := s.TipSpeedRatio(q)
	if err != nil {
		return Coefficients{}, err
	}
	c := Coefficients{Cq: s.surface.Cq(q.Pitch, tsr)}
	if s.surface.HasPowerThrust() {
		c.Cp = s.surface.Cp(q.Pitch, tsr)
		c.Ct = s.surface.Ct(q.Pitch, tsr)
		c.HasPowerThrust = true
	}
	return c, nil
}

// Select probes ev once at the initial operating point. If the probe fails
// the surface is used for the rest of the run; the evaluator is never retried.
// A nil ev selects the surface without probing.
func Select(ev Evaluator, surf *Surface, rotorRadius float64, initial Query, log *logrus.Entry) (Source, Variant, error) {
	if ev == nil {
		if surf == nil {
			return nil, 0, ErrNoSource
		}
		return NewSurfaceSource(surf, rotorRadius), VariantInterpolated, nil
	}

	evSrc := NewEvaluatorSource(ev)
	if _, err := evSrc.Coefficients(initial); err != nil {
		if surf == nil {
			return nil, 0, err
		}
		if log != nil {
			log.WithError(err).Warn("performance evaluator unavailable, using interpolated Cp/Ct/Cq tables")
		}
		return NewSurfaceSource(surf, rotorRadius), VariantInterpolated, nil
	}
	return evSrc, VariantEvaluator, nil
}
