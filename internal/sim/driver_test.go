package sim

import (
	"errors"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/windsim/internal/aero"
	"github.com/san-kum/windsim/internal/discon"
	"github.com/san-kum/windsim/internal/turbine"
)

// torqueSchedule is an in-process controller library that demands
// k*omega^2 torque and a fixed pitch, faulting on call faultAt (1-based).
type torqueSchedule struct {
	k        float64
	pitchRad float64
	faultAt  int

	statuses []discon.Status
	closed   int
}

func (l *torqueSchedule) Discon(swap *float32, fail *int32, inFile, outName, msg *byte) {
	s := discon.View(swap, discon.MinSwapSize)
	l.statuses = append(l.statuses, s.Status())
	if l.faultAt > 0 && len(l.statuses) == l.faultAt {
		*fail = 1
		return
	}
	w := s.GenSpeed()
	s.SetDemandedGenTorque(l.k * w * w)
	s.SetDemandedPitch(l.pitchRad)
}

func (l *torqueSchedule) Close() error {
	l.closed++
	return nil
}

func bridgeOpener(lib *torqueSchedule) Opener {
	return func() (Controller, error) {
		return discon.NewBridge(lib, discon.Options{OutName: "driver"})
	}
}

var _ = Describe("Simulator driving a controller bridge", func() {
	var (
		params turbine.Params
		surf   *aero.Surface
		lib    *torqueSchedule
		times  []float64
		wind   []float64
	)

	BeforeEach(func() {
		var ok bool
		params, ok = turbine.Preset("NREL-5MW")
		Expect(ok).To(BeTrue())

		var err error
		surf, err = aero.NewSurface(
			[]float64{-2, 0, 5, 15},
			[]float64{2, 6, 9, 14},
			[][]float64{
				{0.020, 0.018, 0.010, 0.001},
				{0.055, 0.050, 0.030, 0.005},
				{0.060, 0.052, 0.028, 0.004},
				{0.040, 0.035, 0.015, 0.001},
			},
		)
		Expect(err).NotTo(HaveOccurred())

		lib = &torqueSchedule{k: 2.1, pitchRad: 0.02}
		times = make([]float64, 10)
		wind = make([]float64, 10)
		for i := range times {
			times[i] = float64(i)
			wind[i] = 10
		}
	})

	Context("with a 10 rpm start on a 97:1 gearbox", func() {
		It("records the initial generator speed and then follows the rotor", func() {
			s := New(params, WithSurface(surf), WithController(bridgeOpener(lib)))
			st, err := s.Run(times, wind, DefaultInitial())
			Expect(err).NotTo(HaveOccurred())

			Expect(params.GearboxRatio).To(Equal(97.0))
			Expect(st.GenSpeed[0]).To(Equal(turbine.RPMToRadSec(10) * 97))
			Expect(st.GenSpeed[1]).To(Equal(st.RotorSpeed[1] * 97))
			Expect(st.GenSpeed[2]).NotTo(Equal(st.GenSpeed[0]))
			Expect(st.Time).To(HaveLen(10))
		})

		It("reports status 0 first, 1 while running and -1 on release", func() {
			s := New(params, WithSurface(surf), WithController(bridgeOpener(lib)))
			_, err := s.Run(times, wind, DefaultInitial())
			Expect(err).NotTo(HaveOccurred())

			Expect(lib.statuses).To(HaveLen(10))
			Expect(lib.statuses[0]).To(Equal(discon.StatusFirstCall))
			for _, st := range lib.statuses[1:9] {
				Expect(st).To(Equal(discon.StatusRunning))
			}
			Expect(lib.statuses[9]).To(Equal(discon.StatusFinal))
			Expect(lib.closed).To(Equal(1))
		})

		It("returns the demanded pitch in degrees", func() {
			s := New(params, WithSurface(surf), WithController(bridgeOpener(lib)))
			st, err := s.Run(times, wind, DefaultInitial())
			Expect(err).NotTo(HaveOccurred())
			Expect(st.BladePitch[3]).To(BeNumerically("~", 0.02*180/math.Pi, 1e-4))
		})
	})

	Context("when the controller faults", func() {
		It("aborts with the fault and releases the library", func() {
			lib.faultAt = 5
			s := New(params, WithSurface(surf), WithController(bridgeOpener(lib)))
			st, err := s.Run(times, wind, DefaultInitial())

			Expect(st).To(BeNil())
			var fault *discon.FaultError
			Expect(err).To(BeAssignableToTypeOf(&SimulationError{}))
			Expect(err).To(MatchError(ContainSubstring("step 5")))
			Expect(errors.As(err, &fault)).To(BeTrue())
			Expect(fault.Status).To(Equal(int32(1)))
			Expect(fault.Time).To(Equal(5.0))

			Expect(lib.closed).To(Equal(1))
			Expect(lib.statuses).To(HaveLen(5))
		})
	})

	Context("when the evaluator rejects the first operating point", func() {
		It("runs on the interpolated surface for the whole run", func() {
			ev := &countingEvaluator{err: aero.ErrOutsideEnvelope}
			s := New(params, WithEvaluator(ev), WithSurface(surf), WithController(bridgeOpener(lib)))
			st, err := s.Run(times, wind, DefaultInitial())

			Expect(err).NotTo(HaveOccurred())
			Expect(st.Aero).To(Equal(aero.VariantInterpolated))
			Expect(ev.calls.Load()).To(Equal(int32(1)))
		})
	})

	Context("when a wind sample is zero", func() {
		It("rejects the run before loading the controller", func() {
			wind[3] = 0
			s := New(params, WithSurface(surf), WithController(bridgeOpener(lib)))
			st, err := s.Run(times, wind, DefaultInitial())

			Expect(st).To(BeNil())
			Expect(err).To(MatchError(ErrInvalidInput))
			Expect(lib.statuses).To(BeEmpty())
			Expect(lib.closed).To(Equal(0))
		})
	})
})
