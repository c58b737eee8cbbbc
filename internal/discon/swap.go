package discon

import "unsafe"

// Record numbers are 1-based, as in the Bladed documentation.
const (
	recStatus          = 1
	recTime            = 2
	recCommInterval    = 3
	recBlade1Pitch     = 4
	recGenSpeed        = 20
	recRotorSpeed      = 21
	recHubWindSpeed    = 27
	recBlade2Pitch     = 33
	recBlade3Pitch     = 34
	recDemandedPitch1  = 42
	recDemandedPitchCo = 45
	recDemandedTorque  = 47
	recMessageLen      = 49
	recInFileLen       = 50
	recOutNameLen      = 51
	recPitchOverride   = 55
	recTorqueOverride  = 56
)

// DefaultSwapSize leaves room for the controller's logging channels beyond
// the documented records.
const DefaultSwapSize = 2700

// Status is the value of record 1.
type Status int

const (
	StatusFirstCall Status = 0
	StatusRunning   Status = 1
	StatusFinal     Status = -1
)

// Swap is the avrSWAP exchange array in the controller's native precision.
type Swap []float32

func NewSwap(size int) Swap {
	return make(Swap, size)
}

func (s Swap) get(rec int) float64 { return float64(s[rec-1]) }

func (s Swap) set(rec int, v float64) { s[rec-1] = float32(v) }

func (s Swap) Status() Status { return Status(s.get(recStatus)) }

func (s Swap) SetStatus(st Status) { s.set(recStatus, float64(st)) }

func (s Swap) Time() float64 { return s.get(recTime) }

func (s Swap) SetTime(t float64) { s.set(recTime, t) }

func (s Swap) SetCommInterval(dt float64) { s.set(recCommInterval, dt) }

func (s Swap) CommInterval() float64 { return s.get(recCommInterval) }

// SetMeasuredPitch writes the same angle (radians) for all three blades.
func (s Swap) SetMeasuredPitch(rad float64) {
	s.set(recBlade1Pitch, rad)
	s.set(recBlade2Pitch, rad)
	s.set(recBlade3Pitch, rad)
}

func (s Swap) MeasuredPitch() (b1, b2, b3 float64) {
	return s.get(recBlade1Pitch), s.get(recBlade2Pitch), s.get(recBlade3Pitch)
}

func (s Swap) SetGenSpeed(w float64) { s.set(recGenSpeed, w) }

func (s Swap) GenSpeed() float64 { return s.get(recGenSpeed) }

func (s Swap) SetRotorSpeed(w float64) { s.set(recRotorSpeed, w) }

func (s Swap) RotorSpeed() float64 { return s.get(recRotorSpeed) }

func (s Swap) SetHubWindSpeed(v float64) { s.set(recHubWindSpeed, v) }

func (s Swap) HubWindSpeed() float64 { return s.get(recHubWindSpeed) }

// SetStringLengths records the buffer sizes of the MESSAGE, INFILE and
// OUTNAME arguments, terminator included.
func (s Swap) SetStringLengths(msg, inFile, outName int) {
	s.set(recMessageLen, float64(msg))
	s.set(recInFileLen, float64(inFile))
	s.set(recOutNameLen, float64(outName))
}

// MessageLength is the size of the MESSAGE buffer, terminator included.
func (s Swap) MessageLength() int { return int(s.get(recMessageLen)) }

// ClearOverrides zeroes the pitch and torque override records. The
// controller never resets them itself.
func (s Swap) ClearOverrides() {
	s.set(recPitchOverride, 0)
	s.set(recTorqueOverride, 0)
}

func (s Swap) Overrides() (pitch, torque float64) {
	return s.get(recPitchOverride), s.get(recTorqueOverride)
}

// DemandedPitch is the blade 1 pitch demand in radians.
func (s Swap) DemandedPitch() float64 { return s.get(recDemandedPitch1) }

func (s Swap) DemandedCollectivePitch() float64 { return s.get(recDemandedPitchCo) }

func (s Swap) DemandedGenTorque() float64 { return s.get(recDemandedTorque) }

// Controller-side writers, used by in-process controllers and tests.

func (s Swap) SetDemandedPitch(rad float64) {
	s.set(recDemandedPitch1, rad)
	s.set(recDemandedPitchCo, rad)
}

func (s Swap) SetDemandedGenTorque(tq float64) { s.set(recDemandedTorque, tq) }

// MinSwapSize is the smallest array that holds every record the simulator
// reads or writes.
const MinSwapSize = recTorqueOverride

// View reinterprets the avrSWAP pointer received by a controller entry point.
func View(swap *float32, size int) Swap {
	return Swap(unsafe.Slice(swap, size))
}
