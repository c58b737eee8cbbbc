package discon

import (
	"errors"
	"math"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedLibrary records what the bridge passes and answers with fixed
// demands. failAt makes the n-th call (1-based) report a fault.
type scriptedLibrary struct {
	statuses  []Status
	times     []float64
	inFile    string
	outName   string
	overrides [][2]float64
	torque    float64
	pitchRad  float64
	failAt    int
	failMsg   string
	closed    int
	closeErr  error
}

func (l *scriptedLibrary) Discon(swap *float32, fail *int32, inFile, outName, msg *byte) {
	s := View(swap, MinSwapSize)
	l.statuses = append(l.statuses, s.Status())
	l.times = append(l.times, s.Time())
	l.inFile = readCString(inFile)
	l.outName = readCString(outName)
	p, q := s.Overrides()
	l.overrides = append(l.overrides, [2]float64{p, q})

	// Leave junk in the override records to check they are cleared.
	s.set(recPitchOverride, 7)
	s.set(recTorqueOverride, 7)

	if l.failAt > 0 && len(l.statuses) == l.failAt {
		*fail = -1
		out := unsafe.Slice(msg, len(l.failMsg)+1)
		copy(out, l.failMsg)
		return
	}
	s.SetDemandedGenTorque(l.torque)
	s.SetDemandedPitch(l.pitchRad)
}

func (l *scriptedLibrary) Close() error {
	l.closed++
	return l.closeErr
}

func readCString(p *byte) string {
	var out []byte
	for ptr := unsafe.Pointer(p); *(*byte)(ptr) != 0; ptr = unsafe.Add(ptr, 1) {
		out = append(out, *(*byte)(ptr))
	}
	return string(out)
}

func TestBridgeFirstAndSubsequentCalls(t *testing.T) {
	lib := &scriptedLibrary{torque: 43000, pitchRad: 0.1}
	b, err := NewBridge(lib, Options{ParamFile: "DISCON.IN", OutName: "case1"})
	require.NoError(t, err)

	for i := 1; i <= 3; i++ {
		tq, pitch, err := b.Call(float64(i)*0.1, 0.1, 0, 100, 1.2, 10)
		require.NoError(t, err)
		assert.InDelta(t, 43000, tq, 1e-3)
		assert.InDelta(t, 0.1*180/math.Pi, pitch, 1e-4)
	}

	assert.Equal(t, []Status{StatusFirstCall, StatusRunning, StatusRunning}, lib.statuses)
	assert.Equal(t, "DISCON.IN", lib.inFile)
	assert.Equal(t, "case1", lib.outName)
	assert.Equal(t, 3, b.Calls())

	for _, ov := range lib.overrides {
		assert.Equal(t, [2]float64{0, 0}, ov, "overrides cleared before every call")
	}
}

func TestBridgeWritesMeasurements(t *testing.T) {
	var seen Swap
	lib := &captureLibrary{onCall: func(s Swap) { seen = append(Swap(nil), s...) }}
	b, err := NewBridge(lib, Options{})
	require.NoError(t, err)

	_, _, err = b.Call(2.5, 0.025, 90, 120.5, 1.25, 11.4)
	require.NoError(t, err)

	assert.InDelta(t, 2.5, seen.Time(), 1e-6)
	assert.InDelta(t, 0.025, float64(seen[recCommInterval-1]), 1e-6)
	b1, b2, b3 := seen.MeasuredPitch()
	assert.InDelta(t, math.Pi/2, b1, 1e-6, "pitch passed in radians")
	assert.Equal(t, b1, b2)
	assert.Equal(t, b1, b3)
	assert.InDelta(t, 120.5, seen.GenSpeed(), 1e-4)
	assert.InDelta(t, 1.25, seen.RotorSpeed(), 1e-6)
	assert.InDelta(t, 11.4, seen.HubWindSpeed(), 1e-5)
	assert.Equal(t, float32(DefaultMessageSize+1), seen[recMessageLen-1])
	assert.Equal(t, float32(len(DefaultParamFile)+1), seen[recInFileLen-1])
	assert.Equal(t, float32(len(DefaultOutName)+1), seen[recOutNameLen-1])
}

type captureLibrary struct {
	onCall func(Swap)
}

func (c *captureLibrary) Discon(swap *float32, fail *int32, inFile, outName, msg *byte) {
	c.onCall(View(swap, DefaultSwapSize))
}

func (c *captureLibrary) Close() error { return nil }

func TestBridgeFault(t *testing.T) {
	lib := &scriptedLibrary{failAt: 2, failMsg: "  ROSCO:ERROR: rotor overspeed  "}
	b, err := NewBridge(lib, Options{})
	require.NoError(t, err)

	_, _, err = b.Call(0.1, 0.1, 0, 100, 1, 10)
	require.NoError(t, err)

	_, _, err = b.Call(0.2, 0.1, 0, 100, 1, 10)
	var fe *FaultError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, int32(-1), fe.Status)
	assert.Equal(t, "ROSCO:ERROR: rotor overspeed", fe.Message)
	assert.InDelta(t, 0.2, fe.Time, 1e-9)

	_, _, err = b.Call(0.3, 0.1, 0, 100, 1, 10)
	assert.ErrorIs(t, err, ErrFaulted)

	require.NoError(t, b.Close())
	assert.Len(t, lib.statuses, 2, "no final call after a fault")
	assert.Equal(t, 1, lib.closed)
}

func TestBridgeCloseSendsFinalCall(t *testing.T) {
	lib := &scriptedLibrary{}
	b, err := NewBridge(lib, Options{})
	require.NoError(t, err)

	_, _, err = b.Call(0.1, 0.1, 0, 100, 1, 10)
	require.NoError(t, err)

	require.NoError(t, b.Close())
	require.NoError(t, b.Close())
	assert.Equal(t, []Status{StatusFirstCall, StatusFinal}, lib.statuses)
	assert.Equal(t, 1, lib.closed)

	_, _, err = b.Call(0.2, 0.1, 0, 100, 1, 10)
	assert.ErrorIs(t, err, ErrClosed)
}

func TestBridgeCloseWithoutCalls(t *testing.T) {
	lib := &scriptedLibrary{closeErr: errors.New("dlclose failed")}
	b, err := NewBridge(lib, Options{})
	require.NoError(t, err)

	err = b.Close()
	assert.EqualError(t, err, "dlclose failed")
	assert.Empty(t, lib.statuses)
}

func TestNewBridgeRejectsBadSizes(t *testing.T) {
	_, err := NewBridge(&scriptedLibrary{}, Options{SwapSize: 10})
	var ae *AcquireError
	require.True(t, errors.As(err, &ae))
	assert.ErrorIs(t, err, ErrBadOptions)

	_, err = NewBridge(&scriptedLibrary{}, Options{MessageSize: -4})
	assert.ErrorIs(t, err, ErrBadOptions)
}

func TestDialMissingLibrary(t *testing.T) {
	_, err := Dial("/nonexistent/libdiscon.so", Options{})
	var ae *AcquireError
	require.True(t, errors.As(err, &ae))
	assert.Equal(t, "/nonexistent/libdiscon.so", ae.Path)
}

func TestBridgesAreIsolated(t *testing.T) {
	a := &scriptedLibrary{torque: 1}
	c := &scriptedLibrary{torque: 2}
	ba, err := NewBridge(a, Options{})
	require.NoError(t, err)
	bc, err := NewBridge(c, Options{})
	require.NoError(t, err)

	_, _, err = ba.Call(0.1, 0.1, 0, 1, 1, 10)
	require.NoError(t, err)
	_, _, err = bc.Call(0.1, 0.1, 0, 1, 1, 10)
	require.NoError(t, err)

	assert.NotSame(t, &ba.swap[0], &bc.swap[0])
	assert.Equal(t, []Status{StatusFirstCall}, c.statuses, "second bridge gets its own first call")
}
