package discon

import (
	"bytes"
	"errors"
	"fmt"
	"runtime"

	"github.com/san-kum/windsim/internal/turbine"
)

const (
	DefaultParamFile   = "DISCON.IN"
	DefaultOutName     = "windsim"
	DefaultMessageSize = 256
	DefaultSymbol      = "DISCON"
)

// Library is a loaded controller module.
type Library interface {
	Discon(swap *float32, fail *int32, inFile, outName, msg *byte)
	Close() error
}

type Options struct {
	ParamFile   string
	OutName     string
	Symbol      string
	SwapSize    int
	MessageSize int
}

func (o Options) withDefaults() Options {
	if o.ParamFile == "" {
		o.ParamFile = DefaultParamFile
	}
	if o.OutName == "" {
		o.OutName = DefaultOutName
	}
	if o.Symbol == "" {
		o.Symbol = DefaultSymbol
	}
	if o.SwapSize == 0 {
		o.SwapSize = DefaultSwapSize
	}
	if o.MessageSize == 0 {
		o.MessageSize = DefaultMessageSize
	}
	return o
}

// Bridge is the owned handle to one controller instance.
type Bridge struct {
	lib     Library
	swap    Swap
	fail    int32
	inFile  []byte
	outName []byte
	msg     []byte

	calls   int
	faulted bool
	closed  bool
}

// NewBridge takes ownership of lib; it is released by Close.
func NewBridge(lib Library, opts Options) (*Bridge, error) {
	opts = opts.withDefaults()
	if opts.SwapSize < MinSwapSize || opts.MessageSize < 1 {
		return nil, &AcquireError{
			Path:    opts.ParamFile,
			Wrapped: fmt.Errorf("%w: swap size %d, message size %d", ErrBadOptions, opts.SwapSize, opts.MessageSize),
		}
	}

	b := &Bridge{
		lib:     lib,
		swap:    NewSwap(opts.SwapSize),
		inFile:  cString(opts.ParamFile),
		outName: cString(opts.OutName),
		msg:     make([]byte, opts.MessageSize+1),
	}
	b.swap.SetStringLengths(len(b.msg), len(b.inFile), len(b.outName))
	return b, nil
}

// Dial loads the library at path and wraps it in a Bridge.
func Dial(path string, opts Options) (*Bridge, error) {
	opts = opts.withDefaults()
	lib, err := Open(path, opts.Symbol)
	if err != nil {
		return nil, err
	}
	b, err := NewBridge(lib, opts)
	if err != nil {
		lib.Close()
		return nil, err
	}
	return b, nil
}

// Call passes one timestep of measurements to the controller and returns the
// demanded generator torque (N·m) and blade pitch (degrees). prevPitch is in
// degrees; speeds are in rad/s.
func (b *Bridge) Call(t, dt, prevPitch, genSpeed, rotorSpeed, windSpeed float64) (genTorque, pitch float64, err error) {
	if b.closed {
		return 0, 0, ErrClosed
	}
	if b.faulted {
		return 0, 0, ErrFaulted
	}

	if b.calls == 0 {
		b.swap.SetStatus(StatusFirstCall)
	} else {
		b.swap.SetStatus(StatusRunning)
	}
	b.swap.SetTime(t)
	b.swap.SetCommInterval(dt)
	b.swap.SetMeasuredPitch(turbine.DegToRad(prevPitch))
	b.swap.SetGenSpeed(genSpeed)
	b.swap.SetRotorSpeed(rotorSpeed)
	b.swap.SetHubWindSpeed(windSpeed)
	b.swap.ClearOverrides()

	if err := b.invoke(); err != nil {
		var fe *FaultError
		if errors.As(err, &fe) {
			fe.Time = t
		}
		return 0, 0, err
	}
	b.calls++

	return b.swap.DemandedGenTorque(), turbine.RadToDeg(b.swap.DemandedPitch()), nil
}

// Calls is the number of successful controller calls so far.
func (b *Bridge) Calls() int { return b.calls }

// Close sends the final call to an initialised, healthy controller and
// releases the library. It is safe to call more than once.
func (b *Bridge) Close() error {
	if b.closed {
		return nil
	}
	b.closed = true

	var finalErr error
	if b.calls > 0 && !b.faulted {
		b.swap.SetStatus(StatusFinal)
		finalErr = b.invoke()
	}
	return errors.Join(finalErr, b.lib.Close())
}

func (b *Bridge) invoke() error {
	b.fail = 0
	clear(b.msg)

	b.lib.Discon(&b.swap[0], &b.fail, &b.inFile[0], &b.outName[0], &b.msg[0])
	runtime.KeepAlive(b.swap)
	runtime.KeepAlive(b.msg)

	if b.fail != 0 {
		b.faulted = true
		return &FaultError{Status: b.fail, Message: goString(b.msg), Time: b.swap.Time()}
	}
	return nil
}

func cString(s string) []byte {
	out := make([]byte, len(s)+1)
	copy(out, s)
	return out
}

func goString(buf []byte) string {
	if i := bytes.IndexByte(buf, 0); i >= 0 {
		buf = buf[:i]
	}
	return string(bytes.TrimSpace(buf))
}
