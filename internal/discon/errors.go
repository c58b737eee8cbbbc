package discon

import (
	"errors"
	"fmt"
)

var (
	ErrFaulted             = errors.New("discon: controller already faulted")
	ErrClosed              = errors.New("discon: bridge closed")
	ErrUnsupportedPlatform = errors.New("discon: native controller loading not supported on this platform")
	ErrBadOptions          = errors.New("discon: invalid bridge options")
)

// FaultError is a nonzero aviFAIL returned by the controller.
type FaultError struct {
	Status  int32
	Message string
	Time    float64
}

func (e *FaultError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("discon: controller fault %d at t=%.4f", e.Status, e.Time)
	}
	return fmt.Sprintf("discon: controller fault %d at t=%.4f: %s", e.Status, e.Time, e.Message)
}

// AcquireError is a failure to load the controller or allocate its
// persistent memory.
type AcquireError struct {
	Path    string
	Wrapped error
}

func (e *AcquireError) Error() string {
	return fmt.Sprintf("discon: acquire %s: %v", e.Path, e.Wrapped)
}

func (e *AcquireError) Unwrap() error {
	return e.Wrapped
}
