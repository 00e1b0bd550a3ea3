package frame

import (
	"errors"
	"fmt"
)

// ErrStopped is returned by Frame once the driver has left the running state.
var ErrStopped = errors.New("frame: driver stopped")

// Error wraps a collaborator failure with the frame it happened in.
type Error struct {
	Frame uint64
	Op    string
	Err   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("frame %d: %s: %v", e.Frame, e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}
