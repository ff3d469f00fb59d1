package ddc

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by a Session wraps exactly one of them,
// test with errors.Is.
var (
	ErrEnumeration = errors.New("display enumeration failed")
	ErrResolution  = errors.New("physical monitor resolution failed")
	ErrRelease     = errors.New("physical monitor release failed")
	ErrCommand     = errors.New("vcp command failed")
	ErrRange       = errors.New("value out of range")
	ErrDecode      = errors.New("unrecognized value")
	ErrState       = errors.New("inconsistent state")
	ErrUnsupported = errors.New("monitor configuration api not available")
)

// Error describes a failed operation. Err is the underlying cause, usually
// the OS error, and may be nil.
type Error struct {
	Kind   error
	Op     string
	Handle Handle
	Err    error
}

func (e *Error) Error() string {
	msg := e.Op
	if e.Handle != 0 {
		msg += " on " + e.Handle.String()
	}
	msg += ": " + e.Kind.Error()
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

var errNoPhysicalMonitors = errors.New("no physical monitors")

func commandError(op string, h Handle, code VCPCode, err error) error {
	return &Error{Kind: ErrCommand, Op: fmt.Sprintf("%s(%s)", op, code), Handle: h, Err: err}
}
