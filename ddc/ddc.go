// Package ddc controls external monitors over DDC/CI using the Windows
// monitor configuration API (dxva2).
//
// A Session enumerates logical displays, resolves the physical monitors
// behind them and issues VCP feature requests. Writes to a physical monitor
// are spaced out by a per-handle cooldown since DDC/CI over I2C is slow and
// many monitors misbehave when commands arrive back-to-back. Reads are not
// rate-limited.
package ddc

import "fmt"

// VCPCode is a one-byte MCCS feature code.
type VCPCode byte

const (
	Brightness  VCPCode = 0x10
	InputSelect VCPCode = 0x60
)

func (c VCPCode) String() string {
	switch c {
	case Brightness:
		return "brightness"
	case InputSelect:
		return "input-select"
	default:
		return fmt.Sprintf("vcp-%#02x", byte(c))
	}
}

// Handle is a physical monitor handle. It is owned by whoever opened it
// until it is passed to Session.CloseHandle.
type Handle uintptr

func (h Handle) String() string {
	return fmt.Sprintf("%#x", uintptr(h))
}

// Rect is a display area in virtual screen coordinates.
type Rect struct {
	Left, Top, Right, Bottom int
}

func (r Rect) Width() int  { return r.Right - r.Left }
func (r Rect) Height() int { return r.Bottom - r.Top }

// Display is a logical display (HMONITOR). Bounds and Primary are
// informational and may be zero if the OS did not report them.
type Display struct {
	ID      uintptr
	Bounds  Rect
	Primary bool
}

// PhysicalMonitor is a physical monitor handle together with the
// description the OS reports for it.
type PhysicalMonitor struct {
	Handle      Handle
	Description string
}

// Reply is the answer to a VCP feature query.
type Reply struct {
	Current uint32
	Maximum uint32
}

// API is the subset of the OS monitor configuration API used by Session.
// Errors are returned as reported by the OS.
type API interface {
	EnumDisplayMonitors() ([]Display, error)
	NumberOfPhysicalMonitors(d Display) (uint32, error)
	PhysicalMonitors(d Display, count uint32) ([]PhysicalMonitor, error)
	DestroyPhysicalMonitor(h Handle) error
	SetVCPFeature(h Handle, code VCPCode, value uint32) error
	GetVCPFeatureAndReply(h Handle, code VCPCode) (Reply, error)
}
