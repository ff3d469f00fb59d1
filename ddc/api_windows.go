//go:build windows

package ddc

import (
	"errors"
	"fmt"
	"sync"
	"unsafe"

	"github.com/lxn/win"
	"golang.org/x/sys/windows"
)

var (
	user32 = windows.NewLazySystemDLL("user32.dll")
	dxva2  = windows.NewLazySystemDLL("dxva2.dll")

	enumDisplayMonitorsProc         = user32.NewProc("EnumDisplayMonitors")
	getNumberOfPhysicalMonitorsProc = dxva2.NewProc("GetNumberOfPhysicalMonitorsFromHMONITOR")
	getPhysicalMonitorsProc         = dxva2.NewProc("GetPhysicalMonitorsFromHMONITOR")
	destroyPhysicalMonitorProc      = dxva2.NewProc("DestroyPhysicalMonitor")
	setVCPFeatureProc               = dxva2.NewProc("SetVCPFeature")
	getVCPFeatureAndReplyProc       = dxva2.NewProc("GetVCPFeatureAndVCPFeatureReply")

	procs = []*windows.LazyProc{
		enumDisplayMonitorsProc,
		getNumberOfPhysicalMonitorsProc,
		getPhysicalMonitorsProc,
		destroyPhysicalMonitorProc,
		setVCPFeatureProc,
		getVCPFeatureAndReplyProc,
	}
)

// errUnspecified stands in for a failed call that left no last error.
var errUnspecified = errors.New("call failed without error code")

// PHYSICAL_MONITOR; the header packs it to 1 byte, which matches Go's
// layout for a handle followed by a WCHAR array.
type physicalMonitor struct {
	handle      windows.Handle
	description [128]uint16
}

// EnumDisplayMonitors calls back synchronously on the calling thread. The
// callback is created once since callbacks are never freed, so the
// collected displays live in package state guarded by enumMu.
var (
	enumMu       sync.Mutex
	enumDisplays []Display
	enumCallback = windows.NewCallback(func(hMonitor win.HMONITOR, hdc win.HDC, rect *win.RECT, lparam uintptr) uintptr {
		d := Display{ID: uintptr(hMonitor)}
		var info win.MONITORINFO
		info.CbSize = uint32(unsafe.Sizeof(info))
		if win.GetMonitorInfo(hMonitor, &info) {
			d.Bounds = Rect{
				Left:   int(info.RcMonitor.Left),
				Top:    int(info.RcMonitor.Top),
				Right:  int(info.RcMonitor.Right),
				Bottom: int(info.RcMonitor.Bottom),
			}
			d.Primary = info.DwFlags&win.MONITORINFOF_PRIMARY != 0
		}
		enumDisplays = append(enumDisplays, d)
		return 1
	})
)

type systemAPI struct{}

// SystemAPI returns the dxva2 backed API. It fails with ErrUnsupported if
// one of the required functions cannot be loaded.
func SystemAPI() (API, error) {
	for _, proc := range procs {
		if err := proc.Find(); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnsupported, err)
		}
	}
	return systemAPI{}, nil
}

func callError(err error) error {
	if errno, ok := err.(windows.Errno); ok && errno == 0 {
		return errUnspecified
	}
	return err
}

func (systemAPI) EnumDisplayMonitors() ([]Display, error) {
	enumMu.Lock()
	defer enumMu.Unlock()

	enumDisplays = nil
	if ret, _, err := enumDisplayMonitorsProc.Call(0, 0, enumCallback, 0); ret == 0 {
		enumDisplays = nil
		return nil, callError(err)
	}
	displays := enumDisplays
	enumDisplays = nil
	return displays, nil
}

func (systemAPI) NumberOfPhysicalMonitors(d Display) (uint32, error) {
	var count uint32
	if ret, _, err := getNumberOfPhysicalMonitorsProc.Call(d.ID, uintptr(unsafe.Pointer(&count))); ret == 0 {
		return 0, callError(err)
	}
	return count, nil
}

func (systemAPI) PhysicalMonitors(d Display, count uint32) ([]PhysicalMonitor, error) {
	if count == 0 {
		return nil, nil
	}
	raw := make([]physicalMonitor, count)
	if ret, _, err := getPhysicalMonitorsProc.Call(d.ID, uintptr(count), uintptr(unsafe.Pointer(&raw[0]))); ret == 0 {
		return nil, callError(err)
	}
	monitors := make([]PhysicalMonitor, len(raw))
	for i, m := range raw {
		monitors[i] = PhysicalMonitor{
			Handle:      Handle(m.handle),
			Description: windows.UTF16ToString(m.description[:]),
		}
	}
	return monitors, nil
}

func (systemAPI) DestroyPhysicalMonitor(h Handle) error {
	if ret, _, err := destroyPhysicalMonitorProc.Call(uintptr(h)); ret == 0 {
		return callError(err)
	}
	return nil
}

func (systemAPI) SetVCPFeature(h Handle, code VCPCode, value uint32) error {
	if ret, _, err := setVCPFeatureProc.Call(uintptr(h), uintptr(code), uintptr(value)); ret == 0 {
		return callError(err)
	}
	return nil
}

func (systemAPI) GetVCPFeatureAndReply(h Handle, code VCPCode) (Reply, error) {
	var current, maximum uint32
	ret, _, err := getVCPFeatureAndReplyProc.Call(
		uintptr(h),
		uintptr(code),
		0,
		uintptr(unsafe.Pointer(&current)),
		uintptr(unsafe.Pointer(&maximum)))
	if ret == 0 {
		return Reply{}, callError(err)
	}
	return Reply{Current: current, Maximum: maximum}, nil
}
