// Package ddctest provides an in-memory ddc.API and a manual clock for
// tests.
package ddctest

import (
	"fmt"
	"sync"
	"time"

	"github.com/thiefmaster/ddcwin/ddc"
)

// Clock is a ddc.Clock whose Sleep advances time instantly.
type Clock struct {
	mu    sync.Mutex
	now   time.Time
	slept []time.Duration
}

func NewClock() *Clock {
	return &Clock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *Clock) Sleep(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
	c.slept = append(c.slept, d)
}

func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// Slept returns the durations passed to Sleep.
func (c *Clock) Slept() []time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]time.Duration(nil), c.slept...)
}

// Write records one SetVCPFeature call.
type Write struct {
	Handle ddc.Handle
	Code   ddc.VCPCode
	Value  uint32
	At     time.Time
}

type feature struct {
	handle ddc.Handle
	code   ddc.VCPCode
}

// API is a fake ddc.API. Writes are echoed back to later reads. The *Err
// fields make the corresponding call fail.
type API struct {
	Clock *Clock

	EnumErr    error
	CountErr   error
	ArrayErr   error
	DestroyErr error
	SetErr     error
	GetErr     error

	mu         sync.Mutex
	displays   []ddc.Display
	monitors   map[uintptr][]ddc.PhysicalMonitor
	replies    map[feature]ddc.Reply
	nextHandle ddc.Handle
	writes     []Write
	reads      int
	destroyed  []ddc.Handle
}

func NewAPI(clock *Clock) *API {
	return &API{
		Clock:      clock,
		monitors:   make(map[uintptr][]ddc.PhysicalMonitor),
		replies:    make(map[feature]ddc.Reply),
		nextHandle: 0x100,
	}
}

// AddDisplay registers a logical display backed by one physical monitor
// per description.
func (a *API) AddDisplay(descriptions ...string) ddc.Display {
	a.mu.Lock()
	defer a.mu.Unlock()
	d := ddc.Display{ID: uintptr(0x10001 + len(a.displays))}
	a.displays = append(a.displays, d)
	for _, desc := range descriptions {
		a.monitors[d.ID] = append(a.monitors[d.ID], ddc.PhysicalMonitor{Handle: a.nextHandle, Description: desc})
		a.nextHandle++
	}
	return d
}

// Monitors returns the physical monitors registered for d.
func (a *API) Monitors(d ddc.Display) []ddc.PhysicalMonitor {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]ddc.PhysicalMonitor(nil), a.monitors[d.ID]...)
}

// SetReply sets what a read of code on h returns.
func (a *API) SetReply(h ddc.Handle, code ddc.VCPCode, current, maximum uint32) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.replies[feature{h, code}] = ddc.Reply{Current: current, Maximum: maximum}
}

func (a *API) Writes() []Write {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]Write(nil), a.writes...)
}

func (a *API) Reads() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.reads
}

func (a *API) Destroyed() []ddc.Handle {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]ddc.Handle(nil), a.destroyed...)
}

func (a *API) EnumDisplayMonitors() ([]ddc.Display, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.EnumErr != nil {
		return nil, a.EnumErr
	}
	return append([]ddc.Display(nil), a.displays...), nil
}

func (a *API) NumberOfPhysicalMonitors(d ddc.Display) (uint32, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.CountErr != nil {
		return 0, a.CountErr
	}
	return uint32(len(a.monitors[d.ID])), nil
}

func (a *API) PhysicalMonitors(d ddc.Display, count uint32) ([]ddc.PhysicalMonitor, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.ArrayErr != nil {
		return nil, a.ArrayErr
	}
	monitors := a.monitors[d.ID]
	if int(count) != len(monitors) {
		return nil, fmt.Errorf("count %d does not match %d monitors", count, len(monitors))
	}
	return append([]ddc.PhysicalMonitor(nil), monitors...), nil
}

func (a *API) DestroyPhysicalMonitor(h ddc.Handle) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.DestroyErr != nil {
		return a.DestroyErr
	}
	a.destroyed = append(a.destroyed, h)
	return nil
}

func (a *API) SetVCPFeature(h ddc.Handle, code ddc.VCPCode, value uint32) error {
	var now time.Time
	if a.Clock != nil {
		now = a.Clock.Now()
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.SetErr != nil {
		return a.SetErr
	}
	a.writes = append(a.writes, Write{Handle: h, Code: code, Value: value, At: now})
	r := a.replies[feature{h, code}]
	r.Current = value
	a.replies[feature{h, code}] = r
	return nil
}

func (a *API) GetVCPFeatureAndReply(h ddc.Handle, code ddc.VCPCode) (ddc.Reply, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.GetErr != nil {
		return ddc.Reply{}, a.GetErr
	}
	a.reads++
	return a.replies[feature{h, code}], nil
}
