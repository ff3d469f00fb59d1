package ddc

import (
	"errors"
	"iter"
)

// ListDisplays returns every logical display currently attached. The order
// is whatever the OS reports and may change between calls.
func (s *Session) ListDisplays() ([]Display, error) {
	displays, err := s.api.EnumDisplayMonitors()
	if err != nil {
		return nil, &Error{Kind: ErrEnumeration, Op: "EnumDisplayMonitors", Err: err}
	}
	s.logger.Debug("enumerated displays", "count", len(displays))
	return displays, nil
}

// resolve returns the physical monitors behind d. A display without
// physical monitors is not an error here.
func (s *Session) resolve(d Display) ([]PhysicalMonitor, error) {
	count, err := s.api.NumberOfPhysicalMonitors(d)
	if err != nil {
		return nil, &Error{Kind: ErrResolution, Op: "GetNumberOfPhysicalMonitorsFromHMONITOR", Err: err}
	}
	if count == 0 {
		return nil, nil
	}
	monitors, err := s.api.PhysicalMonitors(d, count)
	if err != nil {
		return nil, &Error{Kind: ErrResolution, Op: "GetPhysicalMonitorsFromHMONITOR", Err: err}
	}
	return monitors, nil
}

// OpenHandles opens every physical monitor behind d. The caller owns all
// returned handles and must close each of them exactly once.
func (s *Session) OpenHandles(d Display) ([]PhysicalMonitor, error) {
	monitors, err := s.resolve(d)
	if err != nil {
		return nil, err
	}
	if len(monitors) == 0 {
		return nil, &Error{Kind: ErrResolution, Op: "GetPhysicalMonitorsFromHMONITOR", Err: errNoPhysicalMonitors}
	}
	for _, m := range monitors {
		s.logger.Debug("opened physical monitor", "handle", m.Handle, "description", m.Description)
	}
	return monitors, nil
}

// OpenHandle opens the first physical monitor behind d. Any further physical
// monitors of the same display are released before returning; use
// OpenHandles to keep all of them.
func (s *Session) OpenHandle(d Display) (Handle, error) {
	monitors, err := s.OpenHandles(d)
	if err != nil {
		return 0, err
	}
	first := monitors[0].Handle

	var errs []error
	for _, extra := range monitors[1:] {
		if err := s.CloseHandle(extra.Handle); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		errs = append(errs, s.CloseHandle(first))
		return 0, errors.Join(errs...)
	}
	if len(monitors) > 1 {
		s.logger.Debug("released extra physical monitors", "handle", first, "released", len(monitors)-1)
	}
	return first, nil
}

// CloseHandle releases h. It must be called exactly once per opened handle;
// h must not be used afterwards.
func (s *Session) CloseHandle(h Handle) error {
	s.forget(h)
	if err := s.api.DestroyPhysicalMonitor(h); err != nil {
		return &Error{Kind: ErrRelease, Op: "DestroyPhysicalMonitor", Handle: h, Err: err}
	}
	s.logger.Debug("closed physical monitor", "handle", h)
	return nil
}

// PhysicalMonitors walks all displays and yields every physical monitor.
//
// With autoClose, each handle is released once the loop body for it returns,
// before the next one is opened for the caller; the handle must not be kept.
// Without autoClose the caller owns every yielded handle.
//
// Breaking out of the loop releases handles that were already resolved but
// not yet yielded. The first error is yielded once and ends the sequence.
func (s *Session) PhysicalMonitors(autoClose bool) iter.Seq2[PhysicalMonitor, error] {
	return func(yield func(PhysicalMonitor, error) bool) {
		displays, err := s.ListDisplays()
		if err != nil {
			yield(PhysicalMonitor{}, err)
			return
		}
		for _, d := range displays {
			monitors, err := s.resolve(d)
			if err != nil {
				yield(PhysicalMonitor{}, err)
				return
			}
			for i, m := range monitors {
				more := yield(m, nil)
				if autoClose {
					if err := s.CloseHandle(m.Handle); err != nil {
						if more {
							yield(PhysicalMonitor{}, err)
						} else {
							s.logger.Warn("could not release physical monitor", "handle", m.Handle, "err", err)
						}
						s.release(monitors[i+1:])
						return
					}
				}
				if !more {
					s.release(monitors[i+1:])
					return
				}
			}
		}
	}
}

// release closes handles nobody else will see, logging failures.
func (s *Session) release(monitors []PhysicalMonitor) {
	for _, m := range monitors {
		if err := s.CloseHandle(m.Handle); err != nil {
			s.logger.Warn("could not release physical monitor", "handle", m.Handle, "err", err)
		}
	}
}
