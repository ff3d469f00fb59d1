package ddc

import "fmt"

// Brightness returns the current brightness of h and remembers the maximum
// the monitor reported alongside it.
func (s *Session) Brightness(h Handle) (uint32, error) {
	reply, err := s.GetFeature(h, Brightness)
	if err != nil {
		return 0, err
	}
	s.setMaxBrightness(h, reply.Maximum)
	return reply.Current, nil
}

// MaxBrightness returns the maximum brightness of h, reading the brightness
// once if no maximum has been observed yet.
func (s *Session) MaxBrightness(h Handle) (uint32, error) {
	if maximum, ok := s.cachedMaxBrightness(h); ok {
		return maximum, nil
	}
	if _, err := s.Brightness(h); err != nil {
		return 0, err
	}
	maximum, ok := s.cachedMaxBrightness(h)
	if !ok {
		return 0, &Error{Kind: ErrState, Op: "MaxBrightness", Handle: h}
	}
	return maximum, nil
}

// SetBrightness sets the brightness of h. Nothing is written if the monitor
// already has that brightness.
func (s *Session) SetBrightness(h Handle, value uint32) error {
	current, err := s.Brightness(h)
	if err != nil {
		return err
	}
	if current == value {
		s.logger.Debug("brightness unchanged", "handle", h, "value", value)
		return nil
	}
	maximum, err := s.MaxBrightness(h)
	if err != nil {
		return err
	}
	if value > maximum {
		return &Error{Kind: ErrRange, Op: "SetBrightness", Handle: h, Err: fmt.Errorf("%d exceeds maximum %d", value, maximum)}
	}
	return s.SetFeature(h, Brightness, value)
}

// InputSource returns the active input of h.
func (s *Session) InputSource(h Handle) (InputSource, error) {
	reply, err := s.GetFeature(h, InputSelect)
	if err != nil {
		return 0, err
	}
	source := InputSource(reply.Current)
	if !source.Valid() {
		return 0, &Error{Kind: ErrDecode, Op: "InputSource", Handle: h, Err: fmt.Errorf("input code %d", reply.Current)}
	}
	return source, nil
}

// SetInputSource switches h to source. Nothing is written if source is
// already active.
func (s *Session) SetInputSource(h Handle, source InputSource) error {
	current, err := s.InputSource(h)
	if err != nil {
		return err
	}
	if current == source {
		s.logger.Debug("input source unchanged", "handle", h, "source", source)
		return nil
	}
	return s.SetFeature(h, InputSelect, uint32(source))
}
