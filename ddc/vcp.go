package ddc

// SetFeature writes a VCP feature. If the previous write to h happened less
// than the session cooldown ago, it blocks until the cooldown has passed. The
// cooldown is re-armed even when the write fails.
func (s *Session) SetFeature(h Handle, code VCPCode, value uint32) error {
	s.waitReady(h)
	if err := s.api.SetVCPFeature(h, code, value); err != nil {
		return commandError("SetVCPFeature", h, code, err)
	}
	s.logger.Debug("set vcp feature", "handle", h, "code", code, "value", value)
	return nil
}

// GetFeature reads a VCP feature. Reads do not wait for nor arm the write
// cooldown.
func (s *Session) GetFeature(h Handle, code VCPCode) (Reply, error) {
	reply, err := s.api.GetVCPFeatureAndReply(h, code)
	if err != nil {
		return Reply{}, commandError("GetVCPFeatureAndVCPFeatureReply", h, code, err)
	}
	return reply, nil
}
