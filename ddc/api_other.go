//go:build !windows

package ddc

// SystemAPI is only available on Windows.
func SystemAPI() (API, error) {
	return nil, ErrUnsupported
}
