//go:build !linux && !darwin && !windows

package autostart

func newBackend(string, string) (backend, error) {
	return nil, ErrUnsupported
}
