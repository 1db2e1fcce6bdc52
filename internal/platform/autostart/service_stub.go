//go:build !windows

package autostart

import "errors"

var ErrServiceUnsupported = errors.New("windows services are not supported on this OS")

func IsWindowsService() (bool, error) {
	return false, nil
}

func RunService(_ string, _ ServiceApp) error {
	return ErrServiceUnsupported
}
