// Package autostart runs the monitor daemon under the Windows service
// control manager.
package autostart

import "context"

// ServiceApp is what the service handler drives: Start must not block,
// Errors reports a fatal runtime failure.
type ServiceApp interface {
	Start() error
	Stop(ctx context.Context)
	Errors() <-chan error
	Logger() Logger
}

type Logger interface {
	Info(msg string)
	Error(msg string, err error)
}
