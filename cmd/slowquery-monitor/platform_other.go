//go:build !windows

package main

import (
	"fmt"
	"os"
)

func uiStartupGuard() error {
	return nil
}

func uiStartupAlert(err error) {
	if err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
	}
}

// Without a native message box the toolkit's own error output is all the
// user gets; the log line is already in ui.log.
func handleOpenGLFailure() {}
