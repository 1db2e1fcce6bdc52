//go:build windows

package main

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/sys/windows"

	"slowquery-monitor/internal/platform/autostart"
	"slowquery-monitor/internal/ui"
)

func uiStartupGuard() error {
	isService, err := autostart.IsWindowsService()
	if err == nil && isService {
		return errors.New("slowquery-monitor needs an interactive desktop session. Install slowquery-monitord.exe as the service instead")
	}
	return nil
}

func uiStartupAlert(err error) {
	if err == nil {
		return
	}
	msg := err.Error()
	errorBox(msg)
	_, _ = fmt.Fprintln(os.Stderr, msg)
}

// errorBox shows a native error box, for failures that happen before or
// instead of the Fyne window.
func errorBox(msg string) {
	_, _ = windows.MessageBox(0, windows.StringToUTF16Ptr(msg), windows.StringToUTF16Ptr(ui.Title), windows.MB_ICONERROR)
}
