//go:build windows

package main

import (
	"slowquery-monitor/internal/logger"
	"slowquery-monitor/internal/platform/autostart"
)

func runAsService(app *monitorApp) bool {
	isService, err := autostart.IsWindowsService()
	if err != nil || !isService {
		return false
	}

	if err := autostart.RunService(windowsServiceName, app); err != nil {
		logger.NewStderr().Error("windows service failed", err)
	}
	return true
}
