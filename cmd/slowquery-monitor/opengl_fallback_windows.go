//go:build windows

package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"syscall"

	"golang.org/x/sys/windows"
)

var openGLFallbackOnce sync.Once

// handleOpenGLFailure replaces the window with a console running the
// same poll loop in text mode.
func handleOpenGLFailure() {
	openGLFallbackOnce.Do(func() {
		msg := "OpenGL is not available on this machine (likely a virtual or basic display adapter).\n" +
			"The monitor window cannot open. A console window will start monitoring in text mode."
		errorBox(msg)
		_ = launchHeadlessConsole()
		os.Exit(1)
	})
}

func launchHeadlessConsole() error {
	exe, err := os.Executable()
	if err != nil {
		return err
	}
	exe = filepath.Clean(exe)
	cmdline := fmt.Sprintf("\"%s\" --headless --env-file \"%s\" --watch", exe, envFileFromArgs(os.Args[1:]))
	cmd := exec.Command("cmd.exe", "/k", cmdline)
	cmd.SysProcAttr = &syscall.SysProcAttr{
		CreationFlags: windows.CREATE_NEW_CONSOLE,
	}
	return cmd.Start()
}
