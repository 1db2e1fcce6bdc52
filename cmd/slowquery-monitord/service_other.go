//go:build !windows

package main

func runAsService(*monitorApp) bool {
	return false
}
