package paths

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
)

const AppName = "slowquery-monitor"

const envFileName = ".env"

func dataDir() (string, error) {
	switch runtime.GOOS {
	case "windows":
		programData := os.Getenv("PROGRAMDATA")
		if programData == "" {
			programData = `C:\ProgramData`
		}
		return filepath.Join(programData, AppName), nil
	case "linux", "darwin":
		return filepath.Join("/etc", AppName), nil
	default:
		return "", errors.New("unsupported OS for machine-wide data directory")
	}
}

// EnvFilePath prefers a .env in the working directory and falls back to
// the machine-wide one. The working-directory path is returned when
// neither exists.
func EnvFilePath() string {
	local := envFileName
	if _, err := os.Stat(local); err == nil {
		return local
	}
	dir, err := dataDir()
	if err != nil {
		return local
	}
	shared := filepath.Join(dir, envFileName)
	if _, err := os.Stat(shared); err == nil {
		return shared
	}
	return local
}

func LoggerFilePath() (string, error) {
	dir, err := dataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "monitor.log"), nil
}

func UILogFilePath() (string, error) {
	dir, err := dataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "ui.log"), nil
}
