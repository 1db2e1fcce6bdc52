package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"slowquery-monitor/internal/platform/paths"
)

func main() {
	envFile := flag.String("env-file", paths.EnvFilePath(), "Credentials file (.env, .yaml or .json)")
	flag.Parse()

	app := &monitorApp{envFile: *envFile}

	if runAsService(app) {
		return
	}

	if err := app.Start(); err != nil {
		os.Exit(1)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	exitCode := 0
	select {
	case err := <-app.Errors():
		app.logSvc.Error("monitor stopped", err)
		exitCode = 1
	case sig := <-sigCh:
		app.logSvc.Info(fmt.Sprintf("shutdown signal: %s", sig))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	app.Stop(ctx)

	if exitCode != 0 {
		os.Exit(exitCode)
	}
}
