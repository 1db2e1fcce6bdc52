package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"

	"slowquery-monitor/internal/config"
	"slowquery-monitor/internal/db"
	"slowquery-monitor/internal/logger"
	"slowquery-monitor/internal/monitor"
	"slowquery-monitor/internal/platform/paths"
	"slowquery-monitor/internal/scheduler"
	"slowquery-monitor/internal/ui"
)

func main() {
	uiLog := newUILogger()
	defer uiLog.Close()

	handled, err := runHeadless(uiLog)
	if handled {
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			uiLog.Close()
			os.Exit(1)
		}
		return
	}

	if err := uiStartupGuard(); err != nil {
		uiStartupAlert(err)
		uiLog.Close()
		os.Exit(1)
	}

	// Fyne reports driver failures through the standard logger.
	log.SetOutput(newLogWatcher(uiLog.Writer(), handleOpenGLFailure))

	envFile := envFileFromArgs(os.Args[1:])
	cfg, cfgErr := config.Load(envFile)
	if cfgErr == nil {
		cfgErr = cfg.DB.Validate()
	}
	if cfgErr != nil {
		uiLog.Printf("config %s: %v", envFile, cfgErr)
	}

	logSvc, err := logger.New(cfg)
	if err != nil {
		uiLog.Printf("logger init failed; using stderr: %v", err)
		logSvc = logger.NewStderr()
	}
	defer logSvc.Close()

	a := app.New()
	w := a.NewWindow(ui.Title)
	view := ui.NewView(w)

	// The loop and the connection live until the process exits; there is
	// no stop action.
	ctx := context.Background()
	loop := scheduler.New()
	go loop.Run(ctx)

	mon := monitor.New(monitor.Options{
		Connect:   db.SourceConnector(cfg.DB),
		Scheduler: loop,
		Display:   view,
		Logger:    logSvc,
	})
	view.Attach(ctx, mon)

	if cfgErr != nil {
		a.Lifecycle().SetOnStarted(func() {
			view.ShowStartupError(cfgErr)
		})
	}

	w.SetContent(view.Content())
	w.Resize(fyne.NewSize(880, 440))
	w.ShowAndRun()
}

// envFileFromArgs honours --env-file in GUI mode without claiming any
// other flag.
func envFileFromArgs(args []string) string {
	for i, arg := range args {
		if arg == "--env-file" || arg == "-env-file" {
			if i+1 < len(args) {
				return args[i+1]
			}
			continue
		}
		if v, ok := strings.CutPrefix(arg, "--env-file="); ok && v != "" {
			return v
		}
	}
	return paths.EnvFilePath()
}
