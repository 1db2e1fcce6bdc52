package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"slowquery-monitor/internal/api"
	"slowquery-monitor/internal/config"
	"slowquery-monitor/internal/db"
	"slowquery-monitor/internal/logger"
	"slowquery-monitor/internal/monitor"
	"slowquery-monitor/internal/platform/autostart"
	"slowquery-monitor/internal/scheduler"
)

const windowsServiceName = "slowquery-monitord"

type monitorApp struct {
	envFile string
	// connect overrides the SQL Server connector built from the config.
	connect monitor.ConnectFunc

	cfg      config.Config
	logSvc   logger.LoggerService
	mon      *monitor.Monitor
	srv      *http.Server
	cancel   context.CancelFunc
	errCh    chan error
	loopDone chan struct{}
	stopOnce sync.Once
}

func (a *monitorApp) Start() error {
	bootstrapLog := logger.NewStderr()

	cfg, err := config.Load(a.envFile)
	if err != nil {
		bootstrapLog.Error("failed to load config", err)
		return err
	}
	if err := cfg.DB.Validate(); err != nil {
		bootstrapLog.Error("configuration error", err)
		return err
	}
	a.cfg = cfg

	logSvc, err := logger.New(cfg)
	if err != nil {
		bootstrapLog.Error("logger init failed; using stderr", err)
		logSvc = bootstrapLog
	}
	a.logSvc = logSvc

	connect := a.connect
	if connect == nil {
		connect = db.SourceConnector(cfg.DB)
	}

	snapshot := monitor.NewSnapshot()
	loop := scheduler.New()
	a.mon = monitor.New(monitor.Options{
		Connect:   connect,
		Scheduler: loop,
		Display:   monitor.Tee(snapshot, &logDisplay{log: logSvc}),
		Logger:    logSvc,
	})

	ctx, cancel := context.WithCancel(context.Background())
	a.cancel = cancel

	// A connection failure is fatal here, as in the desktop app where it
	// keeps the monitor idle.
	if err := a.mon.Start(ctx); err != nil {
		a.Stop(context.Background())
		return err
	}

	srv, err := api.NewServer(cfg, api.ServerDeps{
		Snapshot: snapshot,
		Logger:   logSvc,
	})
	if err != nil {
		logSvc.Error("config validation error", err)
		a.Stop(context.Background())
		return err
	}
	a.srv = srv

	a.errCh = make(chan error, 2)
	a.loopDone = make(chan struct{})
	go func() {
		defer close(a.loopDone)
		if err := loop.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			a.errCh <- err
		}
	}()
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.errCh <- err
		}
	}()

	logSvc.Info(fmt.Sprintf("slowquery-monitord polling every %s, API on %s", monitor.DefaultInterval, srv.Addr))
	return nil
}

func (a *monitorApp) Stop(ctx context.Context) {
	a.stopOnce.Do(func() {
		if ctx == nil {
			ctx = context.Background()
		}
		if a.srv != nil {
			_ = a.srv.Shutdown(ctx)
		}
		if a.cancel != nil {
			a.cancel()
		}
		if a.mon != nil {
			_ = a.mon.Close()
		}
		if a.logSvc != nil {
			_ = a.logSvc.Close()
		}
	})
}

func (a *monitorApp) Errors() <-chan error {
	return a.errCh
}

func (a *monitorApp) Logger() autostart.Logger {
	if a.logSvc == nil {
		return nil
	}
	return a.logSvc
}
