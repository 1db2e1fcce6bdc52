package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"slowquery-monitor/internal/config"
	"slowquery-monitor/internal/db"
	"slowquery-monitor/internal/logger"
	"slowquery-monitor/internal/monitor"
	"slowquery-monitor/internal/platform/paths"
	"slowquery-monitor/internal/scheduler"
)

type optionalString struct {
	set   bool
	value string
}

func (o *optionalString) String() string {
	return o.value
}

func (o *optionalString) Set(v string) error {
	o.set = true
	o.value = v
	return nil
}

type optionalBool struct {
	set   bool
	value bool
}

func (o *optionalBool) String() string {
	if !o.set {
		return ""
	}
	return strconv.FormatBool(o.value)
}

func (o *optionalBool) Set(v string) error {
	if v == "" {
		v = "true"
	}
	val, err := strconv.ParseBool(v)
	if err != nil {
		return err
	}
	o.set = true
	o.value = val
	return nil
}

func (o *optionalBool) IsBoolFlag() bool {
	return true
}

func hasHeadlessFlag(args []string) bool {
	for _, arg := range args {
		if arg == "--headless" || arg == "--cli" {
			return true
		}
	}
	return false
}

func runHeadless(uiLog *uiLogger) (bool, error) {
	if !hasHeadlessFlag(os.Args[1:]) {
		return false, nil
	}

	fs := flag.NewFlagSet(paths.AppName, flag.ContinueOnError)
	fs.SetOutput(os.Stdout)

	var (
		headless = fs.Bool("headless", false, "Run without GUI (CLI mode)")
		cli      = fs.Bool("cli", false, "Alias for --headless")
		show     = fs.Bool("show", false, "Print the loaded configuration (secrets masked)")
		testConn = fs.Bool("test-connection", false, "Open and ping the database, then exit")
		once     = fs.Bool("once", false, "Run the slow query check once and print the table")
		watch    = fs.Bool("watch", false, "Poll every 10 seconds and print each table until interrupted")
	)

	var (
		envFile optionalString
		debug   optionalBool
	)
	fs.Var(&envFile, "env-file", "Credentials file (default ./.env)")
	fs.Var(&debug, "debug", "Enable debug logging (true/false)")

	if err := fs.Parse(os.Args[1:]); err != nil {
		return true, err
	}

	if !*headless && !*cli {
		return false, nil
	}

	uiLog.Printf("headless start")

	path := paths.EnvFilePath()
	if envFile.set {
		path = envFile.value
	}
	cfg, err := config.Load(path)
	if err != nil {
		return true, err
	}
	if debug.set {
		cfg.Debug = debug.value
	}

	if *show {
		if err := printConfigSummary(os.Stdout, path, cfg); err != nil {
			return true, err
		}
	}

	if *testConn {
		ctx, cancel := context.WithTimeout(context.Background(), 8*time.Second)
		defer cancel()
		if err := db.TestConnection(ctx, cfg.DB); err != nil {
			return true, err
		}
		fmt.Fprintln(os.Stdout, "Connection OK.")
	}

	if *once {
		if err := runOnce(os.Stdout, cfg); err != nil {
			return true, err
		}
	}

	if *watch {
		if err := runWatch(os.Stdout, os.Stderr, cfg); err != nil {
			return true, err
		}
	}

	if !*show && !*testConn && !*once && !*watch {
		fmt.Fprintln(os.Stdout, "Nothing to do. Use --show, --test-connection, --once or --watch. Example:")
		fmt.Fprintln(os.Stdout, "  slowquery-monitor --headless --env-file C:\\monitor\\.env --watch")
	}

	return true, nil
}

func printConfigSummary(w io.Writer, path string, cfg config.Config) error {
	out, err := config.Summary(cfg)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Config (%s):\n", path)
	_, err = w.Write(out)
	return err
}

func runOnce(w io.Writer, cfg config.Config) error {
	source, err := db.SourceConnector(cfg.DB)(context.Background())
	if err != nil {
		return err
	}
	if c, ok := source.(io.Closer); ok {
		defer c.Close()
	}

	table, err := monitor.Poll(context.Background(), source)
	if err != nil {
		return err
	}
	monitor.WriteText(w, table)
	return nil
}

func runWatch(out, errOut io.Writer, cfg config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// textDisplay already prints poll errors; the logger only adds detail
	// in debug mode.
	logSvc := logger.NewNop()
	if cfg.Debug {
		logSvc = logger.NewWriter(errOut, true)
	}

	loop := scheduler.New()
	mon := monitor.New(monitor.Options{
		Connect:   db.SourceConnector(cfg.DB),
		Scheduler: loop,
		Display:   &textDisplay{out: out, errOut: errOut, now: time.Now},
		Logger:    logSvc,
	})
	if err := mon.Start(ctx); err != nil {
		return err
	}
	defer mon.Close()

	if err := loop.Run(ctx); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}

// textDisplay prints each poll as a timestamped table.
type textDisplay struct {
	out    io.Writer
	errOut io.Writer
	now    func() time.Time
}

func (d *textDisplay) ShowTable(t monitor.Table) {
	fmt.Fprintf(d.out, "\n== %s ==\n", d.now().Format(monitor.StartTimeLayout))
	monitor.WriteText(d.out, t)
}

func (d *textDisplay) ShowError(err error) {
	fmt.Fprintf(d.errOut, "Errore durante il monitoraggio: %v\n", err)
}
