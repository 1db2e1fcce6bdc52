package api

import (
	"errors"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"slowquery-monitor/internal/api/handlers"
	"slowquery-monitor/internal/api/middleware"
	"slowquery-monitor/internal/api/utils"
	"slowquery-monitor/internal/config"
	"slowquery-monitor/internal/logger"
	"slowquery-monitor/internal/monitor"
)

type ServerDeps struct {
	Snapshot *monitor.Snapshot
	Logger   logger.LoggerService
}

func NewServer(cfg config.Config, deps ServerDeps) (*http.Server, error) {
	addr := strings.TrimSpace(cfg.APIListen)
	if err := validateListenAddr(addr); err != nil {
		return nil, err
	}
	if deps.Snapshot == nil {
		return nil, errors.New("snapshot is required")
	}

	return &http.Server{
		Addr:              addr,
		Handler:           NewHandler(strings.TrimSpace(cfg.APIToken), deps),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}, nil
}

func NewHandler(token string, deps ServerDeps) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/api/health", handlers.NewHealthHandler(deps.Snapshot))
	mux.Handle("/api/slow-queries", handlers.NewSlowQueriesHandler(deps.Snapshot))
	mux.HandleFunc("/api/", func(w http.ResponseWriter, r *http.Request) {
		utils.WriteError(w, http.StatusNotFound, "Not found", "NOT_FOUND", nil)
	})

	return middleware.Logging(deps.Logger, middleware.Auth(token, mux))
}

func validateListenAddr(addr string) error {
	if addr == "" {
		return errors.New("apiListen is required")
	}

	host, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		return errors.New("apiListen must be in host:port format")
	}
	if host == "" {
		return errors.New("apiListen host is required")
	}

	port, err := strconv.Atoi(portStr)
	if err != nil || port < 1 || port > 65535 {
		return errors.New("apiListen port is invalid")
	}

	return nil
}
