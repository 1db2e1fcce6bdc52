package db

import (
	"context"
	"database/sql"
	"net/url"
	"strings"
	"time"

	_ "github.com/microsoft/go-mssqldb"
	"github.com/pkg/errors"

	"slowquery-monitor/internal/config"
	"slowquery-monitor/internal/platform/paths"
)

const driverName = "sqlserver"

type Options struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	PingTimeout     time.Duration
}

// DefaultOptions keeps the pool at a single session: the monitor owns one
// connection for its whole lifetime.
func DefaultOptions() Options {
	return Options{
		MaxOpenConns: 1,
		MaxIdleConns: 1,
		PingTimeout:  5 * time.Second,
	}
}

// ConnectionError wraps a driver failure while opening the session.
type ConnectionError struct {
	Err error
}

func (e *ConnectionError) Error() string {
	return "database connection failed: " + e.Err.Error()
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}

func Connect(ctx context.Context, cfg config.DBConfig) (*sql.DB, error) {
	return Open(ctx, cfg, DefaultOptions())
}

func Open(ctx context.Context, cfg config.DBConfig, opt Options) (*sql.DB, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	dsn, err := BuildDSN(cfg)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, &ConnectionError{Err: err}
	}

	if opt.MaxOpenConns > 0 {
		db.SetMaxOpenConns(opt.MaxOpenConns)
	}
	if opt.MaxIdleConns > 0 {
		db.SetMaxIdleConns(opt.MaxIdleConns)
	}
	if opt.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(opt.ConnMaxLifetime)
	}

	if opt.PingTimeout <= 0 {
		opt.PingTimeout = 5 * time.Second
	}

	if ctx == nil {
		ctx = context.Background()
	}
	pingCtx, cancel := context.WithTimeout(ctx, opt.PingTimeout)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, &ConnectionError{Err: err}
	}

	return db, nil
}

// BuildDSN turns DB_DSN into a sqlserver:// URL. DB_DSN is either a full
// sqlserver:// URL or host[:port][/instance]; credentials always come
// from DB_USERNAME and DB_PASSWORD.
func BuildDSN(cfg config.DBConfig) (string, error) {
	raw := strings.TrimSpace(cfg.DSN)
	if raw == "" {
		return "", &config.ConfigurationError{Missing: []string{config.KeyDSN}}
	}

	var u *url.URL
	if strings.HasPrefix(strings.ToLower(raw), driverName+"://") {
		parsed, err := url.Parse(raw)
		if err != nil {
			return "", &config.ConfigurationError{Reason: "DB_DSN is not a valid URL", Err: errors.WithStack(err)}
		}
		if parsed.Host == "" {
			return "", &config.ConfigurationError{Reason: "DB_DSN has no host"}
		}
		u = parsed
	} else {
		host, instance, _ := strings.Cut(raw, "/")
		if host == "" || strings.ContainsAny(host, " ;") {
			return "", &config.ConfigurationError{Reason: "DB_DSN must be host[:port][/instance] or a sqlserver:// URL"}
		}
		u = &url.URL{Scheme: driverName, Host: host}
		if instance != "" {
			u.Path = instance
		}
	}
	u.User = url.UserPassword(cfg.Username, cfg.Password)

	q := u.Query()
	setDefault(q, "encrypt", "true")
	setDefault(q, "TrustServerCertificate", "false")
	setDefault(q, "app name", paths.AppName)
	u.RawQuery = q.Encode()

	return u.String(), nil
}

func setDefault(q url.Values, key, value string) {
	if q.Get(key) == "" {
		q.Set(key, value)
	}
}

func TestConnection(ctx context.Context, cfg config.DBConfig) error {
	if ctx == nil {
		ctx = context.Background()
	}
	db, err := Connect(ctx, cfg)
	if err != nil {
		return err
	}
	return db.Close()
}
