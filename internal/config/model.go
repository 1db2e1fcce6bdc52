package config

import (
	"strings"
	"time"
)

const (
	KeyDSN      = "DB_DSN"
	KeyUsername = "DB_USERNAME"
	KeyPassword = "DB_PASSWORD"
)

type DBConfig struct {
	DSN          string        `yaml:"dsn" env:"DB_DSN"`
	Username     string        `yaml:"username" env:"DB_USERNAME"`
	Password     string        `yaml:"password" env:"DB_PASSWORD"`
	QueryTimeout time.Duration `yaml:"queryTimeout" env:"DB_QUERY_TIMEOUT"`
}

type Config struct {
	DB        DBConfig `yaml:"db"`
	Debug     bool     `yaml:"debug" env:"MONITOR_DEBUG"`
	LogFile   string   `yaml:"logFile" env:"MONITOR_LOG_FILE"`
	APIListen string   `yaml:"apiListen" env:"MONITOR_API_LISTEN" env-default:"127.0.0.1:8090"`
	APIToken  string   `yaml:"apiToken" env:"MONITOR_API_TOKEN"`
}

// Validate reports every required credential that is absent. It never
// touches the network.
func (c DBConfig) Validate() error {
	var missing []string
	if strings.TrimSpace(c.DSN) == "" {
		missing = append(missing, KeyDSN)
	}
	if strings.TrimSpace(c.Username) == "" {
		missing = append(missing, KeyUsername)
	}
	if c.Password == "" {
		missing = append(missing, KeyPassword)
	}
	if len(missing) > 0 {
		return &ConfigurationError{Missing: missing}
	}
	if c.QueryTimeout < 0 {
		return &ConfigurationError{Reason: "DB_QUERY_TIMEOUT must not be negative"}
	}
	return nil
}

func Default() Config {
	return Config{
		APIListen: "127.0.0.1:8090",
	}
}
