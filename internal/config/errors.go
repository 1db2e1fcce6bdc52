package config

import "strings"

// ConfigurationError is returned when credentials are missing or unusable.
type ConfigurationError struct {
	Missing []string
	Reason  string
	Err     error
}

func (e *ConfigurationError) Error() string {
	if len(e.Missing) > 0 {
		return "missing credentials (" + strings.Join(e.Missing, ", ") + "); make sure the .env file is configured"
	}
	msg := "invalid configuration"
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}
