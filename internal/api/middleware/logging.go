package middleware

import (
	"fmt"
	"net/http"
	"time"

	"slowquery-monitor/internal/logger"
)

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	return w.ResponseWriter.Write(b)
}

// Logging writes one line per request. Successful requests are logged at
// debug level so polling clients do not flood the log.
func Logging(log logger.LoggerService, next http.Handler) http.Handler {
	if log == nil {
		return next
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w}
		next.ServeHTTP(sw, r)
		status := sw.status
		if status == 0 {
			status = http.StatusOK
		}
		msg := fmt.Sprintf("%s %s %s %d %s", r.RemoteAddr, r.Method, r.URL.Path, status,
			time.Since(start).Truncate(time.Millisecond))
		switch {
		case status >= http.StatusInternalServerError:
			log.Error(msg, nil)
		case status >= http.StatusBadRequest:
			log.Warn(msg)
		default:
			log.Debug(msg)
		}
	})
}
