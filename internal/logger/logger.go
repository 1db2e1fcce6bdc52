package logger

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"slowquery-monitor/internal/config"
	"slowquery-monitor/internal/platform/paths"
)

type LoggerService interface {
	Info(msg string)
	Error(msg string, err error)
	Warn(msg string)
	Success(msg string)
	Debug(msg string)
	Close() error
}

type service struct {
	logger *zap.SugaredLogger
	closer io.Closer
}

func New(cfg config.Config) (LoggerService, error) {
	logPath := strings.TrimSpace(cfg.LogFile)
	if logPath == "" {
		p, err := paths.LoggerFilePath()
		if err != nil {
			return nil, err
		}
		logPath = p
	}

	if err := os.MkdirAll(filepath.Dir(logPath), 0o755); err != nil {
		return nil, err
	}

	file := &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    10,
		MaxBackups: 5,
		MaxAge:     30,
		LocalTime:  true,
	}

	var ws zapcore.WriteSyncer = zapcore.AddSync(file)
	level := zapcore.InfoLevel
	if cfg.Debug {
		ws = zapcore.NewMultiWriteSyncer(ws, zapcore.Lock(os.Stderr))
		level = zapcore.DebugLevel
	}

	return &service{
		logger: zap.New(zapcore.NewCore(encoder(), ws, level)).Sugar(),
		closer: file,
	}, nil
}

func NewStderr() LoggerService {
	return NewWriter(os.Stderr, false)
}

// NewWriter logs to w without rotation. Debug entries are kept only when
// debug is set.
func NewWriter(w io.Writer, debug bool) LoggerService {
	level := zapcore.InfoLevel
	if debug {
		level = zapcore.DebugLevel
	}
	core := zapcore.NewCore(encoder(), zapcore.AddSync(w), level)
	return &service{logger: zap.New(core).Sugar()}
}

func NewNop() LoggerService {
	return &service{logger: zap.NewNop().Sugar()}
}

func encoder() zapcore.Encoder {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	return zapcore.NewConsoleEncoder(encoderConfig)
}

func (s *service) Info(msg string) {
	if msg = strings.TrimSpace(msg); msg != "" {
		s.logger.Info(msg)
	}
}

func (s *service) Error(msg string, err error) {
	msg = strings.TrimSpace(msg)
	if err != nil {
		if msg == "" {
			msg = err.Error()
		} else {
			msg = msg + ": " + err.Error()
		}
	}
	if msg != "" {
		s.logger.Error(msg)
	}
}

func (s *service) Warn(msg string) {
	if msg = strings.TrimSpace(msg); msg != "" {
		s.logger.Warn(msg)
	}
}

func (s *service) Success(msg string) {
	if msg = strings.TrimSpace(msg); msg != "" {
		s.logger.Infow(msg, "result", "ok")
	}
}

func (s *service) Debug(msg string) {
	if msg = strings.TrimSpace(msg); msg != "" {
		s.logger.Debug(msg)
	}
}

func (s *service) Close() error {
	_ = s.logger.Sync()
	if s.closer == nil {
		return nil
	}
	return s.closer.Close()
}
