package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	usecasecontract "github.com/mikiasgoitom/yamdb/internal/usecase/contract"
)

// SlogLogger adapts a *slog.Logger to the printf-style IAppLogger.
type SlogLogger struct {
	log *slog.Logger
}

// NewLogger writes text records at level and above to w.
func NewLogger(w io.Writer, level string) *SlogLogger {
	return &SlogLogger{
		log: slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: ParseLevel(level)})),
	}
}

// NewStdLogger creates a logger on stdout and installs it as the slog default.
func NewStdLogger(level string) usecasecontract.IAppLogger {
	l := NewLogger(os.Stdout, level)
	slog.SetDefault(l.log)
	return l
}

// ParseLevel maps LOG_LEVEL values onto slog levels; unknown values mean info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

// Slog exposes the underlying logger for code that logs with attributes.
func (l *SlogLogger) Slog() *slog.Logger {
	return l.log
}

func (l *SlogLogger) Debugf(format string, args ...interface{}) {
	l.log.Debug(fmt.Sprintf(format, args...))
}

func (l *SlogLogger) Infof(format string, args ...interface{}) {
	l.log.Info(fmt.Sprintf(format, args...))
}

func (l *SlogLogger) Warnf(format string, args ...interface{}) {
	l.log.Warn(fmt.Sprintf(format, args...))
}

func (l *SlogLogger) Errorf(format string, args ...interface{}) {
	l.log.Error(fmt.Sprintf(format, args...))
}

// Fatalf logs at error level and exits.
func (l *SlogLogger) Fatalf(format string, args ...interface{}) {
	l.log.Error(fmt.Sprintf(format, args...))
	os.Exit(1)
}

var _ usecasecontract.IAppLogger = (*SlogLogger)(nil)
