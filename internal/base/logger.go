// Package base
package base

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/ro-aviation/skyhub/internal/interfaces/global"
)

var levelColors = map[slog.Level]*color.Color{
	slog.LevelDebug: color.New(color.FgCyan),
	slog.LevelInfo:  color.New(color.FgGreen),
	slog.LevelWarn:  color.New(color.FgYellow),
	slog.LevelError: color.New(color.FgRed),
}

// consoleHandler is a slog handler writing colored single-line entries
// to stderr. Attributes are appended key=value after the message.
type consoleHandler struct {
	mu    *sync.Mutex
	level slog.Level
	attrs []slog.Attr
}

func (h *consoleHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

func (h *consoleHandler) Handle(_ context.Context, r slog.Record) error {
	label := levelColors[r.Level.Level()]
	if label == nil {
		label = color.New(color.FgWhite)
	}
	line := fmt.Sprintf("%s [%s] %s",
		r.Time.Format(time.DateTime),
		label.Sprintf("%-5s", r.Level.String()),
		r.Message)
	appendAttr := func(a slog.Attr) bool {
		line += fmt.Sprintf(" %s=%v", a.Key, a.Value)
		return true
	}
	for _, a := range h.attrs {
		appendAttr(a)
	}
	r.Attrs(appendAttr)
	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := fmt.Fprintln(os.Stderr, line)
	return err
}

func (h *consoleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.attrs = append(append([]slog.Attr{}, h.attrs...), attrs...)
	return &clone
}

func (h *consoleHandler) WithGroup(_ string) slog.Handler { return h }

type Logger struct {
	logger  *slog.Logger
	logFile *os.File
}

func NewLogger() *Logger {
	return &Logger{}
}

func (logger *Logger) Init(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	handler := &consoleHandler{mu: &sync.Mutex{}, level: level}
	logger.logger = slog.New(handler)
	// slog-echo and any package logging through slog share the sink.
	slog.SetDefault(logger.logger)

	if file, err := os.OpenFile("skyhub.log", os.O_APPEND|os.O_CREATE|os.O_WRONLY, global.DefaultFilePermissions); err == nil {
		logger.logFile = file
	} else {
		logger.logger.Warn("Unable to open log file, console only", "error", err)
	}
}

type loggerShutdownCallback struct {
	logger *Logger
}

func (lc *loggerShutdownCallback) Invoke(_ context.Context) error {
	if lc.logger.logFile != nil {
		return lc.logger.logFile.Close()
	}
	return nil
}

func (logger *Logger) ShutdownCallback() global.Callable {
	return &loggerShutdownCallback{logger: logger}
}

func (logger *Logger) write(level slog.Level, msg string) {
	logger.logger.Log(context.Background(), level, msg)
	if logger.logFile != nil {
		line := fmt.Sprintf("%s [%s] %s\n", time.Now().Format(time.DateTime), level.String(), msg)
		_, _ = logger.logFile.WriteString(line)
	}
}

func (logger *Logger) Debug(msg string, v ...interface{}) {
	logger.write(slog.LevelDebug, fmt.Sprint(append([]interface{}{msg}, v...)...))
}

func (logger *Logger) DebugF(msg string, v ...interface{}) {
	logger.write(slog.LevelDebug, fmt.Sprintf(msg, v...))
}

func (logger *Logger) Info(msg string, v ...interface{}) {
	logger.write(slog.LevelInfo, fmt.Sprint(append([]interface{}{msg}, v...)...))
}

func (logger *Logger) InfoF(msg string, v ...interface{}) {
	logger.write(slog.LevelInfo, fmt.Sprintf(msg, v...))
}

func (logger *Logger) Warn(msg string, v ...interface{}) {
	logger.write(slog.LevelWarn, fmt.Sprint(append([]interface{}{msg}, v...)...))
}

func (logger *Logger) WarnF(msg string, v ...interface{}) {
	logger.write(slog.LevelWarn, fmt.Sprintf(msg, v...))
}

func (logger *Logger) Error(msg string, v ...interface{}) {
	logger.write(slog.LevelError, fmt.Sprint(append([]interface{}{msg}, v...)...))
}

func (logger *Logger) ErrorF(msg string, v ...interface{}) {
	logger.write(slog.LevelError, fmt.Sprintf(msg, v...))
}

func (logger *Logger) Fatal(msg string, v ...interface{}) {
	logger.write(slog.LevelError, fmt.Sprint(append([]interface{}{msg}, v...)...))
	os.Exit(1)
}

func (logger *Logger) FatalF(msg string, v ...interface{}) {
	logger.write(slog.LevelError, fmt.Sprintf(msg, v...))
	os.Exit(1)
}
