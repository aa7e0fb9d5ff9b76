package log

import (
	"context"

	"github.com/ro-aviation/skyhub/internal/interfaces/global"
)

// NopLogger discards everything. Used by tests.
type NopLogger struct{}

func NewNopLogger() *NopLogger { return &NopLogger{} }

type nopCallback struct{}

func (c *nopCallback) Invoke(_ context.Context) error { return nil }

func (l *NopLogger) Init(_ bool)                       {}
func (l *NopLogger) ShutdownCallback() global.Callable { return &nopCallback{} }
func (l *NopLogger) Debug(_ string, _ ...interface{})  {}
func (l *NopLogger) DebugF(_ string, _ ...interface{}) {}
func (l *NopLogger) Info(_ string, _ ...interface{})   {}
func (l *NopLogger) InfoF(_ string, _ ...interface{})  {}
func (l *NopLogger) Warn(_ string, _ ...interface{})   {}
func (l *NopLogger) WarnF(_ string, _ ...interface{})  {}
func (l *NopLogger) Error(_ string, _ ...interface{})  {}
func (l *NopLogger) ErrorF(_ string, _ ...interface{}) {}
func (l *NopLogger) Fatal(_ string, _ ...interface{})  {}
func (l *NopLogger) FatalF(_ string, _ ...interface{}) {}

var _ LoggerInterface = (*NopLogger)(nil)
