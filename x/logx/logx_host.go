//go:build !(rp2040 || rp2350)

package logx

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger wraps zap's SugaredLogger.
type Logger struct {
	*zap.SugaredLogger
}

func toZapLevel(s string) zapcore.Level {
	switch parseLevel(s) {
	case lvlDebug:
		return zapcore.DebugLevel
	case lvlWarn:
		return zapcore.WarnLevel
	case lvlError:
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

func newConsoleCore(w io.Writer, lvl zapcore.Level) zapcore.Core {
	cfg := zap.NewProductionEncoderConfig()
	cfg.TimeKey = ""
	cfg.EncodeLevel = zapcore.CapitalLevelEncoder

	enc := zapcore.NewConsoleEncoder(cfg)
	ws := zapcore.Lock(zapcore.AddSync(w))
	return zapcore.NewCore(enc, ws, zap.NewAtomicLevelAt(lvl))
}

// New logs to stderr; stdout belongs to the status display.
func New(level string) *Logger { return NewWriter(os.Stderr, level) }

// NewWriter logs to w at the given level.
func NewWriter(w io.Writer, level string) *Logger {
	return &Logger{SugaredLogger: zap.New(newConsoleCore(w, toZapLevel(level))).Sugar()}
}

// Nop discards everything.
func Nop() *Logger { return &Logger{SugaredLogger: zap.NewNop().Sugar()} }
