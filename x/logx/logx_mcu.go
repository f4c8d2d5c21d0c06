//go:build rp2040 || rp2350

package logx

import "io"

// Logger writes "LEVEL msg k=v ..." lines. A nil writer falls back to the
// runtime console (println).
type Logger struct {
	w   io.Writer
	min level
	nop bool
}

func New(level string) *Logger { return NewWriter(nil, level) }

func NewWriter(w io.Writer, level string) *Logger {
	return &Logger{w: w, min: parseLevel(level)}
}

func Nop() *Logger { return &Logger{nop: true} }

func (l *Logger) Debugw(msg string, kv ...any) { l.log(lvlDebug, "DEBUG", msg, kv) }
func (l *Logger) Infow(msg string, kv ...any)  { l.log(lvlInfo, "INFO", msg, kv) }
func (l *Logger) Warnw(msg string, kv ...any)  { l.log(lvlWarn, "WARN", msg, kv) }
func (l *Logger) Errorw(msg string, kv ...any) { l.log(lvlError, "ERROR", msg, kv) }

func (l *Logger) Sync() error { return nil }

func (l *Logger) log(lv level, tag, msg string, kv []any) {
	if l == nil || l.nop || lv < l.min {
		return
	}
	line := appendLine(make([]byte, 0, 96), tag, msg, kv)
	if l.w == nil {
		println(string(line))
		return
	}
	line = append(line, '\r', '\n')
	_, _ = l.w.Write(line)
}
