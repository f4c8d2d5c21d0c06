// Package logx is the structured logger shared by firmware and host tools.
// Host builds wrap zap's SugaredLogger; MCU builds print the same key/value
// lines to a writer (the debug UART) with fmtx.
package logx

import "smartfarm-go/x/fmtx"

// Textual levels accepted by New.
const (
	DebugLevel = "debug"
	InfoLevel  = "info"
	WarnLevel  = "warn"
	ErrorLevel = "error"
)

type level int8

const (
	lvlDebug level = iota - 1
	lvlInfo
	lvlWarn
	lvlError
)

// parseLevel maps a level string; unknown strings fall back to info.
func parseLevel(s string) level {
	switch s {
	case DebugLevel:
		return lvlDebug
	case WarnLevel:
		return lvlWarn
	case ErrorLevel:
		return lvlError
	default:
		return lvlInfo
	}
}

// appendLine renders "TAG\tmsg k=v ..." onto b. A trailing odd key is dropped.
func appendLine(b []byte, tag, msg string, kv []any) []byte {
	b = append(b, tag...)
	b = append(b, '\t')
	b = append(b, msg...)
	for i := 0; i+1 < len(kv); i += 2 {
		b = append(b, ' ')
		b = fmtx.Append(b, kv[i])
		b = append(b, '=')
		b = fmtx.Append(b, kv[i+1])
	}
	return b
}
