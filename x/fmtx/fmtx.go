// Package fmtx formats log values without fmt or reflection, for MCU builds
// where fmt is too heavy.
package fmtx

import (
	"time"

	"smartfarm-go/x/conv"
)

type stringer interface{ String() string }

// Append appends the text form of v to b. Unsupported types append "?".
func Append(b []byte, v any) []byte {
	var num [20]byte
	switch x := v.(type) {
	case nil:
		return append(b, "<nil>"...)
	case string:
		return append(b, x...)
	case []byte:
		return append(b, x...)
	case error:
		return append(b, x.Error()...)
	case bool:
		if x {
			return append(b, "true"...)
		}
		return append(b, "false"...)
	case int:
		return append(b, conv.Itoa(num[:], int64(x))...)
	case int8:
		return append(b, conv.Itoa(num[:], int64(x))...)
	case int16:
		return append(b, conv.Itoa(num[:], int64(x))...)
	case int32:
		return append(b, conv.Itoa(num[:], int64(x))...)
	case int64:
		return append(b, conv.Itoa(num[:], x)...)
	case uint:
		return append(b, conv.Utoa(num[:], uint64(x))...)
	case uint8:
		return append(b, conv.Utoa(num[:], uint64(x))...)
	case uint16:
		return append(b, conv.Utoa(num[:], uint64(x))...)
	case uint32:
		return append(b, conv.Utoa(num[:], uint64(x))...)
	case uint64:
		return append(b, conv.Utoa(num[:], x)...)
	case time.Duration:
		b = append(b, conv.Itoa(num[:], x.Milliseconds())...)
		return append(b, "ms"...)
	case float32:
		return appendFixed(b, float64(x))
	case float64:
		return appendFixed(b, x)
	case stringer:
		return append(b, x.String()...)
	default:
		return append(b, '?')
	}
}

// appendFixed writes f with one decimal, rounded half away from zero.
func appendFixed(b []byte, f float64) []byte {
	var num [20]byte
	neg := f < 0
	if neg {
		f = -f
	}
	tenths := uint64(f*10 + 0.5)
	if neg && tenths != 0 {
		b = append(b, '-')
	}
	b = append(b, conv.Utoa(num[:], tenths/10)...)
	b = append(b, '.')
	return append(b, byte('0'+tenths%10))
}
