package types

import (
	"github.com/chewxy/math32"

	"smartfarm-go/x/conv"
)

// LineCap is the fixed capacity of one display text line in bytes.
const LineCap = 32

// TextLine is a fixed-capacity text buffer. Writes past LineCap are
// truncated; nothing here allocates.
type TextLine struct {
	buf [LineCap]byte
	n   uint8
}

func (l *TextLine) Reset()      { l.n = 0 }
func (l *TextLine) Len() int    { return int(l.n) }
func (l *TextLine) Empty() bool { return l.n == 0 }

// Bytes returns the live contents; the slice aliases the buffer.
func (l *TextLine) Bytes() []byte { return l.buf[:l.n] }

func (l *TextLine) String() string { return string(l.buf[:l.n]) }

func (l *TextLine) WriteByte(c byte) error {
	if int(l.n) < LineCap {
		l.buf[l.n] = c
		l.n++
	}
	return nil
}

func (l *TextLine) WriteString(s string) {
	n := copy(l.buf[l.n:], s)
	l.n += uint8(n)
}

func (l *TextLine) write(p []byte) {
	n := copy(l.buf[l.n:], p)
	l.n += uint8(n)
}

func (l *TextLine) WriteUint(v uint64) {
	var tmp [20]byte
	l.write(conv.Utoa(tmp[:], v))
}

func (l *TextLine) WriteInt(v int64) {
	var tmp [20]byte
	l.write(conv.Itoa(tmp[:], v))
}

// WriteDecimal writes v with at most one fractional digit, dropping the
// fraction when it rounds to zero: 26 -> "26", 26.5 -> "26.5".
func (l *TextLine) WriteDecimal(v float32) {
	if math32.IsNaN(v) || math32.IsInf(v, 0) {
		l.WriteString("--")
		return
	}
	deci := int64(math32.Round(math32.Abs(v) * 10))
	if v < 0 && deci != 0 {
		_ = l.WriteByte('-')
	}
	l.WriteUint(uint64(deci / 10))
	if frac := deci % 10; frac != 0 {
		_ = l.WriteByte('.')
		_ = l.WriteByte(byte('0' + frac))
	}
}

// Set replaces the contents with s.
func (l *TextLine) Set(s string) {
	l.Reset()
	l.WriteString(s)
}

// LineCount is the number of text lines in a Frame.
const LineCount = 5

// Frame holds the five status lines rebuilt every cycle.
type Frame struct {
	Moisture    TextLine
	Relay       TextLine
	Temperature TextLine
	Humidity    TextLine
	Error       TextLine
}

// ResetVolatile clears every line except Temperature and Humidity, which
// only change on a successful sensor read.
func (f *Frame) ResetVolatile() {
	f.Moisture.Reset()
	f.Relay.Reset()
	f.Error.Reset()
}

// Lines returns the lines in display order (top to bottom).
func (f *Frame) Lines() [LineCount]*TextLine {
	return [LineCount]*TextLine{&f.Moisture, &f.Relay, &f.Temperature, &f.Humidity, &f.Error}
}

// Text is a value snapshot of a Frame, used in reports and transcripts.
type Text struct {
	Moisture    string `json:"moisture" yaml:"moisture"`
	Relay       string `json:"relay" yaml:"relay"`
	Temperature string `json:"temperature" yaml:"temperature"`
	Humidity    string `json:"humidity" yaml:"humidity"`
	Error       string `json:"error" yaml:"error"`
}

func (f *Frame) Text() Text {
	return Text{
		Moisture:    f.Moisture.String(),
		Relay:       f.Relay.String(),
		Temperature: f.Temperature.String(),
		Humidity:    f.Humidity.String(),
		Error:       f.Error.String(),
	}
}
