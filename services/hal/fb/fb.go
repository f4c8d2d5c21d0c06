// Package fb is an in-memory 1-bit framebuffer with the same surface as the
// SSD1306 driver. Display renders the buffer as text to an optional writer,
// which is how linux boards and the simulator show the status screen.
package fb

import (
	"image/color"
	"io"
)

// Framebuffer is a monochrome panel of Width x Height pixels.
type Framebuffer struct {
	w, h int16
	pix  []byte // row-major, one bit per pixel
	out  io.Writer

	// Home, when set, is written before every dump (e.g. ANSI cursor home).
	Home string

	flushes int
	failNext error
}

// New returns a cleared framebuffer. out may be nil.
func New(w, h int16, out io.Writer) *Framebuffer {
	if w <= 0 || h <= 0 {
		w, h = 1, 1
	}
	n := (int(w)*int(h) + 7) / 8
	return &Framebuffer{w: w, h: h, pix: make([]byte, n), out: out}
}

func (f *Framebuffer) Size() (x, y int16) { return f.w, f.h }

// SetPixel lights the pixel for any non-black colour. Out-of-range writes
// are ignored.
func (f *Framebuffer) SetPixel(x, y int16, c color.RGBA) {
	if x < 0 || y < 0 || x >= f.w || y >= f.h {
		return
	}
	i := int(y)*int(f.w) + int(x)
	if c.R|c.G|c.B != 0 {
		f.pix[i/8] |= 1 << uint(i%8)
	} else {
		f.pix[i/8] &^= 1 << uint(i%8)
	}
}

// Pixel reports whether (x, y) is lit.
func (f *Framebuffer) Pixel(x, y int16) bool {
	if x < 0 || y < 0 || x >= f.w || y >= f.h {
		return false
	}
	i := int(y)*int(f.w) + int(x)
	return f.pix[i/8]&(1<<uint(i%8)) != 0
}

// Bytes returns a copy of the packed pixel buffer.
func (f *Framebuffer) Bytes() []byte { return append([]byte(nil), f.pix...) }

// Lit counts lit pixels.
func (f *Framebuffer) Lit() int {
	n := 0
	for _, b := range f.pix {
		for ; b != 0; b &= b - 1 {
			n++
		}
	}
	return n
}

// RowLit reports whether any pixel in row y is lit.
func (f *Framebuffer) RowLit(y int16) bool {
	for x := int16(0); x < f.w; x++ {
		if f.Pixel(x, y) {
			return true
		}
	}
	return false
}

func (f *Framebuffer) ClearBuffer() {
	for i := range f.pix {
		f.pix[i] = 0
	}
}

// FailNext makes the next Display return err without flushing.
func (f *Framebuffer) FailNext(err error) { f.failNext = err }

// Flushes counts successful Display calls.
func (f *Framebuffer) Flushes() int { return f.flushes }

// Display "pushes" the buffer: '#' for lit pixels, '.' otherwise.
func (f *Framebuffer) Display() error {
	if err := f.failNext; err != nil {
		f.failNext = nil
		return err
	}
	f.flushes++
	if f.out == nil {
		return nil
	}
	row := make([]byte, int(f.w)+1)
	row[len(row)-1] = '\n'
	if f.Home != "" {
		if _, err := io.WriteString(f.out, f.Home); err != nil {
			return err
		}
	}
	for y := int16(0); y < f.h; y++ {
		for x := int16(0); x < f.w; x++ {
			if f.Pixel(x, y) {
				row[x] = '#'
			} else {
				row[x] = '.'
			}
		}
		if _, err := f.out.Write(row); err != nil {
			return err
		}
	}
	return nil
}
