// Package status draws the five-line status frame onto the display.
package status

import (
	"image/color"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"

	"smartfarm-go/config"
	"smartfarm-go/errcode"
	"smartfarm-go/services/hal"
	"smartfarm-go/types"
)

// ascent is the distance from a line's top to the font baseline.
const ascent int16 = 8

var on = color.RGBA{R: 255, G: 255, B: 255, A: 255}

// Printable ASCII range kept in the glyph table.
const (
	firstGlyph = ' '
	lastGlyph  = '~'
)

// Renderer repaints the whole panel from a Frame.
type Renderer struct {
	d      hal.Display
	canvas drivers.Displayer
	layout config.DisplayConfig
	font   *tinyfont.Font
	glyphs [lastGlyph - firstGlyph + 1]tinyfont.Glypher

	flushes uint32
}

func New(d hal.Display, layout config.DisplayConfig) *Renderer {
	r := &Renderer{d: d, canvas: d, layout: layout, font: &proggy.TinySZ8pt7b}
	for c := firstGlyph; c <= lastGlyph; c++ {
		r.glyphs[c-firstGlyph] = r.font.GetGlyph(c)
	}
	return r
}

func (r *Renderer) glyph(c byte) tinyfont.Glypher {
	if c >= firstGlyph && c <= lastGlyph {
		return r.glyphs[c-firstGlyph]
	}
	return r.font.GetGlyph(rune(c))
}

// drawLine draws l left to right from (x, baseline).
func (r *Renderer) drawLine(x, baseline int16, l *types.TextLine) {
	for _, c := range l.Bytes() {
		g := r.glyph(c)
		g.Draw(r.canvas, x, baseline, on)
		x += int16(g.Info().XAdvance)
	}
}

// Render clears the buffer, draws every non-empty line and flushes once.
// Nothing reaches the panel before the flush, and drawing does not allocate.
func (r *Renderer) Render(f *types.Frame) error {
	r.d.ClearBuffer()
	for i, l := range f.Lines() {
		if l.Empty() {
			continue
		}
		r.drawLine(r.layout.X, r.layout.LineTop(i)+ascent, l)
	}
	if err := r.d.Display(); err != nil {
		return errcode.Wrap(errcode.DisplayFailed, "status.render", err)
	}
	r.flushes++
	return nil
}

// Clear blanks the panel.
func (r *Renderer) Clear() error {
	r.d.ClearBuffer()
	if err := r.d.Display(); err != nil {
		return errcode.Wrap(errcode.DisplayFailed, "status.clear", err)
	}
	return nil
}

// Flushes counts successful renders.
func (r *Renderer) Flushes() uint32 { return r.flushes }
