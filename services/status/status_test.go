package status

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"

	"smartfarm-go/config"
	"smartfarm-go/errcode"
	"smartfarm-go/services/hal/fb"
	"smartfarm-go/types"
)

func newRenderer() (*Renderer, *fb.Framebuffer) {
	cfg := config.Default()
	screen := fb.New(cfg.Display.Width, cfg.Display.Height, nil)
	return New(screen, cfg.Display), screen
}

func fullFrame() *types.Frame {
	var f types.Frame
	f.Moisture.Set("Moisture Analog 100")
	f.Relay.Set("Pump On")
	f.Temperature.Set("Temperature 26C")
	f.Humidity.Set("Humidity 55%")
	return &f
}

func litBetween(s *fb.Framebuffer, y0, y1 int16) bool {
	for y := y0; y < y1; y++ {
		if s.RowLit(y) {
			return true
		}
	}
	return false
}

func TestRenderFlushesOnce(t *testing.T) {
	r, screen := newRenderer()
	require.NoError(t, r.Render(fullFrame()))
	assert.Equal(t, 1, screen.Flushes())
	assert.Equal(t, uint32(1), r.Flushes())
	assert.NotZero(t, screen.Lit())
}

func TestRenderIsDeterministic(t *testing.T) {
	r, screen := newRenderer()
	f := fullFrame()

	require.NoError(t, r.Render(f))
	first := screen.Bytes()
	require.NoError(t, r.Render(f))
	assert.Equal(t, first, screen.Bytes())
}

func TestRenderClearsPreviousFrame(t *testing.T) {
	r, screen := newRenderer()
	require.NoError(t, r.Render(fullFrame()))

	require.NoError(t, r.Render(&types.Frame{}))
	assert.Zero(t, screen.Lit())
}

func TestRenderLinePositions(t *testing.T) {
	r, screen := newRenderer()

	var top types.Frame
	top.Moisture.Set("Moisture Analog 4095")
	require.NoError(t, r.Render(&top))
	assert.True(t, litBetween(screen, 0, 30))
	assert.False(t, litBetween(screen, 30, 64))

	var bottom types.Frame
	bottom.Error.Set("DHT Timing Error")
	require.NoError(t, r.Render(&bottom))
	assert.False(t, litBetween(screen, 0, 30))
	assert.True(t, litBetween(screen, 35, 64))
}

func TestRenderFlushFailure(t *testing.T) {
	r, screen := newRenderer()
	boom := errors.New("i2c nak")
	screen.FailNext(boom)

	err := r.Render(fullFrame())
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, errcode.DisplayFailed, errcode.Of(err))
	assert.Zero(t, r.Flushes())
}

func TestRenderMatchesTinyfontLayout(t *testing.T) {
	r, screen := newRenderer()
	f := fullFrame()
	f.Error.Set("DHT Timing Error")
	require.NoError(t, r.Render(f))

	cfg := config.Default()
	want := fb.New(cfg.Display.Width, cfg.Display.Height, nil)
	for i, l := range f.Lines() {
		tinyfont.WriteLine(want, &proggy.TinySZ8pt7b, cfg.Display.X, cfg.Display.LineTop(i)+ascent, l.String(), on)
	}
	assert.Equal(t, want.Bytes(), screen.Bytes())
}

func TestRenderDoesNotAllocate(t *testing.T) {
	r, _ := newRenderer()
	f := fullFrame()
	f.Error.Set("DHT Timing Error")

	allocs := testing.AllocsPerRun(20, func() {
		_ = r.Render(f)
	})
	assert.Zero(t, allocs)
}
