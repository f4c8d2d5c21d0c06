package logx

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, lvlDebug, parseLevel("debug"))
	assert.Equal(t, lvlWarn, parseLevel("warn"))
	assert.Equal(t, lvlError, parseLevel("error"))
	assert.Equal(t, lvlInfo, parseLevel("info"))
	assert.Equal(t, lvlInfo, parseLevel("loud"))
}

func TestWriterFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	log := NewWriter(&buf, WarnLevel)

	log.Infow("cycle", "n", 1)
	assert.Empty(t, buf.String())

	log.Warnw("adc read failed", "sample", 100)
	out := buf.String()
	assert.Contains(t, out, "WARN")
	assert.Contains(t, out, "adc read failed")
	assert.Contains(t, out, "sample")
	assert.Contains(t, out, "100")
}

func TestNopIsSilent(t *testing.T) {
	log := Nop()
	log.Errorw("relay write failed", "err", "stuck")
}

func TestAppendLine(t *testing.T) {
	got := appendLine(nil, "WARN", "relay write failed", []any{"cycle", uint32(3), "err", errors.New("stuck"), "dangling"})
	assert.Equal(t, "WARN\trelay write failed cycle=3 err=stuck", string(got))

	got = appendLine(nil, "DEBUG", "low moisture, pump on", []any{"analog", uint16(100)})
	assert.Equal(t, "DEBUG\tlow moisture, pump on analog=100", string(got))
}
