package fake

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"smartfarm-go/types"
)

func TestClockAdvancesWithoutSleeping(t *testing.T) {
	c := NewClock()
	c.Millis(1000)
	c.Micros(250)
	assert.Equal(t, time.Second+250*time.Microsecond, c.Elapsed())
	assert.Equal(t, []time.Duration{time.Second}, c.Sleeps)
}

func TestDHTLineIdleAndShortStart(t *testing.T) {
	c := NewClock()
	l := NewDHTLine(c, Response{Frame: EncodeDHT11(260, 550)})
	assert.True(t, l.Get(), "idle line is pulled high")

	l.Low()
	assert.False(t, l.Get())
	c.Micros(100) // too short to wake the sensor
	l.Release()
	c.Micros(40)
	assert.True(t, l.Get())
	assert.Equal(t, 1, l.Starts)
}

func TestDHTLineResponsePreamble(t *testing.T) {
	c := NewClock()
	l := NewDHTLine(c, Response{Frame: EncodeDHT11(260, 550)})
	l.Low()
	c.Millis(18)
	l.Release()

	assert.True(t, l.Get())
	c.Micros(pullUpUS)
	assert.False(t, l.Get())
	c.Micros(ackLowUS)
	assert.True(t, l.Get())
}

func TestEncoders(t *testing.T) {
	assert.Equal(t, [5]byte{55, 0, 26, 0, 81}, EncodeDHT11(260, 550))
	assert.Equal(t, [5]byte{40, 0, 2, 0x85, 0xAF}, EncodeDHT11(-25, 400))
	assert.Equal(t, [5]byte{0x02, 0x8C, 0x80, 0x2D, 0x3B}, EncodeDHT22(-45, 652))
	assert.Equal(t, byte(82), Corrupt(EncodeDHT11(260, 550))[4])
}

func TestScriptsRepeatLastEntry(t *testing.T) {
	a := NewADC(12, 1, 2)
	for _, want := range []uint16{1, 2, 2} {
		v, err := a.Read()
		assert.NoError(t, err)
		assert.Equal(t, want, v)
	}

	s := &Sensor{}
	assert.False(t, s.Read().OK())
	s.Script = []types.SensorOutcome{types.Success(types.Reading{Temperature: 20})}
	assert.True(t, s.Read().OK())

	p := &Pin{}
	assert.NoError(t, p.Set(true))
	p.Err = errors.New("busy")
	assert.Error(t, p.Set(false))
	assert.True(t, p.Get())
	assert.Equal(t, []bool{true}, p.History)
}
