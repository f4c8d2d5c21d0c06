package dht

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smartfarm-go/services/hal/fake"
)

func newDevice(typ Type, script ...fake.Response) (*Device, *fake.DHTLine, *fake.Clock) {
	clk := fake.NewClock()
	line := fake.NewDHTLine(clk, script...)
	d := New(line, clk.Micros, Config{Type: typ, Now: clk.Now})
	return d, line, clk
}

func TestReadDHT11(t *testing.T) {
	d, line, _ := newDevice(DHT11, fake.Response{Frame: fake.EncodeDHT11(260, 550)})

	s, err := d.Read()
	require.NoError(t, err)
	assert.Equal(t, Sample{DeciC: 260, DeciRH: 550}, s)
	assert.Equal(t, float32(26), s.Celsius())
	assert.Equal(t, float32(55), s.RelHumidity())
	assert.Equal(t, uint32(1), d.Reads())
	assert.Equal(t, s, d.Last())
	assert.Equal(t, 1, line.Starts)
	assert.False(t, line.Driven())
}

func TestReadDHT22Negative(t *testing.T) {
	d, _, _ := newDevice(DHT22, fake.Response{Frame: fake.EncodeDHT22(-45, 652)})

	s, err := d.Read()
	require.NoError(t, err)
	assert.Equal(t, int16(-45), s.DeciC)
	assert.Equal(t, uint16(652), s.DeciRH)
	assert.InDelta(t, -4.5, s.Celsius(), 1e-6)
}

func TestReadErrors(t *testing.T) {
	cases := []struct {
		name string
		resp fake.Response
		want error
	}{
		{"absent", fake.Response{Absent: true}, ErrNoResponse},
		{"checksum", fake.Response{Frame: fake.Corrupt(fake.EncodeDHT11(260, 550))}, ErrChecksum},
		{"truncated", fake.Response{Frame: fake.EncodeDHT11(260, 550), Truncate: 12}, ErrTimeout},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			d, line, _ := newDevice(DHT11, c.resp)
			_, err := d.Read()
			assert.ErrorIs(t, err, c.want)
			assert.Zero(t, d.Reads())
			// Released after the start pulse and again on return.
			assert.Equal(t, 2, line.Releases)
			assert.False(t, line.Driven())
		})
	}
}

func TestReadNotReadyWithinInterval(t *testing.T) {
	frame := fake.EncodeDHT11(210, 400)
	d, line, clk := newDevice(DHT11, fake.Response{Frame: frame})

	_, err := d.Read()
	require.NoError(t, err)

	clk.Advance(500 * time.Millisecond)
	_, err = d.Read()
	assert.ErrorIs(t, err, ErrNotReady)
	assert.Equal(t, 1, line.Starts)

	clk.Advance(time.Second)
	s, err := d.Read()
	require.NoError(t, err)
	assert.Equal(t, int16(210), s.DeciC)
	assert.Equal(t, 2, line.Starts)
}

func TestMinIntervalDefaults(t *testing.T) {
	assert.Equal(t, time.Second, New(nil, nil, Config{Type: DHT11}).cfg.MinInterval)
	assert.Equal(t, 2*time.Second, New(nil, nil, Config{Type: DHT22}).cfg.MinInterval)
	assert.Equal(t, "dht11", DHT11.String())
	assert.Equal(t, "dht22", DHT22.String())
}

func TestDecodeDHT11DecimalAndSign(t *testing.T) {
	f := [5]byte{40, 12, 3, 0x80 | 4, 0}
	s := decode(DHT11, f)
	assert.Equal(t, uint16(409), s.DeciRH) // decimal digit capped at 9
	assert.Equal(t, int16(-34), s.DeciC)
}
