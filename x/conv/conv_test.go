package conv

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestItoa(t *testing.T) {
	cases := []struct {
		in   int64
		want string
	}{
		{0, "0"},
		{26, "26"},
		{-45, "-45"},
		{4095, "4095"},
	}
	for _, c := range cases {
		var buf [20]byte
		assert.Equal(t, c.want, string(Itoa(buf[:], c.in)))
	}
}

func TestUtoa(t *testing.T) {
	var buf [20]byte
	assert.Equal(t, "0", string(Utoa(buf[:], 0)))
	assert.Equal(t, "2048", string(Utoa(buf[:], 2048)))
	assert.Equal(t, "18446744073709551615", string(Utoa(buf[:], ^uint64(0))))
}

func TestShortBufferKeepsLowDigits(t *testing.T) {
	var buf [2]byte
	assert.Equal(t, "95", string(Utoa(buf[:], 4095)))
	assert.Empty(t, Itoa(nil, 7))
}
