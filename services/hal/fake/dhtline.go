package fake

import "time"

// Response timings in µs, mid-datasheet.
const (
	pullUpUS    = 30
	ackLowUS    = 80
	ackHighUS   = 80
	bitLowUS    = 50
	zeroHighUS  = 26
	oneHighUS   = 70
	minStartLow = 500 * time.Microsecond
)

// Response is what the emulated sensor does for one start signal.
type Response struct {
	Frame [5]byte
	// Absent leaves the line idle-high: the sensor never answers.
	Absent bool
	// Truncate, when > 0, stops after that many data bits and leaves the
	// line high.
	Truncate int
}

// DHTLine emulates the sensor side of an open-drain DHT bus on a Clock.
// Each Low/Release pair starts one response from Script; the last entry
// repeats once the script runs out. An empty script is an absent sensor.
type DHTLine struct {
	clk    *Clock
	Script []Response

	driven    bool
	lowAt     time.Time
	active    bool
	releaseAt time.Time
	edges     []edge
	next      int

	// Starts counts start signals; Releases counts Release calls.
	Starts   int
	Releases int
}

type edge struct {
	at    time.Duration // from release
	level bool
}

func NewDHTLine(clk *Clock, script ...Response) *DHTLine {
	return &DHTLine{clk: clk, Script: script}
}

// Driven reports whether the host is currently pulling the line low.
func (l *DHTLine) Driven() bool { return l.driven }

func (l *DHTLine) Low() {
	l.driven = true
	l.lowAt = l.clk.Now()
	l.active = false
}

func (l *DHTLine) Release() {
	l.Releases++
	if !l.driven {
		return
	}
	l.driven = false
	l.Starts++
	now := l.clk.Now()
	if now.Sub(l.lowAt) < minStartLow {
		l.active = false
		return
	}
	r := l.take()
	if r.Absent {
		l.active = false
		return
	}
	l.active = true
	l.releaseAt = now
	l.edges = waveform(r)
}

func (l *DHTLine) take() Response {
	if len(l.Script) == 0 {
		return Response{Absent: true}
	}
	i := l.next
	if i >= len(l.Script) {
		i = len(l.Script) - 1
	} else {
		l.next++
	}
	return l.Script[i]
}

// Get samples the level the sensor presents at the current virtual time.
func (l *DHTLine) Get() bool {
	if l.driven {
		return false
	}
	if !l.active {
		return true
	}
	t := l.clk.Now().Sub(l.releaseAt)
	level := true
	for _, e := range l.edges {
		if t < e.at {
			break
		}
		level = e.level
	}
	return level
}

// waveform lists level changes after the host releases the line.
func waveform(r Response) []edge {
	us := func(n int) time.Duration { return time.Duration(n) * time.Microsecond }
	var es []edge
	t := pullUpUS
	es = append(es, edge{us(t), false})
	t += ackLowUS
	es = append(es, edge{us(t), true})
	t += ackHighUS

	bits := 40
	if r.Truncate > 0 && r.Truncate < bits {
		bits = r.Truncate
	}
	for i := 0; i < bits; i++ {
		es = append(es, edge{us(t), false})
		t += bitLowUS
		es = append(es, edge{us(t), true})
		if r.Frame[i/8]&(1<<(7-uint(i%8))) != 0 {
			t += oneHighUS
		} else {
			t += zeroHighUS
		}
	}
	if bits == 40 {
		es = append(es, edge{us(t), false})
		t += bitLowUS
		es = append(es, edge{us(t), true})
	}
	return es
}

// EncodeDHT11 builds a valid DHT11 frame from tenths of °C and %RH.
func EncodeDHT11(deciC int16, deciRH uint16) [5]byte {
	var f [5]byte
	f[0] = byte(deciRH / 10)
	f[1] = byte(deciRH % 10)
	neg := deciC < 0
	if neg {
		deciC = -deciC
	}
	f[2] = byte(deciC / 10)
	f[3] = byte(deciC % 10)
	if neg {
		f[3] |= 0x80
	}
	f[4] = f[0] + f[1] + f[2] + f[3]
	return f
}

// EncodeDHT22 builds a valid DHT22 frame from tenths of °C and %RH.
func EncodeDHT22(deciC int16, deciRH uint16) [5]byte {
	var f [5]byte
	f[0], f[1] = byte(deciRH>>8), byte(deciRH)
	neg := deciC < 0
	if neg {
		deciC = -deciC
	}
	f[2], f[3] = byte(uint16(deciC)>>8), byte(deciC)
	if neg {
		f[2] |= 0x80
	}
	f[4] = f[0] + f[1] + f[2] + f[3]
	return f
}

// Corrupt returns f with a broken checksum.
func Corrupt(f [5]byte) [5]byte {
	f[4]++
	return f
}
