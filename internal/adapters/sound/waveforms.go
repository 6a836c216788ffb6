package sound

import (
	"encoding/binary"
	"math"
)

// The built-in bursts reproduce the app's four alarm characters: a soft
// triple beep, a harsh two-tone buzzer, a harmonic school bell, and a
// rising-falling siren. Each burst's length matches its repeat interval
// so a looping alarm sounds continuous.

type mixer struct {
	samples []float64
}

func newMixer(seconds float64) *mixer {
	return &mixer{samples: make([]float64, int(seconds*sampleRate))}
}

// addTone mixes a tone into the buffer. freq is evaluated per sample so
// sweeps work; amp is evaluated per sample for envelopes.
func (m *mixer) addTone(start, dur float64, wave func(phase float64) float64, freq, amp func(t float64) float64) {
	from := int(start * sampleRate)
	to := from + int(dur*sampleRate)
	if to > len(m.samples) {
		to = len(m.samples)
	}
	phase := 0.0
	for i := from; i < to; i++ {
		t := float64(i-from) / sampleRate
		phase += freq(t) / sampleRate
		m.samples[i] += wave(phase) * amp(t)
	}
}

// pcm converts the mix to 16-bit little-endian samples with clipping.
func (m *mixer) pcm() []byte {
	out := make([]byte, len(m.samples)*2)
	for i, s := range m.samples {
		if s > 1 {
			s = 1
		} else if s < -1 {
			s = -1
		}
		binary.LittleEndian.PutUint16(out[i*2:], uint16(int16(s*math.MaxInt16)))
	}
	return out
}

func sine(phase float64) float64 {
	return math.Sin(2 * math.Pi * phase)
}

func square(phase float64) float64 {
	if math.Mod(phase, 1) < 0.5 {
		return 1
	}
	return -1
}

func sawtooth(phase float64) float64 {
	return 2*math.Mod(phase, 1) - 1
}

func triangle(phase float64) float64 {
	return 2*math.Abs(sawtooth(phase)) - 1
}

func constFreq(hz float64) func(float64) float64 {
	return func(float64) float64 { return hz }
}

// holdThenFade holds level for holdFor seconds then ramps linearly to
// zero over fadeFor.
func holdThenFade(level, holdFor, fadeFor float64) func(float64) float64 {
	return func(t float64) float64 {
		if t <= holdFor {
			return level
		}
		f := 1 - (t-holdFor)/fadeFor
		if f < 0 {
			return 0
		}
		return level * f
	}
}

// decay ramps exponentially from level toward near-silence over dur.
func decay(level, dur float64) func(float64) float64 {
	k := math.Log(level/0.01) / dur
	return func(t float64) float64 {
		return level * math.Exp(-k*t)
	}
}

// lightBurst: three soft 880 Hz sine beeps, 250 ms apart.
func lightBurst(volume float64) []byte {
	m := newMixer(0.8)
	for i := 0; i < 3; i++ {
		m.addTone(float64(i)*0.25, 0.25, sine, constFreq(880), holdThenFade(0.3*volume, 0.2, 0.05))
	}
	return m.pcm()
}

// strongBurst: six 200 ms square buzzes alternating between 800 and
// 1000 Hz, each doubled by a +3 Hz detuned partner.
func strongBurst(volume float64) []byte {
	m := newMixer(1.2)
	for i := 0; i < 6; i++ {
		freq := 800.0
		if i%2 != 0 {
			freq = 1000.0
		}
		start := float64(i) * 0.2
		env := holdThenFade(0.35*volume, 0.19, 0.01)
		m.addTone(start, 0.2, square, constFreq(freq), env)
		m.addTone(start, 0.2, square, constFreq(freq+3), env)
	}
	return m.pcm()
}

// schoolBellBurst: four rings, each a decaying harmonic stack with a
// short metallic strike transient.
func schoolBellBurst(volume float64) []byte {
	partials := []float64{523, 659, 784, 1047, 1319}
	m := newMixer(2.0)
	for ring := 0; ring < 4; ring++ {
		base := float64(ring) * 0.5
		for i, freq := range partials {
			level := volume / float64(i+1) * 0.5
			m.addTone(base, 0.45, sine, constFreq(freq), decay(level, 0.45))
		}
		m.addTone(base, 0.05, triangle, constFreq(2000), decay(0.4*volume, 0.05))
	}
	return m.pcm()
}

// sirenBurst: 2.4 s of a detuned sawtooth pair sweeping 400→800→400 Hz
// twice per second.
func sirenBurst(volume float64) []byte {
	sweep := func(detune float64) func(float64) float64 {
		return func(t float64) float64 {
			c := math.Mod(t, 0.5)
			if c < 0.25 {
				return 400 + 1600*c + detune
			}
			return 800 - 1600*(c-0.25) + detune
		}
	}
	m := newMixer(2.4)
	env := holdThenFade(0.4*volume, 2.35, 0.05)
	m.addTone(0, 2.4, sawtooth, sweep(0), env)
	m.addTone(0, 2.4, sawtooth, sweep(2), env)
	return m.pcm()
}
