package audio

import (
	"fmt"
	"math"
)

// Waveform selects the oscillator shape of a tone.
type Waveform int

const (
	Sine Waveform = iota
	Sawtooth
	Triangle
	Square
)

func (w Waveform) String() string {
	switch w {
	case Sine:
		return "sine"
	case Sawtooth:
		return "sawtooth"
	case Triangle:
		return "triangle"
	case Square:
		return "square"
	default:
		return fmt.Sprintf("Waveform(%d)", int(w))
	}
}

// oscillate returns the waveform value at phase p in [0,1).
func oscillate(w Waveform, p float64) float64 {
	switch w {
	case Sawtooth:
		return 2*p - 1
	case Triangle:
		// shifted a quarter cycle so the wave starts at zero and rises
		q := p + 0.25
		if q >= 1 {
			q--
		}
		return 1 - 4*math.Abs(q-0.5)
	case Square:
		if p < 0.5 {
			return 1
		}
		return -1
	default:
		return math.Sin(2 * math.Pi * p)
	}
}

const (
	// DefaultAttack is the linear attack used when a ToneSpec leaves it unset.
	DefaultAttack = 0.01
	// EnvelopeFloor is the level the exponential decay reaches at the end of
	// a tone. Exponential ramps cannot reach zero.
	EnvelopeFloor = 0.01
)

// ToneSpec describes one oscillator voice. Times are in seconds.
type ToneSpec struct {
	Frequency   float64
	Waveform    Waveform
	PeakGain    float64
	StartOffset float64
	Duration    float64
	// Attack is the linear ramp length; zero means DefaultAttack.
	Attack float64
}

// AttackWindow returns the effective attack length. An attack that would not
// fit inside the tone is shortened to half the duration.
func (s ToneSpec) AttackWindow() float64 {
	a := s.Attack
	if a <= 0 {
		a = DefaultAttack
	}
	if a >= s.Duration {
		a = s.Duration / 2
	}
	return a
}

// GainAt returns the envelope gain t seconds after the tone starts: zero
// before the start, a linear rise to PeakGain over the attack window, then
// an exponential decay that lands on EnvelopeFloor at Duration. The tone is
// stopped (gain zero) from Duration on.
func (s ToneSpec) GainAt(t float64) float64 {
	if t < 0 || t >= s.Duration || s.PeakGain <= 0 {
		return 0
	}
	a := s.AttackWindow()
	if t < a {
		return s.PeakGain * t / a
	}
	floor := math.Min(EnvelopeFloor, s.PeakGain)
	frac := (t - a) / (s.Duration - a)
	return s.PeakGain * math.Pow(floor/s.PeakGain, frac)
}

// toneVoice renders a ToneSpec from its start instant onwards.
type toneVoice struct {
	spec  ToneSpec
	sr    float64
	i, n  int
	phase float64
}

// NewToneVoice returns a voice for spec. StartOffset is not applied here; the
// caller positions the voice on the session clock.
func NewToneVoice(spec ToneSpec, sampleRate int) Voice {
	n := int(math.Ceil(spec.Duration * float64(sampleRate)))
	return &toneVoice{spec: spec, sr: float64(sampleRate), n: n}
}

func (v *toneVoice) Sample() (float64, bool) {
	if v.i >= v.n {
		return 0, true
	}
	t := float64(v.i) / v.sr
	out := oscillate(v.spec.Waveform, v.phase) * v.spec.GainAt(t)
	v.phase += v.spec.Frequency / v.sr
	v.phase -= math.Floor(v.phase)
	v.i++
	return out, false
}

// Scheduler places voices on a session clock.
type Scheduler interface {
	ScheduleBatch(cues []Cue)
	SampleRate() int
}

// ToneGenerator turns ToneSpecs into voices on a Scheduler.
type ToneGenerator struct {
	out Scheduler
}

func NewToneGenerator(out Scheduler) *ToneGenerator {
	return &ToneGenerator{out: out}
}

// Schedule queues spec to start at now+spec.StartOffset on the session clock.
// Specs without a positive duration or frequency are dropped.
func (g *ToneGenerator) Schedule(spec ToneSpec, now float64) {
	g.ScheduleAll([]ToneSpec{spec}, now)
}

// ScheduleAll queues every spec against the same clock reading in one batch.
func (g *ToneGenerator) ScheduleAll(specs []ToneSpec, now float64) {
	sr := g.out.SampleRate()
	cues := make([]Cue, 0, len(specs))
	for _, spec := range specs {
		if spec.Duration <= 0 || spec.Frequency <= 0 {
			continue
		}
		cues = append(cues, Cue{Voice: NewToneVoice(spec, sr), At: now + spec.StartOffset})
	}
	if len(cues) > 0 {
		g.out.ScheduleBatch(cues)
	}
}
