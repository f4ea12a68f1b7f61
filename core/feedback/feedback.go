// Package feedback synthesizes the "correct" and "incorrect" answer sounds.
package feedback

import (
	"context"
	"fmt"
	"strings"

	"github.com/ingyamilmolinar/answersound/internal/audio"
	game_log "github.com/ingyamilmolinar/answersound/internal/log"
)

// Event is an answer outcome that has a sound.
type Event int

const (
	Correct Event = iota
	Incorrect
)

func (e Event) String() string {
	switch e {
	case Correct:
		return "correct"
	case Incorrect:
		return "incorrect"
	default:
		return fmt.Sprintf("Event(%d)", int(e))
	}
}

// ParseEvent maps "correct"/"incorrect" to an Event.
func ParseEvent(s string) (Event, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "correct", "right", "yes":
		return Correct, nil
	case "incorrect", "wrong", "no":
		return Incorrect, nil
	}
	return 0, fmt.Errorf("unknown feedback event %q", s)
}

// Chord is one fundamental+harmonic pair fired Delay seconds after Play.
type Chord struct {
	Fundamental float64
	Harmonic    float64
	Delay       float64
	Duration    float64
}

// Timbre holds the voice settings shared by every chord of a pattern.
type Timbre struct {
	FundamentalWave audio.Waveform
	HarmonicWave    audio.Waveform
	PeakGain        float64
	Attack          float64
}

// HarmonicRatio is the harmonic voice's peak gain relative to the fundamental.
const HarmonicRatio = 0.45

// Pattern is the full description of one feedback sound.
type Pattern struct {
	Timbre Timbre
	Chords []Chord
}

var patterns = map[Event]Pattern{
	// C5 + E5, a bright major third, twice.
	Correct: {
		Timbre: Timbre{FundamentalWave: audio.Sine, HarmonicWave: audio.Sine, PeakGain: 0.3, Attack: 0.01},
		Chords: []Chord{
			{Fundamental: 523.25, Harmonic: 659.25, Delay: 0, Duration: 0.4},
			{Fundamental: 523.25, Harmonic: 659.25, Delay: 0.15, Duration: 0.4},
		},
	},
	// G3 + Bb3, a low minor third on a triangle, twice.
	Incorrect: {
		Timbre: Timbre{FundamentalWave: audio.Triangle, HarmonicWave: audio.Sine, PeakGain: 0.25, Attack: 0.02},
		Chords: []Chord{
			{Fundamental: 196.00, Harmonic: 233.08, Delay: 0, Duration: 0.3},
			{Fundamental: 196.00, Harmonic: 233.08, Delay: 0.15, Duration: 0.3},
		},
	},
}

// PatternFor returns the pattern for e and whether one exists.
func PatternFor(e Event) (Pattern, bool) {
	p, ok := patterns[e]
	return p, ok
}

// Tones expands the pattern into the voices it schedules, in order.
func (p Pattern) Tones() []audio.ToneSpec {
	specs := make([]audio.ToneSpec, 0, 2*len(p.Chords))
	for _, c := range p.Chords {
		specs = append(specs,
			audio.ToneSpec{
				Frequency:   c.Fundamental,
				Waveform:    p.Timbre.FundamentalWave,
				PeakGain:    p.Timbre.PeakGain,
				StartOffset: c.Delay,
				Duration:    c.Duration,
				Attack:      p.Timbre.Attack,
			},
			audio.ToneSpec{
				Frequency:   c.Harmonic,
				Waveform:    p.Timbre.HarmonicWave,
				PeakGain:    p.Timbre.PeakGain * HarmonicRatio,
				StartOffset: c.Delay,
				Duration:    c.Duration,
				Attack:      p.Timbre.Attack,
			})
	}
	return specs
}

// Length returns the time from Play until the last voice stops.
func (p Pattern) Length() float64 {
	var end float64
	for _, c := range p.Chords {
		if e := c.Delay + c.Duration; e > end {
			end = e
		}
	}
	return end
}

// Session is the readiness gate and clock the synthesizer plays against.
type Session interface {
	EnsureReady(ctx context.Context) bool
	Now() float64
}

// ToneScheduler schedules a burst of voices relative to one session time.
type ToneScheduler interface {
	ScheduleAll(specs []audio.ToneSpec, now float64)
}

// Synthesizer turns events into scheduled voices.
type Synthesizer struct {
	session Session
	tones   ToneScheduler
	logger  *game_log.Logger
}

func NewSynthesizer(session Session, tones ToneScheduler, logger *game_log.Logger) *Synthesizer {
	return &Synthesizer{session: session, tones: tones, logger: logger}
}

// Play schedules the sound for e and returns as soon as every voice has been
// handed to the audio engine; it does not wait for the sound to finish. If
// the session cannot be made ready nothing is scheduled.
func (s *Synthesizer) Play(ctx context.Context, e Event) {
	p, ok := PatternFor(e)
	if !ok {
		s.logger.Warnf("[FEEDBACK] no pattern for %v", e)
		return
	}
	if !s.session.EnsureReady(ctx) {
		s.logger.Debugf("[FEEDBACK] audio not ready, skipping %v", e)
		return
	}
	// one clock reading for the whole burst keeps chord timing exact
	now := s.session.Now()
	tones := p.Tones()
	s.tones.ScheduleAll(tones, now)
	s.logger.Debugf("[FEEDBACK] %v: %d voices at t=%.3f", e, len(tones), now)
}
