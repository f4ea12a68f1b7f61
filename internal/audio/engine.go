package audio

import (
	"math"
	"sync"
)

// DefaultSampleRate is used when no rate is configured.
const DefaultSampleRate = 44100

// Voice generates PCM samples in the range [-1,1].
type Voice interface {
	// Sample returns the next sample and whether the voice has finished.
	Sample() (float64, bool)
}

// mixer mixes multiple voices into a single 16-bit mono PCM stream. Its
// sample counter is the session clock.
type mixer struct {
	mu         sync.Mutex
	voices     []*voiceState
	pos        int64
	sampleRate int
}

type voiceState struct {
	start int64
	v     Voice
}

func newMixer(sampleRate int) *mixer {
	return &mixer{sampleRate: sampleRate}
}

// Now returns the number of seconds rendered so far.
func (m *mixer) Now() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return float64(m.pos) / float64(m.sampleRate)
}

// Cue is a voice placed at an absolute clock time (seconds).
type Cue struct {
	Voice Voice
	At    float64
}

// ScheduleAt adds a voice that starts at the absolute clock time at (seconds).
// Times in the past start on the next rendered sample.
func (m *mixer) ScheduleAt(v Voice, at float64) {
	m.ScheduleBatch([]Cue{{Voice: v, At: at}})
}

// ScheduleBatch adds all cues under one lock. If the earliest cue is already
// in the past the whole batch is shifted forward by the same amount, so the
// spacing between cues is kept.
func (m *mixer) ScheduleBatch(cues []Cue) {
	if len(cues) == 0 {
		return
	}
	starts := make([]int64, len(cues))
	earliest := int64(math.MaxInt64)
	for i, c := range cues {
		starts[i] = int64(math.Round(c.At * float64(m.sampleRate)))
		if starts[i] < earliest {
			earliest = starts[i]
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var shift int64
	if earliest < m.pos {
		shift = m.pos - earliest
	}
	for i, c := range cues {
		m.voices = append(m.voices, &voiceState{start: starts[i] + shift, v: c.Voice})
	}
}

// Active returns the number of voices that are scheduled or still sounding.
func (m *mixer) Active() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.voices)
}

// Read implements io.Reader for oto.Player.
func (m *mixer) Read(p []byte) (int, error) {
	samples := len(p) / 2
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := 0; i < samples; i++ {
		var sum float64
		for idx := 0; idx < len(m.voices); idx++ {
			vs := m.voices[idx]
			if m.pos < vs.start {
				continue
			}
			val, done := vs.v.Sample()
			sum += val
			if done {
				m.voices = append(m.voices[:idx], m.voices[idx+1:]...)
				idx--
			}
		}
		if sum > 1 {
			sum = 1
		} else if sum < -1 {
			sum = -1
		}
		v := int16(sum * 32767)
		p[2*i] = byte(v)
		p[2*i+1] = byte(v >> 8)
		m.pos++
	}
	return samples * 2, nil
}
