package audio

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func genToneSpec(t *rapid.T) ToneSpec {
	return ToneSpec{
		Frequency:   rapid.Float64Range(20, 5000).Draw(t, "freq"),
		Waveform:    Waveform(rapid.IntRange(0, 3).Draw(t, "wave")),
		PeakGain:    rapid.Float64Range(0.001, 1).Draw(t, "peak"),
		StartOffset: rapid.Float64Range(0, 1).Draw(t, "offset"),
		Duration:    rapid.Float64Range(0.001, 2).Draw(t, "dur"),
		Attack:      rapid.Float64Range(0, 0.05).Draw(t, "attack"),
	}
}

func TestEnvelopeNonNegative(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		spec := genToneSpec(t)
		at := rapid.Float64Range(-1, 3).Draw(t, "t")
		if g := spec.GainAt(at); g < 0 {
			t.Fatalf("negative gain %v at %v for %+v", g, at, spec)
		}
	})
}

func TestEnvelopeReachesPeakAfterAttack(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		spec := genToneSpec(t)
		got := spec.GainAt(spec.AttackWindow())
		if math.Abs(got-spec.PeakGain) > 1e-9 {
			t.Fatalf("gain at end of attack = %v, want %v", got, spec.PeakGain)
		}
	})
}

func TestEnvelopeNeverExceedsPeak(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		spec := genToneSpec(t)
		at := rapid.Float64Range(0, spec.Duration).Draw(t, "t")
		if g := spec.GainAt(at); g > spec.PeakGain+1e-12 {
			t.Fatalf("gain %v above peak %v", g, spec.PeakGain)
		}
	})
}

func TestEnvelopeShape(t *testing.T) {
	spec := ToneSpec{Frequency: 440, PeakGain: 0.3, Duration: 0.4}

	assert.Equal(t, 0.0, spec.GainAt(-0.1), "silent before start")
	assert.Equal(t, 0.0, spec.GainAt(0), "attack starts from zero")
	assert.InDelta(t, 0.15, spec.GainAt(0.005), 1e-9, "linear attack midpoint")
	assert.InDelta(t, 0.3, spec.GainAt(0.01), 1e-9)
	assert.InDelta(t, EnvelopeFloor, spec.GainAt(0.4-1e-9), 1e-6, "decays to floor")
	assert.Equal(t, 0.0, spec.GainAt(0.4), "stopped at duration")

	// exponential decay: halfway through the decay is the geometric mean
	mid := 0.01 + (0.4-0.01)/2
	assert.InDelta(t, math.Sqrt(0.3*EnvelopeFloor), spec.GainAt(mid), 1e-9)
}

func TestAttackWindow(t *testing.T) {
	assert.Equal(t, DefaultAttack, ToneSpec{Duration: 1}.AttackWindow())
	assert.Equal(t, 0.02, ToneSpec{Duration: 1, Attack: 0.02}.AttackWindow())
	assert.Equal(t, 0.0025, ToneSpec{Duration: 0.005}.AttackWindow(), "attack compressed into short tone")
}

func TestOscillatorsStayInRange(t *testing.T) {
	for _, w := range []Waveform{Sine, Sawtooth, Triangle, Square} {
		for i := 0; i < 100; i++ {
			v := oscillate(w, float64(i)/100)
			require.GreaterOrEqual(t, v, -1.0, w.String())
			require.LessOrEqual(t, v, 1.0, w.String())
		}
	}
	assert.InDelta(t, 0, oscillate(Triangle, 0), 1e-12, "triangle starts at zero")
	assert.InDelta(t, 1, oscillate(Triangle, 0.25), 1e-12)
}

func TestToneVoiceLength(t *testing.T) {
	v := NewToneVoice(ToneSpec{Frequency: 440, PeakGain: 0.5, Duration: 0.01}, testRate)
	n := 0
	for {
		s, done := v.Sample()
		if done {
			break
		}
		require.LessOrEqual(t, math.Abs(s), 0.5)
		n++
	}
	assert.InDelta(t, 441, n, 1)
}

type recordingScheduler struct {
	at      []float64
	batches int
}

func (r *recordingScheduler) ScheduleBatch(cues []Cue) {
	r.batches++
	for _, c := range cues {
		r.at = append(r.at, c.At)
	}
}

func (r *recordingScheduler) SampleRate() int { return testRate }

func TestToneGeneratorAppliesOffset(t *testing.T) {
	rec := &recordingScheduler{}
	g := NewToneGenerator(rec)
	g.Schedule(ToneSpec{Frequency: 440, PeakGain: 0.3, Duration: 0.4, StartOffset: 0.15}, 2.0)
	g.Schedule(ToneSpec{Frequency: 440, PeakGain: 0.3, Duration: 0.4}, 2.0)
	g.Schedule(ToneSpec{Frequency: 440, PeakGain: 0.3}, 2.0)
	require.Len(t, rec.at, 2, "zero-duration spec is dropped")
	assert.InDelta(t, 2.15, rec.at[0], 1e-12)
	assert.InDelta(t, 2.0, rec.at[1], 1e-12)
}

func TestToneGeneratorBatchesBurst(t *testing.T) {
	rec := &recordingScheduler{}
	g := NewToneGenerator(rec)
	g.ScheduleAll([]ToneSpec{
		{Frequency: 523.25, PeakGain: 0.3, Duration: 0.4},
		{Frequency: 659.25, PeakGain: 0.1, Duration: 0.4},
		{Frequency: 523.25, PeakGain: 0.3, Duration: 0.4, StartOffset: 0.15},
		{Frequency: 0, PeakGain: 0.3, Duration: 0.4},
	}, 1.0)
	assert.Equal(t, 1, rec.batches)
	require.Len(t, rec.at, 3, "zero-frequency spec is dropped")
	assert.InDelta(t, 1.0, rec.at[1], 1e-12)
	assert.InDelta(t, 1.15, rec.at[2], 1e-12)

	g.ScheduleAll(nil, 1.0)
	assert.Equal(t, 1, rec.batches, "empty burst schedules nothing")
}
