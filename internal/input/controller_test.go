package input

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/ingyamilmolinar/answersound/core/feedback"
	"github.com/ingyamilmolinar/answersound/internal/audio"
	game_log "github.com/ingyamilmolinar/answersound/internal/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type readySession struct{ ready bool }

func (s readySession) EnsureReady(context.Context) bool { return s.ready }
func (s readySession) Now() float64                     { return 0 }

type toneCounter struct {
	mu    sync.Mutex
	specs []audio.ToneSpec
}

func (c *toneCounter) ScheduleAll(specs []audio.ToneSpec, _ float64) {
	c.mu.Lock()
	c.specs = append(c.specs, specs...)
	c.mu.Unlock()
}

func (c *toneCounter) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.specs)
}

type hapticLog struct {
	mu     sync.Mutex
	pulses []time.Duration
}

func (h *hapticLog) Vibrate(d time.Duration) {
	h.mu.Lock()
	h.pulses = append(h.pulses, d)
	h.mu.Unlock()
}

func newTestController(ready bool) (*Controller, *toneCounter, *hapticLog) {
	tones := &toneCounter{}
	haptics := &hapticLog{}
	synth := feedback.NewSynthesizer(readySession{ready: ready}, tones, game_log.Discard())
	return NewController(context.Background(), synth, haptics, game_log.Discard()), tones, haptics
}

func TestRapidDoubleCorrect(t *testing.T) {
	c, tones, haptics := newTestController(true)

	c.Press(ButtonCorrect)
	c.Release(ButtonCorrect)
	time.Sleep(50 * time.Millisecond)
	c.Press(ButtonCorrect)
	c.Release(ButtonCorrect)
	c.Wait()

	assert.Equal(t, 8, tones.count())
	assert.Equal(t, []time.Duration{30 * time.Millisecond, 30 * time.Millisecond}, haptics.pulses)
}

func TestIncorrectHapticPulse(t *testing.T) {
	c, tones, haptics := newTestController(true)
	c.Press(ButtonIncorrect)
	assert.True(t, c.Pressed(ButtonIncorrect))
	c.Release(ButtonIncorrect)
	c.Wait()
	assert.False(t, c.Pressed(ButtonIncorrect))
	assert.Equal(t, 4, tones.count())
	assert.Equal(t, []time.Duration{50 * time.Millisecond}, haptics.pulses)
}

func TestReleaseWithoutPressIgnored(t *testing.T) {
	c, tones, haptics := newTestController(true)
	c.Release(ButtonCorrect)
	c.Wait()
	assert.Zero(t, tones.count())
	assert.Empty(t, haptics.pulses)
}

func TestCancelledPressIsSilent(t *testing.T) {
	c, tones, _ := newTestController(true)
	c.Press(ButtonCorrect)
	c.Cancel(ButtonCorrect)
	c.Release(ButtonCorrect)
	c.Wait()
	assert.Zero(t, tones.count())
}

func TestMultiTouchSuppressed(t *testing.T) {
	c, tones, haptics := newTestController(true)
	c.SetTouchCount(2)
	c.Press(ButtonCorrect)
	c.Release(ButtonCorrect)
	c.Wait()
	assert.Zero(t, tones.count())
	assert.Empty(t, haptics.pulses)
	assert.False(t, c.Pressed(ButtonCorrect))
}

func TestUnavailableAudioStillVibrates(t *testing.T) {
	c, tones, haptics := newTestController(false)
	c.Press(ButtonCorrect)
	c.Release(ButtonCorrect)
	c.Wait()
	assert.Zero(t, tones.count())
	require.Len(t, haptics.pulses, 1)
}

func TestButtonMapping(t *testing.T) {
	assert.Equal(t, feedback.Correct, ButtonCorrect.Event())
	assert.Equal(t, feedback.Incorrect, ButtonIncorrect.Event())
	assert.Equal(t, "correct", ButtonCorrect.String())
	assert.Equal(t, "incorrect", ButtonIncorrect.String())
}

func TestNilHapticsDefaultsToNoop(t *testing.T) {
	synth := feedback.NewSynthesizer(readySession{ready: true}, &toneCounter{}, game_log.Discard())
	c := NewController(context.Background(), synth, nil, game_log.Discard())
	c.Press(ButtonCorrect)
	c.Release(ButtonCorrect)
	c.Wait()
}

func TestMultiTouchPeakHeldUntilAllLifted(t *testing.T) {
	c, tones, _ := newTestController(true)
	c.SetTouchCount(2)
	c.SetTouchCount(1)
	c.Press(ButtonIncorrect)
	c.Release(ButtonIncorrect)
	c.SetTouchCount(0)
	c.Press(ButtonIncorrect)
	c.Release(ButtonIncorrect)
	c.Wait()
	assert.Equal(t, 4, tones.count(), "only the single-touch release plays")
}
