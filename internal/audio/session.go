package audio

import (
	"context"
	"errors"
	"io"
	"sync"
	"time"

	game_log "github.com/ingyamilmolinar/answersound/internal/log"
	"golang.org/x/sync/singleflight"
)

// ErrUnavailable reports that the platform has no usable audio output.
var ErrUnavailable = errors.New("audio output unavailable")

// resumeTimeout bounds how long a readiness attempt waits for a suspended
// device to start running.
const resumeTimeout = 2 * time.Second

// State is the lifecycle state of a Session.
type State int

const (
	StateUninitialized State = iota
	StateSuspended
	StateRunning
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateSuspended:
		return "suspended"
	case StateRunning:
		return "running"
	default:
		return "unknown"
	}
}

// Device is an open audio output.
type Device interface {
	// Start begins pulling 16-bit mono PCM from src.
	Start(src io.Reader)
	// Suspended reports whether output is currently halted.
	Suspended() bool
	// Resume restarts output and returns once it is running.
	Resume(ctx context.Context) error
	SetVolume(v float64)
}

// Opener opens the platform output device.
type Opener func(sampleRate int) (Device, error)

// Session owns the single audio output of the process. The device is opened
// lazily by EnsureReady and lives until the process exits.
type Session struct {
	open       Opener
	sampleRate int
	logger     *game_log.Logger

	group singleflight.Group

	mu     sync.Mutex
	dev    Device
	mix    *mixer
	ready  bool
	volume float64
}

// Option configures a Session.
type Option func(*Session)

// WithOpener replaces the platform device constructor.
func WithOpener(open Opener) Option {
	return func(s *Session) { s.open = open }
}

// WithVolume sets the initial master volume (0..1).
func WithVolume(v float64) Option {
	return func(s *Session) { s.volume = clampVolume(v) }
}

// NewSession returns an uninitialized session. No device is opened until the
// first EnsureReady.
func NewSession(sampleRate int, logger *game_log.Logger, opts ...Option) *Session {
	if sampleRate <= 0 {
		sampleRate = DefaultSampleRate
	}
	s := &Session{
		open:       openPlatformDevice,
		sampleRate: sampleRate,
		logger:     logger,
		volume:     1,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// EnsureReady opens and resumes the output device if needed and reports
// whether it is usable. Concurrent callers share one attempt. A successful
// result is remembered; a failed one is retried on the next call. If ctx
// ends first the caller gets false while the attempt carries on for others.
func (s *Session) EnsureReady(ctx context.Context) bool {
	s.mu.Lock()
	if s.ready && !s.dev.Suspended() {
		s.mu.Unlock()
		return true
	}
	s.ready = false
	s.mu.Unlock()

	ch := s.group.DoChan("ready", func() (interface{}, error) {
		return s.prepare(), nil
	})
	select {
	case res := <-ch:
		return res.Val.(bool)
	case <-ctx.Done():
		return false
	}
}

func (s *Session) prepare() bool {
	s.mu.Lock()
	dev := s.dev
	s.mu.Unlock()

	if dev == nil {
		d, err := s.open(s.sampleRate)
		if err != nil {
			s.logger.Warnf("[AUDIO] session unavailable: %v", err)
			return false
		}
		m := newMixer(s.sampleRate)
		s.mu.Lock()
		d.SetVolume(s.volume)
		s.dev, s.mix = d, m
		s.mu.Unlock()
		d.Start(m)
		dev = d
		s.logger.Infof("[AUDIO] session created at %d Hz", s.sampleRate)
	}

	if dev.Suspended() {
		ctx, cancel := context.WithTimeout(context.Background(), resumeTimeout)
		err := dev.Resume(ctx)
		cancel()
		if err != nil {
			s.logger.Warnf("[AUDIO] resume failed: %v", err)
			return false
		}
		if dev.Suspended() {
			s.logger.Warnf("[AUDIO] device still suspended after resume")
			return false
		}
		s.logger.Debugf("[AUDIO] session resumed")
	}

	s.mu.Lock()
	s.ready = true
	s.mu.Unlock()
	return true
}

// State reports the session lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch {
	case s.dev == nil:
		return StateUninitialized
	case s.dev.Suspended():
		return StateSuspended
	default:
		return StateRunning
	}
}

// Now returns the session clock in seconds. It is zero before the device
// exists and advances only as audio is rendered.
func (s *Session) Now() float64 {
	s.mu.Lock()
	m := s.mix
	s.mu.Unlock()
	if m == nil {
		return 0
	}
	return m.Now()
}

// SampleRate returns the output sample rate.
func (s *Session) SampleRate() int { return s.sampleRate }

// Schedule starts v at session time at. Voices scheduled before the device
// exists are dropped.
func (s *Session) Schedule(v Voice, at float64) {
	s.mu.Lock()
	m := s.mix
	s.mu.Unlock()
	if m == nil {
		s.logger.Debugf("[AUDIO] dropping voice: no session")
		return
	}
	m.ScheduleAt(v, at)
}

// ScheduleBatch places every cue on the mixer at once, keeping their relative
// timing even if the clock moves while the batch is being built.
func (s *Session) ScheduleBatch(cues []Cue) {
	s.mu.Lock()
	m := s.mix
	s.mu.Unlock()
	if m == nil {
		s.logger.Debugf("[AUDIO] dropping %d voices: no session", len(cues))
		return
	}
	m.ScheduleBatch(cues)
}

// ActiveVoices returns the number of voices queued or sounding.
func (s *Session) ActiveVoices() int {
	s.mu.Lock()
	m := s.mix
	s.mu.Unlock()
	if m == nil {
		return 0
	}
	return m.Active()
}

// SetVolume changes the master volume (clamped to 0..1).
func (s *Session) SetVolume(v float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.volume = clampVolume(v)
	if s.dev != nil {
		s.dev.SetVolume(s.volume)
	}
}

func clampVolume(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
