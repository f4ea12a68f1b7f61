package input

import (
	"context"
	"sync"
	"time"

	"github.com/ingyamilmolinar/answersound/core/feedback"
	game_log "github.com/ingyamilmolinar/answersound/internal/log"
)

// Button identifies one of the two answer buttons.
type Button int

const (
	ButtonCorrect Button = iota
	ButtonIncorrect
)

func (b Button) String() string {
	if b == ButtonCorrect {
		return "correct"
	}
	return "incorrect"
}

// Event returns the feedback sound the button plays.
func (b Button) Event() feedback.Event {
	if b == ButtonCorrect {
		return feedback.Correct
	}
	return feedback.Incorrect
}

// HapticDuration is the vibration length requested on release.
func (b Button) HapticDuration() time.Duration {
	if b == ButtonCorrect {
		return 30 * time.Millisecond
	}
	return 50 * time.Millisecond
}

// Player plays a feedback event.
type Player interface {
	Play(ctx context.Context, e feedback.Event)
}

// Controller turns button presses and releases into sounds and haptics.
type Controller struct {
	ctx     context.Context
	player  Player
	haptics Haptics
	logger  *game_log.Logger

	mu      sync.Mutex
	pressed map[Button]bool
	// peak touch count of the current gesture
	touches int

	inflight sync.WaitGroup
}

func NewController(ctx context.Context, player Player, haptics Haptics, logger *game_log.Logger) *Controller {
	if haptics == nil {
		haptics = NoHaptics{}
	}
	return &Controller{
		ctx:     ctx,
		player:  player,
		haptics: haptics,
		logger:  logger,
		pressed: map[Button]bool{},
	}
}

// Press marks b as held down.
func (c *Controller) Press(b Button) {
	c.mu.Lock()
	c.pressed[b] = true
	c.mu.Unlock()
}

// Cancel drops a press without playing anything, e.g. when the pointer
// slides off the button.
func (c *Controller) Cancel(b Button) {
	c.mu.Lock()
	delete(c.pressed, b)
	c.mu.Unlock()
}

// Release ends a press on b and fires its sound and haptic pulse. Releases
// without a prior press, or while several fingers are down, are ignored.
func (c *Controller) Release(b Button) {
	c.mu.Lock()
	wasPressed := c.pressed[b]
	delete(c.pressed, b)
	multi := c.touches > 1
	c.mu.Unlock()

	if !wasPressed {
		return
	}
	if multi {
		c.logger.Debugf("[INPUT] ignoring %v release during multi-touch", b)
		return
	}

	c.inflight.Add(1)
	go func() {
		defer c.inflight.Done()
		c.player.Play(c.ctx, b.Event())
	}()
	c.haptics.Vibrate(b.HapticDuration())
	c.logger.Debugf("[INPUT] %v released", b)
}

// Pressed reports whether b is held down.
func (c *Controller) Pressed(b Button) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pressed[b]
}

// SetTouchCount records how many touches are active. The highest count seen
// is kept until the count drops back to zero, so a two-finger gesture stays
// suppressed while its fingers lift one by one.
func (c *Controller) SetTouchCount(n int) {
	c.mu.Lock()
	if n == 0 || n > c.touches {
		c.touches = n
	}
	c.mu.Unlock()
}

// Wait blocks until every triggered sound has been scheduled.
func (c *Controller) Wait() { c.inflight.Wait() }
