package input

import "time"

// Haptics requests a vibration pulse. Implementations without vibration
// support do nothing.
type Haptics interface {
	Vibrate(d time.Duration)
}

// NoHaptics ignores every request.
type NoHaptics struct{}

func (NoHaptics) Vibrate(time.Duration) {}
