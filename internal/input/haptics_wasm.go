//go:build js && wasm

package input

import (
	"syscall/js"
	"time"
)

type navigatorHaptics struct {
	navigator js.Value
}

// DeviceHaptics returns a vibrator backed by navigator.vibrate, or NoHaptics
// when the browser lacks it.
func DeviceHaptics() Haptics {
	nav := js.Global().Get("navigator")
	if nav.IsUndefined() || nav.Get("vibrate").IsUndefined() {
		return NoHaptics{}
	}
	return navigatorHaptics{navigator: nav}
}

func (h navigatorHaptics) Vibrate(d time.Duration) {
	h.navigator.Call("vibrate", d.Milliseconds())
}
