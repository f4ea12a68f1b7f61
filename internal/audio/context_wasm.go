//go:build js && wasm

package audio

import (
	"fmt"
	"syscall/js"
)

// openPlatformDevice creates a Web Audio backed context. Browsers keep it
// suspended until a user gesture, so readiness is left to Session.
func openPlatformDevice(sampleRate int) (Device, error) {
	global := js.Global()
	if global.Get("AudioContext").IsUndefined() && global.Get("webkitAudioContext").IsUndefined() {
		return nil, fmt.Errorf("%w: no AudioContext in this browser", ErrUnavailable)
	}
	return newOtoContext(sampleRate)
}
