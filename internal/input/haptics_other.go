//go:build !js

package input

// DeviceHaptics returns the platform vibrator. Desktops have none.
func DeviceHaptics() Haptics { return NoHaptics{} }
