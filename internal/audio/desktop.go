//go:build !js

package audio

// openPlatformDevice opens the default output device. oto allows a single
// context per process, so the device is handed back even if it has not
// started yet; Session resumes it and retries the resume on later calls.
func openPlatformDevice(sampleRate int) (Device, error) {
	return newOtoContext(sampleRate)
}
