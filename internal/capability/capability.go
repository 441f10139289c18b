// Package capability holds the optional-backend availability flags probed
// once at startup and passed into the components that branch on them.
package capability

// Flags records which optional backends came up at boot. All fields are
// best-effort probe results; a false flag is a degraded mode, never a fault.
type Flags struct {
	AdvancedTranscription bool // whisper model loaded
	AudioCapture          bool // portaudio input device initialized
	AudioEncoding         bool // scratch WAV codec verified
	RemoteService         bool // chat completion credential accepted
}

// AdvancedReady reports whether the advanced listening path has everything
// it needs: local transcription, a capture device and the scratch codec.
func (f Flags) AdvancedReady() bool {
	return f.AdvancedTranscription && f.AudioCapture && f.AudioEncoding
}
