// Package vad detects voice activity in captured audio so a recording can
// end automatically once the speaker falls silent.
package vad

import "time"

// Detector reports whether a frame of audio contains speech
type Detector interface {
	// Process processes one frame of float32 samples
	Process(samples []float32) (bool, error)

	// Close releases resources
	Close() error
}

// Config holds VAD configuration
type Config struct {
	// SampleRate must be 8000, 16000, 32000 or 48000
	SampleRate int

	// Mode is the WebRTC aggressiveness (0-3, higher filters more)
	Mode int

	// SilenceDuration is how long silence must last to end a recording
	SilenceDuration time.Duration

	// MinSpeechDuration is the minimum speech needed for a valid recording
	MinSpeechDuration time.Duration
}

// DefaultConfig returns the default VAD configuration
func DefaultConfig() Config {
	return Config{
		SampleRate:        16000,
		Mode:              2,
		SilenceDuration:   2 * time.Second,
		MinSpeechDuration: 300 * time.Millisecond,
	}
}

// FrameSize returns the samples per 20ms frame at the configured rate,
// one of the frame lengths the WebRTC VAD accepts.
func (c Config) FrameSize() int {
	return c.SampleRate / 50
}

// Tracker folds per-frame VAD results into a recording-level decision:
// speech started, speech is ongoing, silence long enough to stop.
type Tracker struct {
	cfg          Config
	started      bool
	speechStart  time.Time
	lastSpeech   time.Time
	silenceStart time.Time
}

// NewTracker creates a tracker with the given thresholds
func NewTracker(cfg Config) *Tracker {
	return &Tracker{cfg: cfg}
}

// Update records one frame result
func (t *Tracker) Update(isSpeech bool) {
	now := time.Now()
	if isSpeech {
		if !t.started {
			t.started = true
			t.speechStart = now
		}
		t.lastSpeech = now
		t.silenceStart = time.Time{}
		return
	}
	if t.started && t.silenceStart.IsZero() {
		t.silenceStart = now
	}
}

// ShouldStop reports whether enough speech was followed by enough silence
// to end the recording
func (t *Tracker) ShouldStop() bool {
	if !t.started || t.silenceStart.IsZero() {
		return false
	}
	return time.Since(t.silenceStart) >= t.cfg.SilenceDuration &&
		t.SpeechDuration() >= t.cfg.MinSpeechDuration
}

// SpeechDuration returns how long speech lasted so far
func (t *Tracker) SpeechDuration() time.Duration {
	if !t.started {
		return 0
	}
	return t.lastSpeech.Sub(t.speechStart)
}

// HeardSpeech reports whether any speech was detected at all
func (t *Tracker) HeardSpeech() bool {
	return t.started
}

// Reset clears the tracker for the next recording
func (t *Tracker) Reset() {
	*t = Tracker{cfg: t.cfg}
}
