// Package stt converts recorded audio to text. The assistant only needs
// the contract "UTF-8 text or a failure reason", everything behind it is an
// exchangeable engine (whisper.cpp CLI or an HTTP server).
package stt

import "context"

// Transcriber is the interface for speech-to-text engines
type Transcriber interface {
	// Transcribe converts audio samples to text
	Transcribe(ctx context.Context, samples []float32) (Result, error)

	// TranscribeFile transcribes a WAV file
	TranscribeFile(ctx context.Context, path string) (Result, error)

	// Close releases resources
	Close() error
}

// Result holds the transcription outcome
type Result struct {
	// Text is the transcribed text
	Text string

	// Language is the language that was requested or detected
	Language string
}

// Config holds transcription configuration
type Config struct {
	// Engine selects the backend: "whisper-cli" or "whisper-http"
	Engine string

	// Binary is the whisper.cpp binary, found on PATH when empty
	Binary string

	// ModelPath is the whisper model file (required for the CLI engine)
	ModelPath string

	// ServerURL is the transcription server (required for the HTTP engine)
	ServerURL string

	// Language is the expected language of the commands
	Language string

	// SampleRate is the audio sample rate
	SampleRate int
}

// DefaultConfig returns the default configuration, tuned for the Spanish
// command grammar.
func DefaultConfig() Config {
	return Config{
		Engine:     "whisper-cli",
		Language:   "es",
		SampleRate: 16000,
	}
}
