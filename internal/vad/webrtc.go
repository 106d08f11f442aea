package vad

import (
	"fmt"

	webrtcvad "github.com/maxhawkins/go-webrtcvad"
)

// WebRTC implements Detector using the WebRTC voice activity detector
type WebRTC struct {
	vad        *webrtcvad.VAD
	sampleRate int
	frameSize  int
}

// NewWebRTC creates a WebRTC VAD with the given configuration
func NewWebRTC(cfg Config) (*WebRTC, error) {
	switch cfg.SampleRate {
	case 8000, 16000, 32000, 48000:
	default:
		return nil, fmt.Errorf("invalid sample rate %d, must be 8000, 16000, 32000 or 48000", cfg.SampleRate)
	}

	v, err := webrtcvad.New()
	if err != nil {
		return nil, fmt.Errorf("failed to create WebRTC VAD: %w", err)
	}

	mode := cfg.Mode
	if mode < 0 {
		mode = 0
	}
	if mode > 3 {
		mode = 3
	}
	if err := v.SetMode(mode); err != nil {
		return nil, fmt.Errorf("failed to set VAD mode: %w", err)
	}

	return &WebRTC{
		vad:        v,
		sampleRate: cfg.SampleRate,
		frameSize:  cfg.FrameSize(),
	}, nil
}

// Process reports whether the frame contains speech. The frame must hold
// exactly Config.FrameSize samples, shorter frames are zero-padded.
func (w *WebRTC) Process(samples []float32) (bool, error) {
	pcm := make([]int16, w.frameSize)
	for i, s := range samples {
		if i >= w.frameSize {
			break
		}
		if s > 1.0 {
			s = 1.0
		}
		if s < -1.0 {
			s = -1.0
		}
		pcm[i] = int16(s * 32767)
	}

	frame := make([]byte, len(pcm)*2)
	for i, s := range pcm {
		frame[i*2] = byte(s)
		frame[i*2+1] = byte(s >> 8)
	}

	active, err := w.vad.Process(w.sampleRate, frame)
	if err != nil {
		return false, fmt.Errorf("VAD processing failed: %w", err)
	}
	return active, nil
}

// Close releases resources. The WebRTC VAD needs no explicit cleanup.
func (w *WebRTC) Close() error {
	return nil
}
