// Package audio provides microphone capture via PortAudio, sample buffers
// and WAV encoding for the recordings the assistant transcribes.
package audio

import (
	"context"
	"fmt"
	"sync"

	"github.com/gordonklaus/portaudio"
)

const (
	// DefaultSampleRate is 16kHz, what Whisper expects
	DefaultSampleRate = 16000

	// DefaultFramesPerBuffer is the capture buffer size in samples
	DefaultFramesPerBuffer = 512
)

// Config holds capture configuration
type Config struct {
	SampleRate      float64
	FramesPerBuffer int
	Device          string // input device name, "" or "default" for the default
}

// DefaultConfig returns the default capture configuration
func DefaultConfig() Config {
	return Config{
		SampleRate:      DefaultSampleRate,
		FramesPerBuffer: DefaultFramesPerBuffer,
	}
}

// Capture reads mono audio from the microphone and delivers fixed-size
// sample slices on Output until stopped.
type Capture struct {
	mu      sync.Mutex
	cfg     Config
	stream  *portaudio.Stream
	running bool
	out     chan []float32
}

// NewCapture initializes PortAudio and prepares a capture with the given
// configuration. Call Close to release PortAudio again.
func NewCapture(cfg Config) (*Capture, error) {
	if cfg.SampleRate == 0 {
		cfg.SampleRate = DefaultSampleRate
	}
	if cfg.FramesPerBuffer == 0 {
		cfg.FramesPerBuffer = DefaultFramesPerBuffer
	}
	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("failed to initialize PortAudio: %w", err)
	}
	return &Capture{
		cfg: cfg,
		out: make(chan []float32, 64),
	}, nil
}

// Start opens the input stream and begins delivering samples on Output.
// Capture stops when ctx is cancelled or Stop is called.
func (c *Capture) Start(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.running {
		return fmt.Errorf("capture already running")
	}

	buffer := make([]float32, c.cfg.FramesPerBuffer)
	stream, err := c.openStream(buffer)
	if err != nil {
		return fmt.Errorf("failed to open audio stream: %w", err)
	}
	if err := stream.Start(); err != nil {
		stream.Close()
		return fmt.Errorf("failed to start audio stream: %w", err)
	}

	c.stream = stream
	c.running = true
	go c.loop(ctx, stream, buffer)
	return nil
}

func (c *Capture) openStream(buffer []float32) (*portaudio.Stream, error) {
	if c.cfg.Device != "" && c.cfg.Device != "default" {
		dev, err := findInputDevice(c.cfg.Device)
		if err == nil {
			params := portaudio.StreamParameters{
				Input: portaudio.StreamDeviceParameters{
					Device:   dev,
					Channels: 1,
					Latency:  dev.DefaultLowInputLatency,
				},
				SampleRate:      c.cfg.SampleRate,
				FramesPerBuffer: c.cfg.FramesPerBuffer,
			}
			return portaudio.OpenStream(params, buffer)
		}
		// Named device missing, fall back to the default input.
	}
	return portaudio.OpenDefaultStream(1, 0, c.cfg.SampleRate, c.cfg.FramesPerBuffer, buffer)
}

func (c *Capture) loop(ctx context.Context, stream *portaudio.Stream, buffer []float32) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		c.mu.Lock()
		running := c.running
		c.mu.Unlock()
		if !running {
			return
		}

		if err := stream.Read(); err != nil {
			// Overflows are expected when the consumer lags, keep reading.
			continue
		}

		samples := make([]float32, len(buffer))
		copy(samples, buffer)
		select {
		case c.out <- samples:
		default:
			// Consumer is not keeping up, drop the buffer.
		}
	}
}

// Stop ends the capture and closes the stream. Safe to call when stopped.
func (c *Capture) Stop() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.running {
		return nil
	}
	c.running = false

	stream := c.stream
	c.stream = nil
	if stream == nil {
		return nil
	}
	stream.Stop()
	if err := stream.Close(); err != nil {
		return fmt.Errorf("failed to close audio stream: %w", err)
	}
	return nil
}

// Close stops the capture and terminates PortAudio
func (c *Capture) Close() error {
	if err := c.Stop(); err != nil {
		return err
	}
	if err := portaudio.Terminate(); err != nil {
		return fmt.Errorf("failed to terminate PortAudio: %w", err)
	}
	return nil
}

// Output is the channel that receives captured sample buffers
func (c *Capture) Output() <-chan []float32 {
	return c.out
}

// Running reports whether the capture is active
func (c *Capture) Running() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.running
}

// SampleRate returns the configured sample rate
func (c *Capture) SampleRate() float64 {
	return c.cfg.SampleRate
}

func findInputDevice(name string) (*portaudio.DeviceInfo, error) {
	devices, err := portaudio.Devices()
	if err != nil {
		return nil, err
	}
	for _, dev := range devices {
		if dev.Name == name && dev.MaxInputChannels > 0 {
			return dev, nil
		}
	}
	return nil, fmt.Errorf("input device not found: %s", name)
}

// DeviceInfo describes an available input device
type DeviceInfo struct {
	Name              string
	MaxInputChannels  int
	DefaultSampleRate float64
	IsDefault         bool
}

// ListInputDevices returns the available input devices. It initializes and
// terminates PortAudio itself, so it must not run while a capture is open.
func ListInputDevices() ([]DeviceInfo, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("failed to initialize PortAudio: %w", err)
	}
	defer portaudio.Terminate()

	devices, err := portaudio.Devices()
	if err != nil {
		return nil, fmt.Errorf("failed to list devices: %w", err)
	}

	var defaultName string
	if dev, err := portaudio.DefaultInputDevice(); err == nil && dev != nil {
		defaultName = dev.Name
	}

	var out []DeviceInfo
	for _, dev := range devices {
		if dev.MaxInputChannels == 0 {
			continue
		}
		out = append(out, DeviceInfo{
			Name:              dev.Name,
			MaxInputChannels:  dev.MaxInputChannels,
			DefaultSampleRate: dev.DefaultSampleRate,
			IsDefault:         dev.Name == defaultName,
		})
	}
	return out, nil
}
