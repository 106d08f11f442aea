package audio

import "sync"

// Buffer is a thread-safe growing buffer that collects the samples of one
// recording.
type Buffer struct {
	mu      sync.RWMutex
	samples []float32
}

// NewBuffer creates a buffer pre-sized for about ten seconds at 16kHz
func NewBuffer() *Buffer {
	return &Buffer{samples: make([]float32, 0, DefaultSampleRate*10)}
}

// Append adds samples to the buffer
func (b *Buffer) Append(samples []float32) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.samples = append(b.samples, samples...)
}

// Samples returns a copy of the collected samples
func (b *Buffer) Samples() []float32 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]float32, len(b.samples))
	copy(out, b.samples)
	return out
}

// Len returns the number of collected samples
func (b *Buffer) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.samples)
}

// DurationSeconds returns the buffered duration at the given sample rate
func (b *Buffer) DurationSeconds(sampleRate float64) float64 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return float64(len(b.samples)) / sampleRate
}

// Reset empties the buffer keeping its capacity
func (b *Buffer) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.samples = b.samples[:0]
}

// FrameChunker regroups arbitrarily sized capture buffers into the fixed
// frame length a VAD expects (10/20/30ms worth of samples). Not safe for
// concurrent use, it lives on the recorder goroutine.
type FrameChunker struct {
	frameSize int
	pending   []float32
}

// NewFrameChunker creates a chunker emitting frames of frameSize samples
func NewFrameChunker(frameSize int) *FrameChunker {
	return &FrameChunker{
		frameSize: frameSize,
		pending:   make([]float32, 0, frameSize*4),
	}
}

// Push appends samples and returns every complete frame now available
func (fc *FrameChunker) Push(samples []float32) [][]float32 {
	fc.pending = append(fc.pending, samples...)

	var frames [][]float32
	for len(fc.pending) >= fc.frameSize {
		frame := make([]float32, fc.frameSize)
		copy(frame, fc.pending[:fc.frameSize])
		frames = append(frames, frame)
		fc.pending = fc.pending[fc.frameSize:]
	}
	return frames
}

// Reset drops any pending partial frame
func (fc *FrameChunker) Reset() {
	fc.pending = fc.pending[:0]
}
