// Package recorder implements the voice input contract of the assistant:
// start recording, stop, persist the take as a WAV file and hand back the
// transcribed text or a failure reason. Capture, voice activity detection
// and transcription are collaborators behind small interfaces.
package recorder

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"

	"asisto/internal/audio"
	"asisto/internal/stt"
	"asisto/internal/vad"
)

// Source produces audio sample buffers between Start and Stop
type Source interface {
	Start(ctx context.Context) error
	Stop() error
	Output() <-chan []float32
	SampleRate() float64
}

// Config holds recorder configuration
type Config struct {
	// Dir is where recordings are saved, "" disables persistence
	Dir string

	// AutoStop ends the recording after sustained silence (needs a detector)
	AutoStop bool
}

// Recorder records one take at a time
type Recorder struct {
	cfg      Config
	source   Source
	engine   stt.Transcriber
	detector vad.Detector
	tracker  *vad.Tracker
	chunker  *audio.FrameChunker
	log      *zap.SugaredLogger

	mu           sync.Mutex
	recording    bool
	cancel       context.CancelFunc
	wg           sync.WaitGroup
	buf          *audio.Buffer
	autoStop     chan struct{}
	autoStopOnce *sync.Once
}

// New creates a recorder. detector may be nil, in which case every take is
// transcribed and AutoStop is ignored.
func New(source Source, engine stt.Transcriber, detector vad.Detector, vadCfg vad.Config, cfg Config, log *zap.SugaredLogger) *Recorder {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	r := &Recorder{
		cfg:      cfg,
		source:   source,
		engine:   engine,
		detector: detector,
		log:      log,
		buf:      audio.NewBuffer(),
	}
	if detector != nil {
		r.tracker = vad.NewTracker(vadCfg)
		r.chunker = audio.NewFrameChunker(vadCfg.FrameSize())
	}
	return r
}

// Start begins a new recording. It fails when one is already running.
func (r *Recorder) Start(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.recording {
		return fmt.Errorf("ya hay una grabación en curso")
	}

	r.buf.Reset()
	if r.tracker != nil {
		r.tracker.Reset()
		r.chunker.Reset()
	}
	r.autoStop = make(chan struct{})
	r.autoStopOnce = new(sync.Once)

	runCtx, cancel := context.WithCancel(ctx)
	if err := r.source.Start(runCtx); err != nil {
		cancel()
		return fmt.Errorf("no se pudo iniciar la grabación: %w", err)
	}

	r.cancel = cancel
	r.recording = true
	r.wg.Add(1)
	go r.consume(runCtx)

	r.log.Infow("recording started", "auto_stop", r.cfg.AutoStop && r.detector != nil)
	return nil
}

// consume drains the capture channel into the take buffer and feeds the VAD
func (r *Recorder) consume(ctx context.Context) {
	defer r.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case samples, ok := <-r.source.Output():
			if !ok {
				return
			}
			r.buf.Append(samples)

			if r.tracker == nil {
				continue
			}
			for _, frame := range r.chunker.Push(samples) {
				active, err := r.detector.Process(frame)
				if err != nil {
					r.log.Warnw("vad frame failed", "error", err)
					continue
				}
				r.tracker.Update(active)
			}
			if r.cfg.AutoStop && r.tracker.ShouldStop() {
				r.signalAutoStop()
			}
		}
	}
}

// AutoStopped is closed when sustained silence ended the take, and at the
// latest when the take is stopped manually, so waiters never leak. The
// caller still has to invoke StopAndTranscribe.
func (r *Recorder) AutoStopped() <-chan struct{} {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.autoStop
}

func (r *Recorder) signalAutoStop() {
	r.mu.Lock()
	once, ch := r.autoStopOnce, r.autoStop
	r.mu.Unlock()
	if once == nil {
		return
	}
	once.Do(func() { close(ch) })
}

// Recording reports whether a take is in progress
func (r *Recorder) Recording() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.recording
}

// StopAndTranscribe ends the recording, saves the WAV file and returns the
// transcribed text. It fails with a descriptive error when nothing usable
// was recorded, and the parser is never invoked on such takes.
func (r *Recorder) StopAndTranscribe(ctx context.Context) (string, error) {
	r.mu.Lock()
	if !r.recording {
		r.mu.Unlock()
		return "", fmt.Errorf("no hay ninguna grabación en curso")
	}
	r.recording = false
	cancel := r.cancel
	r.cancel = nil
	r.mu.Unlock()

	r.source.Stop()
	cancel()
	r.wg.Wait()
	r.signalAutoStop()

	samples := r.buf.Samples()
	if len(samples) == 0 {
		return "", fmt.Errorf("no se grabó audio")
	}
	if r.tracker != nil && !r.tracker.HeardSpeech() {
		return "", fmt.Errorf("no se detectó voz en la grabación")
	}

	rate := int(r.source.SampleRate())
	r.save(samples, rate)

	start := time.Now()
	result, err := r.engine.Transcribe(ctx, samples)
	if err != nil {
		return "", fmt.Errorf("falló la transcripción: %w", err)
	}
	r.log.Infow("transcription done",
		"seconds", float64(len(samples))/float64(rate),
		"took", time.Since(start),
		"chars", len(result.Text))
	return result.Text, nil
}

// save writes the take to the recordings directory. Persistence is best
// effort, a failed write never loses the transcription.
func (r *Recorder) save(samples []float32, sampleRate int) {
	if r.cfg.Dir == "" {
		return
	}
	if err := os.MkdirAll(r.cfg.Dir, 0755); err != nil {
		r.log.Warnw("cannot create recordings dir", "dir", r.cfg.Dir, "error", err)
		return
	}
	name := fmt.Sprintf("grabacion_%s.wav", time.Now().Format("20060102_150405"))
	path := filepath.Join(r.cfg.Dir, name)
	if err := audio.WriteWAVFile(path, samples, sampleRate); err != nil {
		r.log.Warnw("cannot save recording", "path", path, "error", err)
		return
	}
	r.log.Infow("recording saved", "path", path)
}
