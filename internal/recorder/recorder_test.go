package recorder

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"asisto/internal/stt"
	"asisto/internal/vad"
)

// fakeSource replays scripted sample buffers
type fakeSource struct {
	out chan []float32
}

func newFakeSource() *fakeSource {
	return &fakeSource{out: make(chan []float32, 16)}
}

func (f *fakeSource) Start(ctx context.Context) error { return nil }
func (f *fakeSource) Stop() error                     { return nil }
func (f *fakeSource) Output() <-chan []float32        { return f.out }
func (f *fakeSource) SampleRate() float64             { return 16000 }

// fakeEngine returns a fixed transcript
type fakeEngine struct {
	text string
	err  error
	got  []float32
}

func (f *fakeEngine) Transcribe(ctx context.Context, samples []float32) (stt.Result, error) {
	f.got = samples
	return stt.Result{Text: f.text, Language: "es"}, f.err
}

func (f *fakeEngine) TranscribeFile(ctx context.Context, path string) (stt.Result, error) {
	return stt.Result{Text: f.text, Language: "es"}, f.err
}

func (f *fakeEngine) Close() error { return nil }

// silenceAfterSpeech reports voice on the first frame only
type silenceAfterSpeech struct {
	frames int
}

func (d *silenceAfterSpeech) Process(samples []float32) (bool, error) {
	d.frames++
	return d.frames == 1, nil
}

func (d *silenceAfterSpeech) Close() error { return nil }

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not reached in time")
}

func TestRecordAndTranscribe(t *testing.T) {
	src := newFakeSource()
	engine := &fakeEngine{text: "nueva categoria Conciertos"}
	dir := t.TempDir()
	rec := New(src, engine, nil, vad.DefaultConfig(), Config{Dir: dir}, nil)

	if err := rec.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if !rec.Recording() {
		t.Error("Recording() = false after Start")
	}

	src.out <- make([]float32, 512)
	src.out <- make([]float32, 512)
	waitFor(t, func() bool { return rec.buf.Len() == 1024 })

	text, err := rec.StopAndTranscribe(context.Background())
	if err != nil {
		t.Fatalf("StopAndTranscribe() error = %v", err)
	}
	if text != "nueva categoria Conciertos" {
		t.Errorf("text = %q", text)
	}
	if len(engine.got) != 1024 {
		t.Errorf("engine received %d samples, want 1024", len(engine.got))
	}
	if rec.Recording() {
		t.Error("Recording() = true after stop")
	}

	// The take was persisted as a WAV file.
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("recordings dir has %d entries, want 1", len(entries))
	}
	name := entries[0].Name()
	if !strings.HasPrefix(name, "grabacion_") || filepath.Ext(name) != ".wav" {
		t.Errorf("recording name = %q", name)
	}
}

func TestStopWithoutAudio(t *testing.T) {
	src := newFakeSource()
	rec := New(src, &fakeEngine{}, nil, vad.DefaultConfig(), Config{}, nil)

	if err := rec.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	_, err := rec.StopAndTranscribe(context.Background())
	if err == nil {
		t.Fatal("StopAndTranscribe() should fail without audio")
	}
	if !strings.Contains(err.Error(), "no se grabó audio") {
		t.Errorf("error = %v", err)
	}
}

func TestStopWithoutRecording(t *testing.T) {
	rec := New(newFakeSource(), &fakeEngine{}, nil, vad.DefaultConfig(), Config{}, nil)
	if _, err := rec.StopAndTranscribe(context.Background()); err == nil {
		t.Error("StopAndTranscribe() should fail when nothing is recording")
	}
}

func TestDoubleStart(t *testing.T) {
	src := newFakeSource()
	rec := New(src, &fakeEngine{}, nil, vad.DefaultConfig(), Config{}, nil)

	if err := rec.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if err := rec.Start(context.Background()); err == nil {
		t.Error("second Start() should fail")
	}
	src.out <- make([]float32, 8)
	rec.StopAndTranscribe(context.Background())
}

func TestTranscriptionFailure(t *testing.T) {
	src := newFakeSource()
	rec := New(src, &fakeEngine{err: errors.New("sin modelo")}, nil, vad.DefaultConfig(), Config{}, nil)

	rec.Start(context.Background())
	src.out <- make([]float32, 512)
	waitFor(t, func() bool { return rec.buf.Len() == 512 })

	if _, err := rec.StopAndTranscribe(context.Background()); err == nil {
		t.Error("StopAndTranscribe() should surface transcription failure")
	}
}

func TestAutoStopSignal(t *testing.T) {
	cfg := vad.DefaultConfig()
	cfg.SilenceDuration = time.Nanosecond
	cfg.MinSpeechDuration = 0

	src := newFakeSource()
	rec := New(src, &fakeEngine{text: "hola"}, &silenceAfterSpeech{}, cfg, Config{AutoStop: true}, nil)

	if err := rec.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	// One voiced frame, then silence long enough to trigger the auto stop.
	src.out <- make([]float32, cfg.FrameSize())
	time.Sleep(10 * time.Millisecond)
	src.out <- make([]float32, cfg.FrameSize())
	src.out <- make([]float32, cfg.FrameSize())

	select {
	case <-rec.AutoStopped():
	case <-time.After(2 * time.Second):
		t.Fatal("auto stop was not signalled")
	}

	if _, err := rec.StopAndTranscribe(context.Background()); err != nil {
		t.Errorf("StopAndTranscribe() error = %v", err)
	}
}
