package stt

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"asisto/internal/audio"
)

// WhisperCLI transcribes by shelling out to a whisper.cpp binary
type WhisperCLI struct {
	binary     string
	modelPath  string
	language   string
	sampleRate int
	tempDir    string
}

// NewWhisperCLI creates a whisper.cpp CLI transcriber
func NewWhisperCLI(cfg Config) (*WhisperCLI, error) {
	binary := cfg.Binary
	if binary == "" {
		binary = findWhisperBinary()
	}
	if binary == "" {
		return nil, fmt.Errorf("whisper binary not found, install whisper-cpp or set stt.binary")
	}
	if cfg.ModelPath == "" {
		return nil, fmt.Errorf("whisper model path is required")
	}
	if _, err := os.Stat(cfg.ModelPath); err != nil {
		return nil, fmt.Errorf("whisper model not found: %s", cfg.ModelPath)
	}

	tempDir, err := os.MkdirTemp("", "asisto-stt-")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp directory: %w", err)
	}

	return &WhisperCLI{
		binary:     binary,
		modelPath:  cfg.ModelPath,
		language:   cfg.Language,
		sampleRate: cfg.SampleRate,
		tempDir:    tempDir,
	}, nil
}

func findWhisperBinary() string {
	for _, name := range []string{"whisper-cli", "whisper"} {
		if path, err := exec.LookPath(name); err == nil {
			return path
		}
	}
	for _, loc := range []string{
		"/opt/homebrew/bin/whisper-cli",
		"/usr/local/bin/whisper-cli",
		"/usr/local/bin/whisper",
		"/usr/bin/whisper",
	} {
		if _, err := os.Stat(loc); err == nil {
			return loc
		}
	}
	return ""
}

// Transcribe writes the samples to a temporary WAV file and transcribes it
func (w *WhisperCLI) Transcribe(ctx context.Context, samples []float32) (Result, error) {
	wavPath := filepath.Join(w.tempDir, fmt.Sprintf("audio_%d.wav", time.Now().UnixNano()))
	if err := audio.WriteWAVFile(wavPath, samples, w.sampleRate); err != nil {
		return Result{}, fmt.Errorf("failed to write WAV file: %w", err)
	}
	defer os.Remove(wavPath)

	return w.TranscribeFile(ctx, wavPath)
}

// TranscribeFile runs the whisper binary on a WAV file
func (w *WhisperCLI) TranscribeFile(ctx context.Context, path string) (Result, error) {
	args := []string{
		"--model", w.modelPath,
		"--language", w.language,
		"--no-prints",
		path,
	}

	cmd := exec.CommandContext(ctx, w.binary, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		// Older builds only understand the short flags.
		cmd = exec.CommandContext(ctx, w.binary, "-m", w.modelPath, "-l", w.language, "-np", path)
		stdout.Reset()
		stderr.Reset()
		cmd.Stdout = &stdout
		cmd.Stderr = &stderr
		if err2 := cmd.Run(); err2 != nil {
			return Result{}, fmt.Errorf("whisper failed: %w, stderr: %s", err, stderr.String())
		}
	}

	return Result{
		Text:     CleanTranscript(stdout.String()),
		Language: w.language,
	}, nil
}

// Close removes the temporary directory
func (w *WhisperCLI) Close() error {
	if w.tempDir != "" {
		os.RemoveAll(w.tempDir)
	}
	return nil
}

// CleanTranscript strips whisper timestamp prefixes
// ("[00:00:00.000 --> 00:00:02.000] text") and joins the lines.
func CleanTranscript(raw string) string {
	var clean []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "[") && strings.Contains(line, "-->") {
			if idx := strings.Index(line, "]"); idx != -1 {
				line = strings.TrimSpace(line[idx+1:])
			}
		}
		if line != "" {
			clean = append(clean, line)
		}
	}
	return strings.Join(clean, " ")
}

// WhisperHTTP transcribes through a whisper-compatible HTTP server
// (go-whisper, LocalAI or similar /v1/audio/transcriptions endpoints).
type WhisperHTTP struct {
	baseURL    string
	language   string
	sampleRate int
	client     *http.Client
}

// NewWhisperHTTP creates an HTTP transcriber against baseURL
func NewWhisperHTTP(baseURL string, cfg Config) *WhisperHTTP {
	return &WhisperHTTP{
		baseURL:    strings.TrimRight(baseURL, "/"),
		language:   cfg.Language,
		sampleRate: cfg.SampleRate,
		client:     &http.Client{Timeout: 60 * time.Second},
	}
}

// Transcribe posts the samples as an in-memory WAV
func (w *WhisperHTTP) Transcribe(ctx context.Context, samples []float32) (Result, error) {
	var buf bytes.Buffer
	if err := audio.EncodeWAV(&buf, samples, w.sampleRate); err != nil {
		return Result{}, fmt.Errorf("failed to create WAV: %w", err)
	}
	return w.post(ctx, &buf)
}

// TranscribeFile posts a WAV file
func (w *WhisperHTTP) TranscribeFile(ctx context.Context, path string) (Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Result{}, fmt.Errorf("failed to read file: %w", err)
	}
	return w.post(ctx, bytes.NewReader(data))
}

func (w *WhisperHTTP) post(ctx context.Context, body io.Reader) (Result, error) {
	url := w.baseURL + "/v1/audio/transcriptions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, body)
	if err != nil {
		return Result{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "audio/wav")
	q := req.URL.Query()
	q.Add("language", w.language)
	req.URL.RawQuery = q.Encode()

	resp, err := w.client.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("transcription request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(resp.Body)
		return Result{}, fmt.Errorf("transcription server returned %d: %s", resp.StatusCode, string(msg))
	}

	var response struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return Result{}, fmt.Errorf("failed to decode response: %w", err)
	}

	return Result{
		Text:     strings.TrimSpace(response.Text),
		Language: w.language,
	}, nil
}

// Close releases resources
func (w *WhisperHTTP) Close() error {
	return nil
}

// NewTranscriber builds the transcriber selected by cfg.Engine
func NewTranscriber(cfg Config) (Transcriber, error) {
	switch cfg.Engine {
	case "", "whisper-cli":
		return NewWhisperCLI(cfg)
	case "whisper-http":
		if cfg.ServerURL == "" {
			return nil, fmt.Errorf("stt.server_url is required for the whisper-http engine")
		}
		return NewWhisperHTTP(cfg.ServerURL, cfg), nil
	default:
		return nil, fmt.Errorf("unknown stt engine: %s", cfg.Engine)
	}
}
