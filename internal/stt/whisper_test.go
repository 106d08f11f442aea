package stt

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCleanTranscript(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			"timestamped lines",
			"[00:00:00.000 --> 00:00:02.000]  Nueva categoría Conciertos\n[00:00:02.000 --> 00:00:03.000]  de rock",
			"Nueva categoría Conciertos de rock",
		},
		{"plain text", "  listar categorías \n", "listar categorías"},
		{"empty", "", ""},
		{"blank lines dropped", "hola\n\n\nmundo", "hola mundo"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanTranscript(tt.in); got != tt.want {
				t.Errorf("CleanTranscript(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestWhisperHTTPTranscribe(t *testing.T) {
	var gotLanguage string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/audio/transcriptions" {
			t.Errorf("path = %q", r.URL.Path)
		}
		gotLanguage = r.URL.Query().Get("language")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"text": " eliminar categoría 5 "}`))
	}))
	defer srv.Close()

	cfg := DefaultConfig()
	w := NewWhisperHTTP(srv.URL, cfg)

	result, err := w.Transcribe(context.Background(), make([]float32, 320))
	if err != nil {
		t.Fatalf("Transcribe() error = %v", err)
	}
	if result.Text != "eliminar categoría 5" {
		t.Errorf("Text = %q", result.Text)
	}
	if result.Language != "es" {
		t.Errorf("Language = %q, want es", result.Language)
	}
	if gotLanguage != "es" {
		t.Errorf("request language = %q, want es", gotLanguage)
	}
}

func TestWhisperHTTPServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not loaded", http.StatusInternalServerError)
	}))
	defer srv.Close()

	w := NewWhisperHTTP(srv.URL, DefaultConfig())
	if _, err := w.Transcribe(context.Background(), make([]float32, 320)); err == nil {
		t.Error("Transcribe() should fail on server error")
	}
}

func TestNewTranscriberUnknownEngine(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Engine = "siri"
	if _, err := NewTranscriber(cfg); err == nil {
		t.Error("NewTranscriber() should fail for unknown engine")
	}
}

func TestNewTranscriberHTTPNeedsURL(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Engine = "whisper-http"
	if _, err := NewTranscriber(cfg); err == nil {
		t.Error("NewTranscriber() should fail without server_url")
	}
}
