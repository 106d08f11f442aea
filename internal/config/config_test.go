package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Store.Path == "" {
		t.Error("default store path is empty")
	}
	if cfg.STT.Language != "es" {
		t.Errorf("default language = %q, want es", cfg.STT.Language)
	}
	if cfg.Audio.SampleRate != 16000 {
		t.Errorf("default sample rate = %v, want 16000", cfg.Audio.SampleRate)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[store]
path = "/tmp/pruebas/asisto.db"

[stt]
engine = "whisper-http"
server_url = "http://localhost:8100"

[vad]
enabled = true
auto_stop = true
silence_ms = 1500
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Store.Path != "/tmp/pruebas/asisto.db" {
		t.Errorf("store path = %q", cfg.Store.Path)
	}
	if cfg.STT.Engine != "whisper-http" || cfg.STT.ServerURL != "http://localhost:8100" {
		t.Errorf("stt = %+v", cfg.STT)
	}
	if !cfg.VAD.AutoStop || cfg.VAD.SilenceMs != 1500 {
		t.Errorf("vad = %+v", cfg.VAD)
	}

	// Unset values fall back to defaults.
	if cfg.STT.Language != "es" {
		t.Errorf("language = %q, want default es", cfg.STT.Language)
	}
	if cfg.Audio.SampleRate != 16000 {
		t.Errorf("sample rate = %v, want default 16000", cfg.Audio.SampleRate)
	}
	if cfg.Recordings.Dir == "" {
		t.Error("recordings dir should default")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Error("Load() should fail for a missing file")
	}
}

func TestLoadInvalidTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	os.WriteFile(path, []byte("store = {"), 0644)
	if _, err := Load(path); err == nil {
		t.Error("Load() should fail for invalid TOML")
	}
}

func TestLoadOrDefaultWithoutFile(t *testing.T) {
	// Run somewhere without a config.toml, user config dir included.
	t.Chdir(t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := LoadOrDefault("")
	if err != nil {
		t.Fatalf("LoadOrDefault() error = %v", err)
	}
	if cfg.Store.Path != Default().Store.Path {
		t.Errorf("store path = %q, want default", cfg.Store.Path)
	}
}
