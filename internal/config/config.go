// Package config loads the application configuration from a TOML file and
// fills in defaults. Every location the process touches (database,
// recordings, log file) is an explicit configuration value, nothing is
// discovered from relative layouts.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds the complete application configuration
type Config struct {
	Store      StoreConfig      `toml:"store"`
	Audio      AudioConfig      `toml:"audio"`
	VAD        VADConfig        `toml:"vad"`
	STT        STTConfig        `toml:"stt"`
	Recordings RecordingsConfig `toml:"recordings"`
	Log        LogConfig        `toml:"log"`
}

// StoreConfig configures the category store
type StoreConfig struct {
	Path string `toml:"path"`
}

// AudioConfig configures microphone capture
type AudioConfig struct {
	Device          string  `toml:"device"`
	SampleRate      float64 `toml:"sample_rate"`
	FramesPerBuffer int     `toml:"frames_per_buffer"`
}

// VADConfig configures voice activity detection
type VADConfig struct {
	Enabled     bool `toml:"enabled"`
	Mode        int  `toml:"mode"`
	SilenceMs   int  `toml:"silence_ms"`
	MinSpeechMs int  `toml:"min_speech_ms"`
	AutoStop    bool `toml:"auto_stop"`
}

// STTConfig configures speech-to-text
type STTConfig struct {
	Engine    string `toml:"engine"`
	Binary    string `toml:"binary"`
	ModelPath string `toml:"model_path"`
	ServerURL string `toml:"server_url"`
	Language  string `toml:"language"`
}

// RecordingsConfig configures WAV persistence of recordings
type RecordingsConfig struct {
	Dir string `toml:"dir"`
}

// LogConfig configures the process log file
type LogConfig struct {
	Path  string `toml:"path"`
	Level string `toml:"level"`
}

// Default returns the default configuration
func Default() Config {
	return Config{
		Store:      StoreConfig{Path: "./data/asisto.db"},
		Audio:      AudioConfig{Device: "default", SampleRate: 16000, FramesPerBuffer: 512},
		VAD:        VADConfig{Enabled: true, Mode: 2, SilenceMs: 2000, MinSpeechMs: 300, AutoStop: false},
		STT:        STTConfig{Engine: "whisper-cli", Language: "es"},
		Recordings: RecordingsConfig{Dir: "./recordings"},
		Log:        LogConfig{Path: "", Level: "info"},
	}
}

// Load reads the configuration file at path and applies defaults for any
// value left unset.
func Load(path string) (Config, error) {
	path = os.ExpandEnv(path)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Config{}, fmt.Errorf("config file not found: %s", path)
	}

	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.applyDefaults()
	return cfg, nil
}

// LoadOrDefault loads the file at path, or, when path is empty, the first
// existing default location. Without any config file it returns Default().
func LoadOrDefault(path string) (Config, error) {
	if path != "" {
		return Load(path)
	}

	candidates := []string{"./config.toml"}
	if dir, err := os.UserConfigDir(); err == nil {
		candidates = append(candidates, filepath.Join(dir, "asisto", "config.toml"))
	}
	for _, p := range candidates {
		if _, err := os.Stat(p); err == nil {
			return Load(p)
		}
	}
	return Default(), nil
}

func (c *Config) applyDefaults() {
	def := Default()

	if c.Store.Path == "" {
		c.Store.Path = def.Store.Path
	}
	if c.Audio.Device == "" {
		c.Audio.Device = def.Audio.Device
	}
	if c.Audio.SampleRate == 0 {
		c.Audio.SampleRate = def.Audio.SampleRate
	}
	if c.Audio.FramesPerBuffer == 0 {
		c.Audio.FramesPerBuffer = def.Audio.FramesPerBuffer
	}
	if c.VAD.SilenceMs == 0 {
		c.VAD.SilenceMs = def.VAD.SilenceMs
	}
	if c.VAD.MinSpeechMs == 0 {
		c.VAD.MinSpeechMs = def.VAD.MinSpeechMs
	}
	if c.STT.Engine == "" {
		c.STT.Engine = def.STT.Engine
	}
	if c.STT.Language == "" {
		c.STT.Language = def.STT.Language
	}
	if c.Recordings.Dir == "" {
		c.Recordings.Dir = def.Recordings.Dir
	}
	if c.Log.Level == "" {
		c.Log.Level = def.Log.Level
	}
}
