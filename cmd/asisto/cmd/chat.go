package cmd

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"asisto/internal/assistant"
	"asisto/internal/audio"
	"asisto/internal/config"
	"asisto/internal/executor"
	"asisto/internal/logging"
	"asisto/internal/recorder"
	"asisto/internal/store"
	"asisto/internal/stt"
	"asisto/internal/tui/chat"
	"asisto/internal/vad"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Abre el chat del asistente",
	Long: `Abre el chat interactivo. Las instrucciones se escriben en el campo
de texto o se dictan con Ctrl+G; el resultado aparece como respuesta del
asistente.`,
	RunE: runChat,
}

func init() {
	rootCmd.AddCommand(chatCmd)
	// Running asisto without a subcommand opens the chat.
	rootCmd.RunE = runChat
}

func runChat(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadOrDefault(cfgFile)
	if err != nil {
		printError("configuración", err)
		return err
	}
	if verbose && cfg.Log.Level != "debug" {
		cfg.Log.Level = "debug"
	}

	log, err := logging.New(cfg.Log.Path, cfg.Log.Level)
	if err != nil {
		printError("log", err)
		return err
	}
	defer log.Sync()

	st, err := store.Open(store.Config{Path: cfg.Store.Path})
	if err != nil {
		printError("almacén", err)
		return err
	}
	defer st.Close()
	log.Infow("store open", "path", cfg.Store.Path)

	ctx := context.Background()
	asst := assistant.New(executor.New(st), log)

	rec, cleanup := buildRecorder(cfg, log)
	defer cleanup()

	var chatRec chat.Recorder
	if rec != nil {
		chatRec = rec
	}

	p := tea.NewProgram(chat.New(ctx, asst, chatRec), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("chat terminó con error: %w", err)
	}
	return nil
}

// buildRecorder wires capture, VAD and transcription. Voice input is
// optional: any unavailable piece downgrades the chat to text-only.
func buildRecorder(cfg config.Config, log *zap.SugaredLogger) (*recorder.Recorder, func()) {
	noop := func() {}

	engine, err := stt.NewTranscriber(stt.Config{
		Engine:     cfg.STT.Engine,
		Binary:     cfg.STT.Binary,
		ModelPath:  cfg.STT.ModelPath,
		ServerURL:  cfg.STT.ServerURL,
		Language:   cfg.STT.Language,
		SampleRate: int(cfg.Audio.SampleRate),
	})
	if err != nil {
		log.Warnw("voice input disabled, no transcriber", "error", err)
		return nil, noop
	}

	capture, err := audio.NewCapture(audio.Config{
		SampleRate:      cfg.Audio.SampleRate,
		FramesPerBuffer: cfg.Audio.FramesPerBuffer,
		Device:          cfg.Audio.Device,
	})
	if err != nil {
		engine.Close()
		log.Warnw("voice input disabled, no audio capture", "error", err)
		return nil, noop
	}

	vadCfg := vadConfig(cfg)
	detector := buildDetector(cfg, vadCfg, log)

	rec := recorder.New(capture, engine, detector, vadCfg,
		recorder.Config{Dir: cfg.Recordings.Dir, AutoStop: cfg.VAD.AutoStop}, log)

	cleanup := func() {
		capture.Close()
		engine.Close()
		if detector != nil {
			detector.Close()
		}
	}
	return rec, cleanup
}

func vadConfig(cfg config.Config) vad.Config {
	vadCfg := vad.DefaultConfig()
	vadCfg.SampleRate = int(cfg.Audio.SampleRate)
	vadCfg.Mode = cfg.VAD.Mode
	vadCfg.SilenceDuration = time.Duration(cfg.VAD.SilenceMs) * time.Millisecond
	vadCfg.MinSpeechDuration = time.Duration(cfg.VAD.MinSpeechMs) * time.Millisecond
	return vadCfg
}

func buildDetector(cfg config.Config, vadCfg vad.Config, log *zap.SugaredLogger) vad.Detector {
	if !cfg.VAD.Enabled {
		return nil
	}
	detector, err := vad.NewWebRTC(vadCfg)
	if err != nil {
		log.Warnw("vad disabled", "error", err)
		return nil
	}
	return detector
}
