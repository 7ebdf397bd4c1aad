package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"voxscribe/internal/config"
	"voxscribe/internal/logging"
	"voxscribe/internal/pipeline"
	"voxscribe/internal/services/whisper"
	"voxscribe/internal/services/whisperx"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// buildLogger creates the run logger writing to stdout and a timestamped
// file in the log directory.
func buildLogger(cfg *config.Config) (*slog.Logger, error) {
	runID := time.Now().UTC().Format("20060102T150405.000Z")
	logPath := filepath.Join(cfg.Paths.LogDir, fmt.Sprintf("voxscribe-%s.log", runID))
	logger, err := logging.New(logging.Options{
		Level:            cfg.Logging.Level,
		Format:           cfg.Logging.Format,
		OutputPaths:      []string{"stdout", logPath},
		ErrorOutputPaths: []string{"stderr", logPath},
	})
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	return logger, nil
}

// buildOrchestrator wires the external engines into a pipeline orchestrator.
func buildOrchestrator(cfg *config.Config, logger *slog.Logger, resume bool) *pipeline.Orchestrator {
	diarizer := whisperx.NewService(whisperx.Config{
		Model:       cfg.Diarization.Model,
		CUDAEnabled: cfg.Diarization.CUDAEnabled,
		HFToken:     cfg.Diarization.HFToken,
	}, cfg.Transcription.Language)

	stt := whisper.NewService(whisper.Config{
		Binary:    cfg.Transcription.Binary,
		ModelPath: cfg.Transcription.ModelPath,
	})

	opts := pipeline.Options{Resume: resume}
	if isatty.IsTerminal(os.Stderr.Fd()) {
		opts.Progress = os.Stderr
	}
	return pipeline.New(cfg, diarizer, stt, logger, opts)
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
