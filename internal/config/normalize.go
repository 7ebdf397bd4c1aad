package config

import (
	"fmt"
	"os"
	"strings"

	"voxscribe/internal/language"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeDiarization()
	c.normalizeTranscription()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.OutputDir) == "" {
		c.Paths.OutputDir = defaultOutputDir
	}
	if c.Paths.OutputDir, err = expandPath(c.Paths.OutputDir); err != nil {
		return fmt.Errorf("paths.output_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.TempDir) == "" {
		c.Paths.TempDir = defaultTempDir
	}
	if c.Paths.TempDir, err = expandPath(c.Paths.TempDir); err != nil {
		return fmt.Errorf("paths.temp_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeDiarization() {
	if strings.TrimSpace(c.Diarization.Model) == "" {
		c.Diarization.Model = defaultDiarizationModel
	}
	if c.Diarization.HFToken == "" {
		c.Diarization.HFToken = strings.TrimSpace(os.Getenv("HF_TOKEN"))
	}
}

func (c *Config) normalizeTranscription() {
	if strings.TrimSpace(c.Transcription.Binary) == "" {
		c.Transcription.Binary = defaultTranscriptionBinary
	}
	lang := strings.TrimSpace(c.Transcription.Language)
	if lang == "" {
		lang = defaultLanguage
	}
	if iso := language.ToISO2(lang); iso != "" {
		lang = iso
	}
	c.Transcription.Language = lang
	if path := strings.TrimSpace(c.Transcription.ModelPath); path != "" {
		if expanded, err := expandPath(path); err == nil {
			c.Transcription.ModelPath = expanded
		}
	}
}

func (c *Config) normalizeLogging() {
	format := strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if format == "" {
		format = defaultLogFormat
	}
	c.Logging.Format = format

	level := strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if level == "" {
		level = defaultLogLevel
	}
	c.Logging.Level = level
}
