package whisper

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	langpkg "voxscribe/internal/language"
	"voxscribe/internal/wave"
)

// DefaultBinary is the whisper.cpp command-line frontend.
const DefaultBinary = "whisper-cli"

// Config captures runtime settings for whisper-cli transcription.
type Config struct {
	// Binary is the whisper-cli executable name or path.
	Binary string
	// ModelPath points at the GGML model file.
	ModelPath string
}

// Service transcribes audio segments with whisper-cli. It implements
// transcribe.Engine. Each call writes the samples to a temporary WAV file
// because whisper-cli only accepts file input.
type Service struct {
	cfg           Config
	commandRunner func(ctx context.Context, name string, args ...string) ([]byte, error)
}

// NewService creates a whisper-cli transcription service.
func NewService(cfg Config) *Service {
	if cfg.Binary == "" {
		cfg.Binary = DefaultBinary
	}
	return &Service{cfg: cfg}
}

// WithCommandRunner sets a custom command runner (for testing). The runner
// returns the transcript text whisper-cli would print to stdout.
func (s *Service) WithCommandRunner(runner func(ctx context.Context, name string, args ...string) ([]byte, error)) {
	s.commandRunner = runner
}

// Check verifies that the binary is on PATH and the model file exists.
func (s *Service) Check(ctx context.Context) error {
	if s.commandRunner == nil {
		if _, err := exec.LookPath(s.cfg.Binary); err != nil {
			return fmt.Errorf("whisper: %s not found on PATH: %w", s.cfg.Binary, err)
		}
	}
	if s.cfg.ModelPath != "" {
		if _, err := os.Stat(s.cfg.ModelPath); err != nil {
			return fmt.Errorf("whisper: model file: %w", err)
		}
	}
	return nil
}

// Transcribe writes the samples to a temporary WAV file, invokes
// whisper-cli on it, and returns the trimmed transcript text.
func (s *Service) Transcribe(ctx context.Context, samples []float32, sampleRate int, language string) (string, error) {
	if len(samples) == 0 {
		return "", nil
	}

	dir, err := os.MkdirTemp("", "voxscribe-segment-*")
	if err != nil {
		return "", fmt.Errorf("whisper: create work dir: %w", err)
	}
	defer os.RemoveAll(dir)

	segmentPath := filepath.Join(dir, "segment.wav")
	if err := wave.WriteWAV(segmentPath, samples, sampleRate); err != nil {
		return "", fmt.Errorf("whisper: write segment: %w", err)
	}

	args := s.buildArgs(segmentPath, language)
	output, err := s.run(ctx, s.cfg.Binary, args...)
	if err != nil {
		return "", fmt.Errorf("whisper: %w", err)
	}
	return strings.TrimSpace(string(output)), nil
}

// run executes a command and captures stdout, using the custom runner if set.
func (s *Service) run(ctx context.Context, name string, args ...string) ([]byte, error) {
	if s.commandRunner != nil {
		return s.commandRunner(ctx, name, args...)
	}
	cmd := exec.CommandContext(ctx, name, args...) //nolint:gosec
	var stderr strings.Builder
	cmd.Stderr = &stderr
	output, err := cmd.Output()
	if err != nil {
		detail := strings.TrimSpace(stderr.String())
		if detail != "" {
			return nil, fmt.Errorf("%s: %w: %s", name, err, detail)
		}
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return output, nil
}

// buildArgs constructs the whisper-cli invocation for one segment.
func (s *Service) buildArgs(segmentPath, language string) []string {
	args := make([]string, 0, 10)
	if s.cfg.ModelPath != "" {
		args = append(args, "-m", s.cfg.ModelPath)
	}
	args = append(args, "-f", segmentPath, "--no-timestamps")
	if lang := langpkg.ToISO2(language); lang != "" {
		args = append(args, "-l", lang)
	}
	return args
}
