package media

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"voxscribe/internal/services"
)

// CanonicalSampleRate is the sample rate of extracted waveforms, matching the
// input format the speech engines expect.
const CanonicalSampleRate = 16000

// Extractor converts arbitrary containers into the canonical mono 16 kHz
// PCM WAV the downstream engines consume.
type Extractor struct {
	binary        string
	commandRunner func(ctx context.Context, name string, args ...string) error
}

// NewExtractor creates an Extractor that shells out to the given ffmpeg binary.
func NewExtractor(binary string) *Extractor {
	if strings.TrimSpace(binary) == "" {
		binary = "ffmpeg"
	}
	return &Extractor{binary: binary}
}

// WithCommandRunner sets a custom command runner (for testing).
func (e *Extractor) WithCommandRunner(runner func(ctx context.Context, name string, args ...string) error) {
	e.commandRunner = runner
}

// Extract converts inputPath into a canonical waveform at outputPath. The
// input file is left in place; exactly one output file is written. A non-zero
// ffmpeg exit maps to services.ErrExtraction carrying the captured
// diagnostic output.
func (e *Extractor) Extract(ctx context.Context, inputPath, outputPath string) error {
	if strings.TrimSpace(inputPath) == "" {
		return services.Wrap(services.ErrExtraction, "extracting", "ffmpeg", "input path required", nil)
	}
	if strings.TrimSpace(outputPath) == "" {
		return services.Wrap(services.ErrExtraction, "extracting", "ffmpeg", "output path required", nil)
	}
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return services.Wrap(services.ErrExtraction, "extracting", "ensure output dir", "", err)
	}

	args := buildExtractArgs(inputPath, outputPath)
	if e.commandRunner != nil {
		if err := e.commandRunner(ctx, e.binary, args...); err != nil {
			return services.Wrap(services.ErrExtraction, "extracting", "ffmpeg", "", err)
		}
		return nil
	}

	cmd := exec.CommandContext(ctx, e.binary, args...) //nolint:gosec
	if output, err := cmd.CombinedOutput(); err != nil {
		detail := fmt.Errorf("%w: %s", err, strings.TrimSpace(string(output)))
		return services.Wrap(services.ErrExtraction, "extracting", "ffmpeg", "", detail)
	}
	return nil
}

func buildExtractArgs(inputPath, outputPath string) []string {
	return []string{
		"-y",
		"-hide_banner",
		"-loglevel", "error",
		"-i", inputPath,
		"-vn",
		"-sn",
		"-dn",
		"-ac", "1",
		"-ar", fmt.Sprintf("%d", CanonicalSampleRate),
		"-c:a", "pcm_s16le",
		outputPath,
	}
}
