package whisperx

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"voxscribe/internal/diarize"
	langpkg "voxscribe/internal/language"
)

// Service runs WhisperX speaker diarization. It implements diarize.Engine.
type Service struct {
	cfg           Config
	language      string
	commandRunner func(ctx context.Context, name string, args ...string) error
}

// NewService creates a WhisperX diarization service.
func NewService(cfg Config, language string) *Service {
	return &Service{cfg: cfg, language: language}
}

// WithCommandRunner sets a custom command runner (for testing).
func (s *Service) WithCommandRunner(runner func(ctx context.Context, name string, args ...string) error) {
	s.commandRunner = runner
}

// Model returns the configured model name for logging.
func (s *Service) Model() string {
	if s.cfg.Model != "" {
		return s.cfg.Model
	}
	return DefaultModel
}

// Check verifies that the uvx launcher is available on PATH.
func (s *Service) Check(ctx context.Context) error {
	if s.commandRunner != nil {
		return nil
	}
	if _, err := exec.LookPath(UVXCommand); err != nil {
		return fmt.Errorf("whisperx: %s not found on PATH: %w", UVXCommand, err)
	}
	return nil
}

// Segment diarizes the audio file and returns speaker-attributed segments
// in recording order. WhisperX writes its JSON next to the working
// directory; the segments are read back and mapped onto the sidecar schema.
func (s *Service) Segment(ctx context.Context, audioPath string) ([]diarize.Segment, error) {
	if audioPath == "" {
		return nil, fmt.Errorf("diarize: audio path required")
	}

	workDir, err := os.MkdirTemp("", "voxscribe-diarize-*")
	if err != nil {
		return nil, fmt.Errorf("diarize: create work dir: %w", err)
	}
	defer os.RemoveAll(workDir)

	args := s.buildArgs(audioPath, workDir)
	if err := s.run(ctx, UVXCommand, args...); err != nil {
		return nil, fmt.Errorf("whisperx: %w", err)
	}

	baseName := strings.TrimSuffix(filepath.Base(audioPath), filepath.Ext(audioPath))
	jsonPath := filepath.Join(workDir, baseName+".json")
	raw, err := loadSegments(jsonPath)
	if err != nil {
		return nil, fmt.Errorf("whisperx: read output: %w", err)
	}

	segments := make([]diarize.Segment, 0, len(raw))
	for _, seg := range raw {
		speaker := strings.TrimSpace(seg.Speaker)
		if speaker == "" {
			speaker = UnknownSpeaker
		}
		if seg.End <= seg.Start {
			continue
		}
		segments = append(segments, diarize.Segment{
			Start:   seg.Start,
			End:     seg.End,
			Speaker: speaker,
		})
	}
	return segments, nil
}

// UnknownSpeaker labels segments the diarizer could not attribute.
const UnknownSpeaker = "SPEAKER_UNKNOWN"

// run executes a command, using the custom runner if set.
func (s *Service) run(ctx context.Context, name string, args ...string) error {
	if s.commandRunner != nil {
		return s.commandRunner(ctx, name, args...)
	}
	cmd := exec.CommandContext(ctx, name, args...) //nolint:gosec

	// Torch 2.6 changed torch.load default to weights_only=true, breaking
	// WhisperX/pyannote. Force legacy behavior so checkpoints load.
	if os.Getenv("TORCH_FORCE_NO_WEIGHTS_ONLY_LOAD") == "" {
		cmd.Env = append(os.Environ(), "TORCH_FORCE_NO_WEIGHTS_ONLY_LOAD=1")
	}

	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%s: %w: %s", name, err, strings.TrimSpace(string(output)))
	}
	return nil
}

// buildArgs constructs the uvx command arguments for a diarization run.
func (s *Service) buildArgs(audioPath, outputDir string) []string {
	args := make([]string, 0, 24)

	if s.cfg.CUDAEnabled {
		args = append(args,
			"--index-url", CUDAIndexURL,
			"--extra-index-url", PypiIndexURL,
		)
	} else {
		args = append(args, "--index-url", PypiIndexURL)
	}

	model := s.cfg.Model
	if model == "" {
		model = DefaultModel
	}

	args = append(args,
		"whisperx",
		audioPath,
		"--model", model,
		"--diarize",
		"--batch_size", BatchSize,
		"--output_dir", outputDir,
		"--output_format", OutputFormat,
	)

	if s.cfg.HFToken != "" {
		args = append(args, "--hf_token", s.cfg.HFToken)
	}
	if lang := langpkg.ToISO2(s.language); lang != "" {
		args = append(args, "--language", lang)
	}

	if s.cfg.CUDAEnabled {
		args = append(args, "--device", CUDADevice)
	} else {
		args = append(args, "--device", CPUDevice, "--compute_type", CPUComputeType)
	}

	return args
}

// rawSegment is one entry of the WhisperX JSON output.
type rawSegment struct {
	Start   float64 `json:"start"`
	End     float64 `json:"end"`
	Speaker string  `json:"speaker"`
}

type payload struct {
	Segments []rawSegment `json:"segments"`
}

func loadSegments(jsonPath string) ([]rawSegment, error) {
	data, err := os.ReadFile(jsonPath)
	if err != nil {
		return nil, err
	}
	var p payload
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse whisperx json: %w", err)
	}
	return p.Segments, nil
}
