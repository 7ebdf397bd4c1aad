package pipeline

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"voxscribe/internal/config"
	"voxscribe/internal/consolidate"
	"voxscribe/internal/diarize"
	"voxscribe/internal/logging"
	"voxscribe/internal/media"
	"voxscribe/internal/media/ffprobe"
	"voxscribe/internal/services"
	"voxscribe/internal/transcribe"
)

// Checker is implemented by engines that can verify their external tooling
// before a run starts.
type Checker interface {
	Check(ctx context.Context) error
}

// Options adjusts pipeline runs.
type Options struct {
	// Resume reuses an existing diarization sidecar instead of re-running
	// the engine. A malformed sidecar fails the file.
	Resume bool
	// Progress, when non-nil, receives per-segment progress bars.
	Progress io.Writer
}

// Orchestrator drives one file through the pipeline stages in order.
type Orchestrator struct {
	cfg         *config.Config
	logger      *slog.Logger
	extractor   *media.Extractor
	diarizer    diarize.Engine
	transcriber transcribe.Engine
	opts        Options
}

// pipelineStage binds a stage name to its handler and the status an item
// reaches when the stage succeeds.
type pipelineStage struct {
	name   string
	status Status
	run    func(ctx context.Context, item *Item) error
}

// New creates an orchestrator with the given engines.
func New(cfg *config.Config, diarizer diarize.Engine, transcriber transcribe.Engine, logger *slog.Logger, opts Options) *Orchestrator {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Orchestrator{
		cfg:         cfg,
		logger:      logger,
		extractor:   media.NewExtractor(cfg.FFmpegBinary()),
		diarizer:    diarizer,
		transcriber: transcriber,
		opts:        opts,
	}
}

// CheckEngines verifies external tooling for every engine that supports it.
// A failing check aborts the whole run before any file is touched.
func (o *Orchestrator) CheckEngines(ctx context.Context) error {
	for _, engine := range []any{o.diarizer, o.transcriber} {
		if checker, ok := engine.(Checker); ok {
			if err := checker.Check(ctx); err != nil {
				return services.Wrap(services.ErrConfiguration, "preflight", "check engines", "external tool unavailable", err)
			}
		}
	}
	return nil
}

// stages returns the stage table in execution order.
func (o *Orchestrator) stages() []pipelineStage {
	return []pipelineStage{
		{name: "validate", status: StatusValidated, run: o.validate},
		{name: "extract", status: StatusExtracted, run: o.extract},
		{name: "diarize", status: StatusDiarized, run: o.diarize},
		{name: "transcribe", status: StatusTranscribed, run: o.transcribe},
		{name: "consolidate", status: StatusCleaned, run: o.consolidate},
	}
}

// ProcessFile runs every stage for one source file. The returned item holds
// the outcome either way; the error is non-nil when the file failed.
func (o *Orchestrator) ProcessFile(ctx context.Context, sourcePath string) (*Item, error) {
	item := &Item{
		SourcePath: sourcePath,
		RequestID:  uuid.NewString(),
		Status:     StatusPending,
		Artifacts:  ArtifactsFor(sourcePath, o.cfg.Paths.OutputDir, o.cfg.Paths.TempDir),
		StartedAt:  time.Now(),
	}

	ctx = services.WithFile(ctx, sourcePath)
	ctx = services.WithRequestID(ctx, item.RequestID)

	for _, stage := range o.stages() {
		if err := ctx.Err(); err != nil {
			item.markFailed(stage.name, err)
			item.FinishedAt = time.Now()
			o.cleanup(item)
			return item, err
		}

		stageCtx := services.WithStage(ctx, stage.name)
		stageLogger := logging.WithContext(stageCtx, o.logger)

		stageStart := time.Now()
		stageLogger.Info("stage started")
		if err := stage.run(stageCtx, item); err != nil {
			item.markFailed(stage.name, err)
			item.FinishedAt = time.Now()
			stageLogger.Error("stage failed",
				logging.Error(err),
				logging.Duration("elapsed", time.Since(stageStart)),
			)
			o.cleanup(item)
			return item, err
		}
		item.Status = stage.status
		stageLogger.Info("stage completed",
			logging.String("resolved_status", string(stage.status)),
			logging.Duration("elapsed", time.Since(stageStart)),
		)
	}

	item.Status = StatusCompleted
	item.FinishedAt = time.Now()
	o.cleanup(item)
	logging.WithContext(ctx, o.logger).Info("file completed",
		logging.Int("lines", item.TranscribeStats.Lines),
		logging.Int("error_segments", item.TranscribeStats.ErrorSegments),
		logging.Duration("elapsed", item.Elapsed()),
	)
	return item, nil
}

// validate rejects missing files and unsupported extensions, and probes the
// media duration when ffprobe is available.
func (o *Orchestrator) validate(ctx context.Context, item *Item) error {
	info, err := os.Stat(item.SourcePath)
	if err != nil {
		return services.Wrap(services.ErrNotFound, "validate", "stat input", "input file unavailable", err)
	}
	if info.IsDir() {
		return services.Wrap(services.ErrNotFound, "validate", "stat input", "input is a directory", nil)
	}
	if !media.IsSupported(item.SourcePath) {
		return services.Wrap(services.ErrUnsupportedFormat, "validate", "check extension",
			fmt.Sprintf("unsupported input format %q", filepath.Ext(item.SourcePath)), nil)
	}

	// Duration is informational. A missing ffprobe must not fail the file.
	if result, err := ffprobe.Inspect(ctx, o.cfg.FFprobeBinary(), item.SourcePath); err == nil {
		item.DurationSeconds = result.DurationSeconds()
	} else {
		logging.WithContext(ctx, o.logger).Warn("duration probe failed", logging.Error(err))
	}
	return nil
}

// extract converts the input to the canonical mono 16 kHz waveform, or
// passes a WAV source through untouched.
func (o *Orchestrator) extract(ctx context.Context, item *Item) error {
	if !media.NeedsExtraction(item.SourcePath) {
		item.AudioPath = item.SourcePath
		item.Artifacts.TempAudio = ""
		logging.WithContext(ctx, o.logger).Debug("input already canonical, skipping extraction")
		return nil
	}
	if err := o.extractor.Extract(ctx, item.SourcePath, item.Artifacts.TempAudio); err != nil {
		return err
	}
	item.AudioPath = item.Artifacts.TempAudio
	return nil
}

// diarize produces the speaker segments and sidecar, or reuses a valid
// sidecar when resuming.
func (o *Orchestrator) diarize(ctx context.Context, item *Item) error {
	logger := logging.WithContext(ctx, o.logger)

	if o.opts.Resume {
		segments, err := diarize.LoadSidecar(item.Artifacts.Sidecar)
		switch {
		case err == nil:
			item.Segments = segments
			item.DiarizeStats = diarize.Summarize(segments)
			item.ResumedFromSidecar = true
			logger.Info("reusing diarization sidecar",
				logging.Int("segments", len(segments)),
			)
			return nil
		case services.IsNotFound(err):
			// No sidecar yet, fall through to a fresh run.
		default:
			return err
		}
	}

	adapter := diarize.NewAdapter(o.diarizer, logging.WithContext(ctx, o.logger))
	segments, err := adapter.Diarize(ctx, item.AudioPath, item.Artifacts.Sidecar)
	if err != nil {
		return err
	}
	item.Segments = segments
	item.DiarizeStats = diarize.Summarize(segments)
	return nil
}

// transcribe writes the raw per-segment transcript.
func (o *Orchestrator) transcribe(ctx context.Context, item *Item) error {
	transcriber := transcribe.New(o.transcriber, o.cfg.Transcription.Language, logging.WithContext(ctx, o.logger))
	_, stats, err := transcriber.TranscribeFile(ctx, item.AudioPath, item.Segments, item.Artifacts.RawTranscript, transcribe.Options{
		MaxSegments: o.cfg.Pipeline.MaxSegments,
		Progress:    o.opts.Progress,
	})
	if err != nil {
		return err
	}
	item.TranscribeStats = stats
	return nil
}

// consolidate merges same-speaker runs into the cleaned transcript.
func (o *Orchestrator) consolidate(ctx context.Context, item *Item) error {
	stats, err := consolidate.File(item.Artifacts.RawTranscript, item.Artifacts.CleanTranscript, logging.WithContext(ctx, o.logger))
	if err != nil {
		return services.Wrap(services.ErrExternalTool, "consolidate", "merge transcript", "consolidation failed", err)
	}
	item.CleanStats = stats
	return nil
}

// cleanup removes the scratch waveform. Deletion failures are logged, never
// escalated.
func (o *Orchestrator) cleanup(item *Item) {
	if o.cfg.Pipeline.KeepTemp || item.Artifacts.TempAudio == "" {
		return
	}
	if err := os.Remove(item.Artifacts.TempAudio); err != nil && !os.IsNotExist(err) {
		o.logger.Warn("failed to remove temp audio",
			logging.String("path", item.Artifacts.TempAudio),
			logging.Error(err),
		)
	}
}
