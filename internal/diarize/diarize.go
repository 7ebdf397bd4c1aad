package diarize

import (
	"context"
	"log/slog"
	"sort"

	"voxscribe/internal/logging"
	"voxscribe/internal/services"
)

// Segment is one speaker-labeled time interval produced by the diarization
// engine. Segments are ordered ascending by Start and immutable once
// produced. Speaker labels are opaque and unique per detected voice within
// one file only.
type Segment struct {
	Start   float64 `json:"start"`
	End     float64 `json:"end"`
	Speaker string  `json:"speaker"`
}

// Engine is the narrow interface the adapter needs from a diarization
// backend. Implementations own model lifecycle; constructing an engine may
// load models and must happen at most once per process.
type Engine interface {
	Segment(ctx context.Context, audioPath string) ([]Segment, error)
}

// Adapter wraps a diarization engine and persists its output as a sidecar
// artifact so later runs can resume from the transcription stage.
type Adapter struct {
	engine Engine
	logger *slog.Logger
}

// NewAdapter creates an Adapter around the provided engine.
func NewAdapter(engine Engine, logger *slog.Logger) *Adapter {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Adapter{engine: engine, logger: logger}
}

// Diarize invokes the engine exactly once for the given audio file and
// writes the resulting segments verbatim to sidecarPath. Engine failure maps
// to services.ErrDiarization and aborts the file's pipeline.
func (a *Adapter) Diarize(ctx context.Context, audioPath, sidecarPath string) ([]Segment, error) {
	segments, err := a.engine.Segment(ctx, audioPath)
	if err != nil {
		a.logger.Error("diarization engine call failed",
			logging.String("audio", audioPath),
			logging.Error(err),
		)
		return nil, services.Wrap(services.ErrDiarization, "diarizing", "engine", "", err)
	}

	summary := Summarize(segments)
	a.logger.Info("diarization complete",
		logging.Int("segments", summary.Segments),
		logging.Int("speakers", summary.Speakers),
		logging.Float64("speech_seconds", summary.SpeechSeconds),
	)

	if err := WriteSidecar(sidecarPath, segments); err != nil {
		return nil, services.Wrap(services.ErrDiarization, "diarizing", "persist sidecar", "", err)
	}
	return segments, nil
}

// Stats summarizes a diarization result.
type Stats struct {
	Segments      int
	Speakers      int
	SpeakerLabels []string
	SpeechSeconds float64
}

// Summarize computes aggregate statistics over a segment list.
func Summarize(segments []Segment) Stats {
	stats := Stats{Segments: len(segments)}
	seen := make(map[string]struct{})
	for _, seg := range segments {
		stats.SpeechSeconds += seg.End - seg.Start
		if _, ok := seen[seg.Speaker]; !ok {
			seen[seg.Speaker] = struct{}{}
			stats.SpeakerLabels = append(stats.SpeakerLabels, seg.Speaker)
		}
	}
	stats.Speakers = len(seen)
	sort.Strings(stats.SpeakerLabels)
	return stats
}
