package pipeline

import (
	"strings"
	"time"

	"voxscribe/internal/consolidate"
	"voxscribe/internal/diarize"
	"voxscribe/internal/transcribe"
)

// Status tracks how far a file has progressed through the pipeline.
type Status string

const (
	StatusPending     Status = "pending"
	StatusValidated   Status = "validated"
	StatusExtracted   Status = "extracted"
	StatusDiarized    Status = "diarized"
	StatusTranscribed Status = "transcribed"
	StatusCleaned     Status = "cleaned"
	StatusCompleted   Status = "completed"
	StatusFailed      Status = "failed"
)

// Item carries one source file through the pipeline stages.
type Item struct {
	SourcePath string
	RequestID  string
	Status     Status

	Artifacts Artifacts

	// AudioPath is the canonical waveform the later stages consume. It is
	// the source itself when no extraction was needed.
	AudioPath string

	// DurationSeconds is the probed media duration, zero when unknown.
	DurationSeconds float64

	Segments        []diarize.Segment
	DiarizeStats    diarize.Stats
	TranscribeStats transcribe.Stats
	CleanStats      consolidate.Stats

	// ResumedFromSidecar is set when diarization was skipped because a
	// valid sidecar already existed.
	ResumedFromSidecar bool

	StartedAt  time.Time
	FinishedAt time.Time

	FailedStage  string
	ErrorMessage string
}

// Elapsed returns the wall-clock processing time for the item.
func (i *Item) Elapsed() time.Duration {
	if i.StartedAt.IsZero() || i.FinishedAt.IsZero() {
		return 0
	}
	return i.FinishedAt.Sub(i.StartedAt)
}

// markFailed records the failing stage and error text.
func (i *Item) markFailed(stage string, err error) {
	i.Status = StatusFailed
	i.FailedStage = stage
	if err != nil {
		i.ErrorMessage = strings.TrimSpace(err.Error())
	}
}

// BatchResult aggregates the outcome of a directory run.
type BatchResult struct {
	Total     int
	Succeeded int
	Failed    int
	Items     []*Item
}

// FailedFiles lists the source paths of items that did not complete.
func (r BatchResult) FailedFiles() []string {
	var failed []string
	for _, item := range r.Items {
		if item.Status != StatusCompleted {
			failed = append(failed, item.SourcePath)
		}
	}
	return failed
}
