package transcribe

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/schollz/progressbar/v3"

	"voxscribe/internal/diarize"
	"voxscribe/internal/logging"
	"voxscribe/internal/wave"
)

// ErrorSentinel is written as a line's text when the engine fails for that
// segment. It is a valid terminal value, not a pipeline abort.
const ErrorSentinel = "[TRANSCRIPTION_ERROR]"

// EngineSampleRate is the sample rate the speech-to-text engine expects.
const EngineSampleRate = 16000

// Engine is the narrow interface the transcriber needs from a speech-to-text
// backend. Samples are normalized mono float32 in [-1, 1].
type Engine interface {
	Transcribe(ctx context.Context, samples []float32, sampleRate int, language string) (string, error)
}

// Line is one raw transcript entry, produced per diarization segment in
// segment order.
type Line struct {
	Speaker   string
	Timestamp string
	Text      string
}

// String renders the canonical wire form "<speaker> | <HH:MM:SS> | <text>".
func (l Line) String() string {
	return l.Speaker + " | " + l.Timestamp + " | " + l.Text
}

// Stats summarizes one transcription pass.
type Stats struct {
	Lines         int
	Words         int
	ErrorSegments int
}

// Options adjusts a single transcription run.
type Options struct {
	// MaxSegments caps how many segments are processed. Zero means all.
	// Segments past the cap are silently omitted, not errored.
	MaxSegments int
	// Progress, when non-nil, receives a progress bar over segments.
	Progress io.Writer
}

// Transcriber slices the waveform per diarization segment and invokes the
// speech-to-text engine on each slice, writing raw transcript lines
// incrementally so partial output survives a fatal error.
type Transcriber struct {
	engine   Engine
	language string
	logger   *slog.Logger
}

// New creates a Transcriber with a fixed language hint.
func New(engine Engine, language string, logger *slog.Logger) *Transcriber {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Transcriber{engine: engine, language: language, logger: logger}
}

// TranscribeFile processes segments in order against the waveform at
// audioPath and writes one line per processed segment to outputPath.
// Per-segment engine failures become ErrorSentinel lines and never abort the
// file; only waveform loading, output I/O, and context cancellation are
// fatal.
func (t *Transcriber) TranscribeFile(ctx context.Context, audioPath string, segments []diarize.Segment, outputPath string, opts Options) ([]Line, Stats, error) {
	var stats Stats

	wf, err := wave.Load(audioPath)
	if err != nil {
		return nil, stats, fmt.Errorf("load waveform: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return nil, stats, fmt.Errorf("ensure transcript dir: %w", err)
	}
	out, err := os.Create(outputPath)
	if err != nil {
		return nil, stats, fmt.Errorf("create transcript: %w", err)
	}
	defer out.Close()

	total := len(segments)
	if opts.MaxSegments > 0 && opts.MaxSegments < total {
		total = opts.MaxSegments
	}

	var bar *progressbar.ProgressBar
	if opts.Progress != nil {
		bar = progressbar.NewOptions(total,
			progressbar.OptionSetDescription("transcribing"),
			progressbar.OptionSetWriter(opts.Progress),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)
	}

	lines := make([]Line, 0, total)
	for i, seg := range segments[:total] {
		if err := ctx.Err(); err != nil {
			return lines, stats, err
		}

		line := Line{
			Speaker:   seg.Speaker,
			Timestamp: FormatTimestamp(seg.Start),
			Text:      t.transcribeSegment(ctx, wf, seg, i, &stats),
		}
		if _, err := fmt.Fprintf(out, "%s\n", line.String()); err != nil {
			return lines, stats, fmt.Errorf("write transcript line %d: %w", i, err)
		}
		lines = append(lines, line)
		stats.Lines++
		stats.Words += len(strings.Fields(line.Text))
		if bar != nil {
			_ = bar.Add(1)
		}
	}

	if err := out.Close(); err != nil {
		return lines, stats, fmt.Errorf("finalize transcript: %w", err)
	}
	return lines, stats, nil
}

// transcribeSegment prepares one slice for the engine and returns its text,
// substituting the error sentinel on engine failure.
func (t *Transcriber) transcribeSegment(ctx context.Context, wf *wave.Waveform, seg diarize.Segment, index int, stats *Stats) string {
	samples := wf.Slice(seg.Start, seg.End)
	if wf.SampleRate != EngineSampleRate {
		samples = wave.Resample(samples, wf.SampleRate, EngineSampleRate)
	}
	samples = wave.Clamp(samples)

	text, err := t.engine.Transcribe(ctx, samples, EngineSampleRate, t.language)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			// Let the loop's context check surface the abort; still emit a
			// sentinel so the segment accounting stays one line per segment.
			return ErrorSentinel
		}
		stats.ErrorSegments++
		t.logger.Warn("segment transcription failed",
			logging.Int("segment", index),
			logging.String("speaker", seg.Speaker),
			logging.Float64("start", seg.Start),
			logging.Float64("end", seg.End),
			logging.Error(err),
		)
		return ErrorSentinel
	}
	return strings.TrimSpace(text)
}
