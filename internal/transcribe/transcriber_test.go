package transcribe

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"voxscribe/internal/diarize"
	"voxscribe/internal/wave"
)

type scriptedEngine struct {
	texts  []string
	failOn map[int]error
	calls  int
	rates  []int
}

func (e *scriptedEngine) Transcribe(ctx context.Context, samples []float32, sampleRate int, language string) (string, error) {
	idx := e.calls
	e.calls++
	e.rates = append(e.rates, sampleRate)
	if err, ok := e.failOn[idx]; ok {
		return "", err
	}
	if idx < len(e.texts) {
		return e.texts[idx], nil
	}
	return fmt.Sprintf("segment %d", idx), nil
}

func testAudio(t *testing.T, rate int, seconds float64) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "audio.wav")
	samples := make([]float32, int(float64(rate)*seconds))
	if err := wave.WriteWAV(path, samples, rate); err != nil {
		t.Fatalf("write test audio: %v", err)
	}
	return path
}

func segmentsFor(speakers ...string) []diarize.Segment {
	segs := make([]diarize.Segment, len(speakers))
	for i, sp := range speakers {
		segs[i] = diarize.Segment{Start: float64(i), End: float64(i) + 0.9, Speaker: sp}
	}
	return segs
}

func TestTranscribeFileWritesLinesInOrder(t *testing.T) {
	audio := testAudio(t, EngineSampleRate, 4)
	engine := &scriptedEngine{texts: []string{" hello there ", "yes", "moving on"}}
	tr := New(engine, "en", nil)

	out := filepath.Join(t.TempDir(), "raw.txt")
	lines, stats, err := tr.TranscribeFile(context.Background(), audio, segmentsFor("A", "B", "A"), out, Options{})
	if err != nil {
		t.Fatalf("TranscribeFile: %v", err)
	}
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if lines[0].Text != "hello there" {
		t.Fatalf("expected trimmed engine text, got %q", lines[0].Text)
	}
	if lines[0].String() != "A | 00:00:00 | hello there" {
		t.Fatalf("unexpected line format %q", lines[0].String())
	}
	if stats.Lines != 3 || stats.ErrorSegments != 0 {
		t.Fatalf("unexpected stats %+v", stats)
	}
	if stats.Words != 2+1+2 {
		t.Fatalf("Words = %d, want 5", stats.Words)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read transcript: %v", err)
	}
	want := "A | 00:00:00 | hello there\nB | 00:00:01 | yes\nA | 00:00:02 | moving on\n"
	if string(data) != want {
		t.Fatalf("transcript mismatch:\n got %q\nwant %q", string(data), want)
	}
}

func TestPerSegmentFailureIsolation(t *testing.T) {
	audio := testAudio(t, EngineSampleRate, 4)
	engine := &scriptedEngine{
		texts:  []string{"first", "unused", "third"},
		failOn: map[int]error{1: errors.New("engine rejected input")},
	}
	tr := New(engine, "en", nil)

	out := filepath.Join(t.TempDir(), "raw.txt")
	lines, stats, err := tr.TranscribeFile(context.Background(), audio, segmentsFor("A", "B", "C"), out, Options{})
	if err != nil {
		t.Fatalf("TranscribeFile: %v", err)
	}
	if len(lines) != 3 {
		t.Fatalf("expected exactly 3 lines, got %d", len(lines))
	}
	if lines[1].Text != ErrorSentinel {
		t.Fatalf("line 2 text = %q, want sentinel", lines[1].Text)
	}
	if lines[2].Text != "third" {
		t.Fatalf("segment after failure not processed: %q", lines[2].Text)
	}
	if stats.ErrorSegments != 1 {
		t.Fatalf("ErrorSegments = %d, want 1", stats.ErrorSegments)
	}
	if engine.calls != 3 {
		t.Fatalf("engine calls = %d, want 3", engine.calls)
	}
}

func TestMaxSegmentsCapsSilently(t *testing.T) {
	audio := testAudio(t, EngineSampleRate, 6)
	engine := &scriptedEngine{}
	tr := New(engine, "en", nil)

	out := filepath.Join(t.TempDir(), "raw.txt")
	lines, _, err := tr.TranscribeFile(context.Background(), audio, segmentsFor("A", "B", "C", "D", "E"), out, Options{MaxSegments: 2})
	if err != nil {
		t.Fatalf("TranscribeFile: %v", err)
	}
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines under cap, got %d", len(lines))
	}
	if engine.calls != 2 {
		t.Fatalf("engine calls = %d, want 2", engine.calls)
	}
	data, _ := os.ReadFile(out)
	if got := strings.Count(string(data), "\n"); got != 2 {
		t.Fatalf("transcript has %d lines, want 2", got)
	}
}

func TestResamplesToEngineRate(t *testing.T) {
	audio := testAudio(t, 44100, 2)
	engine := &scriptedEngine{}
	tr := New(engine, "en", nil)

	out := filepath.Join(t.TempDir(), "raw.txt")
	if _, _, err := tr.TranscribeFile(context.Background(), audio, segmentsFor("A"), out, Options{}); err != nil {
		t.Fatalf("TranscribeFile: %v", err)
	}
	if len(engine.rates) != 1 || engine.rates[0] != EngineSampleRate {
		t.Fatalf("engine received rates %v, want [%d]", engine.rates, EngineSampleRate)
	}
}

func TestCancellationAborts(t *testing.T) {
	audio := testAudio(t, EngineSampleRate, 4)
	engine := &scriptedEngine{}
	tr := New(engine, "en", nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	out := filepath.Join(t.TempDir(), "raw.txt")
	_, _, err := tr.TranscribeFile(ctx, audio, segmentsFor("A", "B"), out, Options{})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestMissingWaveformIsFatal(t *testing.T) {
	tr := New(&scriptedEngine{}, "en", nil)
	out := filepath.Join(t.TempDir(), "raw.txt")
	_, _, err := tr.TranscribeFile(context.Background(), filepath.Join(t.TempDir(), "absent.wav"), segmentsFor("A"), out, Options{})
	if err == nil {
		t.Fatal("expected error for missing waveform")
	}
}
