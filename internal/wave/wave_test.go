package wave

import (
	"math"
	"os"
	"path/filepath"
	"testing"
)

func sine(freq float64, rate, n int) []float32 {
	samples := make([]float32, n)
	for i := range samples {
		samples[i] = float32(0.5 * math.Sin(2*math.Pi*freq*float64(i)/float64(rate)))
	}
	return samples
}

func TestWriteAndLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tone.wav")
	rate := 16000
	original := sine(440, rate, rate/2)

	if err := WriteWAV(path, original, rate); err != nil {
		t.Fatalf("WriteWAV: %v", err)
	}

	wf, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if wf.SampleRate != rate {
		t.Fatalf("SampleRate = %d, want %d", wf.SampleRate, rate)
	}
	if len(wf.Samples) != len(original) {
		t.Fatalf("sample count = %d, want %d", len(wf.Samples), len(original))
	}
	for i := 0; i < len(original); i += 1000 {
		if diff := math.Abs(float64(wf.Samples[i] - original[i])); diff > 0.001 {
			t.Fatalf("sample %d differs by %f", i, diff)
		}
	}
	if got, want := wf.Duration(), 0.5; math.Abs(got-want) > 1e-9 {
		t.Fatalf("Duration = %v, want %v", got, want)
	}
}

func TestLoadRejectsNonWAV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "not.wav")
	if err := os.WriteFile(path, []byte("plain text, not audio"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestSliceTruncatesBounds(t *testing.T) {
	wf := &Waveform{SampleRate: 10, Samples: make([]float32, 100)}
	for i := range wf.Samples {
		wf.Samples[i] = float32(i)
	}

	// 0.25s at 10 Hz floors to sample index 2; 0.59s floors to 5.
	got := wf.Slice(0.25, 0.59)
	if len(got) != 3 {
		t.Fatalf("slice length = %d, want 3", len(got))
	}
	if got[0] != 2 || got[2] != 4 {
		t.Fatalf("slice bounds wrong: first=%v last=%v", got[0], got[2])
	}
}

func TestSliceClampsAndRejectsInverted(t *testing.T) {
	wf := &Waveform{SampleRate: 10, Samples: make([]float32, 20)}
	if got := wf.Slice(-1, 100); len(got) != 20 {
		t.Fatalf("expected clamp to full waveform, got %d samples", len(got))
	}
	if got := wf.Slice(1.5, 1.0); got != nil {
		t.Fatalf("expected nil for inverted window, got %d samples", len(got))
	}
	if got := wf.Slice(5, 6); got != nil {
		t.Fatalf("expected nil past end of waveform, got %d samples", len(got))
	}
}

func TestResample(t *testing.T) {
	in := sine(200, 44100, 44100)
	out := Resample(in, 44100, 16000)
	want := int(float64(len(in)) * 16000 / 44100)
	if diff := len(out) - want; diff < -1 || diff > 1 {
		t.Fatalf("resampled length = %d, want about %d", len(out), want)
	}
	for _, s := range out {
		if s > 1 || s < -1 {
			t.Fatalf("sample out of range: %v", s)
		}
	}
}

func TestResampleIdentity(t *testing.T) {
	in := []float32{0.1, 0.2, 0.3}
	out := Resample(in, 16000, 16000)
	if &out[0] != &in[0] {
		t.Fatal("expected identical rates to return input unchanged")
	}
}
