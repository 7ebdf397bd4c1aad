package whisperx

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestBuildArgsCPU(t *testing.T) {
	svc := NewService(Config{Model: "small", HFToken: "hf_abc"}, "en")
	args := svc.buildArgs("/tmp/audio.wav", "/tmp/out")
	joined := strings.Join(args, " ")

	for _, want := range []string{
		"--index-url " + PypiIndexURL,
		"whisperx /tmp/audio.wav",
		"--model small",
		"--diarize",
		"--output_format json",
		"--hf_token hf_abc",
		"--language en",
		"--device cpu --compute_type float32",
	} {
		if !strings.Contains(joined, want) {
			t.Errorf("args missing %q:\n%s", want, joined)
		}
	}
	if strings.Contains(joined, "--extra-index-url") {
		t.Error("CPU run should not reference the CUDA index")
	}
}

func TestBuildArgsCUDA(t *testing.T) {
	svc := NewService(Config{CUDAEnabled: true}, "")
	joined := strings.Join(svc.buildArgs("in.wav", "out"), " ")
	if !strings.Contains(joined, "--index-url "+CUDAIndexURL) {
		t.Error("CUDA run should use the CUDA index URL")
	}
	if !strings.Contains(joined, "--device cuda") {
		t.Error("CUDA run should select the cuda device")
	}
	if !strings.Contains(joined, "--model "+DefaultModel) {
		t.Error("empty model should fall back to the default")
	}
	if strings.Contains(joined, "--language") {
		t.Error("empty language should omit the language flag")
	}
}

func TestSegmentParsesOutput(t *testing.T) {
	svc := NewService(Config{}, "en")
	svc.WithCommandRunner(func(ctx context.Context, name string, args ...string) error {
		if name != UVXCommand {
			t.Fatalf("unexpected command %q", name)
		}
		outputDir := flagValue(t, args, "--output_dir")
		out := map[string]any{
			"segments": []map[string]any{
				{"start": 0.0, "end": 4.5, "speaker": "SPEAKER_00"},
				{"start": 4.5, "end": 9.0, "speaker": "SPEAKER_01"},
				{"start": 9.0, "end": 9.0, "speaker": "SPEAKER_00"},
				{"start": 9.0, "end": 12.0},
			},
		}
		data, err := json.Marshal(out)
		if err != nil {
			t.Fatal(err)
		}
		return os.WriteFile(filepath.Join(outputDir, "meeting.json"), data, 0o644)
	})

	segments, err := svc.Segment(context.Background(), "/recordings/meeting.wav")
	if err != nil {
		t.Fatalf("Segment failed: %v", err)
	}
	if len(segments) != 3 {
		t.Fatalf("expected 3 segments (zero-length dropped), got %d", len(segments))
	}
	if segments[0].Speaker != "SPEAKER_00" || segments[1].Speaker != "SPEAKER_01" {
		t.Fatalf("unexpected speakers: %+v", segments)
	}
	if segments[2].Speaker != UnknownSpeaker {
		t.Fatalf("missing speaker should map to %q, got %q", UnknownSpeaker, segments[2].Speaker)
	}
}

func TestSegmentCommandFailure(t *testing.T) {
	svc := NewService(Config{}, "en")
	svc.WithCommandRunner(func(ctx context.Context, name string, args ...string) error {
		return os.ErrPermission
	})
	if _, err := svc.Segment(context.Background(), "/recordings/meeting.wav"); err == nil {
		t.Fatal("expected error when whisperx fails")
	}
}

func TestSegmentRequiresPath(t *testing.T) {
	svc := NewService(Config{}, "en")
	if _, err := svc.Segment(context.Background(), ""); err == nil {
		t.Fatal("expected error for empty audio path")
	}
}

func flagValue(t *testing.T, args []string, flag string) string {
	t.Helper()
	for i, arg := range args {
		if arg == flag && i+1 < len(args) {
			return args[i+1]
		}
	}
	t.Fatalf("flag %s not found in %v", flag, args)
	return ""
}
