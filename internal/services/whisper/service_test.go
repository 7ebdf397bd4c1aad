package whisper

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"voxscribe/internal/wave"
)

func TestTranscribeRunsBinary(t *testing.T) {
	model := filepath.Join(t.TempDir(), "ggml-large-v3.bin")
	if err := os.WriteFile(model, []byte("model"), 0o644); err != nil {
		t.Fatal(err)
	}

	svc := NewService(Config{Binary: "whisper-cli", ModelPath: model})
	var gotArgs []string
	svc.WithCommandRunner(func(ctx context.Context, name string, args ...string) ([]byte, error) {
		if name != "whisper-cli" {
			t.Fatalf("unexpected binary %q", name)
		}
		gotArgs = args

		// The segment handed to the binary must be a decodable WAV with
		// the samples we provided.
		segmentPath := flagValue(t, args, "-f")
		wf, err := wave.Load(segmentPath)
		if err != nil {
			t.Fatalf("segment not a valid WAV: %v", err)
		}
		if wf.SampleRate != 16000 || len(wf.Samples) != 160 {
			t.Fatalf("segment shape wrong: rate=%d samples=%d", wf.SampleRate, len(wf.Samples))
		}
		return []byte("  hello world \n"), nil
	})

	text, err := svc.Transcribe(context.Background(), make([]float32, 160), 16000, "en")
	if err != nil {
		t.Fatalf("Transcribe failed: %v", err)
	}
	if text != "hello world" {
		t.Fatalf("expected trimmed transcript, got %q", text)
	}

	joined := strings.Join(gotArgs, " ")
	if !strings.Contains(joined, "-m "+model) {
		t.Errorf("args missing model path: %s", joined)
	}
	if !strings.Contains(joined, "--no-timestamps") {
		t.Errorf("args missing --no-timestamps: %s", joined)
	}
	if !strings.Contains(joined, "-l en") {
		t.Errorf("args missing language: %s", joined)
	}
}

func TestTranscribeEmptySamples(t *testing.T) {
	svc := NewService(Config{})
	svc.WithCommandRunner(func(ctx context.Context, name string, args ...string) ([]byte, error) {
		t.Fatal("binary should not run for empty samples")
		return nil, nil
	})
	text, err := svc.Transcribe(context.Background(), nil, 16000, "en")
	if err != nil || text != "" {
		t.Fatalf("expected empty text without error, got %q, %v", text, err)
	}
}

func TestTranscribeCommandFailure(t *testing.T) {
	svc := NewService(Config{})
	svc.WithCommandRunner(func(ctx context.Context, name string, args ...string) ([]byte, error) {
		return nil, errors.New("core dumped")
	})
	if _, err := svc.Transcribe(context.Background(), make([]float32, 16), 16000, "en"); err == nil {
		t.Fatal("expected error when whisper-cli fails")
	}
}

func TestCheckMissingModel(t *testing.T) {
	svc := NewService(Config{ModelPath: filepath.Join(t.TempDir(), "missing.bin")})
	svc.WithCommandRunner(func(ctx context.Context, name string, args ...string) ([]byte, error) {
		return nil, nil
	})
	if err := svc.Check(context.Background()); err == nil {
		t.Fatal("expected error for missing model file")
	}
}

func TestNewServiceDefaultBinary(t *testing.T) {
	svc := NewService(Config{})
	if svc.cfg.Binary != DefaultBinary {
		t.Fatalf("expected default binary %q, got %q", DefaultBinary, svc.cfg.Binary)
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
