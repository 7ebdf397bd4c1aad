package diarize

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"voxscribe/internal/services"
)

// WriteSidecar serializes segments to a JSON sidecar file in insertion
// order. The file is the durable record of the diarization stage; re-runs
// overwrite it in place.
func WriteSidecar(path string, segments []Segment) error {
	if segments == nil {
		segments = []Segment{}
	}
	data, err := json.MarshalIndent(segments, "", "    ")
	if err != nil {
		return fmt.Errorf("encode sidecar: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("ensure sidecar dir: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write sidecar: %w", err)
	}
	return nil
}

// LoadSidecar reads a previously written sidecar so the pipeline can resume
// from the transcription stage without re-running the engine. Invalid JSON
// or schema maps to services.ErrMalformedSidecar; a missing file maps to
// services.ErrNotFound.
func LoadSidecar(path string) ([]Segment, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, services.Wrap(services.ErrNotFound, "diarizing", "load sidecar", path, nil)
		}
		return nil, fmt.Errorf("read sidecar: %w", err)
	}

	var segments []Segment
	if err := json.Unmarshal(data, &segments); err != nil {
		return nil, services.Wrap(services.ErrMalformedSidecar, "diarizing", "parse sidecar", "", err)
	}
	for i, seg := range segments {
		if err := validateSegment(seg); err != nil {
			return nil, services.Wrap(services.ErrMalformedSidecar, "diarizing", "validate sidecar",
				fmt.Sprintf("segment %d", i), err)
		}
	}
	return segments, nil
}

func validateSegment(seg Segment) error {
	if strings.TrimSpace(seg.Speaker) == "" {
		return errors.New("empty speaker label")
	}
	if seg.End <= seg.Start {
		return fmt.Errorf("end %.3f not after start %.3f", seg.End, seg.Start)
	}
	if seg.Start < 0 {
		return fmt.Errorf("negative start %.3f", seg.Start)
	}
	return nil
}
