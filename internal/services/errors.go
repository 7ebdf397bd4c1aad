package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrExtraction marks a format-conversion subprocess failure. Fatal to the file.
	ErrExtraction = errors.New("extraction error")
	// ErrDiarization marks a diarization engine call failure. Fatal to the file.
	ErrDiarization = errors.New("diarization error")
	// ErrSegmentTranscription marks a per-segment engine failure. Recovered
	// locally with a sentinel transcript line; never escalates past the
	// transcriber.
	ErrSegmentTranscription = errors.New("segment transcription error")
	// ErrUnsupportedFormat marks a pre-flight rejection of an input extension.
	ErrUnsupportedFormat = errors.New("unsupported format")
	// ErrNotFound marks a missing input file or artifact.
	ErrNotFound = errors.New("not found")
	// ErrMalformedSidecar marks invalid JSON or schema in a diarization sidecar.
	ErrMalformedSidecar = errors.New("malformed sidecar")
	// ErrConfiguration marks unusable configuration or engine setup.
	ErrConfiguration = errors.New("configuration error")
	// ErrExternalTool marks a generic external tool failure.
	ErrExternalTool = errors.New("external tool error")
)

// Wrap builds an error message that includes stage context while tagging it
// with the provided marker for later classification. The marker should be one
// of the exported sentinel errors above.
func Wrap(marker error, stage, operation, message string, err error) error {
	detail := buildDetail(stage, operation, message)
	if marker == nil {
		marker = ErrExternalTool
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// IsNotFound reports whether err is tagged with ErrNotFound.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsFileFatal reports whether an error should terminate the current file's
// pipeline. Segment-local transcription failures are the only recoverable kind.
func IsFileFatal(err error) bool {
	if err == nil {
		return false
	}
	return !errors.Is(err, ErrSegmentTranscription)
}

func buildDetail(stage, operation, message string) string {
	parts := make([]string, 0, 3)
	if stage = strings.TrimSpace(stage); stage != "" {
		parts = append(parts, stage)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
