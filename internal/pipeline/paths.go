package pipeline

import (
	"path/filepath"
	"strings"
)

// Artifacts names every file the pipeline produces for one source.
type Artifacts struct {
	// Sidecar is the diarization segment JSON next to the transcripts.
	Sidecar string
	// RawTranscript is the per-segment transcript.
	RawTranscript string
	// CleanTranscript is the consolidated transcript.
	CleanTranscript string
	// TempAudio is the canonical waveform in the scratch directory. Empty
	// when the source is used directly.
	TempAudio string
}

// Stem returns the source filename without its extension.
func Stem(sourcePath string) string {
	base := filepath.Base(sourcePath)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// ArtifactsFor derives the artifact layout for one source file.
func ArtifactsFor(sourcePath, outputDir, tempDir string) Artifacts {
	stem := Stem(sourcePath)
	return Artifacts{
		Sidecar:         filepath.Join(outputDir, stem+".json"),
		RawTranscript:   filepath.Join(outputDir, stem+".txt"),
		CleanTranscript: filepath.Join(outputDir, stem+"_cleaned.txt"),
		TempAudio:       filepath.Join(tempDir, stem+".wav"),
	}
}
