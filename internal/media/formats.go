package media

import (
	"path/filepath"
	"sort"
	"strings"
)

// Video containers always require demuxing before the audio engines can use
// them. Compressed audio containers also go through ffmpeg because the
// waveform loader only reads PCM WAV.
var videoExtensions = map[string]struct{}{
	".mp4":  {},
	".mov":  {},
	".avi":  {},
	".mkv":  {},
	".webm": {},
}

var audioExtensions = map[string]struct{}{
	".wav":  {},
	".mp3":  {},
	".flac": {},
	".m4a":  {},
	".ogg":  {},
}

func normalizeExt(path string) string {
	return strings.ToLower(filepath.Ext(path))
}

// IsSupported reports whether the file extension belongs to a processable
// audio or video container.
func IsSupported(path string) bool {
	ext := normalizeExt(path)
	if _, ok := videoExtensions[ext]; ok {
		return true
	}
	_, ok := audioExtensions[ext]
	return ok
}

// IsVideo reports whether the extension names a video container.
func IsVideo(path string) bool {
	_, ok := videoExtensions[normalizeExt(path)]
	return ok
}

// NeedsExtraction reports whether the input must be converted to the
// canonical waveform before slicing. PCM WAV passes through untouched; the
// segment slicer resamples it on its own.
func NeedsExtraction(path string) bool {
	return normalizeExt(path) != ".wav"
}

// SupportedExtensions returns the sorted list of recognized extensions.
func SupportedExtensions() []string {
	exts := make([]string, 0, len(videoExtensions)+len(audioExtensions))
	for ext := range videoExtensions {
		exts = append(exts, ext)
	}
	for ext := range audioExtensions {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}
