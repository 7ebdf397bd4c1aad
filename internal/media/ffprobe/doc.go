// Package ffprobe wraps the ffprobe executable to inspect media containers
// before processing, primarily for duration and audio stream checks.
package ffprobe
