// Package media normalizes input containers for the transcription pipeline.
//
// It knows which extensions are processable, which require ffmpeg conversion
// into the canonical mono 16 kHz PCM waveform, and performs that conversion
// with captured diagnostics on failure.
package media
