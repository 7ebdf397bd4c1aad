// Package pipeline orchestrates the transcription stages for single files
// and directory batches: validation, waveform extraction, diarization,
// per-segment transcription, and consolidation.
package pipeline
