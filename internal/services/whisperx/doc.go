// Package whisperx shells out to WhisperX (via uvx) to produce
// speaker-attributed diarization segments for an audio file.
package whisperx
