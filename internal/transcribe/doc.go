// Package transcribe turns diarization segments into raw transcript lines.
//
// Each segment's window is sliced from the loaded waveform, resampled to the
// engine rate when needed, and handed to the speech-to-text engine with a
// fixed language hint. Failures are contained per segment: the line is
// written with a sentinel marker and processing continues, so the raw
// transcript always carries one line per processed segment.
package transcribe
