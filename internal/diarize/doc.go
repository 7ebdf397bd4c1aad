// Package diarize wraps the external speaker diarization engine behind a
// narrow interface and persists its ordered segment output as a JSON sidecar
// next to the other transcript artifacts.
//
// The sidecar is written verbatim in engine order and doubles as a resume
// point: a later run can load it and start at the transcription stage
// without touching the engine again.
package diarize
