// Package services defines the shared error taxonomy for pipeline stages and
// the context annotations used to thread file, stage, and correlation
// identifiers into structured logs.
//
// Stage implementations wrap failures with one of the exported sentinel
// errors so the orchestrator can classify them: extraction, diarization, and
// sidecar errors are fatal to the current file, while segment transcription
// errors are recovered in place and never abort a file.
package services
