// Package whisper shells out to whisper-cli to transcribe individual
// audio segments handed over as raw samples.
package whisper
