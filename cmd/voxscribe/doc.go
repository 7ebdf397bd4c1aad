// Command voxscribe is the command-line interface for the transcription
// pipeline: single-file and batch processing plus configuration utilities.
package main
