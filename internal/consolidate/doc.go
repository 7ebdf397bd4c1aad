// Package consolidate merges consecutive same-speaker transcript lines
// into single entries, producing the cleaned transcript.
package consolidate
