// Package wave decodes, slices, and resamples PCM waveforms for the
// segment transcriber. Waveforms are held as normalized mono float32 samples
// at the file's native rate; segment windows convert seconds to sample
// indices by truncation and are resampled to the engine rate on demand.
package wave
