// Package config loads, normalizes, and validates voxscribe configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// HF_TOKEN. The Config type centralizes every knob the CLI and pipeline need
// so output directories, engine settings, and log options are discovered in
// one pass.
package config
