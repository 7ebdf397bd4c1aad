// Package logging provides the slog construction and helper layer shared by
// the CLI and the pipeline.
//
// It supports a human-oriented console format and a machine-oriented JSON
// format, writes to any combination of stdout, stderr, and files, and defines
// the standardized field keys (component, file, stage, correlation_id) that
// stage loggers attach via context.
package logging
