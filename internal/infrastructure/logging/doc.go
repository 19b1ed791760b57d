// Package logging provides structured logging for the Gray Logic access controller.
//
// This package wraps Go's standard log/slog package to provide
// consistent, structured logging across the controller.
//
// # Features
//
//   - JSON output for production (machine-parsable)
//   - Text output for development (human-readable)
//   - Default fields (service, version) on all log entries
//   - Level-based filtering (debug, info, warn, error)
//
// # Configuration
//
//	logging:
//	  level: "info"      # debug, info, warn, error
//	  format: "json"     # json, text
//	  output: "stderr"   # stdout, stderr, discard
//
// # Security
//
// Never log password digits. UIDs may be logged; they are printed on the
// tag and on the enrolment screen anyway.
package logging
