// Package services defines shared utilities consumed by the MakeMKV client,
// the scan store and the CLI.
//
// Key responsibilities:
//   - Context helpers that stamp device names, scan IDs, and correlation
//     identifiers for logging.
//   - Structured error markers plus the Wrap helper that translate failures
//     into consistent CLI exit codes.
//
// Use these helpers when wiring new commands so operational behaviour (error
// handling, observability) stays uniform across the tool.
package services
