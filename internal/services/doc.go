// Package services defines shared utilities consumed by the pipeline stages
// and the CLI.
//
// Key responsibilities:
//   - Context helpers that stamp stage names and run correlation identifiers
//     for logging.
//   - Structured error markers plus the Wrap helper that classify failures
//     (unreadable audio, bad volume, bad speed scale, write, recognition) and
//     translate them into process exit codes.
//
// Use these helpers when wiring new stage logic so error handling and
// observability stay uniform across the pipeline.
package services
