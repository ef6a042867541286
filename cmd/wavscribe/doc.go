// Package main hosts the wavscribe CLI entrypoint and command graph.
//
// The root command runs the transform-and-transcribe pipeline once; the
// config and check subcommands scaffold configuration and report readiness.
// Flags passed explicitly override the config file, which overrides the
// built-in defaults. Errors map to exit status 2 for invalid invocations and
// 1 for failures during a run.
package main
