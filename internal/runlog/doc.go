// Package runlog persists the per-run JSON record: the run options, the
// resolved input file and the recognized text.
package runlog
