// Package pipeline runs the five stages of a wavscribe invocation.
//
// A Runner loads <input_path>/<lang>.wav, applies the speed and volume
// transform, saves <output_path>/<key>.wav, transcribes the original
// recording and writes <output_path>/<key>.json. The key is captured once from
// the Runner's clock before any stage runs, so both outputs share it.
// Writes into the output directory happen under an advisory lock held in the
// system temp directory; a second run targeting the same directory fails
// instead of interleaving.
//
// Stages log through a component logger tagged with the stage name and the
// run's correlation ID. Only the two result lines go to stdout.
package pipeline
