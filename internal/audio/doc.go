// Package audio loads, transforms, and saves PCM WAV audio.
//
// Signal is an immutable value: every transformation returns a new Signal.
// Speed changes reinterpret the samples at a scaled frame rate and resample
// back to the original rate, so pitch and duration move together. Volume
// changes are decibel gains with clipping at the sample range.
package audio
