// Package config loads, normalizes, and validates wavscribe configuration.
//
// It supplies the run defaults (lang, speed scale, volume, input and output
// directories), reads an optional TOML file, honours environment fallbacks
// such as GOOGLE_SPEECH_API_KEY and OPENAI_API_KEY, and lets the CLI layer
// explicit flags on top through Override functions.
//
// Always obtain settings through this package so stages receive trimmed
// values and validation failures carry the right error marker.
package config
