// Package recognition sends recorded speech to a remote recognition service.
//
// Recognizer is the seam the pipeline depends on. Two HTTP implementations
// are provided: the Google Web Speech API v2 (mono 16-bit PCM upload) and any
// OpenAI-compatible /audio/transcriptions server (multipart WAV upload).
// Requests are made once; every failure carries the recognition service
// error marker.
package recognition
