package testsupport

import (
	"context"
	"sync"

	"golang.org/x/text/language"
)

// RecognizeCall records one request made to a StubRecognizer.
type RecognizeCall struct {
	Audio  []byte
	Locale language.Tag
}

// StubRecognizer returns a canned transcript or error.
type StubRecognizer struct {
	Text string
	Err  error

	mu    sync.Mutex
	calls []RecognizeCall
}

// Recognize records the call and returns the configured result.
func (s *StubRecognizer) Recognize(_ context.Context, audio []byte, locale language.Tag) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := make([]byte, len(audio))
	copy(cp, audio)
	s.calls = append(s.calls, RecognizeCall{Audio: cp, Locale: locale})
	if s.Err != nil {
		return "", s.Err
	}
	return s.Text, nil
}

// Calls returns the recorded requests.
func (s *StubRecognizer) Calls() []RecognizeCall {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]RecognizeCall, len(s.calls))
	copy(out, s.calls)
	return out
}
