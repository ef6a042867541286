package recognition

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"golang.org/x/text/language"

	"wavscribe/internal/config"
	"wavscribe/internal/services"
)

const defaultHTTPTimeout = 60 * time.Second

// Recognizer turns recorded speech into text.
type Recognizer interface {
	Recognize(ctx context.Context, audio []byte, locale language.Tag) (string, error)
}

// Option customizes a recognition client.
type Option func(*settings)

type settings struct {
	httpClient *http.Client
}

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(s *settings) {
		if client != nil {
			s.httpClient = client
		}
	}
}

func applyOptions(timeoutSeconds int, opts []Option) settings {
	timeout := defaultHTTPTimeout
	if timeoutSeconds > 0 {
		timeout = time.Duration(timeoutSeconds) * time.Second
	}
	s := settings{httpClient: &http.Client{Timeout: timeout}}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// New builds the recognizer selected by cfg.Provider.
func New(cfg config.Recognition, opts ...Option) (Recognizer, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case config.ProviderGoogle, "":
		return NewGoogleClient(cfg, opts...), nil
	case config.ProviderOpenAI:
		return NewOpenAIClient(cfg, opts...), nil
	default:
		return nil, services.Wrap(services.ErrConfiguration, "transcribe", "provider", fmt.Sprintf("unknown provider %q", cfg.Provider), nil)
	}
}

// Transcribe reads the recording at path and asks rec to recognize it.
func Transcribe(ctx context.Context, rec Recognizer, path string, locale language.Tag) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", services.Wrap(services.ErrUnreadableAudio, "transcribe", "read", path, err)
	}
	text, err := rec.Recognize(ctx, data, locale)
	if err != nil {
		if errors.Is(err, services.ErrRecognitionService) {
			return "", err
		}
		return "", services.Wrap(services.ErrRecognitionService, "transcribe", "recognize", locale.String(), err)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", services.Wrap(services.ErrRecognitionService, "transcribe", "recognize", "no speech recognized", nil)
	}
	return text, nil
}

type httpStatusError struct {
	Service    string
	StatusCode int
	Body       string
}

func (e *httpStatusError) Error() string {
	body := strings.TrimSpace(e.Body)
	if len(body) > 200 {
		body = body[:200] + "…"
	}
	return fmt.Sprintf("%s request: http %d: %s", e.Service, e.StatusCode, body)
}

func serviceError(operation, message string, err error) error {
	return services.Wrap(services.ErrRecognitionService, "transcribe", operation, message, err)
}
