package recognition

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"golang.org/x/text/language"

	"wavscribe/internal/config"
	langs "wavscribe/internal/language"
)

// OpenAIClient uploads recordings to an OpenAI-compatible
// /audio/transcriptions endpoint.
type OpenAIClient struct {
	endpoint   string
	apiKey     string
	model      string
	httpClient *http.Client
}

// NewOpenAIClient constructs a client from recognition settings.
func NewOpenAIClient(cfg config.Recognition, opts ...Option) *OpenAIClient {
	s := applyOptions(cfg.TimeoutSeconds, opts)
	return &OpenAIClient{
		endpoint:   strings.TrimSpace(cfg.Endpoint),
		apiKey:     strings.TrimSpace(cfg.APIKey),
		model:      strings.TrimSpace(cfg.Model),
		httpClient: s.httpClient,
	}
}

type openAIResponse struct {
	Text  string `json:"text"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Recognize uploads the WAV recording unchanged.
func (c *OpenAIClient) Recognize(ctx context.Context, wav []byte, locale language.Tag) (string, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fields := [][2]string{
		{"model", c.model},
		{"language", langs.ISO2(locale)},
		{"response_format", "json"},
	}
	for _, field := range fields {
		if field[1] == "" {
			continue
		}
		if err := mw.WriteField(field[0], field[1]); err != nil {
			return "", serviceError("encode", "write form field", err)
		}
	}
	fw, err := mw.CreateFormFile("file", "audio.wav")
	if err != nil {
		return "", serviceError("encode", "create form file", err)
	}
	if _, err := fw.Write(wav); err != nil {
		return "", serviceError("encode", "write form file", err)
	}
	if err := mw.Close(); err != nil {
		return "", serviceError("encode", "close form", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, &body)
	if err != nil {
		return "", serviceError("request", "build request", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", serviceError("request", "transcription endpoint unreachable", err)
	}
	defer resp.Body.Close()
	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", serviceError("request", "read body", err)
	}
	if resp.StatusCode >= http.StatusMultipleChoices {
		return "", serviceError("request", "", &httpStatusError{Service: "transcription", StatusCode: resp.StatusCode, Body: string(payload)})
	}

	var decoded openAIResponse
	if err := json.Unmarshal(payload, &decoded); err != nil {
		return "", serviceError("decode", "malformed response", err)
	}
	if decoded.Error != nil {
		return "", serviceError("decode", "api error: "+strings.TrimSpace(decoded.Error.Message), nil)
	}
	return decoded.Text, nil
}
