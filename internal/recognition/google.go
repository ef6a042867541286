package recognition

import (
	"bufio"
	"bytes"
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/text/language"

	"wavscribe/internal/audio"
	"wavscribe/internal/config"
)

// GoogleClient talks to the Google Web Speech API v2, the endpoint used by
// Chromium's speech input.
type GoogleClient struct {
	endpoint   string
	apiKey     string
	httpClient *http.Client
}

// NewGoogleClient constructs a client from recognition settings.
func NewGoogleClient(cfg config.Recognition, opts ...Option) *GoogleClient {
	s := applyOptions(cfg.TimeoutSeconds, opts)
	return &GoogleClient{
		endpoint:   strings.TrimSpace(cfg.Endpoint),
		apiKey:     strings.TrimSpace(cfg.APIKey),
		httpClient: s.httpClient,
	}
}

type googleResponse struct {
	Result []googleResult `json:"result"`
}

type googleResult struct {
	Alternative []googleAlternative `json:"alternative"`
	Final       bool                `json:"final"`
}

type googleAlternative struct {
	Transcript string   `json:"transcript"`
	Confidence *float64 `json:"confidence"`
}

// Recognize sends the WAV recording as mono 16-bit linear PCM and returns the
// most confident transcript.
func (c *GoogleClient) Recognize(ctx context.Context, wav []byte, locale language.Tag) (string, error) {
	sig, err := audio.Decode(bytes.NewReader(wav))
	if err != nil {
		return "", serviceError("encode", "unsupported audio", err)
	}
	body := monoL16(sig)

	query := url.Values{}
	query.Set("client", "chromium")
	query.Set("lang", locale.String())
	query.Set("pFilter", "0")
	if c.apiKey != "" {
		query.Set("key", c.apiKey)
	}
	endpoint := c.endpoint + "?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", serviceError("request", "build request", err)
	}
	req.Header.Set("Content-Type", fmt.Sprintf("audio/l16; rate=%d", sig.FrameRate()))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", serviceError("request", "google speech unreachable", err)
	}
	defer resp.Body.Close()
	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", serviceError("request", "read body", err)
	}
	if resp.StatusCode >= http.StatusMultipleChoices {
		message := ""
		if c.apiKey == "" && resp.StatusCode < http.StatusInternalServerError {
			message = "no API key configured; set recognition.api_key or GOOGLE_SPEECH_API_KEY"
		}
		return "", serviceError("request", message, &httpStatusError{Service: "google speech", StatusCode: resp.StatusCode, Body: string(payload)})
	}
	return parseGoogleResponse(payload)
}

// parseGoogleResponse scans the newline-delimited JSON reply. The first
// non-empty result wins; among its alternatives the most confident one is
// chosen, falling back to the first.
func parseGoogleResponse(payload []byte) (string, error) {
	scanner := bufio.NewScanner(bytes.NewReader(payload))
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var decoded googleResponse
		if err := json.Unmarshal([]byte(line), &decoded); err != nil {
			return "", serviceError("decode", "malformed response", err)
		}
		if len(decoded.Result) == 0 {
			continue
		}
		best, ok := bestAlternative(decoded.Result[0].Alternative)
		if !ok {
			return "", serviceError("decode", "no speech recognized", nil)
		}
		return best, nil
	}
	if err := scanner.Err(); err != nil {
		return "", serviceError("decode", "read response", err)
	}
	return "", serviceError("decode", "no speech recognized", nil)
}

func bestAlternative(alts []googleAlternative) (string, bool) {
	if len(alts) == 0 {
		return "", false
	}
	best := alts[0]
	for _, alt := range alts[1:] {
		if alt.Confidence != nil && (best.Confidence == nil || *alt.Confidence > *best.Confidence) {
			best = alt
		}
	}
	if strings.TrimSpace(best.Transcript) == "" {
		return "", false
	}
	return best.Transcript, true
}

// monoL16 downmixes sig to one channel of signed 16-bit little-endian PCM.
func monoL16(sig audio.Signal) []byte {
	samples := sig.Samples()
	ch := sig.Channels()
	frames := sig.Frames()
	out := make([]byte, frames*2)
	for i := 0; i < frames; i++ {
		sum := 0
		for c := 0; c < ch; c++ {
			sum += to16(samples[i*ch+c], sig.BitDepth())
		}
		binary.LittleEndian.PutUint16(out[i*2:], uint16(int16(sum/ch)))
	}
	return out
}

func to16(v, bitDepth int) int {
	switch bitDepth {
	case 8:
		return (v - 128) << 8
	case 24:
		return v >> 8
	case 32:
		return v >> 16
	default:
		return v
	}
}
