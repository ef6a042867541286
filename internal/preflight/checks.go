package preflight

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/sys/unix"

	"wavscribe/internal/audio"
	"wavscribe/internal/config"
)

const endpointTimeout = 5 * time.Second

// CheckInputFile verifies the recording exists and decodes as PCM WAV.
func CheckInputFile(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is a directory)", path)}
	}
	sig, err := audio.Load(path)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (%d Hz, %d ch, %d-bit, %s)",
		path, sig.FrameRate(), sig.Channels(), sig.BitDepth(), sig.Duration().Round(10*time.Millisecond))}
}

// CheckOutputDirectory verifies that the directory is writable, or that it
// can be created when missing.
func CheckOutputDirectory(name, path string) Result {
	info, err := os.Stat(path)
	switch {
	case err == nil && !info.IsDir():
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	case err == nil:
		return CheckDirectoryAccess(name, path)
	case !os.IsNotExist(err):
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}

	parent := existingAncestor(path)
	if err := unix.Access(parent, unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: cannot create under %s: %v)", path, parent, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (will be created)", path)}
}

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

func existingAncestor(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "."
	}
	for dir := filepath.Dir(abs); ; dir = filepath.Dir(dir) {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return dir
		}
		if dir == filepath.Dir(dir) {
			return dir
		}
	}
}

// CheckCredentials reports whether the recognition provider has what it needs
// to authenticate. Self-hosted OpenAI-compatible endpoints may run keyless.
func CheckCredentials(cfg config.Recognition) Result {
	const name = "Recognition credentials"

	provider := strings.ToLower(strings.TrimSpace(cfg.Provider))
	hasKey := strings.TrimSpace(cfg.APIKey) != ""
	switch provider {
	case config.ProviderGoogle:
		if !hasKey {
			return Result{Name: name, Detail: "google: API key missing, runs will be rejected (set recognition.api_key in the config or export GOOGLE_SPEECH_API_KEY)"}
		}
	case config.ProviderOpenAI:
		if !hasKey {
			if strings.Contains(cfg.Endpoint, "api.openai.com") {
				return Result{Name: name, Detail: "openai: API key missing (set recognition.api_key or OPENAI_API_KEY)"}
			}
			return Result{Name: name, Advisory: true, Detail: "openai: no API key, requests go out unauthenticated (set OPENAI_API_KEY if the server needs one)"}
		}
	default:
		return Result{Name: name, Detail: fmt.Sprintf("unknown provider %q", cfg.Provider)}
	}
	return Result{Name: name, Passed: true, Detail: provider + ": API key configured"}
}

// CheckEndpoint verifies the recognition endpoint answers HTTP. Responses
// below 500 count as reachable; 401 and 403 are reported as warnings since
// the unauthenticated GET cannot tell a bad key from a missing one.
func CheckEndpoint(ctx context.Context, endpoint string) Result {
	const name = "Recognition endpoint"

	endpoint = strings.TrimSpace(endpoint)
	if endpoint == "" {
		return Result{Name: name, Detail: "missing url"}
	}

	checkCtx, cancel := context.WithTimeout(ctx, endpointTimeout)
	defer cancel()

	client := &http.Client{Timeout: endpointTimeout}
	req, err := http.NewRequestWithContext(checkCtx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: %v)", endpoint, err)}
	}
	resp, err := client.Do(req)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (%s)", endpoint, summarizeNetError(err))}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError {
		return Result{Name: name, Detail: fmt.Sprintf("%s (server error %d)", endpoint, resp.StatusCode)}
	}
	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return Result{Name: name, Advisory: true, Detail: fmt.Sprintf("%s (reachable, HTTP %d: check the API key)", endpoint, resp.StatusCode)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (reachable, HTTP %d)", endpoint, resp.StatusCode)}
}

func summarizeNetError(err error) string {
	if errors.Is(err, context.DeadlineExceeded) {
		return "timed out"
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return "timed out"
	}
	return fmt.Sprintf("unreachable: %v", err)
}
