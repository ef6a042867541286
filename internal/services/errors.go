package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnreadableAudio     = errors.New("unreadable audio")
	ErrInvalidVolumeFormat = errors.New("invalid volume format")
	ErrInvalidSpeedScale   = errors.New("invalid speed scale")
	ErrWrite               = errors.New("write error")
	ErrRecognitionService  = errors.New("recognition service error")
	ErrConfiguration       = errors.New("configuration error")
)

// Exit codes returned by the CLI.
const (
	ExitOK      = 0
	ExitFailure = 1
	ExitUsage   = 2
)

// Wrap builds an error message that includes stage context while tagging it with
// the provided marker for later classification. The marker should be one of the
// exported sentinel errors above.
func Wrap(marker error, stage, operation, message string, err error) error {
	detail := buildDetail(stage, operation, message)
	if marker == nil {
		marker = ErrWrite
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// ExitCode maps a run error to the process exit status. Problems with the
// invocation itself (configuration, speed scale, volume string) exit with 2;
// every other failure exits with 1.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, ErrConfiguration), errors.Is(err, ErrInvalidSpeedScale), errors.Is(err, ErrInvalidVolumeFormat):
		return ExitUsage
	default:
		return ExitFailure
	}
}

// Kind returns a short label for the marker carried by err, or "unknown".
func Kind(err error) string {
	for _, marker := range []error{
		ErrUnreadableAudio,
		ErrInvalidVolumeFormat,
		ErrInvalidSpeedScale,
		ErrWrite,
		ErrRecognitionService,
		ErrConfiguration,
	} {
		if errors.Is(err, marker) {
			return marker.Error()
		}
	}
	return "unknown"
}

func buildDetail(stage, operation, message string) string {
	parts := make([]string, 0, 3)
	if stage = strings.TrimSpace(stage); stage != "" {
		parts = append(parts, stage)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "run failure"
	}
	return strings.Join(parts, ": ")
}
