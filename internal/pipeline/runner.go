package pipeline

import (
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	"wavscribe/internal/logging"
	"wavscribe/internal/recognition"
)

// KeyLayout formats the run key shared by the .wav and .json outputs (DDMMYY_HHMMSS).
const KeyLayout = "020106_150405"

// Result describes a completed run.
type Result struct {
	Key            string
	RunID          string
	InputFile      string
	OutputAudio    string
	RecordPath     string
	Text           string
	InputDuration  time.Duration
	OutputDuration time.Duration
	GainDB         float64
}

// Option customizes a Runner.
type Option func(*Runner)

// WithLogger sets the logger used for stage progress.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithStdout redirects the user-facing result lines.
func WithStdout(w io.Writer) Option {
	return func(r *Runner) {
		if w != nil {
			r.stdout = w
		}
	}
}

// WithClock overrides the clock used to derive the run key.
func WithClock(now func() time.Time) Option {
	return func(r *Runner) {
		if now != nil {
			r.now = now
		}
	}
}

// WithIDGenerator overrides the run correlation ID source.
func WithIDGenerator(next func() string) Option {
	return func(r *Runner) {
		if next != nil {
			r.newID = next
		}
	}
}

// WithLockDir sets where output-directory lock files are kept.
func WithLockDir(dir string) Option {
	return func(r *Runner) {
		if dir != "" {
			r.lockDir = dir
		}
	}
}

// Runner executes Load, Transform, Persist, Transcribe and Log in order.
type Runner struct {
	recognizer recognition.Recognizer
	logger     *slog.Logger
	stdout     io.Writer
	now        func() time.Time
	newID      func() string
	lockDir    string
}

// NewRunner constructs a Runner that transcribes with rec.
func NewRunner(rec recognition.Recognizer, opts ...Option) *Runner {
	r := &Runner{
		recognizer: rec,
		logger:     logging.NewNop(),
		stdout:     os.Stdout,
		now:        time.Now,
		newID:      uuid.NewString,
		lockDir:    os.TempDir(),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.logger = logging.NewComponentLogger(r.logger, "pipeline")
	return r
}
