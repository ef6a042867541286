package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"wavscribe/internal/audio"
	"wavscribe/internal/config"
	"wavscribe/internal/fileutil"
	"wavscribe/internal/language"
	"wavscribe/internal/logging"
	"wavscribe/internal/recognition"
	"wavscribe/internal/runlog"
	"wavscribe/internal/services"
)

// Stage names, as they appear in logs and error messages.
const (
	StageLoad       = "load"
	StageTransform  = "transform"
	StagePersist    = "persist"
	StageTranscribe = "transcribe"
	StageLog        = "log"
)

// Run executes every stage for run. The first failing stage halts the run;
// files written by earlier stages are left in place.
func (r *Runner) Run(ctx context.Context, run config.Run) (Result, error) {
	result := Result{
		Key:       r.now().Format(KeyLayout),
		RunID:     r.newID(),
		InputFile: run.InputFile(),
	}
	ctx = services.WithRequestID(ctx, result.RunID)
	runLogger := logging.WithContext(ctx, r.logger)

	if r.recognizer == nil {
		return result, services.Wrap(services.ErrConfiguration, "run", "init", "recognizer unavailable", nil)
	}
	scale, err := run.SpeedFactor()
	if err != nil {
		return result, err
	}
	locale := language.Locale(run.Lang)

	runLogger.Info(
		"run started",
		logging.String(logging.FieldEventType, "run_start"),
		logging.String("lang", run.Lang),
		logging.String("locale", locale.String()),
		logging.String("speed_scale", run.SpeedScale),
		logging.String("volume", run.Volume),
		logging.String("input_file", result.InputFile),
	)

	var source audio.Signal
	err = r.stage(ctx, StageLoad, func(_ context.Context, logger *slog.Logger) error {
		sig, err := audio.Load(result.InputFile)
		if err != nil {
			return err
		}
		source = sig
		result.InputDuration = sig.Duration()
		logger.Debug("audio loaded",
			logging.Int("frame_rate", sig.FrameRate()),
			logging.Int("channels", sig.Channels()),
			logging.Int("bit_depth", sig.BitDepth()),
			logging.Duration("input_duration", sig.Duration()),
		)
		return nil
	})
	if err != nil {
		return result, err
	}

	var transformed audio.Signal
	err = r.stage(ctx, StageTransform, func(_ context.Context, logger *slog.Logger) error {
		gain, err := audio.ParseVolume(run.Volume)
		if err != nil {
			return err
		}
		sped, err := audio.ChangeSpeed(source, scale)
		if err != nil {
			return err
		}
		sig := audio.ApplyGain(sped, gain)
		if sig.Clipped() && !source.Clipped() {
			logger.Warn("gain clipped the output",
				logging.Alert("clipping"),
				logging.Float64("gain_db", gain),
				logging.String(logging.FieldErrorHint, "lower --volume to avoid distortion"),
			)
		}
		transformed = sig
		result.GainDB = gain
		result.OutputDuration = sig.Duration()
		logger.Debug("audio transformed",
			logging.Float64("gain_db", gain),
			logging.Duration("output_duration", sig.Duration()),
		)
		return nil
	})
	if err != nil {
		return result, err
	}

	var release func()
	err = r.stage(ctx, StagePersist, func(_ context.Context, logger *slog.Logger) error {
		if err := fileutil.EnsureDir(run.OutputPath); err != nil {
			return services.Wrap(services.ErrWrite, StagePersist, "mkdir", run.OutputPath, err)
		}
		lock, err := acquireOutputLock(r.lockDir, run.OutputPath)
		if err != nil {
			return err
		}
		release = func() {
			if err := releaseOutputLock(lock); err != nil {
				logger.Warn("failed to release output lock", logging.String("lock_file", lock.Path()), logging.Error(err))
			}
		}
		path := filepath.Join(run.OutputPath, result.Key+".wav")
		if err := audio.Save(transformed, path); err != nil {
			return err
		}
		result.OutputAudio = path
		logger.Info("audio saved", logging.String("output_file", path))
		return nil
	})
	if release != nil {
		defer release()
	}
	if err != nil {
		return result, err
	}

	err = r.stage(ctx, StageTranscribe, func(stageCtx context.Context, logger *slog.Logger) error {
		text, err := recognition.Transcribe(stageCtx, r.recognizer, result.InputFile, locale)
		if err != nil {
			return err
		}
		result.Text = text
		logger.Debug("speech recognized", logging.Int("text_length", len([]rune(text))))
		fmt.Fprintf(r.stdout, "Speech recognition result: %s\n", text)
		return nil
	})
	if err != nil {
		return result, err
	}

	err = r.stage(ctx, StageLog, func(_ context.Context, logger *slog.Logger) error {
		path, err := runlog.Write(run.OutputPath, result.Key, runlog.NewRecord(run, result.Text))
		if err != nil {
			return err
		}
		result.RecordPath = path
		logger.Info("record saved", logging.String("log_file", path))
		fmt.Fprintf(r.stdout, "Speech recognition result saved to: %s\n", path)
		return nil
	})
	if err != nil {
		return result, err
	}

	runLogger.Info("run completed", logging.String(logging.FieldEventType, "run_complete"))
	return result, nil
}

func (r *Runner) stage(ctx context.Context, name string, fn func(context.Context, *slog.Logger) error) error {
	stageCtx := services.WithStage(ctx, name)
	logger := logging.WithContext(stageCtx, r.logger)
	start := r.now()
	logger.Debug("stage started", logging.String(logging.FieldEventType, "stage_start"))

	if err := fn(stageCtx, logger); err != nil {
		logging.ErrorWithContext(logger, "stage failed", "stage_failure",
			logging.String(logging.FieldErrorHint, errorHint(err)),
			logging.String("error_kind", services.Kind(err)),
			logging.Error(err),
		)
		return err
	}
	logger.Info(
		"stage completed",
		logging.String(logging.FieldEventType, "stage_complete"),
		logging.Duration("stage_duration", r.now().Sub(start)),
	)
	return nil
}

func errorHint(err error) string {
	switch {
	case errors.Is(err, services.ErrUnreadableAudio):
		return "check that --input_path contains <lang>.wav in PCM format"
	case errors.Is(err, services.ErrInvalidVolumeFormat):
		return "volume must start with + or -, e.g. +5 or -3.5"
	case errors.Is(err, services.ErrInvalidSpeedScale):
		return "speed scale must be a positive number"
	case errors.Is(err, services.ErrWrite):
		return "check that --output_path is writable and not used by another run"
	case errors.Is(err, services.ErrRecognitionService):
		return "check network access; google needs recognition.api_key or GOOGLE_SPEECH_API_KEY, openai needs OPENAI_API_KEY (run 'wavscribe check')"
	default:
		return "rerun with --log-level debug for details"
	}
}
