package compiles

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/reusee/strudo/checks"
	"github.com/reusee/strudo/lints"
	"github.com/reusee/strudo/logs"
	"github.com/reusee/strudo/tracks"
)

type Settings struct {
	TracksDir string
	OutDir    string
	Formats   []string
	CheckOnly bool
}

var ErrCompileFailed = errors.New("compilation failed")

// CompileProject validates every track source, runs the rule and lint
// passes, and emits the requested artifacts.
type CompileProject func(ctx context.Context, settings Settings) error

func (Module) CompileProject(
	runRules checks.RunRules,
	lintTracks lints.LintTracks,
	newRunLogger logs.NewRunLogger,
	newSpan logs.NewSpan,
) CompileProject {
	return func(ctx context.Context, settings Settings) error {
		// one span per compile run; its id lands on every log line and on
		// the returned error
		ctx, _ = newSpan(ctx, "")
		if err := compile(ctx, settings, runRules, lintTracks, newRunLogger); err != nil {
			return logs.WrapSpan(ctx, err)
		}
		return nil
	}
}

func compile(
	ctx context.Context,
	settings Settings,
	runRules checks.RunRules,
	lintTracks lints.LintTracks,
	newRunLogger logs.NewRunLogger,
) error {

	if err := validateFormats(settings.Formats); err != nil {
		return err
	}

	logger, runLog, err := newRunLogger("compile")
	if err != nil {
		return err
	}
	defer runLog.Close()

	logger.InfoContext(ctx, "starting compilation",
		"tracks_dir", settings.TracksDir,
		"formats", settings.Formats,
		"check_only", settings.CheckOnly,
	)

	loaded, err := tracks.LoadDir(settings.TracksDir)
	if err != nil {
		return err
	}
	if len(loaded) == 0 {
		logger.WarnContext(ctx, "no .strudel files discovered",
			"tracks_dir", settings.TracksDir,
		)
	}

	for _, track := range loaded {
		switch {
		case len(track.Errors) > 0:
			logger.ErrorContext(ctx, "validation failed",
				"path", track.Path,
				"errors", track.Errors,
			)
		case len(track.Warnings) > 0:
			logger.WarnContext(ctx, "validation warnings",
				"path", track.Path,
				"warnings", track.Warnings,
			)
		default:
			logger.InfoContext(ctx, "track OK",
				"path", track.Path,
			)
		}
	}

	if failed := failedPaths(loaded); len(failed) > 0 {
		logger.ErrorContext(ctx, "compilation aborted due to validation errors",
			"failed_tracks", failed,
		)
		emitReport(logger, runLog, loaded, false)
		return fmt.Errorf("%w: validation errors in %d tracks", ErrCompileFailed, len(failed))
	}

	if err := runRules(ctx, loaded); err != nil {
		emitReport(logger, runLog, loaded, false)
		return err
	}
	if failed := failedPaths(loaded); len(failed) > 0 {
		logger.ErrorContext(ctx, "compilation aborted due to rule errors",
			"failed_tracks", failed,
		)
		emitReport(logger, runLog, loaded, false)
		return fmt.Errorf("%w: rule errors in %d tracks", ErrCompileFailed, len(failed))
	}

	lintFailures, err := lintTracks(ctx, loaded)
	if err != nil {
		emitReport(logger, runLog, loaded, false)
		return err
	}
	if len(lintFailures) > 0 {
		var failed []string
		for _, track := range loaded {
			failure, ok := lintFailures[track.Path]
			if !ok {
				continue
			}
			track.LintError = failure
			track.Errors = append(track.Errors, "Lint failed: "+failure)
			failed = append(failed, track.Path)
		}
		logger.ErrorContext(ctx, "compilation aborted due to lint errors",
			"failed_tracks", failed,
		)
		emitReport(logger, runLog, loaded, false)
		return fmt.Errorf("%w: lint errors in %d tracks", ErrCompileFailed, len(failed))
	}

	if settings.CheckOnly {
		logger.InfoContext(ctx, "check-only mode: outputs not written")
	} else {
		if err := writeOutputs(loaded, settings.OutDir, settings.Formats, logger); err != nil {
			return err
		}
	}

	emitReport(logger, runLog, loaded, true)
	logger.InfoContext(ctx, "compilation complete",
		"tracks", len(loaded),
		"with_warnings", countWarned(loaded),
	)
	return nil
}

func failedPaths(loaded []*tracks.Track) []string {
	var ret []string
	for _, track := range loaded {
		if len(track.Errors) > 0 {
			ret = append(ret, track.Path)
		}
	}
	return ret
}

func countWarned(loaded []*tracks.Track) int {
	n := 0
	for _, track := range loaded {
		if len(track.Warnings) > 0 {
			n++
		}
	}
	return n
}

func emitReport(logger logs.Logger, runLog *logs.RunLog, loaded []*tracks.Track, success bool) {
	type trackReport struct {
		Slug     string   `json:"slug"`
		Path     string   `json:"path"`
		Errors   []string `json:"errors"`
		Warnings []string `json:"warnings"`
	}
	report := struct {
		Timestamp string        `json:"timestamp"`
		Success   bool          `json:"success"`
		Tracks    []trackReport `json:"tracks"`
	}{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Success:   success,
	}
	for _, track := range loaded {
		report.Tracks = append(report.Tracks, trackReport{
			Slug:     track.Slug(),
			Path:     track.Path,
			Errors:   track.Errors,
			Warnings: track.Warnings,
		})
	}
	if err := runLog.AppendReport(report); err != nil {
		logger.Warn("append report",
			"error", err,
		)
	}
}
