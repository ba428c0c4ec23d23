package renders

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/reusee/strudo/browsers"
	"github.com/reusee/strudo/ffmpegs"
	"github.com/reusee/strudo/logs"
	"github.com/reusee/strudo/syncs"
	"github.com/reusee/strudo/tracks"
)

type RenderOptions struct {
	TracksDir string
	OutDir    string
	Formats   []string
	Duration  time.Duration
	Warmup    time.Duration
	Slugs     []string
}

// RenderTracks bounces every eligible track to webm through the browser
// harness, then converts the requested formats with ffmpeg. Returns the
// number of rendered tracks.
type RenderTracks func(ctx context.Context, options RenderOptions) (int, error)

func (Module) RenderTracks(
	newSession browsers.NewSession,
	runner *ffmpegs.Runner,
	newSpan logs.NewSpan,
	logger logs.Logger,
) RenderTracks {
	return func(ctx context.Context, options RenderOptions) (int, error) {
		// one span per render run
		ctx, _ = newSpan(ctx, "")
		n, err := renderAll(ctx, options, newSession, runner, logger)
		if err != nil {
			err = logs.WrapSpan(ctx, err)
		}
		return n, err
	}
}

func renderAll(
	ctx context.Context,
	options RenderOptions,
	newSession browsers.NewSession,
	runner *ffmpegs.Runner,
	logger logs.Logger,
) (int, error) {

	loaded, err := tracks.LoadDir(options.TracksDir)
	if err != nil {
		return 0, err
	}
	if len(loaded) == 0 {
		logger.WarnContext(ctx, "no .strudel tracks found for rendering",
			"tracks_dir", options.TracksDir,
		)
		return 0, nil
	}

	eligible := selectTracks(ctx, loaded, options.Slugs, logger)
	if len(eligible) == 0 {
		logger.WarnContext(ctx, "no eligible tracks to render")
		return 0, nil
	}

	if err := os.MkdirAll(options.OutDir, 0755); err != nil {
		return 0, err
	}

	session, err := newSession(ctx, browsers.RenderHarness)
	if err != nil {
		return 0, err
	}
	defer session.Close()

	var webmPaths []string
	for _, track := range eligible {
		logger.InfoContext(ctx, "rendering audio",
			"slug", track.Slug(),
			"duration", options.Duration,
		)
		audio, err := renderOne(session, track.Code, options.Duration, options.Warmup)
		if err != nil {
			return len(webmPaths), fmt.Errorf("render %s: %w", track.Slug(), err)
		}
		webmPath := filepath.Join(options.OutDir, track.Slug()+".webm")
		if err := os.WriteFile(webmPath, audio, 0644); err != nil {
			return len(webmPaths), err
		}
		webmPaths = append(webmPaths, webmPath)
	}

	if err := convertAll(ctx, runner, webmPaths, options.Formats, logger); err != nil {
		return len(webmPaths), err
	}

	logger.InfoContext(ctx, "rendered tracks",
		"count", len(webmPaths),
	)
	return len(webmPaths), nil
}

func selectTracks(
	ctx context.Context,
	loaded []*tracks.Track,
	slugs []string,
	logger logs.Logger,
) []*tracks.Track {
	var ret []*tracks.Track
	for _, track := range loaded {
		if len(slugs) > 0 && !slices.Contains(slugs, track.Slug()) {
			continue
		}
		if len(track.Errors) > 0 {
			logger.ErrorContext(ctx, "track contains validation errors; skipping audio render",
				"path", track.Path,
				"errors", track.Errors,
			)
			continue
		}
		if len(track.Warnings) > 0 {
			logger.WarnContext(ctx, "track has validation warnings",
				"path", track.Path,
				"warnings", track.Warnings,
			)
		}
		if track.Code == "" {
			logger.WarnContext(ctx, "track has no pattern body; skipping",
				"path", track.Path,
			)
			continue
		}
		ret = append(ret, track)
	}
	return ret
}

type renderResult struct {
	Base64 string `json:"base64"`
}

func renderOne(
	session *browsers.Session,
	code string,
	duration time.Duration,
	warmup time.Duration,
) ([]byte, error) {
	encoded, err := json.Marshal(code)
	if err != nil {
		return nil, err
	}
	var result renderResult
	if err := session.Eval(
		fmt.Sprintf("renderStrudel(%s, { durationMs: %d, warmupMs: %d })",
			encoded,
			duration.Milliseconds(),
			warmup.Milliseconds(),
		),
		&result,
	); err != nil {
		return nil, err
	}
	return base64.StdEncoding.DecodeString(result.Base64)
}

func convertAll(
	ctx context.Context,
	runner *ffmpegs.Runner,
	webmPaths []string,
	formats []string,
	logger logs.Logger,
) error {
	var wanted []string
	for _, format := range formats {
		if format == "webm" {
			// already produced
			continue
		}
		if !ffmpegs.ConvertibleFormats[format] {
			logger.WarnContext(ctx, "unsupported audio format requested; skipping",
				"format", format,
			)
			continue
		}
		wanted = append(wanted, format)
	}
	if len(wanted) == 0 {
		return nil
	}

	sem := syncs.NewSemaphore(min(4, len(webmPaths)))
	var wg sync.WaitGroup
	var mu sync.Mutex
	var errs []error
	for _, webmPath := range webmPaths {
		for _, format := range wanted {
			wg.Add(1)
			go func() {
				defer wg.Done()
				sem.Acquire()
				defer sem.Release()
				if _, err := runner.Convert(ctx, webmPath, format); err != nil {
					mu.Lock()
					errs = append(errs, err)
					mu.Unlock()
				}
			}()
		}
	}
	wg.Wait()

	return errors.Join(errs...)
}
