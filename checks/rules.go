package checks

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/reusee/starlarkutil"
	"github.com/reusee/strudo/cmds"
	"github.com/reusee/strudo/debugs"
	"github.com/reusee/strudo/logs"
	"github.com/reusee/strudo/strudoconfigs"
	"github.com/reusee/strudo/tracks"
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

var fileOptions = &syntax.FileOptions{
	Set:             true,
	While:           true,
	TopLevelControl: true,
}

// drops into a starlark REPL with the failing track bound, for rule authoring
var tapRules = cmds.Switch("-tap-rules")

// RunRules executes every *.star rule file against the loaded tracks,
// appending to each track's Warnings and Errors. A missing rules directory
// means no rules; a broken rule file fails the run.
type RunRules func(ctx context.Context, trackList []*tracks.Track) error

func (Module) RunRules(
	rulesDir strudoconfigs.RulesDir,
	tap debugs.Tap,
	logger logs.Logger,
) RunRules {
	return func(ctx context.Context, trackList []*tracks.Track) error {

		paths, err := filepath.Glob(filepath.Join(string(rulesDir), "*.star"))
		if err != nil {
			return err
		}
		if len(paths) == 0 {
			return nil
		}
		sort.Strings(paths)

		for _, path := range paths {
			logger.InfoContext(ctx, "running rule file",
				"path", path,
				"tracks", len(trackList),
			)
			if err := runRuleFile(path, trackList); err != nil {
				return fmt.Errorf("rule %s: %w", path, err)
			}
		}

		if *tapRules {
			for _, track := range trackList {
				if len(track.Errors) == 0 && len(track.Warnings) == 0 {
					continue
				}
				tap(ctx, "rule findings: "+track.Path, map[string]any{
					"track":    trackMap(track),
					"errors":   track.Errors,
					"warnings": track.Warnings,
				})
			}
		}

		return nil
	}
}

func runRuleFile(path string, trackList []*tracks.Track) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	// warn/fail_track target whichever track is currently being checked;
	// current is nil while the file's top level runs
	var current *tracks.Track
	var topLevelErr error
	outsideCheck := func(builtin string) {
		if topLevelErr == nil {
			topLevelErr = fmt.Errorf("%s called outside check", builtin)
		}
	}
	predeclared := starlark.StringDict{
		"warn": starlarkutil.MakeFunc("warn", func(msg string) {
			if current == nil {
				outsideCheck("warn")
				return
			}
			current.Warnings = append(current.Warnings, msg)
		}),
		"fail_track": starlarkutil.MakeFunc("fail_track", func(msg string) {
			if current == nil {
				outsideCheck("fail_track")
				return
			}
			current.Errors = append(current.Errors, msg)
		}),
	}

	thread := &starlark.Thread{
		Name: path,
	}
	globals, err := starlark.ExecFileOptions(fileOptions, thread, path, src, predeclared)
	if err != nil {
		return err
	}
	if topLevelErr != nil {
		return topLevelErr
	}

	check, ok := globals["check"]
	if !ok {
		return fmt.Errorf("no check function defined")
	}

	for _, track := range trackList {
		current = track
		_, err := starlark.Call(thread, check, starlark.Tuple{trackDict(track)}, nil)
		if err != nil {
			return err
		}
	}

	return nil
}

func trackMap(track *tracks.Track) map[string]any {
	get := func(key string) any {
		if track.Metadata == nil {
			return nil
		}
		return track.Metadata[key]
	}
	return map[string]any{
		"slug":    get("slug"),
		"title":   get("title"),
		"tempo":   get("tempo"),
		"mood":    get("mood"),
		"tags":    get("tags"),
		"summary": get("summary"),
		"path":    track.Path,
		"code":    track.Code,
	}
}

func trackDict(track *tracks.Track) starlark.Value {
	return debugs.ToStarlarkValue(trackMap(track))
}
