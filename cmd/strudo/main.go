package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/reusee/dscope"
	"github.com/reusee/strudo/cmds"
	"github.com/reusee/strudo/compiles"
	"github.com/reusee/strudo/fetches"
	"github.com/reusee/strudo/ffmpegs"
	"github.com/reusee/strudo/lints"
	"github.com/reusee/strudo/logs"
	"github.com/reusee/strudo/modes"
	"github.com/reusee/strudo/renders"
	"github.com/reusee/strudo/strudoconfigs"
	"github.com/reusee/strudo/tracks"
	"github.com/reusee/strudo/vars"
)

var (
	titleFlag   = cmds.Var[string]("-title")
	tempoFlag   = cmds.Var[int]("-tempo")
	forceFlag   = cmds.Switch("-force")
	checkFlag   = cmds.Switch("-check")
	formatsFlag = cmds.Var[string]("-formats")
	slugFlags   = cmds.Collect[string]("-slug")
	inFlags     = cmds.Collect[string]("-in")
	bundleFlag  = cmds.Switch("-bundle")
	destFlag    = cmds.Var[string]("-dest")
)

// the verb selected on the command line, run after all flags are applied
var action func(ctx context.Context, scope dscope.Scope) error

func main() {
	cmds.Execute(os.Args[1:])

	if action == nil {
		cmds.GlobalExecutor.PrintUsage()
		return
	}

	ctx := context.Background()
	scope := dscope.New(
		new(Module),
		modes.ForProduction(),
	)

	if err := action(ctx, scope); err != nil {
		scope.Call(func(
			logger logs.Logger,
		) {
			logger.Error("command failed",
				"error", err,
			)
		})
		os.Exit(1)
	}
}

func init() {

	cmds.Define("init", cmds.Func(func(slug string) {
		action = func(ctx context.Context, scope dscope.Scope) (err error) {
			scope.Call(func(
				tracksDir strudoconfigs.TracksDir,
				logger logs.Logger,
			) {
				var path string
				path, err = tracks.Scaffold(slug, *titleFlag, *tempoFlag, string(tracksDir), *forceFlag)
				if err != nil {
					return
				}
				logger.InfoContext(ctx, "track scaffolded",
					"path", path,
				)
			})
			return
		}
	}).Desc("scaffold a new track file with the given slug"))

	cmds.Define("compile", cmds.Func(func() {
		action = func(ctx context.Context, scope dscope.Scope) (err error) {
			scope.Call(func(
				compileProject compiles.CompileProject,
				tracksDir strudoconfigs.TracksDir,
				outDir strudoconfigs.OutDir,
			) {
				formats := vars.SplitList(*formatsFlag)
				if len(formats) == 0 {
					formats = []string{"json", "md", "raw"}
				}
				err = compileProject(ctx, compiles.Settings{
					TracksDir: string(tracksDir),
					OutDir:    string(outDir),
					Formats:   formats,
					CheckOnly: *checkFlag,
				})
			})
			return
		}
	}).Desc("validate, rule-check and lint all tracks, then write artifacts"))

	cmds.Define("render", cmds.Func(func() {
		action = func(ctx context.Context, scope dscope.Scope) (err error) {
			scope.Call(func(
				renderTracks renders.RenderTracks,
				tracksDir strudoconfigs.TracksDir,
				audioDir strudoconfigs.AudioDir,
				duration strudoconfigs.RenderDuration,
				warmup strudoconfigs.RenderWarmup,
			) {
				formats := vars.SplitList(*formatsFlag)
				if len(formats) == 0 {
					formats = []string{"webm", "wav", "mp3"}
				}
				_, err = renderTracks(ctx, renders.RenderOptions{
					TracksDir: string(tracksDir),
					OutDir:    string(audioDir),
					Formats:   formats,
					Duration:  time.Duration(duration),
					Warmup:    time.Duration(warmup),
					Slugs:     *slugFlags,
				})
			})
			return
		}
	}).Desc("bounce tracks to audio through the browser harness"))

	cmds.Define("splice", cmds.Func(func(output string) {
		action = func(ctx context.Context, scope dscope.Scope) (err error) {
			scope.Call(func(
				runner *ffmpegs.Runner,
			) {
				err = runner.Concat(ctx, *inFlags, output)
			})
			return
		}
	}).Desc("concatenate -in audio files into one output file"))

	cmds.Define("loop", cmds.Func(func(input string, repeats int, output string) {
		action = func(ctx context.Context, scope dscope.Scope) (err error) {
			scope.Call(func(
				runner *ffmpegs.Runner,
			) {
				err = runner.Loop(ctx, input, repeats, output)
			})
			return
		}
	}).Desc("repeat an audio file N times into an output file"))

	cmds.Define("fetch", cmds.Func(func() {
		action = func(ctx context.Context, scope dscope.Scope) (err error) {
			scope.Call(func(
				fetchRepo fetches.FetchRepo,
				fetchBundle fetches.FetchBundle,
				repoURL strudoconfigs.StrudelRepoURL,
				bundleURL strudoconfigs.BundleURL,
			) {
				if *bundleFlag {
					err = fetchBundle(ctx, string(bundleURL), *destFlag)
					return
				}
				err = fetchRepo(ctx, fetches.RepoOptions{
					URL:        string(repoURL),
					Dest:       *destFlag,
					SparseDirs: fetches.DefaultSparseDirs,
					Includes:   fetches.DefaultIncludes,
					Force:      *forceFlag,
				})
			})
			return
		}
	}).Desc("sparse-clone the strudel repository, or download the web bundle with -bundle"))

	cmds.Define("lint-stdin", cmds.Func(func() {
		action = lintStdin
	}).Desc("lint a single pattern read from stdin"))

}

func lintStdin(ctx context.Context, scope dscope.Scope) (err error) {
	code := string(getStdinContent())
	if code == "" {
		return fmt.Errorf("no pattern on stdin")
	}
	scope.Call(func(
		lintTracks lints.LintTracks,
		logger logs.Logger,
	) {
		track := &tracks.Track{
			Path: "<stdin>",
			Code: code,
		}
		failures, lintErr := lintTracks(ctx, []*tracks.Track{track})
		if lintErr != nil {
			err = lintErr
			return
		}
		if message, ok := failures[track.Path]; ok {
			err = fmt.Errorf("lint failed: %s", message)
			return
		}
		logger.InfoContext(ctx, "pattern OK")
	})
	return
}
