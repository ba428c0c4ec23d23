package compiles

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/reusee/dscope"
	"github.com/reusee/strudo/cmds"
	"github.com/reusee/strudo/configs"
	"github.com/reusee/strudo/lints"
	"github.com/reusee/strudo/modes"
	"github.com/reusee/strudo/strudoconfigs"
	"github.com/reusee/strudo/tracks"
)

const goodTrack = `---
slug: %s
title: "Test Track"
tempo: 120
mood: "upbeat"
tags: [test, beats]
summary: |
  A track for the pipeline tests.
---
setcpm(120)
sound("bd hh sd hh").gain(0.8)
`

func writeTrack(t *testing.T, dir string, slug string) {
	t.Helper()
	content := strings.Replace(goodTrack, "%s", slug, 1)
	if err := os.WriteFile(filepath.Join(dir, slug+".strudel"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func testScope(t *testing.T, rulesDir string, lint lints.LintTracks) dscope.Scope {
	t.Helper()
	cmds.GlobalExecutor.MustExecute([]string{
		"-log-dir", t.TempDir(),
	})
	if rulesDir == "" {
		rulesDir = filepath.Join(t.TempDir(), "no-rules")
	}
	if lint == nil {
		lint = func(ctx context.Context, trackList []*tracks.Track) (map[string]string, error) {
			return nil, nil
		}
	}
	return dscope.New(
		new(Module),
		modes.ForTest(t),
		dscope.Provide(configs.NewLoader(nil, "")),
		dscope.Provide(strudoconfigs.RulesDir(rulesDir)),
		dscope.Provide(strudoconfigs.BrowserPath("")),
		dscope.Provide(strudoconfigs.BundleURL("")),
	).Fork(
		// the browser lint pass is stubbed out; the real one is covered by
		// the lints package
		dscope.Provide(lint),
	)
}

func TestCompileCheckOnlySucceeds(t *testing.T) {
	tracksDir := t.TempDir()
	writeTrack(t, tracksDir, "test-track")
	outDir := filepath.Join(t.TempDir(), "dist")

	testScope(t, "", nil).Call(func(
		compileProject CompileProject,
	) {
		err := compileProject(context.Background(), Settings{
			TracksDir: tracksDir,
			OutDir:    outDir,
			Formats:   []string{"json"},
			CheckOnly: true,
		})
		if err != nil {
			t.Fatal(err)
		}
	})

	if _, err := os.Stat(outDir); !os.IsNotExist(err) {
		t.Fatal("check-only should not write outputs")
	}
}

func TestCompileFlagsMalformedFrontMatter(t *testing.T) {
	tracksDir := t.TempDir()
	if err := os.WriteFile(
		filepath.Join(tracksDir, "bad.strudel"),
		[]byte("setcpm(120)\ns(\"bd\")\n"),
		0644,
	); err != nil {
		t.Fatal(err)
	}

	testScope(t, "", nil).Call(func(
		compileProject CompileProject,
	) {
		err := compileProject(context.Background(), Settings{
			TracksDir: tracksDir,
			OutDir:    filepath.Join(t.TempDir(), "dist"),
			Formats:   []string{"json"},
			CheckOnly: true,
		})
		if !errors.Is(err, ErrCompileFailed) {
			t.Fatalf("got %v", err)
		}
		if !strings.Contains(err.Error(), "span: ") {
			t.Fatalf("run span missing from error: %v", err)
		}
	})
}

func TestCompileWritesArtifacts(t *testing.T) {
	tracksDir := t.TempDir()
	writeTrack(t, tracksDir, "alpha")
	writeTrack(t, tracksDir, "beta")
	outDir := filepath.Join(t.TempDir(), "dist")

	testScope(t, "", nil).Call(func(
		compileProject CompileProject,
	) {
		err := compileProject(context.Background(), Settings{
			TracksDir: tracksDir,
			OutDir:    outDir,
			Formats:   []string{"json", "md", "raw"},
		})
		if err != nil {
			t.Fatal(err)
		}
	})

	for _, name := range []string{
		"tracks.json",
		"alpha.json", "alpha.md", "alpha.strudel",
		"beta.json", "beta.md", "beta.strudel",
	} {
		if _, err := os.Stat(filepath.Join(outDir, name)); err != nil {
			t.Fatalf("missing artifact %s: %v", name, err)
		}
	}

	content, err := os.ReadFile(filepath.Join(outDir, "tracks.json"))
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{
		`"generated_at"`,
		`"slug": "alpha"`,
		`"slug": "beta"`,
	} {
		if !strings.Contains(string(content), want) {
			t.Fatalf("missing %q in %s", want, content)
		}
	}

	markdown, err := os.ReadFile(filepath.Join(outDir, "alpha.md"))
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{
		"# Test Track",
		"**Slug:** `alpha`",
		"```strudel",
		"setcpm(120)",
	} {
		if !strings.Contains(string(markdown), want) {
			t.Fatalf("missing %q in %s", want, markdown)
		}
	}
}

func TestCompileAbortsOnLintFailure(t *testing.T) {
	tracksDir := t.TempDir()
	writeTrack(t, tracksDir, "broken-beat")
	outDir := filepath.Join(t.TempDir(), "dist")

	var lintedPaths []string
	lint := func(ctx context.Context, trackList []*tracks.Track) (map[string]string, error) {
		failures := make(map[string]string)
		for _, track := range trackList {
			lintedPaths = append(lintedPaths, track.Path)
			failures[track.Path] = "undefined function frobnicate"
		}
		return failures, nil
	}

	testScope(t, "", lint).Call(func(
		compileProject CompileProject,
	) {
		err := compileProject(context.Background(), Settings{
			TracksDir: tracksDir,
			OutDir:    outDir,
			Formats:   []string{"json"},
		})
		if !errors.Is(err, ErrCompileFailed) {
			t.Fatalf("got %v", err)
		}
	})

	if len(lintedPaths) != 1 {
		t.Fatalf("got %v", lintedPaths)
	}
	if _, err := os.Stat(outDir); !os.IsNotExist(err) {
		t.Fatal("failed compile should not write outputs")
	}
}

func TestCompileRejectsUnknownFormat(t *testing.T) {
	testScope(t, "", nil).Call(func(
		compileProject CompileProject,
	) {
		err := compileProject(context.Background(), Settings{
			TracksDir: t.TempDir(),
			OutDir:    t.TempDir(),
			Formats:   []string{"json", "wat"},
		})
		if err == nil || !strings.Contains(err.Error(), "unsupported formats") {
			t.Fatalf("got %v", err)
		}
	})
}

func TestCompileRunsRules(t *testing.T) {
	tracksDir := t.TempDir()
	writeTrack(t, tracksDir, "ruled")

	rulesDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(rulesDir, "no-ruled.star"), []byte(
		"def check(track):\n"+
			"    if track[\"slug\"] == \"ruled\":\n"+
			"        fail_track(\"ruled is reserved\")\n",
	), 0644); err != nil {
		t.Fatal(err)
	}

	testScope(t, rulesDir, nil).Call(func(
		compileProject CompileProject,
	) {
		err := compileProject(context.Background(), Settings{
			TracksDir: tracksDir,
			OutDir:    filepath.Join(t.TempDir(), "dist"),
			Formats:   []string{"json"},
			CheckOnly: true,
		})
		if !errors.Is(err, ErrCompileFailed) {
			t.Fatalf("got %v", err)
		}
		if !strings.Contains(err.Error(), "rule errors") {
			t.Fatalf("got %v", err)
		}
	})
}
