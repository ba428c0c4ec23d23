package strudoconfigs

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/reusee/dscope"
	"github.com/reusee/strudo/configs"
	"github.com/reusee/strudo/modes"
)

func TestConfigPrecedence(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "strudo.cue")
	if err := os.WriteFile(path, []byte(
		"tracks_dir: \"sources\"\n"+
			"render_duration: \"12s\"\n",
	), 0644); err != nil {
		t.Fatal(err)
	}

	dscope.New(
		new(Module),
		modes.ForTest(t),
	).Fork(
		dscope.Provide(configs.NewLoader([]string{path}, schema)),
	).Call(func(
		tracksDir TracksDir,
		outDir OutDir,
		duration RenderDuration,
		warmup RenderWarmup,
		ffmpegPath FFmpegPath,
		repoURL StrudelRepoURL,
	) {
		if tracksDir != "sources" {
			t.Fatalf("got %q", tracksDir)
		}
		if outDir != "dist" {
			t.Fatalf("got %q", outDir)
		}
		if time.Duration(duration) != 12*time.Second {
			t.Fatalf("got %v", time.Duration(duration))
		}
		if time.Duration(warmup) != 4*time.Second {
			t.Fatalf("got %v", time.Duration(warmup))
		}
		if ffmpegPath != "ffmpeg" {
			t.Fatalf("got %q", ffmpegPath)
		}
		if repoURL != "https://codeberg.org/uzu/strudel.git" {
			t.Fatalf("got %q", repoURL)
		}
	})
}

func TestFlagOverridesConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "strudo.cue")
	if err := os.WriteFile(path, []byte(
		"out_dir: \"build\"\n",
	), 0644); err != nil {
		t.Fatal(err)
	}

	*outDirFlag = "elsewhere"
	defer func() {
		*outDirFlag = ""
	}()

	dscope.New(
		new(Module),
		modes.ForTest(t),
	).Fork(
		dscope.Provide(configs.NewLoader([]string{path}, schema)),
	).Call(func(
		outDir OutDir,
	) {
		if outDir != "elsewhere" {
			t.Fatalf("got %q", outDir)
		}
	})
}

func TestSchemaRejectsUnknownKeys(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "strudo.cue")
	if err := os.WriteFile(path, []byte(
		"no_such_key: true\n",
	), 0644); err != nil {
		t.Fatal(err)
	}

	loader := configs.NewLoader([]string{path}, schema)
	var str string
	if err := loader.AssignFirst("tracks_dir", &str); err == nil {
		t.Fatal("should reject unknown key")
	}
}
