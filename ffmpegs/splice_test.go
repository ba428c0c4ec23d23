package ffmpegs

import (
	"context"
	"testing"

	"github.com/reusee/dscope"
	"github.com/reusee/strudo/configs"
	"github.com/reusee/strudo/modes"
	"github.com/reusee/strudo/strudoconfigs"
)

func testRunner(t *testing.T) *Runner {
	var runner *Runner
	dscope.New(
		new(Module),
		modes.ForTest(t),
		dscope.Provide(strudoconfigs.FFmpegPath("ffmpeg")),
		dscope.Provide(configs.NewLoader(nil, "")),
	).Call(func(
		r *Runner,
	) {
		runner = r
	})
	return runner
}

func TestConcatList(t *testing.T) {
	got := concatList([]string{"a.wav", "b.wav"})
	expected := "file 'a.wav'\nfile 'b.wav'\n"
	if got != expected {
		t.Fatalf("got %q", got)
	}
}

func TestLoopFiltergraph(t *testing.T) {
	got := loopFiltergraph(3)
	expected := "[0:a][1:a][2:a]concat=n=3:v=0:a=1[out]"
	if got != expected {
		t.Fatalf("got %q", got)
	}
}

func TestConcatRequiresInputs(t *testing.T) {
	runner := testRunner(t)
	if err := runner.Concat(context.Background(), nil, t.TempDir()+"/out.wav"); err == nil {
		t.Fatal("should error")
	}
}

func TestLoopRequiresPositiveRepeats(t *testing.T) {
	runner := testRunner(t)
	if err := runner.Loop(context.Background(), "in.wav", 0, t.TempDir()+"/out.wav"); err == nil {
		t.Fatal("should error")
	}
}

func TestConvertRejectsUnknownFormat(t *testing.T) {
	runner := testRunner(t)
	if _, err := runner.Convert(context.Background(), "x.webm", "ogg"); err == nil {
		t.Fatal("should error")
	}
}

func TestStderrTail(t *testing.T) {
	got := stderrTail("a\nb\nc\nd\ne\nf\ng\n")
	if got != "c\nd\ne\nf\ng" {
		t.Fatalf("got %q", got)
	}
	if stderrTail("one") != "one" {
		t.Fatal()
	}
}
