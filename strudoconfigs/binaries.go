package strudoconfigs

import (
	"github.com/reusee/strudo/cmds"
	"github.com/reusee/strudo/configs"
	"github.com/reusee/strudo/vars"
)

type FFmpegPath string

var _ configs.Configurable = FFmpegPath("")

func (FFmpegPath) ConfigExpr() string {
	return "ffmpeg_path"
}

var ffmpegFlag = cmds.Var[string]("-ffmpeg")

func (Module) FFmpegPath(
	loader configs.Loader,
) FFmpegPath {
	return FFmpegPath(vars.FirstNonZero(
		*ffmpegFlag,
		configs.First[string](loader, "ffmpeg_path"),
		"ffmpeg",
	))
}

// BrowserPath is the Chromium executable to drive. Empty means let the
// allocator find one.
type BrowserPath string

var _ configs.Configurable = BrowserPath("")

func (BrowserPath) ConfigExpr() string {
	return "browser_path"
}

var browserFlag = cmds.Var[string]("-browser")

func (Module) BrowserPath(
	loader configs.Loader,
) BrowserPath {
	return BrowserPath(vars.FirstNonZero(
		*browserFlag,
		configs.First[string](loader, "browser_path"),
	))
}
