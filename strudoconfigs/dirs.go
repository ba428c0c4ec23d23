package strudoconfigs

import (
	"github.com/reusee/strudo/cmds"
	"github.com/reusee/strudo/configs"
	"github.com/reusee/strudo/vars"
)

type TracksDir string

var _ configs.Configurable = TracksDir("")

func (TracksDir) ConfigExpr() string {
	return "tracks_dir"
}

var tracksDirFlag = cmds.Var[string]("-tracks-dir")

func (Module) TracksDir(
	loader configs.Loader,
) TracksDir {
	return TracksDir(vars.FirstNonZero(
		*tracksDirFlag,
		configs.First[string](loader, "tracks_dir"),
		"tracks",
	))
}

type OutDir string

var _ configs.Configurable = OutDir("")

func (OutDir) ConfigExpr() string {
	return "out_dir"
}

var outDirFlag = cmds.Var[string]("-out")

func (Module) OutDir(
	loader configs.Loader,
) OutDir {
	return OutDir(vars.FirstNonZero(
		*outDirFlag,
		configs.First[string](loader, "out_dir"),
		"dist",
	))
}

type AudioDir string

var _ configs.Configurable = AudioDir("")

func (AudioDir) ConfigExpr() string {
	return "audio_dir"
}

var audioDirFlag = cmds.Var[string]("-audio")

func (Module) AudioDir(
	loader configs.Loader,
) AudioDir {
	return AudioDir(vars.FirstNonZero(
		*audioDirFlag,
		configs.First[string](loader, "audio_dir"),
		"audio",
	))
}

type RulesDir string

var _ configs.Configurable = RulesDir("")

func (RulesDir) ConfigExpr() string {
	return "rules_dir"
}

var rulesDirFlag = cmds.Var[string]("-rules-dir")

func (Module) RulesDir(
	loader configs.Loader,
) RulesDir {
	return RulesDir(vars.FirstNonZero(
		*rulesDirFlag,
		configs.First[string](loader, "rules_dir"),
		"rules",
	))
}
