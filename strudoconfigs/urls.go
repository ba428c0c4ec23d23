package strudoconfigs

import (
	"github.com/reusee/strudo/cmds"
	"github.com/reusee/strudo/configs"
	"github.com/reusee/strudo/vars"
)

type StrudelRepoURL string

var _ configs.Configurable = StrudelRepoURL("")

func (StrudelRepoURL) ConfigExpr() string {
	return "strudel_repo_url"
}

var repoURLFlag = cmds.Var[string]("-repo-url")

func (Module) StrudelRepoURL(
	loader configs.Loader,
) StrudelRepoURL {
	return StrudelRepoURL(vars.FirstNonZero(
		*repoURLFlag,
		configs.First[string](loader, "strudel_repo_url"),
		"https://codeberg.org/uzu/strudel.git",
	))
}

type BundleURL string

var _ configs.Configurable = BundleURL("")

func (BundleURL) ConfigExpr() string {
	return "bundle_url"
}

var bundleURLFlag = cmds.Var[string]("-bundle-url")

func (Module) BundleURL(
	loader configs.Loader,
) BundleURL {
	return BundleURL(vars.FirstNonZero(
		*bundleURLFlag,
		configs.First[string](loader, "bundle_url"),
		"https://unpkg.com/@strudel/web@1.2.6/dist/index.js",
	))
}
