package compiles

import (
	"github.com/reusee/dscope"
	"github.com/reusee/strudo/checks"
	"github.com/reusee/strudo/lints"
	"github.com/reusee/strudo/logs"
)

type Module struct {
	dscope.Module
	Checks checks.Module
	Lints  lints.Module
	Logs   logs.Module
}
