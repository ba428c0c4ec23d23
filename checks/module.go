package checks

import (
	"github.com/reusee/dscope"
	"github.com/reusee/strudo/debugs"
	"github.com/reusee/strudo/logs"
)

type Module struct {
	dscope.Module
	Debugs debugs.Module
	Logs   logs.Module
}
