package strudoconfigs

import (
	"github.com/reusee/dscope"
	"github.com/reusee/strudo/logs"
)

type Module struct {
	dscope.Module
	Logs logs.Module
}
