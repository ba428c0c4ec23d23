package fetches

import (
	"github.com/reusee/dscope"
	"github.com/reusee/strudo/logs"
	"github.com/reusee/strudo/nets"
)

type Module struct {
	dscope.Module
	Logs logs.Module
	Nets nets.Module
}
