package lints

import (
	"github.com/reusee/dscope"
	"github.com/reusee/strudo/browsers"
)

type Module struct {
	dscope.Module
	Browsers browsers.Module
}
