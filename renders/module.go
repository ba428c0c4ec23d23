package renders

import (
	"github.com/reusee/dscope"
	"github.com/reusee/strudo/browsers"
	"github.com/reusee/strudo/ffmpegs"
)

type Module struct {
	dscope.Module
	Browsers browsers.Module
	FFmpegs  ffmpegs.Module
}
