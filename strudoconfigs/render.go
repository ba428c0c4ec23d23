package strudoconfigs

import (
	"time"

	"github.com/reusee/strudo/cmds"
	"github.com/reusee/strudo/configs"
	"github.com/reusee/strudo/logs"
)

type RenderDuration time.Duration

var _ configs.Configurable = RenderDuration(0)

func (RenderDuration) ConfigExpr() string {
	return "render_duration"
}

var durationFlag = cmds.Var[time.Duration]("-duration")

func (Module) RenderDuration(
	loader configs.Loader,
	logger logs.Logger,
) RenderDuration {
	if *durationFlag > 0 {
		return RenderDuration(*durationFlag)
	}
	if str := configs.First[string](loader, "render_duration"); str != "" {
		d, err := time.ParseDuration(str)
		if err != nil {
			logger.Warn("bad render_duration in config",
				"value", str,
				"error", err,
			)
		} else if d > 0 {
			return RenderDuration(d)
		}
	}
	return RenderDuration(8 * time.Second)
}

type RenderWarmup time.Duration

var _ configs.Configurable = RenderWarmup(0)

func (RenderWarmup) ConfigExpr() string {
	return "render_warmup"
}

var warmupFlag = cmds.Var[time.Duration]("-warmup")

func (Module) RenderWarmup(
	loader configs.Loader,
	logger logs.Logger,
) RenderWarmup {
	if *warmupFlag > 0 {
		return RenderWarmup(*warmupFlag)
	}
	if str := configs.First[string](loader, "render_warmup"); str != "" {
		d, err := time.ParseDuration(str)
		if err != nil {
			logger.Warn("bad render_warmup in config",
				"value", str,
				"error", err,
			)
		} else if d >= 0 {
			return RenderWarmup(d)
		}
	}
	return RenderWarmup(4 * time.Second)
}
