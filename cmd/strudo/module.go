package main

import (
	"github.com/reusee/dscope"
	"github.com/reusee/strudo/compiles"
	"github.com/reusee/strudo/fetches"
	"github.com/reusee/strudo/renders"
	"github.com/reusee/strudo/strudoconfigs"
)

type Module struct {
	dscope.Module
	Configs  strudoconfigs.Module
	Compiles compiles.Module
	Renders  renders.Module
	Fetches  fetches.Module
}
