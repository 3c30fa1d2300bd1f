package main

import (
	"github.com/robotalks/l0boot/pkg/cli/sh"
	"github.com/robotalks/l0boot/pkg/sim/env"
)

//go-build: CGO_ENABLED=0

func init() {
	env.SetupFlags()
}

func main() {
	sh.Main()
}
