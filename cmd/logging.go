package cmd

import (
	"github.com/sacreative10/PhotorealisticRendering/log"
	"github.com/urfave/cli"
)

var logger = log.New("bvh-tool")

func setupLogging(ctx *cli.Context) {
	if ctx.GlobalBool("v") {
		log.SetLevel(log.Info)
	}

	if ctx.GlobalBool("vv") {
		log.SetLevel(log.Debug)
	}
}
