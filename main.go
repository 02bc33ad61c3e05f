package main

import (
	"fmt"
	"os"

	"github.com/sacreative10/PhotorealisticRendering/cmd"
	"github.com/urfave/cli"
)

func main() {
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	app := cli.NewApp()
	app.Name = "bvh-tool"
	app.Usage = "build and query bounding volume hierarchies over synthetic scenes"
	app.Version = "0.0.1"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:  "build",
			Usage: "build a BVH over random spheres and display its statistics",
			Description: `
Generate a scene of randomly placed spheres, build a bounding volume hierarchy
over it using the selected split method and print node, leaf and depth
statistics.`,
			Flags: append([]cli.Flag{
				cli.StringFlag{
					Name:  "plot",
					Usage: "write a leaf size histogram to this image file (png, svg or pdf)",
				},
			}, cmd.SceneFlags...),
			Action: cmd.BuildBVH,
		},
		{
			Name:  "bench",
			Usage: "compare BVH traversal against brute force intersection",
			Description: `
Trace a batch of random rays through the BVH and through a linear list of the
same primitives. Both runs use a pool of worker goroutines. The command fails
if the two aggregates disagree on any hit.`,
			Flags: append([]cli.Flag{
				cli.IntFlag{
					Name:  "rays",
					Value: 100000,
					Usage: "number of random rays",
				},
				cli.IntFlag{
					Name:  "workers",
					Value: 0,
					Usage: "number of worker goroutines (0 = one per cpu)",
				},
				cli.BoolFlag{
					Name:  "skip-list",
					Usage: "only trace the BVH",
				},
			}, cmd.SceneFlags...),
			Action: cmd.Bench,
		},
		{
			Name:  "dump",
			Usage: "write the BVH node layout to a snapshot archive",
			Flags: append([]cli.Flag{
				cli.StringFlag{
					Name:  "out, o",
					Value: "bvh.zip",
					Usage: "snapshot filename",
				},
			}, cmd.SceneFlags...),
			Action: cmd.DumpSnapshot,
		},
		{
			Name:      "inspect",
			Usage:     "display the contents of a snapshot archive",
			ArgsUsage: "snapshot.zip",
			Flags: []cli.Flag{
				cli.IntFlag{
					Name:  "limit",
					Value: 32,
					Usage: "number of nodes to display (0 = all)",
				},
				cli.StringFlag{
					Name:  "plot",
					Usage: "write a leaf size histogram to this image file (png, svg or pdf)",
				},
			},
			Action: cmd.InspectSnapshot,
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
