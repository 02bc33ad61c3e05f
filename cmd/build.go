package cmd

import (
	"bytes"
	"fmt"

	"github.com/olekukonko/tablewriter"
	"github.com/sacreative10/PhotorealisticRendering/accel/bvh"
	"github.com/urfave/cli"
)

// Build a BVH over a random sphere scene and display its statistics.
func BuildBVH(ctx *cli.Context) error {
	setupLogging(ctx)

	opts, err := parseBuildOptions(ctx)
	if err != nil {
		return err
	}

	_, tree, err := buildFromOptions(opts)
	if err != nil {
		return err
	}

	displayBuildStats(tree.Stats())

	if out := ctx.String("plot"); out != "" {
		title := fmt.Sprintf("%s BVH over %d primitives", tree.SplitMethod(), opts.NumPrims)
		return plotLeafHistogram(tree.Nodes(), title, out)
	}
	return nil
}

func displayBuildStats(stats bvh.Stats) {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Statistic", "Value"})
	table.AppendBulk([][]string{
		{"Split method", stats.SplitMethod.String()},
		{"Primitives", fmt.Sprintf("%d", stats.Primitives)},
		{"Total nodes", fmt.Sprintf("%d", stats.TotalNodes)},
		{"Interior nodes", fmt.Sprintf("%d", stats.InteriorNodes)},
		{"Leaf nodes", fmt.Sprintf("%d", stats.LeafNodes)},
		{"Max depth", fmt.Sprintf("%d", stats.MaxDepth)},
		{"Max prims / leaf", fmt.Sprintf("%d", stats.MaxLeafPrims)},
		{"Avg prims / leaf", fmt.Sprintf("%.2f", stats.AvgLeafPrims)},
		{"Node memory", fmt.Sprintf("%d KiB", stats.NodeBytes/1024)},
	})
	table.SetFooter([]string{"Build time", stats.BuildTime.String()})

	table.Render()
	logger.Noticef("BVH statistics\n%s", buf.String())
}
