package cmd

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/olekukonko/tablewriter"
	"github.com/sacreative10/PhotorealisticRendering/snapshot"
	"github.com/urfave/cli"
)

// Build a BVH and write its node layout to a snapshot archive.
func DumpSnapshot(ctx *cli.Context) error {
	setupLogging(ctx)

	opts, err := parseBuildOptions(ctx)
	if err != nil {
		return err
	}

	_, tree, err := buildFromOptions(opts)
	if err != nil {
		return err
	}

	return snapshot.Write(ctx.String("out"), snapshot.FromBVH(tree))
}

// Load a snapshot archive and display its header and first nodes.
func InspectSnapshot(ctx *cli.Context) error {
	setupLogging(ctx)

	if ctx.NArg() != 1 {
		return errors.New("missing snapshot file argument")
	}

	snap, err := snapshot.Read(ctx.Args().First())
	if err != nil {
		return err
	}

	displayBuildStats(snap.Header.Stats)
	displayNodes(snap, ctx.Int("limit"))

	if out := ctx.String("plot"); out != "" {
		title := fmt.Sprintf("%s BVH over %d primitives", snap.Header.SplitMethod, snap.Header.Primitives)
		return plotLeafHistogram(snap.Nodes, title, out)
	}
	return nil
}

func displayNodes(snap *snapshot.Snapshot, limit int) {
	if limit <= 0 || limit > len(snap.Nodes) {
		limit = len(snap.Nodes)
	}

	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Node", "Type", "Min", "Max", "Axis", "Offset", "Primitives"})
	for i, node := range snap.Nodes[:limit] {
		kind, axis := "interior", fmt.Sprintf("%d", node.Axis)
		if node.IsLeaf() {
			kind, axis = "leaf", "-"
		}
		table.Append([]string{
			fmt.Sprintf("%d", i),
			kind,
			fmt.Sprintf("%.3v", node.Bounds.Min),
			fmt.Sprintf("%.3v", node.Bounds.Max),
			axis,
			fmt.Sprintf("%d", node.Offset),
			fmt.Sprintf("%d", node.NPrimitives),
		})
	}
	table.SetFooter([]string{"", "", "", "", "", "TOTAL", fmt.Sprintf("%d", len(snap.Nodes))})

	table.Render()
	logger.Noticef("BVH nodes\n%s", buf.String())
}
