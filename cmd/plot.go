package cmd

import (
	"errors"
	"fmt"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/sacreative10/PhotorealisticRendering/accel/bvh"
)

// Count the number of leafs holding each primitive count. Index i of the
// result holds the number of leafs with i+1 primitives.
func leafSizeHistogram(nodes []bvh.LinearNode) []int {
	var counts []int
	for i := range nodes {
		if !nodes[i].IsLeaf() {
			continue
		}
		n := int(nodes[i].NPrimitives)
		for len(counts) < n {
			counts = append(counts, 0)
		}
		counts[n-1]++
	}
	return counts
}

// Render a bar chart of leaf sizes. The image format is selected by the
// file extension (png, svg, pdf, ...).
func plotLeafHistogram(nodes []bvh.LinearNode, title, path string) error {
	counts := leafSizeHistogram(nodes)
	if len(counts) == 0 {
		return errors.New("no leaf nodes to plot")
	}

	values := make(plotter.Values, len(counts))
	labels := make([]string, len(counts))
	for i, c := range counts {
		values[i] = float64(c)
		labels[i] = fmt.Sprintf("%d", i+1)
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "primitives per leaf"
	p.Y.Label.Text = "leafs"

	bars, err := plotter.NewBarChart(values, vg.Points(20))
	if err != nil {
		return err
	}
	p.Add(bars)
	p.NominalX(labels...)

	if err = p.Save(6*vg.Inch, 4*vg.Inch, path); err != nil {
		return err
	}
	logger.Noticef("wrote leaf size histogram to %s", filepath.Clean(path))
	return nil
}
