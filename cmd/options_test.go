package cmd

import (
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/sacreative10/PhotorealisticRendering/accel/bvh"
	"github.com/sacreative10/PhotorealisticRendering/tracer"
	"github.com/urfave/cli"
)

func newTestContext(t *testing.T, args ...string) *cli.Context {
	set := flag.NewFlagSet("test", flag.ContinueOnError)
	for _, f := range SceneFlags {
		f.Apply(set)
	}
	if err := set.Parse(args); err != nil {
		t.Fatal(err)
	}
	return cli.NewContext(cli.NewApp(), set, nil)
}

func TestParseBuildOptions(t *testing.T) {
	ctx := newTestContext(t, "--prims", "50", "--split", "middle", "--max-prims", "2", "--bounds", "0,0,0,1,2,3")
	opts, err := parseBuildOptions(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if opts.NumPrims != 50 || opts.MaxPrims != 2 || opts.SplitMethod != bvh.Middle {
		t.Fatalf("unexpected options %+v", opts)
	}
	if opts.Bounds.Max[2] != 3 {
		t.Fatalf("expected bounds max z to be 3; got %f", opts.Bounds.Max[2])
	}

	sc, tree, err := buildFromOptions(opts)
	if err != nil {
		t.Fatal(err)
	}
	if len(sc.Primitives) != 50 || tree.Stats().Primitives != 50 {
		t.Fatalf("expected 50 primitives; got %d", len(sc.Primitives))
	}
}

func TestParseBuildOptionsErrors(t *testing.T) {
	specs := [][]string{
		{"--split", "octree"},
		{"--bounds", "1,2,3"},
		{"--radius", "0"},
		{"--prims", "-1"},
	}

	for index, args := range specs {
		if _, err := parseBuildOptions(newTestContext(t, args...)); err == nil {
			t.Fatalf("[spec %d] expected an error for args %v", index, args)
		}
	}
}

func TestCompareHits(t *testing.T) {
	a := []tracer.Hit{{Hit: true, T: 1}, {}, {Hit: true, T: 2}, {Hit: true, T: 3}}
	b := []tracer.Hit{{Hit: true, T: 1}, {}, {}, {Hit: true, T: 3.5}}
	if got := compareHits(a, b); got != 2 {
		t.Fatalf("expected 2 mismatches; got %d", got)
	}
}

func TestLeafSizeHistogram(t *testing.T) {
	nodes := []bvh.LinearNode{
		{Offset: 2},
		{NPrimitives: 1},
		{NPrimitives: 3},
	}
	counts := leafSizeHistogram(nodes)
	exp := []int{1, 0, 1}
	if len(counts) != len(exp) {
		t.Fatalf("expected %d buckets; got %d", len(exp), len(counts))
	}
	for i := range exp {
		if counts[i] != exp[i] {
			t.Fatalf("expected bucket %d to be %d; got %d", i, exp[i], counts[i])
		}
	}
}

func TestPlotLeafHistogram(t *testing.T) {
	opts, err := parseBuildOptions(newTestContext(t, "--prims", "200"))
	if err != nil {
		t.Fatal(err)
	}
	_, tree, err := buildFromOptions(opts)
	if err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "leafs.png")
	if err = plotLeafHistogram(tree.Nodes(), "test", path); err != nil {
		t.Fatal(err)
	}
	if info, err := os.Stat(path); err != nil || info.Size() == 0 {
		t.Fatalf("expected a non-empty image at %s; got %v", path, err)
	}

	if err = plotLeafHistogram(nil, "empty", path); err == nil {
		t.Fatal("expected an error when plotting without leafs")
	}
}
