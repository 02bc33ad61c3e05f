package cmd

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/sacreative10/PhotorealisticRendering/accel/bvh"
	"github.com/sacreative10/PhotorealisticRendering/geom"
	"github.com/sacreative10/PhotorealisticRendering/scene"
	"github.com/urfave/cli"
)

// Scene and BVH parameters shared by all commands.
type buildOptions struct {
	NumPrims    int
	MaxPrims    int
	SplitMethod bvh.SplitMethod
	Seed        int64

	// Sphere radii are sampled in [MaxRadius/10, MaxRadius].
	MaxRadius float32

	// Sphere centers are sampled inside these bounds.
	Bounds geom.Bounds3
}

// SceneFlags lists the flags read by parseBuildOptions.
var SceneFlags = []cli.Flag{
	cli.IntFlag{
		Name:  "prims, n",
		Value: 10000,
		Usage: "number of random spheres",
	},
	cli.IntFlag{
		Name:  "max-prims",
		Value: 4,
		Usage: "maximum number of primitives per leaf",
	},
	cli.StringFlag{
		Name:  "split",
		Value: "sah",
		Usage: "split method (sah, middle, equal)",
	},
	cli.Int64Flag{
		Name:  "seed",
		Value: 1,
		Usage: "random generator seed",
	},
	cli.Float64Flag{
		Name:  "radius",
		Value: 0.05,
		Usage: "maximum sphere radius",
	},
	cli.StringFlag{
		Name:  "bounds",
		Value: "0,0,0,10,10,10",
		Usage: "scene bounds as x0,y0,z0,x1,y1,z1",
	},
}

func parseBuildOptions(ctx *cli.Context) (buildOptions, error) {
	opts := buildOptions{
		NumPrims:  ctx.Int("prims"),
		MaxPrims:  ctx.Int("max-prims"),
		Seed:      ctx.Int64("seed"),
		MaxRadius: float32(ctx.Float64("radius")),
	}

	if opts.NumPrims < 0 {
		return opts, fmt.Errorf("invalid primitive count %d", opts.NumPrims)
	}
	if opts.MaxRadius <= 0 {
		return opts, errors.New("sphere radius must be positive")
	}

	var err error
	if opts.SplitMethod, err = bvh.ParseSplitMethod(ctx.String("split")); err != nil {
		return opts, err
	}
	if opts.Bounds, err = scene.ParseBounds(ctx.String("bounds")); err != nil {
		return opts, err
	}
	return opts, nil
}

// Generate the random sphere scene described by opts.
func (opts buildOptions) scene() *scene.Scene {
	rng := rand.New(rand.NewSource(opts.Seed))
	return scene.RandomSpheres(rng, opts.NumPrims, opts.Bounds, opts.MaxRadius/10, opts.MaxRadius)
}

// Generate the scene described by opts and build a BVH over it.
func buildFromOptions(opts buildOptions) (*scene.Scene, *bvh.BVH, error) {
	sc := opts.scene()
	logger.Infof("generated %d spheres inside %v", len(sc.Primitives), opts.Bounds)

	tree, err := bvh.New(sc.Primitives, opts.MaxPrims, opts.SplitMethod)
	if err != nil {
		return nil, nil, err
	}
	return sc, tree, nil
}
