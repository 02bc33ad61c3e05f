package cmd

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/sacreative10/PhotorealisticRendering/geom"
	"github.com/sacreative10/PhotorealisticRendering/primitive"
	"github.com/sacreative10/PhotorealisticRendering/scene"
	"github.com/sacreative10/PhotorealisticRendering/tracer"
	"github.com/urfave/cli"
)

// Timing for tracing a ray batch against one aggregate.
type benchResult struct {
	Name      string
	BuildTime time.Duration
	Stats     tracer.Stats
	hits      []tracer.Hit
}

func (r benchResult) raysPerSecond() float64 {
	if r.Stats.TraceTime <= 0 {
		return 0
	}
	return float64(r.Stats.Rays) / r.Stats.TraceTime.Seconds()
}

// Trace random rays through a BVH and a brute force list over the same scene
// and compare timings and hits.
func Bench(ctx *cli.Context) error {
	setupLogging(ctx)

	opts, err := parseBuildOptions(ctx)
	if err != nil {
		return err
	}
	numRays := ctx.Int("rays")
	if numRays <= 0 {
		return fmt.Errorf("invalid ray count %d", numRays)
	}
	workers := ctx.Int("workers")

	sc, tree, err := buildFromOptions(opts)
	if err != nil {
		return err
	}
	rays := scene.RandomRays(rand.New(rand.NewSource(opts.Seed+1)), numRays, sc.Bounds())

	bvhResult, err := benchAggregate(tree.SplitMethod().String()+" bvh", tree, tree.Stats().BuildTime, rays, workers)
	if err != nil {
		return err
	}

	results := []benchResult{bvhResult}
	if !ctx.Bool("skip-list") {
		start := time.Now()
		list := primitive.NewList(sc.Primitives)
		listResult, err := benchAggregate("list", list, time.Since(start), rays, workers)
		if err != nil {
			return err
		}
		results = append(results, listResult)

		if mismatches := compareHits(bvhResult.hits, listResult.hits); mismatches != 0 {
			displayBenchResults(results)
			return fmt.Errorf("bvh and list disagree on %d of %d rays", mismatches, numRays)
		}
	}

	displayBenchResults(results)
	return nil
}

func benchAggregate(name string, aggregate primitive.Primitive, buildTime time.Duration, rays []geom.Ray, workers int) (benchResult, error) {
	tr, err := tracer.New(aggregate, nil, workers)
	if err != nil {
		return benchResult{}, err
	}

	logger.Infof("tracing %d rays through %s using %d workers", len(rays), name, tr.Workers())
	hits, err := tr.Trace(context.Background(), rays)
	if err != nil {
		return benchResult{}, err
	}

	return benchResult{
		Name:      name,
		BuildTime: buildTime,
		Stats:     tr.Stats(),
		hits:      hits,
	}, nil
}

// Count the rays for which two result sets disagree on whether a hit occurred
// or on the hit distance.
func compareHits(a, b []tracer.Hit) int {
	mismatches := 0
	for i := range a {
		if a[i].Hit != b[i].Hit {
			mismatches++
			continue
		}
		if a[i].Hit && math.Abs(float64(a[i].T-b[i].T)) > 1e-4*math.Max(1, math.Abs(float64(a[i].T))) {
			mismatches++
		}
	}
	return mismatches
}

func displayBenchResults(results []benchResult) {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Aggregate", "Build time", "Trace time", "Rays", "Hits", "MRays/s", "Speedup"})

	baseline := results[len(results)-1].raysPerSecond()
	for _, res := range results {
		speedup := "-"
		if baseline > 0 {
			speedup = fmt.Sprintf("%.1fx", res.raysPerSecond()/baseline)
		}
		table.Append([]string{
			res.Name,
			res.BuildTime.String(),
			res.Stats.TraceTime.String(),
			fmt.Sprintf("%d", res.Stats.Rays),
			fmt.Sprintf("%d", res.Stats.Hits),
			fmt.Sprintf("%.3f", res.raysPerSecond()/1e6),
			speedup,
		})
	}

	table.Render()
	logger.Noticef("benchmark results\n%s", buf.String())
}
