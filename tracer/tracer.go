// Package tracer runs batches of ray queries against a primitive aggregate
// using a pool of goroutines.
package tracer

import (
	"context"
	"errors"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/sacreative10/PhotorealisticRendering/geom"
	"github.com/sacreative10/PhotorealisticRendering/log"
	"github.com/sacreative10/PhotorealisticRendering/primitive"
	"github.com/sacreative10/PhotorealisticRendering/types"
)

// The default number of rays per block used by Trace.
const DefaultBlockSize = 256

var ErrNilAggregate = errors.New("tracer: nil aggregate")

// The result of tracing a single ray.
type Hit struct {
	Hit bool

	// Hit distance along the ray.
	T float32

	// Hit point and surface normal.
	P types.Vec3
	N types.Vec3

	// The primitive that was hit.
	Primitive primitive.Primitive
}

// Tracer statistics for the last traced batch.
type Stats struct {
	Rays   int
	Hits   int
	Blocks int

	// Wall clock time spent on the batch.
	TraceTime time.Duration
}

// A Tracer traces ray batches against an aggregate. The aggregate is only
// ever queried, so one aggregate can be shared between tracers. A Tracer
// itself must not be used from multiple goroutines.
type Tracer struct {
	logger    log.Logger
	aggregate primitive.Primitive
	scheduler BlockScheduler
	workers   int
	stats     Stats
}

// Create a new tracer. A non-positive worker count selects one worker per CPU.
func New(aggregate primitive.Primitive, scheduler BlockScheduler, workers int) (*Tracer, error) {
	if aggregate == nil {
		return nil, ErrNilAggregate
	}
	if scheduler == nil {
		scheduler = ChunkedScheduler(DefaultBlockSize)
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	return &Tracer{
		logger:    log.New("tracer"),
		aggregate: aggregate,
		scheduler: scheduler,
		workers:   workers,
	}, nil
}

// Workers returns the size of the worker pool.
func (tr *Tracer) Workers() int {
	return tr.workers
}

// Stats returns statistics for the last traced batch.
func (tr *Tracer) Stats() Stats {
	return tr.stats
}

// Trace finds the closest hit for each ray. The i-th result corresponds to
// the i-th ray. Cancelling ctx stops the batch before the next block starts.
func (tr *Tracer) Trace(ctx context.Context, rays []geom.Ray) ([]Hit, error) {
	hits := make([]Hit, len(rays))
	err := tr.run(ctx, len(rays), func(block Block) {
		for i := block.Start; i < block.End; i++ {
			isect, ok := tr.aggregate.Intersect(rays[i])
			if !ok {
				continue
			}
			hits[i] = Hit{
				Hit:       true,
				T:         isect.T,
				P:         isect.P,
				N:         isect.N,
				Primitive: isect.Primitive,
			}
		}
	})
	if err != nil {
		return nil, err
	}

	for i := range hits {
		if hits[i].Hit {
			tr.stats.Hits++
		}
	}
	return hits, nil
}

// Occluded reports for each ray whether it hits anything within its extent.
func (tr *Tracer) Occluded(ctx context.Context, rays []geom.Ray) ([]bool, error) {
	occluded := make([]bool, len(rays))
	err := tr.run(ctx, len(rays), func(block Block) {
		for i := block.Start; i < block.End; i++ {
			occluded[i] = tr.aggregate.IntersectP(rays[i])
		}
	})
	if err != nil {
		return nil, err
	}

	for _, o := range occluded {
		if o {
			tr.stats.Hits++
		}
	}
	return occluded, nil
}

func (tr *Tracer) run(ctx context.Context, numRays int, traceBlock func(Block)) error {
	start := time.Now()
	blocks := tr.scheduler.Schedule(numRays, tr.workers)
	tr.stats = Stats{Rays: numRays, Blocks: len(blocks)}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(tr.workers)
	scheduled := 0
	for _, block := range blocks {
		block := block
		if gctx.Err() != nil {
			break
		}
		scheduled++
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			traceBlock(block)
			return nil
		})
	}
	err := g.Wait()
	if err == nil && scheduled < len(blocks) {
		err = ctx.Err()
	}
	if err != nil {
		tr.logger.Warningf("aborted batch of %d rays: %v", numRays, err)
		return err
	}

	tr.stats.TraceTime = time.Since(start)
	tr.logger.Debugf("traced %d rays in %d blocks using %d workers in %d ms", numRays, len(blocks), tr.workers, tr.stats.TraceTime.Nanoseconds()/1e6)
	return nil
}

// Trace is a shorthand for tracing a single batch with the default chunked
// scheduler.
func Trace(ctx context.Context, aggregate primitive.Primitive, rays []geom.Ray, workers int) ([]Hit, error) {
	tr, err := New(aggregate, nil, workers)
	if err != nil {
		return nil, err
	}
	return tr.Trace(ctx, rays)
}
