package tracer

import (
	"context"
	"errors"
	"math/rand"
	"testing"

	"github.com/sacreative10/PhotorealisticRendering/geom"
	"github.com/sacreative10/PhotorealisticRendering/primitive"
	"github.com/sacreative10/PhotorealisticRendering/scene"
	"github.com/sacreative10/PhotorealisticRendering/types"
)

func testAggregate() (*primitive.List, []geom.Ray) {
	bounds := geom.NewBounds(types.XYZ(-1, -1, -1), types.XYZ(1, 1, 1))
	sc := scene.RandomSpheres(rand.New(rand.NewSource(1)), 50, bounds, 0.05, 0.2)
	list := primitive.NewList(sc.Primitives)
	rays := scene.RandomRays(rand.New(rand.NewSource(2)), 1000, list.WorldBound())
	return list, rays
}

func TestTraceMatchesSequentialQueries(t *testing.T) {
	list, rays := testAggregate()

	schedulers := []BlockScheduler{NaiveScheduler(), ChunkedScheduler(16), nil}
	for index, sch := range schedulers {
		tr, err := New(list, sch, 4)
		if err != nil {
			t.Fatal(err)
		}

		hits, err := tr.Trace(context.Background(), rays)
		if err != nil {
			t.Fatalf("[scheduler %d] unexpected error: %v", index, err)
		}
		if len(hits) != len(rays) {
			t.Fatalf("[scheduler %d] expected %d results; got %d", index, len(rays), len(hits))
		}

		expHits := 0
		for i, ray := range rays {
			isect, hit := list.Intersect(ray)
			if hits[i].Hit != hit {
				t.Fatalf("[scheduler %d ray %d] expected hit to be %t; got %t", index, i, hit, hits[i].Hit)
			}
			if hit {
				expHits++
				if hits[i].T != isect.T || hits[i].Primitive != isect.Primitive {
					t.Fatalf("[scheduler %d ray %d] expected hit at %f; got %f", index, i, isect.T, hits[i].T)
				}
			}
		}

		stats := tr.Stats()
		if stats.Rays != len(rays) || stats.Hits != expHits {
			t.Fatalf("[scheduler %d] expected %d rays and %d hits; got %d and %d", index, len(rays), expHits, stats.Rays, stats.Hits)
		}
		if expHits == 0 {
			t.Fatalf("[scheduler %d] expected some rays to hit", index)
		}
	}
}

func TestOccluded(t *testing.T) {
	list, rays := testAggregate()
	tr, err := New(list, ChunkedScheduler(32), 3)
	if err != nil {
		t.Fatal(err)
	}

	occluded, err := tr.Occluded(context.Background(), rays)
	if err != nil {
		t.Fatal(err)
	}
	for i, ray := range rays {
		if exp := list.IntersectP(ray); occluded[i] != exp {
			t.Fatalf("[ray %d] expected occlusion to be %t; got %t", i, exp, occluded[i])
		}
	}
}

func TestTraceHelper(t *testing.T) {
	list, rays := testAggregate()
	hits, err := Trace(context.Background(), list, rays, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(hits) != len(rays) {
		t.Fatalf("expected %d results; got %d", len(rays), len(hits))
	}

	if _, err = Trace(context.Background(), nil, rays, 1); !errors.Is(err, ErrNilAggregate) {
		t.Fatalf("expected ErrNilAggregate; got %v", err)
	}
}

func TestTraceCancelled(t *testing.T) {
	list, rays := testAggregate()
	tr, err := New(list, ChunkedScheduler(8), 2)
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err = tr.Trace(ctx, rays); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled; got %v", err)
	}
	if _, err = tr.Occluded(ctx, rays); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled; got %v", err)
	}
}

func TestTraceEmptyBatch(t *testing.T) {
	list, _ := testAggregate()
	tr, err := New(list, nil, 2)
	if err != nil {
		t.Fatal(err)
	}
	hits, err := tr.Trace(context.Background(), nil)
	if err != nil || len(hits) != 0 {
		t.Fatalf("expected no results and no error; got %d results and %v", len(hits), err)
	}
}
