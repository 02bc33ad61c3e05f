// Package snapshot persists the flattened node array of a BVH so that its
// layout can be inspected offline. Primitives are referenced by their index
// in the slice the BVH was built from; primitive geometry is not stored.
package snapshot

import (
	"archive/zip"
	"encoding/gob"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sacreative10/PhotorealisticRendering/accel/bvh"
	"github.com/sacreative10/PhotorealisticRendering/geom"
	"github.com/sacreative10/PhotorealisticRendering/log"
)

// The snapshot format version written by Encode.
const Version = 1

const (
	headerFile = "header.bin"
	nodesFile  = "nodes.bin"
	orderFile  = "primitiveOrder.bin"
)

var (
	ErrMissingEntry       = errors.New("snapshot: missing archive entry")
	ErrUnsupportedVersion = errors.New("snapshot: unsupported version")
	ErrCorrupt            = errors.New("snapshot: corrupt node layout")
)

var logger = log.New("snapshot")

type Header struct {
	Version        int
	SplitMethod    string
	MaxPrimsInNode int
	Primitives     int
	Bounds         geom.Bounds3
	Stats          bvh.Stats
}

type Snapshot struct {
	Header Header

	// The pre-order node array.
	Nodes []bvh.LinearNode

	// For each leaf primitive slot, the index of the primitive in the slice
	// passed to bvh.New.
	PrimitiveOrder []int
}

// FromBVH captures the node layout of a built BVH.
func FromBVH(b *bvh.BVH) *Snapshot {
	return &Snapshot{
		Header: Header{
			Version:        Version,
			SplitMethod:    b.SplitMethod().String(),
			MaxPrimsInNode: b.MaxPrimsInNode(),
			Primitives:     len(b.Primitives()),
			Bounds:         b.WorldBound(),
			Stats:          b.Stats(),
		},
		Nodes:          append([]bvh.LinearNode(nil), b.Nodes()...),
		PrimitiveOrder: append([]int(nil), b.PrimitiveOrder()...),
	}
}

// Validate checks that every node references valid children or primitive
// slots and that the layout is in pre-order.
func (s *Snapshot) Validate() error {
	if len(s.PrimitiveOrder) != s.Header.Primitives {
		return fmt.Errorf("%w: header lists %d primitives; order has %d entries", ErrCorrupt, s.Header.Primitives, len(s.PrimitiveOrder))
	}
	for i := range s.Nodes {
		node := &s.Nodes[i]
		if node.IsLeaf() {
			if end := int(node.Offset) + int(node.NPrimitives); end > len(s.PrimitiveOrder) {
				return fmt.Errorf("%w: leaf %d references primitives up to %d; have %d", ErrCorrupt, i, end, len(s.PrimitiveOrder))
			}
			continue
		}
		if i+1 >= len(s.Nodes) || int(node.Offset) <= i+1 || int(node.Offset) >= len(s.Nodes) {
			return fmt.Errorf("%w: interior node %d has invalid second child %d", ErrCorrupt, i, node.Offset)
		}
	}
	return nil
}

// Encode writes s as a zip archive to w.
func Encode(w io.Writer, s *Snapshot) error {
	zw := zip.NewWriter(w)

	entries := []struct {
		name string
		data interface{}
	}{
		{headerFile, s.Header},
		{nodesFile, s.Nodes},
		{orderFile, s.PrimitiveOrder},
	}
	for _, entry := range entries {
		cw, err := zw.Create(entry.name)
		if err != nil {
			return err
		}
		if err = gob.NewEncoder(cw).Encode(entry.data); err != nil {
			return fmt.Errorf("snapshot: failed to encode %s: %w", entry.name, err)
		}
	}

	return zw.Close()
}

// Decode reads a snapshot from a zip archive of the given size.
func Decode(r io.ReaderAt, size int64) (*Snapshot, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, err
	}

	s := &Snapshot{}
	found := make(map[string]bool, 3)
	var target interface{}
	for _, f := range zr.File {
		switch f.Name {
		case headerFile:
			target = &s.Header
		case nodesFile:
			target = &s.Nodes
		case orderFile:
			target = &s.PrimitiveOrder
		default:
			logger.Warningf("unknown file %s in snapshot archive; skipping", f.Name)
			continue
		}

		rc, err := f.Open()
		if err != nil {
			return nil, err
		}
		err = gob.NewDecoder(rc).Decode(target)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("snapshot: failed to load %s: %w", f.Name, err)
		}
		found[f.Name] = true
	}

	for _, name := range []string{headerFile, nodesFile, orderFile} {
		if !found[name] {
			return nil, fmt.Errorf("%w: %s", ErrMissingEntry, name)
		}
	}
	if s.Header.Version != Version {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, s.Header.Version)
	}
	if err = s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Write stores s in a zip file at path.
func Write(path string, s *Snapshot) error {
	logger.Noticef("writing BVH snapshot to %s", path)
	start := time.Now()

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err = Encode(f, s); err != nil {
		f.Close()
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}

	logger.Infof("wrote %d nodes in %d ms", len(s.Nodes), time.Since(start).Nanoseconds()/1e6)
	return nil
}

// Read loads a snapshot from the zip file at path.
func Read(path string) (*Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}
	return Decode(f, info.Size())
}
