package tracer

// A contiguous range [Start, End) of a ray batch processed by a single
// goroutine.
type Block struct {
	Start int
	End   int
}

// Len returns the number of rays in the block.
func (b Block) Len() int {
	return b.End - b.Start
}

// The BlockScheduler interface is implemented by all block scheduling algorithms.
type BlockScheduler interface {
	// Split a batch of numRays rays into blocks that are traced by a pool
	// of workers.
	Schedule(numRays, workers int) []Block
}

// The naive scheduler assigns one equally sized block to each worker.
type naiveScheduler struct{}

// Create a new naive scheduler instance.
func NaiveScheduler() BlockScheduler {
	return naiveScheduler{}
}

func (naiveScheduler) Schedule(numRays, workers int) []Block {
	if numRays <= 0 {
		return nil
	}
	if workers < 1 {
		workers = 1
	}
	if workers > numRays {
		workers = numRays
	}

	blocks := make([]Block, workers)
	blockSize := numRays / workers
	start := 0
	for i := range blocks {
		end := start + blockSize
		blocks[i] = Block{Start: start, End: end}
		start = end
	}

	// In case rays don't add up to the batch size append the missing ones to the last block
	blocks[len(blocks)-1].End = numRays
	return blocks
}

// The chunked scheduler splits the batch into many fixed size blocks so that
// idle workers can pick up more work when rays have uneven cost.
type chunkedScheduler struct {
	blockSize int
}

// Create a new chunked scheduler emitting blocks of at most blockSize rays.
func ChunkedScheduler(blockSize int) BlockScheduler {
	if blockSize < 1 {
		blockSize = 1
	}
	return chunkedScheduler{blockSize: blockSize}
}

func (sch chunkedScheduler) Schedule(numRays, _ int) []Block {
	if numRays <= 0 {
		return nil
	}

	blocks := make([]Block, 0, (numRays+sch.blockSize-1)/sch.blockSize)
	for start := 0; start < numRays; start += sch.blockSize {
		end := start + sch.blockSize
		if end > numRays {
			end = numRays
		}
		blocks = append(blocks, Block{Start: start, End: end})
	}
	return blocks
}
