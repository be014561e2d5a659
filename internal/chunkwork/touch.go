// Package chunkwork runs bounded-concurrency verification passes over a
// manager's mapped chunks. It exists for stress-testing and diagnostics on
// very large mappings, where checking every chunk sequentially is the
// bottleneck rather than the mapping itself.
package chunkwork

import (
	"context"
	"fmt"

	"github.com/nrawrx3/mmap-exp/pkg/mmapvm"
)

// VerifyFunc inspects one mapped chunk's bytes and reports whether it
// passes whatever check the caller cares about (all-zero on first touch,
// a checksum, a magic header, etc).
type VerifyFunc func(chunkIndex int, data []byte) error

// VerifyResult is the outcome of running a VerifyFunc against one chunk.
type VerifyResult struct {
	ChunkIndex int
	Offset     uint64
	Err        error
}

// VerifyMapped splits a manager's currently mapped bytes into chunk-sized
// spans and runs fn over each with up to cfg.Workers concurrent goroutines,
// returning one VerifyResult per chunk in chunk-index order.
//
// The chunk slices passed to fn share the same underlying mapped memory as
// the manager; fn must not hold onto them across a MapNext/MapFull call
// that could move the mapping.
func VerifyMapped(ctx context.Context, m *mmapvm.Manager, cfg Config, fn VerifyFunc) ([]VerifyResult, error) {
	data := m.Bytes()
	chunkSize := m.ChunkSize()
	if chunkSize == 0 {
		return nil, fmt.Errorf("chunkwork: manager reports a zero chunk size")
	}

	numChunks := len(data) / int(chunkSize)
	indices := make([]int, numChunks)
	for i := range indices {
		indices[i] = i
	}

	outs, errs := runAll(ctx, cfg, indices, func(ctx context.Context, idx int) (VerifyResult, error) {
		offset := uint64(idx) * chunkSize
		chunk := data[offset : offset+chunkSize]
		err := fn(idx, chunk)
		return VerifyResult{ChunkIndex: idx, Offset: offset, Err: err}, err
	})

	results := make([]VerifyResult, numChunks)
	var firstErr error
	for i, r := range outs {
		results[i] = r
		if errs[i] != nil && firstErr == nil {
			firstErr = errs[i]
		}
	}
	return results, firstErr
}

// VerifyZeroFilled is a ready-made VerifyFunc asserting that a freshly
// grown (never-written) chunk reads back as all zero bytes, which POSIX
// guarantees for both a newly ftruncate'd file region and anonymous pages.
func VerifyZeroFilled(chunkIndex int, data []byte) error {
	for i, b := range data {
		if b != 0 {
			return fmt.Errorf("chunk %d: byte %d is %#x, want 0", chunkIndex, i, b)
		}
	}
	return nil
}
