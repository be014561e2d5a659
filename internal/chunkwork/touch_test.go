package chunkwork

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/nrawrx3/mmap-exp/pkg/mmapvm"
)

func TestVerifyMapped_ZeroFilledFreshMapping(t *testing.T) {
	path := filepath.Join(t.TempDir(), "backing.bin")

	m, err := mmapvm.Create(mmapvm.CreateOptions{BackingFile: path, InitialReservedSize: 4 * mmapvm.DefaultChunkSize})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	defer m.Close()

	if _, err := m.MapNext(mmapvm.MapNextOptions{ChunksToMapNext: 3}); err != nil {
		t.Fatalf("MapNext: %v", err)
	}

	results, err := VerifyMapped(context.Background(), m, Config{Workers: 2}, VerifyZeroFilled)
	if err != nil {
		t.Fatalf("VerifyMapped: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("len(results) = %d, want 3", len(results))
	}
	for _, r := range results {
		if r.Err != nil {
			t.Errorf("chunk %d: %v", r.ChunkIndex, r.Err)
		}
	}
}

func TestVerifyMapped_ReportsFailingChunk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "backing.bin")

	m, err := mmapvm.Create(mmapvm.CreateOptions{BackingFile: path, InitialReservedSize: 2 * mmapvm.DefaultChunkSize})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	defer m.Close()

	if _, err := m.MapNext(mmapvm.MapNextOptions{ChunksToMapNext: 2}); err != nil {
		t.Fatalf("MapNext: %v", err)
	}

	m.Bytes()[0] = 1

	_, err = VerifyMapped(context.Background(), m, Config{Workers: 2}, VerifyZeroFilled)
	if err == nil {
		t.Fatal("expected VerifyMapped to report the corrupted chunk")
	}
}
