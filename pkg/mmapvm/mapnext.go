package mmapvm

import "os"

// MapNextOptions controls a single call to MapNext.
type MapNextOptions struct {
	// DontGrowIfFullyMapped, when true, makes MapNext fail with
	// ErrFullyMapped instead of growing the file and/or the reservation.
	DontGrowIfFullyMapped bool

	// ExtraChunksToReserveOnGrow is the minimum number of chunks to add to
	// the reservation when it must grow. The effective growth is
	// max(ExtraChunksToReserveOnGrow, ChunksToMapNext).
	ExtraChunksToReserveOnGrow uint64

	// ChunksToMapNext is how many additional chunks to map. Zero is a
	// valid no-op: MapNext returns success having mapped nothing and
	// moved nothing.
	ChunksToMapNext uint64
}

// MapNextResult reports what a MapNext (or MapFull) call actually did.
type MapNextResult struct {
	// MappingWasMoved is true when growing the reservation required
	// relinquishing the old address range and mapping a new one; any
	// pointers derived from the manager's previous base address are
	// invalid after this.
	MappingWasMoved bool

	// FileExtensionSize is how many bytes the backing file was grown by,
	// zero if the file was already large enough.
	FileExtensionSize uint64
}

// MapNext maps opts.ChunksToMapNext additional chunks of the backing file,
// growing the file and/or the reservation as needed:
//
//   - If the reservation already has room and the file is already that
//     large, the new chunks are mapped directly over already-reserved,
//     unmapped address space: the base address never changes.
//   - If the file is too small, it is extended with ftruncate first.
//   - If the reservation itself is too small, the manager relinquishes its
//     current reservation, reserves a new and larger one (which may or may
//     not land at the same address), and remaps the entire mapped prefix
//     plus the newly requested chunks in one pass.
//
// Both growth paths are skipped, and ErrFullyMapped returned, if
// opts.DontGrowIfFullyMapped is true and either the file or the
// reservation would have to grow. This check always happens before any
// side effect.
func (m *Manager) MapNext(opts MapNextOptions) (MapNextResult, error) {
	var st os.FileInfo
	if err := retryEINTR(func() error {
		var statErr error
		st, statErr = m.file.Stat()
		return statErr
	}); err != nil {
		return MapNextResult{}, newErrno(ErrFailedToStatFile, "failed to stat the managed backing file", errnoFrom(err))
	}

	wantedMapped, err := addChunksChecked(m.numMapped, opts.ChunksToMapNext)
	if err != nil {
		return MapNextResult{}, err
	}

	needGrowFile := uint64(st.Size()) < wantedMapped*m.chunkSize
	needGrowReservation := m.numReserved < wantedMapped

	if (needGrowFile || needGrowReservation) && opts.DontGrowIfFullyMapped {
		return MapNextResult{}, newErr(ErrFullyMapped, "address space fully mapped and DontGrowIfFullyMapped is set")
	}

	var fileExtensionSize uint64

	if needGrowFile {
		newFileSize := wantedMapped * m.chunkSize
		fileExtensionSize = newFileSize - uint64(st.Size())

		if err := retryEINTR(func() error { return m.file.Truncate(int64(newFileSize)) }); err != nil {
			return MapNextResult{}, newErrno(ErrFailedToRemap, "failed to extend file using ftruncate", errnoFrom(err))
		}
	}

	if needGrowReservation {
		growChunks := opts.ExtraChunksToReserveOnGrow
		if opts.ChunksToMapNext > growChunks {
			growChunks = opts.ChunksToMapNext
		}

		if err := m.growReservedAddressSpace(growChunks); err != nil {
			return MapNextResult{}, err
		}

		m.numMapped = wantedMapped

		if err := mapFixedFile(m.addr, m.numMapped*m.chunkSize, m.fd, 0); err != nil {
			return MapNextResult{}, newErrno(ErrFailedToMmap, "failed to remap file after extending address space", errnoFrom(err))
		}

		return MapNextResult{MappingWasMoved: true, FileExtensionSize: fileExtensionSize}, nil
	}

	if err := m.mapNextChunksWithoutGrowingReservation(opts.ChunksToMapNext); err != nil {
		return MapNextResult{}, err
	}

	return MapNextResult{MappingWasMoved: false, FileExtensionSize: fileExtensionSize}, nil
}

// mapNextChunksWithoutGrowingReservation maps count additional chunks at
// the tail of the currently mapped prefix, entirely within already
// reserved address space. The manager's base address never changes.
func (m *Manager) mapNextChunksWithoutGrowingReservation(count uint64) error {
	if count == 0 {
		return nil
	}

	curMappedSize := m.numMapped * m.chunkSize
	nextChunkAddr := m.addr + uintptr(curMappedSize)
	nextChunkSize := count * m.chunkSize

	if err := mapFixedFile(nextChunkAddr, nextChunkSize, m.fd, int64(curMappedSize)); err != nil {
		return newErrno(ErrFailedToRemap, "failed to remap current mapping within already reserved address space", errnoFrom(err))
	}

	m.numMapped += count
	return nil
}

// growReservedAddressSpace relinquishes the current reservation and
// reserves a new, larger one. The new reservation may land at a different
// address; the manager's base address is nulled for the duration of the
// swap so a failure between munmap and mmap leaves IsAlive reporting
// false rather than pointing at a range that no longer exists.
func (m *Manager) growReservedAddressSpace(growChunks uint64) error {
	newReservedChunks := m.numReserved + growChunks
	newReservedSize := newReservedChunks * m.chunkSize

	if err := releaseReservation(m.addr, m.numReserved*m.chunkSize); err != nil {
		return newErrno(ErrFailedToUnmap, "failed to unmap currently reserved address space", errnoFrom(err))
	}
	m.addr = 0

	newAddr, err := reserveAnonymous(newReservedSize)
	if err != nil {
		return newErrno(ErrFailedToMmap, "failed to reserve replacement address space after relinquishing old mapping", errnoFrom(err))
	}

	m.addr = newAddr
	m.numReserved = newReservedChunks
	return nil
}

// MapFull maps whatever suffix of the backing file is not yet mapped,
// growing the reservation if necessary. It is a no-op, returning a zero
// MapNextResult, if the file is no larger than what's already mapped.
func (m *Manager) MapFull() (MapNextResult, error) {
	var st os.FileInfo
	if err := retryEINTR(func() error {
		var statErr error
		st, statErr = m.file.Stat()
		return statErr
	}); err != nil {
		return MapNextResult{}, newErrno(ErrFailedToStatFile, "failed to obtain file size", errnoFrom(err))
	}

	fileSize := uint64(st.Size())
	mappedSize := m.MappedSize()
	if fileSize <= mappedSize {
		return MapNextResult{}, nil
	}

	remaining := fileSize - mappedSize
	if remaining%m.chunkSize != 0 {
		return MapNextResult{}, newErr(ErrPageSizeNonMultiple, "unmapped tail of file is not a multiple of chunk size")
	}

	return m.MapNext(MapNextOptions{
		DontGrowIfFullyMapped: false,
		ChunksToMapNext:       remaining / m.chunkSize,
	})
}

// MapNextUntilExhausted repeatedly maps chunksPerStep chunks at a time,
// clamping the final step to whatever remains, until every reserved chunk
// is mapped. It returns how many steps actually ran.
//
// Each step passes DontGrowIfFullyMapped, so this never grows the file or
// the reservation itself: it only binds chunks the reservation already has
// room for and the file already backs. Callers driving a pre-sized file
// (reserve the whole thing up front, then fill it in steps) get a clean
// stop at Full(); callers whose file is undersized for the reservation get
// ErrFullyMapped surfaced as an error instead of a silent partial fill.
// A chunksPerStep of zero is rejected rather than looping forever.
func (m *Manager) MapNextUntilExhausted(chunksPerStep uint64) (int, error) {
	if chunksPerStep == 0 {
		return 0, newErr(ErrUnknown, "chunksPerStep must be greater than zero")
	}

	steps := 0
	for !m.Full() {
		remaining := uint64(m.ReservedChunks()) - uint64(m.MappedChunks())
		step := chunksPerStep
		if step > remaining {
			step = remaining
		}

		if _, err := m.MapNext(MapNextOptions{DontGrowIfFullyMapped: true, ChunksToMapNext: step}); err != nil {
			return steps, err
		}
		steps++
	}
	return steps, nil
}

// addChunksChecked adds b to a, returning ErrOverflow instead of wrapping
// silently if the sum would overflow uint64.
func addChunksChecked(a, b uint64) (uint64, error) {
	sum := a + b
	if sum < a {
		return 0, newErr(ErrOverflow, "chunk count arithmetic overflowed")
	}
	return sum, nil
}
