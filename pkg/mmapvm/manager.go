package mmapvm

import (
	"os"
)

// CreateOptions configures a new Manager.
type CreateOptions struct {
	// BackingFile is the path to the file that will be mapped. It is
	// created with mode 0644 if it doesn't already exist.
	BackingFile string

	// InitialReservedSize is the address space, in bytes, to reserve up
	// front. It is rounded up to DefaultChunkSize and floored at one
	// chunk.
	InitialReservedSize uint64

	// ReserveExistingFileSize, when true, reserves however much address
	// space the backing file already occupies (rounded up to a chunk
	// boundary) instead of InitialReservedSize, whichever is larger.
	ReserveExistingFileSize bool
}

// Manager owns one contiguous reserved virtual-address range and maps a
// growing prefix of it onto a backing file, one or more chunks at a time.
// A Manager is not safe for concurrent use; callers needing concurrent
// access must serialize their own calls.
type Manager struct {
	addr uintptr
	file *os.File
	fd   int
	path string

	chunkSize   uint64
	numReserved uint64 // chunks
	numMapped   uint64 // chunks
}

// Create opens (creating if necessary) the backing file, reserves address
// space for it, and returns a live Manager with zero chunks mapped.
//
// On failure the returned error is always of type *Error and the returned
// Manager is nil. No address space is left reserved, and a backing file
// that was opened is closed again before Create returns.
func Create(opts CreateOptions) (*Manager, error) {
	chunkSize := DefaultChunkSize
	if opts.InitialReservedSize < chunkSize {
		opts.InitialReservedSize = chunkSize
	}

	var f *os.File
	if err := retryEINTR(func() error {
		var openErr error
		f, openErr = os.OpenFile(opts.BackingFile, os.O_RDWR|os.O_CREATE, 0644)
		return openErr
	}); err != nil {
		return nil, newErrno(ErrFailedToOpenFile, "failed to open backing file", errnoFrom(err))
	}

	var st os.FileInfo
	if err := retryEINTR(func() error {
		var statErr error
		st, statErr = f.Stat()
		return statErr
	}); err != nil {
		f.Close()
		return nil, newErrno(ErrFailedToStatFile, "failed to stat backing file", errnoFrom(err))
	}

	existingSize := uint64(st.Size())
	newFileSize := alignForward(existingSize, chunkSize)

	if newFileSize != existingSize {
		if err := retryEINTR(func() error { return f.Truncate(int64(newFileSize)) }); err != nil {
			f.Close()
			return nil, newErrno(ErrFailedToFtruncate, "failed to align file size to chunk boundary", errnoFrom(err))
		}
	}

	reservedSize := opts.InitialReservedSize
	if opts.ReserveExistingFileSize && newFileSize > reservedSize {
		reservedSize = newFileSize
	}
	reservedSize = alignForward(reservedSize, chunkSize)

	addr, err := reserveAnonymous(reservedSize)
	if err != nil {
		f.Close()
		return nil, newErrno(ErrFailedToMmap, "failed to reserve initial address space", errnoFrom(err))
	}

	return &Manager{
		addr:        addr,
		file:        f,
		fd:          int(f.Fd()),
		path:        opts.BackingFile,
		chunkSize:   chunkSize,
		numReserved: reservedSize / chunkSize,
		numMapped:   0,
	}, nil
}

// Close releases the reserved address space and closes the backing file
// descriptor. After Close returns successfully, IsAlive reports false and
// every other method becomes invalid to call.
func (m *Manager) Close() error {
	if m.addr == 0 {
		return nil
	}

	if err := releaseReservation(m.addr, m.numReserved*m.chunkSize); err != nil {
		return newErrno(ErrFailedToUnmap, "failed to unmap reserved address space", errnoFrom(err))
	}
	m.addr = 0

	if err := m.file.Close(); err != nil {
		return newErrno(ErrFailedToCloseFile, "failed to close backing file", errnoFrom(err))
	}

	return nil
}

// Full reports whether every reserved chunk is currently mapped.
func (m *Manager) Full() bool { return m.numReserved == m.numMapped }

// IsAlive reports whether the manager still owns a live reservation.
func (m *Manager) IsAlive() bool { return m.addr != 0 }

// ReservedSize returns the total reserved address space, in bytes.
func (m *Manager) ReservedSize() uint64 { return m.numReserved * m.chunkSize }

// MappedSize returns the currently mapped prefix of the reservation, in
// bytes.
func (m *Manager) MappedSize() uint64 { return m.numMapped * m.chunkSize }

// ChunkSize returns the fixed chunk size this manager was created with.
func (m *Manager) ChunkSize() uint64 { return m.chunkSize }

// MappedChunks returns the number of chunks currently mapped. This is a
// convenience accessor; MappedSize() == MappedChunks() * ChunkSize().
func (m *Manager) MappedChunks() uint32 { return uint32(m.numMapped) }

// ReservedChunks returns the number of chunks currently reserved.
func (m *Manager) ReservedChunks() uint32 { return uint32(m.numReserved) }

// Bytes returns a []byte view over the currently mapped prefix. The slice
// is invalidated by any subsequent call that moves or grows the mapping
// (MapNext, MapFull, MapNextUntilExhausted); callers must re-fetch it after
// each such call rather than caching it across one.
func (m *Manager) Bytes() []byte {
	return mappedBytes(m.addr, m.MappedSize())
}

// Path returns the backing file path the manager was created with.
func (m *Manager) Path() string { return m.path }
