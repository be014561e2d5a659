//go:build unix

package mmapvm

import (
	"runtime"
	"unsafe"

	"golang.org/x/sys/unix"
)

// reserveAnonymous carves out a PROT_NONE anonymous mapping of the given
// size. No address is requested, so the kernel picks one; this becomes the
// reservation's base address until grown. PROT_NONE means the range is
// address space only, not backed by any page the process can touch, until a
// later mapFixedFile overlay makes part of it accessible.
func reserveAnonymous(size uint64) (uintptr, error) {
	b, err := unix.Mmap(-1, 0, int(size), unix.PROT_NONE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return 0, err
	}
	addr := uintptr(unsafe.Pointer(&b[0]))
	// The []byte header unix.Mmap returns is discarded deliberately: this
	// package tracks reservations by address and size and reconstructs a
	// slice view with unsafe.Slice only when a caller asks for the mapped
	// bytes, mirroring how the C struct only ever carried a bare pointer.
	runtime.KeepAlive(b)
	return addr, nil
}

// releaseReservation unmaps a previously reserved range in its entirety.
func releaseReservation(addr uintptr, size uint64) error {
	b := unsafe.Slice((*byte)(unsafe.Pointer(addr)), size)
	return unix.Munmap(b)
}

// mapFixedFile overlays a file-backed MAP_FIXED|MAP_SHARED mapping of
// length bytes at addr, reading/writing the backing file starting at
// fileOffset. addr must fall inside a live anonymous reservation obtained
// from reserveAnonymous: MAP_FIXED silently replaces whatever was mapped
// there before, which is exactly the overlay behavior the growth algorithm
// relies on, but it will just as silently clobber unrelated mappings if
// addr is wrong.
//
// golang.org/x/sys/unix.Mmap has no parameter for a caller-chosen address,
// so the fixed-address overlay goes through the raw syscall instead.
func mapFixedFile(addr uintptr, length uint64, fd int, fileOffset int64) error {
	_, _, errno := unix.Syscall6(
		unix.SYS_MMAP,
		addr,
		uintptr(length),
		uintptr(unix.PROT_READ|unix.PROT_WRITE),
		uintptr(unix.MAP_FIXED|unix.MAP_SHARED),
		uintptr(fd),
		uintptr(fileOffset),
	)
	if errno != 0 {
		return errno
	}
	return nil
}

// mappedBytes returns a []byte view over a live mapped range, for callers
// that want direct access to the mapped region (e.g. verification reads in
// internal/chunkwork). The returned slice is only valid as long as the
// manager that produced addr/size stays alive and doesn't move or shrink
// the reservation.
func mappedBytes(addr uintptr, size uint64) []byte {
	if size == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(addr)), size)
}
