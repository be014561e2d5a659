package mmapvm

import "syscall"

// retryEINTR re-issues fn for as long as it fails with EINTR, the one POSIX
// condition where repeating the identical call is always correct: a slow
// syscall (open, ftruncate, stat) interrupted by a signal before it did
// any work.
//
// This is deliberately narrow. It is never used around mmap or munmap:
// those are not safely retryable on arbitrary failure, and a failed
// mmap/munmap always needs to surface to the caller so the manager's own
// state machine can react to it.
func retryEINTR(fn func() error) error {
	for {
		err := fn()
		if err == nil {
			return nil
		}
		if errnoFrom(err) == syscall.EINTR {
			continue
		}
		return err
	}
}
