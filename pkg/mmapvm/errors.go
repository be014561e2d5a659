// Package mmapvm implements a file-backed, growable virtual-memory manager.
//
// It owns a single contiguous reserved virtual-address range and
// incrementally binds consecutive fixed-size chunks of that range to a
// backing file, growing either the file or the reservation (or both) on
// demand. Once observed, the base address of the mapped region is stable
// across non-moving growth steps.
package mmapvm

import (
	stderrors "errors"
	"fmt"
	"syscall"
)

// Re-export stdlib errors functions for convenience, so callers inspecting
// a Manager's errors don't need to import both packages.
var (
	Is     = stderrors.Is
	As     = stderrors.As
	Unwrap = stderrors.Unwrap
)

// ErrorCode is the stable, numeric error taxonomy a caller on the other
// side of an FFI boundary would see. Values match the C-ABI surface this
// package's behavior is modeled on exactly.
type ErrorCode int

const (
	ErrNone ErrorCode = iota
	ErrUnknown
	ErrFailedToRemap
	ErrFailedToMmap
	ErrFailedToStatFile
	ErrFailedToOpenFile
	ErrFailedToFtruncate
	ErrFailedToUnmap
	ErrFailedToCloseFile
	ErrFullyMapped
	ErrPageSizeNonMultiple

	// ErrOverflow is a Go-only addition to the numeric taxonomy above: a
	// dedicated precondition error for chunk-count arithmetic that would
	// otherwise wrap silently, instead of reusing ErrUnknown.
	ErrOverflow
)

// String implements fmt.Stringer.
func (c ErrorCode) String() string {
	switch c {
	case ErrNone:
		return "none"
	case ErrUnknown:
		return "unknown"
	case ErrFailedToRemap:
		return "failed to remap"
	case ErrFailedToMmap:
		return "failed to mmap"
	case ErrFailedToStatFile:
		return "failed to stat file"
	case ErrFailedToOpenFile:
		return "failed to open file"
	case ErrFailedToFtruncate:
		return "failed to ftruncate"
	case ErrFailedToUnmap:
		return "failed to unmap"
	case ErrFailedToCloseFile:
		return "failed to close file"
	case ErrFullyMapped:
		return "fully mapped"
	case ErrPageSizeNonMultiple:
		return "not a multiple of chunk size"
	case ErrOverflow:
		return "chunk arithmetic overflow"
	default:
		return "unrecognized error code"
	}
}

// Sentinel errors for errors.Is comparisons against the error kinds above.
// These carry no syscall context; Error (below) is the concrete type
// returned by this package's functions and always wraps one of these.
var (
	ErrSentinelUnknown           = stderrors.New(ErrUnknown.String())
	ErrSentinelFailedToRemap     = stderrors.New(ErrFailedToRemap.String())
	ErrSentinelFailedToMmap      = stderrors.New(ErrFailedToMmap.String())
	ErrSentinelFailedToStatFile  = stderrors.New(ErrFailedToStatFile.String())
	ErrSentinelFailedToOpenFile  = stderrors.New(ErrFailedToOpenFile.String())
	ErrSentinelFailedToFtruncate = stderrors.New(ErrFailedToFtruncate.String())
	ErrSentinelFailedToUnmap     = stderrors.New(ErrFailedToUnmap.String())
	ErrSentinelFailedToCloseFile = stderrors.New(ErrFailedToCloseFile.String())
	ErrSentinelFullyMapped       = stderrors.New(ErrFullyMapped.String())
	ErrSentinelPageSizeNonMult   = stderrors.New(ErrPageSizeNonMultiple.String())
	ErrSentinelOverflow          = stderrors.New(ErrOverflow.String())
)

var codeToSentinel = map[ErrorCode]error{
	ErrUnknown:             ErrSentinelUnknown,
	ErrFailedToRemap:       ErrSentinelFailedToRemap,
	ErrFailedToMmap:        ErrSentinelFailedToMmap,
	ErrFailedToStatFile:    ErrSentinelFailedToStatFile,
	ErrFailedToOpenFile:    ErrSentinelFailedToOpenFile,
	ErrFailedToFtruncate:   ErrSentinelFailedToFtruncate,
	ErrFailedToUnmap:       ErrSentinelFailedToUnmap,
	ErrFailedToCloseFile:   ErrSentinelFailedToCloseFile,
	ErrFullyMapped:         ErrSentinelFullyMapped,
	ErrPageSizeNonMultiple: ErrSentinelPageSizeNonMult,
	ErrOverflow:            ErrSentinelOverflow,
}

// Error is the concrete error type returned by every fallible operation in
// this package. It carries the stable numeric code, a human-readable
// message, and the errno captured at the syscall site (zero when the
// error did not originate from a syscall, e.g. ErrFullyMapped).
type Error struct {
	Code    ErrorCode
	Message string
	Errno   syscall.Errno
}

func (e *Error) Error() string {
	if e.Errno != 0 {
		return fmt.Sprintf("mmapvm: %s: %s (errno %d: %s)", e.Code, e.Message, int(e.Errno), e.Errno.Error())
	}
	return fmt.Sprintf("mmapvm: %s: %s", e.Code, e.Message)
}

// Unwrap lets callers use errors.Is(err, mmapvm.ErrSentinelFullyMapped) and
// similar without needing to know about the concrete Error type.
func (e *Error) Unwrap() error {
	if s, ok := codeToSentinel[e.Code]; ok {
		return s
	}
	return nil
}

func newErr(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message}
}

func newErrno(code ErrorCode, message string, errno syscall.Errno) *Error {
	return &Error{Code: code, Message: message, Errno: errno}
}

// errnoFrom extracts a syscall.Errno from err: the Errno captured on a
// *Error in the chain, or a syscall.Errno wrapped anywhere in the chain (as
// golang.org/x/sys/unix and the os package's *PathError do). It falls back
// to 0 when the chain carries no errno.
func errnoFrom(err error) syscall.Errno {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Errno
	}
	var errno syscall.Errno
	if stderrors.As(err, &errno) {
		return errno
	}
	return 0
}

// IsRetryable reports whether the syscall that produced err returned EINTR,
// the one POSIX condition under which re-issuing the exact same call
// (not the higher-level operation) is always safe.
func IsRetryable(err error) bool {
	return errnoFrom(err) == syscall.EINTR
}
