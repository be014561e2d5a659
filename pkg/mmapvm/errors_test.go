package mmapvm

import (
	"fmt"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorUnwrapMatchesSentinel(t *testing.T) {
	err := newErr(ErrFullyMapped, "address space fully mapped")
	assert.True(t, Is(err, ErrSentinelFullyMapped))
	assert.False(t, Is(err, ErrSentinelFailedToMmap))
}

func TestErrorMessageIncludesErrno(t *testing.T) {
	err := newErrno(ErrFailedToMmap, "failed to reserve", syscall.ENOMEM)
	require.Contains(t, err.Error(), "failed to mmap")
	require.Contains(t, err.Error(), "failed to reserve")
	require.Contains(t, err.Error(), fmt.Sprint(int(syscall.ENOMEM)))
}

func TestErrnoFromWrapsSyscallErrno(t *testing.T) {
	wrapped := fmt.Errorf("open: %w", syscall.EINTR)
	assert.Equal(t, syscall.EINTR, errnoFrom(wrapped))
}

func TestErrnoFromNonErrnoError(t *testing.T) {
	assert.Equal(t, syscall.Errno(0), errnoFrom(fmt.Errorf("plain error")))
}

func TestIsRetryableOnlyForEINTR(t *testing.T) {
	assert.True(t, IsRetryable(newErrno(ErrFailedToOpenFile, "x", syscall.EINTR)))
	assert.False(t, IsRetryable(newErrno(ErrFailedToOpenFile, "x", syscall.EACCES)))
}

func TestErrorCodeStrings(t *testing.T) {
	codes := []ErrorCode{
		ErrNone, ErrUnknown, ErrFailedToRemap, ErrFailedToMmap, ErrFailedToStatFile,
		ErrFailedToOpenFile, ErrFailedToFtruncate, ErrFailedToUnmap, ErrFailedToCloseFile,
		ErrFullyMapped, ErrPageSizeNonMultiple, ErrOverflow,
	}
	seen := map[string]bool{}
	for _, c := range codes {
		s := c.String()
		require.NotEmpty(t, s)
		require.False(t, seen[s], "duplicate string for code %d: %q", int(c), s)
		seen[s] = true
	}
}
