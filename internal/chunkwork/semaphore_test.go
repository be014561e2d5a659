package chunkwork

import (
	"context"
	"testing"
	"time"
)

func TestSemaphore_BoundsConcurrency(t *testing.T) {
	sem := newSemaphore(2)

	if err := sem.acquire(context.Background()); err != nil {
		t.Fatalf("acquire 1: %v", err)
	}
	if err := sem.acquire(context.Background()); err != nil {
		t.Fatalf("acquire 2: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if err := sem.acquire(ctx); err == nil {
		t.Errorf("acquire 3 should have blocked until context timeout")
	}

	sem.release()
	if err := sem.acquire(context.Background()); err != nil {
		t.Errorf("acquire after release: %v", err)
	}
}

func TestSemaphore_CloseUnblocksWaiters(t *testing.T) {
	sem := newSemaphore(1)
	if err := sem.acquire(context.Background()); err != nil {
		t.Fatalf("acquire: %v", err)
	}

	done := make(chan error, 1)
	go func() {
		done <- sem.acquire(context.Background())
	}()

	sem.close()

	select {
	case err := <-done:
		if err != ErrSemaphoreClosed {
			t.Errorf("acquire after close = %v, want ErrSemaphoreClosed", err)
		}
	case <-time.After(time.Second):
		t.Fatal("acquire did not return after close")
	}
}

func TestSemaphore_ReleaseWithoutAcquirePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("expected panic releasing an unacquired semaphore")
		}
	}()
	newSemaphore(1).release()
}
