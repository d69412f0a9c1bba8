package types

import (
	"testing"
	"time"
)

func TestSemaphoreBasic(t *testing.T) {
	sem := NewSemaphore(2)

	// Should be able to acquire twice without blocking.
	sem.Acquire()
	sem.Acquire()

	sem.Release()
	sem.Acquire()

	sem.Release()
	sem.Release()
}

func TestSemaphoreBlocksAtLimit(t *testing.T) {
	sem := NewSemaphore(1)
	sem.Acquire()

	acquired := make(chan struct{})
	go func() {
		sem.Acquire()
		close(acquired)
	}()

	select {
	case <-acquired:
		t.Fatal("second Acquire should have blocked at capacity 1")
	case <-time.After(20 * time.Millisecond):
	}

	sem.Release()
	<-acquired
	sem.Release()
}
