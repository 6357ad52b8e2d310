package convlock

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLockerSerializesSameKey(t *testing.T) {
	l := New()

	const workers = 20
	counter := 0

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			l.Lock("conv-1")
			defer l.Unlock("conv-1")
			// Non-atomic increment only survives if the lock serializes.
			counter++
		}()
	}
	wg.Wait()

	assert.Equal(t, workers, counter)
}

func TestLockerIndependentKeys(t *testing.T) {
	l := New()

	l.Lock("a")
	done := make(chan struct{})
	go func() {
		l.Lock("b")
		l.Unlock("b")
		close(done)
	}()

	// Key b must not block behind key a.
	<-done
	l.Unlock("a")
}

func TestLockerCleansUpEntries(t *testing.T) {
	l := New()

	l.Lock("x")
	l.Unlock("x")

	l.mu.Lock()
	defer l.mu.Unlock()
	assert.Empty(t, l.locks)
}

func TestUnlockUnheldKeyPanics(t *testing.T) {
	l := New()
	assert.Panics(t, func() {
		l.Unlock("nope")
	})
}
