package keylock

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLockSerializesSameKey(t *testing.T) {
	l := New()

	const goroutines = 50
	counter := 0

	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			l.Lock("session-1")
			defer l.Unlock("session-1")
			counter++
		}()
	}
	wg.Wait()

	assert.Equal(t, goroutines, counter)
}

func TestDifferentKeysDoNotBlock(t *testing.T) {
	l := New()

	l.Lock("a")
	done := make(chan struct{})
	go func() {
		l.Lock("b")
		l.Unlock("b")
		close(done)
	}()

	<-done // would deadlock if "b" waited on "a"
	l.Unlock("a")
}

func TestEntriesReleasedWhenIdle(t *testing.T) {
	l := New()

	l.Lock("a")
	l.Unlock("a")

	l.mu.Lock()
	defer l.mu.Unlock()
	assert.Empty(t, l.entries)
}

func TestUnlockUnheldKeyPanics(t *testing.T) {
	l := New()
	assert.Panics(t, func() { l.Unlock("nope") })
}
