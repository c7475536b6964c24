package keylock

import (
	"sync"
	"testing"
)

func TestSameKeySerializes(t *testing.T) {
	kl := New()
	counter := 0

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			kl.Lock("cabal-1")
			defer kl.Unlock("cabal-1")
			counter++
		}()
	}
	wg.Wait()

	if counter != 100 {
		t.Errorf("counter = %d, want 100", counter)
	}
}

func TestDifferentKeysIndependent(t *testing.T) {
	kl := New()
	kl.Lock("cabal-1")
	defer kl.Unlock("cabal-1")

	// 持有 cabal-1 锁时 cabal-2 仍可获取
	done := make(chan struct{})
	go func() {
		kl.Lock("cabal-2")
		kl.Unlock("cabal-2")
		close(done)
	}()
	<-done
}

func TestLockReusedForSameKey(t *testing.T) {
	kl := New()
	kl.Lock("battle-1")
	kl.Unlock("battle-1")
	kl.Lock("battle-1")
	kl.Unlock("battle-1")

	if len(kl.locks) != 1 {
		t.Errorf("locks = %d, want 1", len(kl.locks))
	}
}
