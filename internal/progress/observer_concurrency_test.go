package progress

import (
	"sync"
	"sync/atomic"
	"testing"
)

// countingObserver counts Update calls and is safe for concurrent use.
type countingObserver struct {
	count atomic.Int64
}

func (o *countingObserver) Update(int, float64) {
	o.count.Add(1)
}

// TestFreezeSnapshotImmutability verifies that observers registered after
// Freeze are not reached by the frozen callback.
func TestFreezeSnapshotImmutability(t *testing.T) {
	subject := NewProgressSubject()
	obs1 := &countingObserver{}
	subject.Register(obs1)

	callback := subject.Freeze(0)

	obs2 := &countingObserver{}
	subject.Register(obs2)

	callback(0.5)

	if obs1.count.Load() != 1 {
		t.Errorf("obs1 should have count 1, got %d", obs1.count.Load())
	}
	if obs2.count.Load() != 0 {
		t.Errorf("obs2 should have count 0, got %d", obs2.count.Load())
	}
}

// TestFreezeConcurrentRegister exercises Freeze and Register from many
// goroutines; run with -race.
func TestFreezeConcurrentRegister(t *testing.T) {
	subject := NewProgressSubject()

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			subject.Register(&countingObserver{})
		}()
		go func(idx int) {
			defer wg.Done()
			subject.Freeze(idx)(0.5)
		}(i)
	}
	wg.Wait()

	if got := subject.ObserverCount(); got != 100 {
		t.Errorf("ObserverCount() = %d, want 100", got)
	}
}

// TestMultipleFrozenCallbacksConcurrent verifies that no update is lost when
// several frozen callbacks fire at once.
func TestMultipleFrozenCallbacksConcurrent(t *testing.T) {
	subject := NewProgressSubject()
	obs := &countingObserver{}
	subject.Register(obs)

	callbacks := make([]ProgressCallback, 10)
	for i := range callbacks {
		callbacks[i] = subject.Freeze(i)
	}

	var wg sync.WaitGroup
	for _, cb := range callbacks {
		wg.Add(1)
		go func(fn ProgressCallback) {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				fn(float64(j) / 1000.0)
			}
		}(cb)
	}
	wg.Wait()

	if want := int64(10 * 1000); obs.count.Load() != want {
		t.Errorf("expected %d updates, got %d", want, obs.count.Load())
	}
}
