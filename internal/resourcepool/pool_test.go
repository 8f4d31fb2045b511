package resourcepool

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLeaseCachesPerWorkerSlot(t *testing.T) {
	p := New("test-pool", Credentials{}, time.Second)

	r1 := p.Lease(0)
	r2 := p.Lease(0)
	r3 := p.Lease(1)

	assert.Same(t, r1, r2)
	assert.NotSame(t, r1, r3)
	assert.Equal(t, 0, r1.WorkerSlot)
	assert.Equal(t, 1, r3.WorkerSlot)
}

func TestLeaseConcurrentSafe(t *testing.T) {
	p := New("test-pool", Credentials{}, time.Second)
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		slot := i % 5
		wg.Add(1)
		go func(slot int) {
			defer wg.Done()
			r := p.Lease(slot)
			assert.Equal(t, slot, r.WorkerSlot)
		}(slot)
	}
	wg.Wait()
}

func TestLimiterSharedAcrossSlots(t *testing.T) {
	p := New("test-pool", Credentials{}, time.Second)
	l1 := p.Limiter("bing", 5, 5)
	l2 := p.Limiter("bing", 999, 999)
	assert.Same(t, l1, l2)
}

func TestReleaseClearsSlot(t *testing.T) {
	p := New("test-pool", Credentials{}, time.Second)
	r1 := p.Lease(0)
	p.Release(0)
	r2 := p.Lease(0)
	assert.NotSame(t, r1, r2)
}
