package crawl

import (
	"sync"
	"time"

	"github.com/cuemby/addoncrawl/pkg/metrics"
)

// admitInterval is how often a blocked admission waiter rechecks the
// poison flag, standing in for the short repeating timeout spec.md §5
// calls for (Rust's Condvar::wait_timeout; sync.Cond has no built-in
// timeout, so a background goroutine broadcasts on this period
// instead).
const admitInterval = 100 * time.Millisecond

// gate is the admission semaphore: a mutex-guarded active count plus a
// condition variable, with last-slot detection and an independent
// read/write-locked poison flag (readers dominate, per spec.md §5).
type gate struct {
	mu     sync.Mutex
	cond   *sync.Cond
	active int
	cap    int

	poisonMu sync.RWMutex
	poisoned bool

	stop chan struct{}
}

// newGate builds a gate with the given concurrency cap. initialActive
// seeds the active count, used so that the root node's own goroutine
// occupies a slot without a separate admission call.
func newGate(capN, initialActive int) *gate {
	g := &gate{cap: capN, active: initialActive, stop: make(chan struct{})}
	g.cond = sync.NewCond(&g.mu)
	metrics.WorkersActive.Add(float64(initialActive))
	go g.tick()
	return g
}

func (g *gate) tick() {
	ticker := time.NewTicker(admitInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			g.mu.Lock()
			g.cond.Broadcast()
			g.mu.Unlock()
		case <-g.stop:
			return
		}
	}
}

// close stops the gate's background broadcaster. Call once, when the
// crawl that owns this gate is done.
func (g *gate) close() {
	close(g.stop)
}

func (g *gate) isPoisoned() bool {
	g.poisonMu.RLock()
	defer g.poisonMu.RUnlock()
	return g.poisoned
}

// poison sets the flag and wakes every admission waiter so they can
// notice it promptly rather than waiting for the next tick.
func (g *gate) poison() {
	g.poisonMu.Lock()
	g.poisoned = true
	g.poisonMu.Unlock()

	g.mu.Lock()
	g.cond.Broadcast()
	g.mu.Unlock()
}

// admit blocks until a slot is free or the gate is poisoned. ok is
// false when the gate was poisoned before a slot became available, in
// which case the caller must abandon whatever it was about to spawn.
// lastSlot is true when this admission filled every remaining slot,
// the trigger for the scheduler's last-slot inline-join rule.
func (g *gate) admit() (lastSlot bool, ok bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	for {
		if g.isPoisoned() {
			return false, false
		}
		if g.active < g.cap {
			g.active++
			metrics.WorkersActive.Inc()
			return g.active == g.cap, true
		}
		g.cond.Wait()
	}
}

// release frees one slot and wakes any admission waiters.
func (g *gate) release() {
	g.mu.Lock()
	g.active--
	g.cond.Broadcast()
	g.mu.Unlock()
	metrics.WorkersActive.Dec()
}
