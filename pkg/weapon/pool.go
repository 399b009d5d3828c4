// pkg/weapon/pool.go
package weapon

import "sync"

// DefaultPoolCapacity is used when a non-positive capacity is requested
const DefaultPoolCapacity = 1000

// Pool is a fixed-capacity projectile allocator shared by every weapon.
// Acquire fails on exhaustion rather than growing. Access is serialized so
// that callers may fire from more than one goroutine.
type Pool struct {
	mu     sync.Mutex
	items  []Projectile
	free   []int
	nextID uint64
}

// NewPool allocates capacity inert projectiles
func NewPool(capacity int) *Pool {
	if capacity <= 0 {
		capacity = DefaultPoolCapacity
	}
	p := &Pool{
		items: make([]Projectile, capacity),
		free:  make([]int, capacity),
	}
	for i := range p.items {
		p.items[i].index = i
		// pop from the end so low indices are handed out first
		p.free[i] = capacity - 1 - i
	}
	return p
}

// Acquire returns an inactive projectile, or false when none are left.
// The caller must Init it.
func (p *Pool) Acquire() (*Projectile, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	n := len(p.free)
	if n == 0 {
		return nil, false
	}
	idx := p.free[n-1]
	p.free = p.free[:n-1]

	proj := &p.items[idx]
	p.nextID++
	proj.ID = p.nextID
	proj.Active = true
	return proj, true
}

// Release deactivates proj and returns it to the pool. Releasing an inactive
// or foreign projectile does nothing.
func (p *Pool) Release(proj *Projectile) bool {
	if proj == nil {
		return false
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	idx := proj.index
	if idx < 0 || idx >= len(p.items) || &p.items[idx] != proj || !proj.Active {
		return false
	}
	proj.Active = false
	proj.expired = false
	p.free = append(p.free, idx)
	return true
}

// ForEachActive calls fn for every active projectile in slot order.
// fn must not Acquire; it may Release the projectile it is given.
func (p *Pool) ForEachActive(fn func(*Projectile)) {
	for i := range p.items {
		if p.items[i].Active {
			fn(&p.items[i])
		}
	}
}

// Capacity is the fixed pool size
func (p *Pool) Capacity() int {
	return len(p.items)
}

// Available is the number of projectiles that can still be acquired
func (p *Pool) Available() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.free)
}

// ActiveCount is the number of projectiles in flight
func (p *Pool) ActiveCount() int {
	return p.Capacity() - p.Available()
}

// Reset releases every projectile
func (p *Pool) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.free = p.free[:0]
	for i := range p.items {
		p.items[i].Active = false
		p.items[i].expired = false
		p.free = append(p.free, len(p.items)-1-i)
	}
}
