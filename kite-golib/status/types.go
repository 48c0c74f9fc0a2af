package status

import (
	"sort"
	"sync"
	"sync/atomic"
)

// Counter is a basic counter metric
type Counter struct {
	Value int64
}

// Add increments the counter by delta
func (c *Counter) Add(delta int64) {
	atomic.AddInt64(&c.Value, delta)
}

// Set sets the counter to val
func (c *Counter) Set(val int64) {
	atomic.StoreInt64(&c.Value, val)
}

// GetValue returns the current count.
func (c *Counter) GetValue() int64 {
	return atomic.LoadInt64(&c.Value)
}

// --

// Ratio is a basic ratio metric. The metric will report the percentage
// that Hit is called (vs Miss).
type Ratio struct {
	Numerator   int64
	Denominator int64
}

// Hit increments the ratio and total count.
func (r *Ratio) Hit() {
	atomic.AddInt64(&r.Numerator, 1)
	atomic.AddInt64(&r.Denominator, 1)
}

// Miss increments the total count without changing the numerator.
func (r *Ratio) Miss() {
	atomic.AddInt64(&r.Denominator, 1)
}

// Record calls Hit if hit is true and Miss otherwise.
func (r *Ratio) Record(hit bool) {
	if hit {
		r.Hit()
		return
	}
	r.Miss()
}

// Counts returns the numerator and denominator.
func (r *Ratio) Counts() (int64, int64) {
	return atomic.LoadInt64(&r.Numerator), atomic.LoadInt64(&r.Denominator)
}

// Value returns the current ratio as a percentage.
func (r *Ratio) Value() float64 {
	numerator, denominator := r.Counts()
	if denominator == 0 {
		return 0
	}
	return 100.0 * float64(numerator) / float64(denominator)
}

// --

// Breakdown is a metric that can be used to show how often different categories of
// a particular kind appear. Categories are created the first time they are hit.
type Breakdown struct {
	m      sync.Mutex
	counts map[string]int64
	total  int64
}

// Hit increments the counter for the provided category, and increments the total.
func (b *Breakdown) Hit(name string) {
	b.m.Lock()
	defer b.m.Unlock()
	if b.counts == nil {
		b.counts = make(map[string]int64)
	}
	b.counts[name]++
	b.total++
}

// Count returns the number of hits for a category.
func (b *Breakdown) Count(name string) int64 {
	b.m.Lock()
	defer b.m.Unlock()
	return b.counts[name]
}

// Categories returns the categories hit so far, sorted by name.
func (b *Breakdown) Categories() []string {
	b.m.Lock()
	defer b.m.Unlock()
	var names []string
	for name := range b.counts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Value returns a map of category to percentage value.
func (b *Breakdown) Value() map[string]float64 {
	b.m.Lock()
	defer b.m.Unlock()
	values := make(map[string]float64)
	for c, n := range b.counts {
		if b.total == 0 {
			values[c] = 0
			continue
		}
		values[c] = 100.0 * float64(n) / float64(b.total)
	}
	return values
}
