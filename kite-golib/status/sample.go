package status

import (
	"math/rand"
	"sync"
	"time"

	"github.com/montanaflynn/stats"
)

const defaultSampleSize = 1024

// SampleDuration keeps a bounded reservoir of observed durations.
type SampleDuration struct {
	m      sync.Mutex
	rate   float64
	seen   int64
	values []int64
	rand   *rand.Rand
}

func newSampleDuration() *SampleDuration {
	return &SampleDuration{
		rate: 1.0,
		rand: rand.New(rand.NewSource(1)),
	}
}

// SetSampleRate sets the fraction of records that are kept.
func (d *SampleDuration) SetSampleRate(rate float64) {
	d.m.Lock()
	defer d.m.Unlock()
	d.rate = rate
}

// Record adds a duration to the reservoir.
func (d *SampleDuration) Record(v time.Duration) {
	d.m.Lock()
	defer d.m.Unlock()
	if d.rate < 1.0 && d.rand.Float64() >= d.rate {
		return
	}
	d.seen++
	if len(d.values) < defaultSampleSize {
		d.values = append(d.values, int64(v))
		return
	}
	// reservoir sampling keeps every observation equally likely
	if i := d.rand.Int63n(d.seen); i < defaultSampleSize {
		d.values[i] = int64(v)
	}
}

// DeferRecord records the time elapsed since start, meant to be used as
//   defer d.DeferRecord(time.Now())
func (d *SampleDuration) DeferRecord(start time.Time) {
	d.Record(time.Since(start))
}

// Values returns a copy of the sampled values, in nanoseconds.
func (d *SampleDuration) Values() []int64 {
	d.m.Lock()
	defer d.m.Unlock()
	return append([]int64(nil), d.values...)
}

// Count returns the number of recorded samples, including those evicted from the reservoir.
func (d *SampleDuration) Count() int64 {
	d.m.Lock()
	defer d.m.Unlock()
	return d.seen
}

// Percentile returns the given percentile (0-100] of the sampled durations.
func (d *SampleDuration) Percentile(p float64) time.Duration {
	values := d.Values()
	if len(values) == 0 {
		return 0
	}
	data := make(stats.Float64Data, 0, len(values))
	for _, v := range values {
		data = append(data, float64(v))
	}
	f, err := stats.Percentile(data, p)
	if err != nil {
		return 0
	}
	return time.Duration(f)
}
