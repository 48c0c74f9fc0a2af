package status

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeferRecord(t *testing.T) {
	d := NewSection("foo").SampleDuration("bar")
	d.SetSampleRate(1.0)

	// to avoid having tests that are sensitive to wall clock time...
	d.DeferRecord(time.Now().Add(-200 * time.Millisecond))

	// we expect some variance due to function overhead
	expected := int64(200 * time.Millisecond)
	actual := d.Values()[0]
	delta := float64(6 * time.Millisecond)
	assert.InDelta(t, expected, actual, delta)
}

func TestSampleDurationReservoir(t *testing.T) {
	d := newSampleDuration()
	for i := 0; i < 3*defaultSampleSize; i++ {
		d.Record(time.Duration(i))
	}
	assert.Len(t, d.Values(), defaultSampleSize)
	assert.EqualValues(t, 3*defaultSampleSize, d.Count())
}

func TestNewSectionReturnsSameSection(t *testing.T) {
	a := NewSection("same")
	b := NewSection("same")
	require.True(t, a == b)
	require.True(t, a.Ratio("r") == b.Ratio("r"))
}

func TestRatio(t *testing.T) {
	var r Ratio
	assert.Equal(t, 0.0, r.Value())
	r.Hit()
	r.Record(false)
	r.Record(true)
	r.Miss()
	assert.Equal(t, 50.0, r.Value())
}

func TestBreakdown(t *testing.T) {
	var b Breakdown
	b.Hit("grammar")
	b.Hit("grammar")
	b.Hit("scope")
	assert.Equal(t, []string{"grammar", "scope"}, b.Categories())
	assert.EqualValues(t, 2, b.Count("grammar"))
	assert.InDelta(t, 100.0/3, b.Value()["scope"], 0.001)
}

func TestRender(t *testing.T) {
	s := NewSection("render test")
	s.Counter("files").Add(1200)
	s.Ratio("hits").Hit()
	s.Breakdown("kinds").Hit("mode")
	s.SampleDuration("parse").Record(time.Millisecond)

	var buf bytes.Buffer
	require.NoError(t, s.Render(&buf))

	out := buf.String()
	assert.Contains(t, out, "render test")
	assert.Contains(t, out, "1,200")
	assert.Contains(t, out, "100%")
	assert.Contains(t, out, "mode")
	assert.Contains(t, out, "n=1")
}
