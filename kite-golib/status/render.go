package status

import (
	"fmt"
	"io"
	"math"
	"text/tabwriter"
	"time"

	humanize "github.com/dustin/go-humanize"
)

// Render writes a plain text report of every registered section.
func Render(w io.Writer) error {
	for _, s := range Sections() {
		if err := s.Render(w); err != nil {
			return err
		}
	}
	return nil
}

// Render writes a plain text report of the section's metrics.
func (s *Section) Render(w io.Writer) error {
	s.m.Lock()
	defer s.m.Unlock()

	tw := tabwriter.NewWriter(w, 4, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "%s\n", s.Name)

	for _, name := range sortedKeys(len(s.Counters), func(f func(string)) {
		for k := range s.Counters {
			f(k)
		}
	}) {
		fmt.Fprintf(tw, "  %s\t%s\n", name, humanize.Comma(s.Counters[name].GetValue()))
	}

	for _, name := range sortedKeys(len(s.Ratios), func(f func(string)) {
		for k := range s.Ratios {
			f(k)
		}
	}) {
		r := s.Ratios[name]
		num, den := r.Counts()
		fmt.Fprintf(tw, "  %s\t%s%% (%s/%s)\n", name,
			humanize.Ftoa(math.Round(r.Value()*100)/100), humanize.Comma(num), humanize.Comma(den))
	}

	for _, name := range sortedKeys(len(s.Breakdowns), func(f func(string)) {
		for k := range s.Breakdowns {
			f(k)
		}
	}) {
		b := s.Breakdowns[name]
		fmt.Fprintf(tw, "  %s\n", name)
		for _, c := range b.Categories() {
			fmt.Fprintf(tw, "    %s\t%s\n", c, humanize.Comma(b.Count(c)))
		}
	}

	for _, name := range sortedKeys(len(s.SampleDurations), func(f func(string)) {
		for k := range s.SampleDurations {
			f(k)
		}
	}) {
		d := s.SampleDurations[name]
		fmt.Fprintf(tw, "  %s\tn=%s\tp50=%s\tp99=%s\n", name, humanize.Comma(d.Count()),
			round(d.Percentile(50)), round(d.Percentile(99)))
	}

	return tw.Flush()
}

func round(d time.Duration) time.Duration {
	switch {
	case d > time.Second:
		return d.Round(time.Millisecond)
	case d > time.Millisecond:
		return d.Round(time.Microsecond)
	default:
		return d
	}
}
