package status

import (
	"sort"
	"sync"
)

var registry = struct {
	m        sync.Mutex
	sections map[string]*Section
}{
	sections: make(map[string]*Section),
}

// Section represents a grouping of Counters, Ratios, Durations and Breakdowns.
type Section struct {
	Name string

	Counters        map[string]*Counter
	Ratios          map[string]*Ratio
	Breakdowns      map[string]*Breakdown
	SampleDurations map[string]*SampleDuration

	m sync.Mutex
}

// NewSection returns the Section registered under name, creating it if needed.
func NewSection(name string) *Section {
	registry.m.Lock()
	defer registry.m.Unlock()

	section, exists := registry.sections[name]
	if !exists {
		section = &Section{
			Name:            name,
			Counters:        make(map[string]*Counter),
			Ratios:          make(map[string]*Ratio),
			Breakdowns:      make(map[string]*Breakdown),
			SampleDurations: make(map[string]*SampleDuration),
		}
		registry.sections[name] = section
	}
	return section
}

// Sections returns every registered section sorted by name.
func Sections() []*Section {
	registry.m.Lock()
	defer registry.m.Unlock()

	var sections []*Section
	for _, s := range registry.sections {
		sections = append(sections, s)
	}
	sort.Slice(sections, func(i, j int) bool { return sections[i].Name < sections[j].Name })
	return sections
}

// Counter creates a new counter with the provided name.
func (s *Section) Counter(name string) *Counter {
	s.m.Lock()
	defer s.m.Unlock()

	counter, exists := s.Counters[name]
	if !exists {
		counter = &Counter{}
		s.Counters[name] = counter
	}
	return counter
}

// Ratio creates a new ratio metric with the provided name.
func (s *Section) Ratio(name string) *Ratio {
	s.m.Lock()
	defer s.m.Unlock()

	ratio, exists := s.Ratios[name]
	if !exists {
		ratio = &Ratio{}
		s.Ratios[name] = ratio
	}
	return ratio
}

// Breakdown returns a new Breakdown metric with the provided name.
func (s *Section) Breakdown(name string) *Breakdown {
	s.m.Lock()
	defer s.m.Unlock()

	breakdown, exists := s.Breakdowns[name]
	if !exists {
		breakdown = &Breakdown{}
		s.Breakdowns[name] = breakdown
	}
	return breakdown
}

// SampleDuration creates a new SampleDuration metric with the provided name.
func (s *Section) SampleDuration(name string) *SampleDuration {
	s.m.Lock()
	defer s.m.Unlock()

	ad, exists := s.SampleDurations[name]
	if !exists {
		ad = newSampleDuration()
		s.SampleDurations[name] = ad
	}
	return ad
}

func sortedKeys(n int, each func(func(string))) []string {
	keys := make([]string, 0, n)
	each(func(k string) { keys = append(keys, k) })
	sort.Strings(keys)
	return keys
}
