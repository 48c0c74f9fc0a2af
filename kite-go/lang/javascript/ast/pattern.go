package ast

import "strconv"

// Pattern maps the positions of a destructuring target to what they bind.
// Array patterns are keyed by element index, object patterns by property name.
type Pattern struct {
	Entries []PatternEntry
}

// PatternEntry is one position of a pattern. Exactly one of Target and
// Nested is set: Target for a leaf, Nested for a nested array or object pattern.
type PatternEntry struct {
	Key    string
	Target Node
	Nested *Pattern
}

// Len returns the number of entries at the top level of the pattern.
func (p *Pattern) Len() int {
	if p == nil {
		return 0
	}
	return len(p.Entries)
}

// Lookup returns the entry for key.
func (p *Pattern) Lookup(key string) (PatternEntry, bool) {
	if p == nil {
		return PatternEntry{}, false
	}
	for _, e := range p.Entries {
		if e.Key == key {
			return e, true
		}
	}
	return PatternEntry{}, false
}

// Index returns the entry for an array position.
func (p *Pattern) Index(i int) (PatternEntry, bool) {
	return p.Lookup(strconv.Itoa(i))
}

// Identifiers returns the identifier leaves of the pattern, depth first and in source order.
func (p *Pattern) Identifiers() []*Identifier {
	var ids []*Identifier
	p.each(func(n Node) {
		if id, ok := n.(*Identifier); ok {
			ids = append(ids, id)
		}
	})
	return ids
}

// Names returns the names bound by the identifier leaves of the pattern.
func (p *Pattern) Names() []string {
	var names []string
	for _, id := range p.Identifiers() {
		names = append(names, id.Name)
	}
	return names
}

// Leaves returns every leaf target, identifiers or otherwise.
func (p *Pattern) Leaves() []Node {
	var leaves []Node
	p.each(func(n Node) { leaves = append(leaves, n) })
	return leaves
}

func (p *Pattern) each(f func(Node)) {
	if p == nil {
		return
	}
	for _, e := range p.Entries {
		if e.Nested != nil {
			e.Nested.each(f)
			continue
		}
		f(e.Target)
	}
}
