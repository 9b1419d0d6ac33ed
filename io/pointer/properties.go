// SPDX-License-Identifier: Unlicense OR MIT

package pointer

import (
	"golang.org/x/exp/slices"
)

// Properties is a sorted set of property names. The methods of
// Properties never modify the receiver.
type Properties []string

// NewProperties returns the set of names. An empty set is nil.
func NewProperties(names ...string) Properties {
	if len(names) == 0 {
		return nil
	}
	p := slices.Clone(names)
	slices.Sort(p)
	return Properties(slices.Compact(p))
}

// Contains reports whether name is in the set.
func (p Properties) Contains(name string) bool {
	return slices.Contains(p, name)
}

// With returns the union of p and names.
func (p Properties) With(names ...string) Properties {
	return NewProperties(append(slices.Clone(p), names...)...)
}

// Without returns p with names removed.
func (p Properties) Without(names ...string) Properties {
	var res []string
	for _, n := range p {
		if !slices.Contains(names, n) {
			res = append(res, n)
		}
	}
	return NewProperties(res...)
}

// Intersect returns the names in both p and q.
func (p Properties) Intersect(q Properties) Properties {
	var res []string
	for _, n := range p {
		if q.Contains(n) {
			res = append(res, n)
		}
	}
	return NewProperties(res...)
}
