// Graphquery
// Copyright (C) Graphquery project contributors
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package pgraph

import (
	"strings"
)

// VertexSet is an unordered, deduplicated collection of vertices. The zero
// value is not usable, build one with NewVertexSet. Query evaluation results
// are expressed with this type.
type VertexSet map[Vertex]struct{}

// NewVertexSet returns a new set containing the given vertices.
func NewVertexSet(xv ...Vertex) VertexSet {
	s := make(VertexSet, len(xv))
	for _, v := range xv {
		s[v] = struct{}{}
	}
	return s
}

// Add adds a vertex to the set. Adding an existing vertex is a no-op.
func (s VertexSet) Add(v Vertex) {
	s[v] = struct{}{}
}

// Has returns true if the vertex is in the set.
func (s VertexSet) Has(v Vertex) bool {
	_, exists := s[v]
	return exists
}

// Len returns the number of vertices in the set.
func (s VertexSet) Len() int {
	return len(s)
}

// Merge adds every vertex of the other set into this set in place.
func (s VertexSet) Merge(other VertexSet) {
	for v := range other {
		s[v] = struct{}{}
	}
}

// Union returns a new set containing the vertices of both sets.
func (s VertexSet) Union(other VertexSet) VertexSet {
	out := make(VertexSet, len(s)+len(other))
	out.Merge(s)
	out.Merge(other)
	return out
}

// Intersect returns a new set containing the vertices present in both sets.
// It iterates over the smaller of the two operands, so the cost is bounded by
// min(len(s), len(other)) regardless of which receiver you pick.
func (s VertexSet) Intersect(other VertexSet) VertexSet {
	small, big := s, other
	if len(big) < len(small) {
		small, big = big, small
	}
	out := make(VertexSet)
	for v := range small {
		if big.Has(v) {
			out.Add(v)
		}
	}
	return out
}

// Difference returns a new set containing the vertices of this set that are
// not present in the other set.
func (s VertexSet) Difference(other VertexSet) VertexSet {
	out := make(VertexSet)
	for v := range s {
		if !other.Has(v) {
			out.Add(v)
		}
	}
	return out
}

// Copy returns a shallow copy of the set.
func (s VertexSet) Copy() VertexSet {
	out := make(VertexSet, len(s))
	out.Merge(s)
	return out
}

// Vertices returns a randomly sorted slice of the vertices in the set. The
// order is random, because the map implementation is intentionally so!
func (s VertexSet) Vertices() []Vertex {
	var vertices []Vertex
	for v := range s {
		vertices = append(vertices, v)
	}
	return vertices
}

// Sorted returns a slice of the vertices in the set, sorted by String() to
// avoid the non-determinism in the map type.
func (s VertexSet) Sorted() []Vertex {
	vertices := s.Vertices()
	VertexSlice(vertices).Sort() // add determinism
	return vertices
}

// Names returns the sorted String() names of the vertices in the set. This is
// mostly useful for tests and log messages.
func (s VertexSet) Names() []string {
	var names []string
	for _, v := range s.Sorted() {
		names = append(names, v.String())
	}
	return names
}

// String makes the set pretty print.
func (s VertexSet) String() string {
	return "{" + strings.Join(s.Names(), ", ") + "}"
}
