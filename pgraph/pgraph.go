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

// Package pgraph represents the internal "pointer graph" that we use. It
// stores the build dependency graph that the query engine runs over. The
// graph is directed, and the arrows point from a vertex towards the things
// it depends on.
package pgraph

import (
	"context"
	"fmt"
	"sort"

	"github.com/graphquery/graphquery/util/errwrap"
)

// Vertex is the primary vertex struct in this library. It can be anything
// that implements Stringer. The string output must be stable and unique in a
// single graph. Vertices are compared with normal interface equality, so the
// dynamic type stored inside must be comparable.
type Vertex interface {
	fmt.Stringer // String() string
}

// Edge is the primary edge struct in this library. It can be anything that
// implements Stringer.
type Edge interface {
	fmt.Stringer // String() string
}

// Graph is the graph structure in this library. The graph abstract data type
// (ADT) is defined as follows:
// * The directed graph arrows point from left to right. ( -> )
// * The arrows point away from their dependencies. (eg: arrows mean "after")
// * IOW, you might see app -> lib -> stdlib (where app depends on lib).
type Graph struct {
	Name string

	adjacency map[Vertex]map[Vertex]Edge // Vertex -> Vertex (edge)
}

// NewGraph builds a new graph.
func NewGraph(name string) (*Graph, error) {
	if name == "" {
		return nil, errwrap.Errorf("can't create graph with empty name")
	}
	g := &Graph{
		Name: name,
	}
	g.init()
	return g, nil
}

// init initializes the graph which can be called multiple times safely.
func (g *Graph) init() {
	if g.adjacency == nil {
		g.adjacency = make(map[Vertex]map[Vertex]Edge)
	}
}

// String makes the graph pretty print.
func (g *Graph) String() string {
	return fmt.Sprintf("Vertices(%d), Edges(%d)", g.NumVertices(), g.NumEdges())
}

// Adjacency returns the adjacency map representing this graph. This is useful
// for users who which to operate on the raw data structure more efficiently.
// This works because maps are reference types so we can edit this at will.
func (g *Graph) Adjacency() map[Vertex]map[Vertex]Edge {
	g.init()
	return g.adjacency
}

// AddVertex uses variadic input to add all listed vertices to the graph.
func (g *Graph) AddVertex(xv ...Vertex) {
	g.init()
	for _, v := range xv {
		if _, exists := g.adjacency[v]; !exists {
			g.adjacency[v] = make(map[Vertex]Edge)
		}
	}
}

// AddEdge adds a directed edge to the graph from v1 to v2. It also adds the
// vertices it connects if they were not previously part of the graph.
func (g *Graph) AddEdge(v1, v2 Vertex, e Edge) {
	// NOTE: this doesn't allow more than one edge between two vertices...
	g.AddVertex(v1, v2)
	g.adjacency[v1][v2] = e
}

// HasVertex returns if the input vertex exists in the graph.
func (g *Graph) HasVertex(v Vertex) bool {
	g.init()
	_, exists := g.adjacency[v]
	return exists
}

// NumVertices returns the number of vertices in the graph.
func (g *Graph) NumVertices() int {
	return len(g.adjacency)
}

// NumEdges returns the number of edges in the graph.
func (g *Graph) NumEdges() int {
	count := 0
	for k := range g.adjacency {
		count += len(g.adjacency[k])
	}
	return count
}

// GetVertices returns a randomly sorted slice of all vertices in the graph.
// The order is random, because the map implementation is intentionally so!
func (g *Graph) GetVertices() []Vertex {
	var vertices []Vertex
	for k := range g.adjacency {
		vertices = append(vertices, k)
	}
	return vertices
}

// GetVerticesSorted returns a sorted slice of all vertices in the graph. The
// order is sorted by String() to avoid the non-determinism in the map type.
func (g *Graph) GetVerticesSorted() []Vertex {
	var vertices []Vertex
	for k := range g.adjacency {
		vertices = append(vertices, k)
	}
	sort.Sort(VertexSlice(vertices)) // add determinism
	return vertices
}

// FindVertex returns the vertex whose String() output matches the name, or
// nil if there is none. If more than one vertex claims the same name, which
// one you get is undefined.
func (g *Graph) FindVertex(name string) Vertex {
	for k := range g.adjacency {
		if k.String() == name {
			return k
		}
	}
	return nil
}

// OutgoingGraphVertices returns the vertices that vertex v points to.
// (v -> ???) The result is sorted by String() to add determinism.
func (g *Graph) OutgoingGraphVertices(v Vertex) []Vertex {
	var s []Vertex
	for k := range g.adjacency[v] { // forward paths
		s = append(s, k)
	}
	sort.Sort(VertexSlice(s)) // add determinism
	return s
}

// IncomingGraphVertices returns the vertices that point to vertex v.
// (??? -> v) The result is sorted by String() to add determinism.
func (g *Graph) IncomingGraphVertices(v Vertex) []Vertex {
	var s []Vertex
	for k := range g.adjacency { // reverse paths
		for w := range g.adjacency[k] {
			if w == v {
				s = append(s, k)
			}
		}
	}
	sort.Sort(VertexSlice(s)) // add determinism
	return s
}

// PathBetween does a breadth first walk from vertex a and returns the vertex
// list of one path that ends at vertex b, including both endpoints. It
// returns nil if a or b is nil, if either is not part of the graph, or if no
// path exists. Since more than one path may exist, we deterministically pick
// one of them by expanding neighbours in sorted order, but we make no promise
// that the one we pick is a shortest one. The context is polled once per
// expanded vertex so that long searches on big graphs can abort promptly.
func (g *Graph) PathBetween(ctx context.Context, a, b Vertex) ([]Vertex, error) {
	if a == nil || b == nil {
		return nil, nil
	}
	if !g.HasVertex(a) || !g.HasVertex(b) {
		return nil, nil
	}
	if a == b {
		return []Vertex{a}, nil
	}

	parent := make(map[Vertex]Vertex)
	queue := []Vertex{a}
	parent[a] = a // mark as discovered, self-parent is the root sentinel

	for len(queue) > 0 {
		v := queue[0]
		queue = queue[1:]
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		for _, w := range g.OutgoingGraphVertices(v) {
			if _, exists := parent[w]; exists {
				continue
			}
			parent[w] = v
			if w == b { // walk the parents back up to a
				path := []Vertex{b}
				for x := v; x != a; x = parent[x] {
					path = append(path, x)
				}
				path = append(path, a)
				return Reverse(path), nil
			}
			queue = append(queue, w)
		}
	}
	return nil, nil // no path found
}

// VertexSlice is a linear list of vertices. It can be sorted.
type VertexSlice []Vertex

// Len returns the length of the slice of vertices.
func (vs VertexSlice) Len() int { return len(vs) }

// Swap swaps two elements in the slice.
func (vs VertexSlice) Swap(i, j int) { vs[i], vs[j] = vs[j], vs[i] }

// Less returns the smaller element in the sort order.
func (vs VertexSlice) Less(i, j int) bool { return vs[i].String() < vs[j].String() }

// Sort is a convenience method.
func (vs VertexSlice) Sort() { sort.Sort(vs) }

// Reverse reverses a list of vertices.
func Reverse(vs []Vertex) []Vertex {
	out := make([]Vertex, 0, len(vs))
	l := len(vs)
	for i := range vs {
		out = append(out, vs[l-i-1])
	}
	return out
}
