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

// Package graphenv implements the query environment over an in-memory
// pgraph.Graph snapshot. It is the reference environment; any other graph
// store can be plugged into the engine by implementing the same interface.
package graphenv

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"sync"

	"github.com/graphquery/graphquery/pgraph"
	"github.com/graphquery/graphquery/query/interfaces"
	"github.com/graphquery/graphquery/util/errwrap"
)

// closure is one cache entry: the forward reachability of a single vertex.
type closure struct {
	// set holds every vertex reachable within depth edges, inclusive.
	set pgraph.VertexSet

	// depth is the depth the entry was built to.
	depth int

	// complete is true if the expansion exhausted its frontier, in which
	// case set is the full transitive closure no matter what depth was
	// asked for.
	complete bool
}

// Env is a query environment over one immutable graph snapshot. It must not
// outlive the snapshot, and one instance must not be reused across snapshots:
// the closure cache it accumulates assumes the graph never changes. Populate
// the public fields and then call Init before first use.
type Env struct {
	// Graph is the dependency graph snapshot that queries run over. The
	// environment never mutates it.
	Graph *pgraph.Graph

	// Debug lets the engine log additional information about cache and
	// traversal activity.
	Debug bool

	// Logf is the logger to use. It may be nil to silence all output.
	Logf func(format string, v ...interface{})

	// vars and parent form the let-binding scope chain. The root env has
	// neither.
	vars   map[string]pgraph.VertexSet
	parent *Env

	// mutex guards closures. It is held for map access only, never while
	// a closure is being computed, so concurrent builders may race to
	// compute the same entry. That duplicate work is tolerated; whichever
	// result is deeper wins.
	mutex    *sync.Mutex
	closures map[pgraph.Vertex]*closure
}

// Validate reports whether the public fields make sense.
func (obj *Env) Validate() error {
	if obj.Graph == nil {
		return fmt.Errorf("graph is nil")
	}
	return nil
}

// Init initializes the environment for use. It must be called once, on the
// root environment, before any evaluation runs.
func (obj *Env) Init() error {
	if err := obj.Validate(); err != nil {
		return err
	}
	obj.mutex = &sync.Mutex{}
	obj.closures = make(map[pgraph.Vertex]*closure)
	return nil
}

// logf logs through the configured logger if there is one.
func (obj *Env) logf(format string, v ...interface{}) {
	if obj.Logf == nil {
		return
	}
	obj.Logf(format, v...)
}

// ResolvePattern resolves a target pattern to the vertices it names. A
// pattern containing glob metacharacters matches vertex names with
// path.Match semantics and may legitimately match nothing. A plain pattern
// must name exactly one existing vertex, anything else is an unresolved node
// error.
func (obj *Env) ResolvePattern(ctx context.Context, pattern string) (pgraph.VertexSet, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if strings.ContainsAny(pattern, "*?[") { // glob
		result := pgraph.NewVertexSet()
		for _, v := range obj.Graph.GetVerticesSorted() {
			matched, err := path.Match(pattern, v.String())
			if err != nil {
				return nil, errwrap.Wrapf(err, "bad pattern %q", pattern)
			}
			if matched {
				result.Add(v)
			}
		}
		return result, nil
	}

	v := obj.Graph.FindVertex(pattern)
	if v == nil {
		return nil, errwrap.Wrapf(interfaces.ErrUnresolvedNode, "no vertex named %q", pattern)
	}
	return pgraph.NewVertexSet(v), nil
}

// ForwardDeps returns the union of the one-edge successors of every vertex in
// the set.
func (obj *Env) ForwardDeps(ctx context.Context, from pgraph.VertexSet) (pgraph.VertexSet, error) {
	result := pgraph.NewVertexSet()
	for _, v := range from.Sorted() {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		if !obj.Graph.HasVertex(v) {
			return nil, errwrap.Wrapf(interfaces.ErrUnresolvedNode, "vertex %s is not in the graph", v)
		}
		for _, w := range obj.Graph.OutgoingGraphVertices(v) {
			result.Add(w)
		}
	}
	return result, nil
}

// ReverseDeps returns the union of the one-edge predecessors of every vertex
// in the set.
func (obj *Env) ReverseDeps(ctx context.Context, from pgraph.VertexSet) (pgraph.VertexSet, error) {
	result := pgraph.NewVertexSet()
	for _, v := range from.Sorted() {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		if !obj.Graph.HasVertex(v) {
			return nil, errwrap.Wrapf(interfaces.ErrUnresolvedNode, "vertex %s is not in the graph", v)
		}
		for _, w := range obj.Graph.IncomingGraphVertices(v) {
			result.Add(w)
		}
	}
	return result, nil
}

// cached returns the cache entry for a vertex, or nil.
func (obj *Env) cached(v pgraph.Vertex) *closure {
	obj.mutex.Lock()
	defer obj.mutex.Unlock()
	return obj.closures[v]
}

// store saves a cache entry unless a better one arrived in the meantime.
// Under contention the deeper, or complete, entry wins.
func (obj *Env) store(v pgraph.Vertex, c *closure) {
	obj.mutex.Lock()
	defer obj.mutex.Unlock()
	old, exists := obj.closures[v]
	if exists && old.complete {
		return // can't beat a full closure
	}
	if exists && !c.complete && old.depth >= c.depth {
		return
	}
	obj.closures[v] = c
}

// sufficient tells us if an entry satisfies a request for the given depth.
func (c *closure) sufficient(depth int) bool {
	if c == nil {
		return false
	}
	return c.complete || c.depth >= depth
}

// expand runs the breadth first expansion for one vertex up to maxDepth
// edges. It polls the context once per expanded vertex. An aborted expansion
// returns the context error and nothing else, so nothing partial can ever be
// cached.
func (obj *Env) expand(ctx context.Context, v pgraph.Vertex, maxDepth int) (*closure, error) {
	if !obj.Graph.HasVertex(v) {
		return nil, errwrap.Wrapf(interfaces.ErrUnresolvedNode, "vertex %s is not in the graph", v)
	}

	visited := pgraph.NewVertexSet(v)
	frontier := []pgraph.Vertex{v}
	depth := 0
	for ; depth < maxDepth && len(frontier) > 0; depth++ {
		var next []pgraph.Vertex
		for _, w := range frontier {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			default:
			}
			for _, u := range obj.Graph.OutgoingGraphVertices(w) {
				if visited.Has(u) {
					continue
				}
				visited.Add(u)
				next = append(next, u)
			}
		}
		frontier = next
	}
	return &closure{
		set:      visited,
		depth:    depth,
		complete: len(frontier) == 0, // ran out of graph before depth
	}, nil
}

// BuildTransitiveClosure ensures that the forward reachability of every
// vertex in the from set, up to maxDepth edges, is computed and cached. It is
// idempotent, and a no-op for any vertex already cached to a sufficient
// depth. The expr is used for error attribution only. Cancellation aborts the
// build promptly and propagates unchanged; whatever was fully built before
// the abort stays cached, partial work is discarded.
func (obj *Env) BuildTransitiveClosure(ctx context.Context, expr interfaces.Expr, from pgraph.VertexSet, maxDepth int) error {
	if maxDepth < 0 {
		return &interfaces.QueryError{
			Expr: expr,
			Err:  fmt.Errorf("depth must not be negative, got %d", maxDepth),
		}
	}
	if obj.Debug {
		obj.logf("building closure of %d vertices to depth %d", from.Len(), maxDepth)
	}
	for _, v := range from.Sorted() {
		if obj.cached(v).sufficient(maxDepth) {
			continue // idempotent
		}
		c, err := obj.expand(ctx, v, maxDepth)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return err // propagate cancellation unchanged
			}
			return &interfaces.QueryError{Expr: expr, Err: err}
		}
		obj.store(v, c)
	}
	return nil
}

// TransitiveClosure returns every vertex forward-reachable from the from set,
// inclusive of the from set itself. The closure of every requested vertex
// must already have been built unbounded, otherwise this fails.
func (obj *Env) TransitiveClosure(from pgraph.VertexSet) (pgraph.VertexSet, error) {
	result := pgraph.NewVertexSet()
	for _, v := range from.Sorted() {
		c := obj.cached(v)
		if c == nil || !c.complete {
			return nil, errwrap.Wrapf(interfaces.ErrClosureNotBuilt, "for vertex %s", v)
		}
		result.Merge(c.set)
	}
	return result, nil
}

// NodesOnPath returns the vertex set of some path from x to y, including both
// endpoints. Which path is returned when several exist is implementation
// defined but stable across runs. The caller must already know that y is
// reachable from x; if it turns out not to be, that is a graph inconsistency.
func (obj *Env) NodesOnPath(ctx context.Context, x, y pgraph.Vertex) (pgraph.VertexSet, error) {
	vertices, err := obj.Graph.PathBetween(ctx, x, y)
	if err != nil {
		return nil, err // cancellation
	}
	if vertices == nil {
		return nil, errwrap.Wrapf(interfaces.ErrUnresolvedNode, "no path from %s to %s", x, y)
	}
	if obj.Debug {
		obj.logf("path from %s to %s has %d vertices", x, y, len(vertices))
	}
	return pgraph.NewVertexSet(vertices...), nil
}

// Variable returns the value bound to a let variable by walking the scope
// chain from the innermost binding outwards.
func (obj *Env) Variable(name string) (pgraph.VertexSet, error) {
	for e := obj; e != nil; e = e.parent {
		if value, exists := e.vars[name]; exists {
			return value, nil
		}
	}
	return nil, errwrap.Wrapf(interfaces.ErrUndefinedVariable, "$%s", name)
}

// WithVariable returns a child environment with one more variable in scope,
// shadowing any outer binding of the same name. The child shares the graph
// snapshot and the closure cache with its parent, so closure work done under
// a binding stays useful after it goes out of scope.
func (obj *Env) WithVariable(name string, value pgraph.VertexSet) interfaces.Env {
	return &Env{
		Graph: obj.Graph,
		Debug: obj.Debug,
		Logf:  obj.Logf,

		vars:   map[string]pgraph.VertexSet{name: value},
		parent: obj,

		mutex:    obj.mutex,    // shared
		closures: obj.closures, // shared
	}
}
