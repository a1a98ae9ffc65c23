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

package interfaces

import (
	"context"
	"math"

	"github.com/graphquery/graphquery/pgraph"
)

// DepthUnbounded is the depth to pass to BuildTransitiveClosure when you want
// the full, unbounded transitive closure.
const DepthUnbounded = math.MaxInt

// Env is the abstraction boundary between the evaluation engine and the
// concrete graph implementation underneath it. One environment is scoped to
// one query evaluation over one immutable graph snapshot. The graph never
// changes during an evaluation; the only mutable state an environment holds
// is the derived transitive closure cache, and entries in it stay valid for
// the whole lifetime of the environment.
//
// Functions must treat the environment as read-only apart from the closure
// cache population that BuildTransitiveClosure performs.
type Env interface {
	// ResolvePattern resolves a target pattern literal to the set of
	// vertices it names. A pattern without glob metacharacters that names
	// no vertex is an unresolved node error.
	ResolvePattern(ctx context.Context, pattern string) (pgraph.VertexSet, error)

	// ForwardDeps returns the union of the one-edge successors of every
	// vertex in the set. The input vertices are not included unless they
	// are also successors of something in the set.
	ForwardDeps(ctx context.Context, from pgraph.VertexSet) (pgraph.VertexSet, error)

	// ReverseDeps returns the union of the one-edge predecessors of every
	// vertex in the set.
	ReverseDeps(ctx context.Context, from pgraph.VertexSet) (pgraph.VertexSet, error)

	// BuildTransitiveClosure ensures that forward reachability data from
	// every vertex of the from set, up to maxDepth edges away, is computed
	// and cached. It is idempotent: if the data was already built to a
	// sufficient depth this is a no-op. The expr argument is carried only
	// so that errors can be attributed to the calling expression.
	BuildTransitiveClosure(ctx context.Context, expr Expr, from pgraph.VertexSet, maxDepth int) error

	// TransitiveClosure returns every vertex forward-reachable from the
	// from set, inclusive of the from set itself. It fails if the closure
	// was never built to a sufficient depth for the requested vertices.
	TransitiveClosure(from pgraph.VertexSet) (pgraph.VertexSet, error)

	// NodesOnPath returns the vertex set of some path from x to y,
	// including both endpoints. Which path you get when several exist is
	// implementation-defined but stable. The caller must have already
	// established that y is reachable from x; if it is not, this is a
	// runtime query error.
	NodesOnPath(ctx context.Context, x, y pgraph.Vertex) (pgraph.VertexSet, error)

	// Variable returns the value bound to a let variable, or an error if
	// the variable is not in scope.
	Variable(name string) (pgraph.VertexSet, error)

	// WithVariable returns a child environment in which the named variable
	// is bound to the given set, shadowing any outer binding. The child
	// shares the graph snapshot and the closure cache with its parent.
	WithVariable(name string, value pgraph.VertexSet) Env
}
