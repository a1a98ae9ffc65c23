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

package funcs

import (
	"context"

	"github.com/graphquery/graphquery/pgraph"
	"github.com/graphquery/graphquery/query/interfaces"
)

func init() {
	Register(&interfaces.Func{
		Name:          "somepath",
		MandatoryArgs: 2,
		ArgTypes: []interfaces.ArgType{
			interfaces.ArgTypeExpression,
			interfaces.ArgTypeExpression,
		},
		Fn: SomePath,
	})
}

// SomePath computes the set of vertices on some arbitrary path from a vertex
// in the first operand's set to a vertex in the second operand's set. The
// empty set is the one and only "no path exists" answer, which is unambiguous
// because any real path contains at least its two endpoints.
//
// The strategy: for each x in from, in a fixed order, look at its forward
// transitive closure. If the closure intersects to, do a path search from x
// to any one vertex of the intersection and stop there, so the answer is
// neither unique across source choices nor a shortest path. If it doesn't
// intersect, then every vertex inside that closure is also known to not reach
// to, so we record the whole closure and skip any of its members that come up
// later in from. Skipping them is purely an optimization: it only ever avoids
// recomputing an outcome that is already established, it never changes the
// answer.
func SomePath(ctx context.Context, env interfaces.Env, expr interfaces.Expr, args []*interfaces.Argument) (pgraph.VertexSet, error) {
	from, err := args[0].Expr.Eval(ctx, env)
	if err != nil {
		return nil, err
	}
	to, err := args[1].Expr.Eval(ctx, env)
	if err != nil {
		return nil, err
	}

	// Build the closure of the whole from set once. The per-vertex lookups
	// below all hit this shared cache.
	if err := env.BuildTransitiveClosure(ctx, expr, from, interfaces.DepthUnbounded); err != nil {
		return nil, err
	}

	// done holds every vertex whose closure is known to not intersect to.
	done := pgraph.NewVertexSet()

	for _, x := range from.Sorted() {
		if done.Has(x) {
			continue
		}
		xtc, err := env.TransitiveClosure(pgraph.NewVertexSet(x))
		if err != nil {
			return nil, err
		}
		// Intersect iterates over the smaller of the two sets, which
		// bounds the cost by min(len(xtc), len(to)).
		if result := xtc.Intersect(to); result.Len() > 0 {
			y := result.Sorted()[0]
			return env.NodesOnPath(ctx, x, y)
		}
		done.Merge(xtc)
	}
	return pgraph.NewVertexSet(), nil
}
