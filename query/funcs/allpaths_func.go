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
		Name:          "allpaths",
		MandatoryArgs: 2,
		ArgTypes: []interfaces.ArgType{
			interfaces.ArgTypeExpression,
			interfaces.ArgTypeExpression,
		},
		Fn: AllPaths,
	})
}

// AllPaths computes the set of vertices lying on any path from the first
// operand's set to the second operand's set, across every source vertex, not
// just the first one that works out. A vertex is on such a path exactly when
// it is forward-reachable from the from set, and the to set is reachable from
// it. So: take the forward closure of from, then sweep backwards inside that
// closure starting from the reachable part of to.
func AllPaths(ctx context.Context, env interfaces.Env, expr interfaces.Expr, args []*interfaces.Argument) (pgraph.VertexSet, error) {
	from, err := args[0].Expr.Eval(ctx, env)
	if err != nil {
		return nil, err
	}
	to, err := args[1].Expr.Eval(ctx, env)
	if err != nil {
		return nil, err
	}

	if err := env.BuildTransitiveClosure(ctx, expr, from, interfaces.DepthUnbounded); err != nil {
		return nil, err
	}
	closure, err := env.TransitiveClosure(from)
	if err != nil {
		return nil, err
	}

	result := to.Intersect(closure)
	frontier := result.Copy()
	for frontier.Len() > 0 {
		preds, err := env.ReverseDeps(ctx, frontier)
		if err != nil {
			return nil, err
		}
		frontier = preds.Intersect(closure).Difference(result)
		result.Merge(frontier)
	}
	return result, nil
}
