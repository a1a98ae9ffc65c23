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
	"fmt"

	"github.com/graphquery/graphquery/pgraph"
	"github.com/graphquery/graphquery/query/interfaces"
)

func init() {
	Register(&interfaces.Func{
		Name:          "rdeps",
		MandatoryArgs: 2,
		ArgTypes: []interfaces.ArgType{
			interfaces.ArgTypeExpression, // universe
			interfaces.ArgTypeExpression, // argument set
			interfaces.ArgTypeInt,        // optional depth
		},
		Fn: RDeps,
	})
}

// RDeps computes the reverse dependencies of the second operand within the
// transitive closure of the first operand, the universe. The result includes
// the members of the argument set that lie inside the universe closure. With
// the optional depth argument, only reverse dependencies up to that many
// edges away are included.
func RDeps(ctx context.Context, env interfaces.Env, expr interfaces.Expr, args []*interfaces.Argument) (pgraph.VertexSet, error) {
	universe, err := args[0].Expr.Eval(ctx, env)
	if err != nil {
		return nil, err
	}
	x, err := args[1].Expr.Eval(ctx, env)
	if err != nil {
		return nil, err
	}

	depth := interfaces.DepthUnbounded
	if len(args) == 3 {
		depth = args[2].Int
		if depth < 0 {
			return nil, &interfaces.QueryError{
				Expr: expr,
				Err:  fmt.Errorf("depth must not be negative, got %d", depth),
			}
		}
	}

	// The universe closure delimits which predecessors we may report.
	if err := env.BuildTransitiveClosure(ctx, expr, universe, interfaces.DepthUnbounded); err != nil {
		return nil, err
	}
	closure, err := env.TransitiveClosure(universe)
	if err != nil {
		return nil, err
	}

	result := x.Intersect(closure)
	frontier := result.Copy()
	for i := 0; i < depth && frontier.Len() > 0; i++ {
		preds, err := env.ReverseDeps(ctx, frontier)
		if err != nil {
			return nil, err
		}
		frontier = preds.Intersect(closure).Difference(result)
		result.Merge(frontier)
	}
	return result, nil
}
