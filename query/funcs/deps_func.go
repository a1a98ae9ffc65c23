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
		Name:          "deps",
		MandatoryArgs: 1,
		ArgTypes: []interfaces.ArgType{
			interfaces.ArgTypeExpression,
			interfaces.ArgTypeInt, // optional depth
		},
		Fn: Deps,
	})
}

// Deps computes the operand set plus everything it transitively depends on.
// With the optional depth argument, only dependencies up to that many edges
// away are included. The unbounded variant goes through the environment's
// closure cache; the bounded variant expands one edge at a time, so a depth
// of one returns the operand set and its direct dependencies.
func Deps(ctx context.Context, env interfaces.Env, expr interfaces.Expr, args []*interfaces.Argument) (pgraph.VertexSet, error) {
	x, err := args[0].Expr.Eval(ctx, env)
	if err != nil {
		return nil, err
	}

	if len(args) == 1 { // unbounded
		if err := env.BuildTransitiveClosure(ctx, expr, x, interfaces.DepthUnbounded); err != nil {
			return nil, err
		}
		return env.TransitiveClosure(x)
	}

	depth := args[1].Int
	if depth < 0 {
		return nil, &interfaces.QueryError{
			Expr: expr,
			Err:  fmt.Errorf("depth must not be negative, got %d", depth),
		}
	}

	result := x.Copy()
	frontier := x
	for i := 0; i < depth && frontier.Len() > 0; i++ {
		next, err := env.ForwardDeps(ctx, frontier)
		if err != nil {
			return nil, err
		}
		frontier = next.Difference(result)
		result.Merge(frontier)
	}
	return result, nil
}
