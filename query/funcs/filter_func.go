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
	"regexp"

	"github.com/graphquery/graphquery/pgraph"
	"github.com/graphquery/graphquery/query/interfaces"
	"github.com/graphquery/graphquery/util/errwrap"
)

func init() {
	Register(&interfaces.Func{
		Name:          "filter",
		MandatoryArgs: 2,
		ArgTypes: []interfaces.ArgType{
			interfaces.ArgTypeWord, // regexp pattern
			interfaces.ArgTypeExpression,
		},
		Fn: Filter,
	})
}

// Filter keeps the vertices of the operand set whose name matches the given
// regexp. The pattern is unanchored, the usual regexp semantics apply.
func Filter(ctx context.Context, env interfaces.Env, expr interfaces.Expr, args []*interfaces.Argument) (pgraph.VertexSet, error) {
	re, err := regexp.Compile(args[0].Word)
	if err != nil {
		return nil, &interfaces.QueryError{
			Expr: expr,
			Err:  errwrap.Wrapf(err, "bad filter pattern %q", args[0].Word),
		}
	}

	x, err := args[1].Expr.Eval(ctx, env)
	if err != nil {
		return nil, err
	}

	result := pgraph.NewVertexSet()
	for _, v := range x.Sorted() {
		if re.MatchString(v.String()) {
			result.Add(v)
		}
	}
	return result, nil
}
