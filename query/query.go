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

// Package query is the entry point of the query evaluation engine. A front
// end parses concrete syntax into an expression tree elsewhere, then hands it
// to Evaluate together with an environment over a graph snapshot.
package query

import (
	"context"

	"github.com/graphquery/graphquery/pgraph"
	"github.com/graphquery/graphquery/query/interfaces"
	"github.com/graphquery/graphquery/util/errwrap"
)

// Evaluate reduces an expression tree to the set of vertices it denotes. The
// tree is checked for structural sanity first, so that a malformed tree fails
// fast instead of part way into graph work. Queries are deterministic over a
// fixed snapshot; nothing in here retries, a failed query is simply returned
// to the caller who may retry after refreshing the snapshot if they want to.
func Evaluate(ctx context.Context, expr interfaces.Expr, env interfaces.Env) (pgraph.VertexSet, error) {
	if expr == nil {
		return nil, errwrap.Errorf("expr is nil")
	}
	if env == nil {
		return nil, errwrap.Errorf("env is nil")
	}

	// cheap structural check over the whole tree before any graph access
	if err := expr.Apply(func(x interfaces.Expr) error {
		if x == nil {
			return errwrap.Errorf("tree contains a nil expression")
		}
		return nil
	}); err != nil {
		return nil, errwrap.Wrapf(err, "invalid query: %s", expr)
	}

	return expr.Eval(ctx, env)
}
