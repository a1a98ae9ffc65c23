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

// Package interfaces contains the minimal set of contracts that glue the
// query engine together. The AST node interface, the environment that gives
// the engine access to graph reachability, the function descriptor, and the
// error taxonomy all live here, so that the concrete packages can depend on
// each other through this one without import loops.
package interfaces

import (
	"context"
	"fmt"

	"github.com/graphquery/graphquery/pgraph"
)

// Expr represents a node in the query expression tree. Expression trees are
// built before evaluation begins, they are acyclic, and the engine never
// mutates them. A separate concrete-syntax parser produces them; this engine
// only consumes them.
type Expr interface {
	// String returns a short representation of this expression. It is used
	// to attribute errors to the expression that caused them.
	fmt.Stringer

	// Apply is a general purpose iterator method that operates on any
	// expression node. It visits this node and then each child node,
	// depth-first, and stops at the first error.
	Apply(fn func(Expr) error) error

	// Eval reduces this expression to the set of vertices it denotes,
	// using the environment for graph access and for the evaluation of any
	// nested subexpressions. Errors from nested calls bubble through
	// unmodified. If the context closes, Eval returns its error unchanged.
	Eval(ctx context.Context, env Env) (pgraph.VertexSet, error)
}
