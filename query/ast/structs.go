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

// Package ast contains the structs implementing the query expression tree.
// Each node carries its own Eval method, so the evaluator is the tree itself
// walking top-down and returning vertex sets bottom-up. A node is immutable
// once built, and a tree can safely be evaluated more than once, or against
// more than one environment.
package ast

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/graphquery/graphquery/pgraph"
	"github.com/graphquery/graphquery/query/funcs"
	"github.com/graphquery/graphquery/query/interfaces"
	"github.com/graphquery/graphquery/util/errwrap"
)

// Op is a binary set operator token.
type Op string

const (
	// OpUnion is the union set operator.
	OpUnion Op = "+"

	// OpIntersect is the intersection set operator.
	OpIntersect Op = "^"

	// OpExcept is the set difference operator.
	OpExcept Op = "-"
)

// ExprPattern is a target pattern literal, the leaf of the expression tree.
// The environment decides what the pattern syntax means; this node just holds
// the literal text.
type ExprPattern struct {
	Pattern string
}

// String returns a short representation of this expression.
func (obj *ExprPattern) String() string {
	return obj.Pattern
}

// Apply is a general purpose iterator method that operates on any expression
// node. This is a leaf, so it applies to itself only.
func (obj *ExprPattern) Apply(fn func(interfaces.Expr) error) error {
	return fn(obj)
}

// Eval resolves the pattern through the environment.
func (obj *ExprPattern) Eval(ctx context.Context, env interfaces.Env) (pgraph.VertexSet, error) {
	return env.ResolvePattern(ctx, obj.Pattern)
}

// ExprCall is a function call expression. The arguments were bound when the
// tree was built; they are checked against the function's declared argument
// types before the function body runs.
type ExprCall struct {
	// Name is the name of the function to call.
	Name string

	// Args are the positional arguments for the call.
	Args []*interfaces.Argument
}

// String returns a short representation of this expression.
func (obj *ExprCall) String() string {
	var args []string
	for _, a := range obj.Args {
		args = append(args, a.String())
	}
	return fmt.Sprintf("%s(%s)", obj.Name, strings.Join(args, ", "))
}

// Apply is a general purpose iterator method that operates on any expression
// node. It applies to this node first, and then to any expression arguments.
func (obj *ExprCall) Apply(fn func(interfaces.Expr) error) error {
	if err := fn(obj); err != nil {
		return err
	}
	for _, a := range obj.Args {
		if a.Kind != interfaces.ArgTypeExpression || a.Expr == nil {
			continue
		}
		if err := a.Expr.Apply(fn); err != nil {
			return err
		}
	}
	return nil
}

// Eval dispatches to the named function through the function registry.
func (obj *ExprCall) Eval(ctx context.Context, env interfaces.Env) (pgraph.VertexSet, error) {
	return funcs.Call(ctx, env, obj, obj.Name, obj.Args)
}

// ExprBinary is a binary set operator expression over two operand
// expressions. The two operands have no data dependency on each other, so we
// evaluate them concurrently.
type ExprBinary struct {
	Op Op

	X interfaces.Expr
	Y interfaces.Expr
}

// String returns a short representation of this expression.
func (obj *ExprBinary) String() string {
	return fmt.Sprintf("(%s %s %s)", obj.X, obj.Op, obj.Y)
}

// Apply is a general purpose iterator method that operates on any expression
// node. It applies to this node first, and then to both operands.
func (obj *ExprBinary) Apply(fn func(interfaces.Expr) error) error {
	if err := fn(obj); err != nil {
		return err
	}
	if err := obj.X.Apply(fn); err != nil {
		return err
	}
	return obj.Y.Apply(fn)
}

// Eval evaluates both operands concurrently, and then combines the two result
// sets with the operator. If both operands fail, both errors are returned,
// joined together.
func (obj *ExprBinary) Eval(ctx context.Context, env interfaces.Env) (pgraph.VertexSet, error) {
	var x, y pgraph.VertexSet
	var xerr, yerr error
	wg := &sync.WaitGroup{}
	wg.Add(2)
	go func() {
		defer wg.Done()
		x, xerr = obj.X.Eval(ctx, env)
	}()
	go func() {
		defer wg.Done()
		y, yerr = obj.Y.Eval(ctx, env)
	}()
	wg.Wait()
	if err := errwrap.Append(xerr, yerr); err != nil {
		return nil, err
	}

	switch obj.Op {
	case OpUnion:
		return x.Union(y), nil
	case OpIntersect:
		return x.Intersect(y), nil
	case OpExcept:
		return x.Difference(y), nil
	}
	return nil, &interfaces.QueryError{
		Expr: obj,
		Err:  fmt.Errorf("unknown operator: %s", obj.Op),
	}
}

// ExprLet binds the result of one expression to a variable name which is in
// scope while the body expression evaluates. Inner bindings shadow outer
// ones.
type ExprLet struct {
	Name string

	Def  interfaces.Expr
	Body interfaces.Expr
}

// String returns a short representation of this expression.
func (obj *ExprLet) String() string {
	return fmt.Sprintf("let %s = %s in %s", obj.Name, obj.Def, obj.Body)
}

// Apply is a general purpose iterator method that operates on any expression
// node. It applies to this node first, then the definition, then the body.
func (obj *ExprLet) Apply(fn func(interfaces.Expr) error) error {
	if err := fn(obj); err != nil {
		return err
	}
	if err := obj.Def.Apply(fn); err != nil {
		return err
	}
	return obj.Body.Apply(fn)
}

// Eval evaluates the definition, and then the body in a child environment
// where the variable is bound to the definition's value.
func (obj *ExprLet) Eval(ctx context.Context, env interfaces.Env) (pgraph.VertexSet, error) {
	value, err := obj.Def.Eval(ctx, env)
	if err != nil {
		return nil, err
	}
	return obj.Body.Eval(ctx, env.WithVariable(obj.Name, value))
}

// ExprVar is a reference to a variable bound by an enclosing let expression.
type ExprVar struct {
	Name string
}

// String returns a short representation of this expression.
func (obj *ExprVar) String() string {
	return fmt.Sprintf("$%s", obj.Name)
}

// Apply is a general purpose iterator method that operates on any expression
// node. This is a leaf, so it applies to itself only.
func (obj *ExprVar) Apply(fn func(interfaces.Expr) error) error {
	return fn(obj)
}

// Eval looks the variable up in the environment scope.
func (obj *ExprVar) Eval(ctx context.Context, env interfaces.Env) (pgraph.VertexSet, error) {
	value, err := env.Variable(obj.Name)
	if err != nil {
		return nil, &interfaces.QueryError{Expr: obj, Err: err}
	}
	return value, nil
}
