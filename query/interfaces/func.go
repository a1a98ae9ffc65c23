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
	"fmt"

	"github.com/graphquery/graphquery/pgraph"
)

// ArgType represents the kind of a single function argument.
type ArgType int

const (
	// ArgTypeExpression is a nested query expression argument.
	ArgTypeExpression ArgType = iota

	// ArgTypeWord is a literal word argument, eg a regexp pattern.
	ArgTypeWord

	// ArgTypeInt is a literal integer argument, eg a depth bound.
	ArgTypeInt
)

// String makes the arg type pretty print in error messages.
func (t ArgType) String() string {
	switch t {
	case ArgTypeExpression:
		return "expression"
	case ArgTypeWord:
		return "word"
	case ArgTypeInt:
		return "int"
	}
	return fmt.Sprintf("invalid(%d)", int(t))
}

// Argument is a single tagged argument value for a function call. Exactly one
// of the payload fields is meaningful, selected by Kind. Arguments are bound
// and checked against the function's declared argument types once, before the
// function body runs.
type Argument struct {
	Kind ArgType

	Expr Expr   // when Kind == ArgTypeExpression
	Word string // when Kind == ArgTypeWord
	Int  int    // when Kind == ArgTypeInt
}

// NewExprArg builds a nested expression argument.
func NewExprArg(expr Expr) *Argument {
	return &Argument{Kind: ArgTypeExpression, Expr: expr}
}

// NewWordArg builds a literal word argument.
func NewWordArg(word string) *Argument {
	return &Argument{Kind: ArgTypeWord, Word: word}
}

// NewIntArg builds a literal integer argument.
func NewIntArg(i int) *Argument {
	return &Argument{Kind: ArgTypeInt, Int: i}
}

// String makes the argument pretty print.
func (a *Argument) String() string {
	switch a.Kind {
	case ArgTypeExpression:
		return a.Expr.String()
	case ArgTypeWord:
		return fmt.Sprintf("%q", a.Word)
	case ArgTypeInt:
		return fmt.Sprintf("%d", a.Int)
	}
	return "?"
}

// FuncSig is the evaluation behaviour of a query function. It receives the
// environment, the call expression (for error attribution only), and the
// bound arguments, which have already been checked against the declared
// argument types.
type FuncSig func(ctx context.Context, env Env, expr Expr, args []*Argument) (pgraph.VertexSet, error)

// Func describes one named query function. There is no method hierarchy: a
// function is a flat descriptor of its name, its arity and argument types,
// and its evaluation behaviour. Optional arguments are the declared types
// past MandatoryArgs.
type Func struct {
	// Name is the unique name that the function is called by.
	Name string

	// MandatoryArgs is the minimum number of arguments the function needs.
	MandatoryArgs int

	// ArgTypes declares the type of each positional argument, in order.
	// Its length is the maximum number of arguments accepted.
	ArgTypes []ArgType

	// Fn is the evaluation behaviour. It must not mutate the graph; the
	// only environment state it may populate is the closure cache.
	Fn FuncSig
}

// Validate reports whether the descriptor is well formed.
func (f *Func) Validate() error {
	if f.Name == "" {
		return fmt.Errorf("function has an empty name")
	}
	if f.Fn == nil {
		return fmt.Errorf("function %s has no body", f.Name)
	}
	if f.MandatoryArgs < 0 || f.MandatoryArgs > len(f.ArgTypes) {
		return fmt.Errorf("function %s has an inconsistent arity", f.Name)
	}
	return nil
}
