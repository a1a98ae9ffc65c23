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

// Package funcs provides the registry of named query functions, the
// dispatcher that binds and invokes them, and the built-in function library.
// Callers may register their own functions without touching the evaluator.
package funcs

import (
	"context"
	"fmt"
	"sort"

	"github.com/graphquery/graphquery/pgraph"
	"github.com/graphquery/graphquery/query/interfaces"
	"github.com/graphquery/graphquery/util/errwrap"
)

// registeredFuncs is a global map of all possible functions which can be
// used. You should never touch this map directly. Use methods like Register
// instead.
var registeredFuncs = make(map[string]*interfaces.Func) // must initialize

// Register takes a function descriptor and makes it available for use. It is
// commonly called in the init() method of the file that defines the function,
// at program startup. There is no matching Unregister function.
func Register(fn *interfaces.Func) {
	if err := fn.Validate(); err != nil {
		panic(fmt.Sprintf("could not register: %v", err))
	}
	if _, exists := registeredFuncs[fn.Name]; exists {
		panic(fmt.Sprintf("a func named %s is already registered", fn.Name))
	}
	registeredFuncs[fn.Name] = fn
}

// Lookup returns the descriptor of the named function.
func Lookup(name string) (*interfaces.Func, error) {
	fn, exists := registeredFuncs[name]
	if !exists {
		return nil, interfaces.ErrUnknownFunction
	}
	return fn, nil
}

// Names returns a sorted list of the registered function names.
func Names() []string {
	var names []string
	for name := range registeredFuncs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// bind checks the given arguments against the function's declared arity and
// argument types. On any mismatch it returns a BindError attributing the
// offending call expression. Binding happens once, before the function body
// runs, so a call that fails to bind performs no graph access at all.
func bind(fn *interfaces.Func, expr interfaces.Expr, args []*interfaces.Argument) error {
	if len(args) < fn.MandatoryArgs {
		return &interfaces.BindError{
			Expr: expr,
			Msg:  fmt.Sprintf("%s needs at least %d args, got %d", fn.Name, fn.MandatoryArgs, len(args)),
		}
	}
	if len(args) > len(fn.ArgTypes) {
		return &interfaces.BindError{
			Expr: expr,
			Msg:  fmt.Sprintf("%s takes at most %d args, got %d", fn.Name, len(fn.ArgTypes), len(args)),
		}
	}
	for i, a := range args {
		if a == nil {
			return &interfaces.BindError{
				Expr: expr,
				Msg:  fmt.Sprintf("%s arg %d is nil", fn.Name, i),
			}
		}
		if want := fn.ArgTypes[i]; a.Kind != want {
			return &interfaces.BindError{
				Expr: expr,
				Msg:  fmt.Sprintf("%s arg %d must be an %s, got an %s", fn.Name, i, want, a.Kind),
			}
		}
		if a.Kind == interfaces.ArgTypeExpression && a.Expr == nil {
			return &interfaces.BindError{
				Expr: expr,
				Msg:  fmt.Sprintf("%s arg %d is an empty expression", fn.Name, i),
			}
		}
	}
	return nil
}

// Call resolves the named function, binds the arguments against its
// declaration, and invokes it. An unknown name or a binding mismatch fails
// before any evaluation happens; errors from the function body itself bubble
// through unmodified.
func Call(ctx context.Context, env interfaces.Env, expr interfaces.Expr, name string, args []*interfaces.Argument) (pgraph.VertexSet, error) {
	fn, err := Lookup(name)
	if err != nil {
		return nil, errwrap.Wrapf(err, "can't call %s", expr)
	}
	if err := bind(fn, expr, args); err != nil {
		return nil, err
	}
	return fn.Fn(ctx, env, expr, args)
}
