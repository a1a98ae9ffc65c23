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

package query

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/graphquery/graphquery/graphenv"
	"github.com/graphquery/graphquery/pgraph"
	"github.com/graphquery/graphquery/query/ast"
	"github.com/graphquery/graphquery/query/funcs"
	"github.com/graphquery/graphquery/query/interfaces"

	"github.com/kylelemons/godebug/pretty"
)

// vtex is a minimal test vertex.
type vtex string

func (v vtex) String() string { return string(v) }

// edge is a minimal test edge.
type edge string

func (e edge) String() string { return string(e) }

// scenarioEnv builds the well-known test graph and an environment over it:
// a -> b, b -> c, a -> d, d -> e.
func scenarioEnv(t *testing.T) *graphenv.Env {
	g, err := pgraph.NewGraph("scenario")
	if err != nil {
		t.Fatalf("could not create graph: %+v", err)
	}
	a, b, c, d, e := vtex("a"), vtex("b"), vtex("c"), vtex("d"), vtex("e")
	g.AddEdge(a, b, edge("a->b"))
	g.AddEdge(b, c, edge("b->c"))
	g.AddEdge(a, d, edge("a->d"))
	g.AddEdge(d, e, edge("d->e"))

	env := &graphenv.Env{
		Graph: g,
		Debug: testing.Verbose(),
		Logf: func(format string, v ...interface{}) {
			t.Logf("graphenv: "+format, v...)
		},
	}
	if err := env.Init(); err != nil {
		t.Fatalf("could not init env: %+v", err)
	}
	return env
}

// pattern is a shorthand to build a pattern leaf expression.
func pattern(s string) interfaces.Expr {
	return &ast.ExprPattern{Pattern: s}
}

// call is a shorthand to build a call expression over expression args.
func call(name string, args ...interfaces.Expr) interfaces.Expr {
	expr := &ast.ExprCall{Name: name}
	for _, a := range args {
		expr.Args = append(expr.Args, interfaces.NewExprArg(a))
	}
	return expr
}

// run evaluates an expression and returns the sorted result names.
func run(t *testing.T, expr interfaces.Expr) []string {
	env := scenarioEnv(t)
	set, err := Evaluate(context.Background(), expr, env)
	if err != nil {
		t.Fatalf("unexpected error evaluating %s: %+v", expr, err)
	}
	return set.Names()
}

func TestSomePath1(t *testing.T) {
	testCases := []struct {
		from     string
		to       string
		expected []string
	}{
		{"a", "c", []string{"a", "b", "c"}},
		{"a", "e", []string{"a", "d", "e"}},
		{"c", "a", nil}, // no reverse edge exists
		{"a", "a", []string{"a"}},
		{"b", "e", nil},
	}
	for _, tc := range testCases {
		expr := call("somepath", pattern(tc.from), pattern(tc.to))
		if diff := pretty.Compare(tc.expected, run(t, expr)); diff != "" {
			t.Errorf("unexpected result for %s: %s", expr, diff)
		}
	}
}

func TestSomePathEndpoints1(t *testing.T) {
	// a non-empty somepath always contains one of from and one of to
	expr := call("somepath", pattern("a"), &ast.ExprBinary{
		Op: ast.OpUnion,
		X:  pattern("c"),
		Y:  pattern("e"),
	})
	names := run(t, expr)
	if len(names) == 0 {
		t.Fatalf("expected a path")
	}
	found := map[string]bool{}
	for _, n := range names {
		found[n] = true
	}
	if !found["a"] {
		t.Errorf("path is missing its source: %v", names)
	}
	if !found["c"] && !found["e"] {
		t.Errorf("path is missing its destination: %v", names)
	}
}

func TestDeps1(t *testing.T) {
	expr := call("deps", pattern("a"))
	if diff := pretty.Compare([]string{"a", "b", "c", "d", "e"}, run(t, expr)); diff != "" {
		t.Errorf("unexpected deps: %s", diff)
	}

	bounded := &ast.ExprCall{Name: "deps", Args: []*interfaces.Argument{
		interfaces.NewExprArg(pattern("a")),
		interfaces.NewIntArg(1),
	}}
	if diff := pretty.Compare([]string{"a", "b", "d"}, run(t, bounded)); diff != "" {
		t.Errorf("unexpected bounded deps: %s", diff)
	}

	zero := &ast.ExprCall{Name: "deps", Args: []*interfaces.Argument{
		interfaces.NewExprArg(pattern("a")),
		interfaces.NewIntArg(0),
	}}
	if diff := pretty.Compare([]string{"a"}, run(t, zero)); diff != "" {
		t.Errorf("unexpected zero-depth deps: %s", diff)
	}
}

func TestDepsNegative1(t *testing.T) {
	env := scenarioEnv(t)
	expr := &ast.ExprCall{Name: "deps", Args: []*interfaces.Argument{
		interfaces.NewExprArg(pattern("a")),
		interfaces.NewIntArg(-1),
	}}
	_, err := Evaluate(context.Background(), expr, env)
	var qerr *interfaces.QueryError
	if !errors.As(err, &qerr) {
		t.Errorf("expected a query error, got: %+v", err)
	}
}

func TestRDeps1(t *testing.T) {
	expr := call("rdeps", pattern("*"), pattern("c"))
	if diff := pretty.Compare([]string{"a", "b", "c"}, run(t, expr)); diff != "" {
		t.Errorf("unexpected rdeps: %s", diff)
	}

	bounded := &ast.ExprCall{Name: "rdeps", Args: []*interfaces.Argument{
		interfaces.NewExprArg(pattern("*")),
		interfaces.NewExprArg(pattern("c")),
		interfaces.NewIntArg(1),
	}}
	if diff := pretty.Compare([]string{"b", "c"}, run(t, bounded)); diff != "" {
		t.Errorf("unexpected bounded rdeps: %s", diff)
	}

	// a universe that does not contain the argument's ancestors
	narrow := call("rdeps", pattern("b"), pattern("c"))
	if diff := pretty.Compare([]string{"b", "c"}, run(t, narrow)); diff != "" {
		t.Errorf("unexpected narrow rdeps: %s", diff)
	}
}

func TestAllPaths1(t *testing.T) {
	expr := call("allpaths", pattern("a"), pattern("c"))
	if diff := pretty.Compare([]string{"a", "b", "c"}, run(t, expr)); diff != "" {
		t.Errorf("unexpected allpaths: %s", diff)
	}

	both := call("allpaths", pattern("a"), &ast.ExprBinary{
		Op: ast.OpUnion,
		X:  pattern("c"),
		Y:  pattern("e"),
	})
	if diff := pretty.Compare([]string{"a", "b", "c", "d", "e"}, run(t, both)); diff != "" {
		t.Errorf("unexpected allpaths: %s", diff)
	}

	none := call("allpaths", pattern("c"), pattern("e"))
	if diff := pretty.Compare([]string(nil), run(t, none)); diff != "" {
		t.Errorf("unexpected allpaths: %s", diff)
	}
}

func TestFilter1(t *testing.T) {
	expr := &ast.ExprCall{Name: "filter", Args: []*interfaces.Argument{
		interfaces.NewWordArg("[abd]"),
		interfaces.NewExprArg(pattern("*")),
	}}
	if diff := pretty.Compare([]string{"a", "b", "d"}, run(t, expr)); diff != "" {
		t.Errorf("unexpected filter result: %s", diff)
	}
}

func TestFilterBadPattern1(t *testing.T) {
	env := scenarioEnv(t)
	expr := &ast.ExprCall{Name: "filter", Args: []*interfaces.Argument{
		interfaces.NewWordArg("(unclosed"),
		interfaces.NewExprArg(pattern("*")),
	}}
	_, err := Evaluate(context.Background(), expr, env)
	var qerr *interfaces.QueryError
	if !errors.As(err, &qerr) {
		t.Errorf("expected a query error, got: %+v", err)
	}
}

func TestBinaryOps1(t *testing.T) {
	union := &ast.ExprBinary{Op: ast.OpUnion, X: pattern("a"), Y: pattern("b")}
	if diff := pretty.Compare([]string{"a", "b"}, run(t, union)); diff != "" {
		t.Errorf("unexpected union: %s", diff)
	}

	intersect := &ast.ExprBinary{
		Op: ast.OpIntersect,
		X:  call("deps", pattern("a")),
		Y:  call("deps", pattern("d")),
	}
	if diff := pretty.Compare([]string{"d", "e"}, run(t, intersect)); diff != "" {
		t.Errorf("unexpected intersection: %s", diff)
	}

	except := &ast.ExprBinary{
		Op: ast.OpExcept,
		X:  call("deps", pattern("a")),
		Y:  call("deps", pattern("b")),
	}
	if diff := pretty.Compare([]string{"a", "d", "e"}, run(t, except)); diff != "" {
		t.Errorf("unexpected difference: %s", diff)
	}
}

func TestBinaryOpsBothFail1(t *testing.T) {
	// when both operands fail, neither error may be dropped
	env := scenarioEnv(t)
	expr := &ast.ExprBinary{
		Op: ast.OpUnion,
		X:  pattern("nope1"),
		Y:  pattern("nope2"),
	}
	_, err := Evaluate(context.Background(), expr, env)
	if err == nil {
		t.Fatalf("expected an error")
	}
	if !errors.Is(err, interfaces.ErrUnresolvedNode) {
		t.Errorf("expected unresolved node error, got: %+v", err)
	}
	msg := err.Error()
	if !strings.Contains(msg, "nope1") {
		t.Errorf("left operand error is missing: %s", msg)
	}
	if !strings.Contains(msg, "nope2") {
		t.Errorf("right operand error is missing: %s", msg)
	}
}

func TestLet1(t *testing.T) {
	// let u = deps(a) in $u - deps(d)
	expr := &ast.ExprLet{
		Name: "u",
		Def:  call("deps", pattern("a")),
		Body: &ast.ExprBinary{
			Op: ast.OpExcept,
			X:  &ast.ExprVar{Name: "u"},
			Y:  call("deps", pattern("d")),
		},
	}
	if diff := pretty.Compare([]string{"a", "b", "c"}, run(t, expr)); diff != "" {
		t.Errorf("unexpected let result: %s", diff)
	}
}

func TestLetShadow1(t *testing.T) {
	// let u = a in (let u = b in $u) + $u
	expr := &ast.ExprLet{
		Name: "u",
		Def:  pattern("a"),
		Body: &ast.ExprBinary{
			Op: ast.OpUnion,
			X: &ast.ExprLet{
				Name: "u",
				Def:  pattern("b"),
				Body: &ast.ExprVar{Name: "u"},
			},
			Y: &ast.ExprVar{Name: "u"},
		},
	}
	if diff := pretty.Compare([]string{"a", "b"}, run(t, expr)); diff != "" {
		t.Errorf("unexpected shadowing result: %s", diff)
	}
}

func TestUndefinedVariable1(t *testing.T) {
	env := scenarioEnv(t)
	_, err := Evaluate(context.Background(), &ast.ExprVar{Name: "nope"}, env)
	if !errors.Is(err, interfaces.ErrUndefinedVariable) {
		t.Errorf("expected undefined variable error, got: %+v", err)
	}
}

func TestUnknownFunction1(t *testing.T) {
	env := scenarioEnv(t)
	_, err := Evaluate(context.Background(), call("nosuchfunc", pattern("a")), env)
	if !errors.Is(err, interfaces.ErrUnknownFunction) {
		t.Errorf("expected unknown function error, got: %+v", err)
	}
}

func TestDeterminism1(t *testing.T) {
	env := scenarioEnv(t)
	expr := call("somepath", pattern("a"), &ast.ExprBinary{
		Op: ast.OpUnion,
		X:  pattern("c"),
		Y:  pattern("e"),
	})

	first, err := Evaluate(context.Background(), expr, env)
	if err != nil {
		t.Fatalf("unexpected error: %+v", err)
	}
	for i := 0; i < 10; i++ {
		again, err := Evaluate(context.Background(), expr, env)
		if err != nil {
			t.Fatalf("unexpected error: %+v", err)
		}
		if diff := pretty.Compare(first.Names(), again.Names()); diff != "" {
			t.Errorf("non-deterministic result: %s", diff)
			return
		}
	}
}

func TestEvaluateCancel1(t *testing.T) {
	g, err := pgraph.NewGraph("chain")
	if err != nil {
		t.Fatalf("could not create graph: %+v", err)
	}
	var prev pgraph.Vertex
	for i := 0; i < 10000; i++ {
		v := vtex(fmt.Sprintf("v%06d", i))
		if prev != nil {
			g.AddEdge(prev, v, edge(fmt.Sprintf("e%06d", i)))
		}
		prev = v
	}
	env := &graphenv.Env{Graph: g}
	if err := env.Init(); err != nil {
		t.Fatalf("could not init env: %+v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	expr := call("somepath", pattern("v000000"), pattern("v009999"))
	if _, err := Evaluate(ctx, expr, env); !errors.Is(err, context.Canceled) {
		t.Errorf("expected cancellation, got: %+v", err)
	}
}

func TestEvaluateNil1(t *testing.T) {
	env := scenarioEnv(t)
	if _, err := Evaluate(context.Background(), nil, env); err == nil {
		t.Errorf("expected an error for a nil expression")
	}
	if _, err := Evaluate(context.Background(), pattern("a"), nil); err == nil {
		t.Errorf("expected an error for a nil environment")
	}
}

func TestCustomFunction1(t *testing.T) {
	// callers can extend the engine without touching the evaluator
	funcs.Register(&interfaces.Func{
		Name:          "first",
		MandatoryArgs: 1,
		ArgTypes:      []interfaces.ArgType{interfaces.ArgTypeExpression},
		Fn: func(ctx context.Context, env interfaces.Env, expr interfaces.Expr, args []*interfaces.Argument) (pgraph.VertexSet, error) {
			x, err := args[0].Expr.Eval(ctx, env)
			if err != nil {
				return nil, err
			}
			if x.Len() == 0 {
				return x, nil
			}
			return pgraph.NewVertexSet(x.Sorted()[0]), nil
		},
	})

	expr := call("first", call("deps", pattern("d")))
	if diff := pretty.Compare([]string{"d"}, run(t, expr)); diff != "" {
		t.Errorf("unexpected custom function result: %s", diff)
	}

	// a second registration under the same name must panic
	defer func() {
		if recover() == nil {
			t.Errorf("expected a panic on duplicate registration")
		}
	}()
	funcs.Register(&interfaces.Func{
		Name:          "first",
		MandatoryArgs: 0,
		Fn: func(ctx context.Context, env interfaces.Env, expr interfaces.Expr, args []*interfaces.Argument) (pgraph.VertexSet, error) {
			return pgraph.NewVertexSet(), nil
		},
	})
}
