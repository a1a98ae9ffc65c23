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
	"fmt"

	"github.com/graphquery/graphquery/util"
)

const (
	// ErrUnknownFunction is returned when a call expression names a
	// function that was never registered.
	ErrUnknownFunction = util.Error("function is not known")

	// ErrUnresolvedNode is returned when a pattern or path endpoint does
	// not name any vertex in the graph snapshot.
	ErrUnresolvedNode = util.Error("node could not be resolved")

	// ErrClosureNotBuilt is returned when the transitive closure of a set
	// is requested before it was built to a sufficient depth.
	ErrClosureNotBuilt = util.Error("transitive closure was not built")

	// ErrUndefinedVariable is returned when a variable reference is not in
	// scope.
	ErrUndefinedVariable = util.Error("variable is not defined")
)

// BindError is raised when the arguments of a function call do not match the
// function's declared arity or argument types. It is always raised before the
// function body runs, so no graph access happens for a call that fails to
// bind. Cancellation is never represented as a BindError.
type BindError struct {
	// Expr is the call expression that failed to bind.
	Expr Expr

	// Msg describes the mismatch.
	Msg string
}

// Error fulfills the error interface.
func (e *BindError) Error() string {
	return fmt.Sprintf("%s in call to: %s", e.Msg, e.Expr)
}

// QueryError is a runtime query error: a graph inconsistency, an unresolved
// node reference, or a bad argument value discovered during evaluation. It
// carries the expression it should be attributed to. Cancellation is never
// wrapped into a QueryError; a closed context propagates its own error
// unchanged through every call level instead.
type QueryError struct {
	// Expr is the expression being evaluated when the error occurred.
	Expr Expr

	// Err is the underlying cause.
	Err error
}

// Error fulfills the error interface.
func (e *QueryError) Error() string {
	return fmt.Sprintf("%v while evaluating: %s", e.Err, e.Expr)
}

// Unwrap lets errors.Is and errors.As look through to the cause.
func (e *QueryError) Unwrap() error {
	return e.Err
}
