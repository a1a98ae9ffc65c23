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

// Package errwrap contains some error helpers.
package errwrap

import (
	multierror "github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
)

// Wrapf adds a new error message onto an existing chain of errors. If the
// error to be wrapped is nil, then this returns nil too, so you can use it as
// a transparent pass-through on the common non-error path.
func Wrapf(err error, format string, args ...interface{}) error {
	return errors.Wrapf(err, format, args...)
}

// Errorf creates a brand new error with a stack attached. It is a drop-in for
// fmt.Errorf in code that wants the stack information preserved.
func Errorf(format string, args ...interface{}) error {
	return errors.Errorf(format, args...)
}

// Append joins a new error onto an existing one. Either of the two may be
// nil, in which case the other is returned unchanged. This makes it safe to
// use as an accumulating `reterr += err` when collecting errors from multiple
// goroutines or loop iterations.
func Append(reterr, err error) error {
	if reterr == nil {
		return err // might be nil too, that's fine
	}
	if err == nil {
		return reterr
	}
	return multierror.Append(reterr, err)
}

// String returns a string representation of the error, or the empty string if
// the error is nil, instead of panicking.
func String(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
