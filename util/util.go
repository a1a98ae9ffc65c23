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

// Package util contains a few generic helpers that the rest of the project
// uses.
package util

// Error is a constant-compatible error type. Sentinel errors built from this
// type can be declared as consts and compared with errors.Is.
type Error string

// Error fulfills the error interface.
func (e Error) Error() string {
	return string(e)
}

// StrListContains tells us if a string exists inside of a list of strings.
func StrListContains(needle string, haystack []string) bool {
	for _, x := range haystack {
		if x == needle {
			return true
		}
	}
	return false
}
