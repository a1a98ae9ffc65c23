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

package pgraph

// vertex is a test struct to test the library.
type vertex struct {
	name string
}

// String is a required method of the Vertex interface that we must fulfill.
func (v *vertex) String() string {
	return v.name
}

// NV is a helper function to make testing easier. It creates a new noop
// vertex.
func NV(s string) Vertex {
	return &vertex{s}
}

// edge is a test struct to test the library.
type edge struct {
	name string
}

// String is a required method of the Edge interface that we must fulfill.
func (e *edge) String() string {
	return e.name
}

// NE is a helper function to make testing easier. It creates a new noop edge.
func NE(s string) Edge {
	return &edge{s}
}
