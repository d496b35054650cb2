// Copyright 2024 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package types

import (
	"fmt"

	"github.com/gx-org/backend/dtype"
)

// Kind is the basic kind of a type.
type Kind uint

// Basic kinds of the language.
const (
	Invalid Kind = iota
	Void
	Bool
	Scalar
	Vector
	Cell
	Face
	Edge
	Vertex
	StencilI
	StencilJ
	StencilK
	// String is the kind of string literals, only accepted by input functions.
	String
)

var kindNames = [...]string{
	Invalid:  "Invalid",
	Void:     "Void",
	Bool:     "Bool",
	Scalar:   "Scalar",
	Vector:   "Vector",
	Cell:     "Cell",
	Face:     "Face",
	Edge:     "Edge",
	Vertex:   "Vertex",
	StencilI: "StencilI",
	StencilJ: "StencilJ",
	StencilK: "StencilK",
	String:   "String",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint(k))
}

// KindFromString returns the kind given its name in the language.
func KindFromString(s string) (Kind, bool) {
	for k, name := range kindNames {
		if name == s {
			return Kind(k), true
		}
	}
	return Invalid, false
}

// IsNumeric returns true if arithmetic operators apply to the kind.
func IsNumeric(k Kind) bool {
	switch k {
	case Scalar, Vector:
		return true
	case StencilI, StencilJ, StencilK:
		return true
	default:
		return false
	}
}

// IsEntity returns true if the kind is a grid entity.
func IsEntity(k Kind) bool {
	switch k {
	case Cell, Face, Edge, Vertex:
		return true
	default:
		return false
	}
}

// IsStencilIndex returns true if the kind is one of the stencil axis indices.
func IsStencilIndex(k Kind) bool {
	switch k {
	case StencilI, StencilJ, StencilK:
		return true
	default:
		return false
	}
}

// DataType returns the element data type used by backends to store
// values of the kind.
func (k Kind) DataType() dtype.DataType {
	switch k {
	case Bool:
		return dtype.Bool
	case Scalar, Vector:
		return dtype.Float64
	case Cell, Face, Edge, Vertex:
		return dtype.Int64
	case StencilI, StencilJ, StencilK:
		return dtype.Int64
	default:
		return dtype.Invalid
	}
}
