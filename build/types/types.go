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

// Package types defines the type algebra of the grid equation language:
// types of values and collections over sets of grid entities, and the
// physical dimension attached to every expression.
package types

import (
	"fmt"
	"strings"

	"github.com/gx-org/backend/dtype"
)

// Sentinel grid mappings.
const (
	// NotApplicable is the grid mapping of a type that is not a collection.
	NotApplicable = -1
	// Postponed is the grid mapping of a collection declared as a subset of
	// another set, waiting for an assignment to provide its actual set.
	Postponed = -2
)

// Type of a value or an expression.
// Types are compared structurally with ==.
type Type struct {
	Basic      Kind
	Collection bool
	// GridMapping is the entity set the collection is on,
	// NotApplicable, or Postponed.
	GridMapping int
	// SubsetOf is the declared restricting set of a postponed collection.
	SubsetOf  int
	Array     bool
	ArraySize int
	Stencil   bool
	Mutable   bool
	// Domain is true when the value itself denotes a set of grid entities.
	Domain bool
}

// Basic returns the type of a single value of a given kind.
func Basic(k Kind) Type {
	return Type{Basic: k, GridMapping: NotApplicable, SubsetOf: NotApplicable}
}

// InvalidType returns the type of an expression that could not be typed.
func InvalidType() Type {
	return Basic(Invalid)
}

// VoidType returns the type of an expression returning nothing.
func VoidType() Type {
	return Basic(Void)
}

// CollectionOf returns a collection of a given kind on an entity set.
func CollectionOf(k Kind, on int) Type {
	t := Basic(k)
	t.Collection = true
	t.GridMapping = on
	return t
}

// SubsetOf returns a collection whose entity set is postponed
// until assigned, and which must be a subset of the set parent.
func SubsetOf(k Kind, parent int) Type {
	t := CollectionOf(k, Postponed)
	t.SubsetOf = parent
	return t
}

// DomainOf returns the type of a set of entities of a given kind.
func DomainOf(k Kind, on int) Type {
	t := CollectionOf(k, on)
	t.Domain = true
	return t
}

// AsArray returns the type of an array of size elements of t.
func (t Type) AsArray(size int) Type {
	t.Array = true
	t.ArraySize = size
	return t
}

// Element returns the type of the elements of an array.
func (t Type) Element() Type {
	t.Array = false
	t.ArraySize = 0
	return t
}

// AsStencil returns t marked as a stencil.
func (t Type) AsStencil() Type {
	t.Stencil = true
	return t
}

// AsMutable returns t marked as mutable.
func (t Type) AsMutable() Type {
	t.Mutable = true
	return t
}

// On returns t as a collection on an entity set.
func (t Type) On(set int) Type {
	t.Collection = true
	t.GridMapping = set
	t.SubsetOf = NotApplicable
	return t
}

// Valid returns true if the type is neither invalid nor void.
func (t Type) Valid() bool {
	return t.Basic != Invalid && t.Basic != Void
}

// IsCollection returns true if the type is a collection over an entity set.
func (t Type) IsCollection() bool {
	return t.Collection
}

// IsArray returns true if the type is an array.
func (t Type) IsArray() bool {
	return t.Array
}

// IsStencil returns true if the type is a stencil.
func (t Type) IsStencil() bool {
	return t.Stencil
}

// IsDomain returns true if the type denotes a set of grid entities.
func (t Type) IsDomain() bool {
	return t.Domain
}

// IsMutable returns true if variables of the type can be re-assigned.
func (t Type) IsMutable() bool {
	return t.Mutable
}

// IsPostponed returns true if the grid mapping of the type is not known yet.
func (t Type) IsPostponed() bool {
	return t.GridMapping == Postponed
}

// HasGridMapping returns true if the type refers to a concrete entity set.
func (t Type) HasGridMapping() bool {
	return t.GridMapping >= 0
}

// SameValue returns true if t and o describe the same values,
// ignoring whether a variable holding them is mutable and whether
// they were produced as a domain.
func (t Type) SameValue(o Type) bool {
	t.Mutable, o.Mutable = false, false
	t.Domain, o.Domain = false, false
	return t == o
}

// DataType returns the element data type used by backends to store the type.
func (t Type) DataType() dtype.DataType {
	return t.Basic.DataType()
}

// CanSubstituteFor returns true if a value of type actual can be passed
// where the type formal is expected.
// A collection on a set can substitute for a collection on a superset,
// but not the reverse. isSubset reports if a set is a subset of another.
func CanSubstituteFor(actual, formal Type, isSubset func(sub, super int) bool) bool {
	if actual.Basic != formal.Basic {
		return false
	}
	if actual.Collection != formal.Collection {
		return false
	}
	if actual.Array != formal.Array || actual.ArraySize != formal.ArraySize {
		return false
	}
	expected := formal.GridMapping
	if formal.IsPostponed() {
		expected = formal.SubsetOf
	}
	if !actual.HasGridMapping() || expected < 0 {
		return true
	}
	return actual.GridMapping == expected || isSubset(actual.GridMapping, expected)
}

// SetNamer returns the name of an entity set given its id.
type SetNamer func(id int) string

func defaultSetName(id int) string {
	return fmt.Sprintf("EntitySet#%d", id)
}

// Format returns the type written in the syntax of the language.
// namer can be nil, in which case entity sets are named by their id.
func (t Type) Format(namer SetNamer) string {
	if namer == nil {
		namer = defaultSetName
	}
	var s []string
	if t.Mutable {
		s = append(s, "Mutable")
	}
	if t.Array {
		s = append(s, fmt.Sprintf("Array Of %d", t.ArraySize))
	}
	if t.Stencil {
		s = append(s, "Stencil")
	}
	if t.Collection {
		s = append(s, "Collection Of")
	}
	s = append(s, t.Basic.String())
	switch {
	case t.IsPostponed() && t.SubsetOf >= 0:
		s = append(s, "Subset Of", namer(t.SubsetOf))
	case t.IsPostponed():
		s = append(s, "On <postponed>")
	case t.Collection && t.GridMapping >= 0:
		s = append(s, "On", namer(t.GridMapping))
	}
	return strings.Join(s, " ")
}

// String representation of the type.
func (t Type) String() string {
	return t.Format(nil)
}
