// Copyright 2025 Google LLC
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

package symtab

import (
	"fmt"
	"strings"

	"github.com/gx-org/equelle/build/types"
)

type (
	// Arg is a formal argument of a function.
	Arg struct {
		Name string
		Type types.Type
	}

	// ReturnRule computes the return type of a function given
	// the types of the actual arguments.
	ReturnRule func(args []types.Type) types.Type

	// DynamicSubsetRule returns the id of the entity set a call creates
	// a new subset of, or types.NotApplicable if the call does not create
	// a new entity set.
	DynamicSubsetRule func(args []types.Type) int

	// DimensionRule computes the dimension of the returned value given
	// the dimensions of the actual arguments.
	DimensionRule func(args []types.Dimension) types.Dimension

	// Function is the signature of a function.
	Function struct {
		Name string
		Args []Arg
		// Return is the rule computing the return type. A nil rule returns void.
		Return ReturnRule
		// DynamicSubset is nil for functions never creating entity sets.
		DynamicSubset DynamicSubsetRule
		// ReturnDim is nil for functions returning a dimensionless value.
		ReturnDim DimensionRule
	}
)

// Returns builds a rule always returning the same type.
func Returns(typ types.Type) ReturnRule {
	return func([]types.Type) types.Type {
		return typ
	}
}

// SubsetOfArg builds a dynamic subset rule creating a subset of
// the grid mapping of the argument at position i.
func SubsetOfArg(i int) DynamicSubsetRule {
	return func(args []types.Type) int {
		if i >= len(args) || !args[i].HasGridMapping() {
			return types.NotApplicable
		}
		return args[i].GridMapping
	}
}

// SameDimAsArg builds a dimension rule returning the dimension of
// the argument at position i.
func SameDimAsArg(i int) DimensionRule {
	return func(dims []types.Dimension) types.Dimension {
		if i >= len(dims) {
			return types.Dimensionless()
		}
		return dims[i]
	}
}

// ReturnType returns the type returned by a call given the actual argument types.
func (f *Function) ReturnType(args []types.Type) types.Type {
	if f.Return == nil {
		return types.VoidType()
	}
	return f.Return(args)
}

// ReturnDimension returns the dimension of the value returned by a call.
func (f *Function) ReturnDimension(dims []types.Dimension) types.Dimension {
	if f.ReturnDim == nil {
		return types.Dimensionless()
	}
	return f.ReturnDim(dims)
}

// DynamicSubsetReturn returns the parent of the entity set a call creates,
// or types.NotApplicable.
func (f *Function) DynamicSubsetReturn(args []types.Type) int {
	if f.DynamicSubset == nil {
		return types.NotApplicable
	}
	return f.DynamicSubset(args)
}

// Signature returns the signature of the function given
// a function to format types.
func (f *Function) Signature(format func(types.Type) string) string {
	if format == nil {
		format = types.Type.String
	}
	args := make([]string, len(f.Args))
	for i, arg := range f.Args {
		args[i] = fmt.Sprintf("%s: %s", arg.Name, format(arg.Type))
	}
	ret := format(f.ReturnType(f.formalTypes()))
	return fmt.Sprintf("%s(%s) -> %s", f.Name, strings.Join(args, ", "), ret)
}

func (f *Function) formalTypes() []types.Type {
	tps := make([]types.Type, len(f.Args))
	for i, arg := range f.Args {
		tps[i] = arg.Type
	}
	return tps
}

func (f *Function) String() string {
	return f.Signature(nil)
}
