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

// Package builtins declares the functions available to all programs:
// grid queries, geometry, input and output, and math functions.
package builtins

import (
	"maps"
	"slices"

	"github.com/pkg/errors"

	"github.com/gx-org/equelle/build/symtab"
	"github.com/gx-org/equelle/build/types"
)

type (
	// sets resolves the names of the grid sets.
	sets struct {
		st  *symtab.Table
		err error
	}

	builder func(s *sets) *symtab.Function
)

func (s *sets) id(name string) int {
	id, ok := s.st.EntitySet(name)
	if !ok && s.err == nil {
		s.err = errors.Errorf("grid entity set %s not declared", name)
	}
	return id
}

// Args returns a list of formal arguments from name,type pairs.
func Args(args ...any) []symtab.Arg {
	res := make([]symtab.Arg, 0, len(args)/2)
	for i := 0; i+1 < len(args); i += 2 {
		res = append(res, symtab.Arg{
			Name: args[i].(string),
			Type: args[i+1].(types.Type),
		})
	}
	return res
}

// OnArg builds a rule returning a collection of kind on the
// grid mapping of the argument at position i.
func OnArg(kind types.Kind, i int) symtab.ReturnRule {
	return func(args []types.Type) types.Type {
		if i >= len(args) || !args[i].IsCollection() {
			return types.InvalidType()
		}
		return types.CollectionOf(kind, args[i].GridMapping)
	}
}

// anyCollectionOf returns a collection type accepting collections on any set.
func anyCollectionOf(kind types.Kind) types.Type {
	return types.CollectionOf(kind, types.NotApplicable)
}

func fixedDim(d types.Dimension) symtab.DimensionRule {
	return func([]types.Dimension) types.Dimension {
		return d
	}
}

var length = types.DimensionOf(types.Length, 1)

func gridQuery(name string, kind types.Kind) builder {
	return func(s *sets) *symtab.Function {
		return &symtab.Function{
			Name:   name,
			Return: symtab.Returns(types.DomainOf(kind, s.id(name))),
		}
	}
}

func geometry(name string, entity types.Kind, setName string, result types.Kind, dim types.Dimension) builder {
	return func(s *sets) *symtab.Function {
		return &symtab.Function{
			Name:      name,
			Args:      Args("entities", types.CollectionOf(entity, s.id(setName))),
			Return:    OnArg(result, 0),
			ReturnDim: fixedDim(dim),
		}
	}
}

var builtins = []builder{
	gridQuery("AllCells", types.Cell),
	gridQuery("InteriorCells", types.Cell),
	gridQuery("BoundaryCells", types.Cell),
	gridQuery("AllFaces", types.Face),
	gridQuery("InteriorFaces", types.Face),
	gridQuery("BoundaryFaces", types.Face),
	gridQuery("AllEdges", types.Edge),
	gridQuery("InteriorEdges", types.Edge),
	gridQuery("BoundaryEdges", types.Edge),
	gridQuery("AllVertices", types.Vertex),
	gridQuery("InteriorVertices", types.Vertex),
	gridQuery("BoundaryVertices", types.Vertex),

	geometry("FirstCell", types.Face, "AllFaces", types.Cell, types.Dimensionless()),
	geometry("SecondCell", types.Face, "AllFaces", types.Cell, types.Dimensionless()),
	geometry("Centroid", types.Cell, "AllCells", types.Vector, length),
	geometry("Normal", types.Face, "AllFaces", types.Vector, length.Scale(types.Int(2))),
	geometry("Area", types.Face, "AllFaces", types.Scalar, length.Scale(types.Int(2))),
	geometry("Volume", types.Cell, "AllCells", types.Scalar, length.Scale(types.Int(3))),

	func(s *sets) *symtab.Function {
		return &symtab.Function{
			Name:   "Gradient",
			Args:   Args("values", types.CollectionOf(types.Scalar, s.id("AllCells"))),
			Return: symtab.Returns(types.CollectionOf(types.Scalar, s.id("InteriorFaces"))),
			ReturnDim: func(dims []types.Dimension) types.Dimension {
				return symtab.SameDimAsArg(0)(dims).Sub(length)
			},
		}
	},
	func(s *sets) *symtab.Function {
		return &symtab.Function{
			Name:      "Divergence",
			Args:      Args("flux", types.CollectionOf(types.Scalar, s.id("AllFaces"))),
			Return:    symtab.Returns(types.CollectionOf(types.Scalar, s.id("AllCells"))),
			ReturnDim: symtab.SameDimAsArg(0),
		}
	},
	func(s *sets) *symtab.Function {
		return &symtab.Function{
			Name:   "Dot",
			Args:   Args("v1", anyCollectionOf(types.Vector), "v2", anyCollectionOf(types.Vector)),
			Return: OnArg(types.Scalar, 0),
			ReturnDim: func(dims []types.Dimension) types.Dimension {
				return symtab.SameDimAsArg(0)(dims).Add(symtab.SameDimAsArg(1)(dims))
			},
		}
	},
	func(s *sets) *symtab.Function {
		return &symtab.Function{
			Name:   "Sqrt",
			Args:   Args("s", anyCollectionOf(types.Scalar)),
			Return: OnArg(types.Scalar, 0),
			ReturnDim: func(dims []types.Dimension) types.Dimension {
				return symtab.SameDimAsArg(0)(dims).Scale(types.NewRational(1, 2))
			},
		}
	},
	func(s *sets) *symtab.Function {
		return &symtab.Function{
			Name:      "InputScalarWithDefault",
			Args:      Args("name", types.Basic(types.String), "default", types.Basic(types.Scalar)),
			Return:    symtab.Returns(types.Basic(types.Scalar)),
			ReturnDim: symtab.SameDimAsArg(1),
		}
	},
	func(s *sets) *symtab.Function {
		return &symtab.Function{
			Name:   "InputCollectionOfScalar",
			Args:   Args("name", types.Basic(types.String), "entities", anyCollectionOf(types.Cell)),
			Return: OnArg(types.Scalar, 1),
		}
	},
	func(s *sets) *symtab.Function {
		return &symtab.Function{
			Name: "InputDomainSubsetOf",
			Args: Args("name", types.Basic(types.String), "entities", types.CollectionOf(types.Face, s.id("AllFaces"))),
			Return: func(args []types.Type) types.Type {
				if len(args) < 2 {
					return types.InvalidType()
				}
				return types.DomainOf(args[1].Basic, args[1].GridMapping)
			},
			DynamicSubset: symtab.SubsetOfArg(1),
		}
	},
	func(s *sets) *symtab.Function {
		return &symtab.Function{
			Name: "Output",
			Args: Args("tag", types.Basic(types.String), "data", anyCollectionOf(types.Scalar)),
		}
	},
}

// Names returns the names of all the built-in functions.
func Names() ([]string, error) {
	st, err := symtab.New()
	if err != nil {
		return nil, err
	}
	s := &sets{st: st}
	names := make([]string, len(builtins))
	for i, build := range builtins {
		names[i] = build(s).Name
	}
	if s.err != nil {
		return nil, s.err
	}
	slices.Sort(names)
	return names, nil
}

// Declare declares the built-in functions in a symbol table,
// except the functions listed in exclude.
func Declare(st *symtab.Table, exclude ...string) error {
	s := &sets{st: st}
	skip := make(map[string]bool, len(exclude))
	for _, name := range exclude {
		skip[name] = true
	}
	for _, build := range builtins {
		fn := build(s)
		if s.err != nil {
			return s.err
		}
		if skip[fn.Name] {
			delete(skip, fn.Name)
			continue
		}
		if err := st.DeclareFunction(fn); err != nil {
			return err
		}
	}
	if len(skip) > 0 {
		return errors.Errorf("cannot exclude %v: no such built-in functions", slices.Sorted(maps.Keys(skip)))
	}
	return nil
}
