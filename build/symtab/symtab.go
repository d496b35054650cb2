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

// Package symtab implements the compile-time symbol table: variables,
// function signatures, and the entity sets of a compilation.
//
// A table is created for each compilation and passed explicitly to the
// checker. It has one global scope, and one nested scope per function
// body being checked. Names are resolved from the innermost scope outwards.
package symtab

import (
	"fmt"

	"github.com/golang/glog"
	"github.com/pkg/errors"

	"github.com/gx-org/equelle/build/entityset"
	"github.com/gx-org/equelle/build/fmterr"
	"github.com/gx-org/equelle/build/types"
	"github.com/gx-org/equelle/internal/base/scope"
)

type (
	// Variable is a variable binding.
	Variable struct {
		Name     string
		Type     types.Type
		Dim      types.Dimension
		Declared bool
		// Assigned is only set for immutable variables.
		Assigned bool
	}

	// symbol is either a variable or a function.
	symbol struct {
		vr *Variable
		fn *Function
	}

	// Table is the symbol table of a compilation.
	Table struct {
		sets    *entityset.Registry
		global  *scope.RWScope[symbol]
		current *scope.RWScope[symbol]
	}
)

func (s symbol) String() string {
	if s.fn != nil {
		return s.fn.String()
	}
	return fmt.Sprintf("%s %s", s.vr.Type, s.vr.Dim)
}

// New returns a symbol table with the built-in entity sets.
func New() (*Table, error) {
	global := scope.NewScope[symbol]("global", nil)
	t := &Table{
		sets:    entityset.New(),
		global:  global,
		current: global,
	}
	if err := t.declareGridSets(); err != nil {
		return nil, err
	}
	return t, nil
}

func (t *Table) find(name string) (symbol, bool) {
	return t.current.Find(name)
}

// DeclareVariable declares a new variable in the current scope.
// It fails with a DeclarationError if name is already a variable or
// a function visible from the current scope.
func (t *Table) DeclareVariable(name string, typ types.Type) error {
	if prev, ok := t.find(name); ok {
		what := "variable"
		if prev.fn != nil {
			what = "function"
		}
		return fmterr.Errorf(fmterr.DeclarationError, nil, "cannot redeclare %s: already declared as %s", name, what)
	}
	t.current.Define(name, symbol{vr: &Variable{
		Name:     name,
		Type:     typ,
		Declared: true,
	}})
	glog.V(2).Infof("declared variable %s: %s in scope %s", name, t.TypeString(typ), t.current.Label())
	return nil
}

func (t *Table) variable(name string) (*Variable, bool) {
	sym, ok := t.find(name)
	if !ok || sym.vr == nil {
		return nil, false
	}
	return sym.vr, true
}

// Variable returns the variable binding visible under name.
func (t *Table) Variable(name string) (*Variable, bool) {
	return t.variable(name)
}

// IsVariableDeclared returns true if a variable is visible under name.
func (t *Table) IsVariableDeclared(name string) bool {
	vr, ok := t.variable(name)
	return ok && vr.Declared
}

// IsFunctionDeclared returns true if a function is visible under name.
func (t *Table) IsFunctionDeclared(name string) bool {
	sym, ok := t.find(name)
	return ok && sym.fn != nil
}

// IsVariableAssigned returns true if the variable has been assigned.
func (t *Table) IsVariableAssigned(name string) bool {
	vr, ok := t.variable(name)
	return ok && vr.Assigned
}

func (t *Table) mustVariable(name string) (*Variable, error) {
	vr, ok := t.variable(name)
	if !ok {
		return nil, errors.Errorf("variable %s not found in the symbol table", name)
	}
	return vr, nil
}

// VariableType returns the type of a variable.
func (t *Table) VariableType(name string) (types.Type, error) {
	vr, err := t.mustVariable(name)
	if err != nil {
		return types.InvalidType(), err
	}
	return vr.Type, nil
}

// VariableDimension returns the dimension of a variable.
func (t *Table) VariableDimension(name string) (types.Dimension, error) {
	vr, err := t.mustVariable(name)
	if err != nil {
		return types.Dimension{}, err
	}
	return vr.Dim, nil
}

// SetVariableType sets the type of a declared variable.
func (t *Table) SetVariableType(name string, typ types.Type) error {
	vr, err := t.mustVariable(name)
	if err != nil {
		return err
	}
	vr.Type = typ
	return nil
}

// SetVariableDimension sets the dimension of a declared variable.
func (t *Table) SetVariableDimension(name string, dim types.Dimension) error {
	vr, err := t.mustVariable(name)
	if err != nil {
		return err
	}
	vr.Dim = dim
	return nil
}

// SetVariableAssigned marks an immutable variable as assigned.
// Mutable variables are never marked: they can be assigned any number of times.
func (t *Table) SetVariableAssigned(name string, assigned bool) error {
	vr, err := t.mustVariable(name)
	if err != nil {
		return err
	}
	if vr.Type.IsMutable() {
		return nil
	}
	vr.Assigned = assigned
	return nil
}

// DeclareFunction declares a function in the current scope.
func (t *Table) DeclareFunction(fn *Function) error {
	if prev, ok := t.find(fn.Name); ok {
		what := "variable"
		if prev.fn != nil {
			what = "function"
		}
		return fmterr.Errorf(fmterr.DeclarationError, nil, "cannot redeclare %s: already declared as %s", fn.Name, what)
	}
	t.current.Define(fn.Name, symbol{fn: fn})
	glog.V(2).Infof("declared function %s in scope %s", fn.String(), t.current.Label())
	return nil
}

// GetFunction returns a function given its name.
// Callers must have validated that the function exists: a missing
// function is a consistency fault.
func (t *Table) GetFunction(name string) (*Function, error) {
	sym, ok := t.find(name)
	if !ok || sym.fn == nil {
		return nil, fmterr.Internal(errors.Errorf("function %s not found in the symbol table", name))
	}
	return sym.fn, nil
}

// PushScope opens a new scope nested in the current scope.
func (t *Table) PushScope(label string) {
	t.current = t.current.NewChild(label)
	glog.V(2).Infof("entering scope %s (depth %d)", label, t.current.Depth())
}

// PopScope closes the current scope.
func (t *Table) PopScope() error {
	parent := t.current.Parent()
	if parent == nil {
		return fmterr.Internal(errors.Errorf("cannot close the global scope"))
	}
	glog.V(2).Infof("leaving scope %s", t.current.Label())
	t.current = parent
	return nil
}

// InGlobalScope returns true if no function scope is open.
func (t *Table) InGlobalScope() bool {
	return t.current == t.global
}
