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

// Package ast defines the abstract syntax tree of the grid equation language.
//
// The set of node kinds is closed. The tree is strict: a parent exclusively
// owns its children. Expression nodes carry a type and a dimension which
// start unresolved and are set exactly once by the checker.
package ast

import (
	"github.com/pkg/errors"

	"github.com/gx-org/equelle/build/types"
)

type (
	// Node is a node of the tree.
	Node interface {
		// Line returns the source line of the node, or 0 if unknown.
		Line() int
		node()
	}

	// Expr is a node computing a value.
	Expr interface {
		Node
		// Type returns the type of the expression once resolved.
		Type() types.Type
		// Dimension returns the physical dimension of the expression once resolved.
		Dimension() types.Dimension
		// Resolved returns true once the type has been set.
		Resolved() bool
		// SetType sets the type and the dimension of the expression.
		// It fails if they have already been set.
		SetType(types.Type, types.Dimension) error
	}

	// Pos is the source line of a node. 0 means that the line is unknown.
	Pos int

	// typed stores the type and dimension of an expression.
	typed struct {
		typ      types.Type
		dim      types.Dimension
		resolved bool
	}
)

// Line returns the line number.
func (p Pos) Line() int { return int(p) }

func (p Pos) node() {}

// Type returns the type of the expression, or the invalid type if unresolved.
func (t *typed) Type() types.Type {
	if !t.resolved {
		return types.InvalidType()
	}
	return t.typ
}

// Dimension of the expression.
func (t *typed) Dimension() types.Dimension {
	return t.dim
}

// Resolved returns true if the type of the expression has been set.
func (t *typed) Resolved() bool {
	return t.resolved
}

// SetType sets the type and the dimension of the expression.
func (t *typed) SetType(typ types.Type, dim types.Dimension) error {
	if t.resolved {
		return errors.Errorf("type already resolved to %s", t.typ)
	}
	t.typ, t.dim, t.resolved = typ, dim, true
	return nil
}

// TypeSpec is a type written in the source. Entity sets in the source
// are referred to by name and are resolved when the declaration is checked.
type TypeSpec struct {
	// Type is the declared type. Its grid mapping is ignored if On is set,
	// its restricting set is ignored if SubsetOf is set.
	Type types.Type
	// On is the name of the set or domain variable a collection is on.
	On string
	// SubsetOf is the name of the set restricting a postponed collection.
	SubsetOf string
}

// Statements and structure.
type (
	// Sequence is a list of statements.
	Sequence struct {
		Pos
		Children []Node
	}

	// VarDecl declares a variable with an explicit type: `x : Scalar`.
	VarDecl struct {
		Pos
		Name string
		Spec TypeSpec
	}

	// VarAssign assigns a value to a variable: `x = expr`.
	// The variable is declared by the assignment if it has not been declared.
	VarAssign struct {
		Pos
		Name  string
		Value Expr
	}

	// FuncDecl declares the signature of a function:
	// `f : Function(a : Scalar) -> Scalar`.
	FuncDecl struct {
		Pos
		Name   string
		Args   []FuncParam
		Return TypeSpec
	}

	// FuncParam is a formal argument of a declared function.
	FuncParam struct {
		Name string
		Spec TypeSpec
	}

	// FuncAssign defines the body of a declared function: `f(a) = { ... }`.
	FuncAssign struct {
		Pos
		Name   string
		Params []string
		Body   *Sequence
	}

	// FuncCallStatement is a call whose result, if any, is discarded.
	FuncCallStatement struct {
		Pos
		Call *FuncCall
	}

	// Return returns a value from a function body.
	Return struct {
		Pos
		Value Expr
	}

	// Loop iterates over the elements of an array: `For x In xs { ... }`.
	Loop struct {
		Pos
		Var   string
		Range Expr
		Body  *Sequence
	}

	// StencilAssign assigns a value to a stencil element: `u(i, j) = expr`.
	StencilAssign struct {
		Pos
		Target *StencilAccess
		Value  Expr
	}

	// FuncArgs is the list of actual arguments of a call.
	FuncArgs struct {
		Pos
		Args []Expr
	}

	// Unit is a unit of measure written in the source: `[Meter/Second^2]`.
	Unit struct {
		Pos
		Text string
		Unit types.Unit
	}
)

// Expressions.
type (
	// Number is a numeric literal.
	Number struct {
		Pos
		typed
		Value float64
	}

	// String is a string literal.
	String struct {
		Pos
		typed
		Value string
	}

	// Quantity is a value with a unit: `3.5 [Meter]`.
	Quantity struct {
		Pos
		typed
		Operand Expr
		Unit    *Unit
	}

	// BinaryOp is an arithmetic binary operation.
	BinaryOp struct {
		Pos
		typed
		Op          Operator
		Left, Right Expr
	}

	// ComparisonOp compares two values.
	ComparisonOp struct {
		Pos
		typed
		Op          Comparison
		Left, Right Expr
	}

	// UnaryNegation negates a value: `-x`.
	UnaryNegation struct {
		Pos
		typed
		Operand Expr
	}

	// Norm is the norm of a value: `|x|`.
	Norm struct {
		Pos
		typed
		Operand Expr
	}

	// TrinaryIf selects a value: `pred ? a : b`.
	TrinaryIf struct {
		Pos
		typed
		Predicate, IfTrue, IfFalse Expr
	}

	// On restricts or extends a collection to a domain: `x On d` or `x Extend d`.
	On struct {
		Pos
		typed
		Subject Expr
		Domain  Expr
		Extend  bool
	}

	// VarRef refers to a variable.
	VarRef struct {
		Pos
		typed
		Name string
	}

	// FuncRef refers to a function without calling it.
	FuncRef struct {
		Pos
		typed
		Name string
	}

	// FuncCall calls a function.
	FuncCall struct {
		Pos
		typed
		Name string
		Args *FuncArgs
	}

	// Array is an array literal: `[a, b, c]`.
	Array struct {
		Pos
		typed
		Elements []Expr
	}

	// RandomAccess reads an element of an array: `a[2]`.
	RandomAccess struct {
		Pos
		typed
		Target Expr
		Index  int
	}

	// StencilAccess reads a stencil at relative indices: `u(i+1, j)`.
	StencilAccess struct {
		Pos
		typed
		Name    string
		Indices []Expr
	}

	// StencilIndex is one of the stencil axis indices i, j, or k.
	StencilIndex struct {
		Pos
		typed
		Axis types.Kind
	}
)

var (
	_ Expr = (*Number)(nil)
	_ Expr = (*String)(nil)
	_ Expr = (*Quantity)(nil)
	_ Expr = (*BinaryOp)(nil)
	_ Expr = (*ComparisonOp)(nil)
	_ Expr = (*UnaryNegation)(nil)
	_ Expr = (*Norm)(nil)
	_ Expr = (*TrinaryIf)(nil)
	_ Expr = (*On)(nil)
	_ Expr = (*VarRef)(nil)
	_ Expr = (*FuncRef)(nil)
	_ Expr = (*FuncCall)(nil)
	_ Expr = (*Array)(nil)
	_ Expr = (*RandomAccess)(nil)
	_ Expr = (*StencilAccess)(nil)
	_ Expr = (*StencilIndex)(nil)

	_ Node = (*Sequence)(nil)
	_ Node = (*VarDecl)(nil)
	_ Node = (*VarAssign)(nil)
	_ Node = (*FuncDecl)(nil)
	_ Node = (*FuncAssign)(nil)
	_ Node = (*FuncCallStatement)(nil)
	_ Node = (*Return)(nil)
	_ Node = (*Loop)(nil)
	_ Node = (*StencilAssign)(nil)
	_ Node = (*FuncArgs)(nil)
	_ Node = (*Unit)(nil)
)
