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

// Package checker type-checks a syntax tree.
//
// The checker walks the tree once, depth-first. It resolves the type and
// the dimension of every expression, populates the symbol table, and
// collects diagnostics. A diagnostic never stops the walk. An internal
// fault, such as an inconsistency between the tree and the symbol table,
// aborts the walk.
package checker

import (
	"github.com/golang/glog"

	"github.com/gx-org/equelle/build/ast"
	"github.com/gx-org/equelle/build/fmterr"
	"github.com/gx-org/equelle/build/symtab"
	"github.com/gx-org/equelle/build/types"
)

// DefaultMaxDepth is the default limit of nested nodes.
const DefaultMaxDepth = 1000

type (
	// Option configures the checker.
	Option func(*checker)

	// function is the function whose body is being checked.
	function struct {
		name string
		fn   *symtab.Function
	}

	checker struct {
		st   *symtab.Table
		errs fmterr.Errors
		app  *fmterr.Appender

		depth    int
		maxDepth int
		// splitPostponed reports a specific diagnostic when a postponed
		// collection is assigned a set which is not a subset of its restricting set.
		splitPostponed bool

		funcs []function
	}
)

var _ ast.Visitor = (*checker)(nil)

// WithMaxDepth sets the maximum number of nested nodes.
// Deeper trees abort the check with an internal error.
func WithMaxDepth(depth int) Option {
	return func(c *checker) {
		c.maxDepth = depth
	}
}

// WithSplitPostponedMismatch selects whether the assignment of a set which
// is not a subset of the restricting set of a postponed collection is
// reported with a specific diagnostic (true) or as a generic type mismatch.
func WithSplitPostponedMismatch(split bool) Option {
	return func(c *checker) {
		c.splitPostponed = split
	}
}

// Check type-checks a tree and populates the symbol table.
// It returns the diagnostics, nil if there are none. The returned error
// is not nil only if an internal fault aborted the check. The fault is
// also included in the diagnostics.
func Check(root ast.Node, st *symtab.Table, opts ...Option) (*fmterr.Errors, error) {
	c := &checker{
		st:             st,
		maxDepth:       DefaultMaxDepth,
		splitPostponed: true,
	}
	c.app = c.errs.NewAppender()
	for _, opt := range opts {
		opt(c)
	}
	if err := ast.Walk(c, root); err != nil {
		internal := fmterr.Internal(err)
		c.app.Append(internal)
		glog.V(1).Infof("check aborted: %v", internal)
		return c.app.Errors(), internal
	}
	return c.app.Errors(), nil
}

// Enter a node before its children.
func (c *checker) Enter(n ast.Node) error {
	c.depth++
	if c.depth > c.maxDepth {
		return fmterr.Internalf(n, "maximum nesting depth of %d exceeded", c.maxDepth)
	}
	glog.V(2).Infof("enter %T (line %d)", n, n.Line())
	if err := c.enter(n); err != nil {
		return fmterr.At(n, err)
	}
	return nil
}

func (c *checker) enter(n ast.Node) error {
	switch n := n.(type) {
	case *ast.VarDecl:
		return c.enterVarDecl(n)
	case *ast.FuncDecl:
		return c.enterFuncDecl(n)
	case *ast.FuncAssign:
		return c.enterFuncAssign(n)
	case *ast.VarRef:
		return c.enterVarRef(n)
	case *ast.FuncRef:
		return c.enterFuncRef(n)
	}
	return nil
}

// Between is called between two children of a node.
func (c *checker) Between(n ast.Node, b ast.Boundary) error {
	loop, ok := n.(*ast.Loop)
	if !ok || b != ast.LoopBody {
		return nil
	}
	if err := c.enterLoopBody(loop); err != nil {
		return fmterr.At(n, err)
	}
	return nil
}

// Exit a node once all its children have been checked.
func (c *checker) Exit(n ast.Node) error {
	c.depth--
	if err := c.exit(n); err != nil {
		return fmterr.At(n, err)
	}
	return nil
}

func (c *checker) exit(n ast.Node) error {
	switch n := n.(type) {
	case *ast.Sequence, *ast.FuncArgs, *ast.Unit, *ast.FuncCallStatement, *ast.VarDecl, *ast.FuncDecl:
		return nil
	case *ast.Number:
		return n.SetType(types.Basic(types.Scalar), types.Dimensionless())
	case *ast.String:
		return n.SetType(types.Basic(types.String), types.Dimensionless())
	case *ast.Quantity:
		return c.exitQuantity(n)
	case *ast.BinaryOp:
		return c.exitBinaryOp(n)
	case *ast.ComparisonOp:
		return c.exitComparisonOp(n)
	case *ast.UnaryNegation:
		return n.SetType(valueOf(n.Operand.Type()), n.Operand.Dimension())
	case *ast.Norm:
		return c.exitNorm(n)
	case *ast.TrinaryIf:
		return c.exitTrinaryIf(n)
	case *ast.On:
		return c.exitOn(n)
	case *ast.VarRef:
		return c.exitVarRef(n)
	case *ast.FuncRef:
		return n.SetType(types.VoidType(), types.Dimensionless())
	case *ast.FuncCall:
		return c.exitFuncCall(n)
	case *ast.Array:
		return c.exitArray(n)
	case *ast.RandomAccess:
		return c.exitRandomAccess(n)
	case *ast.StencilAccess:
		return c.exitStencilAccess(n)
	case *ast.StencilIndex:
		return n.SetType(types.Basic(n.Axis), types.Dimensionless())
	case *ast.VarAssign:
		return c.exitVarAssign(n)
	case *ast.FuncAssign:
		return c.exitFuncAssign(n)
	case *ast.Return:
		return c.exitReturn(n)
	case *ast.Loop:
		return c.st.PopScope()
	case *ast.StencilAssign:
		return c.exitStencilAssign(n)
	default:
		return fmterr.Internalf(n, "no rule to check node of type %T", n)
	}
}

// valueOf returns the type of the value of an expression of type t:
// the value is not mutable and is not a domain.
func valueOf(t types.Type) types.Type {
	t.Mutable = false
	t.Domain = false
	return t
}
