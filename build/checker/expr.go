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

package checker

import (
	"github.com/golang/glog"

	"github.com/gx-org/equelle/build/ast"
	"github.com/gx-org/equelle/build/fmterr"
	"github.com/gx-org/equelle/build/types"
)

func invalid(e ast.Expr) error {
	return e.SetType(types.InvalidType(), types.Dimensionless())
}

func (c *checker) exitQuantity(n *ast.Quantity) error {
	dim := n.Operand.Dimension()
	if n.Unit != nil {
		dim = dim.Add(n.Unit.Unit.Dim)
	}
	return n.SetType(valueOf(n.Operand.Type()), dim)
}

func isStencilLike(t types.Type) bool {
	return types.IsStencilIndex(t.Basic) || t.IsStencil()
}

// checkBinaryOp returns false after reporting the first error found in the operands.
func (c *checker) checkBinaryOp(n *ast.BinaryOp, lt, rt types.Type) bool {
	pos := c.app.Pos(n)
	if !types.IsNumeric(lt.Basic) || !types.IsNumeric(rt.Basic) {
		return pos.Appendf(fmterr.TypeError, "arithmetic binary operators only apply to numeric types")
	}
	if lt.IsArray() || rt.IsArray() {
		return pos.Appendf(fmterr.TypeError, "arithmetic binary operators cannot be applied to Array types")
	}
	if lt.IsCollection() && rt.IsCollection() && lt.GridMapping != rt.GridMapping {
		return pos.Appendf(fmterr.TypeError, "arithmetic binary operators on Collections only acceptable if both sides are On the same set, got %s and %s", c.st.TypeString(lt), c.st.TypeString(rt))
	}
	switch n.Op {
	case ast.Add, ast.Subtract:
		mixed := (isStencilLike(lt) && rt.Basic == types.Scalar) || (lt.Basic == types.Scalar && isStencilLike(rt))
		if !lt.SameValue(rt) && !mixed {
			return pos.Appendf(fmterr.TypeError, "addition and subtraction only allowed between identical types, got %s and %s", c.st.TypeString(lt), c.st.TypeString(rt))
		}
		if ld, rd := n.Left.Dimension(), n.Right.Dimension(); !ld.Equal(rd) {
			return pos.Appendf(fmterr.TypeError, "addition and subtraction only allowed when both sides have same dimension, got %s and %s", ld, rd)
		}
	case ast.Multiply:
		if lt.Basic == types.Vector && rt.Basic == types.Vector {
			return pos.Appendf(fmterr.TypeError, "cannot multiply two 'Vector' types")
		}
	case ast.Divide:
		if rt.Basic != types.Scalar || rt.IsCollection() {
			return pos.Appendf(fmterr.TypeError, "can only divide by 'Scalar' types, got %s", c.st.TypeString(rt))
		}
	}
	return true
}

// binaryResult computes the type of an arithmetic operation on valid operands.
func binaryResult(op ast.Operator, lt, rt types.Type) types.Type {
	lt, rt = valueOf(lt), valueOf(rt)
	switch op {
	case ast.Add, ast.Subtract:
		if isStencilLike(rt) && !isStencilLike(lt) {
			return rt
		}
		return lt
	case ast.Multiply:
		res := lt
		if rt.IsCollection() && !lt.IsCollection() {
			res = rt
		}
		res.Basic = types.Scalar
		if lt.Basic == types.Vector || rt.Basic == types.Vector {
			res.Basic = types.Vector
		}
		res.Stencil = lt.IsStencil() || rt.IsStencil()
		return res
	default:
		return lt
	}
}

func binaryDimension(op ast.Operator, ld, rd types.Dimension) types.Dimension {
	switch op {
	case ast.Multiply:
		return ld.Add(rd)
	case ast.Divide:
		return ld.Sub(rd)
	default:
		return ld
	}
}

func (c *checker) exitBinaryOp(n *ast.BinaryOp) error {
	switch n.Op {
	case ast.Add, ast.Subtract, ast.Multiply, ast.Divide:
	default:
		return fmterr.Internalf(n, "unknown binary operator %s", n.Op)
	}
	lt, rt := n.Left.Type(), n.Right.Type()
	if !lt.Valid() || !rt.Valid() {
		// An error has already been reported for the operands.
		return invalid(n)
	}
	if !c.checkBinaryOp(n, lt, rt) {
		return invalid(n)
	}
	return n.SetType(binaryResult(n.Op, lt, rt), binaryDimension(n.Op, n.Left.Dimension(), n.Right.Dimension()))
}

// collectionLike returns t as a collection on the grid mapping of
// the first collection in ops, if any.
func collectionLike(t types.Type, ops ...types.Type) types.Type {
	for _, op := range ops {
		if op.IsCollection() {
			t.Collection = true
			t.GridMapping = op.GridMapping
			return t
		}
	}
	return t
}

func (c *checker) exitComparisonOp(n *ast.ComparisonOp) error {
	lt, rt := n.Left.Type(), n.Right.Type()
	if !lt.Valid() || !rt.Valid() {
		return invalid(n)
	}
	return n.SetType(collectionLike(types.Basic(types.Bool), lt, rt), types.Dimensionless())
}

func (c *checker) exitNorm(n *ast.Norm) error {
	t := n.Operand.Type()
	if !t.Valid() {
		return invalid(n)
	}
	return n.SetType(collectionLike(types.Basic(types.Scalar), t), n.Operand.Dimension())
}

func (c *checker) exitTrinaryIf(n *ast.TrinaryIf) error {
	return n.SetType(valueOf(n.IfTrue.Type()), n.IfTrue.Dimension())
}

func (c *checker) exitOn(n *ast.On) error {
	st, dt := n.Subject.Type(), n.Domain.Type()
	if !st.Valid() || !dt.Valid() {
		return invalid(n)
	}
	if !dt.IsCollection() || !types.IsEntity(dt.Basic) || !dt.HasGridMapping() {
		c.app.Appendf(fmterr.TypeError, n, "cannot restrict to %s: not a set of grid entities", c.st.TypeString(dt))
		return invalid(n)
	}
	return n.SetType(valueOf(st).On(dt.GridMapping), n.Subject.Dimension())
}

func (c *checker) enterVarRef(n *ast.VarRef) error {
	switch {
	case !c.st.IsVariableDeclared(n.Name):
		c.app.Appendf(fmterr.UsageError, n, "using undeclared variable %s", n.Name)
	case c.isUnassigned(n.Name):
		c.app.Appendf(fmterr.UsageError, n, "using unassigned variable %s", n.Name)
	}
	return nil
}

// isUnassigned returns true if a variable is immutable and has not been assigned.
func (c *checker) isUnassigned(name string) bool {
	if c.st.IsVariableAssigned(name) {
		return false
	}
	typ, err := c.st.VariableType(name)
	return err == nil && !typ.IsMutable()
}

func (c *checker) exitVarRef(n *ast.VarRef) error {
	vr, ok := c.st.Variable(n.Name)
	if !ok {
		return invalid(n)
	}
	return n.SetType(vr.Type, vr.Dim)
}

func (c *checker) enterFuncRef(n *ast.FuncRef) error {
	if !c.st.IsFunctionDeclared(n.Name) {
		c.app.Appendf(fmterr.UsageError, n, "using undeclared function %s", n.Name)
	}
	return nil
}

func (c *checker) exitFuncCall(n *ast.FuncCall) error {
	fn, err := c.st.GetFunction(n.Name)
	if err != nil {
		return err
	}
	var args []ast.Expr
	if n.Args != nil {
		args = n.Args.Args
	}
	if len(args) != len(fn.Args) {
		c.app.Appendf(fmterr.ArityError, n, "wrong number of arguments when calling function %s: got %d but want %d", n.Name, len(args), len(fn.Args))
		return invalid(n)
	}
	argTypes := make([]types.Type, len(args))
	argDims := make([]types.Dimension, len(args))
	for i, arg := range args {
		argTypes[i], argDims[i] = arg.Type(), arg.Dimension()
		formal := fn.Args[i]
		if !argTypes[i].Valid() || !formal.Type.Valid() {
			continue
		}
		if !types.CanSubstituteFor(argTypes[i], formal.Type, c.st.IsSubset) {
			c.app.Appendf(fmterr.ArgumentTypeError, n, "wrong argument type for argument %d named '%s' when calling function %s, expected %s but got %s",
				i, formal.Name, n.Name, c.st.TypeString(formal.Type), c.st.TypeString(argTypes[i]))
		}
	}
	ret := fn.ReturnType(argTypes)
	if ret.IsDomain() {
		if parent := fn.DynamicSubsetReturn(argTypes); parent != types.NotApplicable {
			id, err := c.st.DeclareNewEntitySet("", parent)
			if err != nil {
				return err
			}
			glog.V(2).Infof("call to %s creates entity set %d, subset of %d", n.Name, id, parent)
			ret.GridMapping = id
		}
	}
	return n.SetType(ret, fn.ReturnDimension(argDims))
}

func (c *checker) exitArray(n *ast.Array) error {
	if len(n.Elements) == 0 {
		return invalid(n)
	}
	first := n.Elements[0]
	elt := valueOf(first.Type())
	for _, e := range n.Elements[1:] {
		if !e.Type().Valid() || !elt.Valid() {
			return invalid(n)
		}
		if !valueOf(e.Type()).SameValue(elt) {
			c.app.Appendf(fmterr.TypeError, e, "array elements must have the same type: got %s and %s", c.st.TypeString(elt), c.st.TypeString(e.Type()))
			return invalid(n)
		}
	}
	return n.SetType(elt.AsArray(len(n.Elements)), first.Dimension())
}

func (c *checker) exitRandomAccess(n *ast.RandomAccess) error {
	t := n.Target.Type()
	switch {
	case !t.Valid():
		return invalid(n)
	case t.IsArray():
		if n.Index < 0 || n.Index >= t.ArraySize {
			c.app.Appendf(fmterr.TypeError, n, "index %d out of bounds for %s", n.Index, c.st.TypeString(t))
			return invalid(n)
		}
		return n.SetType(valueOf(t.Element()), n.Target.Dimension())
	case t.Basic == types.Vector:
		t = valueOf(t)
		t.Basic = types.Scalar
		return n.SetType(t, n.Target.Dimension())
	}
	c.app.Appendf(fmterr.TypeError, n, "cannot access elements of %s", c.st.TypeString(t))
	return invalid(n)
}

func (c *checker) exitStencilAccess(n *ast.StencilAccess) error {
	for _, index := range n.Indices {
		it := index.Type()
		if it.Valid() && !types.IsStencilIndex(it.Basic) {
			c.app.Appendf(fmterr.TypeError, index, "stencil indices must be i, j, or k offsets, got %s", c.st.TypeString(it))
		}
	}
	vr, ok := c.st.Variable(n.Name)
	if !ok {
		c.app.Appendf(fmterr.UsageError, n, "using undeclared variable %s", n.Name)
		return invalid(n)
	}
	return n.SetType(vr.Type.AsStencil(), vr.Dim)
}
