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
	"github.com/gx-org/equelle/build/symtab"
	"github.com/gx-org/equelle/build/types"
)

// resolveSet returns the id of an entity set given the name of
// a variable holding a collection or the name bound to the set.
func (c *checker) resolveSet(src ast.Node, name string) (int, bool) {
	if vr, ok := c.st.Variable(name); ok && vr.Type.HasGridMapping() {
		return vr.Type.GridMapping, true
	}
	if id, ok := c.st.EntitySet(name); ok {
		return id, true
	}
	c.app.Appendf(fmterr.UsageError, src, "unknown entity set %s", name)
	return types.NotApplicable, false
}

// resolveSpec resolves the names of the entity sets in a type written in the source.
func (c *checker) resolveSpec(src ast.Node, spec ast.TypeSpec) (types.Type, bool) {
	typ := spec.Type
	if spec.On != "" {
		id, ok := c.resolveSet(src, spec.On)
		if !ok {
			return types.InvalidType(), false
		}
		typ = typ.On(id)
	}
	if spec.SubsetOf != "" {
		id, ok := c.resolveSet(src, spec.SubsetOf)
		if !ok {
			return types.InvalidType(), false
		}
		typ.Collection = true
		typ.GridMapping = types.Postponed
		typ.SubsetOf = id
	}
	return typ, true
}

func (c *checker) enterVarDecl(n *ast.VarDecl) error {
	typ, ok := c.resolveSpec(n, n.Spec)
	if !ok {
		return nil
	}
	if err := c.st.DeclareVariable(n.Name, typ); err != nil {
		c.app.Append(fmterr.At(n, err))
	}
	return nil
}

func (c *checker) enterFuncDecl(n *ast.FuncDecl) error {
	// Types that cannot be resolved are kept invalid: the function is still
	// declared so that its calls do not abort the check.
	fn := &symtab.Function{Name: n.Name}
	for _, param := range n.Args {
		typ, _ := c.resolveSpec(n, param.Spec)
		fn.Args = append(fn.Args, symtab.Arg{Name: param.Name, Type: typ})
	}
	ret, _ := c.resolveSpec(n, n.Return)
	fn.Return = symtab.Returns(ret)
	if err := c.st.DeclareFunction(fn); err != nil {
		c.app.Append(fmterr.At(n, err))
	}
	return nil
}

func (c *checker) enterFuncAssign(n *ast.FuncAssign) error {
	var fn *symtab.Function
	if c.st.IsFunctionDeclared(n.Name) {
		var err error
		if fn, err = c.st.GetFunction(n.Name); err != nil {
			return err
		}
	} else {
		c.app.Appendf(fmterr.UsageError, n, "cannot define undeclared function %s", n.Name)
	}
	c.st.PushScope(n.Name)
	c.funcs = append(c.funcs, function{name: n.Name, fn: fn})
	if fn == nil {
		return nil
	}
	if len(n.Params) != len(fn.Args) {
		c.app.Appendf(fmterr.ArityError, n, "wrong number of parameters when defining function %s: got %d but want %d", n.Name, len(n.Params), len(fn.Args))
		return nil
	}
	for i, param := range n.Params {
		if err := c.st.DeclareVariable(param, fn.Args[i].Type); err != nil {
			c.app.Append(fmterr.At(n, err))
			continue
		}
		if err := c.st.SetVariableAssigned(param, true); err != nil {
			return err
		}
	}
	return nil
}

func (c *checker) exitFuncAssign(n *ast.FuncAssign) error {
	if len(c.funcs) == 0 {
		return fmterr.Internalf(n, "no function body to close")
	}
	c.funcs = c.funcs[:len(c.funcs)-1]
	return c.st.PopScope()
}

func (c *checker) exitReturn(n *ast.Return) error {
	if len(c.funcs) == 0 {
		c.app.Appendf(fmterr.UsageError, n, "return statement outside of a function")
		return nil
	}
	current := c.funcs[len(c.funcs)-1]
	if current.fn == nil || n.Value == nil {
		return nil
	}
	got := n.Value.Type()
	if !got.Valid() {
		return nil
	}
	formals := make([]types.Type, len(current.fn.Args))
	for i, arg := range current.fn.Args {
		formals[i] = arg.Type
	}
	want := current.fn.ReturnType(formals)
	if want.Basic == types.Invalid {
		return nil
	}
	if !types.CanSubstituteFor(got, want, c.st.IsSubset) {
		c.app.Appendf(fmterr.TypeError, n, "cannot return %s from function %s: expected %s", c.st.TypeString(got), current.name, c.st.TypeString(want))
	}
	return nil
}

func (c *checker) enterLoopBody(n *ast.Loop) error {
	c.st.PushScope("loop " + n.Var)
	rt := n.Range.Type()
	if !rt.Valid() {
		return nil
	}
	if !rt.IsArray() {
		c.app.Appendf(fmterr.TypeError, n, "cannot loop over %s: not an array", c.st.TypeString(rt))
		return nil
	}
	if err := c.st.DeclareVariable(n.Var, valueOf(rt.Element())); err != nil {
		c.app.Append(fmterr.At(n, err))
		return nil
	}
	if err := c.st.SetVariableDimension(n.Var, n.Range.Dimension()); err != nil {
		return err
	}
	return c.st.SetVariableAssigned(n.Var, true)
}

func (c *checker) exitStencilAssign(n *ast.StencilAssign) error {
	tt, vt := n.Target.Type(), n.Value.Type()
	if !tt.Valid() || !vt.Valid() {
		return nil
	}
	if !types.IsNumeric(vt.Basic) || vt.IsArray() {
		c.app.Appendf(fmterr.TypeError, n, "cannot assign %s to stencil %s", c.st.TypeString(vt), n.Target.Name)
	}
	return nil
}

func (c *checker) exitVarAssign(n *ast.VarAssign) error {
	name := n.Name
	rhs, dim := n.Value.Type(), n.Value.Dimension()
	if c.st.IsFunctionDeclared(name) {
		c.app.Appendf(fmterr.DeclarationError, n, "cannot declare variable %s: already declared as function", name)
		return nil
	}
	if !c.st.IsVariableDeclared(name) {
		return c.declareFromAssign(n, rhs, dim)
	}
	if c.st.IsVariableAssigned(name) {
		c.app.Appendf(fmterr.DeclarationError, n, "variable already assigned, cannot re-assign %s", name)
		return nil
	}
	if !rhs.Valid() {
		return nil
	}
	lhs, err := c.st.VariableType(name)
	if err != nil {
		return err
	}
	if !lhs.SameValue(rhs) {
		resolved, err := c.resolvePostponed(n, lhs, rhs)
		if err != nil || !resolved {
			return err
		}
	} else if err := c.st.SetVariableDimension(name, dim); err != nil {
		return err
	}
	return c.st.SetVariableAssigned(name, true)
}

// declareFromAssign declares a variable from the value first assigned to it.
func (c *checker) declareFromAssign(n *ast.VarAssign, rhs types.Type, dim types.Dimension) error {
	if !rhs.Valid() {
		// Declare the variable to avoid reporting its uses as undeclared.
		rhs = types.InvalidType()
	}
	if rhs.HasGridMapping() && c.st.IsAnonymousEntitySet(rhs.GridMapping) {
		if _, err := c.st.SetEntitySetName(rhs.GridMapping, n.Name); err != nil {
			return err
		}
	}
	rhs.Mutable = false
	if err := c.st.DeclareVariable(n.Name, rhs); err != nil {
		return err
	}
	if err := c.st.SetVariableDimension(n.Name, dim); err != nil {
		return err
	}
	return c.st.SetVariableAssigned(n.Name, true)
}

// resolvePostponed assigns a set to a variable declared as a subset of another set.
// It returns false if a diagnostic has been reported.
func (c *checker) resolvePostponed(n *ast.VarAssign, lhs, rhs types.Type) (bool, error) {
	matches := lhs.IsPostponed() &&
		lhs.Basic == rhs.Basic &&
		lhs.IsCollection() && rhs.IsCollection() &&
		lhs.IsStencil() == rhs.IsStencil() &&
		rhs.IsDomain()
	if matches && rhs.HasGridMapping() && c.st.IsSubset(rhs.GridMapping, lhs.SubsetOf) {
		resolved := rhs
		resolved.Mutable = lhs.Mutable
		if err := c.st.SetVariableType(n.Name, resolved); err != nil {
			return false, err
		}
		if err := c.st.SetVariableDimension(n.Name, n.Value.Dimension()); err != nil {
			return false, err
		}
		if _, err := c.st.SetEntitySetName(rhs.GridMapping, n.Name); err != nil {
			return false, err
		}
		glog.V(2).Infof("variable %s resolved to %s", n.Name, c.st.TypeString(resolved))
		return true, nil
	}
	if matches && c.splitPostponed {
		c.app.Appendf(fmterr.TypeError, n, "cannot assign %s to %s: %s is not a subset of %s",
			c.st.TypeString(rhs), n.Name, c.setName(rhs.GridMapping), c.setName(lhs.SubsetOf))
		return false, nil
	}
	c.app.Appendf(fmterr.TypeError, n, "mismatch between type in assignment and declaration for %s: declared %s but got %s",
		n.Name, c.st.TypeString(lhs), c.st.TypeString(rhs))
	return false, nil
}

func (c *checker) setName(id int) string {
	name, err := c.st.EntitySetName(id)
	if err != nil {
		return "<unknown entity set>"
	}
	return name
}
