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

package checker_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/gx-org/equelle/build/ast"
	"github.com/gx-org/equelle/build/builtins"
	"github.com/gx-org/equelle/build/checker"
	"github.com/gx-org/equelle/build/fmterr"
	"github.com/gx-org/equelle/build/symtab"
	"github.com/gx-org/equelle/build/types"
)

func newTable(t *testing.T) *symtab.Table {
	t.Helper()
	st, err := symtab.New()
	if err != nil {
		t.Fatal(err)
	}
	if err := builtins.Declare(st); err != nil {
		t.Fatal(err)
	}
	return st
}

func setID(t *testing.T, st *symtab.Table, name string) int {
	t.Helper()
	id, ok := st.EntitySet(name)
	if !ok {
		t.Fatalf("entity set %s not found", name)
	}
	return id
}

func ref(name string) *ast.VarRef { return &ast.VarRef{Name: name} }

func num(v float64) *ast.Number { return &ast.Number{Value: v} }

func str(s string) *ast.String { return &ast.String{Value: s} }

func call(name string, args ...ast.Expr) *ast.FuncCall {
	return &ast.FuncCall{Name: name, Args: &ast.FuncArgs{Args: args}}
}

func assign(name string, value ast.Expr) *ast.VarAssign {
	return &ast.VarAssign{Name: name, Value: value}
}

func decl(name string, spec ast.TypeSpec) *ast.VarDecl {
	return &ast.VarDecl{Name: name, Spec: spec}
}

func scalar() ast.TypeSpec { return ast.TypeSpec{Type: types.Basic(types.Scalar)} }

func collectionOn(kind types.Kind, set string) ast.TypeSpec {
	return ast.TypeSpec{Type: types.CollectionOf(kind, types.NotApplicable), On: set}
}

func subsetOf(kind types.Kind, set string) ast.TypeSpec {
	return ast.TypeSpec{Type: types.CollectionOf(kind, types.NotApplicable), SubsetOf: set}
}

// check checks a program and fails the test on internal errors.
func check(t *testing.T, st *symtab.Table, stmts []ast.Node, opts ...checker.Option) []fmterr.Diagnostic {
	t.Helper()
	errs, err := checker.Check(&ast.Sequence{Children: stmts}, st, opts...)
	if err != nil {
		t.Fatalf("internal error: %+v", err)
	}
	return diagnostics(t, errs)
}

func diagnostics(t *testing.T, errs *fmterr.Errors) []fmterr.Diagnostic {
	t.Helper()
	var diags []fmterr.Diagnostic
	for _, err := range errs.Errors() {
		var diag fmterr.Diagnostic
		if !errors.As(err, &diag) {
			t.Fatalf("error %v is not a diagnostic", err)
		}
		diags = append(diags, diag)
	}
	return diags
}

func kinds(diags []fmterr.Diagnostic) []fmterr.Kind {
	var ks []fmterr.Kind
	for _, diag := range diags {
		ks = append(ks, diag.Kind())
	}
	return ks
}

func checkKinds(t *testing.T, diags []fmterr.Diagnostic, want ...fmterr.Kind) {
	t.Helper()
	if diff := cmp.Diff(want, kinds(diags)); diff != "" {
		t.Errorf("unexpected diagnostics (-want +got):\n%s\ndiagnostics: %v", diff, diags)
	}
}

func TestNoOpNodes(t *testing.T) {
	st := newTable(t)
	var before strings.Builder
	if err := st.Dump(&before); err != nil {
		t.Fatal(err)
	}
	diags := check(t, st, []ast.Node{
		num(1),
		str("hello"),
		&ast.Quantity{Operand: num(2), Unit: &ast.Unit{Text: "Meter", Unit: types.Unit{Dim: types.DimensionOf(types.Length, 1), Factor: 1}}},
		&ast.Norm{Operand: &ast.UnaryNegation{Operand: num(3)}},
		&ast.Array{Elements: []ast.Expr{num(1), num(2)}},
		&ast.Sequence{},
	})
	checkKinds(t, diags)
	var after strings.Builder
	if err := st.Dump(&after); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(before.String(), after.String()); diff != "" {
		t.Errorf("symbol table modified (-before +after):\n%s", diff)
	}
}

func TestRedeclaration(t *testing.T) {
	st := newTable(t)
	diags := check(t, st, []ast.Node{
		decl("x", scalar()),
		&ast.VarDecl{Pos: 2, Name: "x", Spec: ast.TypeSpec{Type: types.Basic(types.Vector)}},
	})
	checkKinds(t, diags, fmterr.DeclarationError)
	if len(diags) == 1 && diags[0].Line() != 2 {
		t.Errorf("diagnostic at line %d, want 2", diags[0].Line())
	}
	got, err := st.VariableType("x")
	if err != nil {
		t.Fatal(err)
	}
	if got != types.Basic(types.Scalar) {
		t.Errorf("type of x = %s, want Scalar", got)
	}
}

func TestDeclareFunctionName(t *testing.T) {
	st := newTable(t)
	diags := check(t, st, []ast.Node{
		decl("Gradient", scalar()),
		assign("Centroid", num(1)),
	})
	checkKinds(t, diags, fmterr.DeclarationError, fmterr.DeclarationError)
}

func TestReassignment(t *testing.T) {
	st := newTable(t)
	meter := &ast.Unit{Text: "Meter", Unit: types.Unit{Dim: types.DimensionOf(types.Length, 1), Factor: 1}}
	diags := check(t, st, []ast.Node{
		decl("x", scalar()),
		assign("x", num(1)),
		assign("x", &ast.Quantity{Operand: num(2), Unit: meter}),
	})
	checkKinds(t, diags, fmterr.DeclarationError)
	if len(diags) == 1 && !strings.Contains(diags[0].Error(), "cannot re-assign x") {
		t.Errorf("unexpected message: %v", diags[0])
	}
	vr, ok := st.Variable("x")
	if !ok {
		t.Fatal("x not declared")
	}
	if vr.Type != types.Basic(types.Scalar) || !vr.Dim.IsDimensionless() {
		t.Errorf("x changed to %s %s", vr.Type, vr.Dim)
	}
}

func TestMutableReassignment(t *testing.T) {
	st := newTable(t)
	diags := check(t, st, []ast.Node{
		decl("m", ast.TypeSpec{Type: types.Basic(types.Scalar).AsMutable()}),
		&ast.BinaryOp{Op: ast.Add, Left: ref("m"), Right: num(1)},
		assign("m", num(1)),
		assign("m", num(2)),
		// A variable declared from a mutable value is not mutable.
		assign("c", ref("m")),
		assign("c", num(3)),
	})
	checkKinds(t, diags, fmterr.DeclarationError)
}

func TestVariableReferences(t *testing.T) {
	st := newTable(t)
	diags := check(t, st, []ast.Node{
		&ast.VarRef{Pos: 1, Name: "u"},
		decl("v", scalar()),
		&ast.VarRef{Pos: 3, Name: "v"},
	})
	checkKinds(t, diags, fmterr.UsageError, fmterr.UsageError)
	if len(diags) != 2 {
		return
	}
	want := []string{
		"line 1: using undeclared variable u",
		"line 3: using unassigned variable v",
	}
	got := []string{diags[0].Error(), diags[1].Error()}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("unexpected messages (-want +got):\n%s", diff)
	}
}

// binaryEnv declares variables used by binary operation tests.
func binaryEnv(t *testing.T) *symtab.Table {
	st := newTable(t)
	allCells := setID(t, st, "AllCells")
	allFaces := setID(t, st, "AllFaces")
	length := types.DimensionOf(types.Length, 1)
	vars := []struct {
		name string
		typ  types.Type
		dim  types.Dimension
	}{
		{"s", types.Basic(types.Scalar), types.Dimensionless()},
		{"t", types.Basic(types.Scalar), types.Dimensionless()},
		{"len", types.Basic(types.Scalar), length},
		{"len2", types.Basic(types.Scalar), length},
		{"v", types.Basic(types.Vector), types.Dimensionless()},
		{"w", types.Basic(types.Vector), types.Dimensionless()},
		{"b", types.Basic(types.Bool), types.Dimensionless()},
		{"arr", types.Basic(types.Scalar).AsArray(3), types.Dimensionless()},
		{"cells", types.CollectionOf(types.Scalar, allCells), types.Dimensionless()},
		{"cells2", types.CollectionOf(types.Scalar, allCells), types.Dimensionless()},
		{"faces", types.CollectionOf(types.Scalar, allFaces), types.Dimensionless()},
		{"u", types.CollectionOf(types.Scalar, allCells).AsStencil(), types.Dimensionless()},
	}
	for _, vr := range vars {
		if err := st.DeclareVariable(vr.name, vr.typ); err != nil {
			t.Fatal(err)
		}
		if err := st.SetVariableDimension(vr.name, vr.dim); err != nil {
			t.Fatal(err)
		}
		if err := st.SetVariableAssigned(vr.name, true); err != nil {
			t.Fatal(err)
		}
	}
	return st
}

func TestBinaryOperators(t *testing.T) {
	stencilI := &ast.StencilIndex{Axis: types.StencilI}
	tests := []struct {
		desc        string
		op          ast.Operator
		left, right ast.Expr
		want        []fmterr.Kind
	}{
		{desc: "different dimensions", op: ast.Add, left: ref("len"), right: ref("s"), want: []fmterr.Kind{fmterr.TypeError}},
		{desc: "same dimensions", op: ast.Subtract, left: ref("len"), right: ref("len2")},
		{desc: "collections on different sets", op: ast.Add, left: ref("cells"), right: ref("faces"), want: []fmterr.Kind{fmterr.TypeError}},
		{desc: "collections on the same set", op: ast.Add, left: ref("cells"), right: ref("cells2")},
		{desc: "divide by a collection", op: ast.Divide, left: ref("s"), right: ref("cells"), want: []fmterr.Kind{fmterr.TypeError}},
		{desc: "divide a collection", op: ast.Divide, left: ref("cells"), right: ref("s")},
		{desc: "divide by a vector", op: ast.Divide, left: ref("v"), right: ref("w"), want: []fmterr.Kind{fmterr.TypeError}},
		{desc: "vector times vector", op: ast.Multiply, left: ref("v"), right: ref("w"), want: []fmterr.Kind{fmterr.TypeError}},
		{desc: "scalar times vector", op: ast.Multiply, left: ref("s"), right: ref("v")},
		{desc: "array operand", op: ast.Add, left: ref("arr"), right: ref("s"), want: []fmterr.Kind{fmterr.TypeError}},
		{desc: "boolean operand", op: ast.Multiply, left: ref("b"), right: ref("s"), want: []fmterr.Kind{fmterr.TypeError}},
		{desc: "scalar plus vector", op: ast.Add, left: ref("s"), right: ref("v"), want: []fmterr.Kind{fmterr.TypeError}},
		{desc: "stencil index plus scalar", op: ast.Add, left: stencilI, right: num(1)},
		{desc: "scalar minus stencil", op: ast.Subtract, left: ref("t"), right: ref("u")},
		{desc: "undeclared operand", op: ast.Add, left: ref("nope"), right: ref("s"), want: []fmterr.Kind{fmterr.UsageError}},
	}
	for _, test := range tests {
		t.Run(test.desc, func(t *testing.T) {
			st := binaryEnv(t)
			diags := check(t, st, []ast.Node{
				&ast.BinaryOp{Op: test.op, Left: test.left, Right: test.right},
			})
			checkKinds(t, diags, test.want...)
		})
	}
}

func TestBinaryResult(t *testing.T) {
	st := binaryEnv(t)
	allCells := setID(t, st, "AllCells")
	mul := &ast.BinaryOp{Op: ast.Multiply, Left: ref("len"), Right: ref("cells")}
	div := &ast.BinaryOp{Op: ast.Divide, Left: ref("v"), Right: ref("len")}
	checkKinds(t, check(t, st, []ast.Node{mul, div}))
	if got, want := mul.Type(), types.CollectionOf(types.Scalar, allCells); got != want {
		t.Errorf("len * cells has type %s, want %s", got, want)
	}
	if got, want := mul.Dimension(), types.DimensionOf(types.Length, 1); !got.Equal(want) {
		t.Errorf("len * cells has dimension %s, want %s", got, want)
	}
	if got, want := div.Type(), types.Basic(types.Vector); got != want {
		t.Errorf("v / len has type %s, want %s", got, want)
	}
	if got, want := div.Dimension(), types.DimensionOf(types.Length, -1); !got.Equal(want) {
		t.Errorf("v / len has dimension %s, want %s", got, want)
	}
}

func TestFunctionCallArguments(t *testing.T) {
	f := &ast.FuncDecl{
		Name: "f",
		Args: []ast.FuncParam{
			{Name: "a", Spec: scalar()},
			{Name: "b", Spec: scalar()},
		},
		Return: scalar(),
	}
	t.Run("arity", func(t *testing.T) {
		st := newTable(t)
		diags := check(t, st, []ast.Node{f, call("f", num(1), num(2), num(3))})
		checkKinds(t, diags, fmterr.ArityError)
	})
	t.Run("argument type", func(t *testing.T) {
		st := newTable(t)
		diags := check(t, st, []ast.Node{
			&ast.FuncDecl{Name: f.Name, Args: f.Args, Return: f.Return},
			call("f", num(1), call("Centroid", call("AllCells"))),
		})
		checkKinds(t, diags, fmterr.ArgumentTypeError)
		if len(diags) == 1 && !strings.Contains(diags[0].Error(), "argument 1 named 'b'") {
			t.Errorf("diagnostic %q does not name the formal b", diags[0].Error())
		}
	})
	t.Run("subset argument", func(t *testing.T) {
		st := newTable(t)
		diags := check(t, st, []ast.Node{
			call("FirstCell", call("InteriorFaces")),
			call("FirstCell", call("AllCells")),
		})
		checkKinds(t, diags, fmterr.ArgumentTypeError)
	})
}

func TestPostponedGridMapping(t *testing.T) {
	st := newTable(t)
	subset := call("InputDomainSubsetOf", str("x"), call("BoundaryFaces"))
	diags := check(t, st, []ast.Node{
		decl("x", subsetOf(types.Face, "BoundaryFaces")),
		assign("x", subset),
		assign("y", &ast.On{Subject: call("Area", call("AllFaces")), Domain: ref("x")}),
	})
	checkKinds(t, diags)
	id := subset.Type().GridMapping
	if !subset.Type().IsDomain() || id < 0 {
		t.Fatalf("call returns %s, want a domain on a new entity set", subset.Type())
	}
	typ, err := st.VariableType("x")
	if err != nil {
		t.Fatal(err)
	}
	if typ.GridMapping != id {
		t.Errorf("x is on entity set %d, want %d", typ.GridMapping, id)
	}
	if name, _ := st.EntitySetName(id); name != "x" {
		t.Errorf("entity set %d is named %q, want %q", id, name, "x")
	}
	if !st.IsSubset(id, setID(t, st, "BoundaryFaces")) {
		t.Errorf("entity set %d is not a subset of BoundaryFaces", id)
	}
	yType, err := st.VariableType("y")
	if err != nil {
		t.Fatal(err)
	}
	if got, want := st.TypeString(yType), "Collection Of Scalar On x"; got != want {
		t.Errorf("y has type %q, want %q", got, want)
	}
}

func TestPostponedNotASubset(t *testing.T) {
	program := func() []ast.Node {
		return []ast.Node{
			decl("x", subsetOf(types.Face, "InteriorFaces")),
			assign("x", call("InputDomainSubsetOf", str("x"), call("BoundaryFaces"))),
		}
	}
	tests := []struct {
		split bool
		want  string
	}{
		{split: true, want: "is not a subset of InteriorFaces"},
		{split: false, want: "mismatch between type in assignment and declaration for x"},
	}
	for _, test := range tests {
		st := newTable(t)
		diags := check(t, st, program(), checker.WithSplitPostponedMismatch(test.split))
		checkKinds(t, diags, fmterr.TypeError)
		if len(diags) == 1 && !strings.Contains(diags[0].Error(), test.want) {
			t.Errorf("split=%t: diagnostic %q does not contain %q", test.split, diags[0].Error(), test.want)
		}
	}
}

func TestAutoDeclarationNamesEntitySet(t *testing.T) {
	st := newTable(t)
	subset := call("InputDomainSubsetOf", str("dirichlet"), call("BoundaryFaces"))
	checkKinds(t, check(t, st, []ast.Node{assign("dirichlet", subset)}))
	if name, _ := st.EntitySetName(subset.Type().GridMapping); name != "dirichlet" {
		t.Errorf("entity set named %q, want dirichlet", name)
	}
	if !st.IsVariableAssigned("dirichlet") {
		t.Error("dirichlet is not assigned")
	}
}

func TestEndToEnd(t *testing.T) {
	program := func(other string) []ast.Node {
		return []ast.Node{
			decl("a", collectionOn(types.Scalar, "AllCells")),
			assign("a", call("InputCollectionOfScalar", str("a"), call("AllCells"))),
			assign("c", call("InputCollectionOfScalar", str("c"), call("InteriorCells"))),
			assign("b", &ast.BinaryOp{Op: ast.Add, Left: ref("a"), Right: ref(other)}),
		}
	}
	checkKinds(t, check(t, newTable(t), program("a")))
	checkKinds(t, check(t, newTable(t), program("c")), fmterr.TypeError)
}

func TestFunctionBody(t *testing.T) {
	st := newTable(t)
	diags := check(t, st, []ast.Node{
		&ast.FuncDecl{
			Name:   "twice",
			Args:   []ast.FuncParam{{Name: "x", Spec: scalar()}},
			Return: scalar(),
		},
		&ast.FuncAssign{Name: "twice", Params: []string{"x"}, Body: &ast.Sequence{Children: []ast.Node{
			assign("y", &ast.BinaryOp{Op: ast.Multiply, Left: ref("x"), Right: num(2)}),
			&ast.Return{Value: ref("y")},
		}}},
		assign("z", call("twice", num(3))),
		&ast.VarRef{Pos: 9, Name: "y"},
		&ast.Return{Pos: 10, Value: num(1)},
	})
	checkKinds(t, diags, fmterr.UsageError, fmterr.UsageError)
	if st.IsVariableDeclared("x") {
		t.Error("function parameter visible in the global scope")
	}
	if !st.IsVariableAssigned("z") {
		t.Error("z is not assigned")
	}
}

func TestReturnType(t *testing.T) {
	st := newTable(t)
	diags := check(t, st, []ast.Node{
		&ast.FuncDecl{Name: "f", Return: scalar()},
		&ast.FuncAssign{Name: "f", Body: &ast.Sequence{Children: []ast.Node{
			&ast.Return{Value: call("Centroid", call("AllCells"))},
		}}},
		&ast.FuncAssign{Name: "g"},
	})
	checkKinds(t, diags, fmterr.TypeError, fmterr.UsageError)
}

func TestFunctionOnUnknownSet(t *testing.T) {
	st := newTable(t)
	diags := check(t, st, []ast.Node{
		&ast.FuncDecl{
			Pos:    1,
			Name:   "f",
			Args:   []ast.FuncParam{{Name: "a", Spec: collectionOn(types.Scalar, "Typo")}},
			Return: scalar(),
		},
		assign("y", call("f", num(1))),
		&ast.VarRef{Pos: 3, Name: "undeclared_later"},
	})
	checkKinds(t, diags, fmterr.UsageError, fmterr.UsageError)
	if len(diags) == 2 && !strings.Contains(diags[0].Error(), "unknown entity set Typo") {
		t.Errorf("first diagnostic %q does not report the unknown set", diags[0])
	}
	if !st.IsFunctionDeclared("f") {
		t.Error("f is not declared")
	}

	st = newTable(t)
	diags = check(t, st, []ast.Node{
		&ast.FuncDecl{Name: "g", Return: collectionOn(types.Scalar, "Typo")},
		&ast.FuncAssign{Name: "g", Body: &ast.Sequence{Children: []ast.Node{
			&ast.Return{Value: num(1)},
		}}},
		assign("z", &ast.BinaryOp{Op: ast.Add, Left: call("g"), Right: num(1)}),
	})
	checkKinds(t, diags, fmterr.UsageError)
}

func TestLoop(t *testing.T) {
	st := newTable(t)
	diags := check(t, st, []ast.Node{
		assign("xs", &ast.Array{Elements: []ast.Expr{num(1), num(2), num(3)}}),
		&ast.Loop{Var: "x", Range: ref("xs"), Body: &ast.Sequence{Children: []ast.Node{
			assign("y", &ast.BinaryOp{Op: ast.Add, Left: ref("x"), Right: &ast.RandomAccess{Target: ref("xs"), Index: 2}}),
		}}},
		&ast.Loop{Var: "s", Range: num(1), Body: &ast.Sequence{}},
		&ast.RandomAccess{Target: ref("xs"), Index: 3},
	})
	checkKinds(t, diags, fmterr.TypeError, fmterr.TypeError)
	if st.IsVariableDeclared("x") || st.IsVariableDeclared("y") {
		t.Error("loop variables visible after the loop")
	}
}

func TestStencils(t *testing.T) {
	st := newTable(t)
	allCells := setID(t, st, "AllCells")
	if err := st.DeclareVariable("u", types.CollectionOf(types.Scalar, allCells).AsMutable()); err != nil {
		t.Fatal(err)
	}
	i := func() ast.Expr { return &ast.StencilIndex{Axis: types.StencilI} }
	j := func() ast.Expr { return &ast.StencilIndex{Axis: types.StencilJ} }
	diags := check(t, st, []ast.Node{
		&ast.StencilAssign{
			Target: &ast.StencilAccess{Name: "u", Indices: []ast.Expr{i(), j()}},
			Value: &ast.BinaryOp{
				Op:    ast.Add,
				Left:  &ast.StencilAccess{Name: "u", Indices: []ast.Expr{&ast.BinaryOp{Op: ast.Add, Left: i(), Right: num(1)}, j()}},
				Right: num(1),
			},
		},
		&ast.StencilAccess{Name: "u", Indices: []ast.Expr{num(1)}},
		&ast.StencilAccess{Name: "w", Indices: []ast.Expr{i()}},
	})
	checkKinds(t, diags, fmterr.TypeError, fmterr.UsageError)
}

func TestConsistencyFault(t *testing.T) {
	st := newTable(t)
	errs, err := checker.Check(&ast.Sequence{Children: []ast.Node{
		&ast.VarRef{Name: "u"},
		&ast.FuncCall{Pos: 2, Name: "unregistered", Args: &ast.FuncArgs{}},
		&ast.VarRef{Name: "v"},
	}}, st)
	if !fmterr.IsInternal(err) {
		t.Fatalf("Check() returned %v, want an internal error", err)
	}
	diags := diagnostics(t, errs)
	// The walk stops at the call: v is never checked.
	checkKinds(t, diags, fmterr.UsageError, fmterr.InternalError)
	if len(diags) == 2 && diags[1].Line() != 2 {
		t.Errorf("internal error at line %d, want 2", diags[1].Line())
	}
}

func TestMaxDepth(t *testing.T) {
	var root ast.Expr = num(1)
	for range 10 {
		root = &ast.UnaryNegation{Operand: root}
	}
	if _, err := checker.Check(root, newTable(t), checker.WithMaxDepth(5)); !fmterr.IsInternal(err) {
		t.Errorf("Check() returned %v, want an internal error", err)
	}
	if _, err := checker.Check(&ast.Norm{Operand: num(1)}, newTable(t), checker.WithMaxDepth(5)); err != nil {
		t.Errorf("Check() returned %v, want no error", err)
	}
}

type unresolved struct {
	exprs []ast.Expr
}

func (u *unresolved) Enter(ast.Node) error { return nil }

func (u *unresolved) Between(ast.Node, ast.Boundary) error { return nil }

func (u *unresolved) Exit(n ast.Node) error {
	if e, ok := n.(ast.Expr); ok && !e.Resolved() {
		u.exprs = append(u.exprs, e)
	}
	return nil
}

func TestAllExpressionsResolved(t *testing.T) {
	st := newTable(t)
	root := &ast.Sequence{Children: []ast.Node{
		assign("a", call("InputCollectionOfScalar", str("a"), call("AllCells"))),
		assign("b", &ast.TrinaryIf{
			Predicate: &ast.ComparisonOp{Op: ast.Less, Left: ref("a"), Right: num(0)},
			IfTrue:    &ast.UnaryNegation{Operand: ref("a")},
			IfFalse:   ref("a"),
		}),
		assign("c", &ast.On{Subject: ref("b"), Domain: call("InteriorCells")}),
		&ast.FuncCallStatement{Call: call("Output", str("c"), ref("c"))},
		&ast.FuncRef{Name: "Gradient"},
	}}
	errs, err := checker.Check(root, st)
	if err != nil {
		t.Fatal(err)
	}
	checkKinds(t, diagnostics(t, errs))
	u := &unresolved{}
	if err := ast.Walk(u, root); err != nil {
		t.Fatal(err)
	}
	if len(u.exprs) > 0 {
		t.Errorf("unresolved expressions after check: %v", u.exprs)
	}
	cType, err := st.VariableType("c")
	if err != nil {
		t.Fatal(err)
	}
	if got, want := st.TypeString(cType), "Collection Of Scalar On InteriorCells"; got != want {
		t.Errorf("c has type %q, want %q", got, want)
	}
}
