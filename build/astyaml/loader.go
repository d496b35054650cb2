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

// Package astyaml loads a syntax tree from its YAML representation.
//
// A document has a version and a program. The program is a tree of nodes,
// each with a kind, an optional line, and fields specific to the kind:
//
//	version: 1.0.0
//	program:
//	  kind: sequence
//	  children:
//	    - {kind: vardecl, name: a, line: 1, type: "Collection Of Scalar On AllCells"}
//	    - kind: varassign
//	      name: b
//	      children:
//	        - {kind: binary, op: "+", children: [{kind: varref, name: a}, {kind: varref, name: a}]}
//
// Errors in the document are load errors and are reported together.
package astyaml

import (
	"fmt"
	"io"
	"os"

	"github.com/golang/glog"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	"github.com/gx-org/equelle/build/ast"
	"github.com/gx-org/equelle/build/types"
)

type (
	document struct {
		Version string `yaml:"version"`
		Program *node  `yaml:"program"`
	}

	param struct {
		Name string `yaml:"name"`
		Type string `yaml:"type"`
	}

	node struct {
		Kind     string   `yaml:"kind"`
		Line     int      `yaml:"line"`
		Name     string   `yaml:"name"`
		Op       string   `yaml:"op"`
		Value    *float64 `yaml:"value"`
		Text     string   `yaml:"text"`
		Unit     string   `yaml:"unit"`
		Type     string   `yaml:"type"`
		Returns  string   `yaml:"returns"`
		Args     []param  `yaml:"args"`
		Params   []string `yaml:"params"`
		Index    *int     `yaml:"index"`
		Axis     string   `yaml:"axis"`
		Extend   bool     `yaml:"extend"`
		Children []*node  `yaml:"children"`
	}

	loader struct {
		err   error
		count int
	}
)

// Load reads a program from its YAML representation.
func Load(r io.Reader) (ast.Node, error) {
	var doc document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, errors.Wrap(err, "cannot decode program")
	}
	if err := checkVersion(doc.Version); err != nil {
		return nil, err
	}
	if doc.Program == nil {
		return nil, errors.New("document has no program")
	}
	l := &loader{}
	root := l.node(doc.Program)
	if l.err != nil {
		return nil, l.err
	}
	glog.V(1).Infof("loaded program version %s: %d nodes", doc.Version, l.count)
	return root, nil
}

// LoadFile reads a program from a YAML file.
func LoadFile(path string) (ast.Node, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	defer f.Close()
	root, err := Load(f)
	if err != nil {
		return nil, errors.Wrapf(err, "%s", path)
	}
	return root, nil
}

func (l *loader) errorf(n *node, format string, a ...any) {
	l.err = multierr.Append(l.err, errors.Errorf("line %d: %s node: %s", n.Line, n.Kind, fmt.Sprintf(format, a...)))
}

// arity checks the number of children of a node.
func (l *loader) arity(n *node, want int) bool {
	if len(n.Children) != want {
		l.errorf(n, "got %d children but want %d", len(n.Children), want)
		return false
	}
	return true
}

func (l *loader) node(n *node) ast.Node {
	if n == nil {
		l.err = multierr.Append(l.err, errors.New("empty node"))
		return nil
	}
	l.count++
	pos := ast.Pos(n.Line)
	switch n.Kind {
	case "sequence":
		return l.sequence(n)
	case "vardecl":
		return &ast.VarDecl{Pos: pos, Name: l.name(n), Spec: l.typeSpec(n, n.Type)}
	case "varassign":
		if !l.arity(n, 1) {
			return nil
		}
		return &ast.VarAssign{Pos: pos, Name: l.name(n), Value: l.expr(n.Children[0])}
	case "funcdecl":
		decl := &ast.FuncDecl{Pos: pos, Name: l.name(n), Return: ast.TypeSpec{Type: types.VoidType()}}
		if n.Returns != "" {
			decl.Return = l.typeSpec(n, n.Returns)
		}
		for _, arg := range n.Args {
			decl.Args = append(decl.Args, ast.FuncParam{Name: arg.Name, Spec: l.typeSpec(n, arg.Type)})
		}
		return decl
	case "funcassign":
		return &ast.FuncAssign{Pos: pos, Name: l.name(n), Params: n.Params, Body: l.sequence(n)}
	case "funccallstatement":
		if !l.arity(n, 1) {
			return nil
		}
		call, ok := l.node(n.Children[0]).(*ast.FuncCall)
		if !ok {
			l.errorf(n, "child is not a function call")
			return nil
		}
		return &ast.FuncCallStatement{Pos: pos, Call: call}
	case "return":
		ret := &ast.Return{Pos: pos}
		switch len(n.Children) {
		case 0:
		case 1:
			ret.Value = l.expr(n.Children[0])
		default:
			l.errorf(n, "cannot return %d values", len(n.Children))
		}
		return ret
	case "loop":
		if len(n.Children) == 0 {
			l.errorf(n, "missing range")
			return nil
		}
		body := &ast.Sequence{Pos: pos}
		for _, child := range n.Children[1:] {
			body.Children = append(body.Children, l.node(child))
		}
		return &ast.Loop{Pos: pos, Var: l.name(n), Range: l.expr(n.Children[0]), Body: body}
	case "stencilassign":
		if !l.arity(n, 2) {
			return nil
		}
		target, ok := l.node(n.Children[0]).(*ast.StencilAccess)
		if !ok {
			l.errorf(n, "target is not a stencil access")
			return nil
		}
		return &ast.StencilAssign{Pos: pos, Target: target, Value: l.expr(n.Children[1])}
	}
	return l.exprNode(n, pos)
}

func (l *loader) sequence(n *node) *ast.Sequence {
	seq := &ast.Sequence{Pos: ast.Pos(n.Line)}
	for _, child := range n.Children {
		seq.Children = append(seq.Children, l.node(child))
	}
	return seq
}

func (l *loader) name(n *node) string {
	if n.Name == "" {
		l.errorf(n, "missing name")
	}
	return n.Name
}

func (l *loader) expr(n *node) ast.Expr {
	nd := l.node(n)
	if nd == nil {
		return nil
	}
	e, ok := nd.(ast.Expr)
	if !ok {
		l.errorf(n, "not an expression")
		return nil
	}
	return e
}

func (l *loader) exprs(children []*node) []ast.Expr {
	var es []ast.Expr
	for _, child := range children {
		es = append(es, l.expr(child))
	}
	return es
}

func (l *loader) exprNode(n *node, pos ast.Pos) ast.Node {
	switch n.Kind {
	case "number":
		if n.Value == nil {
			l.errorf(n, "missing value")
			return nil
		}
		return &ast.Number{Pos: pos, Value: *n.Value}
	case "string":
		return &ast.String{Pos: pos, Value: n.Text}
	case "quantity":
		if !l.arity(n, 1) {
			return nil
		}
		unit, err := ParseUnit(n.Unit)
		if err != nil {
			l.errorf(n, "%v", err)
			return nil
		}
		return &ast.Quantity{
			Pos:     pos,
			Operand: l.expr(n.Children[0]),
			Unit:    &ast.Unit{Pos: pos, Text: n.Unit, Unit: unit},
		}
	case "binary":
		op, ok := ast.ParseOperator(n.Op)
		if !ok {
			l.errorf(n, "unknown operator %q", n.Op)
		}
		if !ok || !l.arity(n, 2) {
			return nil
		}
		return &ast.BinaryOp{Pos: pos, Op: op, Left: l.expr(n.Children[0]), Right: l.expr(n.Children[1])}
	case "comparison":
		op, ok := ast.ParseComparison(n.Op)
		if !ok {
			l.errorf(n, "unknown comparison %q", n.Op)
		}
		if !ok || !l.arity(n, 2) {
			return nil
		}
		return &ast.ComparisonOp{Pos: pos, Op: op, Left: l.expr(n.Children[0]), Right: l.expr(n.Children[1])}
	case "negation":
		if !l.arity(n, 1) {
			return nil
		}
		return &ast.UnaryNegation{Pos: pos, Operand: l.expr(n.Children[0])}
	case "norm":
		if !l.arity(n, 1) {
			return nil
		}
		return &ast.Norm{Pos: pos, Operand: l.expr(n.Children[0])}
	case "trinaryif":
		if !l.arity(n, 3) {
			return nil
		}
		return &ast.TrinaryIf{
			Pos:       pos,
			Predicate: l.expr(n.Children[0]),
			IfTrue:    l.expr(n.Children[1]),
			IfFalse:   l.expr(n.Children[2]),
		}
	case "on":
		if !l.arity(n, 2) {
			return nil
		}
		return &ast.On{Pos: pos, Subject: l.expr(n.Children[0]), Domain: l.expr(n.Children[1]), Extend: n.Extend}
	case "varref":
		return &ast.VarRef{Pos: pos, Name: l.name(n)}
	case "funcref":
		return &ast.FuncRef{Pos: pos, Name: l.name(n)}
	case "funccall":
		return &ast.FuncCall{Pos: pos, Name: l.name(n), Args: &ast.FuncArgs{Pos: pos, Args: l.exprs(n.Children)}}
	case "array":
		return &ast.Array{Pos: pos, Elements: l.exprs(n.Children)}
	case "randomaccess":
		if n.Index == nil {
			l.errorf(n, "missing index")
			return nil
		}
		if !l.arity(n, 1) {
			return nil
		}
		return &ast.RandomAccess{Pos: pos, Target: l.expr(n.Children[0]), Index: *n.Index}
	case "stencilaccess":
		return &ast.StencilAccess{Pos: pos, Name: l.name(n), Indices: l.exprs(n.Children)}
	case "stencilindex":
		axis, ok := stencilAxes[n.Axis]
		if !ok {
			l.errorf(n, "unknown stencil axis %q", n.Axis)
			return nil
		}
		return &ast.StencilIndex{Pos: pos, Axis: axis}
	}
	l.errorf(n, "unknown node kind")
	return nil
}

var stencilAxes = map[string]types.Kind{
	"i": types.StencilI,
	"j": types.StencilJ,
	"k": types.StencilK,
}

func (l *loader) typeSpec(n *node, s string) ast.TypeSpec {
	spec, err := ParseTypeSpec(s)
	if err != nil {
		l.errorf(n, "%v", err)
	}
	return spec
}
