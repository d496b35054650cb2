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

package ast

import (
	"fmt"

	"github.com/gx-org/equelle/build/fmterr"
)

// Boundary identifies a point between two children of a node
// where a visitor is notified.
type Boundary int

// Boundaries between children.
const (
	// LeftOperand follows the left operand of a binary or comparison operator.
	LeftOperand Boundary = iota
	// OnSubject follows the subject of a restriction or extension.
	OnSubject
	// Question follows the predicate of a trinary if.
	Question
	// Colon follows the true branch of a trinary if.
	Colon
	// Item separates consecutive children of a sequence or of an argument list.
	Item
	// Assign follows the target of a stencil assignment.
	Assign
	// LoopBody follows the range of a loop.
	LoopBody
)

var boundaries = [...]string{
	LeftOperand: "LeftOperand",
	OnSubject:   "OnSubject",
	Question:    "Question",
	Colon:       "Colon",
	Item:        "Item",
	Assign:      "Assign",
	LoopBody:    "LoopBody",
}

func (b Boundary) String() string {
	if int(b) < len(boundaries) {
		return boundaries[b]
	}
	return fmt.Sprintf("Boundary(%d)", int(b))
}

// Visitor is notified when a node is entered, at the boundaries
// between its children, and when the node is exited.
// A non-nil error returned by any method aborts the walk.
type Visitor interface {
	// Enter is called before any child of the node is walked.
	Enter(Node) error
	// Between is called at the boundaries between children.
	Between(Node, Boundary) error
	// Exit is called after all the children have been walked.
	Exit(Node) error
}

type walker struct {
	v Visitor
}

// Walk traverses a tree depth-first in the order of the children.
// It returns an internal error when it reaches a node of an unknown kind.
func Walk(v Visitor, n Node) error {
	w := walker{v: v}
	return w.walk(n)
}

func (w walker) visit(n Node, children func() error) error {
	if err := w.v.Enter(n); err != nil {
		return err
	}
	if children != nil {
		if err := children(); err != nil {
			return err
		}
	}
	return w.v.Exit(n)
}

// items walks a list of children separated by a boundary.
func items[T Node](w walker, parent Node, sep Boundary, children []T) error {
	for i, child := range children {
		if i > 0 {
			if err := w.v.Between(parent, sep); err != nil {
				return err
			}
		}
		if err := w.walk(child); err != nil {
			return err
		}
	}
	return nil
}

// all walks a list of children without boundaries.
func all[T Node](w walker, children []T) error {
	for _, child := range children {
		if err := w.walk(child); err != nil {
			return err
		}
	}
	return nil
}

// pair walks two children with a boundary in between.
func (w walker) pair(parent Node, first Node, sep Boundary, second Node) error {
	if err := w.walk(first); err != nil {
		return err
	}
	if err := w.v.Between(parent, sep); err != nil {
		return err
	}
	return w.walk(second)
}

// optional walks a child if present.
func (w walker) optional(present bool, child Node) error {
	if !present {
		return nil
	}
	return w.walk(child)
}

func (w walker) walk(n Node) error {
	switch n := n.(type) {
	case *Number, *String, *VarRef, *FuncRef, *StencilIndex, *VarDecl, *FuncDecl, *Unit:
		return w.visit(n, nil)
	case *Sequence:
		return w.visit(n, func() error {
			return items(w, n, Item, n.Children)
		})
	case *FuncArgs:
		return w.visit(n, func() error {
			return items(w, n, Item, n.Args)
		})
	case *Quantity:
		return w.visit(n, func() error {
			if err := w.walk(n.Operand); err != nil {
				return err
			}
			return w.optional(n.Unit != nil, n.Unit)
		})
	case *BinaryOp:
		return w.visit(n, func() error {
			return w.pair(n, n.Left, LeftOperand, n.Right)
		})
	case *ComparisonOp:
		return w.visit(n, func() error {
			return w.pair(n, n.Left, LeftOperand, n.Right)
		})
	case *UnaryNegation:
		return w.visit(n, func() error {
			return w.walk(n.Operand)
		})
	case *Norm:
		return w.visit(n, func() error {
			return w.walk(n.Operand)
		})
	case *TrinaryIf:
		return w.visit(n, func() error {
			if err := w.pair(n, n.Predicate, Question, n.IfTrue); err != nil {
				return err
			}
			if err := w.v.Between(n, Colon); err != nil {
				return err
			}
			return w.walk(n.IfFalse)
		})
	case *On:
		return w.visit(n, func() error {
			return w.pair(n, n.Subject, OnSubject, n.Domain)
		})
	case *VarAssign:
		return w.visit(n, func() error {
			return w.walk(n.Value)
		})
	case *FuncCall:
		return w.visit(n, func() error {
			return w.optional(n.Args != nil, n.Args)
		})
	case *FuncCallStatement:
		return w.visit(n, func() error {
			return w.optional(n.Call != nil, n.Call)
		})
	case *FuncAssign:
		return w.visit(n, func() error {
			return w.optional(n.Body != nil, n.Body)
		})
	case *Return:
		return w.visit(n, func() error {
			return w.optional(n.Value != nil, n.Value)
		})
	case *Loop:
		return w.visit(n, func() error {
			if err := w.walk(n.Range); err != nil {
				return err
			}
			if err := w.v.Between(n, LoopBody); err != nil {
				return err
			}
			return w.optional(n.Body != nil, n.Body)
		})
	case *Array:
		return w.visit(n, func() error {
			return all(w, n.Elements)
		})
	case *RandomAccess:
		return w.visit(n, func() error {
			return w.walk(n.Target)
		})
	case *StencilAccess:
		return w.visit(n, func() error {
			return all(w, n.Indices)
		})
	case *StencilAssign:
		return w.visit(n, func() error {
			return w.pair(n, n.Target, Assign, n.Value)
		})
	case nil:
		return fmterr.Internalf(nil, "cannot walk a missing node")
	default:
		return fmterr.Internalf(n, "cannot walk node of type %T", n)
	}
}
