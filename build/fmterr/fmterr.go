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

// Package fmterr provides helpers to accumulate diagnostics while checking
// a program and to format them given a source line.
package fmterr

import (
	"fmt"
	"runtime/debug"

	"github.com/pkg/errors"
)

// Kind classifies a diagnostic.
type Kind int

// Kinds of diagnostics reported by the checker.
const (
	// DeclarationError is a redeclaration or a name collision with a function.
	DeclarationError Kind = iota
	// UsageError is a reference to an undeclared or unassigned identifier.
	UsageError
	// TypeError is an operand, dimension, or grid mapping mismatch.
	TypeError
	// ArityError is a call with the wrong number of arguments.
	ArityError
	// ArgumentTypeError is an argument that cannot substitute for its parameter.
	ArgumentTypeError
	// InternalError is a broken invariant between the checker and its collaborators.
	InternalError
)

var kindNames = map[Kind]string{
	DeclarationError:  "declaration error",
	UsageError:        "usage error",
	TypeError:         "type error",
	ArityError:        "arity error",
	ArgumentTypeError: "argument type error",
	InternalError:     "internal error",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Positioner is a source element with an optional line number.
// A line of 0 means that the position is unknown.
type Positioner interface {
	Line() int
}

type (
	// Diagnostic is an error attached to a kind and a source line.
	Diagnostic interface {
		error
		Kind() Kind
		Line() int
		Err() error
	}

	diagnostic struct {
		kind Kind
		line int
		err  error
	}
)

var _ Diagnostic = diagnostic{}

func lineOf(src Positioner) int {
	if src == nil {
		return 0
	}
	return src.Line()
}

// Position attaches a kind and the line of src to an error.
// src can be nil.
func Position(kind Kind, src Positioner, err error) Diagnostic {
	return diagnostic{kind: kind, line: lineOf(src), err: err}
}

// Errorf returns a formatted diagnostic for the user.
func Errorf(kind Kind, src Positioner, format string, a ...any) Diagnostic {
	return Position(kind, src, errors.Errorf(format, a...))
}

// At positions err at src.
// The kind of a diagnostic is kept. Other errors are internal errors.
func At(src Positioner, err error) Diagnostic {
	var diag Diagnostic
	if !errors.As(err, &diag) {
		return diagnostic{
			kind: InternalError,
			line: lineOf(src),
			err:  errors.Wrap(err, "internal compiler error"),
		}
	}
	line := lineOf(src)
	if line == 0 {
		line = diag.Line()
	}
	return diagnostic{kind: diag.Kind(), line: line, err: diag.Err()}
}

// Internal marks an error as internal.
// The line of a wrapped diagnostic is preserved.
func Internal(err error) Diagnostic {
	var diag Diagnostic
	if errors.As(err, &diag) && diag.Kind() == InternalError {
		return diag
	}
	line := 0
	if diag != nil {
		line, err = diag.Line(), diag.Err()
	}
	return diagnostic{
		kind: InternalError,
		line: line,
		err:  errors.Wrap(err, "internal compiler error"),
	}
}

// Internalf returns a formatted internal error.
func Internalf(src Positioner, format string, a ...any) Diagnostic {
	return diagnostic{
		kind: InternalError,
		line: lineOf(src),
		err:  errors.Wrap(errors.Errorf(format, a...), "internal compiler error"),
	}
}

// IsInternal returns true if err is, or wraps, an internal error.
func IsInternal(err error) bool {
	var diag Diagnostic
	return errors.As(err, &diag) && diag.Kind() == InternalError
}

// Error returns a string description of the error.
func (d diagnostic) Error() (s string) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		s = fmt.Sprintf("recovered from panic when building error message: %T:\n%v", d.err, string(debug.Stack()))
	}()
	if d.line <= 0 {
		return d.err.Error()
	}
	return LineString(d.line) + " " + d.err.Error()
}

// Unwrap the error.
func (d diagnostic) Unwrap() error {
	return d.err
}

// Format writes the error into the state of the formatter.
func (d diagnostic) Format(s fmt.State, verb rune) {
	format(d, s, verb)
}

func (d diagnostic) Kind() Kind {
	return d.kind
}

func (d diagnostic) Line() int {
	return d.line
}

func (d diagnostic) Err() error {
	return d.err
}

// LineString returns a line number as a string prefix for an error.
func LineString(line int) string {
	return fmt.Sprintf("line %d:", line)
}
