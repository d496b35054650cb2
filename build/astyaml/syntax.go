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

package astyaml

import (
	"strconv"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/pkg/errors"
	modsemver "golang.org/x/mod/semver"

	"github.com/gx-org/equelle/build/ast"
	"github.com/gx-org/equelle/build/types"
)

// SupportedVersions is the range of document versions the loader reads.
const SupportedVersions = ">= 1.0.0, < 2.0.0"

var supported = func() *semver.Constraints {
	c, err := semver.NewConstraint(SupportedVersions)
	if err != nil {
		panic(err)
	}
	return c
}()

func checkVersion(v string) error {
	if v == "" {
		return errors.New("document has no version")
	}
	if !modsemver.IsValid("v" + v) {
		return errors.Errorf("invalid document version %q", v)
	}
	ver, err := semver.NewVersion(v)
	if err != nil {
		return errors.Wrapf(err, "invalid document version %q", v)
	}
	if !supported.Check(ver) {
		return errors.Errorf("unsupported document version %s: want %s", v, SupportedVersions)
	}
	return nil
}

type words struct {
	ws []string
	i  int
}

func (w *words) peek() string {
	if w.i >= len(w.ws) {
		return ""
	}
	return w.ws[w.i]
}

func (w *words) next() string {
	s := w.peek()
	w.i++
	return s
}

// accept consumes the next words if they match.
func (w *words) accept(want ...string) bool {
	if w.i+len(want) > len(w.ws) {
		return false
	}
	for j, s := range want {
		if w.ws[w.i+j] != s {
			return false
		}
	}
	w.i += len(want)
	return true
}

// ParseTypeSpec parses a type written in the syntax of the language:
//
//	[Mutable] [Array Of N] [Stencil] [Collection Of] Basic [On Set | Subset Of Set]
func ParseTypeSpec(s string) (ast.TypeSpec, error) {
	w := &words{ws: strings.Fields(s)}
	if len(w.ws) == 0 {
		return ast.TypeSpec{}, errors.New("empty type")
	}
	mutable := w.accept("Mutable")
	size := -1
	if w.accept("Array", "Of") {
		n, err := strconv.Atoi(w.next())
		if err != nil || n <= 0 {
			return ast.TypeSpec{}, errors.Errorf("invalid array size in type %q", s)
		}
		size = n
	}
	stencil := w.accept("Stencil")
	collection := w.accept("Collection", "Of")
	kind, ok := types.KindFromString(w.next())
	if !ok || kind == types.Invalid {
		return ast.TypeSpec{}, errors.Errorf("unknown basic type in type %q", s)
	}
	spec := ast.TypeSpec{Type: types.Basic(kind)}
	if collection {
		spec.Type = types.CollectionOf(kind, types.NotApplicable)
	}
	switch {
	case w.accept("On"):
		spec.On = w.next()
		if spec.On == "" {
			return ast.TypeSpec{}, errors.Errorf("missing set name in type %q", s)
		}
	case w.accept("Subset", "Of"):
		spec.SubsetOf = w.next()
		if spec.SubsetOf == "" {
			return ast.TypeSpec{}, errors.Errorf("missing set name in type %q", s)
		}
	}
	if (spec.On != "" || spec.SubsetOf != "") && !collection {
		return ast.TypeSpec{}, errors.Errorf("only collections can be on a set in type %q", s)
	}
	if w.i != len(w.ws) {
		return ast.TypeSpec{}, errors.Errorf("invalid type %q", s)
	}
	if stencil {
		spec.Type = spec.Type.AsStencil()
	}
	if size > 0 {
		spec.Type = spec.Type.AsArray(size)
	}
	if mutable {
		spec.Type = spec.Type.AsMutable()
	}
	return spec, nil
}

// ParseUnit parses a product or a quotient of named units,
// each with an optional exponent: Kilogram*Meter/Second^2 or Meter^(1/2).
func ParseUnit(s string) (types.Unit, error) {
	u := types.One()
	op := byte('*')
	start, depth := 0, 0
	for i := 0; i <= len(s); i++ {
		if i < len(s) {
			switch s[i] {
			case '(':
				depth++
				continue
			case ')':
				depth--
				continue
			case '*', '/':
				if depth > 0 {
					continue
				}
			default:
				continue
			}
		}
		f, err := parseFactor(strings.TrimSpace(s[start:i]))
		if err != nil {
			return types.Unit{}, errors.Wrapf(err, "invalid unit %q", s)
		}
		if op == '*' {
			u = u.Mul(f)
		} else {
			u = u.Div(f)
		}
		if i < len(s) {
			op = s[i]
		}
		start = i + 1
	}
	return u, nil
}

func parseFactor(f string) (types.Unit, error) {
	name, exp, hasExp := strings.Cut(f, "^")
	name = strings.TrimSpace(name)
	if name == "" {
		return types.Unit{}, errors.New("missing unit name")
	}
	unit, ok := types.LookupUnit(name)
	if !ok {
		return types.Unit{}, errors.Errorf("unknown unit %s", name)
	}
	if !hasExp {
		return unit, nil
	}
	exp = strings.TrimSuffix(strings.TrimPrefix(strings.TrimSpace(exp), "("), ")")
	numS, denS, isFrac := strings.Cut(exp, "/")
	num, err := strconv.ParseInt(strings.TrimSpace(numS), 10, 64)
	if err != nil {
		return types.Unit{}, errors.Errorf("invalid exponent %q", exp)
	}
	den := int64(1)
	if isFrac {
		if den, err = strconv.ParseInt(strings.TrimSpace(denS), 10, 64); err != nil || den == 0 {
			return types.Unit{}, errors.Errorf("invalid exponent %q", exp)
		}
	}
	return unit.Pow(types.NewRational(num, den)), nil
}
