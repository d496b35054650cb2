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

package astyaml_test

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/gx-org/equelle/build/ast"
	"github.com/gx-org/equelle/build/astyaml"
	"github.com/gx-org/equelle/build/types"
)

func TestParseTypeSpec(t *testing.T) {
	tests := []struct {
		src  string
		want ast.TypeSpec
	}{
		{
			src:  "Scalar",
			want: ast.TypeSpec{Type: types.Basic(types.Scalar)},
		},
		{
			src: "Mutable Collection Of Scalar On AllCells",
			want: ast.TypeSpec{
				Type: types.CollectionOf(types.Scalar, types.NotApplicable).AsMutable(),
				On:   "AllCells",
			},
		},
		{
			src:  "Array Of 3 Vector",
			want: ast.TypeSpec{Type: types.Basic(types.Vector).AsArray(3)},
		},
		{
			src: "Stencil Collection Of Scalar On u",
			want: ast.TypeSpec{
				Type: types.CollectionOf(types.Scalar, types.NotApplicable).AsStencil(),
				On:   "u",
			},
		},
		{
			src: "Collection Of Face Subset Of BoundaryFaces",
			want: ast.TypeSpec{
				Type:     types.CollectionOf(types.Face, types.NotApplicable),
				SubsetOf: "BoundaryFaces",
			},
		},
	}
	for _, test := range tests {
		got, err := astyaml.ParseTypeSpec(test.src)
		if err != nil {
			t.Errorf("%q: %v", test.src, err)
			continue
		}
		if diff := cmp.Diff(test.want, got); diff != "" {
			t.Errorf("%q: unexpected type (-want +got):\n%s", test.src, diff)
		}
	}
}

func TestParseTypeSpecErrors(t *testing.T) {
	for _, src := range []string{
		"",
		"Array Of x Scalar",
		"Array Of 0 Scalar",
		"Scalar On AllCells",
		"Collection Of Scalar On",
		"Collection Of Scalar Subset Of",
		"Scalar Scalar",
		"Collection Scalar",
		"Invalid",
	} {
		if _, err := astyaml.ParseTypeSpec(src); err == nil {
			t.Errorf("%q: expected an error", src)
		}
	}
}

func TestParseUnit(t *testing.T) {
	length := types.DimensionOf(types.Length, 1)
	time := types.DimensionOf(types.Time, 1)
	newton, _ := types.LookupUnit("Newton")
	tests := []struct {
		src  string
		want types.Unit
	}{
		{
			src:  "Meter",
			want: types.Unit{Dim: length, Factor: 1},
		},
		{
			src:  "Meter/Second^2",
			want: types.Unit{Dim: length.Sub(time.Scale(types.Int(2))), Factor: 1},
		},
		{
			src:  "Kilogram * Meter / Second^2",
			want: newton,
		},
		{
			src:  "Meter^(1/2)",
			want: types.Unit{Dim: length.Scale(types.NewRational(1, 2)), Factor: 1},
		},
		{
			src:  "Minute/Second^-1",
			want: types.Unit{Dim: time.Scale(types.Int(2)), Factor: 60},
		},
		{
			src:  "Feet*Feet",
			want: types.Unit{Dim: length.Scale(types.Int(2)), Factor: 0.3048 * 0.3048},
		},
	}
	for _, test := range tests {
		got, err := astyaml.ParseUnit(test.src)
		if err != nil {
			t.Errorf("%q: %v", test.src, err)
			continue
		}
		if !got.Dim.Equal(test.want.Dim) {
			t.Errorf("%q: got dimension %s, want %s", test.src, got.Dim, test.want.Dim)
		}
		if math.Abs(got.Factor-test.want.Factor) > 1e-12 {
			t.Errorf("%q: got factor %g, want %g", test.src, got.Factor, test.want.Factor)
		}
	}
}

func TestParseUnitErrors(t *testing.T) {
	for _, src := range []string{"", "Furlong", "Meter^x", "Meter^(1/0)", "Meter*", "/Second"} {
		if _, err := astyaml.ParseUnit(src); err == nil {
			t.Errorf("%q: expected an error", src)
		}
	}
}
