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

package types

import "math"

// Unit is a physical unit: a dimension and the factor converting
// a quantity in the unit to SI base units.
type Unit struct {
	Dim    Dimension
	Factor float64
}

func siUnit(d Dimension) Unit {
	return Unit{Dim: d, Factor: 1}
}

func dim(exps ...int64) Dimension {
	var d Dimension
	for i, e := range exps {
		d[i] = Int(e)
	}
	return d
}

// Exponents follow the BaseUnit order: m, s, kg, K, A, mol, cd.
var units = map[string]Unit{
	"Meter":    siUnit(dim(1)),
	"Second":   siUnit(dim(0, 1)),
	"Kilogram": siUnit(dim(0, 0, 1)),
	"Kelvin":   siUnit(dim(0, 0, 0, 1)),
	"Ampere":   siUnit(dim(0, 0, 0, 0, 1)),
	"Mole":     siUnit(dim(0, 0, 0, 0, 0, 1)),
	"Candela":  siUnit(dim(0, 0, 0, 0, 0, 0, 1)),

	"Inch":        {Dim: dim(1), Factor: 0.0254},
	"Feet":        {Dim: dim(1), Factor: 0.3048},
	"Millisecond": {Dim: dim(0, 1), Factor: 1e-3},
	"Minute":      {Dim: dim(0, 1), Factor: 60},
	"Hour":        {Dim: dim(0, 1), Factor: 3600},
	"Day":         {Dim: dim(0, 1), Factor: 86400},
	"Year":        {Dim: dim(0, 1), Factor: 31556952},
	"Gram":        {Dim: dim(0, 0, 1), Factor: 1e-3},
	"Tonne":       {Dim: dim(0, 0, 1), Factor: 1e3},
	"Liter":       {Dim: dim(3), Factor: 1e-3},
	"Barrel":      {Dim: dim(3), Factor: 0.158987294928},
	"Darcy":       {Dim: dim(2), Factor: 9.869233e-13},

	"Newton": siUnit(dim(1, -2, 1)),
	"Pascal": siUnit(dim(-1, -2, 1)),
	"Bar":    {Dim: dim(-1, -2, 1), Factor: 1e5},
	"Joule":  siUnit(dim(2, -2, 1)),
	"Watt":   siUnit(dim(2, -3, 1)),
	"Poise":  {Dim: dim(-1, -1, 1), Factor: 0.1},
}

// LookupUnit returns a named unit.
func LookupUnit(name string) (Unit, bool) {
	u, ok := units[name]
	return u, ok
}

// One returns the dimensionless unit of quantities without unit.
func One() Unit {
	return Unit{Factor: 1}
}

// Mul returns the product of two units.
func (u Unit) Mul(o Unit) Unit {
	return Unit{Dim: u.Dim.Add(o.Dim), Factor: u.Factor * o.Factor}
}

// Div returns the quotient of two units.
func (u Unit) Div(o Unit) Unit {
	return Unit{Dim: u.Dim.Sub(o.Dim), Factor: u.Factor / o.Factor}
}

// Pow returns the unit raised to a power.
func (u Unit) Pow(p Rational) Unit {
	return Unit{
		Dim:    u.Dim.Scale(p),
		Factor: math.Pow(u.Factor, float64(p.Num())/float64(p.Den())),
	}
}
