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

import (
	"fmt"
	"strings"
)

// Rational is an exponent p/q.
// The zero value is 0. Rationals are always normalized so that they
// can be compared with ==.
type Rational struct {
	num int64
	// denMinusOne stores q-1 so that the zero value is 0/1.
	denMinusOne int64
}

// NewRational returns the rational num/den.
// It panics if den is 0.
func NewRational(num, den int64) Rational {
	if den == 0 {
		panic("rational with a zero denominator")
	}
	if den < 0 {
		num, den = -num, -den
	}
	g := gcd(abs(num), den)
	if g > 1 {
		num, den = num/g, den/g
	}
	if num == 0 {
		den = 1
	}
	return Rational{num: num, denMinusOne: den - 1}
}

// Int returns the rational n/1.
func Int(n int64) Rational {
	return Rational{num: n}
}

func abs(a int64) int64 {
	if a < 0 {
		return -a
	}
	return a
}

func gcd(a, b int64) int64 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// Num returns the numerator.
func (r Rational) Num() int64 { return r.num }

// Den returns the denominator, always positive.
func (r Rational) Den() int64 { return r.denMinusOne + 1 }

// IsZero returns true if the rational is 0.
func (r Rational) IsZero() bool { return r.num == 0 }

// Add returns r+o.
func (r Rational) Add(o Rational) Rational {
	return NewRational(r.num*o.Den()+o.num*r.Den(), r.Den()*o.Den())
}

// Neg returns -r.
func (r Rational) Neg() Rational {
	return Rational{num: -r.num, denMinusOne: r.denMinusOne}
}

// Mul returns r*o.
func (r Rational) Mul(o Rational) Rational {
	return NewRational(r.num*o.num, r.Den()*o.Den())
}

func (r Rational) String() string {
	if r.Den() == 1 {
		return fmt.Sprint(r.num)
	}
	return fmt.Sprintf("%d/%d", r.num, r.Den())
}

// BaseUnit indexes the physical base units of a dimension.
type BaseUnit int

// SI base units.
const (
	Length BaseUnit = iota
	Time
	Mass
	Temperature
	Current
	Amount
	Luminosity

	NumBaseUnits
)

var baseUnitSymbols = [NumBaseUnits]string{"m", "s", "kg", "K", "A", "mol", "cd"}

// Dimension is a vector of exponents over the SI base units.
// The zero value is dimensionless.
type Dimension [NumBaseUnits]Rational

// Dimensionless returns the dimension of pure numbers.
func Dimensionless() Dimension {
	return Dimension{}
}

// DimensionOf returns a dimension with an integer exponent for a single base unit.
func DimensionOf(unit BaseUnit, exp int64) Dimension {
	var d Dimension
	d[unit] = Int(exp)
	return d
}

// Add returns the dimension of a product: exponents are added.
func (d Dimension) Add(o Dimension) Dimension {
	for i := range d {
		d[i] = d[i].Add(o[i])
	}
	return d
}

// Sub returns the dimension of a quotient: exponents are subtracted.
func (d Dimension) Sub(o Dimension) Dimension {
	for i := range d {
		d[i] = d[i].Add(o[i].Neg())
	}
	return d
}

// Scale returns the dimension raised to a power.
func (d Dimension) Scale(p Rational) Dimension {
	for i := range d {
		d[i] = d[i].Mul(p)
	}
	return d
}

// Equal returns true if both dimensions have the same exponents.
func (d Dimension) Equal(o Dimension) bool {
	return d == o
}

// IsDimensionless returns true if all exponents are zero.
func (d Dimension) IsDimensionless() bool {
	return d == Dimension{}
}

func (d Dimension) String() string {
	var s []string
	for i, exp := range d {
		if exp.IsZero() {
			continue
		}
		if exp == Int(1) {
			s = append(s, baseUnitSymbols[i])
			continue
		}
		s = append(s, fmt.Sprintf("%s^%s", baseUnitSymbols[i], exp))
	}
	if len(s) == 0 {
		return "[1]"
	}
	return "[" + strings.Join(s, " ") + "]"
}
