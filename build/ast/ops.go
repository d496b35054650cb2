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

import "fmt"

// Operator is an arithmetic binary operator.
type Operator int

// Arithmetic operators.
const (
	Add Operator = iota
	Subtract
	Multiply
	Divide
)

var operators = [...]string{
	Add:      "+",
	Subtract: "-",
	Multiply: "*",
	Divide:   "/",
}

func (op Operator) String() string {
	if int(op) < len(operators) {
		return operators[op]
	}
	return fmt.Sprintf("Operator(%d)", int(op))
}

// ParseOperator returns an operator given its symbol.
func ParseOperator(s string) (Operator, bool) {
	for op, sym := range operators {
		if sym == s {
			return Operator(op), true
		}
	}
	return 0, false
}

// Comparison is a comparison operator.
type Comparison int

// Comparison operators.
const (
	Less Comparison = iota
	Greater
	LessEqual
	GreaterEqual
	Equal
	NotEqual
)

var comparisons = [...]string{
	Less:         "<",
	Greater:      ">",
	LessEqual:    "<=",
	GreaterEqual: ">=",
	Equal:        "==",
	NotEqual:     "!=",
}

func (c Comparison) String() string {
	if int(c) < len(comparisons) {
		return comparisons[c]
	}
	return fmt.Sprintf("Comparison(%d)", int(c))
}

// ParseComparison returns a comparison operator given its symbol.
func ParseComparison(s string) (Comparison, bool) {
	for c, sym := range comparisons {
		if sym == s {
			return Comparison(c), true
		}
	}
	return 0, false
}
