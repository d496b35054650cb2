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

// Package scope provides lexical scopes: a chain of namespaces
// queried from the innermost outwards.
package scope

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"github.com/gx-org/equelle/base/ordered"
)

// RWScope stores key,value pairs.
// A value can retrieved from its key by querying the scope and,
// if not found, its parents recursively.
// Values defined in a scope are never visible from its parent.
type RWScope[V any] struct {
	label  string
	parent *RWScope[V]
	local  *ordered.Map[string, V]
}

// NewScope returns a new scope given a parent, which can be nil.
func NewScope[V any](label string, parent *RWScope[V]) *RWScope[V] {
	return &RWScope[V]{
		label:  label,
		parent: parent,
		local:  ordered.NewMap[string, V](),
	}
}

// NewChild returns a new scope nested in s.
func (s *RWScope[V]) NewChild(label string) *RWScope[V] {
	return NewScope(label, s)
}

// Parent returns the enclosing scope or nil for a root scope.
func (s *RWScope[V]) Parent() *RWScope[V] {
	return s.parent
}

// Label returns the name given to the scope when it was created.
func (s *RWScope[V]) Label() string {
	return s.label
}

// Depth returns the number of enclosing scopes.
func (s *RWScope[V]) Depth() int {
	depth := 0
	for p := s.parent; p != nil; p = p.parent {
		depth++
	}
	return depth
}

// Define maps `key` to `value` in the local scope, overwriting if necessary.
func (s *RWScope[V]) Define(k string, v V) {
	s.local.Store(k, v)
}

// IsLocal returns true if the key is defined in the local scope.
func (s *RWScope[V]) IsLocal(key string) bool {
	return s.local.Has(key)
}

// Find a key in the scope and its parents.
// The innermost definition wins.
func (s *RWScope[V]) Find(key string) (value V, ok bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if value, ok = cur.local.Load(key); ok {
			return value, true
		}
	}
	return value, false
}

// Assign maps an existing `key` to `value`, failing if no matching mapping is found. The assignment
// starts at the scope's innermost namespace and cascades upwards through successive parent scopes.
func (s *RWScope[V]) Assign(key string, value V) error {
	for cur := s; cur != nil; cur = cur.parent {
		if cur.local.Has(key) {
			cur.local.Store(key, value)
			return nil
		}
	}
	return errors.Errorf("cannot assign %s: not defined in scope", key)
}

// Items returns all the items visible from the scope.
// Inner definitions override outer ones.
func (s *RWScope[V]) Items() *ordered.Map[string, V] {
	var chain []*RWScope[V]
	for cur := s; cur != nil; cur = cur.parent {
		chain = append(chain, cur)
	}
	all := ordered.NewMap[string, V]()
	for i := len(chain) - 1; i >= 0; i-- {
		for k, v := range chain[i].local.Iter() {
			all.Store(k, v)
		}
	}
	return all
}

func (s *RWScope[V]) localString() string {
	if s.local.Size() == 0 {
		return "empty"
	}
	var kvs []string
	for k, v := range s.local.Iter() {
		kvs = append(kvs, fmt.Sprintf("%s: %v", k, v))
	}
	return strings.Join(kvs, "\n")
}

// String representation of the scope.
func (s *RWScope[V]) String() string {
	parentS := "root"
	if s.parent != nil {
		parentS = s.parent.label
	}
	return fmt.Sprintf("-- %s (parent: %s) --\n%s\n", s.label, parentS, s.localString())
}
