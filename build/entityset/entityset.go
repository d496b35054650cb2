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

// Package entityset stores the sets of grid entities known to a compilation.
//
// Sets form a forest: a set created from another one records it as its
// parent. Ids are dense indices into the registry and are never reused.
package entityset

import (
	"iter"

	"github.com/pkg/errors"

	"github.com/gx-org/equelle/build/types"
)

// Anonymous is the placeholder name of a set until a variable captures it.
const Anonymous = "AnonymousEntitySet"

type (
	// EntitySet is a subset of grid entities.
	EntitySet struct {
		ID     int
		Parent int
		Name   string
	}

	// Registry owns all the entity sets of one compilation.
	Registry struct {
		sets []EntitySet
	}
)

// New returns an empty registry.
func New() *Registry {
	return &Registry{}
}

// Declare a new set carved from parent and returns its id.
// parent is types.NotApplicable for a root set.
// An empty name declares an anonymous set.
func (r *Registry) Declare(name string, parent int) (int, error) {
	if parent != types.NotApplicable && !r.valid(parent) {
		return types.NotApplicable, errors.Errorf("cannot declare entity set %q: parent %d does not exist", name, parent)
	}
	if name == "" {
		name = Anonymous
	}
	id := len(r.sets)
	r.sets = append(r.sets, EntitySet{ID: id, Parent: parent, Name: name})
	return id, nil
}

func (r *Registry) valid(id int) bool {
	return id >= 0 && id < len(r.sets)
}

func (r *Registry) get(id int) (*EntitySet, error) {
	if !r.valid(id) {
		return nil, errors.Errorf("entity set %d does not exist", id)
	}
	return &r.sets[id], nil
}

// Name returns the name of a set.
func (r *Registry) Name(id int) (string, error) {
	set, err := r.get(id)
	if err != nil {
		return "", err
	}
	return set.Name, nil
}

// Parent returns the set a set has been carved from,
// or types.NotApplicable for a root set.
func (r *Registry) Parent(id int) (int, error) {
	set, err := r.get(id)
	if err != nil {
		return types.NotApplicable, err
	}
	return set.Parent, nil
}

// IsAnonymous returns true if no name has been bound to the set yet.
func (r *Registry) IsAnonymous(id int) bool {
	set, err := r.get(id)
	return err == nil && set.Name == Anonymous
}

// BindName binds a name to an anonymous set.
// A set can only be named once: BindName returns false without modifying
// the set if the set already has a name.
func (r *Registry) BindName(id int, name string) (bool, error) {
	set, err := r.get(id)
	if err != nil {
		return false, err
	}
	if set.Name != Anonymous {
		return false, nil
	}
	set.Name = name
	return true, nil
}

// IsSubset returns true if a == b or if b is an ancestor of a.
// Unknown ids are never subsets.
func (r *Registry) IsSubset(a, b int) bool {
	if !r.valid(a) || !r.valid(b) {
		return false
	}
	// Parents always have a smaller id than their children,
	// which bounds the walk by the number of sets.
	for cur := a; cur != types.NotApplicable; cur = r.sets[cur].Parent {
		if cur == b {
			return true
		}
		if cur < b {
			return false
		}
	}
	return false
}

// Lookup returns the id of the first set bound to a name.
// Anonymous sets cannot be looked up.
func (r *Registry) Lookup(name string) (int, bool) {
	if name == Anonymous {
		return types.NotApplicable, false
	}
	for _, set := range r.sets {
		if set.Name == name {
			return set.ID, true
		}
	}
	return types.NotApplicable, false
}

// Len returns the number of sets in the registry.
func (r *Registry) Len() int {
	return len(r.sets)
}

// All iterates over all the sets in creation order.
func (r *Registry) All() iter.Seq[EntitySet] {
	return func(yield func(EntitySet) bool) {
		for _, set := range r.sets {
			if !yield(set) {
				return
			}
		}
	}
}

// Namer returns a function naming sets, for formatting types.
func (r *Registry) Namer() types.SetNamer {
	return func(id int) string {
		name, err := r.Name(id)
		if err != nil {
			return "<invalid entity set>"
		}
		return name
	}
}
