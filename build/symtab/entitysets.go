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

package symtab

import (
	"iter"

	"github.com/golang/glog"

	"github.com/gx-org/equelle/build/entityset"
	"github.com/gx-org/equelle/build/fmterr"
	"github.com/gx-org/equelle/build/types"
)

// Entity sets of the grid available to all programs.
// Interior and boundary sets are subsets of the set of all entities of the same kind.
var gridSets = []struct {
	all      string
	interior string
	boundary string
}{
	{"AllCells", "InteriorCells", "BoundaryCells"},
	{"AllFaces", "InteriorFaces", "BoundaryFaces"},
	{"AllEdges", "InteriorEdges", "BoundaryEdges"},
	{"AllVertices", "InteriorVertices", "BoundaryVertices"},
}

func (t *Table) declareGridSets() error {
	for _, gs := range gridSets {
		all, err := t.sets.Declare(gs.all, types.NotApplicable)
		if err != nil {
			return err
		}
		if _, err := t.sets.Declare(gs.interior, all); err != nil {
			return err
		}
		if _, err := t.sets.Declare(gs.boundary, all); err != nil {
			return err
		}
	}
	return nil
}

// DeclareNewEntitySet creates a new entity set carved from parent
// and returns its id. An empty name creates an anonymous set.
func (t *Table) DeclareNewEntitySet(name string, parent int) (int, error) {
	id, err := t.sets.Declare(name, parent)
	if err != nil {
		return types.NotApplicable, fmterr.Internal(err)
	}
	glog.V(2).Infof("declared entity set %d (%s) with parent %d", id, name, parent)
	return id, nil
}

// EntitySetName returns the name of an entity set.
func (t *Table) EntitySetName(id int) (string, error) {
	name, err := t.sets.Name(id)
	if err != nil {
		return "", fmterr.Internal(err)
	}
	return name, nil
}

// SetEntitySetName binds a name to an anonymous entity set.
// It returns false if the set has already been named.
func (t *Table) SetEntitySetName(id int, name string) (bool, error) {
	bound, err := t.sets.BindName(id, name)
	if err != nil {
		return false, fmterr.Internal(err)
	}
	if bound {
		glog.V(2).Infof("entity set %d bound to %s", id, name)
	}
	return bound, nil
}

// IsAnonymousEntitySet returns true if no name has been bound to a set.
func (t *Table) IsAnonymousEntitySet(id int) bool {
	return t.sets.IsAnonymous(id)
}

// IsSubset returns true if the set a is the set b or has been carved from b.
func (t *Table) IsSubset(a, b int) bool {
	return t.sets.IsSubset(a, b)
}

// EntitySet returns the id of the first entity set with a given name.
func (t *Table) EntitySet(name string) (int, bool) {
	return t.sets.Lookup(name)
}

// EntitySets iterates over all entity sets in creation order.
func (t *Table) EntitySets() iter.Seq[entityset.EntitySet] {
	return t.sets.All()
}

// TypeString formats a type using the names bound to entity sets.
func (t *Table) TypeString(typ types.Type) string {
	return typ.Format(t.sets.Namer())
}
