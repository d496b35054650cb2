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
	"fmt"
	"io"
	"sort"

	"golang.org/x/exp/maps"

	"github.com/gx-org/equelle/build/types"
)

// Dump writes all the symbols visible from the current scope,
// sorted by name, followed by the entity sets.
func (t *Table) Dump(w io.Writer) error {
	vars := make(map[string]*Variable)
	funcs := make(map[string]*Function)
	for name, sym := range t.current.Items().Iter() {
		if sym.fn != nil {
			funcs[name] = sym.fn
			continue
		}
		vars[name] = sym.vr
	}
	if _, err := fmt.Fprintln(w, "variables:"); err != nil {
		return err
	}
	names := maps.Keys(vars)
	sort.Strings(names)
	for _, name := range names {
		vr := vars[name]
		state := "unassigned"
		switch {
		case vr.Type.IsMutable():
			state = "mutable"
		case vr.Assigned:
			state = "assigned"
		}
		if _, err := fmt.Fprintf(w, "  %s: %s %s (%s)\n", name, t.TypeString(vr.Type), vr.Dim, state); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w, "functions:"); err != nil {
		return err
	}
	names = maps.Keys(funcs)
	sort.Strings(names)
	for _, name := range names {
		if _, err := fmt.Fprintf(w, "  %s\n", funcs[name].Signature(t.TypeString)); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w, "entity sets:"); err != nil {
		return err
	}
	for set := range t.sets.All() {
		parent := "-"
		if set.Parent != types.NotApplicable {
			parent = t.sets.Namer()(set.Parent)
		}
		if _, err := fmt.Fprintf(w, "  %d: %s (parent: %s)\n", set.ID, set.Name, parent); err != nil {
			return err
		}
	}
	return nil
}
