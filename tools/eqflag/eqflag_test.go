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

package eqflag_test

import (
	"flag"
	"io"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/gx-org/equelle/tools/eqflag"
)

func TestStringList(t *testing.T) {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	list := eqflag.StringListVar(fs, "names", "list of names")
	if err := fs.Parse([]string{"-names", "Dot, Sqrt,", "-names=Output"}); err != nil {
		t.Fatal(err)
	}
	want := []string{"Dot", "Sqrt", "Output"}
	if diff := cmp.Diff(want, *list); diff != "" {
		t.Errorf("unexpected list (-want +got):\n%s", diff)
	}
	if got := fs.Lookup("names").Value.String(); got != "Dot,Sqrt,Output" {
		t.Errorf("flag value printed as %q", got)
	}
}
