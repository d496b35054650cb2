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

// Command eqcheck type-checks a program given as a YAML syntax tree.
//
// Diagnostics are printed on the standard error. The command exits with
// status 1 if the program has diagnostics and 2 if the check failed.
//
//	eqcheck -input heat.yaml -dump
//	eqcheck -input heat.yaml -watch -builtins_off=InputScalarWithDefault
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/golang/glog"
	"github.com/pkg/errors"

	"github.com/gx-org/equelle/build/astyaml"
	"github.com/gx-org/equelle/build/builtins"
	"github.com/gx-org/equelle/build/checker"
	"github.com/gx-org/equelle/build/fmterr"
	"github.com/gx-org/equelle/build/symtab"
	"github.com/gx-org/equelle/tools/eqflag"
)

var (
	input          = flag.String("input", "", "YAML file of the syntax tree to check")
	dump           = flag.Bool("dump", false, "print the symbol table once the program has been checked")
	watch          = flag.Bool("watch", false, "check the input again each time it is written")
	splitPostponed = flag.Bool("split_postponed", true, "report assignments of sets outside the restricting set of a collection with a specific message")
	maxDepth       = flag.Int("max_depth", checker.DefaultMaxDepth, "maximum nesting depth of the syntax tree")
	builtinsOff    = eqflag.StringList("builtins_off", "comma-separated list of built-in functions not to declare")
)

type config struct {
	input    string
	dump     bool
	watch    bool
	excluded []string
	opts     []checker.Option
}

// checkFile loads and checks a program.
// It returns false if the program has diagnostics.
func checkFile(cfg *config, stdout, stderr io.Writer) (bool, error) {
	root, err := astyaml.LoadFile(cfg.input)
	if err != nil {
		return false, err
	}
	st, err := symtab.New()
	if err != nil {
		return false, err
	}
	if err := builtins.Declare(st, cfg.excluded...); err != nil {
		return false, err
	}
	errs, err := checker.Check(root, st, cfg.opts...)
	for _, diag := range errs.Errors() {
		if fmterr.IsInternal(diag) {
			// Printed by the caller with its stack.
			continue
		}
		fmt.Fprintln(stderr, diag)
	}
	if err != nil {
		return false, err
	}
	if cfg.dump {
		if err := st.Dump(stdout); err != nil {
			return false, err
		}
	}
	return errs.Empty(), nil
}

// watchFile checks the input each time it is written until ctx is done.
func watchFile(ctx context.Context, cfg *config, stdout, stderr io.Writer) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.WithStack(err)
	}
	defer w.Close()
	// Files replaced on save are only seen from their directory.
	if err := w.Add(filepath.Dir(cfg.input)); err != nil {
		return errors.Wrapf(err, "cannot watch %s", cfg.input)
	}
	target := filepath.Clean(cfg.input)
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target || (!ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create)) {
				continue
			}
			glog.V(1).Infof("%s changed (%s): checking", ev.Name, ev.Op)
			fmt.Fprintf(stderr, "--- %s\n", cfg.input)
			if _, err := checkFile(cfg, stdout, stderr); err != nil {
				fmt.Fprintf(stderr, "%+v\n", err)
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			return errors.WithStack(err)
		}
	}
}

func run(ctx context.Context, cfg *config, stdout, stderr io.Writer) int {
	if cfg.input == "" {
		fmt.Fprintln(stderr, "no input: please use -input to specify a YAML syntax tree")
		return 2
	}
	ok, err := checkFile(cfg, stdout, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "%+v\n", err)
		return 2
	}
	if cfg.watch {
		if err := watchFile(ctx, cfg, stdout, stderr); err != nil {
			fmt.Fprintf(stderr, "%+v\n", err)
			return 2
		}
		return 0
	}
	if !ok {
		return 1
	}
	return 0
}

func main() {
	flag.Parse()
	cfg := &config{
		input:    *input,
		dump:     *dump,
		watch:    *watch,
		excluded: *builtinsOff,
		opts: []checker.Option{
			checker.WithSplitPostponedMismatch(*splitPostponed),
			checker.WithMaxDepth(*maxDepth),
		},
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, cfg, os.Stdout, os.Stderr)
	stop()
	glog.Flush()
	os.Exit(code)
}
