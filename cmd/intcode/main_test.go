// This file is part of intcode - https://github.com/db47h/intcode
//
// Copyright 2019 Denis Bernard <db047h@gmail.com>
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

package main

import (
	"flag"
	"io"
	"strings"
	"testing"

	"github.com/db47h/intcode/vm"
	"github.com/google/go-cmp/cmp"
)

func TestFlagValues(t *testing.T) {
	var (
		in    cellList
		pokes pokeList
		files fileList
	)
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.Var(&in, "in", "")
	fs.Var(&pokes, "poke", "")
	fs.Var(&files, "with", "")
	err := fs.Parse([]string{"-in", "1, -2", "-poke", "1=12", "-in", "3", "-poke", "0x10 = -1", "-with", "a.txt", "-with", "b.txt"})
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(cellList{1, -2, 3}, in); diff != "" {
		t.Errorf("inputs mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(pokeList{{1, 12}, {16, -1}}, pokes, cmp.AllowUnexported(poke{})); diff != "" {
		t.Errorf("pokes mismatch (-want +got):\n%s", diff)
	}
	if s := pokes.String(); s != "1=12,16=-1" {
		t.Errorf("Expected 1=12,16=-1, got %q", s)
	}
	if s := files.String(); s != "a.txt,b.txt" {
		t.Errorf("Expected a.txt,b.txt, got %q", s)
	}
	if s := in.String(); s != "1,-2,3" {
		t.Errorf("Expected 1,-2,3, got %q", s)
	}

	for _, args := range [][]string{{"-in", "1,x"}, {"-poke", "12"}, {"-poke", "a=1"}, {"-poke", "1=b"}} {
		fs := flag.NewFlagSet("test", flag.ContinueOnError)
		fs.SetOutput(io.Discard)
		fs.Var(new(cellList), "in", "")
		fs.Var(new(pokeList), "poke", "")
		if err = fs.Parse(args); err == nil {
			t.Errorf("%v: Unexpected nil error", args)
		}
	}
}

func TestRunChain(t *testing.T) {
	img, err := vm.ParseString("3,15,3,16,1002,16,10,16,1,16,15,15,4,15,99,0,0")
	if err != nil {
		t.Fatal(err)
	}
	var sb strings.Builder
	if err = runChain(img, []vm.Cell{0, 1, 2, 3, 4}, &sb); err != nil {
		t.Fatalf("%+v", err)
	}
	if got := sb.String(); got != "43210 [4 3 2 1 0]\n" {
		t.Errorf("unexpected output %q", got)
	}
}
