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

package asm_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/db47h/intcode/asm"
	"github.com/db47h/intcode/vm"
	"github.com/google/go-cmp/cmp"
)

func TestAssemble(t *testing.T) {
	tests := []struct {
		name string
		code string
		want vm.Image
	}{
		{"modes", "add 1 #2 @3", vm.Image{21001, 1, 2, 3}},
		{"io", "in @-1 out #42 hlt", vm.Image{203, -1, 104, 42, 99}},
		{"aliases", "jt #1 #0 jf 1 @2 rb #7 halt", vm.Image{1105, 1, 0, 2006, 1, 2, 109, 7, 99}},
		{"comments", "(no spaces)mul ( spaced ) 4 5 6", vm.Image{2, 4, 5, 6}},
		{"labels", "jz #0 #end :v .dat 7 :end out v", vm.Image{1106, 0, 4, 7, 4, 3}},
		{"org", ".org 3 hlt", vm.Image{0, 0, 0, 99}},
		{"chars", "out #'a' out #'\\n' .dat 0x10", vm.Image{104, 97, 104, 10, 16}},
		{"data list", ":d .dat 1 -2 'c' d e :e hlt .dat 7 .org 9 .dat 8 9", vm.Image{1, -2, 99, 0, 5, 99, 7, 0, 0, 8, 9}},
	}
	for _, test := range tests {
		img, err := asm.Assemble(test.name, strings.NewReader(test.code))
		if err != nil {
			t.Errorf("%s: %v", test.name, err)
			continue
		}
		if diff := cmp.Diff(test.want, img); diff != "" {
			t.Errorf("%s: image mismatch (-want +got):\n%s", test.name, diff)
		}
	}
}

// check some errors. We're checking that they point at the correct line.
func TestAssemble_errors(t *testing.T) {
	code := `
	add 1 2 #3
	foo
	jnz #1 #nowhere
	.org -1
	:1abc
	.bogus
	out
	hlt`
	expected := []struct {
		line int
		msg  string
	}{
		{2, "immediate operand used as write target: #3"},
		{3, "unknown mnemonic: foo"},
		{5, ".org: invalid address -1"},
		{6, "invalid label name 1abc"},
		{7, "unknown directive: .bogus"},
		{9, "missing operand for out before hlt"},
		{4, "undefined label nowhere"},
	}
	_, err := asm.Assemble("test_errors", strings.NewReader(code))
	if err == nil {
		t.Fatal("Unexpected nil error")
	}
	errs := err.(asm.ErrAsm)
	if len(errs) != len(expected) {
		t.Fatalf("Expected %d errors, got %d:\n%v", len(expected), len(errs), err)
	}
	for i, e := range errs {
		if e.Pos.Line != expected[i].line || e.Msg != expected[i].msg {
			t.Errorf("Expected error %q on line %d, got %q on line %d", expected[i].msg, expected[i].line, e.Msg, e.Pos.Line)
		}
		if e.Pos.Filename != "test_errors" {
			t.Errorf("Bad file name %q", e.Pos.Filename)
		}
	}

	for _, code := range []string{"add 1 2", "hlt .dat"} {
		_, err = asm.Assemble("eof", strings.NewReader(code))
		if err == nil || !strings.HasSuffix(err.Error(), "unexpected end of input") {
			t.Errorf("%s: Expected unexpected end of input error, got %v", code, err)
		}
	}
}

func TestDisassemble_roundTrip(t *testing.T) {
	code := `
	in 100
	:loop
		lt 100 #10 101
		jz 101 #done
		mul 100 #2 @100
		arb #1
		add @0 100 100
		jnz #1 #loop
	:done
		out 100
		hlt`
	img, err := asm.Assemble("roundtrip", strings.NewReader(code))
	if err != nil {
		t.Fatal(err)
	}
	var b bytes.Buffer
	for pc := 0; pc < len(img); {
		pc, err = asm.Disassemble(img, pc, &b)
		if err != nil {
			t.Fatal(err)
		}
		b.WriteByte('\n')
	}
	img2, err := asm.Assemble("disassembly", &b)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(img, img2); diff != "" {
		t.Errorf("image mismatch (-want +got):\n%s", diff)
	}
}

func TestDisassemble_data(t *testing.T) {
	var b bytes.Buffer
	img := vm.Image{-3, 1234, 30001, 3}
	for pc := 0; pc < len(img); {
		pc, _ = asm.Disassemble(img, pc, &b)
		b.WriteByte('|')
	}
	want := ".dat -3|.dat 1234|.dat 30001|in ???|"
	if b.String() != want {
		t.Errorf("Expected %q, got %q", want, b.String())
	}
}

func TestTracer(t *testing.T) {
	img, err := asm.Assemble("trace", strings.NewReader("add #2 #3 7 out 7 hlt"))
	if err != nil {
		t.Fatal(err)
	}
	var b bytes.Buffer
	p, err := vm.New(img, vm.Trace(asm.Tracer(&b)))
	if err != nil {
		t.Fatal(err)
	}
	out, err := p.Run()
	if err != nil {
		t.Fatalf("%+v", err)
	}
	if diff := cmp.Diff([]vm.Cell{5}, out); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}
	want := "         0\t[0]\tadd #2 #3 7\n" +
		"         4\t[0]\tout 7\n" +
		"         6\t[0]\thlt\n"
	if b.String() != want {
		t.Errorf("Expected trace:\n%s\nGot:\n%s", want, b.String())
	}
}
