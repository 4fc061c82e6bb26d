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

package asm

import (
	"fmt"
	"io"
	"strconv"

	"github.com/db47h/intcode/internal/iox"
	"github.com/db47h/intcode/vm"
)

var aliases = map[string]vm.Opcode{
	"jt":   vm.OpJnz,
	"jf":   vm.OpJz,
	"rb":   vm.OpArb,
	"halt": vm.OpHalt,
}

var opcodeIndex = make(map[string]vm.Opcode)

func init() {
	for op := vm.Opcode(0); op < 100; op++ {
		if op.Valid() {
			opcodeIndex[op.String()] = op
		}
	}
	for n, op := range aliases {
		opcodeIndex[n] = op
	}
}

var modePrefix = [...]string{
	vm.ModePosition:  "",
	vm.ModeImmediate: "#",
	vm.ModeRelative:  "@",
}

// Assemble compiles assembly read from the supplied io.Reader and returns the
// resulting image and error if any.
//
// Then name parameter is used only in error messages to name the source of the
// error. If the io.Reader is a file, name should be the file name.
//
// The returned error, if not nil, can safely be cast to an ErrAsm value that
// will contain up to 10 entries.
func Assemble(name string, r io.Reader) (img vm.Image, err error) {
	p := newParser()
	img, err = p.Parse(name, r)
	if err != nil {
		return nil, err
	}
	return img, nil
}

// Disassemble writes a disassembly of the instruction in the given image at
// position pc to the specified io.Writer and returns the position of the next
// instruction and any write error.
//
// Words that do not decode to a valid instruction are written as a .dat
// directive.
func Disassemble(img vm.Image, pc int, w io.Writer) (next int, err error) {
	ew := iox.NewErrWriter(w)
	ins, err := vm.Decode(img[pc])
	if err != nil {
		io.WriteString(ew, ".dat ")
		io.WriteString(ew, strconv.FormatInt(int64(img[pc]), 10))
		return pc + 1, ew.Err
	}
	io.WriteString(ew, ins.Op.String())
	for n := 0; n < ins.Op.Operands(); n++ {
		ew.Write([]byte{' '})
		a := pc + 1 + n
		if a >= len(img) {
			io.WriteString(ew, "???")
			continue
		}
		io.WriteString(ew, modePrefix[ins.Modes[n]])
		io.WriteString(ew, strconv.FormatInt(int64(img[a]), 10))
	}
	return pc + ins.Size(), ew.Err
}

// DisassembleAll writes a disassembly of all cells in the given image to the
// specified io.Writer. The org argument specifies the real address of the
// first cell (img[0]). It will return any write error.
func DisassembleAll(img vm.Image, org int, w io.Writer) error {
	ew := iox.NewErrWriter(w)
	for pc := 0; pc < len(img); {
		fmt.Fprintf(ew, "% 10d\t", org+pc)
		pc, _ = Disassemble(img, pc, ew)
		ew.Write([]byte{'\n'})
		if ew.Err != nil {
			return ew.Err
		}
	}
	return nil
}

// Tracer returns a vm.TraceFunc that writes the address, relative base and
// disassembly of every executed instruction to w. Write errors are ignored.
func Tracer(w io.Writer) vm.TraceFunc {
	return func(mem vm.Image, pc, base vm.Cell) {
		ew := iox.NewErrWriter(w)
		fmt.Fprintf(ew, "% 10d\t[%d]\t", pc, base)
		Disassemble(mem, int(pc), ew)
		ew.Write([]byte{'\n'})
	}
}
