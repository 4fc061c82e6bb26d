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

package vm

import "strconv"

// Opcode is the operation selected by the two low decimal digits of an
// instruction word.
type Opcode Cell

// Intcode opcodes.
const (
	OpAdd  Opcode = 1  // add a b dst: dst = a + b
	OpMul  Opcode = 2  // mul a b dst: dst = a * b
	OpIn   Opcode = 3  // in dst: dst = next input value
	OpOut  Opcode = 4  // out a: output a
	OpJnz  Opcode = 5  // jnz a target: jump to target if a != 0
	OpJz   Opcode = 6  // jz a target: jump to target if a == 0
	OpLt   Opcode = 7  // lt a b dst: dst = a < b ? 1 : 0
	OpEq   Opcode = 8  // eq a b dst: dst = a == b ? 1 : 0
	OpArb  Opcode = 9  // arb a: relative base += a
	OpHalt Opcode = 99 // hlt
)

// Mode is an operand addressing mode.
type Mode int

// Addressing modes.
const (
	ModePosition  Mode = iota // the operand is an address
	ModeImmediate             // the operand is a value; invalid for write targets
	ModeRelative              // the operand is an address relative to the relative base
)

// MaxOperands is the maximum number of operands of any instruction.
const MaxOperands = 3

type opInfo struct {
	name     string
	operands int
	dst      int // index of the write target operand, -1 if none
}

var opcodes = [...]opInfo{
	OpAdd:  {"add", 3, 2},
	OpMul:  {"mul", 3, 2},
	OpIn:   {"in", 1, 0},
	OpOut:  {"out", 1, -1},
	OpJnz:  {"jnz", 2, -1},
	OpJz:   {"jz", 2, -1},
	OpLt:   {"lt", 3, 2},
	OpEq:   {"eq", 3, 2},
	OpArb:  {"arb", 1, -1},
	OpHalt: {"hlt", 0, -1},
}

// Valid returns true if op is a known opcode.
func (op Opcode) Valid() bool {
	return op > 0 && int(op) < len(opcodes) && opcodes[op].name != ""
}

// Operands returns the number of operands expected by op.
func (op Opcode) Operands() int {
	if !op.Valid() {
		return 0
	}
	return opcodes[op].operands
}

// Dst returns the index of the operand used as a write target by op, or -1.
func (op Opcode) Dst() int {
	if !op.Valid() {
		return -1
	}
	return opcodes[op].dst
}

// String returns the assembler mnemonic of op.
func (op Opcode) String() string {
	if !op.Valid() {
		return "op(" + strconv.Itoa(int(op)) + ")"
	}
	return opcodes[op].name
}

// Instruction is a decoded instruction word.
type Instruction struct {
	Op    Opcode
	Modes [MaxOperands]Mode
}

// Size returns the size in cells of the instruction, including its operands.
func (ins Instruction) Size() int {
	return ins.Op.Operands() + 1
}

// Decode decodes an instruction word. Mode digits beyond the operand count of
// the opcode are ignored.
func Decode(word Cell) (ins Instruction, err error) {
	if word < 0 {
		return ins, &OpcodeError{word}
	}
	op := Opcode(word % 100)
	if !op.Valid() {
		return ins, &OpcodeError{word}
	}
	ins.Op = op
	m := word / 100
	for n := 0; n < opcodes[op].operands; n++ {
		mode := Mode(m % 10)
		if mode > ModeRelative {
			return Instruction{}, &ModeError{Mode: mode, Operand: n}
		}
		ins.Modes[n] = mode
		m /= 10
	}
	return ins, nil
}

// Encode returns the instruction word for ins. It is the inverse of Decode.
func Encode(ins Instruction) Cell {
	w := Cell(ins.Op)
	f := Cell(100)
	for n := 0; n < ins.Op.Operands(); n++ {
		w += Cell(ins.Modes[n]) * f
		f *= 10
	}
	return w
}
