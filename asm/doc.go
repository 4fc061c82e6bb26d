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

// Package asm provides utility functions to assemble and disassemble Intcode
// programs.
//
// Supported assembler mnemonics:
//
//	Operands a and b are read operands, dst is a write operand.
//
//	opcode	asm	alias	operands	description
//	------	---	-----	--------	----------------------------------------------
//	1	add		a b dst		dst = a + b
//	2	mul		a b dst		dst = a * b
//	3	in		dst		read an input value and store it in dst
//	4	out		a		output a
//	5	jnz	jt	a target	jump to target if a != 0
//	6	jz	jf	a target	jump to target if a == 0
//	7	lt		a b dst		dst = 1 if a < b, 0 otherwise
//	8	eq		a b dst		dst = 1 if a == b, 0 otherwise
//	9	arb	rb	a		add a to the relative base
//	99	hlt	halt			halt the program
//
// Operands:
//
// The addressing mode of an operand is selected with a prefix:
//
//	42	position mode: the operand is the value stored at address 42
//	#42	immediate mode: the operand is the value 42
//	@42	relative mode: the operand is the value stored at relative base + 42
//
// Immediate mode cannot be used for write operands. Any integer accepted by
// strconv.ParseInt with base 0 and Go character literals ('a', '\n') can be used
// as values.
//
// Comments:
//
// Comments are placed between parentheses:
//
//	( this is a valid comment )
//	(so is this one)
//
// Comments cannot be nested.
//
// Labels:
//
// Labels are defined by prefixing them with a colon (:) and can be used in
// place of any value. Forward references are ok:
//
//		jnz #1 #start		( jump to start: #start is the address of start )
//	:counter .dat 0
//	:start	add counter #1 counter	( counter is the cell at the address of counter )
//		out counter
//		hlt
//
// Label names cannot start with a digit, or any of the characters # @ : . - + '
//
// Several instructions may appear on the same line.
//
// Assembler directives:
//
//	.org <value>
//
// Will place the next instruction at the address specified by the given integer
// literal.
//
//	.dat <value> [<value>...]
//
// Will compile the specified integer values, character literals or label
// addresses as-is. The list ends at the next label definition, directive or
// mnemonic. This is primarily used for data storage:
//
//	:table	.dat 65 'B'
//		.dat end
//
// The cells at addresses table+0 and table+1 will contain 65 and 66
// respectively, and table+2 the address of label end.
package asm
