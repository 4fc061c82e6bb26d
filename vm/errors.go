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

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrInputExhausted is returned by Run when the program requests more input
// values than were supplied.
var ErrInputExhausted = errors.New("insufficient number of inputs provided")

// OpcodeError is returned when the VM fetches an instruction word with an
// unknown opcode.
type OpcodeError struct {
	Word Cell
}

func (e *OpcodeError) Error() string {
	return fmt.Sprintf("invalid opcode %d in instruction %d", e.Word%100, e.Word)
}

// ModeError is returned for addressing mode digits other than 0, 1 or 2, and
// when an immediate mode operand is used as a write target.
type ModeError struct {
	Mode    Mode
	Operand int // zero based operand index
	Write   bool
}

func (e *ModeError) Error() string {
	if e.Write && e.Mode == ModeImmediate {
		return fmt.Sprintf("operand %d: immediate mode used as write target", e.Operand+1)
	}
	return fmt.Sprintf("operand %d: invalid addressing mode %d", e.Operand+1, int(e.Mode))
}

// AddressError is returned when the VM or a caller tries to access memory at
// a negative address, or to store a value above MaxAddress.
type AddressError struct {
	Addr Cell
}

func (e *AddressError) Error() string {
	return fmt.Sprintf("invalid memory address %d", e.Addr)
}

// ParseError reports a malformed token in a textual memory image.
type ParseError struct {
	Token string
	Index int // zero based token index
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("token %d: invalid value %q: %v", e.Index, e.Token, e.Err)
}
