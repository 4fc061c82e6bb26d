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
	"strconv"

	"github.com/pkg/errors"
)

// State is the reason why Resume returned control to its caller.
type State int

// Execution states.
const (
	Halted     State = iota // the program executed a HALT instruction
	NeedsInput              // the program is parked on an IN instruction and no input was available
	Output                  // the program produced an output value
)

var stateNames = [...]string{"halted", "needs input", "output"}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "state(" + strconv.Itoa(int(s)) + ")"
	}
	return stateNames[s]
}

// Outcome is the result of a call to Resume. Value is only meaningful if
// State is Output.
type Outcome struct {
	State State
	Value Cell
}

func (o Outcome) String() string {
	if o.State == Output {
		return "output(" + strconv.FormatInt(int64(o.Value), 10) + ")"
	}
	return o.State.String()
}

// fault aborts execution of the current instruction. It is recovered by
// Resume and never escapes the package.
type fault struct {
	err error
}

func (p *Program) load(addr Cell) Cell {
	v, err := p.mem.Load(addr)
	if err != nil {
		panic(fault{err})
	}
	return v
}

func (p *Program) store(addr, v Cell) {
	if err := p.mem.Store(addr, v); err != nil {
		panic(fault{err})
	}
}

// arg returns the value of operand n of the instruction at pc.
func (p *Program) arg(ins *Instruction, n int) Cell {
	v := p.load(p.pc + 1 + Cell(n))
	switch ins.Modes[n] {
	case ModePosition:
		return p.load(v)
	case ModeImmediate:
		return v
	case ModeRelative:
		return p.load(p.base + v)
	}
	panic(fault{&ModeError{Mode: ins.Modes[n], Operand: n}})
}

// dst returns the address targeted by the write operand n of the instruction
// at pc.
func (p *Program) dst(ins *Instruction, n int) Cell {
	v := p.load(p.pc + 1 + Cell(n))
	switch ins.Modes[n] {
	case ModePosition:
		return v
	case ModeRelative:
		return p.base + v
	}
	panic(fault{&ModeError{Mode: ins.Modes[n], Operand: n, Write: true}})
}

func bool2Cell(b bool) Cell {
	if b {
		return 1
	}
	return 0
}

// Resume runs the program until it halts, produces an output value, or needs
// an input value that in cannot supply. A nil in is the same as None.
//
// Each IN instruction takes at most one value from in, and values are never
// taken past the next suspension point: values not consumed by this call
// remain available in in.
//
// When returning NeedsInput, the PC points to the IN instruction itself and
// the program state is unchanged. Calling Resume again, with or without
// input, is safe. When returning Output, the PC points past the OUT
// instruction. When returning Halted, the PC points to the HALT instruction
// and further calls to Resume will return Halted again.
//
// If an error occurs, the PC will point to the instruction that triggered the
// error, and the returned error can be unwrapped with errors.Cause to one of
// *OpcodeError, *ModeError or *AddressError. The program must not be resumed
// after an error.
func (p *Program) Resume(in Input) (o Outcome, err error) {
	defer func() {
		if e := recover(); e != nil {
			f, ok := e.(fault)
			if !ok {
				panic(e)
			}
			err = errors.Wrapf(f.err, "fault @pc=%d, base=%d", p.pc, p.base)
		}
	}()
	if in == nil {
		in = None
	}
	for {
		ins, e := Decode(p.load(p.pc))
		if e != nil {
			panic(fault{e})
		}
		if p.trace != nil {
			p.trace(p.mem, p.pc, p.base)
		}
		switch ins.Op {
		case OpAdd:
			p.store(p.dst(&ins, 2), p.arg(&ins, 0)+p.arg(&ins, 1))
			p.pc += 4
		case OpMul:
			p.store(p.dst(&ins, 2), p.arg(&ins, 0)*p.arg(&ins, 1))
			p.pc += 4
		case OpIn:
			addr := p.dst(&ins, 0)
			v, ok := in.Next()
			if !ok {
				// stay on this instruction so that the next call replays it.
				return Outcome{State: NeedsInput}, nil
			}
			p.store(addr, v)
			p.pc += 2
		case OpOut:
			v := p.arg(&ins, 0)
			p.pc += 2
			p.insCount++
			return Outcome{State: Output, Value: v}, nil
		case OpJnz:
			if p.arg(&ins, 0) != 0 {
				p.pc = p.arg(&ins, 1)
			} else {
				p.pc += 3
			}
		case OpJz:
			if p.arg(&ins, 0) == 0 {
				p.pc = p.arg(&ins, 1)
			} else {
				p.pc += 3
			}
		case OpLt:
			p.store(p.dst(&ins, 2), bool2Cell(p.arg(&ins, 0) < p.arg(&ins, 1)))
			p.pc += 4
		case OpEq:
			p.store(p.dst(&ins, 2), bool2Cell(p.arg(&ins, 0) == p.arg(&ins, 1)))
			p.pc += 4
		case OpArb:
			p.base += p.arg(&ins, 0)
			p.pc += 2
		case OpHalt:
			return Outcome{State: Halted}, nil
		}
		p.insCount++
	}
}
