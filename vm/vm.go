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
	"github.com/pkg/errors"
)

// Program represents an Intcode VM instance: its memory, instruction pointer
// and relative base.
type Program struct {
	mem      Image
	pc       Cell
	base     Cell
	insCount int64
	trace    TraceFunc
}

// Option interface
type Option func(*Program) error

// TraceFunc is the function prototype for instruction tracers. It is called
// before executing each instruction, with the live memory of the program, the
// address of the instruction and the current relative base. Tracers must not
// modify mem.
type TraceFunc func(mem Image, pc, base Cell)

// MemSize preallocates room for size cells of memory. This is only a hint:
// memory grows as needed regardless of this setting.
func MemSize(size int) Option {
	return func(p *Program) error {
		if size < 0 || Cell(size) > MaxAddress+1 {
			return errors.Errorf("invalid memory size %d", size)
		}
		if size > cap(p.mem) {
			t := make(Image, len(p.mem), size)
			copy(t, p.mem)
			p.mem = t
		}
		return nil
	}
}

// Trace sets the instruction tracer. A nil TraceFunc disables tracing. See
// asm.Tracer for a tracer that disassembles each instruction to an
// io.Writer.
func Trace(fn TraceFunc) Option {
	return func(p *Program) error {
		p.trace = fn
		return nil
	}
}

// SetOptions sets the provided options.
func (p *Program) SetOptions(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(p); err != nil {
			return err
		}
	}
	return nil
}

// New creates a new Program with a copy of the given memory image. The
// instruction pointer and relative base start at 0.
//
// Options will be set by calling SetOptions.
func New(img Image, opts ...Option) (*Program, error) {
	p := &Program{
		mem: img.Clone(),
	}
	if p.mem == nil {
		p.mem = Image{}
	}
	if err := p.SetOptions(opts...); err != nil {
		return nil, err
	}
	return p, nil
}

// Peek returns the value at address addr.
func (p *Program) Peek(addr Cell) (Cell, error) {
	v, err := p.mem.Load(addr)
	return v, errors.Wrap(err, "Peek")
}

// Poke sets the value at address addr. This is typically used to patch a
// program before running it.
func (p *Program) Poke(addr, v Cell) error {
	return errors.Wrap(p.mem.Store(addr, v), "Poke")
}

// PC returns the instruction pointer.
func (p *Program) PC() Cell { return p.pc }

// Base returns the relative base.
func (p *Program) Base() Cell { return p.base }

// Memory returns a copy of the program memory.
func (p *Program) Memory() Image { return p.mem.Clone() }

// InstructionCount returns the number of instructions executed so far.
func (p *Program) InstructionCount() int64 {
	return p.insCount
}

// Clone returns an independent copy of p. Running either program has no
// effect on the other. The tracer, if any, is shared.
func (p *Program) Clone() *Program {
	c := *p
	c.mem = p.mem.Clone()
	return &c
}
