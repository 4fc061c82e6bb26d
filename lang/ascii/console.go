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

package ascii

import (
	"bufio"
	"io"

	"github.com/db47h/intcode/internal/iox"
	"github.com/db47h/intcode/vm"
	"github.com/pkg/errors"
)

// control characters handled in raw mode.
const (
	ctrlC     = 3
	ctrlD     = 4
	backspace = 8
	del       = 127
)

// Console runs a text driven program interactively. Text output goes to an
// io.Writer, and a line of input is read from an io.Reader whenever the program
// needs input. Non text output values are collected and can be retrieved with
// Results.
type Console struct {
	p       *vm.Program
	r       *bufio.Reader
	w       *iox.ErrWriter
	flush   func() error
	raw     bool
	in      vm.Values
	line    []byte
	results []vm.Cell
}

// ConsoleOption configures a Console.
type ConsoleOption func(*Console)

// RawInput tells the console that its input comes from a terminal in raw
// mode. The console then echoes input characters and handles backspace. Both
// CTRL-C and CTRL-D on an empty line end the session.
func RawInput(raw bool) ConsoleOption {
	return func(c *Console) {
		c.raw = raw
	}
}

// NewConsole returns a console that runs p with the given input and output.
// If w has a Flush method, it is called before waiting for input.
func NewConsole(p *vm.Program, r io.Reader, w io.Writer, opts ...ConsoleOption) *Console {
	c := &Console{
		p: p,
		r: bufio.NewReader(r),
		w: iox.NewErrWriter(w),
	}
	if f, ok := w.(interface{ Flush() error }); ok {
		c.flush = f.Flush
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Results returns the non text values output by the program so far.
func (c *Console) Results() []vm.Cell {
	return c.results
}

// Run runs the program until it halts or the console input is exhausted, in
// which case it returns io.EOF. Input read but not consumed by the program is
// kept for the next call to Run.
func (c *Console) Run() error {
	var b [1]byte
	for {
		o, err := c.p.Resume(&c.in)
		if err != nil {
			c.doFlush()
			return err
		}
		switch o.State {
		case vm.Halted:
			return c.doFlush()
		case vm.Output:
			if !IsText(o.Value) {
				c.results = append(c.results, o.Value)
				continue
			}
			b[0] = byte(o.Value)
			if _, err = c.w.Write(b[:]); err != nil {
				return err
			}
		case vm.NeedsInput:
			if err = c.doFlush(); err != nil {
				return err
			}
			if err = c.readLine(); err != nil {
				return err
			}
		}
	}
}

func (c *Console) doFlush() error {
	if c.flush != nil && c.w.Err == nil {
		if err := c.flush(); err != nil {
			c.w.Err = errors.Wrap(err, "flush failed")
		}
	}
	return c.w.Err
}

func (c *Console) push(line []byte) {
	for _, ch := range line {
		c.in.Push(vm.Cell(ch))
	}
	c.in.Push('\n')
}

func (c *Console) readLine() error {
	if c.raw {
		return c.readRaw()
	}
	line, err := c.r.ReadBytes('\n')
	if len(line) > 0 && line[len(line)-1] == '\n' {
		line = line[:len(line)-1]
	} else if err == io.EOF && len(line) == 0 {
		return io.EOF
	}
	if err != nil && err != io.EOF {
		return errors.Wrap(err, "read failed")
	}
	c.push(line)
	return nil
}

// readRaw reads a line one character at a time, doing its own echo and line
// editing.
func (c *Console) readRaw() error {
	echo := func(s string) error {
		c.w.WriteString(s)
		return c.doFlush()
	}
	for {
		ch, err := c.r.ReadByte()
		if err == io.EOF && len(c.line) > 0 {
			ch, err = '\n', nil
		}
		if err != nil {
			if err == io.EOF {
				return err
			}
			return errors.Wrap(err, "read failed")
		}
		switch ch {
		case ctrlC, ctrlD:
			if len(c.line) == 0 {
				return io.EOF
			}
		case backspace, del:
			if len(c.line) > 0 {
				c.line = c.line[:len(c.line)-1]
				if err = echo("\b \b"); err != nil {
					return err
				}
			}
		case '\r', '\n':
			c.push(c.line)
			c.line = c.line[:0]
			return echo("\n")
		default:
			c.line = append(c.line, ch)
			if err = echo(string([]byte{ch})); err != nil {
				return err
			}
		}
	}
}
