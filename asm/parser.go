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
	"bytes"
	"io"
	"sort"
	"strconv"
	"text/scanner"
	"unicode"

	"github.com/db47h/intcode/vm"
)

const maxErrors = 10

// ErrorEntry is an assembler error message with its position in the source.
type ErrorEntry struct {
	Pos scanner.Position
	Msg string
}

// ErrAsm is the error type returned by Assemble. It holds up to 10 errors.
type ErrAsm []ErrorEntry

func (e ErrAsm) Error() string {
	var b bytes.Buffer
	for i, err := range e {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(err.Pos.String())
		b.WriteString(": ")
		b.WriteString(err.Msg)
	}
	return b.String()
}

func isIdentRune(ch rune, i int) bool {
	return ch != '(' && ch != ')' &&
		(unicode.IsLetter(ch) || unicode.IsSymbol(ch) || unicode.IsPunct(ch) || unicode.IsDigit(ch))
}

type labelSite struct {
	pos     scanner.Position
	address int
}

type label struct {
	labelSite
	uses []labelSite
}

// parser states
const (
	stateAny     = iota // accept anything
	stateOperand        // need an instruction operand
	stateOrg            // need an integer (.org argument)
	stateData           // need an integer or label (.dat argument)
	stateDataList       // more .dat arguments, or anything else
)

type parser struct {
	i      vm.Image
	pc     int
	end    int
	s      scanner.Scanner
	labels map[string]*label
	errs   ErrAsm
	state  int
	ins    vm.Instruction
	insPC  int
	opnd   int
}

func newParser() *parser {
	p := new(parser)
	p.labels = make(map[string]*label)
	return p
}

func (p *parser) error(pos scanner.Position, msg string) {
	if len(p.errs) < maxErrors {
		p.errs = append(p.errs, ErrorEntry{pos, msg})
	}
}

func (p *parser) write(v vm.Cell) {
	for p.pc >= len(p.i) {
		p.i = append(p.i, make(vm.Image, 1024)...)
	}
	p.i[p.pc] = v
	p.pc++
	if p.pc > p.end {
		p.end = p.pc
	}
}

func (p *parser) useLabel(name string) {
	lbl := p.labels[name]
	if lbl == nil {
		lbl = &label{
			// use current position as valid temp position
			labelSite{p.s.Position, -1},
			nil,
		}
		p.labels[name] = lbl
	}
	lbl.uses = append(lbl.uses, labelSite{p.s.Position, p.pc})
}

func (p *parser) defineLabel(name string) {
	if len(name) == 0 {
		p.error(p.s.Position, "empty label name")
		return
	}
	if !isLabelName(name) {
		p.error(p.s.Position, "invalid label name "+name)
		return
	}
	if l, ok := p.labels[name]; ok {
		if l.address != -1 {
			p.error(p.s.Position, "label redefinition: "+name+", previous definition here: "+l.pos.String())
			return
		}
		l.address = p.pc
		l.pos = p.s.Position
		return
	}
	p.labels[name] = &label{labelSite{p.s.Position, p.pc}, nil}
}

func isLabelName(s string) bool {
	c := rune(s[0])
	return c != '#' && c != '@' && c != ':' && c != '.' && c != '-' && c != '+' && c != '\'' && !unicode.IsDigit(c)
}

// value converts s to a number. Labels are written as a placeholder and
// resolved once their address is known.
func (p *parser) value(s string) {
	if n, err := strconv.ParseInt(s, 0, 64); err == nil {
		p.write(vm.Cell(n))
		return
	}
	// char literal
	if len(s) > 2 && s[0] == '\'' && s[len(s)-1] == '\'' {
		r, _, tail, err := strconv.UnquoteChar(s[1:len(s)-1], '\'')
		if err != nil || tail != "" {
			p.error(p.s.Position, "invalid char literal "+s)
		}
		p.write(vm.Cell(r))
		return
	}
	if len(s) == 0 || !isLabelName(s) {
		p.error(p.s.Position, "invalid value "+strconv.Quote(s))
		p.write(0)
		return
	}
	p.useLabel(s)
	p.write(0)
}

func (p *parser) operand(s string) {
	mode := vm.ModePosition
	if len(s) > 0 {
		switch s[0] {
		case '#':
			mode, s = vm.ModeImmediate, s[1:]
		case '@':
			mode, s = vm.ModeRelative, s[1:]
		}
	}
	if mode == vm.ModeImmediate && p.opnd == p.ins.Op.Dst() {
		p.error(p.s.Position, "immediate operand used as write target: #"+s)
	}
	p.ins.Modes[p.opnd] = mode
	p.value(s)
	p.opnd++
	if p.opnd == p.ins.Op.Operands() {
		p.i[p.insPC] = vm.Encode(p.ins)
		p.state = stateAny
	}
}

func (p *parser) instruction(op vm.Opcode) {
	p.ins = vm.Instruction{Op: op}
	p.insPC = p.pc
	p.opnd = 0
	p.write(vm.Encode(p.ins))
	if op.Operands() > 0 {
		p.state = stateOperand
	}
}

// Parse does the parsing and compiling.
func (p *parser) Parse(name string, r io.Reader) (vm.Image, error) {
	p.s.Init(r)
	p.s.Error = func(s *scanner.Scanner, msg string) {
		pos := s.Position
		if !pos.IsValid() {
			pos = s.Pos()
		}
		p.error(pos, msg)
	}
	p.s.IsIdentRune = isIdentRune
	p.s.Mode = scanner.ScanIdents
	p.s.Filename = name

	for tok := p.s.Scan(); tok != scanner.EOF; tok = p.s.Scan() {
		s := p.s.TokenText()
		if s == "(" {
			// skip comments
			for tok != scanner.EOF && p.s.TokenText() != ")" {
				tok = p.s.Scan()
			}
			continue
		}
		if tok != scanner.Ident {
			p.error(p.s.Position, "unexpected character "+strconv.QuoteRune(tok))
			continue
		}

		switch p.state {
		case stateOperand:
			if s[0] == ':' || s[0] == '.' || opcodeIndex[s] != 0 {
				p.error(p.s.Position, "missing operand for "+p.ins.Op.String()+" before "+s)
				p.state = stateAny
				break
			}
			p.operand(s)
			continue
		case stateOrg:
			n, err := strconv.ParseInt(s, 0, 32)
			if err != nil || n < 0 {
				p.error(p.s.Position, ".org: invalid address "+s)
			} else {
				p.pc = int(n)
			}
			p.state = stateAny
			continue
		case stateData:
			p.value(s)
			p.state = stateDataList
			continue
		case stateDataList:
			p.state = stateAny
			if _, ok := opcodeIndex[s]; ok || s[0] == ':' || s[0] == '.' {
				break
			}
			p.value(s)
			p.state = stateDataList
			continue
		}

		switch s[0] {
		case ':':
			p.defineLabel(s[1:])
		case '.':
			switch s {
			case ".org":
				p.state = stateOrg
			case ".dat":
				p.state = stateData
			default:
				p.error(p.s.Position, "unknown directive: "+s)
			}
		default:
			op, ok := opcodeIndex[s]
			if !ok {
				p.error(p.s.Position, "unknown mnemonic: "+s)
				break
			}
			p.instruction(op)
		}
	}

	if p.state != stateAny && p.state != stateDataList {
		p.error(p.s.Pos(), "unexpected end of input")
	}

	// write labels
	names := make([]string, 0, len(p.labels))
	for n := range p.labels {
		names = append(names, n)
	}
	sort.Strings(names)
	for _, n := range names {
		l := p.labels[n]
		if l.address == -1 {
			p.error(l.uses[0].pos, "undefined label "+n)
			continue
		}
		for _, u := range l.uses {
			p.i[u.address] = vm.Cell(l.address)
		}
	}

	if len(p.errs) > 0 {
		return nil, p.errs
	}
	return p.i[:p.end], nil
}
