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
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/db47h/intcode/asm"
	"github.com/db47h/intcode/lang/ascii"
	"github.com/db47h/intcode/network"
	"github.com/db47h/intcode/vm"
	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
)

type fileList []string

func (f *fileList) String() string     { return strings.Join(*f, ",") }
func (f *fileList) Set(s string) error { *f = append(*f, s); return nil }
func (f *fileList) Get() interface{}   { return *f }

// cellList accumulates comma separated values.
type cellList []vm.Cell

func (l *cellList) String() string { return vm.Image(*l).String() }
func (l *cellList) Set(s string) error {
	img, err := vm.ParseString(s)
	if err != nil {
		return err
	}
	*l = append(*l, img...)
	return nil
}
func (l *cellList) Get() interface{} { return []vm.Cell(*l) }

type poke struct {
	addr, val vm.Cell
}

type pokeList []poke

func (l *pokeList) String() string {
	s := make([]string, len(*l))
	for i, p := range *l {
		s[i] = fmt.Sprintf("%d=%d", p.addr, p.val)
	}
	return strings.Join(s, ",")
}

func (l *pokeList) Set(s string) error {
	i := strings.IndexByte(s, '=')
	if i < 0 {
		return errors.Errorf("invalid poke %q, expected addr=value", s)
	}
	a, err := strconv.ParseInt(strings.TrimSpace(s[:i]), 0, 64)
	if err != nil {
		return err
	}
	v, err := strconv.ParseInt(strings.TrimSpace(s[i+1:]), 0, 64)
	if err != nil {
		return err
	}
	*l = append(*l, poke{vm.Cell(a), vm.Cell(v)})
	return nil
}

func (l *pokeList) Get() interface{} { return *l }

var (
	noRawIO     bool
	debug       bool
	dump        bool
	asciiIO     bool
	disasm      bool
	trace       bool
	feedback    bool
	netSize     int
	outFileName string
)

func atExit(p *vm.Program, err error) {
	if err == nil {
		return
	}
	if !debug {
		fmt.Fprintf(os.Stderr, "\n%v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "\n%+v\n", err)
	if p != nil {
		fmt.Fprintf(os.Stderr, "PC: %d, Base: %d, Instructions: %d\n", p.PC(), p.Base(), p.InstructionCount())
		if mem := p.Memory(); p.PC() >= 0 && p.PC() < vm.Cell(len(mem)) {
			fmt.Fprintf(os.Stderr, "% 10d\t", p.PC())
			asm.Disassemble(mem, int(p.PC()), os.Stderr)
			fmt.Fprintln(os.Stderr)
		}
	}
	os.Exit(1)
}

// setupIO switches stdin to raw mode if it is a terminal.
func setupIO() (raw bool, tearDown func()) {
	if noRawIO || !isatty.IsTerminal(os.Stdin.Fd()) {
		return false, nil
	}
	tearDown, err := setRawIO()
	if err != nil {
		return false, nil
	}
	return true, tearDown
}

func runConsole(p *vm.Program, files []string, w io.Writer) error {
	var rs []io.Reader
	for _, fn := range files {
		f, err := os.Open(fn)
		if err != nil {
			return errors.Wrap(err, "open failed")
		}
		defer f.Close()
		rs = append(rs, bufio.NewReader(f))
	}
	raw, tearDown := setupIO()
	if tearDown != nil {
		defer tearDown()
	}
	rs = append(rs, os.Stdin)
	c := ascii.NewConsole(p, io.MultiReader(rs...), w, ascii.RawInput(raw))
	err := c.Run()
	if err == io.EOF {
		err = nil
	}
	for _, v := range c.Results() {
		fmt.Fprintln(w, v)
	}
	return err
}

func runChain(img vm.Image, phases []vm.Cell, w io.Writer) error {
	run := network.Chain
	if feedback {
		run = network.Feedback
	}
	sig, best, err := network.MaxSignal(img, phases, run)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "%d %v\n", sig, best)
	return err
}

func runNetwork(img vm.Image, size int, w io.Writer) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	n, err := network.New(img, size)
	if err != nil {
		return err
	}
	h, err := n.Run(ctx)
	for _, pk := range h {
		fmt.Fprintf(w, "%d %d\n", pk.X, pk.Y)
	}
	return err
}

func main() {
	var err error
	var p *vm.Program

	stdout := bufio.NewWriter(os.Stdout)

	// flush output, catch and log errors
	defer func() {
		if err == nil && p != nil && dump {
			if _, err = p.Memory().WriteTo(stdout); err == nil {
				err = stdout.WriteByte('\n')
			}
		}
		if err == nil && p != nil && outFileName != "" {
			err = vm.Save(outFileName, p.Memory())
		}
		if ferr := stdout.Flush(); err == nil && ferr != nil {
			err = errors.Wrap(ferr, "flush failed")
		}
		atExit(p, err)
	}()

	var (
		withFiles fileList
		inputs    cellList
		phases    cellList
		pokes     pokeList
	)

	var fileName = flag.String("image", "input.txt", "Load memory image from file `filename`")
	flag.Var(&inputs, "in", "comma separated input `values` (can be specified multiple times)")
	flag.Var(&pokes, "poke", "set memory at `addr=value` before running (can be specified multiple times)")
	flag.BoolVar(&asciiIO, "ascii", false, "run interactively, exchanging ASCII text on stdin/stdout")
	flag.Var(&withFiles, "with", "in ascii mode, add `filename` to the input list (can be specified multiple times)")
	flag.BoolVar(&noRawIO, "noraw", false, "disable raw terminal IO")
	flag.BoolVar(&disasm, "disasm", false, "print a disassembly of the memory image and exit")
	flag.BoolVar(&trace, "trace", false, "trace execution to stderr")
	flag.BoolVar(&dump, "dump", false, "dump the memory image to stdout upon exit")
	flag.StringVar(&outFileName, "o", "", "save the memory image to `filename` upon exit")
	flag.Var(&phases, "phases", "run an amplifier chain with every permutation of the phase settings in `list`")
	flag.BoolVar(&feedback, "feedback", false, "with -phases, run the amplifiers in a feedback loop")
	flag.IntVar(&netSize, "net", 0, "run a network of `n` nodes until its NAT repeats itself")
	flag.BoolVar(&debug, "debug", false, "enable debug diagnostics")

	flag.Parse()

	var img vm.Image
	if img, err = vm.Load(*fileName); err != nil {
		return
	}

	switch {
	case disasm:
		err = asm.DisassembleAll(img, 0, stdout)
		return
	case len(phases) > 0:
		err = runChain(img, phases, stdout)
		return
	case netSize > 0:
		err = runNetwork(img, netSize, stdout)
		return
	}

	var opts []vm.Option
	if trace {
		opts = append(opts, vm.Trace(asm.Tracer(os.Stderr)))
	}
	if p, err = vm.New(img, opts...); err != nil {
		return
	}
	for _, pk := range pokes {
		if err = p.Poke(pk.addr, pk.val); err != nil {
			return
		}
	}

	if asciiIO {
		err = runConsole(p, withFiles, stdout)
		return
	}

	var out []vm.Cell
	out, err = p.Run(inputs...)
	for _, v := range out {
		fmt.Fprintln(stdout, v)
	}
}
