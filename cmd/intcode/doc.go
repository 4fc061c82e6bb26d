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

// The intcode command line tool runs Intcode programs with the
// github.com/db47h/intcode/vm package.
//
// Usage:
//
//	-ascii
//		  run interactively, exchanging ASCII text on stdin/stdout
//	-debug
//		  enable debug diagnostics
//	-disasm
//		  print a disassembly of the memory image and exit
//	-dump
//		  dump the memory image to stdout upon exit
//	-feedback
//		  with -phases, run the amplifiers in a feedback loop
//	-image filename
//		  Load memory image from file filename (default "input.txt")
//	-in values
//		  comma separated input values (can be specified multiple times)
//	-net n
//		  run a network of n nodes until its NAT repeats itself
//	-noraw
//		  disable raw terminal IO
//	-o filename
//		  save the memory image to filename upon exit
//	-phases list
//		  run an amplifier chain with every permutation of the phase settings in list
//	-poke addr=value
//		  set memory at addr=value before running (can be specified multiple times)
//	-trace
//		  trace execution to stderr
//	-with filename
//		  in ascii mode, add filename to the input list (can be specified multiple times)
//
// By default, intcode runs the program with the values given with -in as
// input and prints every output value on its own line. It fails if the program
// asks for more input than provided.
//
// -ascii: the program is run interactively. Output values in the ASCII range
// are printed as text, other values are printed as decimal numbers once the
// program halts. Whenever the program needs input, a line is read from stdin.
// If stdin is a terminal, it is switched to raw mode unless -noraw is given.
// CTRL-D or CTRL-C on an empty line ends the session.
//
// -with: in ascii mode, the specified files are fed to the program before
// stdin, in order of appearance on the command line.
//
// -poke: patches the memory image after loading it, for example to set the
// noun and verb of a gravity assist program:
//
//	intcode -poke 1=12 -poke 2=2 -dump
//
// -phases: the program is an amplifier. intcode runs one copy per phase
// setting, chained together, for every permutation of the list and prints the
// highest output signal along with the phase settings that produced it.
//
// -net: runs copies of the program on an addressed packet network and prints
// every packet the NAT sent to node 0.
//
// -debug: will print a full stacktrace and the VM state should the program
// crash.
package main
