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

// Package vm implements a resumable Intcode virtual machine.
//
// A Program is built from a memory image, usually parsed from a single line
// of comma separated integers with Parse or Load. It can then be driven in
// one of two ways:
//
//   - Run feeds a known sequence of inputs and collects every output until the
//     program halts.
//   - Resume runs the program until something externally interesting happens:
//     the program halts, it produces an output value, or it needs an input
//     value that the provided Input cannot supply. In the latter case, the
//     Program is parked on the IN instruction and a later call to Resume with
//     an input available completes it.
//
// Programs have value semantics with respect to their state: Clone returns a
// deep copy that can be run ahead, discarded, or kept as a branch, without any
// effect on the original.
//
// Memory is an infinite tape of signed 64 bits cells: reads past the end of
// the image return 0 and writes past the end grow it, up to MaxAddress.
// Negative addresses and writes above MaxAddress are a program error.
//
// A Program is not safe for concurrent use. Collaborators that simulate
// several machines talking to each other, like the network package, do so by
// holding several independent Programs and resuming them in turn.
package vm
