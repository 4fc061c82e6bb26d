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

// Input is a source of input values for the IN instruction.
//
// Next returns the next value and true, or false if no value is currently
// available. An Input may have more values available later: this is how
// collaborators feed a Program incrementally.
type Input interface {
	Next() (v Cell, ok bool)
}

// InputFunc adapts a function to the Input interface.
type InputFunc func() (Cell, bool)

// Next calls f.
func (f InputFunc) Next() (Cell, bool) { return f() }

// None is an Input that never has any value available.
var None Input = InputFunc(func() (Cell, bool) { return 0, false })

// Values is a FIFO queue of input values. Unused values stay in the queue
// across calls to Resume.
type Values []Cell

// Inputs returns a new Values queue holding a copy of v.
func Inputs(v ...Cell) *Values {
	q := make(Values, len(v))
	copy(q, v)
	return &q
}

// Next pops the value at the front of the queue.
func (q *Values) Next() (Cell, bool) {
	if len(*q) == 0 {
		return 0, false
	}
	v := (*q)[0]
	*q = (*q)[1:]
	return v, true
}

// Push appends values to the back of the queue.
func (q *Values) Push(v ...Cell) {
	*q = append(*q, v...)
}

// Len returns the number of queued values.
func (q Values) Len() int { return len(q) }
