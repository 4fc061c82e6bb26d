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

import "github.com/pkg/errors"

// Run feeds the given input values to the program and runs it until it
// halts. It returns all the values output by the program.
//
// If the program requests more inputs than supplied, Run returns the outputs
// collected so far along with an error for which errors.Cause returns
// ErrInputExhausted. The program is then parked on the IN instruction and
// can still be resumed.
func (p *Program) Run(inputs ...Cell) ([]Cell, error) {
	in := Inputs(inputs...)
	var out []Cell
	for {
		o, err := p.Resume(in)
		if err != nil {
			return out, err
		}
		switch o.State {
		case Halted:
			return out, nil
		case Output:
			out = append(out, o.Value)
		case NeedsInput:
			return out, errors.Wrapf(ErrInputExhausted, "@pc=%d", p.pc)
		}
	}
}

// Collect resumes the program until it stops producing output: it halts or
// needs input. It returns the collected output values and the final state.
func (p *Program) Collect(in Input) (out []Cell, s State, err error) {
	for {
		o, err := p.Resume(in)
		if err != nil {
			return out, s, err
		}
		if o.State != Output {
			return out, o.State, nil
		}
		out = append(out, o.Value)
	}
}
