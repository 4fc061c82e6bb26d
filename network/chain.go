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

// Package network connects several Intcode programs together. The drivers
// only use the public API of package vm: programs are cloned from a common
// image, fed through vm.Values queues and resumed in turn.
package network

import (
	"github.com/db47h/intcode/vm"
	"github.com/pkg/errors"
)

// ErrNoStages is returned by Feedback when given no phase settings.
var ErrNoStages = errors.New("feedback loop without stages")

// Chain runs one copy of img per phase setting, in order. Each copy gets its
// phase setting followed by the output of the previous stage as input; the
// first stage gets signal. Chain returns the first output of the last stage.
func Chain(img vm.Image, phases []vm.Cell, signal vm.Cell) (vm.Cell, error) {
	p, err := vm.New(img)
	if err != nil {
		return 0, err
	}
	for i, ph := range phases {
		out, err := p.Clone().Run(ph, signal)
		if err != nil {
			return 0, errors.Wrapf(err, "stage %d", i)
		}
		if len(out) == 0 {
			return 0, errors.Errorf("stage %d: no output", i)
		}
		signal = out[0]
	}
	return signal, nil
}

// Feedback is like Chain, except that the output of the last stage is fed
// back to the first one until the stages halt. Every stage must produce one
// output per input. It returns the last signal output by the last stage.
func Feedback(img vm.Image, phases []vm.Cell, signal vm.Cell) (vm.Cell, error) {
	if len(phases) == 0 {
		return 0, ErrNoStages
	}
	p, err := vm.New(img)
	if err != nil {
		return 0, err
	}
	stages := make([]*vm.Program, len(phases))
	queues := make([]*vm.Values, len(phases))
	for i, ph := range phases {
		stages[i] = p.Clone()
		queues[i] = vm.Inputs(ph)
	}
	for halted := false; !halted; {
		for i, s := range stages {
			queues[i].Push(signal)
			o, err := s.Resume(queues[i])
			if err != nil {
				return 0, errors.Wrapf(err, "stage %d", i)
			}
			switch o.State {
			case vm.Output:
				signal = o.Value
			case vm.Halted:
				halted = true
			case vm.NeedsInput:
				return 0, errors.Errorf("stage %d: stalled waiting for input", i)
			}
		}
	}
	return signal, nil
}

// Permutations returns all the permutations of v in lexicographic order of
// indices.
func Permutations(v []vm.Cell) [][]vm.Cell {
	if len(v) <= 1 {
		return [][]vm.Cell{append([]vm.Cell(nil), v...)}
	}
	var res [][]vm.Cell
	for i := range v {
		rest := make([]vm.Cell, 0, len(v)-1)
		rest = append(rest, v[:i]...)
		rest = append(rest, v[i+1:]...)
		for _, p := range Permutations(rest) {
			res = append(res, append([]vm.Cell{v[i]}, p...))
		}
	}
	return res
}

// MaxSignal tries every permutation of phases with run (Chain or Feedback)
// and returns the highest signal along with the phase settings that produced
// it.
func MaxSignal(img vm.Image, phases []vm.Cell, run func(vm.Image, []vm.Cell, vm.Cell) (vm.Cell, error)) (max vm.Cell, best []vm.Cell, err error) {
	for _, ph := range Permutations(phases) {
		s, err := run(img, ph, 0)
		if err != nil {
			return 0, nil, errors.Wrapf(err, "phases %v", ph)
		}
		if best == nil || s > max {
			max, best = s, ph
		}
	}
	return max, best, nil
}
