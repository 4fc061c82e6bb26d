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

// Package ascii implements the text conventions used by Intcode programs that
// talk to humans: text is exchanged one character per value, lines are
// terminated by '\n', and any output value outside of the ASCII range is a
// result rather than text.
package ascii

import (
	"strings"

	"github.com/db47h/intcode/vm"
)

// MaxChar is the largest value considered as text.
const MaxChar = 127

// IsText returns true if v is an ASCII character.
func IsText(v vm.Cell) bool {
	return v >= 0 && v <= MaxChar
}

// Input returns a new input queue with the bytes of s, one value per byte.
func Input(s string) *vm.Values {
	q := make(vm.Values, len(s))
	for i := 0; i < len(s); i++ {
		q[i] = vm.Cell(s[i])
	}
	return &q
}

// Lines formats program input from lines of text. Each line is trimmed of
// surrounding blanks, blank lines are dropped, and every remaining line is
// terminated by '\n'. Arguments may themselves contain several lines.
func Lines(lines ...string) string {
	var sb strings.Builder
	for _, l := range lines {
		for _, s := range strings.Split(l, "\n") {
			s = strings.TrimSpace(s)
			if s == "" {
				continue
			}
			sb.WriteString(s)
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

// Decode splits program output into its leading text and the first non text
// value, if any. ok is false if all of out is text. Values following v are
// ignored.
func Decode(out []vm.Cell) (text string, v vm.Cell, ok bool) {
	b := make([]byte, 0, len(out))
	for _, c := range out {
		if !IsText(c) {
			return string(b), c, true
		}
		b = append(b, byte(c))
	}
	return string(b), 0, false
}
