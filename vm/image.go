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
	"io"
	"io/ioutil"
	"os"
	"strconv"
	"strings"

	"github.com/db47h/intcode/internal/iox"
	"github.com/pkg/errors"
)

// Cell is the raw type stored in a memory location.
type Cell int64

// Image encapsulates a VM's memory. It behaves like an infinite tape: Load
// returns 0 past the end of the slice and Store grows it as needed.
type Image []Cell

// Load returns the value at address addr.
func (m Image) Load(addr Cell) (Cell, error) {
	if addr < 0 {
		return 0, &AddressError{addr}
	}
	if addr >= Cell(len(m)) {
		return 0, nil
	}
	return m[addr], nil
}

// MaxAddress is the highest address Store accepts. Memory grows on demand up
// to MaxAddress+1 cells.
const MaxAddress Cell = 1<<24 - 1

// Store sets the value at address addr, growing the image if needed. Cells
// between the previous end of the image and addr are set to 0.
func (m *Image) Store(addr, v Cell) error {
	if addr < 0 || addr > MaxAddress {
		return &AddressError{addr}
	}
	if addr >= Cell(len(*m)) {
		m.grow(int(addr) + 1)
	}
	(*m)[addr] = v
	return nil
}

func (m *Image) grow(size int) {
	if size <= cap(*m) {
		l := len(*m)
		*m = (*m)[:size]
		for i := l; i < size; i++ {
			(*m)[i] = 0
		}
		return
	}
	c := 2 * cap(*m)
	if c < size {
		c = size
	}
	t := make(Image, size, c)
	copy(t, *m)
	*m = t
}

// Clone returns a deep copy of the image.
func (m Image) Clone() Image {
	if m == nil {
		return nil
	}
	t := make(Image, len(m))
	copy(t, m)
	return t
}

// WriteTo writes the image to w in textual form: comma separated decimal
// values, without a trailing newline.
func (m Image) WriteTo(w io.Writer) (int64, error) {
	ew := iox.NewErrWriter(w)
	start := ew.N
	var b []byte
	for i, v := range m {
		b = b[:0]
		if i > 0 {
			b = append(b, ',')
		}
		b = strconv.AppendInt(b, int64(v), 10)
		if _, err := ew.Write(b); err != nil {
			break
		}
	}
	return ew.N - start, ew.Err
}

func (m Image) String() string {
	var sb strings.Builder
	m.WriteTo(&sb)
	return sb.String()
}

// ParseString parses a memory image in textual form: a single line of comma
// separated signed integers. Blanks around values are ignored. An empty string
// yields an empty image.
func ParseString(s string) (Image, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Image{}, nil
	}
	toks := strings.Split(s, ",")
	img := make(Image, len(toks))
	for i, t := range toks {
		t = strings.TrimSpace(t)
		v, err := strconv.ParseInt(t, 10, 64)
		if err != nil {
			if ne, ok := err.(*strconv.NumError); ok {
				err = ne.Err
			}
			return nil, &ParseError{Token: t, Index: i, Err: err}
		}
		img[i] = Cell(v)
	}
	return img, nil
}

// Parse reads a memory image in textual form from r. See ParseString.
func Parse(r io.Reader) (Image, error) {
	b, err := ioutil.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "read failed")
	}
	return ParseString(string(b))
}

// Load loads a memory image in textual form from file fileName.
func Load(fileName string) (Image, error) {
	f, err := os.Open(fileName)
	if err != nil {
		return nil, errors.Wrap(err, "Load")
	}
	defer f.Close()
	img, err := Parse(f)
	if err != nil {
		return nil, errors.Wrapf(err, "Load %s", fileName)
	}
	return img, nil
}

// Save writes the textual form of mem to file fileName, followed by a newline.
func Save(fileName string, mem Image) (err error) {
	f, err := os.Create(fileName)
	if err != nil {
		return errors.Wrap(err, "create failed")
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = errors.Wrap(cerr, "close failed")
		}
		// delete file on error
		if err != nil {
			os.Remove(fileName)
		}
	}()
	if _, err = mem.WriteTo(f); err != nil {
		return errors.Wrap(err, "save failed")
	}
	_, err = f.Write([]byte{'\n'})
	return errors.Wrap(err, "save failed")
}
