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

package vm_test

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/db47h/intcode/vm"
	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"
)

func TestParseString(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want vm.Image
		err  *vm.ParseError
	}{
		{"simple", "1,9,10,3,2,3,11,0,99,30,40,50", vm.Image{1, 9, 10, 3, 2, 3, 11, 0, 99, 30, 40, 50}, nil},
		{"blanks", " 1, -2 ,3\n", vm.Image{1, -2, 3}, nil},
		{"crlf", "104,1125899906842624,99\r\n", vm.Image{104, 1125899906842624, 99}, nil},
		{"empty", "", vm.Image{}, nil},
		{"blank", " \n", vm.Image{}, nil},
		{"bad token", "1,2,x,4", nil, &vm.ParseError{Token: "x", Index: 2, Err: strconv.ErrSyntax}},
		{"empty token", "1,,2", nil, &vm.ParseError{Token: "", Index: 1, Err: strconv.ErrSyntax}},
		{"trailing comma", "1,2,", nil, &vm.ParseError{Token: "", Index: 2, Err: strconv.ErrSyntax}},
		{"overflow", "99999999999999999999", nil, &vm.ParseError{Token: "99999999999999999999", Index: 0, Err: strconv.ErrRange}},
		{"two lines", "1,2\n3,4", nil, &vm.ParseError{Token: "2\n3", Index: 1, Err: strconv.ErrSyntax}},
	}
	for _, test := range tests {
		img, err := vm.ParseString(test.src)
		if test.err != nil {
			pe, ok := err.(*vm.ParseError)
			if !ok || pe.Token != test.err.Token || pe.Index != test.err.Index || pe.Err != test.err.Err {
				t.Errorf("%s: Expected error %v, got %v", test.name, test.err, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("%s: %v", test.name, err)
			continue
		}
		if diff := cmp.Diff(test.want, img); diff != "" {
			t.Errorf("%s: image mismatch (-want +got):\n%s", test.name, diff)
		}
	}
}

func TestImage_String(t *testing.T) {
	for _, s := range []string{"", "0", "1,-2,3", "109,1,204,-1,1001,100,1,100,1008,100,16,101,1006,101,0,99"} {
		img, err := vm.ParseString(s)
		if err != nil {
			t.Fatal(err)
		}
		if got := img.String(); got != s {
			t.Errorf("Expected %q, got %q", s, got)
		}
	}
}

type failWriter int

func (w *failWriter) Write(p []byte) (int, error) {
	if *w <= 0 {
		return 0, errors.New("disk full")
	}
	*w--
	return len(p), nil
}

func TestImage_WriteTo(t *testing.T) {
	var sb strings.Builder
	n, err := vm.Image{10, -200, 3000}.WriteTo(&sb)
	if err != nil {
		t.Fatal(err)
	}
	if n != int64(sb.Len()) || sb.String() != "10,-200,3000" {
		t.Errorf("WriteTo: %d, %q", n, sb.String())
	}

	w := failWriter(2)
	n, err = vm.Image{1, 2, 3, 4}.WriteTo(&w)
	if err == nil {
		t.Fatal("Unexpected nil error")
	}
	if n != 3 {
		t.Errorf("Expected 3 bytes written, got %d", n)
	}
}

func TestImage_loadStore(t *testing.T) {
	var img vm.Image
	v, err := img.Load(42)
	if err != nil || v != 0 {
		t.Errorf("Load past end: %d, %v", v, err)
	}
	if err = img.Store(3, 7); err != nil {
		t.Fatal(err)
	}
	if err = img.Store(1, 5); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(vm.Image{0, 5, 0, 7}, img); diff != "" {
		t.Errorf("image mismatch (-want +got):\n%s", diff)
	}
	if err = img.Store(100, 1); err != nil {
		t.Fatal(err)
	}
	if len(img) != 101 || img[99] != 0 || img[3] != 7 {
		t.Errorf("unexpected image after growth: len %d", len(img))
	}

	// spare capacity left by a shorter view of the same array is cleared
	backing := vm.Image{1, 2, 3, 4, 5}
	view := backing[:2]
	if err = view.Store(4, 9); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(vm.Image{1, 2, 0, 0, 9}, view); diff != "" {
		t.Errorf("stale cells after growth (-want +got):\n%s", diff)
	}

	if err = img.Store(vm.MaxAddress+1, 1); cmp.Diff(&vm.AddressError{Addr: vm.MaxAddress + 1}, err) != "" {
		t.Errorf("Store(MaxAddress+1): %v", err)
	}
	if v, err = img.Load(1 << 60); err != nil || v != 0 {
		t.Errorf("Load(1<<60): %d, %v", v, err)
	}

	if _, err = img.Load(-1); cmp.Diff(&vm.AddressError{Addr: -1}, err) != "" {
		t.Errorf("Load(-1): %v", err)
	}
	if err = img.Store(-1, 0); cmp.Diff(&vm.AddressError{Addr: -1}, err) != "" {
		t.Errorf("Store(-1): %v", err)
	}
}

func TestImage_Clone(t *testing.T) {
	img := vm.Image{1, 2, 3}
	c := img.Clone()
	c[0] = 42
	if err := c.Store(10, 1); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(vm.Image{1, 2, 3}, img); diff != "" {
		t.Errorf("original modified (-want +got):\n%s", diff)
	}
}

func TestSaveLoad(t *testing.T) {
	dir, err := ioutil.TempDir("", "intcode")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)

	fn := filepath.Join(dir, "image.txt")
	want := vm.Image{3, 0, 4, 0, 99, -7}
	if err = vm.Save(fn, want); err != nil {
		t.Fatalf("%+v", err)
	}
	b, err := ioutil.ReadFile(fn)
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != "3,0,4,0,99,-7\n" {
		t.Errorf("Unexpected file contents %q", b)
	}
	img, err := vm.Load(fn)
	if err != nil {
		t.Fatalf("%+v", err)
	}
	if diff := cmp.Diff(want, img); diff != "" {
		t.Errorf("image mismatch (-want +got):\n%s", diff)
	}

	if _, err = vm.Load(filepath.Join(dir, "missing")); !os.IsNotExist(errors.Cause(err)) {
		t.Errorf("Expected a not exist error, got %v", err)
	}
	if err = ioutil.WriteFile(fn, []byte("1,2,three"), 0644); err != nil {
		t.Fatal(err)
	}
	_, err = vm.Load(fn)
	if pe, ok := errors.Cause(err).(*vm.ParseError); !ok || pe.Index != 2 {
		t.Errorf("Expected a parse error on token 2, got %v", err)
	}
}
