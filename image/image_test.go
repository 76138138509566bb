// This file is part of the Two-Pass Computer Assembler -
// https://github.com/nasrrx/Two-Pass-Computer-Assembler
//
// Copyright 2024 the Two-Pass Computer Assembler authors
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

package image_test

import (
	"bytes"
	"reflect"
	"strings"
	"testing"

	"github.com/nasrrx/Two-Pass-Computer-Assembler/image"
)

func TestCell(t *testing.T) {
	w := image.Word(0x7801)
	if !w.Resolved() {
		t.Error("Word cell should be resolved")
	}
	if s := w.String(); s != "0111100000000001" {
		t.Errorf("expected 0111100000000001, got %s", s)
	}
	r := image.Raw("lda")
	if r.Resolved() {
		t.Error("Raw cell should not be resolved")
	}
	if s := r.String(); s != "lda" {
		t.Errorf("expected lda, got %s", s)
	}
	if _, ok := r.Word(); ok {
		t.Error("Raw cell should have no word")
	}
}

func TestImage_binary(t *testing.T) {
	img := image.Image{
		0x100: image.Word(0x2104),
		5:     image.Raw("lda"),
	}
	want := map[string]string{
		"000100000000": "0010000100000100",
		"000000000101": "lda",
	}
	if got := img.Binary(); !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestImage_locations(t *testing.T) {
	img := image.Image{7: image.Word(1), 0: image.Word(2), 0x50: image.Word(3)}
	want := []int{0, 7, 0x50}
	if got := img.Locations(); !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestImage_roundTrip(t *testing.T) {
	img := image.Image{
		0:     image.Word(0x2104),
		1:     image.Raw("lda"),
		0xfff: image.Word(0),
	}
	var b bytes.Buffer
	if _, err := img.WriteTo(&b); err != nil {
		t.Fatal(err)
	}
	got, err := image.Read(&b)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, img) {
		t.Errorf("round trip mismatch: expected %v, got %v", img, got)
	}
}

func TestRead_errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"missing word", "000000000001\n"},
		{"extra field", "000000000001 0000000000000000 junk\n"},
		{"bad location", "00000000000x 0000000000000000\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := image.Read(strings.NewReader(tt.input)); err == nil {
				t.Error("expected an error")
			}
		})
	}
}
