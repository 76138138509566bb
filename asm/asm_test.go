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

package asm_test

import (
	"reflect"
	"strings"
	"testing"

	"github.com/nasrrx/Two-Pass-Computer-Assembler/asm"
	"github.com/nasrrx/Two-Pass-Computer-Assembler/image"
)

// the standard basic computer instruction set, abridged
const (
	mriDefs = `and 000
add 001
lda 010
sta 011
bun 100
bsa 101
isz 110`
	rriDefs = `cla 0111100000000000
cle 0111010000000000
cma 0111001000000000
inc 0111000000100000
hlt 0111000000000001`
	ioiDefs = `inp 1111100000000000
out 1111010000000000
ion 1111000010000000`
)

func testSet(t *testing.T) *asm.Set {
	t.Helper()
	mri, err := asm.ReadTable("mri", strings.NewReader(mriDefs), asm.OpcodeBits)
	if err != nil {
		t.Fatal(err)
	}
	rri, err := asm.ReadTable("rri", strings.NewReader(rriDefs), image.WordBits)
	if err != nil {
		t.Fatal(err)
	}
	ioi, err := asm.ReadTable("ioi", strings.NewReader(ioiDefs), image.WordBits)
	if err != nil {
		t.Fatal(err)
	}
	return &asm.Set{MRI: mri, RRI: rri, IOI: ioi}
}

func mustAssemble(t *testing.T, src string, tables *asm.Set) image.Image {
	t.Helper()
	img, err := asm.Assemble("test", strings.NewReader(src), tables)
	if err != nil {
		t.Fatalf("%+v", err)
	}
	return img
}

func assertCell(t *testing.T, img image.Image, loc string, want string) {
	t.Helper()
	got, ok := img.Binary()[loc]
	if !ok {
		t.Errorf("no cell at location %s", loc)
		return
	}
	if got != want {
		t.Errorf("location %s: expected %s, got %s", loc, want, got)
	}
}

func TestAssemble_locations(t *testing.T) {
	img := mustAssemble(t, "cla\ncle\ninp\nend\n", testSet(t))
	want := map[string]string{
		"000000000000": "0111100000000000",
		"000000000001": "0111010000000000",
		"000000000010": "1111100000000000",
	}
	if got := img.Binary(); !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

// org sets the location counter to its hexadecimal operand exactly, with
// no implicit increment on the org line itself.
func TestAssemble_org(t *testing.T) {
	img := mustAssemble(t, "org 100\ncle\nend\n", &asm.Set{
		MRI: asm.Table{},
		RRI: asm.Table{"cle": "0111100000000000"},
		IOI: asm.Table{},
	})
	want := map[string]string{"000100000000": "0111100000000000"}
	if got := img.Binary(); !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestAssemble_forwardReference(t *testing.T) {
	img := mustAssemble(t, `
	lda x
	hlt
x,	hex 1a
	end
`, testSet(t))
	assertCell(t, img, "000000000000", "0010000000000010")
	assertCell(t, img, "000000000001", "0111000000000001")
	assertCell(t, img, "000000000010", "0000000000011010")
}

func TestAssemble_indirect(t *testing.T) {
	src := `
	lda x
	ldai x
	hlt
x,	hex 5
	end
`
	img := mustAssemble(t, src, testSet(t))
	assertCell(t, img, "000000000000", "0010000000000011")
	assertCell(t, img, "000000000001", "1010000000000011")

	// a table that spells out the indirect forms behaves identically
	set := testSet(t)
	set.MRI["ldai"] = set.MRI["lda"]
	img = mustAssemble(t, src, set)
	assertCell(t, img, "000000000000", "0010000000000011")
	assertCell(t, img, "000000000001", "1010000000000011")
}

// hex literals encode independently of the instruction tables.
func TestAssemble_hexLiteral(t *testing.T) {
	img := mustAssemble(t, "a, hex 3\nb, hex ffff\nend\n", &asm.Set{
		MRI: asm.Table{}, RRI: asm.Table{}, IOI: asm.Table{},
	})
	assertCell(t, img, "000000000000", "0000000000000011")
	assertCell(t, img, "000000000001", "1111111111111111")
}

// A memory-reference mnemonic on the same line as a label never reaches
// the encoding branch and stays a raw token in the output.
func TestAssemble_labeledInstructionStaysRaw(t *testing.T) {
	img := mustAssemble(t, `
	org 10
x,	lda y
y,	hex 1
	end
`, testSet(t))
	assertCell(t, img, "000000010000", "lda")
	assertCell(t, img, "000000010001", "0000000000000001")
}

// dec is classified as a pseudo-instruction but has no encoding path:
// the keyword itself survives in the cell.
func TestAssemble_decPassthrough(t *testing.T) {
	img := mustAssemble(t, "a, dec 5\ndec 7\nend\n", testSet(t))
	assertCell(t, img, "000000000000", "dec")
	assertCell(t, img, "000000000001", "dec")
}

func TestAssemble_comments(t *testing.T) {
	img := mustAssemble(t, `
/ a comment line
	CLA / trailing comment
	end
`, testSet(t))
	want := map[string]string{"000000000000": "0111100000000000"}
	if got := img.Binary(); !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestAssemble_idempotent(t *testing.T) {
	src := `
	org 20
	lda x
	add x
	hlt
x,	hex 1f
	end
`
	set := testSet(t)
	a := mustAssemble(t, src, set)
	b := mustAssemble(t, src, set)
	if !reflect.DeepEqual(a.Binary(), b.Binary()) {
		t.Errorf("two runs differ: %v vs %v", a.Binary(), b.Binary())
	}
}

func TestAssemble_errors(t *testing.T) {
	tests := []struct {
		name  string
		src   string
		kind  asm.Kind
		pos   int
		token string
	}{
		{"unresolved label", "lda zzz\nend\n", asm.UnresolvedSymbol, 1, "zzz"},
		{"unknown mnemonic", "foo\nend\n", asm.UnresolvedSymbol, 1, "foo"},
		{"missing operand", "lda\nend\n", asm.UnresolvedSymbol, 1, "lda"},
		{"malformed org", "org xyz\nend\n", asm.MalformedLiteral, 1, "xyz"},
		{"org out of range", "org 1000\nend\n", asm.AddressOverflow, 1, "1000"},
		{"malformed hex", "a, hex zz\nend\n", asm.MalformedLiteral, 1, "zz"},
		{"hex out of range", "a, hex 10000\nend\n", asm.MalformedLiteral, 1, "10000"},
		{"counter overflow", "org fff\ncla\ncle\nend\n", asm.AddressOverflow, 3, "cle"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, err := asm.Assemble(tt.name, strings.NewReader(tt.src), testSet(t))
			if err == nil {
				t.Fatalf("expected error, got image %v", img.Binary())
			}
			e, ok := err.(*asm.Error)
			if !ok {
				t.Fatalf("expected *asm.Error, got %T: %v", err, err)
			}
			if e.Kind != tt.kind {
				t.Errorf("expected kind %v, got %v", tt.kind, e.Kind)
			}
			if e.Pos != tt.pos {
				t.Errorf("expected line %d, got %d", tt.pos, e.Pos)
			}
			if e.Token != tt.token {
				t.Errorf("expected token %q, got %q", tt.token, e.Token)
			}
		})
	}
}

// Source without an end directive still assembles completely; the
// condition is surfaced alongside the image.
func TestAssemble_missingEnd(t *testing.T) {
	img, err := asm.Assemble("test", strings.NewReader("cla\n"), testSet(t))
	if img == nil {
		t.Fatal("expected an image")
	}
	e, ok := err.(*asm.Error)
	if !ok || e.Kind != asm.MissingEndDirective {
		t.Fatalf("expected MissingEndDirective, got %v", err)
	}
	assertCell(t, img, "000000000000", "0111100000000000")
}

func TestReadSource(t *testing.T) {
	lines, err := asm.ReadSource(strings.NewReader("ORG 100\n\n/ comment only\ncle\n"))
	if err != nil {
		t.Fatal(err)
	}
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %d", len(lines))
	}
	if !reflect.DeepEqual(lines[0].Tokens, []string{"org", "100"}) {
		t.Errorf("line 1: got %v", lines[0].Tokens)
	}
	// emptied lines are preserved with their position
	if len(lines[1].Tokens) != 0 || len(lines[2].Tokens) != 0 {
		t.Errorf("expected lines 2 and 3 to be empty, got %v and %v", lines[1].Tokens, lines[2].Tokens)
	}
	if lines[3].Pos != 4 {
		t.Errorf("expected line 4 at position 4, got %d", lines[3].Pos)
	}
}
