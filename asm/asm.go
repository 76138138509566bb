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

package asm

import (
	"io"
	"os"

	"github.com/pkg/errors"

	"github.com/nasrrx/Two-Pass-Computer-Assembler/image"
	"github.com/nasrrx/Two-Pass-Computer-Assembler/internal/bits"
)

// Widths of the target machine, re-declared for brevity.
const (
	addrBits = image.AddrBits
	wordBits = image.WordBits
)

// Pseudo-instruction keywords.
const (
	dirOrg = "org" // set the location counter
	dirEnd = "end" // terminate assembly
	dirHex = "hex" // labeled hexadecimal literal, resolved in pass one
	dirDec = "dec" // decimal literal keyword; recognized but never encoded
)

// symtab is the snapshot produced by the first pass: the skeleton of the
// memory image plus the label table. The second pass works on its own
// copy of the cells and reads the labels.
type symtab struct {
	cells  map[int]image.Cell
	labels map[string]int
	end    bool // end directive was seen
}

// Assemble reads assembly source from r and runs the two-pass engine
// over it with the given instruction tables. The name parameter is used
// only in error messages.
//
// If the source ends without an end directive the returned image is
// still valid and the returned error is an *Error of kind
// MissingEndDirective; every other failure returns a nil image.
func Assemble(name string, r io.Reader, tables *Set) (image.Image, error) {
	lines, err := ReadSource(r)
	if err != nil {
		return nil, err
	}
	img, err := AssembleLines(lines, tables)
	if e, ok := err.(*Error); ok {
		e.File = name
	}
	return img, err
}

// AssembleFile assembles the named source file.
func AssembleFile(fileName string, tables *Set) (image.Image, error) {
	f, err := os.Open(fileName)
	if err != nil {
		return nil, errors.Wrap(err, "AssembleFile")
	}
	defer f.Close()
	return Assemble(fileName, f, tables)
}

// AssembleLines runs the two-pass engine over an already tokenized line
// sequence. The first pass assigns locations and records labels, the
// second substitutes register-reference and I/O words and encodes
// memory-reference instructions against the completed label table. The
// passes run strictly in sequence; operands are only resolved once the
// whole source has been scanned, so forward references resolve like any
// other label.
func AssembleLines(lines []Line, tables *Set) (image.Image, error) {
	st, aerr := firstPass(lines)
	if aerr != nil {
		return nil, aerr
	}
	img, aerr := secondPass(lines, tables, st)
	if aerr != nil {
		return nil, aerr
	}
	if !st.end {
		return img, &Error{Kind: MissingEndDirective, Pos: lastPos(lines)}
	}
	return img, nil
}

// firstPass walks the lines once, assigning a monotonically increasing
// location counter (resettable by org) and recording label definitions.
// Cell content stays provisional: only labeled hex literals are encoded
// here, everything else is stored as a raw token for the second pass.
func firstPass(lines []Line) (*symtab, *Error) {
	st := &symtab{
		cells:  make(map[int]image.Cell),
		labels: make(map[string]int),
	}
	loc := 0
	for _, l := range lines {
		if l.empty() {
			continue
		}
		if name, ok := l.label(); ok {
			st.labels[name] = loc
			if len(l.Tokens) < 2 {
				return nil, lineError(UnresolvedSymbol, l, name)
			}
			if l.Tokens[1] == dirHex {
				if len(l.Tokens) < 3 {
					return nil, lineError(MalformedLiteral, l, dirHex)
				}
				w, err := bits.Parse(l.Tokens[2], 16, wordBits)
				if err != nil {
					return nil, lineError(MalformedLiteral, l, l.Tokens[2])
				}
				if err := st.store(loc, image.Word(w), l); err != nil {
					return nil, err
				}
			} else if err := st.store(loc, image.Raw(l.Tokens[1]), l); err != nil {
				return nil, err
			}
			loc++
			continue
		}
		switch l.Tokens[0] {
		case dirOrg:
			v, err := parseOrg(l)
			if err != nil {
				return nil, err
			}
			loc = v
		case dirEnd:
			st.end = true
			return st, nil
		default:
			if err := st.store(loc, image.Raw(l.Tokens[0]), l); err != nil {
				return nil, err
			}
			loc++
		}
	}
	return st, nil
}

// store records a provisional cell, refusing to let the location counter
// run past the address space rather than silently wrapping.
func (st *symtab) store(loc int, c image.Cell, l Line) *Error {
	if loc > image.MaxAddr {
		return lineError(AddressOverflow, l, l.Tokens[0])
	}
	st.cells[loc] = c
	return nil
}

// secondPass resolves the provisional cells into machine words. Step A
// substitutes register-reference and I/O mnemonics wherever they appear;
// step B re-walks the lines with its own location counter and fully
// encodes memory-reference instructions, which need the per-line
// addressing mode and operand that the table sweep cannot see.
//
// A memory-reference mnemonic written after a label on the same line is
// never routed through the encoding branch (the line's first token is
// the label) and remains a raw token in the output; see the package
// documentation.
func secondPass(lines []Line, tables *Set, st *symtab) (image.Image, *Error) {
	img := make(image.Image, len(st.cells))
	for loc, c := range st.cells {
		img[loc] = c
	}

	// step A: table sweep
	for loc, c := range img {
		if c.Resolved() {
			continue
		}
		if enc, ok := tables.RRI[c.Raw()]; ok {
			img[loc] = image.Word(encWord(enc))
		} else if enc, ok := tables.IOI[c.Raw()]; ok {
			img[loc] = image.Word(encWord(enc))
		}
	}

	// step B: line-driven encoding
	loc := 0
	for _, l := range lines {
		if l.empty() {
			continue
		}
		t := l.Tokens[0]
		switch t {
		case dirOrg:
			v, err := parseOrg(l)
			if err != nil {
				return nil, err
			}
			loc = v
			continue
		case dirEnd:
			return img, nil
		case dirDec:
			// recognized pseudo-instruction with no encoding path
			loc++
			continue
		}
		if opcode, indirect, ok := tables.mri(t); ok {
			if len(l.Tokens) < 2 {
				return nil, lineError(UnresolvedSymbol, l, t)
			}
			target, ok := st.labels[l.Tokens[1]]
			if !ok {
				return nil, lineError(UnresolvedSymbol, l, l.Tokens[1])
			}
			img[loc] = image.Word(mriWord(opcode, indirect, target))
			loc++
			continue
		}
		if _, ok := l.label(); !ok {
			// a bare mnemonic that survived the table sweep matches
			// nothing in any of the three tables
			if c, ok := img[loc]; ok && !c.Resolved() {
				return nil, lineError(UnresolvedSymbol, l, t)
			}
		}
		loc++
	}
	return img, nil
}

// mriWord composes a memory-reference word: 1 addressing-mode bit, the
// 3 bit opcode and a 12 bit address.
func mriWord(opcode string, indirect bool, target int) uint16 {
	w := encWord(opcode)<<addrBits | uint16(target)
	if indirect {
		w |= 1 << (wordBits - 1)
	}
	return w
}

// parseOrg evaluates the hexadecimal operand of an org directive.
func parseOrg(l Line) (int, *Error) {
	if len(l.Tokens) < 2 {
		return 0, lineError(MalformedLiteral, l, dirOrg)
	}
	v, err := bits.Parse(l.Tokens[1], 16, addrBits)
	if err != nil {
		kind := MalformedLiteral
		if err == bits.ErrRange {
			kind = AddressOverflow
		}
		return 0, lineError(kind, l, l.Tokens[1])
	}
	return int(v), nil
}

func lastPos(lines []Line) int {
	if len(lines) == 0 {
		return 0
	}
	return lines[len(lines)-1].Pos
}
