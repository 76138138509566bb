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
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/nasrrx/Two-Pass-Computer-Assembler/internal/bits"
)

// OpcodeBits is the width of a memory-reference opcode within the encoded
// word; register-reference and I/O encodings are full machine words.
const OpcodeBits = 3

// Table maps instruction mnemonics to their binary encodings. Encodings
// are validated to a fixed bit width when the table is read and never
// change during assembly.
type Table map[string]string

// ReadTable reads an instruction table: one "mnemonic encoding" pair per
// line, no blank lines, encodings exactly width binary digits. The name
// parameter is only used in error messages.
func ReadTable(name string, r io.Reader, width int) (Table, error) {
	t := make(Table)
	s := bufio.NewScanner(r)
	for n := 1; s.Scan(); n++ {
		f := strings.Fields(strings.ToLower(s.Text()))
		if len(f) != 2 {
			return nil, errors.Errorf("%s:%d: expected \"mnemonic encoding\", got %q", name, n, s.Text())
		}
		if !bits.IsBinary(f[1]) || len(f[1]) != width {
			return nil, errors.Errorf("%s:%d: %s: encoding %q is not %d binary digits", name, n, f[0], f[1], width)
		}
		t[f[0]] = f[1]
	}
	if err := s.Err(); err != nil {
		return nil, errors.Wrapf(err, "%s: table read failed", name)
	}
	return t, nil
}

// LoadTable reads an instruction table from the named file.
func LoadTable(fileName string, width int) (Table, error) {
	f, err := os.Open(fileName)
	if err != nil {
		return nil, errors.Wrap(err, "LoadTable")
	}
	defer f.Close()
	return ReadTable(fileName, f, width)
}

// Set holds the three instruction tables of the target machine.
type Set struct {
	MRI Table // memory-reference, 3 bit opcodes
	RRI Table // register-reference, full 16 bit words
	IOI Table // input/output, full 16 bit words
}

// LoadSet loads the three instruction tables from their definition files.
func LoadSet(mriFile, rriFile, ioiFile string) (*Set, error) {
	mri, err := LoadTable(mriFile, OpcodeBits)
	if err != nil {
		return nil, err
	}
	rri, err := LoadTable(rriFile, wordBits)
	if err != nil {
		return nil, err
	}
	ioi, err := LoadTable(ioiFile, wordBits)
	if err != nil {
		return nil, err
	}
	return &Set{MRI: mri, RRI: rri, IOI: ioi}, nil
}

// mri resolves a memory-reference mnemonic to its 3 bit opcode and
// addressing mode. Both table conventions are accepted: an exact entry
// (where a trailing indirect marker on the mnemonic itself means
// indirect), or a base entry looked up after stripping the marker.
func (s *Set) mri(mnemonic string) (opcode string, indirect bool, ok bool) {
	if op, ok := s.MRI[mnemonic]; ok {
		return op, strings.HasSuffix(mnemonic, indirectSuffix), true
	}
	if base := strings.TrimSuffix(mnemonic, indirectSuffix); base != mnemonic {
		if op, ok := s.MRI[base]; ok {
			return op, true, true
		}
	}
	return "", false, false
}

// encWord converts a validated table encoding to its machine word.
func encWord(enc string) uint16 {
	// encodings are checked by ReadTable, the parse cannot fail
	v, _ := strconv.ParseUint(enc, 2, 16)
	return uint16(v)
}
