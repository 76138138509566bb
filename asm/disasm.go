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
	"fmt"
	"io"
	"strings"

	"github.com/nasrrx/Two-Pass-Computer-Assembler/image"
)

// Disassemble writes a symbolic listing of the image to w: one line per
// assigned location, in increasing order, as a 3 digit hexadecimal
// address followed by the decoded instruction. Register-reference and
// I/O words decode by exact reverse lookup; other words decode as a
// memory-reference instruction when their opcode is in the table, with
// the indirect marker re-appended when the mode bit is set. Words that
// match nothing are rendered as hex literals, and unresolved raw cells
// are written as-is. It returns any write error.
func Disassemble(img image.Image, tables *Set, w io.Writer) error {
	ew := &errWriter{w: w}
	words := reverse(tables.RRI, tables.IOI)
	opcodes := reverse(tables.MRI)
	for _, loc := range img.Locations() {
		fmt.Fprintf(ew, "%03x\t", loc)
		c := img[loc]
		v, ok := c.Word()
		if !ok {
			io.WriteString(ew, c.Raw())
		} else if m, ok := words[c.String()]; ok {
			io.WriteString(ew, m)
		} else if m, ok := opcodes[opcodeField(v)]; ok {
			if v>>(wordBits-1) == 1 && !strings.HasSuffix(m, indirectSuffix) {
				m += indirectSuffix
			}
			fmt.Fprintf(ew, "%s %03x", m, v&image.MaxAddr)
		} else {
			fmt.Fprintf(ew, "%s %04x", dirHex, v)
		}
		ew.Write([]byte{'\n'})
		if ew.err != nil {
			return ew.err
		}
	}
	return ew.err
}

// opcodeField extracts the 3 opcode bits of a memory-reference word as a
// table encoding string.
func opcodeField(v uint16) string {
	enc := make([]byte, OpcodeBits)
	for i := 0; i < OpcodeBits; i++ {
		enc[i] = '0' + byte(v>>(wordBits-2-i)&1)
	}
	return string(enc)
}

// reverse inverts tables for decoding. On colliding encodings (such as a
// table listing both direct and indirect forms of a mnemonic) the
// lexicographically smallest mnemonic wins, keeping decoding stable.
func reverse(tables ...Table) map[string]string {
	m := make(map[string]string)
	for _, t := range tables {
		for mnemonic, enc := range t {
			if prev, ok := m[enc]; ok && prev <= mnemonic {
				continue
			}
			m[enc] = mnemonic
		}
	}
	return m
}

// errWriter tracks the first write error; subsequent writes are no-ops
// returning that error.
type errWriter struct {
	w   io.Writer
	err error
}

func (w *errWriter) Write(p []byte) (n int, err error) {
	if w.err != nil {
		return 0, w.err
	}
	n, err = w.w.Write(p)
	if err != nil {
		w.err = err
	}
	return n, err
}
