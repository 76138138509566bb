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

// Package asm implements a two-pass assembler for a small 16 bit
// computer with a 12 bit address space. It turns assembly source into a
// location-indexed image of 16 bit machine words (see the image
// package).
//
// Source format:
//
// One instruction, directive or labeled word per line; tokens are
// separated by whitespace and case-insensitive (everything is lowercased
// before processing). A token starting with '/' begins a comment that
// runs to the end of the line:
//
//	     org 100     / program starts at address 100 (hex)
//	     lda a       / load a into AC
//	     add b
//	     sta c
//	     hlt
//	a,   hex 0053    / first operand
//	b,   hex ffe9
//	c,   hex 0       / result goes here
//	     end
//
// A label is a name with a trailing comma, bound to the location of the
// word defined on its line. Forward references are fine: both passes run
// to completion before any memory-reference operand is resolved.
//
// Directives:
//
//	org N	set the location counter to the hexadecimal value N
//	end	stop assembling; everything after it is ignored
//	hex N	(after a label) store the hexadecimal value N as a 16 bit word
//	dec N	recognized as a pseudo-instruction but has no encoding path;
//		the keyword itself ends up in the cell (a quirk kept from the
//		reference pipeline, see below)
//
// Instruction tables:
//
// The machine's instruction set is not built in. Three tables are loaded
// from definition files (one "mnemonic encoding" pair per line, see
// ReadTable): memory-reference instructions with 3 bit opcodes, and
// register-reference and input/output instructions whose encodings are
// complete 16 bit words. A memory-reference instruction takes a label
// operand and assembles as
//
//	1 mode bit | 3 opcode bits | 12 address bits
//
// where the mode bit is set when the mnemonic carries the trailing
// indirect marker 'i' (lda is direct, ldai indirect). The marker is
// honored whether or not the table lists the suffixed form explicitly.
//
// Quirks kept from the reference pipeline:
//
// A memory-reference mnemonic written on the same line as a label is
// never routed through the memory-reference encoding branch, because the
// second pass classifies lines by their first token. Such cells remain
// raw mnemonic strings in the final image. Likewise a dec literal is
// recognized but never encoded. Both behaviors are preserved
// deliberately; do not rely on them in new source.
package asm
