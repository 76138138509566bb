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
	"strings"

	"github.com/pkg/errors"
)

// Source syntax markers.
const (
	commentMarker  = "/"
	labelSuffix    = ","
	indirectSuffix = "i"
)

// Line is one source line reduced to its lowercase whitespace-delimited
// tokens, with end-of-line comments removed. A line emptied by comment
// removal keeps its position but has no tokens; both passes skip it.
type Line struct {
	Pos    int // 1-based line number in the source
	Tokens []string
}

func (l Line) empty() bool { return len(l.Tokens) == 0 }

// label returns the label name and true if the line starts with a label
// definition (a token with a trailing comma).
func (l Line) label() (string, bool) {
	if l.empty() || !strings.HasSuffix(l.Tokens[0], labelSuffix) {
		return "", false
	}
	return strings.TrimSuffix(l.Tokens[0], labelSuffix), true
}

// ReadSource tokenizes assembly source: each line is lowercased and split
// at whitespace, and a token starting with the comment marker discards
// itself and the rest of its line. No validation happens here; malformed
// content surfaces later, during opcode lookup in the passes.
func ReadSource(r io.Reader) ([]Line, error) {
	var lines []Line
	s := bufio.NewScanner(r)
	for n := 1; s.Scan(); n++ {
		tokens := strings.Fields(strings.ToLower(s.Text()))
		for i, t := range tokens {
			if strings.HasPrefix(t, commentMarker) {
				tokens = tokens[:i]
				break
			}
		}
		lines = append(lines, Line{Pos: n, Tokens: tokens})
	}
	if err := s.Err(); err != nil {
		return nil, errors.Wrap(err, "source read failed")
	}
	return lines, nil
}

// LoadSource reads and tokenizes the named source file.
func LoadSource(fileName string) ([]Line, error) {
	f, err := os.Open(fileName)
	if err != nil {
		return nil, errors.Wrap(err, "LoadSource")
	}
	defer f.Close()
	lines, err := ReadSource(f)
	if err != nil {
		return nil, errors.Wrap(err, "LoadSource")
	}
	return lines, nil
}
