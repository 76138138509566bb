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
	"strings"
	"testing"

	"github.com/nasrrx/Two-Pass-Computer-Assembler/asm"
)

func TestReadTable(t *testing.T) {
	tbl, err := asm.ReadTable("mri", strings.NewReader("AND 000\nadd 001\n"), 3)
	if err != nil {
		t.Fatal(err)
	}
	if len(tbl) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(tbl))
	}
	// mnemonics are lowercased
	if tbl["and"] != "000" || tbl["add"] != "001" {
		t.Errorf("unexpected table content: %v", tbl)
	}
}

func TestReadTable_errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		width int
	}{
		{"missing encoding", "and\n", 3},
		{"extra field", "and 000 junk\n", 3},
		{"wrong width", "and 0000\n", 3},
		{"not binary", "and 0a0\n", 3},
		{"blank line", "and 000\n\nadd 001\n", 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := asm.ReadTable(tt.name, strings.NewReader(tt.input), tt.width); err == nil {
				t.Error("expected an error")
			}
		})
	}
}
