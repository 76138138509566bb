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
	"strings"
)

// Kind classifies assembly failures.
type Kind int

// Assembly failure kinds.
const (
	// MalformedLiteral reports non-numeric or out-of-range text where a
	// hexadecimal or decimal literal was required.
	MalformedLiteral Kind = iota + 1
	// UnresolvedSymbol reports a mnemonic or label with no matching
	// instruction-table or label-table entry at the point of resolution.
	UnresolvedSymbol
	// MissingEndDirective reports input exhausted without an end directive.
	// It is the only non-fatal condition: Assemble still returns the image.
	MissingEndDirective
	// AddressOverflow reports a location or address that exceeds the 12 bit
	// address width.
	AddressOverflow
)

func (k Kind) String() string {
	switch k {
	case MalformedLiteral:
		return "malformed literal"
	case UnresolvedSymbol:
		return "unresolved symbol"
	case MissingEndDirective:
		return "missing end directive"
	case AddressOverflow:
		return "address overflow"
	}
	return "unknown error"
}

// Error is an assembly failure. It carries the position of the offending
// line, its raw token content and the specific token that triggered the
// condition.
type Error struct {
	Kind   Kind
	File   string   // source name, may be empty
	Pos    int      // 1-based source line number, 0 if not line-bound
	Token  string   // offending token, may be empty
	Tokens []string // tokens of the offending line
}

func (e *Error) Error() string {
	var b strings.Builder
	if e.File != "" {
		fmt.Fprintf(&b, "%s:", e.File)
	}
	if e.Pos > 0 {
		fmt.Fprintf(&b, "%d: ", e.Pos)
	}
	b.WriteString(e.Kind.String())
	if e.Token != "" {
		fmt.Fprintf(&b, ": %q", e.Token)
	}
	if len(e.Tokens) > 0 {
		fmt.Fprintf(&b, " (in %q)", strings.Join(e.Tokens, " "))
	}
	return b.String()
}

// lineError builds an Error bound to a source line.
func lineError(k Kind, l Line, token string) *Error {
	return &Error{Kind: k, Pos: l.Pos, Token: token, Tokens: l.Tokens}
}
