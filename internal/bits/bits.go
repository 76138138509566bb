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

// Package bits handles the fixed-width binary representations used
// throughout the assembler: 12 bit addresses and 16 bit machine words,
// rendered as zero-padded binary strings at package boundaries.
package bits

import (
	"strconv"

	"github.com/pkg/errors"
)

// ErrRange reports a value that does not fit in the requested bit width.
var ErrRange = errors.New("value out of range for bit width")

// Format renders v as a zero-padded binary string of exactly width bits.
// Values wider than width are truncated to the low bits; callers are
// expected to range check with Parse or Fits first.
func Format(v uint16, width int) string {
	if width < 16 {
		v &= 1<<uint(width) - 1
	}
	s := strconv.FormatUint(uint64(v), 2)
	for len(s) < width {
		s = "0" + s
	}
	return s
}

// Parse converts s from the given base to an unsigned value of at most
// width bits. A syntactically invalid literal returns the strconv error;
// a valid literal that does not fit in width bits returns ErrRange.
func Parse(s string, base, width int) (uint16, error) {
	v, err := strconv.ParseUint(s, base, 64)
	if err != nil {
		if ne, ok := err.(*strconv.NumError); ok && ne.Err == strconv.ErrRange {
			return 0, ErrRange
		}
		return 0, err
	}
	if !Fits(v, width) {
		return 0, ErrRange
	}
	return uint16(v), nil
}

// Fits reports whether v can be represented in width bits.
func Fits(v uint64, width int) bool {
	return v < 1<<uint(width)
}

// IsBinary reports whether s is a non-empty string of binary digits.
func IsBinary(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r != '0' && r != '1' {
			return false
		}
	}
	return true
}
