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

// Package image models the output of the assembler: a mapping from memory
// locations to 16 bit machine words. Locations are plain integers inside the
// engine and are only rendered as fixed-width binary strings at the external
// boundary (Binary, WriteTo).
//
// A Cell is a tagged value: either a fully encoded word or a raw token that
// the second pass did not resolve. Raw cells can legitimately survive
// assembly (see the asm package documentation on labeled memory-reference
// lines), so the serialized forms preserve them as-is.
package image

import (
	"bufio"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/pkg/errors"

	"github.com/nasrrx/Two-Pass-Computer-Assembler/internal/bits"
)

// Fixed widths of the target machine.
const (
	AddrBits = 12
	WordBits = 16

	// MaxAddr is the highest addressable location.
	MaxAddr = 1<<AddrBits - 1
)

// Cell is the content of one memory location: either an encoded machine
// word or a raw token awaiting (or denied) resolution.
type Cell struct {
	word uint16
	raw  string
	enc  bool
}

// Word returns a Cell holding a fully encoded machine word.
func Word(w uint16) Cell { return Cell{word: w, enc: true} }

// Raw returns a Cell holding an unresolved token.
func Raw(s string) Cell { return Cell{raw: s} }

// Resolved reports whether the cell holds an encoded word.
func (c Cell) Resolved() bool { return c.enc }

// Word returns the encoded word and true, or 0 and false for a raw cell.
func (c Cell) Word() (uint16, bool) { return c.word, c.enc }

// Raw returns the unresolved token of a raw cell, or "" for an encoded one.
func (c Cell) Raw() string { return c.raw }

// String renders the cell the way it appears in the output mapping: a
// 16 bit zero-padded binary string for encoded cells, the raw token
// otherwise.
func (c Cell) String() string {
	if c.enc {
		return bits.Format(c.word, WordBits)
	}
	return c.raw
}

// Image is an assembled memory image.
type Image map[int]Cell

// Locations returns the assigned locations in increasing order.
func (img Image) Locations() []int {
	locs := make([]int, 0, len(img))
	for l := range img {
		locs = append(locs, l)
	}
	sort.Ints(locs)
	return locs
}

// Binary renders the image as the external mapping from 12 bit binary
// location strings to 16 bit binary word strings (or raw tokens for
// unresolved cells).
func (img Image) Binary() map[string]string {
	m := make(map[string]string, len(img))
	for l, c := range img {
		m[bits.Format(uint16(l), AddrBits)] = c.String()
	}
	return m
}

// WriteTo serializes the image as one "location word" pair per line, in
// increasing location order, using the same fixed-width binary rendering
// as Binary. It implements io.WriterTo.
func (img Image) WriteTo(w io.Writer) (int64, error) {
	ew := &errWriter{w: w}
	for _, l := range img.Locations() {
		io.WriteString(ew, bits.Format(uint16(l), AddrBits))
		ew.Write([]byte{' '})
		io.WriteString(ew, img[l].String())
		ew.Write([]byte{'\n'})
	}
	return ew.n, ew.err
}

// Read parses an image previously serialized by WriteTo. A second field
// that is not a 16 bit binary string is kept as a raw cell.
func Read(r io.Reader) (Image, error) {
	img := make(Image)
	s := bufio.NewScanner(r)
	n := 0
	for s.Scan() {
		n++
		line := strings.TrimSpace(s.Text())
		if line == "" {
			continue
		}
		f := strings.Fields(line)
		if len(f) != 2 {
			return nil, errors.Errorf("image: line %d: expected \"location word\", got %q", n, line)
		}
		loc, err := bits.Parse(f[0], 2, AddrBits)
		if err != nil {
			return nil, errors.Wrapf(err, "image: line %d: bad location %q", n, f[0])
		}
		if bits.IsBinary(f[1]) && len(f[1]) == WordBits {
			w, err := bits.Parse(f[1], 2, WordBits)
			if err != nil {
				return nil, errors.Wrapf(err, "image: line %d: bad word %q", n, f[1])
			}
			img[int(loc)] = Word(w)
		} else {
			img[int(loc)] = Raw(f[1])
		}
	}
	if err := s.Err(); err != nil {
		return nil, errors.Wrap(err, "image read failed")
	}
	return img, nil
}

// Save writes the image to the named file.
func Save(fileName string, img Image) error {
	f, err := os.Create(fileName)
	if err != nil {
		return errors.Wrap(err, "Save")
	}
	if _, err = img.WriteTo(f); err != nil {
		f.Close()
		return errors.Wrap(err, "Save")
	}
	return errors.Wrap(f.Close(), "Save")
}

// Load reads an image from the named file.
func Load(fileName string) (Image, error) {
	f, err := os.Open(fileName)
	if err != nil {
		return nil, errors.Wrap(err, "Load")
	}
	defer f.Close()
	img, err := Read(f)
	if err != nil {
		return nil, errors.Wrap(err, "Load")
	}
	return img, nil
}
