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

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/k0kubun/pp/v3"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/nasrrx/Two-Pass-Computer-Assembler/asm"
	"github.com/nasrrx/Two-Pass-Computer-Assembler/image"
)

var (
	outFile string
	listing bool
	verbose bool
)

var assembleCmd = &cobra.Command{
	Use:   "assemble [flags] file.asm",
	Short: "assemble a source file into a memory image",
	Args:  cobra.ExactArgs(1),
	RunE:  runAssemble,
}

func init() {
	f := assembleCmd.Flags()
	f.StringVarP(&outFile, "out", "o", "", "write the image to `file` instead of stdout")
	f.BoolVarP(&listing, "listing", "l", false, "print a symbolic listing to stderr")
	f.BoolVarP(&verbose, "verbose", "v", false, "trace tables and output mapping to stderr")
	rootCmd.AddCommand(assembleCmd)
}

func runAssemble(cmd *cobra.Command, args []string) error {
	src := args[0]
	if ext := strings.ToLower(filepath.Ext(src)); ext != ".asm" && ext != ".s" {
		return errors.Errorf("%s: source files must end in .asm or .s", src)
	}
	tables, err := loadTables()
	if err != nil {
		return err
	}
	if verbose {
		pp.Fprintf(os.Stderr, "instruction tables: %v\n", tables)
	}

	img, err := asm.AssembleFile(src, tables)
	if err != nil {
		var aerr *asm.Error
		if !errors.As(err, &aerr) || aerr.Kind != asm.MissingEndDirective {
			return err
		}
		// the image is still complete, just ambiguous about being so
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	}

	if verbose {
		pp.Fprintf(os.Stderr, "output mapping: %v\n", img.Binary())
	}
	if listing {
		if err := asm.Disassemble(img, tables, os.Stderr); err != nil {
			return err
		}
	}
	if outFile != "" {
		return image.Save(outFile, img)
	}
	_, err = img.WriteTo(os.Stdout)
	return err
}
