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
	"os"

	"github.com/spf13/cobra"

	"github.com/nasrrx/Two-Pass-Computer-Assembler/asm"
	"github.com/nasrrx/Two-Pass-Computer-Assembler/image"
)

var dumpListing bool

var dumpCmd = &cobra.Command{
	Use:   "dump [flags] imagefile",
	Short: "print a saved memory image",
	Args:  cobra.ExactArgs(1),
	RunE:  runDump,
}

func init() {
	dumpCmd.Flags().BoolVarP(&dumpListing, "listing", "l", false,
		"decode words against the instruction tables")
	rootCmd.AddCommand(dumpCmd)
}

func runDump(cmd *cobra.Command, args []string) error {
	img, err := image.Load(args[0])
	if err != nil {
		return err
	}
	if !dumpListing {
		_, err = img.WriteTo(os.Stdout)
		return err
	}
	tables, err := loadTables()
	if err != nil {
		return err
	}
	return asm.Disassemble(img, tables, os.Stdout)
}
