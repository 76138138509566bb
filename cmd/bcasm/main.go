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
)

// instruction table files, shared by all subcommands
var (
	mriFile string
	rriFile string
	ioiFile string
)

var rootCmd = &cobra.Command{
	Use:   "bcasm",
	Short: "two-pass assembler for the basic computer",
	Long: `Bcasm assembles basic computer source into a location-indexed image of
16 bit machine words. The instruction set is loaded from three table
files (memory-reference, register-reference and input/output), one
"mnemonic encoding" pair per line.`,
	SilenceUsage: true,
}

func init() {
	f := rootCmd.PersistentFlags()
	f.StringVar(&mriFile, "mri", "mri.txt", "memory-reference instruction table file")
	f.StringVar(&rriFile, "rri", "rri.txt", "register-reference instruction table file")
	f.StringVar(&ioiFile, "ioi", "ioi.txt", "input/output instruction table file")
}

// loadTables loads the three instruction tables from the shared flags.
func loadTables() (*asm.Set, error) {
	return asm.LoadSet(mriFile, rriFile, ioiFile)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
