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

// Bcasm is the command line front end for the two-pass basic computer
// assembler.
//
// Usage:
//
//	bcasm assemble [flags] file.asm
//	bcasm dump [flags] imagefile
//
// Shared flags (all subcommands):
//
//	--mri file
//		memory-reference instruction table (default "mri.txt")
//	--rri file
//		register-reference instruction table (default "rri.txt")
//	--ioi file
//		input/output instruction table (default "ioi.txt")
//
// assemble flags:
//
//	-o, --out file
//		write the assembled image to file; without it the "location word"
//		mapping is printed to stdout
//	-l, --listing
//		print a symbolic listing to stderr
//	-v, --verbose
//		pretty-print the loaded tables and the output mapping to stderr
//
// dump flags:
//
//	-l, --listing
//		decode the image against the instruction tables instead of
//		printing the raw mapping
package main
