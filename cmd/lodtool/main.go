// Copyright (c) 2025 Niema Moshiri and The Zaparoo Project.
// SPDX-License-Identifier: GPL-3.0-or-later
//
// This file is part of go-gameid.
//
// go-gameid is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// go-gameid is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with go-gameid.  If not, see <https://www.gnu.org/licenses/>.

// Command lodtool inspects and converts Heroes/Might-and-Magic LOD archives
// and DEF sprite animations.
package main

import (
	"fmt"
	"log"
	"os"
)

const appVersion = "0.1.0"

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	logger := log.New(os.Stderr, "", 0)

	var err error
	switch os.Args[1] {
	case "list":
		err = runList(os.Args[2:])
	case "extract":
		err = runExtract(os.Args[2:], logger)
	case "add":
		err = runAdd(os.Args[2:], logger)
	case "extractdef":
		err = runExtractDef(os.Args[2:], logger)
	case "extractwebp":
		err = runExtractWebP(os.Args[2:], logger)
	case "testdef":
		err = runTestDef(os.Args[2:], logger)
	case "-version", "--version", "version":
		fmt.Printf("lodtool version %s\n", appVersion)
		return
	case "-h", "-help", "--help", "help":
		usage()
		return
	default:
		fmt.Fprintf(os.Stderr, "lodtool: unknown command %q\n\n", os.Args[1])
		usage()
		os.Exit(2)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "lodtool: %v\n", err)
		if isUsageError(err) {
			os.Exit(2)
		}
		os.Exit(3)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: lodtool <command> [options]\n\n")
	fmt.Fprintf(os.Stderr, "Commands:\n")
	fmt.Fprintf(os.Stderr, "  list         -archive FILE [-glob PATTERN]\n")
	fmt.Fprintf(os.Stderr, "  extract      -archive FILE -out DIR [-glob PATTERN] [-strict]\n")
	fmt.Fprintf(os.Stderr, "  add          -archive FILE -file FILE [-name NAME] [-compress]\n")
	fmt.Fprintf(os.Stderr, "  extractdef   -archive FILE | -def FILE -out DIR [-no-shadow] [-24bits]\n")
	fmt.Fprintf(os.Stderr, "  extractwebp  -archive FILE | -def FILE | -dir DIR -out DIR [-crop MODE] [-hota] [-shadow-in-main]\n")
	fmt.Fprintf(os.Stderr, "  testdef      -archive FILE | -def FILE\n")
	fmt.Fprintf(os.Stderr, "\nFILE may name a plain path or a member nested inside a .zip/.7z/.rar mod bundle,\n")
	fmt.Fprintf(os.Stderr, "e.g. mods/HotaUpscale.zip/Sprites/H3sprite.lod (add always requires a plain path).\n")
	fmt.Fprintf(os.Stderr, "\nExamples:\n")
	fmt.Fprintf(os.Stderr, "  lodtool list -archive H3sprite.lod\n")
	fmt.Fprintf(os.Stderr, "  lodtool extractdef -def CPRSMALL.def -out ./out\n")
	fmt.Fprintf(os.Stderr, "  lodtool testdef -def mods/HotaUpscale.zip/Sprites/CPRSMALL.def\n")
}

// usageError marks a malformed argument or unsupported combination, mapped
// to exit code 2.
type usageError struct{ msg string }

func (e usageError) Error() string { return e.msg }

func isUsageError(err error) bool {
	_, ok := err.(usageError) //nolint:errorlint // sentinel-by-type, never wrapped
	return ok
}
