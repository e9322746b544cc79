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

package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
)

func runList(args []string) error {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	archivePath := fs.String("archive", "", "archive path, optionally bundle-nested (e.g. mod.zip/H3sprite.lod) (required)")
	glob := fs.String("glob", "", "only list entries matching this glob")
	if err := fs.Parse(args); err != nil {
		return usageError{err.Error()}
	}
	if *archivePath == "" {
		return usageError{"list: -archive is required"}
	}

	a, err := openArchive(*archivePath, log.New(io.Discard, "", 0))
	if err != nil {
		return err
	}

	entries, err := a.List(*glob)
	if err != nil {
		return usageError{err.Error()}
	}

	fmt.Printf("%-24s %-10s %12s %12s\n", "NAME", "TYPE", "PACKED", "UNPACKED")
	for _, e := range entries {
		kind := "store"
		if e.Compressed() {
			kind = e.Method.String()
		}
		fmt.Fprintf(os.Stdout, "%-24s %-10s %12d %12d\n", e.Name, kind, e.PackedSize, e.UnpackedSize)
	}
	return nil
}
