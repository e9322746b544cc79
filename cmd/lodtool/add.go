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
	"log"
	"os"
	"path/filepath"

	"github.com/legacymm/lodkit/lod"
)

// runAdd always opens archivePath as a plain on-disk file: writing a new
// directory back into a .zip/.7z/.rar-nested member isn't something Bundle
// supports, so bundle-nested paths aren't accepted here the way they are for
// the read-only commands.
func runAdd(args []string, logger *log.Logger) error {
	fs := flag.NewFlagSet("add", flag.ContinueOnError)
	archivePath := fs.String("archive", "", "archive path, must be a plain on-disk file (required)")
	filePath := fs.String("file", "", "file to add (required)")
	name := fs.String("name", "", "entry name within the archive (default: source file's base name)")
	compress := fs.Bool("compress", false, "store the entry compressed")
	if err := fs.Parse(args); err != nil {
		return usageError{err.Error()}
	}
	if *archivePath == "" || *filePath == "" {
		return usageError{"add: -archive and -file are required"}
	}

	entryName := *name
	if entryName == "" {
		entryName = filepath.Base(*filePath)
	}

	data, err := os.ReadFile(*filePath) //nolint:gosec // caller-provided path
	if err != nil {
		return fmt.Errorf("reading %s: %w", *filePath, err)
	}

	a, err := lod.Open(*archivePath, lod.WithLogger(logger))
	if err != nil {
		return err
	}

	if err := a.AddEntry(entryName, data, *compress); err != nil {
		return fmt.Errorf("adding %q: %w", entryName, err)
	}

	rebuilt, err := a.Rebuild()
	if err != nil {
		return fmt.Errorf("rebuilding archive: %w", err)
	}

	if err := writeFileAtomic(*archivePath, rebuilt); err != nil {
		return err
	}

	fmt.Printf("added %q, rebuilt %s (%d bytes)\n", entryName, *archivePath, len(rebuilt))
	return nil
}
