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
)

func runExtract(args []string, logger *log.Logger) error {
	fs := flag.NewFlagSet("extract", flag.ContinueOnError)
	archivePath := fs.String("archive", "", "archive path, optionally bundle-nested (e.g. mod.zip/H3sprite.lod) (required)")
	outDir := fs.String("out", "", "output directory (required)")
	glob := fs.String("glob", "", "only extract entries matching this glob")
	strict := fs.Bool("strict", false, "fail on decompression length mismatch instead of best-effort recovery")
	if err := fs.Parse(args); err != nil {
		return usageError{err.Error()}
	}
	if *archivePath == "" || *outDir == "" {
		return usageError{"extract: -archive and -out are required"}
	}

	a, err := openArchive(*archivePath, logger)
	if err != nil {
		return err
	}

	entries, err := a.List(*glob)
	if err != nil {
		return usageError{err.Error()}
	}

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	for _, e := range entries {
		data, err := a.Extract(e.Name, !*strict)
		if err != nil {
			return fmt.Errorf("extracting %q: %w", e.Name, err)
		}
		if err := writeFileAtomic(filepath.Join(*outDir, e.Name), data); err != nil {
			return err
		}
	}

	fmt.Printf("extracted %d entries to %s\n", len(entries), *outDir)
	return nil
}

// writeFileAtomic writes to a temporary file in the destination directory
// and renames it into place, so a cancelled run never leaves a partial
// output file.
func writeFileAtomic(path string, data []byte) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil { //nolint:gosec // output is not executable
		return fmt.Errorf("writing %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("renaming %s: %w", tmp, err)
	}
	return nil
}
