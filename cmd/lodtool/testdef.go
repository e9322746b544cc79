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
	"bytes"
	"flag"
	"fmt"
	"log"

	"github.com/legacymm/lodkit/def"
)

// runTestDef decodes every DEF reachable from -archive or -def, including
// every frame of every group, without writing any output, and reports a
// per-DEF pass/fail summary. It never returns early on a single DEF's
// failure: every named input gets a verdict.
func runTestDef(args []string, logger *log.Logger) error {
	fs := flag.NewFlagSet("testdef", flag.ContinueOnError)
	archivePath := fs.String("archive", "", "LOD archive containing one or more .def entries, optionally bundle-nested (e.g. mod.zip/H3sprite.lod)")
	defPath := fs.String("def", "", "single .def file, optionally bundle-nested (e.g. mod.zip/Sprites/CPRSMALL.def)")
	if err := fs.Parse(args); err != nil {
		return usageError{err.Error()}
	}
	if *archivePath == "" && *defPath == "" {
		return usageError{"testdef: one of -archive or -def is required"}
	}

	var names []string
	var decode func(name string) (*def.Def, error)

	if *archivePath != "" {
		a, err := openArchive(*archivePath, logger)
		if err != nil {
			return err
		}
		entries, err := a.List("*.def")
		if err != nil {
			return err
		}
		for _, e := range entries {
			names = append(names, e.Name)
		}
		decode = func(name string) (*def.Def, error) {
			data, err := a.Extract(name, true)
			if err != nil {
				return nil, err
			}
			return def.Decode(bytes.NewReader(data), int64(len(data)))
		}
	} else {
		names = []string{*defPath}
		decode = loadDefFile
	}

	failures := 0
	for _, name := range names {
		if err := testOneDef(name, decode); err != nil {
			fmt.Printf("FAIL %s: %v\n", name, err)
			failures++
			continue
		}
		fmt.Printf("OK   %s\n", name)
	}

	if failures > 0 {
		return fmt.Errorf("%d of %d DEF(s) failed", failures, len(names))
	}
	return nil
}

func testOneDef(name string, decode func(string) (*def.Def, error)) error {
	d, err := decode(name)
	if err != nil {
		return err
	}
	for groupIdx, group := range d.Groups {
		for frameIdx := range group.FrameOffsets {
			if _, err := d.Frame(groupIdx, frameIdx); err != nil {
				return fmt.Errorf("group %d frame %d: %w", group.GroupIndex, frameIdx, err)
			}
		}
	}
	return nil
}
