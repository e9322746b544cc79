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
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/legacymm/lodkit/compose"
	"github.com/legacymm/lodkit/def"
	"github.com/legacymm/lodkit/lod"
	"github.com/legacymm/lodkit/modbundle"
)

// namedDef pairs a decoded DEF with the entry/file name it came from, for
// diagnostics and output file naming.
type namedDef struct {
	Name string
	Def  *def.Def
}

// loadDefFile decodes a single DEF, either a plain file or one named inside a
// mod bundle (e.g. "mods/HotaUpscale.zip/Sprites/CPRSMALL.def" or just
// "mods/HotaUpscale.zip" to auto-detect its first nested DEF).
func loadDefFile(path string) (*def.Def, error) {
	ra, size, closer, ok, err := modbundle.ResolveReaderAt(path, modbundle.KindSprite)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", path, err)
	}
	if ok {
		defer func() { _ = closer.Close() }()
		d, err := def.Decode(ra, size)
		if err != nil {
			return nil, fmt.Errorf("decoding %s: %w", path, err)
		}
		return d, nil
	}

	data, err := os.ReadFile(path) //nolint:gosec // caller-provided path
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	d, err := def.Decode(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return d, nil
}

// openArchive opens an LOD archive named by a plain path or a bundle-nested
// path (e.g. "mods/HotaUpscale.zip/Sprites/H3sprite.lod").
func openArchive(archivePath string, logger *log.Logger) (*lod.Archive, error) {
	ra, size, closer, ok, err := modbundle.ResolveReaderAt(archivePath, modbundle.KindArchive)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", archivePath, err)
	}
	if !ok {
		return lod.Open(archivePath, lod.WithLogger(logger))
	}
	defer func() { _ = closer.Close() }()
	return lod.OpenReaderAt(ra, size, lod.WithLogger(logger))
}

// loadDefsFromArchive decodes every .def entry of an LOD archive.
func loadDefsFromArchive(archivePath string, logger *log.Logger) ([]namedDef, error) {
	a, err := openArchive(archivePath, logger)
	if err != nil {
		return nil, err
	}

	entries, err := a.List("*.def")
	if err != nil {
		return nil, err
	}

	out := make([]namedDef, 0, len(entries))
	for _, e := range entries {
		data, err := a.Extract(e.Name, true)
		if err != nil {
			logger.Printf("skipping %q: %v", e.Name, err)
			continue
		}
		d, err := def.Decode(bytes.NewReader(data), int64(len(data)))
		if err != nil {
			logger.Printf("skipping %q: %v", e.Name, err)
			continue
		}
		out = append(out, namedDef{Name: e.Name, Def: d})
	}
	return out, nil
}

// loadDefsFromDir decodes every *.def file under dir (non-recursive
// extensions are matched case-insensitively; the walk itself is recursive
// to support HDL-structured mod trees).
func loadDefsFromDir(dir string, logger *log.Logger) ([]namedDef, error) {
	var out []namedDef
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || strings.ToLower(filepath.Ext(path)) != ".def" {
			return nil
		}
		parsed, err := loadDefFile(path)
		if err != nil {
			logger.Printf("skipping %q: %v", path, err)
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			rel = path
		}
		out = append(out, namedDef{Name: rel, Def: parsed})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", dir, err)
	}
	return out, nil
}

// resolveDefs loads the DEF set named by whichever of archivePath, defPath,
// or dirPath is non-empty. Exactly one is expected to be set.
func resolveDefs(archivePath, defPath, dirPath string, logger *log.Logger) ([]namedDef, error) {
	switch {
	case archivePath != "":
		return loadDefsFromArchive(archivePath, logger)
	case defPath != "":
		d, err := loadDefFile(defPath)
		if err != nil {
			return nil, err
		}
		return []namedDef{{Name: filepath.Base(defPath), Def: d}}, nil
	case dirPath != "":
		return loadDefsFromDir(dirPath, logger)
	default:
		return nil, usageError{"one of -archive, -def, or -dir is required"}
	}
}

// defBoundsByDefType is the built-in default crop bounds table: enough to
// exercise CropPredefined end to end without requiring a caller-supplied
// JSON config (which is explicitly an external collaborator's job).
func defBoundsByDefType() map[uint32]compose.Bounds {
	return map[uint32]compose.Bounds{
		def.TypeMapObject: {Left: 15, Top: 3, Right: 77, Bottom: 64},
	}
}

// defCropOverrides is the built-in name-token override table, covering the
// flying-vs-water-unit distinction ("Airship"/"Boat") for map-object DEFs
// (def.TypeMapObject, 0x43).
func defCropOverrides() []compose.CropOverride {
	bounds := compose.Bounds{Left: 0, Top: 0, Right: 85, Bottom: 127}
	return []compose.CropOverride{
		{DefType: def.TypeMapObject, Token: "Airship", Bounds: bounds},
		{DefType: def.TypeMapObject, Token: "Boat", Bounds: bounds},
	}
}

// defaultComposeConfig builds the small built-in policy tables the CLI needs
// to exercise every compose.Config field end to end. Real deployments supply
// their own tables loaded from an external format; that loader is out of
// scope here.
func defaultComposeConfig(cropMode compose.CropMode, hota, shadowInMain bool) compose.Config {
	shadowMode := compose.SeparateShadow
	if shadowInMain {
		shadowMode = compose.ShadowInMain
	}
	return compose.Config{
		ShadowMode:          shadowMode,
		CropMode:            cropMode,
		HotA:                hota,
		CropBoundsByDefType: defBoundsByDefType(),
		CropOverrides:       defCropOverrides(),
		DurationMsByDefType: map[uint32]uint32{},
	}
}

func parseCropMode(s string) (compose.CropMode, error) {
	switch s {
	case "", "predefined":
		return compose.CropPredefined, nil
	case "individual":
		return compose.CropIndividual, nil
	case "none":
		return compose.CropNone, nil
	default:
		return 0, usageError{fmt.Sprintf("unknown crop mode %q (want predefined, individual, or none)", s)}
	}
}
