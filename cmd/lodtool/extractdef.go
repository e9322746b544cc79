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
	"os"
	"path/filepath"
	"strings"

	"github.com/legacymm/lodkit/def"
	"github.com/legacymm/lodkit/pixel"
)

// shadowIndices are the palette indices SPEC_FULL.md §4.6 treats as shadow
// under the shadow-in-main policy; -no-shadow blanks them in indexed output.
var shadowIndices = map[byte]bool{1: true, 2: true, 3: true, 4: true, 6: true, 7: true}

func runExtractDef(args []string, logger *log.Logger) error {
	fs := flag.NewFlagSet("extractdef", flag.ContinueOnError)
	archivePath := fs.String("archive", "", "LOD archive containing one or more .def entries, optionally bundle-nested (e.g. mod.zip/H3sprite.lod)")
	defPath := fs.String("def", "", "single .def file, optionally bundle-nested (e.g. mod.zip/Sprites/CPRSMALL.def)")
	outDir := fs.String("out", "", "output directory (required)")
	noShadow := fs.Bool("no-shadow", false, "blank shadow pixels instead of passing them through")
	bits24 := fs.Bool("24bits", false, "write 24-bit truecolour BMPs instead of 8-bit indexed")
	if err := fs.Parse(args); err != nil {
		return usageError{err.Error()}
	}
	if *outDir == "" {
		return usageError{"extractdef: -out is required"}
	}

	defs, err := resolveDefs(*archivePath, *defPath, "", logger)
	if err != nil {
		return err
	}
	if len(defs) == 0 {
		return usageError{"extractdef: no .def input found (use -archive or -def)"}
	}

	for _, nd := range defs {
		if err := extractOneDef(nd, *outDir, *noShadow, *bits24); err != nil {
			return fmt.Errorf("extractdef %q: %w", nd.Name, err)
		}
	}

	fmt.Printf("extracted %d DEF(s) to %s\n", len(defs), *outDir)
	return nil
}

func extractOneDef(nd namedDef, outDir string, noShadow, bits24 bool) error {
	base := strings.TrimSuffix(filepath.Base(nd.Name), filepath.Ext(nd.Name))
	destDir := filepath.Join(outDir, base)
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", destDir, err)
	}

	var manifest bytes.Buffer
	fmt.Fprintf(&manifest, "def_type=%d full_width=%d full_height=%d groups=%d\n",
		nd.Def.Header.DefType, nd.Def.Header.FullWidth, nd.Def.Header.FullHeight, len(nd.Def.Groups))

	for groupIdx, group := range nd.Def.Groups {
		fmt.Fprintf(&manifest, "group %d frames=%d\n", group.GroupIndex, len(group.FrameOffsets))
		for frameIdx := range group.FrameOffsets {
			frame, err := nd.Def.Frame(groupIdx, frameIdx)
			if err != nil {
				return err
			}

			fileName := fmt.Sprintf("%s_g%d_f%d.bmp", base, group.GroupIndex, frameIdx)
			if err := writeFrameBMP(filepath.Join(destDir, fileName), nd.Def, frame, noShadow, bits24); err != nil {
				return err
			}

			name := group.FrameNames[frameIdx]
			fmt.Fprintf(&manifest, "  %d %s left=%d top=%d width=%d height=%d -> %s\n",
				frameIdx, name, frame.Left, frame.Top, frame.Width, frame.Height, fileName)
		}
	}

	return writeFileAtomic(filepath.Join(destDir, base+".hdl.txt"), manifest.Bytes())
}

func writeFrameBMP(path string, d *def.Def, frame *def.Frame, noShadow, bits24 bool) error {
	var buf bytes.Buffer

	if !bits24 {
		pixels := make([]byte, len(frame.Pixels))
		copy(pixels, frame.Pixels)
		if noShadow {
			for i, v := range pixels {
				if shadowIndices[v] {
					pixels[i] = 0
				}
			}
		}
		img := &pixel.Indexed8{Width: int(frame.Width), Height: int(frame.Height), Pixels: pixels}
		img.Palette = [256]pixel.RGB(d.Palette)
		if err := pixel.EncodeBMP8(&buf, img); err != nil {
			return err
		}
	} else {
		if err := pixel.EncodeBMP24(&buf, frameToRGB24(d, frame, noShadow)); err != nil {
			return err
		}
	}

	return writeFileAtomic(path, buf.Bytes())
}

// frameToRGB24 resolves each indexed pixel to its palette colour, flattening
// index 0 (transparent) and, under noShadow, shadow indices to black.
func frameToRGB24(d *def.Def, frame *def.Frame, noShadow bool) *pixel.RGB24 {
	out := &pixel.RGB24{Width: int(frame.Width), Height: int(frame.Height), Pixels: make([]byte, int(frame.Width)*int(frame.Height)*3)}
	for i, idx := range frame.Pixels {
		if idx == 0 || (noShadow && shadowIndices[idx]) {
			continue
		}
		rgb := d.Palette[idx]
		out.Pixels[i*3], out.Pixels[i*3+1], out.Pixels[i*3+2] = rgb.R, rgb.G, rgb.B
	}
	return out
}
