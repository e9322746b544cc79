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
	"image"
	"image/color"
	"image/gif"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/legacymm/lodkit/compose"
	"github.com/legacymm/lodkit/def"
)

func runExtractWebP(args []string, logger *log.Logger) error {
	fs := flag.NewFlagSet("extractwebp", flag.ContinueOnError)
	archivePath := fs.String("archive", "", "LOD archive containing one or more .def entries, optionally bundle-nested (e.g. mod.zip/H3sprite.lod)")
	defPath := fs.String("def", "", "single .def file, optionally bundle-nested (e.g. mod.zip/Sprites/CPRSMALL.def)")
	dirPath := fs.String("dir", "", "directory tree of .def files (HDL-structured mod layout)")
	outDir := fs.String("out", "", "output directory (required)")
	cropFlag := fs.String("crop", "predefined", "crop mode: predefined, individual, or none")
	hota := fs.Bool("hota", false, "apply HotA-specific palette fixes")
	shadowInMain := fs.Bool("shadow-in-main", false, "treat the main DEF's own shadow indices as shadow instead of a separate shadow DEF")
	if err := fs.Parse(args); err != nil {
		return usageError{err.Error()}
	}
	if *outDir == "" {
		return usageError{"extractwebp: -out is required"}
	}

	cropMode, err := parseCropMode(*cropFlag)
	if err != nil {
		return err
	}

	defs, err := resolveDefs(*archivePath, *defPath, *dirPath, logger)
	if err != nil {
		return err
	}
	if len(defs) == 0 {
		return usageError{"extractwebp: no .def input found (use -archive, -def, or -dir)"}
	}

	cfg := defaultComposeConfig(cropMode, *hota, *shadowInMain)
	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	written := 0
	for _, nd := range defs {
		if err := writeAnimatedGIF(nd, cfg, *outDir); err != nil {
			logger.Printf("skipping %q: %v", nd.Name, err)
			continue
		}
		written++
	}

	fmt.Printf("wrote %d animated image(s) to %s\n", written, *outDir)
	return nil
}

// writeAnimatedGIF composes every group/frame of one DEF, in group order,
// into a single animated GIF whose per-frame delay matches the composer's
// computed duration.
func writeAnimatedGIF(nd namedDef, cfg compose.Config, outDir string) error {
	base := strings.TrimSuffix(filepath.Base(nd.Name), filepath.Ext(nd.Name))

	frames, err := compose.Compose(compose.Input{Main: nd.Def, ObjectName: base}, cfg)
	if err != nil {
		return err
	}
	if len(frames) == 0 {
		return fmt.Errorf("no frames decoded")
	}

	palette := paletteFromDef(nd.Def)

	anim := &gif.GIF{}
	for _, f := range frames {
		img := image.NewPaletted(image.Rect(0, 0, f.Width, f.Height), palette)
		for i := 0; i < f.Width*f.Height; i++ {
			r, g, b, a := f.RGBA[i*4], f.RGBA[i*4+1], f.RGBA[i*4+2], f.RGBA[i*4+3]
			if a == 0 {
				img.Pix[i] = 0
				continue
			}
			img.Pix[i] = uint8(palette.Index(color.RGBA{R: r, G: g, B: b, A: 255}))
		}
		anim.Image = append(anim.Image, img)
		// GIF delay is in 1/100ths of a second.
		anim.Delay = append(anim.Delay, int(f.DurationMS/10)) //nolint:gosec // bounded animation durations
		anim.Disposal = append(anim.Disposal, gif.DisposalBackground)
	}

	var buf bytes.Buffer
	if err := gif.EncodeAll(&buf, anim); err != nil {
		return fmt.Errorf("encoding gif: %w", err)
	}

	return writeFileAtomic(filepath.Join(outDir, base+".gif"), buf.Bytes())
}

// paletteFromDef builds a GIF-ready palette from a DEF's 256-entry palette,
// reserving index 0 as fully transparent (the decoder's universal
// "transparent" source index).
func paletteFromDef(d *def.Def) color.Palette {
	palette := make(color.Palette, 256)
	palette[0] = color.RGBA{A: 0}
	for i := 1; i < 256; i++ {
		rgb := d.Palette[i]
		palette[i] = color.RGBA{R: rgb.R, G: rgb.G, B: rgb.B, A: 255}
	}
	return palette
}
