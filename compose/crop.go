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

package compose

import (
	"strings"

	"github.com/legacymm/lodkit/def"
)

// renderFullCanvas maps a frame's palette-indexed pixel block onto its
// full_width x full_height canvas (transparent elsewhere) and applies the
// palette policy, producing a row-major RGBA buffer.
func renderFullCanvas(frame *def.Frame, palette def.Palette, shadowInMain, hotaP2P3, keepSelectionPalette, hotaBgRemap bool) []byte {
	fullWidth, fullHeight := int(frame.FullWidth), int(frame.FullHeight)
	rgba := make([]byte, fullWidth*fullHeight*4)

	width, height := int(frame.Width), int(frame.Height)
	left, top := int(frame.Left), int(frame.Top)

	for row := 0; row < height; row++ {
		for col := 0; col < width; col++ {
			src := frame.Pixels[row*width+col]
			idx := resolveSourceIndex(src, hotaBgRemap)
			r, g, b, a := palettePolicy(idx, palette, shadowInMain, hotaP2P3, keepSelectionPalette)

			canvasX, canvasY := left+col, top+row
			if canvasX < 0 || canvasX >= fullWidth || canvasY < 0 || canvasY >= fullHeight {
				continue
			}
			base := (canvasY*fullWidth + canvasX) * 4
			rgba[base+0] = r
			rgba[base+1] = g
			rgba[base+2] = b
			rgba[base+3] = a
		}
	}

	return rgba
}

// tightBBox returns the smallest Bounds enclosing every non-transparent
// pixel in a full-canvas RGBA buffer. If every pixel is transparent, it
// returns a zero-area Bounds at the origin.
func tightBBox(rgba []byte, width, height int) Bounds {
	minX, minY := width, height
	maxX, maxY := 0, 0
	found := false

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if rgba[(y*width+x)*4+3] == 0 {
				continue
			}
			found = true
			if x < minX {
				minX = x
			}
			if x+1 > maxX {
				maxX = x + 1
			}
			if y < minY {
				minY = y
			}
			if y+1 > maxY {
				maxY = y + 1
			}
		}
	}

	if !found {
		return Bounds{}
	}
	return Bounds{Left: minX, Top: minY, Right: maxX, Bottom: maxY}
}

// unionBounds grows a into the smallest Bounds containing both a and b,
// treating a zero-area a as "no bounds yet".
func unionBounds(a, b Bounds) Bounds {
	if a == (Bounds{}) {
		return b
	}
	if b == (Bounds{}) {
		return a
	}
	out := a
	if b.Left < out.Left {
		out.Left = b.Left
	}
	if b.Top < out.Top {
		out.Top = b.Top
	}
	if b.Right > out.Right {
		out.Right = b.Right
	}
	if b.Bottom > out.Bottom {
		out.Bottom = b.Bottom
	}
	return out
}

// cropCanvas slices a full-canvas RGBA buffer down to bounds, clamped to
// the canvas extent.
func cropCanvas(rgba []byte, fullWidth, fullHeight int, bounds Bounds) (cropped []byte, width, height int) {
	left, top, right, bottom := bounds.Left, bounds.Top, bounds.Right, bounds.Bottom
	if left < 0 {
		left = 0
	}
	if top < 0 {
		top = 0
	}
	if right > fullWidth {
		right = fullWidth
	}
	if bottom > fullHeight {
		bottom = fullHeight
	}
	if right < left {
		right = left
	}
	if bottom < top {
		bottom = top
	}

	width = right - left
	height = bottom - top
	cropped = make([]byte, width*height*4)

	for row := 0; row < height; row++ {
		srcStart := ((top+row)*fullWidth + left) * 4
		copy(cropped[row*width*4:(row+1)*width*4], rgba[srcStart:srcStart+width*4])
	}

	return cropped, width, height
}

// resolvePredefinedBounds implements the CropPredefined lookup: the
// def_type's default bounds, overridden by the first matching name-token
// override.
func resolvePredefinedBounds(cfg Config, defType uint32, objectName string) (Bounds, bool) {
	for _, override := range cfg.CropOverrides {
		if override.DefType != defType {
			continue
		}
		if override.Token != "" && strings.Contains(objectName, override.Token) {
			return override.Bounds, true
		}
	}
	if b, ok := cfg.CropBoundsByDefType[defType]; ok {
		return b, true
	}
	return Bounds{}, false
}
