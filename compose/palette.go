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

import "github.com/legacymm/lodkit/def"

const (
	shadowEdgeAlpha = 127
	shadowBodyAlpha = 191
)

// palettePolicy applies the shadow/transparency rules of SPEC_FULL.md §4.6
// to one source palette index, returning the emitted RGBA quad.
func palettePolicy(index byte, palette def.Palette, shadowInMain, hotaP2P3, keepSelectionPalette bool) (r, g, b, a uint8) {
	switch index {
	case 0:
		return 0, 0, 0, 0
	case 1:
		if shadowInMain {
			return 0, 0, 0, shadowEdgeAlpha
		}
	case 2:
		if shadowInMain || hotaP2P3 {
			return 0, 0, 0, shadowEdgeAlpha
		}
	case 3:
		if shadowInMain || hotaP2P3 {
			return 0, 0, 0, shadowBodyAlpha
		}
	case 4:
		if shadowInMain {
			return 0, 0, 0, shadowBodyAlpha
		}
	case 5:
		if !keepSelectionPalette {
			return 0, 0, 0, 0
		}
	case 6:
		if shadowInMain {
			return 0, 0, 0, shadowBodyAlpha
		}
	case 7:
		if shadowInMain {
			return 0, 0, 0, shadowEdgeAlpha
		}
	}

	rgb := palette[index]
	return rgb.R, rgb.G, rgb.B, 255
}

// resolveSourceIndex applies the "255 -> 5" background remap (HotA-only,
// object-id-gated) ahead of the palette policy.
func resolveSourceIndex(index byte, hotaBackgroundRemap bool) byte {
	if index == 255 && hotaBackgroundRemap {
		return 5
	}
	return index
}
