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

// Package pixel implements minimal PCX and BMP decoders sufficient to
// recover an 8-bit paletted image or a 24-bit RGB image, feeding the DEF
// encoder and frame composer's external collaborators.
package pixel

import (
	"errors"
	"fmt"
)

// ErrTruncated indicates a PCX or BMP stream ended before a declared record
// was fully read.
var ErrTruncated = errors.New("pixel: truncated input")

// ErrUnsupported indicates a structurally valid file in a variant this
// minimal decoder does not implement (e.g. 4-bit BMP, RLE-compressed PCX
// variants beyond the run-length scheme, or a BMP compression mode other
// than BI_RGB).
var ErrUnsupported = errors.New("pixel: unsupported variant")

// UnsupportedFeatureError names the specific unsupported field/value.
type UnsupportedFeatureError struct {
	Format  string
	Feature string
	Value   int
}

func (e UnsupportedFeatureError) Error() string {
	return fmt.Sprintf("pixel: %s: unsupported %s %d", e.Format, e.Feature, e.Value)
}

func (UnsupportedFeatureError) Unwrap() error { return ErrUnsupported }

// RGB is one palette entry.
type RGB struct {
	R, G, B uint8
}

// Indexed8 is a decoded 8-bit paletted image.
type Indexed8 struct {
	Width, Height int
	Palette       [256]RGB
	Pixels        []byte // row-major, top-down, width*height bytes
}

// RGB24 is a decoded 24-bit truecolour image.
type RGB24 struct {
	Width, Height int
	Pixels        []byte // row-major, top-down, width*height*3 bytes
}
