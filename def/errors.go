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

// Package def implements the DEF sprite/animation decoder and encoder:
// header, palette, group table, and the four per-frame pixel encodings.
package def

import (
	"errors"
	"fmt"
)

// ErrInvalidDef indicates the header, group table, or a frame's offsets
// violate a structural invariant.
var ErrInvalidDef = errors.New("def: invalid DEF structure")

// ErrInvalidPixelStream indicates mode 1/2/3 frame data overruns or
// underruns the row it claims to encode.
var ErrInvalidPixelStream = errors.New("def: invalid pixel stream")

// FrameBoundsError reports a frame whose placement invariant
// (left,top >= 0 and left+width <= full_width, top+height <= full_height)
// does not hold.
type FrameBoundsError struct {
	GroupIndex, FrameIndex int
	Left, Top              int32
	Width, Height          uint32
	FullWidth, FullHeight  uint32
}

func (e FrameBoundsError) Error() string {
	return fmt.Sprintf("def: group %d frame %d: bounds (%d,%d)+(%d,%d) exceed canvas %dx%d",
		e.GroupIndex, e.FrameIndex, e.Left, e.Top, e.Width, e.Height, e.FullWidth, e.FullHeight)
}

func (FrameBoundsError) Unwrap() error { return ErrInvalidDef }

// UnknownEncodingError reports a frame whose encoding tag is outside {0,1,2,3}.
type UnknownEncodingError struct {
	GroupIndex, FrameIndex int
	Encoding               uint32
}

func (e UnknownEncodingError) Error() string {
	return fmt.Sprintf("def: group %d frame %d: unknown encoding %d", e.GroupIndex, e.FrameIndex, e.Encoding)
}

func (UnknownEncodingError) Unwrap() error { return ErrInvalidDef }
