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

// Package compose converts DEF-decoded, palette-indexed frames into RGBA
// frames: it applies the shadow/transparency palette policy, optional
// cropping, group labelling, and per-frame duration, and emits frames in
// group order ready for an external animated-image sink.
package compose

import "github.com/legacymm/lodkit/def"

// ShadowMode selects how shadow pixels reach the composited output.
type ShadowMode int

const (
	// SeparateShadow composites a distinct shadow DEF's frames under each
	// main frame at matching canvas position, using the default palette
	// policy for both DEFs.
	SeparateShadow ShadowMode = iota
	// ShadowInMain ignores any separate shadow DEF and applies the
	// shadow-in-main palette policy column to the main DEF's own frames.
	ShadowInMain
)

// CropMode selects how a composed frame's canvas is reduced.
type CropMode int

const (
	// CropPredefined looks up def_type (with name-token overrides) in a
	// caller-supplied bounds table.
	CropPredefined CropMode = iota
	// CropIndividual computes the tight bounding box of non-transparent
	// pixels per group, applied uniformly to every frame in that group.
	CropIndividual
	// CropNone passes through each frame's full canvas and (left, top)
	// origin unchanged.
	CropNone
)

// Bounds is a crop rectangle in full-canvas coordinates, left/top inclusive
// and right/bottom exclusive.
type Bounds struct {
	Left, Top, Right, Bottom int
}

func (b Bounds) width() int  { return b.Right - b.Left }
func (b Bounds) height() int { return b.Bottom - b.Top }

// Config collects every externally-supplied policy table the composer
// needs. All of it is caller-provided (see SPEC_FULL.md §1's external
// collaborators: JSON loading for these tables is not this package's job).
type Config struct {
	ShadowMode ShadowMode
	CropMode   CropMode
	HotA       bool

	// CropBoundsByDefType backs CropPredefined's default lookup.
	CropBoundsByDefType map[uint32]Bounds
	// CropOverrides backs CropPredefined's name-token overrides, e.g. the
	// flying-vs-water-unit distinction for def_type 4. Each entry's
	// predicate is tried in order; the first match wins.
	CropOverrides []CropOverride
	// NoCropDefTypes restricts CropNone to specific def_types; empty means
	// every def_type passes through uncropped.
	NoCropDefTypes map[uint32]bool

	// P2P3ShadowIDs lists object ids for which, under HotA, source indices
	// 2 and 3 are treated as shadow edge/body instead of opaque colour.
	P2P3ShadowIDs map[uint32]bool
	// Background255To5IDs lists object ids for which source index 255 is
	// remapped to 5 before the palette policy is applied.
	Background255To5IDs map[uint32]bool
	// KeepSelectionPaletteIDs lists object ids for which source index 5
	// renders as its opaque palette colour instead of being transparent.
	KeepSelectionPaletteIDs map[uint32]bool

	// GroupLabels maps def_type -> group_index -> label. WithCastIDs and
	// WithAttack2IDs (creature-specific, def_type 0x42) dynamically
	// override labels 17 and 18 respectively.
	GroupLabels    map[uint32]map[uint32]string
	WithCastIDs    map[uint32]bool
	WithAttack2IDs map[uint32]bool

	// DurationMsByDefType is the per-type default frame duration.
	// DurationOverrides overrides it per (def_type, group_index), with an
	// optional further override for specific frame indices within the
	// group (e.g. a standing group's held frame gets a longer duration).
	DurationMsByDefType map[uint32]uint32
	DurationOverrides   map[uint32]map[uint32]GroupDuration
}

// GroupDuration is one group's duration override: a default for every
// frame in the group, plus optional per-frame-index exceptions.
type GroupDuration struct {
	DefaultMS    uint32
	ByFrameIndex map[int]uint32
}

// CropOverride is one name-token-triggered crop bounds override.
type CropOverride struct {
	DefType uint32
	Token   string
	Bounds  Bounds
}

// ComposedFrame is one fully composed, ready-to-encode animation frame.
type ComposedFrame struct {
	RGBA              []byte // width*height*4, row-major
	Width, Height      int
	OriginX, OriginY  int
	DurationMS        uint32
	GroupLabel        string
}

// Input bundles a decoded DEF with the object metadata the composer's
// policy tables key off of.
type Input struct {
	Main       *def.Def
	Shadow     *def.Def // only consulted under SeparateShadow
	ObjectID   uint32
	ObjectName string
}
