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

package compose_test

import (
	"bytes"
	"testing"

	"github.com/legacymm/lodkit/compose"
	"github.com/legacymm/lodkit/def"
	"github.com/legacymm/lodkit/pixel"
)

func buildSingleFramePalette(entries map[int]pixel.RGB) def.Palette {
	var p def.Palette
	for i, rgb := range entries {
		p[i] = rgb
	}
	return p
}

func buildSingleFrameDef(t *testing.T, defType uint32, width, height int, pixels []byte, palette def.Palette) *def.Def {
	t.Helper()

	groups := []def.EncodeGroup{
		{
			GroupIndex: 0,
			Frames: []def.EncodeFrame{
				{
					Name:       "frame0",
					FullWidth:  uint32(width), FullHeight: uint32(height), //nolint:gosec // test fixture
					Width: uint32(width), Height: uint32(height), //nolint:gosec // test fixture
					Pixels:   pixels,
					Encoding: def.EncodingRaw,
				},
			},
		},
	}

	raw, err := def.Encode(def.Header{DefType: defType, FullWidth: uint32(width), FullHeight: uint32(height)}, palette, groups) //nolint:gosec // test fixture
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	d, err := def.Decode(bytes.NewReader(raw), int64(len(raw)))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	return d
}

// TestShadowCompositionDefault covers S5: indices [0, 99, 5] with palette
// index 99 = (200,0,0) compose to [(0,0,0,0), (200,0,0,255), (0,0,0,0)] in
// default mode.
func TestShadowCompositionDefault(t *testing.T) {
	t.Parallel()

	palette := buildSingleFramePalette(map[int]pixel.RGB{99: {R: 200, G: 0, B: 0}})
	d := buildSingleFrameDef(t, 0x99, 3, 1, []byte{0, 99, 5}, palette)

	frames, err := compose.Compose(compose.Input{Main: d, ObjectID: 1, ObjectName: "x"}, compose.Config{CropMode: compose.CropNone})
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	if len(frames) != 1 {
		t.Fatalf("len(frames) = %d, want 1", len(frames))
	}

	want := []byte{0, 0, 0, 0, 200, 0, 0, 255, 0, 0, 0, 0}
	if !bytes.Equal(frames[0].RGBA, want) {
		t.Fatalf("RGBA = %v, want %v", frames[0].RGBA, want)
	}
}

// TestShadowCompositionKeepSelectionPalette covers S5's keep-selection-
// palette variant: index 5 renders opaque instead of transparent.
func TestShadowCompositionKeepSelectionPalette(t *testing.T) {
	t.Parallel()

	palette := buildSingleFramePalette(map[int]pixel.RGB{
		5:  {R: 10, G: 20, B: 30},
		99: {R: 200, G: 0, B: 0},
	})
	d := buildSingleFrameDef(t, 0x99, 3, 1, []byte{0, 99, 5}, palette)

	cfg := compose.Config{
		CropMode:                compose.CropNone,
		KeepSelectionPaletteIDs: map[uint32]bool{1: true},
	}
	frames, err := compose.Compose(compose.Input{Main: d, ObjectID: 1, ObjectName: "x"}, cfg)
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}

	want := []byte{0, 0, 0, 0, 200, 0, 0, 255, 10, 20, 30, 255}
	if !bytes.Equal(frames[0].RGBA, want) {
		t.Fatalf("RGBA = %v, want %v", frames[0].RGBA, want)
	}
}

// TestHotAP2P3Fix covers S6: indices [2, 3] on a DEF id in the P2P3 set,
// shadow-in-main off, still yield shadow edge/body alpha.
func TestHotAP2P3Fix(t *testing.T) {
	t.Parallel()

	palette := buildSingleFramePalette(map[int]pixel.RGB{2: {R: 1, G: 1, B: 1}, 3: {R: 2, G: 2, B: 2}})
	d := buildSingleFrameDef(t, 0x42, 2, 1, []byte{2, 3}, palette)

	cfg := compose.Config{
		CropMode:      compose.CropNone,
		HotA:          true,
		P2P3ShadowIDs: map[uint32]bool{7: true},
		ShadowMode:    compose.SeparateShadow,
	}
	frames, err := compose.Compose(compose.Input{Main: d, ObjectID: 7, ObjectName: "x"}, cfg)
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}

	want := []byte{0, 0, 0, 127, 0, 0, 0, 191}
	if !bytes.Equal(frames[0].RGBA, want) {
		t.Fatalf("RGBA = %v, want %v", frames[0].RGBA, want)
	}
}

// TestCropSelectionPredefinedOverride covers S7: a name-token override
// takes precedence over the def_type default.
func TestCropSelectionPredefinedOverride(t *testing.T) {
	t.Parallel()

	cfg := compose.Config{
		CropMode: compose.CropPredefined,
		CropBoundsByDefType: map[uint32]compose.Bounds{
			4: {Left: 15, Top: 3, Right: 77, Bottom: 64},
		},
		CropOverrides: []compose.CropOverride{
			{DefType: 4, Token: "Airship", Bounds: compose.Bounds{Left: 0, Top: 0, Right: 85, Bottom: 127}},
		},
	}

	palette := buildSingleFramePalette(nil)
	d := buildSingleFrameDef(t, 4, 100, 140, make([]byte, 100*140), palette)

	frames, err := compose.Compose(compose.Input{Main: d, ObjectID: 1, ObjectName: "Flying Airship"}, cfg)
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	if frames[0].Width != 85 || frames[0].Height != 127 {
		t.Fatalf("dims = %dx%d, want 85x127", frames[0].Width, frames[0].Height)
	}

	frames, err = compose.Compose(compose.Input{Main: d, ObjectID: 1, ObjectName: "Dragon"}, cfg)
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	if frames[0].Width != 62 || frames[0].Height != 61 {
		t.Fatalf("dims = %dx%d, want 62x61", frames[0].Width, frames[0].Height)
	}
}

// TestCropNonePreservesOrigin covers property 6: no-crop mode preserves
// (left, top) and the frame's full canvas.
func TestCropNonePreservesOrigin(t *testing.T) {
	t.Parallel()

	palette := buildSingleFramePalette(map[int]pixel.RGB{1: {R: 9, G: 9, B: 9}})
	d := buildSingleFrameDef(t, 0x43, 4, 4, make([]byte, 16), palette)

	frames, err := compose.Compose(compose.Input{Main: d, ObjectID: 1}, compose.Config{CropMode: compose.CropNone})
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	if frames[0].Width != 4 || frames[0].Height != 4 || frames[0].OriginX != 0 || frames[0].OriginY != 0 {
		t.Fatalf("frame = %+v, want full 4x4 canvas at origin (0,0)", frames[0])
	}
}

func TestGroupLabelCreatureCastOverride(t *testing.T) {
	t.Parallel()

	palette := buildSingleFramePalette(nil)
	groups := []def.EncodeGroup{
		{GroupIndex: 17, Frames: []def.EncodeFrame{{Name: "f", FullWidth: 1, FullHeight: 1, Width: 1, Height: 1, Pixels: []byte{0}, Encoding: def.EncodingRaw}}},
	}
	raw, err := def.Encode(def.Header{DefType: def.TypeCreature, FullWidth: 1, FullHeight: 1}, palette, groups)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	d, err := def.Decode(bytes.NewReader(raw), int64(len(raw)))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	cfg := compose.Config{
		CropMode:    compose.CropNone,
		WithCastIDs: map[uint32]bool{42: true},
		GroupLabels: map[uint32]map[uint32]string{def.TypeCreature: {17: "Spellbook"}},
	}
	frames, err := compose.Compose(compose.Input{Main: d, ObjectID: 42}, cfg)
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	if frames[0].GroupLabel != "Cast Spellbook" {
		t.Fatalf("GroupLabel = %q, want %q", frames[0].GroupLabel, "Cast Spellbook")
	}
}
