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
	"errors"
	"fmt"

	"github.com/legacymm/lodkit/def"
)

// ErrPaletteMissing indicates composition was requested without an
// available palette.
var ErrPaletteMissing = errors.New("compose: no palette available")

// Compose converts every group/frame of input.Main into ComposedFrames, in
// group order, applying the configured shadow, crop, label, and duration
// policy. With ShadowMode == SeparateShadow and input.Shadow set, each
// group's shadow frame (matched by group and frame index) is composited
// under the corresponding main frame at matching canvas position.
func Compose(input Input, cfg Config) ([]ComposedFrame, error) {
	if input.Main == nil {
		return nil, fmt.Errorf("%w: nil main DEF", ErrPaletteMissing)
	}

	defType := input.Main.Header.DefType
	hotaP2P3 := cfg.HotA && cfg.P2P3ShadowIDs[input.ObjectID]
	hotaBgRemap := cfg.HotA && cfg.Background255To5IDs[input.ObjectID]
	keepSelection := cfg.KeepSelectionPaletteIDs[input.ObjectID]
	shadowInMain := cfg.ShadowMode == ShadowInMain

	var out []ComposedFrame

	for groupIdx, group := range input.Main.Groups {
		rgbaByFrame := make([][]byte, len(group.FrameOffsets))
		frames := make([]*def.Frame, len(group.FrameOffsets))
		var groupBBox Bounds

		for frameIdx := range group.FrameOffsets {
			frame, err := input.Main.Frame(groupIdx, frameIdx)
			if err != nil {
				return nil, fmt.Errorf("compose: group %d frame %d: %w", groupIdx, frameIdx, err)
			}
			rgba := renderFullCanvas(frame, input.Main.Palette, shadowInMain, hotaP2P3, keepSelection, hotaBgRemap)

			if cfg.ShadowMode == SeparateShadow && input.Shadow != nil && groupIdx < len(input.Shadow.Groups) {
				if shadowGroup := input.Shadow.Groups[groupIdx]; frameIdx < len(shadowGroup.FrameOffsets) {
					if shadowFrame, err := input.Shadow.Frame(groupIdx, frameIdx); err == nil {
						shadowRGBA := renderFullCanvas(shadowFrame, input.Shadow.Palette, false, false, keepSelection, false)
						compositeUnder(rgba, shadowRGBA)
					}
				}
			}

			frames[frameIdx] = frame
			rgbaByFrame[frameIdx] = rgba
			if cfg.CropMode == CropIndividual {
				groupBBox = unionBounds(groupBBox, tightBBox(rgba, int(frame.FullWidth), int(frame.FullHeight)))
			}
		}

		for frameIdx, frame := range frames {
			composed := cropAndFinish(frame, rgbaByFrame[frameIdx], cfg, defType, input.ObjectName, groupBBox)
			composed.DurationMS = duration(cfg, defType, group.GroupIndex, frameIdx, len(frames))
			composed.GroupLabel = groupLabel(cfg, defType, input.ObjectID, group.GroupIndex)
			out = append(out, composed)
		}
	}

	return out, nil
}

func cropAndFinish(frame *def.Frame, rgba []byte, cfg Config, defType uint32, objectName string, groupBBox Bounds) ComposedFrame {
	fullWidth, fullHeight := int(frame.FullWidth), int(frame.FullHeight)

	switch cfg.CropMode {
	case CropPredefined:
		bounds, ok := resolvePredefinedBounds(cfg, defType, objectName)
		if !ok {
			bounds = Bounds{Left: 0, Top: 0, Right: fullWidth, Bottom: fullHeight}
		}
		cropped, w, h := cropCanvas(rgba, fullWidth, fullHeight, bounds)
		return ComposedFrame{RGBA: cropped, Width: w, Height: h, OriginX: bounds.Left, OriginY: bounds.Top}

	case CropIndividual:
		bounds := groupBBox
		if bounds == (Bounds{}) {
			bounds = Bounds{Left: 0, Top: 0, Right: fullWidth, Bottom: fullHeight}
		}
		cropped, w, h := cropCanvas(rgba, fullWidth, fullHeight, bounds)
		return ComposedFrame{RGBA: cropped, Width: w, Height: h, OriginX: bounds.Left, OriginY: bounds.Top}

	default: // CropNone
		if len(cfg.NoCropDefTypes) > 0 && !cfg.NoCropDefTypes[defType] {
			bounds := Bounds{
				Left: int(frame.Left), Top: int(frame.Top),
				Right: int(frame.Left) + int(frame.Width), Bottom: int(frame.Top) + int(frame.Height),
			}
			cropped, w, h := cropCanvas(rgba, fullWidth, fullHeight, bounds)
			return ComposedFrame{RGBA: cropped, Width: w, Height: h, OriginX: bounds.Left, OriginY: bounds.Top}
		}
		return ComposedFrame{RGBA: rgba, Width: fullWidth, Height: fullHeight, OriginX: int(frame.Left), OriginY: int(frame.Top)}
	}
}

// compositeUnder alpha-composites dst (the main frame) over shadow in
// place: wherever dst is fully transparent, the shadow pixel shows through.
func compositeUnder(dst, shadow []byte) {
	for i := 0; i+3 < len(dst) && i+3 < len(shadow); i += 4 {
		if dst[i+3] != 0 {
			continue
		}
		copy(dst[i:i+4], shadow[i:i+4])
	}
}
