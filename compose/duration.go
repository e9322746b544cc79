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

// defaultDurationMS is used when a def_type has no entry in
// Config.DurationMsByDefType.
const defaultDurationMS = 150

// duration is a pure function of (def_type, group_index, frame index within
// the group, frame count in the group), parameterised entirely by cfg, per
// SPEC_FULL.md §4.6. frameCount is part of the signature, but no Config
// field refers to it and the result does not depend on it; per-frame
// exceptions are keyed by frame index only.
func duration(cfg Config, defType, groupIndex uint32, frameIndexInGroup, frameCount int) uint32 {
	if byGroup, ok := cfg.DurationOverrides[defType]; ok {
		if gd, ok := byGroup[groupIndex]; ok {
			if ms, ok := gd.ByFrameIndex[frameIndexInGroup]; ok {
				return ms
			}
			if gd.DefaultMS != 0 {
				return gd.DefaultMS
			}
		}
	}
	if ms, ok := cfg.DurationMsByDefType[defType]; ok {
		return ms
	}
	return defaultDurationMS
}
