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
	"fmt"

	"github.com/legacymm/lodkit/def"
)

// creatureCastGroup and creatureAttack2Group are the dynamically-renamed
// group indices for creature DEFs (def_type 0x42).
const (
	creatureCastGroup    uint32 = 17
	creatureAttack2Group uint32 = 18
)

// groupLabel resolves a group's display label: the def-type-specific table,
// with creature-only cast/attack-2 overrides for groups 17 and 18.
func groupLabel(cfg Config, defType uint32, objectID uint32, groupIndex uint32) string {
	if defType == def.TypeCreature {
		if groupIndex == creatureCastGroup && cfg.WithCastIDs[objectID] {
			return "Cast " + defaultLabel(cfg, defType, groupIndex)
		}
		if groupIndex == creatureAttack2Group && cfg.WithAttack2IDs[objectID] {
			return "Attack 2 " + defaultLabel(cfg, defType, groupIndex)
		}
	}
	return defaultLabel(cfg, defType, groupIndex)
}

func defaultLabel(cfg Config, defType uint32, groupIndex uint32) string {
	if byType, ok := cfg.GroupLabels[defType]; ok {
		if label, ok := byType[groupIndex]; ok {
			return label
		}
	}
	return fmt.Sprintf("Group %d", groupIndex)
}
