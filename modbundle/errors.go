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

package modbundle

import "fmt"

// FormatError indicates an unsupported or invalid bundle format.
type FormatError struct {
	Format string
	Reason string
}

func (e FormatError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("unsupported bundle format %s: %s", e.Format, e.Reason)
	}
	return fmt.Sprintf("unsupported bundle format: %s", e.Format)
}

// MemberNotFoundError indicates a named member was not found in the bundle.
type MemberNotFoundError struct {
	Bundle       string
	InternalPath string
}

func (e MemberNotFoundError) Error() string {
	return fmt.Sprintf("member %q not found in bundle %q", e.InternalPath, e.Bundle)
}

// NoAssetError indicates no recognized LOD/DEF/PCX/BMP asset was found in the
// bundle. Kind is KindUnknown when the search accepted any recognized asset.
type NoAssetError struct {
	Kind AssetKind
}

func (e NoAssetError) Error() string {
	if e.Kind == KindUnknown {
		return "no recognized game asset found in bundle"
	}
	return fmt.Sprintf("no %s asset found in bundle", e.Kind)
}
