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

package lod

import (
	"errors"
	"fmt"
)

// Sentinel errors for archive-level structural failures.
var (
	// ErrUnknownFormat indicates the first 4 bytes matched no known flavour magic.
	ErrUnknownFormat = errors.New("lod: unknown archive format")

	// ErrCorruptIndex indicates the directory could not be parsed or validated.
	ErrCorruptIndex = errors.New("lod: corrupt archive index")

	// ErrDecompressionMismatch indicates a decompressor produced the wrong length.
	ErrDecompressionMismatch = errors.New("lod: decompression produced unexpected length")

	// ErrDuplicateName is returned, wrapped, by AddEntry for an empty name. A
	// name matching an existing or already staged entry is not an error: the
	// new payload replaces the old one.
	ErrDuplicateName = errors.New("lod: duplicate entry name")
)

// CorruptEntryError reports a single directory record that failed validation.
type CorruptEntryError struct {
	Index  int
	Name   string
	Reason string
}

func (e CorruptEntryError) Error() string {
	return fmt.Sprintf("lod: corrupt entry %d (%q): %s", e.Index, e.Name, e.Reason)
}

func (CorruptEntryError) Unwrap() error { return ErrCorruptIndex }

// EntryNotFoundError indicates a requested entry name does not exist in the archive.
type EntryNotFoundError struct {
	Archive string
	Name    string
}

func (e EntryNotFoundError) Error() string {
	return fmt.Sprintf("lod: entry %q not found in archive %q", e.Name, e.Archive)
}
