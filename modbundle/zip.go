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

//nolint:dupl // Bundle implementations are intentionally similar but use different types
package modbundle

import (
	"archive/zip"
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// ZIPBundle provides access to members of a ZIP container.
type ZIPBundle struct {
	reader *zip.ReadCloser
	path   string
}

// OpenZIP opens a ZIP bundle for reading.
func OpenZIP(path string) (*ZIPBundle, error) {
	reader, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("open ZIP bundle: %w", err)
	}

	return &ZIPBundle{
		reader: reader,
		path:   path,
	}, nil
}

// List returns all members of the ZIP bundle.
func (zb *ZIPBundle) List() ([]Entry, error) {
	entries := make([]Entry, 0, len(zb.reader.File))

	for _, file := range zb.reader.File {
		if file.FileInfo().IsDir() {
			continue
		}

		entries = append(entries, Entry{
			Name: file.Name,
			Size: int64(file.UncompressedSize64), //nolint:gosec // Safe: file sizes don't exceed int64
			Kind: ClassifyAsset(file.Name),
		})
	}

	sortAssetsFirst(entries)
	return entries, nil
}

// Open opens a member within the ZIP bundle.
func (zb *ZIPBundle) Open(internalPath string) (io.ReadCloser, int64, error) {
	internalPath = filepath.ToSlash(internalPath)

	for _, file := range zb.reader.File {
		if strings.EqualFold(file.Name, internalPath) {
			reader, err := file.Open()
			if err != nil {
				return nil, 0, fmt.Errorf("open member in ZIP: %w", err)
			}
			//nolint:gosec // Safe: file sizes don't exceed int64
			return reader, int64(file.UncompressedSize64), nil
		}
	}

	return nil, 0, MemberNotFoundError{
		Bundle:       zb.path,
		InternalPath: internalPath,
	}
}

// OpenReaderAt opens a member and returns an io.ReaderAt interface.
// The member contents are buffered in memory.
//
//nolint:revive // 4 return values is necessary for this interface pattern
func (zb *ZIPBundle) OpenReaderAt(internalPath string) (io.ReaderAt, int64, io.Closer, error) {
	return bufferMember(zb, internalPath)
}

// Close closes the ZIP bundle.
func (zb *ZIPBundle) Close() error {
	return zb.reader.Close() //nolint:wrapcheck // Close error passthrough is intentional
}
