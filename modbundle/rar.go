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

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/nwaples/rardecode/v2"
)

// RARBundle provides access to members of a RAR container.
type RARBundle struct {
	file *os.File
	path string
}

// OpenRAR opens a RAR bundle for reading.
func OpenRAR(path string) (*RARBundle, error) {
	file, err := os.Open(path) //nolint:gosec // User-provided path is expected
	if err != nil {
		return nil, fmt.Errorf("open RAR bundle: %w", err)
	}

	return &RARBundle{
		file: file,
		path: path,
	}, nil
}

// List returns all members of the RAR bundle.
func (rb *RARBundle) List() ([]Entry, error) {
	if _, err := rb.file.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("seek RAR bundle: %w", err)
	}

	reader, err := rardecode.NewReader(rb.file)
	if err != nil {
		return nil, fmt.Errorf("create RAR reader: %w", err)
	}

	var entries []Entry //nolint:prealloc // RAR member count unknown until full scan
	for {
		header, err := reader.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read RAR header: %w", err)
		}

		if header.IsDir {
			continue
		}

		entries = append(entries, Entry{
			Name: header.Name,
			Size: header.UnPackedSize,
			Kind: ClassifyAsset(header.Name),
		})
	}

	sortAssetsFirst(entries)
	return entries, nil
}

// Open opens a member within the RAR bundle.
// RAR requires sequential reading, so this rescans the archive from the start.
func (rb *RARBundle) Open(internalPath string) (io.ReadCloser, int64, error) {
	internalPath = filepath.ToSlash(internalPath)

	if _, err := rb.file.Seek(0, io.SeekStart); err != nil {
		return nil, 0, fmt.Errorf("seek RAR bundle: %w", err)
	}

	reader, err := rardecode.NewReader(rb.file)
	if err != nil {
		return nil, 0, fmt.Errorf("create RAR reader: %w", err)
	}

	for {
		header, err := reader.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, 0, fmt.Errorf("read RAR header: %w", err)
		}

		if strings.EqualFold(header.Name, internalPath) {
			return &rarMemberReader{reader: reader}, header.UnPackedSize, nil
		}
	}

	return nil, 0, MemberNotFoundError{
		Bundle:       rb.path,
		InternalPath: internalPath,
	}
}

// OpenReaderAt opens a member and returns an io.ReaderAt interface.
// The member contents are buffered in memory.
//
//nolint:revive // 4 return values is necessary for this interface pattern
func (rb *RARBundle) OpenReaderAt(internalPath string) (io.ReaderAt, int64, io.Closer, error) {
	return bufferMember(rb, internalPath)
}

// Close closes the RAR bundle.
func (rb *RARBundle) Close() error {
	return rb.file.Close() //nolint:wrapcheck // Close error passthrough is intentional
}

// rarMemberReader wraps a rardecode reader to provide io.ReadCloser.
type rarMemberReader struct {
	reader *rardecode.Reader
}

func (r *rarMemberReader) Read(p []byte) (int, error) {
	return r.reader.Read(p) //nolint:wrapcheck // Read error passthrough is intentional
}

func (*rarMemberReader) Close() error {
	// rardecode doesn't have a close method, nothing to do
	return nil
}
