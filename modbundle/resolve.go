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
	"fmt"
	"io"
)

// ResolveReaderAt resolves path to a random-access view of a nested bundle
// member, for callers (the CLI's archive/def resolvers) that accept either a
// plain on-disk file or a bundle-nested path such as
// "mods/HotaUpscale.zip/Sprites/CPRSMALL.def".
//
// ok is false when path does not name a bundle at all, meaning the caller
// should fall back to opening path as a plain file itself. When path names a
// bundle but no internal member (e.g. the path is just "mods/HotaUpscale.zip"),
// the first member classified as kind is used; pass KindUnknown to accept any
// recognized asset.
//
// The returned Closer releases both the buffered member and the underlying
// bundle handle; it must be called exactly once the reader is no longer needed.
func ResolveReaderAt(path string, kind AssetKind) (r io.ReaderAt, size int64, closer io.Closer, ok bool, err error) {
	parsed, err := ParsePath(path)
	if err != nil {
		return nil, 0, nil, false, err
	}
	if parsed == nil {
		return nil, 0, nil, false, nil
	}

	b, err := Open(parsed.BundlePath)
	if err != nil {
		return nil, 0, nil, true, fmt.Errorf("open bundle %s: %w", parsed.BundlePath, err)
	}

	internalPath := parsed.InternalPath
	if internalPath == "" {
		internalPath, err = DetectAssetKind(b, kind)
		if err != nil {
			_ = b.Close()
			return nil, 0, nil, true, fmt.Errorf("auto-detect %s in %s: %w", kind, parsed.BundlePath, err)
		}
	}

	ra, n, memberCloser, err := b.OpenReaderAt(internalPath)
	if err != nil {
		_ = b.Close()
		return nil, 0, nil, true, err
	}

	return ra, n, &bundleCloser{bundle: b, member: memberCloser}, true, nil
}

// bundleCloser closes both a buffered member and the bundle handle it came
// from, so ResolveReaderAt's caller has a single Closer to defer.
type bundleCloser struct {
	bundle Bundle
	member io.Closer
}

func (c *bundleCloser) Close() error {
	memberErr := c.member.Close()
	bundleErr := c.bundle.Close()
	if memberErr != nil {
		return memberErr
	}
	return bundleErr
}
