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
	"os"
	"path/filepath"
	"strings"
)

// Path represents a parsed bundle path with an optional internal member path.
type Path struct {
	BundlePath   string // path to the container file
	InternalPath string // path inside the container (empty means auto-detect)
}

// MemberKind classifies the named internal member by extension, or
// KindUnknown if InternalPath is empty (auto-detect) or unrecognized.
// It only reports the kind; nothing in this module calls it, and the CLI's
// -def and -archive flags resolve paths through ResolveReaderAt without
// checking it.
func (p *Path) MemberKind() AssetKind {
	if p.InternalPath == "" {
		return KindUnknown
	}
	return ClassifyAsset(p.InternalPath)
}

var bundleExtensions = []string{".zip", ".7z", ".rar"}

// ParsePath parses a path that may reference a member inside a bundle, e.g.
// "/mods/HotaUpscale.zip/Sprites/CPRSMALL.def".
//
// Returns:
//   - (*Path, nil) if the path contains a bundle reference
//   - (nil, nil) if the path is not a bundle reference
//   - (nil, error) if there was an error checking the path
//
//nolint:gocognit,nilnil,revive // Complex path parsing logic requires branching; nil,nil is documented API behavior
func ParsePath(path string) (*Path, error) {
	normalized := filepath.ToSlash(path)

	for _, ext := range bundleExtensions {
		pattern := ext + "/"
		idx := strings.Index(strings.ToLower(normalized), pattern)

		if idx != -1 {
			bundlePath := path[:idx+len(ext)]
			internalPath := path[idx+len(ext)+1:]

			if _, err := os.Stat(bundlePath); err != nil {
				if os.IsNotExist(err) {
					continue
				}
				return nil, fmt.Errorf("stat bundle %s: %w", bundlePath, err)
			}

			return &Path{
				BundlePath:   bundlePath,
				InternalPath: internalPath,
			}, nil
		}
	}

	ext := strings.ToLower(filepath.Ext(path))
	if IsBundleExtension(ext) {
		if _, err := os.Stat(path); err != nil {
			if os.IsNotExist(err) {
				return nil, nil
			}
			return nil, fmt.Errorf("stat bundle %s: %w", path, err)
		}

		return &Path{
			BundlePath:   path,
			InternalPath: "",
		}, nil
	}

	return nil, nil
}

// IsBundlePath checks if a path references a bundle. This is a quick check
// that doesn't verify file existence.
func IsBundlePath(path string) bool {
	normalized := filepath.ToSlash(path)

	for _, ext := range bundleExtensions {
		if strings.Contains(strings.ToLower(normalized), ext+"/") {
			return true
		}
	}

	ext := strings.ToLower(filepath.Ext(path))
	return IsBundleExtension(ext)
}
