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

package modbundle_test

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/legacymm/lodkit/modbundle"
)

//nolint:gosec // Test helper creates files in test temp directory
func createTestZIP(t *testing.T, tmpDir, name string, files map[string][]byte) string {
	t.Helper()

	zipPath := filepath.Join(tmpDir, name)
	file, err := os.Create(zipPath)
	if err != nil {
		t.Fatalf("create zip file: %v", err)
	}
	defer func() { _ = file.Close() }()

	writer := zip.NewWriter(file)
	for filename, content := range files {
		fw, err := writer.Create(filename)
		if err != nil {
			t.Fatalf("create file in zip: %v", err)
		}
		if _, err := fw.Write(content); err != nil {
			t.Fatalf("write file content: %v", err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close zip writer: %v", err)
	}

	return zipPath
}

func TestOpenZIPAndList(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	defContent := []byte("fake def bytes")
	zipPath := createTestZIP(t, tmpDir, "mod.zip", map[string][]byte{
		"Sprites/CPRSMALL.def": defContent,
		"readme.txt":           []byte("hello"),
	})

	b, err := modbundle.Open(zipPath)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer func() { _ = b.Close() }()

	entries, err := b.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}

	asset, err := modbundle.DetectAsset(b)
	if err != nil {
		t.Fatalf("DetectAsset: %v", err)
	}
	if asset != "Sprites/CPRSMALL.def" {
		t.Errorf("expected Sprites/CPRSMALL.def, got %s", asset)
	}

	reader, size, err := b.Open(asset)
	if err != nil {
		t.Fatalf("Open member: %v", err)
	}
	defer func() { _ = reader.Close() }()

	if size != int64(len(defContent)) {
		t.Errorf("expected size %d, got %d", len(defContent), size)
	}

	got, err := io.ReadAll(reader)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if string(got) != string(defContent) {
		t.Errorf("content mismatch: got %q want %q", got, defContent)
	}
}

func TestOpenUnsupportedFormat(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "mod.tar")
	if err := os.WriteFile(path, []byte("x"), 0o600); err != nil {
		t.Fatalf("write file: %v", err)
	}

	if _, err := modbundle.Open(path); err == nil {
		t.Error("expected error for unsupported format, got nil")
	}
}

func TestIsGameAsset(t *testing.T) {
	t.Parallel()

	tests := map[string]bool{
		"CPRSMALL.def":  true,
		"Sprites/a.PCX": true,
		"archive.lod":   true,
		"readme.txt":    false,
		"notes.md":      false,
	}

	for name, want := range tests {
		if got := modbundle.IsGameAsset(name); got != want {
			t.Errorf("IsGameAsset(%q) = %v, want %v", name, got, want)
		}
	}
}

func TestListSortsAssetsFirstAndClassifies(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	zipPath := createTestZIP(t, tmpDir, "mod.zip", map[string][]byte{
		"readme.txt":           []byte("hello"),
		"Sprites/CPRSMALL.def": []byte("def bytes"),
		"preview.png":          []byte("png bytes"),
		"H3sprite.lod":         []byte("lod bytes"),
	})

	b, err := modbundle.Open(zipPath)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer func() { _ = b.Close() }()

	entries, err := b.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(entries) != 4 {
		t.Fatalf("expected 4 entries, got %d", len(entries))
	}

	// Recognized assets (def, lod) must precede unrecognized ones (txt, png).
	// createTestZIP writes members in Go map iteration order, which is
	// randomized, so only the recognized/unrecognized partition is checked,
	// not the relative order within each half.
	wantKinds := map[string]modbundle.AssetKind{
		"readme.txt":           modbundle.KindUnknown,
		"Sprites/CPRSMALL.def": modbundle.KindSprite,
		"preview.png":          modbundle.KindUnknown,
		"H3sprite.lod":         modbundle.KindArchive,
	}
	for name, want := range wantKinds {
		found := false
		for _, e := range entries {
			if e.Name == name {
				found = true
				if e.Kind != want {
					t.Errorf("Kind(%q) = %v, want %v", name, e.Kind, want)
				}
			}
		}
		if !found {
			t.Errorf("entry %q missing from listing", name)
		}
	}
	if entries[0].Kind == modbundle.KindUnknown || entries[1].Kind == modbundle.KindUnknown {
		t.Errorf("recognized assets should sort first, got %+v", entries)
	}
	if entries[2].Kind != modbundle.KindUnknown || entries[3].Kind != modbundle.KindUnknown {
		t.Errorf("trailing entries should be unrecognized, got %+v and %+v", entries[2], entries[3])
	}
}

func TestDetectAssetKindFiltersByKind(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	zipPath := createTestZIP(t, tmpDir, "mod.zip", map[string][]byte{
		"Sprites/CPRSMALL.def": []byte("def bytes"),
		"H3sprite.lod":         []byte("lod bytes"),
	})

	b, err := modbundle.Open(zipPath)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer func() { _ = b.Close() }()

	archive, err := modbundle.DetectAssetKind(b, modbundle.KindArchive)
	if err != nil {
		t.Fatalf("DetectAssetKind(KindArchive): %v", err)
	}
	if archive != "H3sprite.lod" {
		t.Errorf("archive = %q, want H3sprite.lod", archive)
	}

	if _, err := modbundle.DetectAssetKind(b, modbundle.KindPixel); err == nil {
		t.Fatal("expected NoAssetError for KindPixel, got nil")
	}
}

func TestResolveReaderAtBundleNestedAndAutoDetect(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	defContent := []byte("fake def bytes")
	zipPath := createTestZIP(t, tmpDir, "mod.zip", map[string][]byte{
		"Sprites/CPRSMALL.def": defContent,
		"readme.txt":           []byte("hello"),
	})

	// Explicit internal path.
	ra, size, closer, ok, err := modbundle.ResolveReaderAt(zipPath+"/Sprites/CPRSMALL.def", modbundle.KindSprite)
	if err != nil {
		t.Fatalf("ResolveReaderAt: %v", err)
	}
	if !ok {
		t.Fatal("expected ok=true for a bundle-nested path")
	}
	defer func() { _ = closer.Close() }()
	if size != int64(len(defContent)) {
		t.Errorf("size = %d, want %d", size, len(defContent))
	}
	got := make([]byte, size)
	if _, err := ra.ReadAt(got, 0); err != nil && err != io.EOF {
		t.Fatalf("ReadAt: %v", err)
	}
	if string(got) != string(defContent) {
		t.Errorf("content = %q, want %q", got, defContent)
	}

	// Auto-detect: path names only the bundle itself.
	ra2, size2, closer2, ok2, err := modbundle.ResolveReaderAt(zipPath, modbundle.KindSprite)
	if err != nil {
		t.Fatalf("ResolveReaderAt (auto-detect): %v", err)
	}
	if !ok2 {
		t.Fatal("expected ok=true for a bare bundle path")
	}
	defer func() { _ = closer2.Close() }()
	if size2 != int64(len(defContent)) {
		t.Errorf("size2 = %d, want %d", size2, len(defContent))
	}
	_ = ra2

	// A plain, non-bundle path is reported as not-ok so the caller falls back.
	plainPath := filepath.Join(tmpDir, "plain.def")
	if err := os.WriteFile(plainPath, defContent, 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	_, _, _, ok3, err := modbundle.ResolveReaderAt(plainPath, modbundle.KindSprite)
	if err != nil {
		t.Fatalf("ResolveReaderAt (plain path): %v", err)
	}
	if ok3 {
		t.Fatal("expected ok=false for a plain on-disk path")
	}
}

func TestParsePath(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	zipPath := createTestZIP(t, tmpDir, "mod.zip", map[string][]byte{
		"Sprites/CPRSMALL.def": []byte("x"),
	})

	nested := zipPath + "/Sprites/CPRSMALL.def"
	p, err := modbundle.ParsePath(nested)
	if err != nil {
		t.Fatalf("ParsePath: %v", err)
	}
	if p == nil {
		t.Fatal("expected a parsed bundle path, got nil")
	}
	if p.BundlePath != zipPath {
		t.Errorf("BundlePath = %q, want %q", p.BundlePath, zipPath)
	}
	if p.InternalPath != "Sprites/CPRSMALL.def" {
		t.Errorf("InternalPath = %q, want Sprites/CPRSMALL.def", p.InternalPath)
	}

	plain, err := modbundle.ParsePath(filepath.Join(tmpDir, "plain.def"))
	if err != nil {
		t.Fatalf("ParsePath plain: %v", err)
	}
	if plain != nil {
		t.Errorf("expected nil for non-bundle path, got %+v", plain)
	}
}
