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

package main

import (
	"archive/zip"
	"errors"
	"io"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/legacymm/lodkit/compose"
	"github.com/legacymm/lodkit/def"
	"github.com/legacymm/lodkit/pixel"
)

func TestParseCropMode(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want compose.CropMode
		ok   bool
	}{
		{"", compose.CropPredefined, true},
		{"predefined", compose.CropPredefined, true},
		{"individual", compose.CropIndividual, true},
		{"none", compose.CropNone, true},
		{"bogus", 0, false},
	}
	for _, c := range cases {
		got, err := parseCropMode(c.in)
		if c.ok && err != nil {
			t.Fatalf("parseCropMode(%q): unexpected error %v", c.in, err)
		}
		if !c.ok && err == nil {
			t.Fatalf("parseCropMode(%q): expected error", c.in)
		}
		if c.ok && got != c.want {
			t.Fatalf("parseCropMode(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestResolveDefsRequiresOneSource(t *testing.T) {
	t.Parallel()

	_, err := resolveDefs("", "", "", log.New(io.Discard, "", 0))
	if !isUsageError(err) {
		t.Fatalf("err = %v, want usageError", err)
	}
}

func sampleDefBytes(t *testing.T) []byte {
	t.Helper()

	var palette def.Palette
	palette[1] = pixel.RGB{R: 200, G: 0, B: 0}

	groups := []def.EncodeGroup{
		{GroupIndex: 0, Frames: []def.EncodeFrame{
			{Name: "frame0", FullWidth: 2, FullHeight: 2, Width: 2, Height: 2, Pixels: []byte{0, 1, 1, 0}, Encoding: def.EncodingRaw},
		}},
	}
	raw, err := def.Encode(def.Header{DefType: def.TypeMapObject, FullWidth: 2, FullHeight: 2}, palette, groups)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	return raw
}

func writeSampleDef(t *testing.T, path string) {
	t.Helper()

	if err := os.WriteFile(path, sampleDefBytes(t), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
}

// writeSampleDefZIP builds a ZIP mod bundle at path containing one nested
// member (internalPath) holding an encoded sample DEF.
func writeSampleDefZIP(t *testing.T, path, internalPath string) {
	t.Helper()

	f, err := os.Create(path) //nolint:gosec // test temp dir
	if err != nil {
		t.Fatalf("create zip: %v", err)
	}
	defer func() { _ = f.Close() }()

	w := zip.NewWriter(f)
	entry, err := w.Create(internalPath)
	if err != nil {
		t.Fatalf("create zip member: %v", err)
	}
	if _, err := entry.Write(sampleDefBytes(t)); err != nil {
		t.Fatalf("write zip member: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close zip writer: %v", err)
	}
}

func TestExtractDefWritesManifestAndBMPs(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	defPath := filepath.Join(dir, "sample.def")
	writeSampleDef(t, defPath)

	outDir := filepath.Join(dir, "out")
	logger := log.New(io.Discard, "", 0)
	err := runExtractDef([]string{"-def", defPath, "-out", outDir}, logger)
	if err != nil {
		t.Fatalf("runExtractDef: %v", err)
	}

	manifest := filepath.Join(outDir, "sample", "sample.hdl.txt")
	if _, err := os.Stat(manifest); err != nil {
		t.Fatalf("manifest not written: %v", err)
	}
	bmp := filepath.Join(outDir, "sample", "sample_g0_f0.bmp")
	if _, err := os.Stat(bmp); err != nil {
		t.Fatalf("bmp not written: %v", err)
	}
}

func TestExtractDefFromBundleNestedPath(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	zipPath := filepath.Join(dir, "mod.zip")
	writeSampleDefZIP(t, zipPath, "Sprites/sample.def")

	outDir := filepath.Join(dir, "out")
	logger := log.New(io.Discard, "", 0)
	err := runExtractDef([]string{"-def", zipPath + "/Sprites/sample.def", "-out", outDir}, logger)
	if err != nil {
		t.Fatalf("runExtractDef: %v", err)
	}

	manifest := filepath.Join(outDir, "sample", "sample.hdl.txt")
	if _, err := os.Stat(manifest); err != nil {
		t.Fatalf("manifest not written: %v", err)
	}
}

func TestTestDefReportsFailure(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	badPath := filepath.Join(dir, "bad.def")
	if err := os.WriteFile(badPath, []byte{0, 0, 0, 0}, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	err := runTestDef([]string{"-def", badPath}, log.New(io.Discard, "", 0))
	if err == nil {
		t.Fatalf("expected failure for truncated def")
	}
	if isUsageError(err) {
		t.Fatalf("expected a non-usage error, got %v", err)
	}
}

func TestUsageErrorIsDistinctFromWrappedErrors(t *testing.T) {
	t.Parallel()

	wrapped := errors.New("boom")
	if isUsageError(wrapped) {
		t.Fatalf("plain error incorrectly classified as usage error")
	}
}
