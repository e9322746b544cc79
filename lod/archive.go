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
	"bytes"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/legacymm/lodkit/internal/breader"
	"github.com/legacymm/lodkit/lodcompress"
)

// Archive owns a backing byte source and the directory parsed from it.
// entries[i] references a sub-range of the backing source; its lifetime is
// bounded by the Archive's.
type Archive struct {
	Flavour Flavour
	Subtype uint32

	path    string
	src     io.ReaderAt
	size    int64
	entries []Entry
	pending []pendingAdd
	logger  *log.Logger
}

type pendingAdd struct {
	name    string
	data    []byte
	method  lodcompress.Method
	replace bool // true if name matched an existing entry
}

// Option configures archive opening.
type Option func(*Archive)

// WithLogger installs a diagnostic logger. The default discards all output,
// following the corpus's injectable-logger convention.
func WithLogger(l *log.Logger) Option {
	return func(a *Archive) { a.logger = l }
}

// Open opens an archive file from disk.
func Open(path string, opts ...Option) (*Archive, error) {
	f, err := os.Open(path) //nolint:gosec // caller-provided archive path
	if err != nil {
		return nil, fmt.Errorf("lod: open %s: %w", path, err)
	}

	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("lod: stat %s: %w", path, err)
	}

	a, err := OpenReaderAt(f, info.Size(), opts...)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	a.path = path
	return a, nil
}

// OpenBytes opens an archive already resident in memory.
func OpenBytes(data []byte, opts ...Option) (*Archive, error) {
	return OpenReaderAt(bytes.NewReader(data), int64(len(data)), opts...)
}

// OpenReaderAt opens an archive backed by an arbitrary io.ReaderAt (a file
// or an in-memory buffer), detecting its flavour and parsing its directory.
func OpenReaderAt(src io.ReaderAt, size int64, opts ...Option) (*Archive, error) {
	a := &Archive{src: src, size: size, logger: log.New(io.Discard, "", 0)}
	for _, opt := range opts {
		opt(a)
	}

	r := breader.New(src, 0, size)

	magicBytes, err := r.Bytes(4)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnknownFormat, err)
	}
	var magic [4]byte
	copy(magic[:], magicBytes)

	sp, ok := detectSpec(magic)
	if !ok {
		return nil, fmt.Errorf("%w: magic %q", ErrUnknownFormat, magicBytes)
	}
	a.Flavour = sp.flavour

	if err := r.Seek(8); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptIndex, err)
	}
	subtype, err := r.U32LE()
	if err != nil {
		return nil, fmt.Errorf("%w: reading subtype: %w", ErrCorruptIndex, err)
	}
	a.Subtype = subtype

	if err := a.parseDirectory(sp); err != nil {
		return nil, err
	}

	return a, nil
}

func (a *Archive) parseDirectory(sp spec) error {
	r := breader.New(a.src, 0, a.size)

	if err := r.Seek(entryCountOffset); err != nil {
		return fmt.Errorf("%w: %w", ErrCorruptIndex, err)
	}
	count, err := r.U32LE()
	if err != nil {
		return fmt.Errorf("%w: reading entry count: %w", ErrCorruptIndex, err)
	}

	if err := r.Seek(directoryOffset); err != nil {
		return fmt.Errorf("%w: %w", ErrCorruptIndex, err)
	}

	entries := make([]Entry, 0, count)
	seen := make(map[string]int, count)

	for i := range int(count) {
		name, err := r.FixedString(sp.nameWidth)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrCorruptIndex, err)
		}
		offset, err := r.U32LE()
		if err != nil {
			return fmt.Errorf("%w: %w", ErrCorruptIndex, err)
		}
		unpackedSize, err := r.U32LE()
		if err != nil {
			return fmt.Errorf("%w: %w", ErrCorruptIndex, err)
		}
		kind, err := r.U32LE()
		if err != nil {
			return fmt.Errorf("%w: %w", ErrCorruptIndex, err)
		}
		packedSize, err := r.U32LE()
		if err != nil {
			return fmt.Errorf("%w: %w", ErrCorruptIndex, err)
		}

		diskSize := packedSize
		if diskSize == 0 {
			diskSize = unpackedSize
		}
		payloadStart := directoryOffset + int64(count)*int64(sp.recordWidth())
		if diskSize > 0 && int64(offset) < payloadStart {
			// Entries are allowed to start anywhere at or after the end of
			// the directory, but never inside it. A zero-size entry may
			// legitimately carry an offset of 0.
			return CorruptEntryError{Index: i, Name: name, Reason: "offset overlaps directory"}
		}
		if int64(offset)+int64(diskSize) > a.size {
			return CorruptEntryError{Index: i, Name: name, Reason: "extends past end of archive"}
		}

		key := strings.ToLower(name)
		if prior, dup := seen[key]; dup {
			return CorruptEntryError{Index: i, Name: name, Reason: fmt.Sprintf("duplicate of entry %d", prior)}
		}
		seen[key] = i

		method := resolveMethod(kind, packedSize, unpackedSize)
		var flags uint32
		if method != lodcompress.MethodStore {
			flags |= FlagCompressed
		}

		entries = append(entries, Entry{
			Name:         name,
			Offset:       offset,
			PackedSize:   packedSize,
			UnpackedSize: unpackedSize,
			Kind:         kind,
			Flags:        flags,
			Method:       method,
		})
	}

	a.entries = entries
	return nil
}

// Entries returns a copy of the archive's directory, in on-disk order.
func (a *Archive) Entries() []Entry {
	out := make([]Entry, len(a.entries))
	copy(out, a.entries)
	return out
}

// Find looks up an entry by name, case-insensitively.
func (a *Archive) Find(name string) (Entry, bool) {
	for _, e := range a.entries {
		if strings.EqualFold(e.Name, name) {
			return e, true
		}
	}
	return Entry{}, false
}

// List returns entries whose name matches glob (a "*.ext" pattern or a
// literal name), case-insensitively. An empty glob matches everything.
func (a *Archive) List(glob string) ([]Entry, error) {
	if glob == "" {
		return a.Entries(), nil
	}

	lowerGlob := strings.ToLower(glob)
	var out []Entry
	for _, e := range a.entries {
		matched, err := filepath.Match(lowerGlob, strings.ToLower(e.Name))
		if err != nil {
			return nil, fmt.Errorf("lod: invalid glob %q: %w", glob, err)
		}
		if matched {
			out = append(out, e)
		}
	}
	return out, nil
}

// Extract decompresses a named entry and returns its full contents. With
// tolerant=false, a decompression length mismatch is a hard error; with
// tolerant=true, the failure is logged and the best-effort bytes produced so
// far are returned instead (padded or truncated to UnpackedSize), matching
// the corpus's default "ignore unpacking errors" driver policy.
func (a *Archive) Extract(name string, tolerant bool) ([]byte, error) {
	e, ok := a.Find(name)
	if !ok {
		return nil, EntryNotFoundError{Archive: a.path, Name: name}
	}

	codec, err := lodcompress.Get(e.Method)
	if err != nil {
		return nil, fmt.Errorf("lod: entry %q: %w", name, err)
	}

	r := breader.New(a.src, int64(e.Offset), int64(e.PackedSize))
	if e.PackedSize == 0 {
		r = breader.New(a.src, int64(e.Offset), int64(e.UnpackedSize))
	}

	data, err := codec.Decompress(r, int(r.Len()), int(e.UnpackedSize))
	if err != nil {
		wrapped := fmt.Errorf("%w: entry %q: %w", ErrDecompressionMismatch, name, err)
		if !tolerant {
			return nil, wrapped
		}
		a.logger.Printf("tolerant mode: %v", wrapped)
		if data == nil {
			data = make([]byte, e.UnpackedSize)
		} else if uint32(len(data)) != e.UnpackedSize { //nolint:gosec // bounded by archive-declared size
			fixed := make([]byte, e.UnpackedSize)
			copy(fixed, data)
			data = fixed
		}
	}

	return data, nil
}

// OpenEntry returns a bounded, seekable reader over a named entry's fully
// decompressed contents, suitable for passing to the DEF/pixel decoders.
func (a *Archive) OpenEntry(name string, tolerant bool) (*breader.Reader, error) {
	data, err := a.Extract(name, tolerant)
	if err != nil {
		return nil, err
	}
	return breader.NewSlice(data), nil
}
