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

// Package breader provides a bounded little-endian reader over an in-memory
// slice or a seekable source. It never reads past its declared limit and
// never panics on short input; every short read is a typed error.
package breader

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrShortRead indicates a read would cross the reader's declared bound.
var ErrShortRead = errors.New("breader: short read past declared bound")

// Reader is a bounded little-endian cursor over [base, base+limit) of src.
type Reader struct {
	src   io.ReaderAt
	base  int64
	limit int64
	pos   int64 // relative to base
}

// New wraps src, bounding reads to [base, base+limit).
func New(src io.ReaderAt, base, limit int64) *Reader {
	return &Reader{src: src, base: base, limit: limit}
}

// NewSlice wraps an in-memory byte slice as a bounded reader over its full length.
func NewSlice(data []byte) *Reader {
	return New(bytes.NewReader(data), 0, int64(len(data)))
}

// Len returns the total bounded length.
func (r *Reader) Len() int64 { return r.limit }

// Pos returns the current read position relative to the bound's start.
func (r *Reader) Pos() int64 { return r.pos }

// Remaining returns the number of unread bytes within the bound.
func (r *Reader) Remaining() int64 { return r.limit - r.pos }

// Seek moves the cursor to an absolute position within the bound.
func (r *Reader) Seek(pos int64) error {
	if pos < 0 || pos > r.limit {
		return fmt.Errorf("%w: seek to %d exceeds length %d", ErrShortRead, pos, r.limit)
	}
	r.pos = pos
	return nil
}

// Bytes returns n bytes starting at the current position and advances the cursor.
func (r *Reader) Bytes(n int) ([]byte, error) {
	if n < 0 || r.pos+int64(n) > r.limit {
		return nil, fmt.Errorf("%w: want %d bytes at %d, bound %d", ErrShortRead, n, r.pos, r.limit)
	}

	buf := make([]byte, n)
	if n > 0 {
		read, err := r.src.ReadAt(buf, r.base+r.pos)
		if err != nil && !(errors.Is(err, io.EOF) && read == n) {
			return nil, fmt.Errorf("breader: read %d bytes at %d: %w", n, r.base+r.pos, err)
		}
	}
	r.pos += int64(n)
	return buf, nil
}

// U8 reads a single byte.
func (r *Reader) U8() (uint8, error) {
	b, err := r.Bytes(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// U16LE reads a little-endian uint16.
func (r *Reader) U16LE() (uint16, error) {
	b, err := r.Bytes(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

// U32LE reads a little-endian uint32.
func (r *Reader) U32LE() (uint32, error) {
	b, err := r.Bytes(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

// I32LE reads a little-endian int32.
func (r *Reader) I32LE() (int32, error) {
	v, err := r.U32LE()
	if err != nil {
		return 0, err
	}
	return int32(v), nil //nolint:gosec // Intentional bit-pattern reinterpretation
}

// FixedString reads n bytes and returns them as a NUL-terminated, trimmed ASCII string.
func (r *Reader) FixedString(n int) (string, error) {
	b, err := r.Bytes(n)
	if err != nil {
		return "", err
	}
	return CleanString(b), nil
}

// CleanString converts bytes to a string, trimming at the first NUL byte and
// surrounding whitespace.
func CleanString(data []byte) string {
	end := len(data)
	for i, c := range data {
		if c == 0 {
			end = i
			break
		}
	}
	return strings.TrimSpace(string(data[:end]))
}
