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

package breader

import (
	"errors"
	"testing"
)

func TestReaderScalarReads(t *testing.T) {
	t.Parallel()

	data := []byte{0x2A, 0x34, 0x12, 0x78, 0x56, 0x34, 0x12}
	r := NewSlice(data)

	b, err := r.U8()
	if err != nil || b != 0x2A {
		t.Fatalf("U8() = %v, %v; want 0x2A, nil", b, err)
	}

	u16, err := r.U16LE()
	if err != nil || u16 != 0x1234 {
		t.Fatalf("U16LE() = %v, %v; want 0x1234, nil", u16, err)
	}

	u32, err := r.U32LE()
	if err != nil || u32 != 0x12345678 {
		t.Fatalf("U32LE() = %v, %v; want 0x12345678, nil", u32, err)
	}

	if r.Remaining() != 0 {
		t.Fatalf("Remaining() = %d, want 0", r.Remaining())
	}
}

func TestReaderShortReadNeverPanics(t *testing.T) {
	t.Parallel()

	r := NewSlice([]byte{0x01, 0x02})

	if _, err := r.U32LE(); !errors.Is(err, ErrShortRead) {
		t.Fatalf("U32LE() err = %v, want ErrShortRead", err)
	}

	// Position must not have advanced on a failed read.
	if r.Pos() != 0 {
		t.Fatalf("Pos() = %d after failed read, want 0", r.Pos())
	}
}

func TestReaderSeekBounds(t *testing.T) {
	t.Parallel()

	r := NewSlice(make([]byte, 10))

	if err := r.Seek(10); err != nil {
		t.Fatalf("Seek(10): %v", err)
	}
	if err := r.Seek(11); !errors.Is(err, ErrShortRead) {
		t.Fatalf("Seek(11) err = %v, want ErrShortRead", err)
	}
	if err := r.Seek(-1); !errors.Is(err, ErrShortRead) {
		t.Fatalf("Seek(-1) err = %v, want ErrShortRead", err)
	}
}

func TestReaderFixedString(t *testing.T) {
	t.Parallel()

	r := NewSlice([]byte("CPRSMALL\x00\x00\x00\x00\x00"))
	s, err := r.FixedString(13)
	if err != nil {
		t.Fatalf("FixedString: %v", err)
	}
	if s != "CPRSMALL" {
		t.Fatalf("FixedString() = %q, want CPRSMALL", s)
	}
}

func TestReaderBoundedOverSubrange(t *testing.T) {
	t.Parallel()

	// Reader bound to the middle of a larger backing slice.
	backing := []byte{0xFF, 0xFF, 0x11, 0x22, 0x33, 0x44, 0xFF, 0xFF}
	r := New(sliceReaderAt(backing), 2, 4)

	b, err := r.Bytes(4)
	if err != nil {
		t.Fatalf("Bytes(4): %v", err)
	}
	want := []byte{0x11, 0x22, 0x33, 0x44}
	if string(b) != string(want) {
		t.Fatalf("Bytes(4) = %v, want %v", b, want)
	}

	if _, err := r.Bytes(1); !errors.Is(err, ErrShortRead) {
		t.Fatalf("Bytes(1) past bound err = %v, want ErrShortRead", err)
	}
}

type sliceReaderAt []byte

func (s sliceReaderAt) ReadAt(p []byte, off int64) (int, error) {
	if off < 0 || off >= int64(len(s)) {
		return 0, errShortRangeForTest
	}
	n := copy(p, s[off:])
	return n, nil
}

var errShortRangeForTest = errors.New("out of range")
