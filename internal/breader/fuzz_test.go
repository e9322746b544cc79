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

import "testing"

// FuzzReaderNeverPanics exercises the reader with arbitrary data and a
// sequence of reads derived from the fuzz input; it must never panic and
// must never return bytes beyond its declared bound.
func FuzzReaderNeverPanics(f *testing.F) {
	f.Add([]byte{}, 0)
	f.Add([]byte{0x01, 0x02, 0x03, 0x04}, 4)
	f.Add([]byte{0x01, 0x02, 0x03, 0x04}, 100)
	f.Add(make([]byte, 1024), 7)

	f.Fuzz(func(t *testing.T, data []byte, readSize int) {
		if len(data) > 1<<20 || readSize < 0 || readSize > 1<<20 {
			return
		}

		r := NewSlice(data)
		for i := 0; i < 16; i++ {
			b, err := r.Bytes(readSize)
			if err != nil {
				continue
			}
			if len(b) != readSize {
				t.Fatalf("Bytes(%d) returned %d bytes", readSize, len(b))
			}
			if r.Pos() > r.Len() {
				t.Fatalf("Pos() %d exceeds Len() %d", r.Pos(), r.Len())
			}
		}
	})
}

// FuzzCleanString fuzzes NUL/whitespace trimming.
func FuzzCleanString(f *testing.F) {
	f.Add([]byte("CPRSMALL\x00\x00"))
	f.Add([]byte{})
	f.Add([]byte{0x00, 0x00, 0x00})
	f.Add([]byte("  padded  \x00"))

	f.Fuzz(func(t *testing.T, data []byte) {
		result := CleanString(data)
		for _, c := range result {
			if c == 0 {
				t.Error("CleanString result contains a NUL byte")
			}
		}
	})
}
