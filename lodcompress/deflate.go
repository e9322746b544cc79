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

package lodcompress

import (
	"bytes"
	"compress/flate"
	"errors"
	"fmt"
	"io"

	"github.com/legacymm/lodkit/internal/breader"
)

// rawDeflateCodec decompresses entries stored with a standard headerless
// DEFLATE stream, as produced by third-party tools that re-save archives
// with a general-purpose compressor instead of the native implode scheme.
type rawDeflateCodec struct{}

func (rawDeflateCodec) Decompress(r *breader.Reader, packedLen, expectedLen int) ([]byte, error) {
	packed, err := r.Bytes(packedLen)
	if err != nil {
		return nil, fmt.Errorf("lodcompress: read packed deflate stream: %w", err)
	}

	fr := flate.NewReader(bytes.NewReader(packed))
	defer func() { _ = fr.Close() }()

	dst := make([]byte, expectedLen)
	n, err := io.ReadFull(fr, dst)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return nil, fmt.Errorf("lodcompress: raw deflate: %w", err)
	}
	if n != expectedLen {
		return nil, fmt.Errorf("%w: got %d want %d", ErrLengthMismatch, n, expectedLen)
	}
	return dst, nil
}

func (rawDeflateCodec) Compress(data []byte) ([]byte, bool) {
	var buf bytes.Buffer
	fw, err := flate.NewWriter(&buf, flate.BestCompression)
	if err != nil {
		return data, false
	}
	if _, err := fw.Write(data); err != nil {
		return data, false
	}
	if err := fw.Close(); err != nil {
		return data, false
	}
	return buf.Bytes(), buf.Len() < len(data)
}
