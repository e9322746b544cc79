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

// Package lodcompress implements the archive entry compression codecs: the
// bespoke ring-buffer LZ scheme used by the archive's native tooling, a raw
// DEFLATE fallback for entries re-saved by third-party tools, and an
// identity pass-through for uncompressed entries.
package lodcompress

import (
	"errors"
	"fmt"
	"sync"

	"github.com/legacymm/lodkit/internal/breader"
)

// Method identifies which codec an archive entry was stored with.
type Method uint32

const (
	// MethodStore means the entry bytes are stored verbatim.
	MethodStore Method = iota

	// MethodImplode is the bespoke ring-buffer LZ scheme (see implode.go).
	MethodImplode

	// MethodRawDeflate is a raw (headerless) DEFLATE stream, as emitted by
	// third-party tools that re-save archive entries with a standard codec.
	MethodRawDeflate
)

func (m Method) String() string {
	switch m {
	case MethodStore:
		return "store"
	case MethodImplode:
		return "implode"
	case MethodRawDeflate:
		return "raw-deflate"
	default:
		return fmt.Sprintf("method(%d)", uint32(m))
	}
}

// ErrLengthMismatch indicates a decompressor produced a different number of
// bytes than the archive directory declared.
var ErrLengthMismatch = errors.New("lodcompress: decompressed length does not match declared size")

// Codec decompresses (and, where supported, compresses) entry payloads.
type Codec interface {
	// Decompress reads exactly the packed bytes for one entry from r and
	// returns exactly expectedLen decompressed bytes, or an error.
	Decompress(r *breader.Reader, packedLen, expectedLen int) ([]byte, error)
}

// Compressor is implemented by codecs that can also produce packed bytes.
type Compressor interface {
	Codec
	// Compress returns packed bytes for data. It may return data unchanged
	// (with ok=false) if compression would not shrink the payload.
	Compress(data []byte) (packed []byte, ok bool)
}

var (
	registryMu sync.RWMutex
	registry   = make(map[Method]func() Codec)
)

// Register installs a codec factory for the given method.
func Register(method Method, factory func() Codec) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[method] = factory
}

// Get returns a codec instance for method.
func Get(method Method) (Codec, error) {
	registryMu.RLock()
	factory, ok := registry[method]
	registryMu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("lodcompress: unregistered method %s", method)
	}
	return factory(), nil
}

func init() {
	Register(MethodStore, func() Codec { return storeCodec{} })
	Register(MethodImplode, func() Codec { return implodeCodec{} })
	Register(MethodRawDeflate, func() Codec { return rawDeflateCodec{} })
}

// storeCodec is the identity pass-through for uncompressed entries.
type storeCodec struct{}

func (storeCodec) Decompress(r *breader.Reader, packedLen, expectedLen int) ([]byte, error) {
	if packedLen != expectedLen {
		return nil, fmt.Errorf("%w: stored entry packed=%d expected=%d", ErrLengthMismatch, packedLen, expectedLen)
	}
	return r.Bytes(packedLen)
}

func (storeCodec) Compress(data []byte) ([]byte, bool) {
	return data, false
}
