// Copyright 2019 PayPal Inc.
//
// Licensed to the Apache Software Foundation (ASF) under one or more
// contributor license agreements.  See the NOTICE file distributed with
// this work for additional information regarding copyright ownership.
// The ASF licenses this file to You under the Apache License, Version 2.0
// (the "License"); you may not use this file except in compliance with
// the License.  You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package wire provides the byte-buffer abstractions the prepare-info
// decoder and BLR encoder are built on: a read-only Cursor over an
// in-memory buffer, and a growable Writer. Both are single-owner types,
// not safe for concurrent use.
package wire

import (
	"errors"
	"fmt"
)

// ErrShortBuffer is returned by every Cursor read that would have to
// read past the end of the buffer.
var ErrShortBuffer = errors.New("wire: short buffer")

// Cursor is a read cursor over a byte slice the Cursor does not own or
// mutate. All multi-byte reads are little-endian, matching Firebird's
// wire framing.
type Cursor struct {
	data []byte
	pos  int
}

// NewCursor wraps buf for reading. The Cursor never copies or mutates buf.
func NewCursor(buf []byte) *Cursor {
	return &Cursor{data: buf}
}

// Remaining returns the number of unread bytes.
func (c *Cursor) Remaining() int {
	return len(c.data) - c.pos
}

// Pos returns the current read offset, mostly useful for error messages.
func (c *Cursor) Pos() int {
	return c.pos
}

// PeekByte returns the next byte without advancing, and false if the
// buffer is exhausted.
func (c *Cursor) PeekByte() (byte, bool) {
	if c.Remaining() < 1 {
		return 0, false
	}
	return c.data[c.pos], true
}

// Advance moves the cursor forward n bytes, failing if that would run
// past the end of the buffer.
func (c *Cursor) Advance(n int) error {
	if c.Remaining() < n {
		return fmt.Errorf("%w: wanted to advance %d, have %d", ErrShortBuffer, n, c.Remaining())
	}
	c.pos += n
	return nil
}

// ReadU8 reads one byte and advances the cursor.
func (c *Cursor) ReadU8() (byte, error) {
	if c.Remaining() < 1 {
		return 0, fmt.Errorf("%w: reading u8", ErrShortBuffer)
	}
	b := c.data[c.pos]
	c.pos++
	return b, nil
}

// readFixedLenUint reads an l-byte little-endian unsigned integer, the
// same byte layout as a little-endian fixed-length reader (byte at pos is the
// least-significant, byte at pos+l-1 is the most-significant).
func (c *Cursor) readFixedLenUint(l int) (uint64, error) {
	if l < 1 || l > 8 {
		return 0, fmt.Errorf("wire: unsupported fixed-length width %d", l)
	}
	if c.Remaining() < l {
		return 0, fmt.Errorf("%w: reading %d-byte int", ErrShortBuffer, l)
	}
	var n uint64
	for i := 0; i < l; i++ {
		n |= uint64(c.data[c.pos+i]) << (8 * uint(i))
	}
	c.pos += l
	return n, nil
}

// ReadU16LE reads a 16-bit little-endian unsigned integer.
func (c *Cursor) ReadU16LE() (uint16, error) {
	n, err := c.readFixedLenUint(2)
	return uint16(n), err
}

// ReadU32LE reads a 32-bit little-endian unsigned integer.
func (c *Cursor) ReadU32LE() (uint32, error) {
	n, err := c.readFixedLenUint(4)
	return uint32(n), err
}

// ReadI32LE reads a 32-bit little-endian signed integer.
func (c *Cursor) ReadI32LE() (int32, error) {
	n, err := c.readFixedLenUint(4)
	return int32(n), err
}

// ReadU64LE reads a 64-bit little-endian unsigned integer.
func (c *Cursor) ReadU64LE() (uint64, error) {
	return c.readFixedLenUint(8)
}

// ReadVarUintLE reads an n-byte (n <= 8) little-endian unsigned integer
// whose width is itself supplied by the caller (the server encodes the
// packed column count this way: a u16 length, then that many bytes).
func (c *Cursor) ReadVarUintLE(n int) (uint64, error) {
	if n < 0 || n > 8 {
		return 0, fmt.Errorf("wire: variable-width int length %d out of range", n)
	}
	if n == 0 {
		return 0, nil
	}
	return c.readFixedLenUint(n)
}

// ReadBytes returns the next n bytes as a fresh copy and advances the
// cursor. The caller owns the returned slice.
func (c *Cursor) ReadBytes(n int) ([]byte, error) {
	if n < 0 {
		return nil, fmt.Errorf("wire: negative read length %d", n)
	}
	if c.Remaining() < n {
		return nil, fmt.Errorf("%w: reading %d bytes", ErrShortBuffer, n)
	}
	out := make([]byte, n)
	copy(out, c.data[c.pos:c.pos+n])
	c.pos += n
	return out, nil
}

// ExpectBytes checks that the next len(want) bytes equal want. It never
// advances the cursor, whether or not the bytes match.
func (c *Cursor) ExpectBytes(want []byte) (bool, error) {
	if c.Remaining() < len(want) {
		return false, fmt.Errorf("%w: expecting %d literal bytes", ErrShortBuffer, len(want))
	}
	for i, b := range want {
		if c.data[c.pos+i] != b {
			return false, nil
		}
	}
	return true, nil
}
