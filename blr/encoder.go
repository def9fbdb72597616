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

// Package blr encodes a coerced column descriptor list into the
// Binary Language Representation message the server needs to know how
// a result row (or a set of bind parameters) is laid out on the wire.
package blr

import (
	"github.com/fdbgo/fbwire/common"
	"github.com/fdbgo/fbwire/fberrors"
	"github.com/fdbgo/fbwire/wire"
	"github.com/fdbgo/fbwire/xsqlda"
)

// messageIndex is always 0: this core only ever describes a single
// message (one row), never the multi-message form the protocol allows.
const messageIndex = 0

// BLRFor encodes descs, which must already have been through
// ColDesc.Coerce, into one complete BLR message: version/begin/message
// envelope, one type stanza per descriptor immediately followed by its
// null-indicator stanza, and the end/eoc trailer.
//
// The message length field is 2*len(descs): every column contributes
// both its value slot and its null-indicator slot to the message.
func BLRFor(descs []xsqlda.ColDesc) ([]byte, error) {
	w := wire.NewWriter(wire.DefaultInitialCapacity)

	w.WriteU8(common.BlrVersion5)
	w.WriteU8(common.BlrBegin)
	w.WriteU8(common.BlrMessage)
	w.WriteU8(messageIndex)
	w.WriteU16LE(uint16(len(descs)) * 2)

	for i := range descs {
		if err := encodeOne(w, &descs[i]); err != nil {
			return nil, err
		}
		// Every column is paired with a 2-byte null-indicator slot,
		// itself described as a plain BLR short.
		w.WriteU8(common.BlrShort)
		w.WriteU8(0)
	}

	w.WriteU8(common.BlrEnd)
	w.WriteU8(common.BlrEoc)

	return w.Bytes(), nil
}

// encodeOne writes the single type stanza for one already-coerced
// descriptor. Text carries a 2-byte operand (the field's byte width) and
// Integer a 1-byte scale operand (always 0); Float and Timestamp are bare
// opcodes because their width is fixed by the category.
func encodeOne(w *wire.Writer, d *xsqlda.ColDesc) error {
	category, err := d.ToCategory()
	if err != nil {
		return err
	}

	switch category {
	case xsqlda.CategoryText:
		w.WriteU8(common.BlrVarying)
		w.WriteI16LE(d.DataLength)

	case xsqlda.CategoryInteger:
		w.WriteU8(common.BlrInt64)
		w.WriteU8(0) // scale

	case xsqlda.CategoryFloat:
		w.WriteU8(common.BlrDouble)

	case xsqlda.CategoryTimestamp:
		w.WriteU8(common.BlrTimestamp)

	default:
		return fberrors.UnsupportedConversion(d.Sqltype)
	}
	return nil
}
