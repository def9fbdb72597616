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

package xsqlda

import "github.com/fdbgo/fbwire/fberrors"

// ColDesc is one entry in a decoded XSQLDA: a column description. The
// prepare-info decoder only counts parameters and builds no ColDesc for
// them.
type ColDesc struct {
	// Sqltype is the 16-bit signed wire type code. The low bit is the
	// nullable flag and must be cleared before classifying.
	Sqltype int16

	// Scale is the decimal exponent; only meaningful before Coerce.
	Scale int16

	// Sqlsubtype is reserved (blob subtype); the core does not interpret it.
	Sqlsubtype int16

	// DataLength is, after Coerce, the number of bytes the server sends
	// per value for this column.
	DataLength int16

	// NullInd is whatever the server reported in isc_info_sql_null_ind,
	// kept for diagnostics even though Coerce always marks the encoded
	// sqltype nullable regardless of this field's value.
	NullInd bool

	FieldName    string
	RelationName string
	OwnerName    string
	AliasName    string
}

// Coerce rewrites Sqltype, Scale and DataLength so the descriptor
// becomes self-consistent with the type lattice. After Coerce succeeds,
// the encoded Sqltype is always (ordinal*2)+1, the nullable form, so
// the server always sends the null-indicator pair and callers can treat
// nulls uniformly.
func (d *ColDesc) Coerce() error {
	rawType := d.Sqltype &^ 1 // clear the nullable bit before classifying

	category, err := Classify(rawType, d.Scale)
	if err != nil {
		return err
	}

	switch category {
	case CategoryText:
		// DataLength is retained verbatim; it is whatever the server
		// reported.

	case CategoryInteger:
		d.DataLength = integerWidth

	case CategoryFloat:
		d.Scale = 0
		d.DataLength = floatWidth

	case CategoryTimestamp:
		d.DataLength = timestampWidth
	}

	d.Sqltype = int16(category)*2 + 1
	return nil
}

// ToCategory is the pure inverse of the Sqltype encoding: strip the
// nullable bit, divide by two, look up the ordinal. It does not consult
// Scale and must only be called after Coerce.
func (d *ColDesc) ToCategory() (Category, error) {
	rawType := d.Sqltype &^ 1
	ordinal := Category(rawType / 2)
	switch ordinal {
	case CategoryText, CategoryInteger, CategoryFloat, CategoryTimestamp:
		return ordinal, nil
	default:
		return 0, fberrors.UnsupportedConversion(d.Sqltype)
	}
}
