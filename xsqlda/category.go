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

// Package xsqlda is the client-facing type lattice and column/parameter
// descriptor model shared by the prepare-info decoder and the BLR
// encoder. It has no I/O and no dependency on either.
package xsqlda

import (
	"github.com/fdbgo/fbwire/common"
	"github.com/fdbgo/fbwire/fberrors"
)

// Category is the closed set of four client-visible column categories.
// Its ordinal is stable and used both as a discriminant and to compute
// the on-wire sqltype the server is told to use (ordinal*2, +1 if
// nullable).
type Category int16

const (
	CategoryText Category = iota
	CategoryInteger
	CategoryFloat
	CategoryTimestamp
)

func (c Category) String() string {
	switch c {
	case CategoryText:
		return "Text"
	case CategoryInteger:
		return "Integer"
	case CategoryFloat:
		return "Float"
	case CategoryTimestamp:
		return "Timestamp"
	default:
		return "Unknown"
	}
}

// These are the on-wire byte widths Coerce assigns to each
// non-Text category: Integer and Float both widen to a wire int64 /
// double (8 bytes), Timestamp widens to Firebird's packed
// date+time struct (also 8 bytes: a 4-byte date half and a 4-byte
// time half).
const (
	integerWidth   = 8
	floatWidth     = 8
	timestampWidth = 8
)

// Classify maps a server SQL-type code (sqltype, with the nullable bit
// already cleared) and its decimal scale to a lattice Category. It is a
// total function over the Firebird types this core supports; any other
// code is fberrors.KindUnsupportedType.
func Classify(sqlType int16, scale int16) (Category, error) {
	switch sqlType {
	case common.SqlTypeText, common.SqlTypeVarying:
		return CategoryText, nil

	case common.SqlTypeShort, common.SqlTypeLong, common.SqlTypeInt64:
		if scale == 0 {
			return CategoryInteger, nil
		}
		// Fixed-point DECIMAL/NUMERIC stored as a scaled integer: the
		// client has no bignum type, so this is deliberately a lossy
		// promotion to double.
		return CategoryFloat, nil

	case common.SqlTypeFloat, common.SqlTypeDouble:
		return CategoryFloat, nil

	case common.SqlTypeTimestamp, common.SqlTypeDate, common.SqlTypeTime:
		return CategoryTimestamp, nil

	default:
		return 0, fberrors.UnsupportedType(sqlType)
	}
}
