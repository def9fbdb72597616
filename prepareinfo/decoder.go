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

// Package prepareinfo decodes the server's response to a "describe
// prepared statement" request: an interleaved, byte-oriented stream of
// item codes whose items may arrive in any order, into an ordered list
// of column descriptors plus statement metadata.
package prepareinfo

import (
	"unicode/utf8"

	"github.com/sirupsen/logrus"

	"github.com/fdbgo/fbwire/common"
	"github.com/fdbgo/fbwire/fberrors"
	"github.com/fdbgo/fbwire/fblog"
	"github.com/fdbgo/fbwire/wire"
	"github.com/fdbgo/fbwire/xsqlda"
)

// PrepareInfo is the decoder's output: statement kind, the descriptor
// list (column order, ascending sqlda_seq), how many bind parameters the
// statement has, and whether the server's answer was cut short.
type PrepareInfo struct {
	StmtType    common.StmtType
	Descriptors []xsqlda.ColDesc
	ParamCount  int
	Truncated   bool
}

// prologuePrefixLen is the 3-byte literal prefix (item code + the
// implicit 0x04 0x00 length) that precedes every stmt_type value.
const prologuePrefixLen = 3

// ParsePrepareInfo parses one prepare-info response from the front of
// buf. A statement that returns no rows (INSERT, DDL, ...) may end
// right after the prologue with no column block at all, in which case
// this returns immediately with an empty descriptor list rather than
// entering the item loop.
func ParsePrepareInfo(buf []byte) (*PrepareInfo, error) {
	cur := wire.NewCursor(buf)

	stmtType, err := parsePrologue(cur)
	if err != nil {
		fblog.GetLogger().WithError(err).Debug("prepareinfo: prologue rejected")
		return nil, err
	}

	// The column block is a literal 2-byte marker, a u16 length, and a
	// packed little-endian column count of that length. It is only
	// present at all when there are at least 4 bytes left and the marker
	// matches; anything short of that means this statement has no result
	// columns, and there is nothing further to parse.
	if cur.Remaining() < 4 {
		return &PrepareInfo{StmtType: stmtType}, nil
	}
	hasColumnBlock, err := cur.ExpectBytes([]byte{common.IscInfoSqlSelect, common.IscInfoSqlDescribeVars})
	if err != nil {
		return nil, fberrors.InvalidResponse("truncated frame: column-block marker")
	}
	if !hasColumnBlock {
		return &PrepareInfo{StmtType: stmtType}, nil
	}
	_ = cur.Advance(2)

	lenLen, err := cur.ReadU16LE()
	if err != nil {
		return nil, fberrors.InvalidResponse("truncated frame: column-count length")
	}
	colCount, err := cur.ReadVarUintLE(int(lenLen))
	if err != nil {
		return nil, fberrors.InvalidResponse("truncated frame: packed column count")
	}

	// The count is untrusted: never preallocate more descriptors than the
	// remaining bytes could possibly describe.
	capHint := colCount
	if rem := uint64(cur.Remaining()); capHint > rem {
		capHint = rem
	}
	descriptors := make([]xsqlda.ColDesc, 0, capHint)
	truncated, paramCount, err := parseItems(cur, &descriptors)
	if err != nil {
		return nil, err
	}

	info := &PrepareInfo{
		StmtType:    stmtType,
		Descriptors: descriptors,
		ParamCount:  paramCount,
		Truncated:   truncated,
	}
	if truncated && fblog.V(logrus.DebugLevel) {
		fblog.GetLogger().Debugf("prepareinfo: response truncated after %d descriptors", len(descriptors))
	}
	return info, nil
}

// parseItems consumes the interleaved column/param item stream that
// follows the column-block header, appending to *descriptors as it
// goes. An empty stream at this point is not an error: it simply means
// the block header was present but carried nothing, so the result is
// the trivial (not truncated, no params) case.
func parseItems(cur *wire.Cursor, descriptors *[]xsqlda.ColDesc) (truncated bool, paramCount int, err error) {
	if cur.Remaining() == 0 {
		return false, 0, nil
	}

	mode := common.ParseModeColumn
	colIndex := -1

	for {
		if cur.Remaining() == 0 {
			return false, 0, fberrors.InvalidResponse("item stream ended without isc_info_end or isc_info_truncated")
		}
		code, err := cur.ReadU8()
		if err != nil {
			return false, 0, fberrors.InvalidResponse("truncated item stream")
		}

		switch int(code) {
		case common.IscInfoSqlSelect:
			mode = common.ParseModeColumn

		case common.IscInfoSqlBind:
			mode = common.ParseModeParam

		case common.IscInfoSqlDescribeVars:
			count, err := readTaggedU32(cur)
			if err != nil {
				return false, 0, fberrors.InvalidResponse("truncated describe_vars item")
			}
			if mode == common.ParseModeParam {
				paramCount = int(count)
			}

		case common.IscInfoSqlSqldaSeq:
			seq, err := readTaggedU32(cur)
			if err != nil {
				return false, 0, fberrors.InvalidResponse("truncated sqlda_seq item")
			}
			if mode == common.ParseModeColumn {
				colIndex = int(seq) - 1
				*descriptors = append(*descriptors, xsqlda.ColDesc{})
				if len(*descriptors)-1 != colIndex {
					return false, 0, fberrors.InvalidResponse("sqlda_seq %d out of order", seq)
				}
			}
			// Under Param mode the 1-based index is consumed but, per the
			// documented resolution of the parameter-slot ambiguity, not
			// tracked: only ParamCount is trusted by this decoder.

		case common.IscInfoSqlType:
			v, err := readTaggedI32(cur)
			if err != nil {
				return false, 0, fberrors.InvalidResponse("truncated sql_type item")
			}
			if mode == common.ParseModeColumn {
				d, err := currentDescriptor(*descriptors, colIndex)
				if err != nil {
					return false, 0, err
				}
				d.Sqltype = int16(v)
			}

		case common.IscInfoSqlSubType:
			v, err := readTaggedI32(cur)
			if err != nil {
				return false, 0, fberrors.InvalidResponse("truncated sql_sub_type item")
			}
			if mode == common.ParseModeColumn {
				d, err := currentDescriptor(*descriptors, colIndex)
				if err != nil {
					return false, 0, err
				}
				d.Sqlsubtype = int16(v)
			}

		case common.IscInfoSqlScale:
			v, err := readTaggedI32(cur)
			if err != nil {
				return false, 0, fberrors.InvalidResponse("truncated sql_scale item")
			}
			if mode == common.ParseModeColumn {
				d, err := currentDescriptor(*descriptors, colIndex)
				if err != nil {
					return false, 0, err
				}
				d.Scale = int16(v)
			}

		case common.IscInfoSqlLength:
			v, err := readTaggedI32(cur)
			if err != nil {
				return false, 0, fberrors.InvalidResponse("truncated sql_length item")
			}
			if mode == common.ParseModeColumn {
				d, err := currentDescriptor(*descriptors, colIndex)
				if err != nil {
					return false, 0, err
				}
				d.DataLength = int16(v)
			}

		case common.IscInfoSqlNullInd:
			v, err := readTaggedI32(cur)
			if err != nil {
				return false, 0, fberrors.InvalidResponse("truncated sql_null_ind item")
			}
			if mode == common.ParseModeColumn {
				d, err := currentDescriptor(*descriptors, colIndex)
				if err != nil {
					return false, 0, err
				}
				d.NullInd = v != 0
			}

		case common.IscInfoSqlField:
			s, err := readTaggedString(cur)
			if err != nil {
				return false, 0, fberrors.InvalidResponse("truncated sql_field item")
			}
			if mode == common.ParseModeColumn {
				d, err := currentDescriptor(*descriptors, colIndex)
				if err != nil {
					return false, 0, err
				}
				d.FieldName = s
			}

		case common.IscInfoSqlRelation:
			s, err := readTaggedString(cur)
			if err != nil {
				return false, 0, fberrors.InvalidResponse("truncated sql_relation item")
			}
			if mode == common.ParseModeColumn {
				d, err := currentDescriptor(*descriptors, colIndex)
				if err != nil {
					return false, 0, err
				}
				d.RelationName = s
			}

		case common.IscInfoSqlOwner:
			s, err := readTaggedString(cur)
			if err != nil {
				return false, 0, fberrors.InvalidResponse("truncated sql_owner item")
			}
			if mode == common.ParseModeColumn {
				d, err := currentDescriptor(*descriptors, colIndex)
				if err != nil {
					return false, 0, err
				}
				d.OwnerName = s
			}

		case common.IscInfoSqlAlias:
			s, err := readTaggedString(cur)
			if err != nil {
				return false, 0, fberrors.InvalidResponse("truncated sql_alias item")
			}
			if mode == common.ParseModeColumn {
				d, err := currentDescriptor(*descriptors, colIndex)
				if err != nil {
					return false, 0, err
				}
				d.AliasName = s
			}

		case common.IscInfoSqlDescribeEnd:
			// Delimits one descriptor (or the param block); nothing to do.

		case common.IscInfoTruncated:
			return true, paramCount, nil

		case common.IscInfoEnd:
			return false, paramCount, nil

		default:
			return false, 0, fberrors.InvalidResponse("unrecognised item code %d", code).WithContext("mode", mode.String())
		}
	}
}

// parsePrologue validates and consumes the mandatory 7-byte prologue
// (<isc_info_sql_stmt_type> 0x04 0x00 <u32 le>) and returns the decoded
// statement type. The 3-byte literal prefix is consumed first, then the
// u32 is read as a separate fixed-width field right after it: the two
// reads never overlap.
func parsePrologue(cur *wire.Cursor) (common.StmtType, error) {
	if cur.Remaining() < prologuePrefixLen+4 {
		return 0, fberrors.InvalidResponse("response shorter than the 7-byte prologue")
	}
	ok, err := cur.ExpectBytes([]byte{common.IscInfoSqlStmtType, 0x04, 0x00})
	if err != nil {
		return 0, fberrors.InvalidResponse("truncated frame: prologue prefix")
	}
	if !ok {
		return 0, fberrors.InvalidResponse("prologue prefix mismatch")
	}
	if err := cur.Advance(prologuePrefixLen); err != nil {
		return 0, fberrors.InvalidResponse("truncated frame: prologue prefix")
	}

	v, err := cur.ReadU32LE()
	if err != nil {
		return 0, fberrors.InvalidResponse("truncated frame: stmt_type value")
	}
	st, ok := common.StmtTypeFromU32(v)
	if !ok {
		return 0, fberrors.InvalidResponse("unknown stmt_type %d", v)
	}
	return st, nil
}

// readTaggedU32 reads the implicit "0x04 0x00 <u32 le>" framing shared
// by several item codes (describe_vars, sqlda_seq, scalar field writes).
func readTaggedU32(cur *wire.Cursor) (uint32, error) {
	ok, err := cur.ExpectBytes([]byte{0x04, 0x00})
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, fberrors.InvalidResponse("expected implicit length 0x04 0x00")
	}
	if err := cur.Advance(2); err != nil {
		return 0, err
	}
	return cur.ReadU32LE()
}

func readTaggedI32(cur *wire.Cursor) (int32, error) {
	v, err := readTaggedU32(cur)
	return int32(v), err
}

// readTaggedString reads a u16-le length followed by that many bytes,
// decoding them as UTF-8 with a lossy-to-empty-string fallback: identifier
// text is advisory, not correctness-critical, so a decode failure must
// not abort the parse.
func readTaggedString(cur *wire.Cursor) (string, error) {
	n, err := cur.ReadU16LE()
	if err != nil {
		return "", err
	}
	b, err := cur.ReadBytes(int(n))
	if err != nil {
		return "", err
	}
	if !utf8.Valid(b) {
		return "", nil
	}
	return string(b), nil
}

func currentDescriptor(descriptors []xsqlda.ColDesc, colIndex int) (*xsqlda.ColDesc, error) {
	if colIndex < 0 || colIndex >= len(descriptors) {
		return nil, fberrors.InvalidResponse("item addresses column index %d with no matching sqlda_seq", colIndex)
	}
	return &descriptors[colIndex], nil
}
