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

// Package common contains protocol constants shared by the prepare-info
// decoder and the BLR encoder.
package common

// StmtType is the statement kind the server reports in the prepare-info
// prologue.
type StmtType int32

// Statement kinds, as reported by isc_info_sql_stmt_type.
const (
	StmtTypeSelect          StmtType = 1
	StmtTypeInsert          StmtType = 2
	StmtTypeUpdate          StmtType = 3
	StmtTypeDelete          StmtType = 4
	StmtTypeDDL             StmtType = 5
	StmtTypeGetSegment      StmtType = 6
	StmtTypePutSegment      StmtType = 7
	StmtTypeExecProcedure   StmtType = 8
	StmtTypeStartTrans      StmtType = 9
	StmtTypeCommit          StmtType = 10
	StmtTypeRollback        StmtType = 11
	StmtTypeSelectForUpdate StmtType = 12
	StmtTypeSetGenerator    StmtType = 13
	StmtTypeSavepoint       StmtType = 14
)

var stmtTypeNames = map[StmtType]string{
	StmtTypeSelect:          "Select",
	StmtTypeInsert:          "Insert",
	StmtTypeUpdate:          "Update",
	StmtTypeDelete:          "Delete",
	StmtTypeDDL:             "DDL",
	StmtTypeGetSegment:      "GetSegment",
	StmtTypePutSegment:      "PutSegment",
	StmtTypeExecProcedure:   "ExecProcedure",
	StmtTypeStartTrans:      "StartTrans",
	StmtTypeCommit:          "Commit",
	StmtTypeRollback:        "Rollback",
	StmtTypeSelectForUpdate: "SelectForUpdate",
	StmtTypeSetGenerator:    "SetGenerator",
	StmtTypeSavepoint:       "Savepoint",
}

func (s StmtType) String() string {
	if name, ok := stmtTypeNames[s]; ok {
		return name
	}
	return "Unknown"
}

// StmtTypeFromU32 maps the raw u32 the server sends to a StmtType, failing
// for any value outside the closed set above.
func StmtTypeFromU32(v uint32) (StmtType, bool) {
	s := StmtType(v)
	_, ok := stmtTypeNames[s]
	return s, ok
}

// Item codes appearing in the isc_info_sql_info response (prepare-info).
// These are part of Firebird's public wire protocol and are stable across
// client implementations.
const (
	IscInfoEnd       = 1
	IscInfoTruncated = 2
	IscInfoError     = 3

	IscInfoSqlSelect        = 4
	IscInfoSqlBind          = 5
	IscInfoSqlNumVariables  = 6
	IscInfoSqlDescribeVars  = 7
	IscInfoSqlDescribeEnd   = 8
	IscInfoSqlSqldaSeq      = 9
	IscInfoSqlMessageSeq    = 10
	IscInfoSqlType          = 11
	IscInfoSqlSubType       = 12
	IscInfoSqlScale         = 13
	IscInfoSqlLength        = 14
	IscInfoSqlNullInd       = 15
	IscInfoSqlField         = 16
	IscInfoSqlRelation      = 17
	IscInfoSqlOwner         = 18
	IscInfoSqlAlias         = 19
	IscInfoSqlSqldaStart    = 20
	IscInfoSqlStmtType      = 21
	IscInfoSqlGetPlan       = 22
	IscInfoSqlRecords       = 23
	IscInfoSqlBatchFetch    = 24
	IscInfoSqlRelationAlias = 25
	IscInfoSqlExplainPlan   = 26
)

// SQL type codes (ibase.h). The low bit of the on-wire sqltype marks
// nullability and must be cleared before comparing against these.
const (
	SqlTypeText         = 452
	SqlTypeVarying       = 448
	SqlTypeShort         = 500
	SqlTypeLong          = 496
	SqlTypeFloat         = 482
	SqlTypeDouble        = 480
	SqlTypeDFloat        = 530
	SqlTypeTimestamp     = 510
	SqlTypeBlob          = 520
	SqlTypeArray         = 540
	SqlTypeQuad          = 550
	SqlTypeTime          = 560
	SqlTypeDate          = 570
	SqlTypeInt64         = 580
	SqlTypeInt128        = 32752
	SqlTypeTimestampTZ   = 32754
	SqlTypeTimeTZ        = 32756
	SqlTypeDecFixed      = 32758
	SqlTypeDec64         = 32760
	SqlTypeDec128        = 32762
	SqlTypeBoolean       = 32764
	SqlTypeNull          = 32766
)
