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

package common

// BLR (Binary Language Representation) opcodes used to describe row
// layout at execute time. Values are fixed by the Firebird wire protocol.
const (
	BlrVersion5 = 5
	BlrBegin    = 2
	BlrMessage  = 4
	BlrEnd      = 255
	BlrEoc      = 76

	BlrVarying   = 37
	BlrInt64     = 45
	BlrDouble    = 27
	BlrTimestamp = 35
	BlrShort     = 7
)

// ParseMode tracks which half of the interleaved prepare-info item stream
// the decoder is currently in.
type ParseMode int

const (
	ParseModeColumn ParseMode = iota
	ParseModeParam
)

func (m ParseMode) String() string {
	if m == ParseModeParam {
		return "param"
	}
	return "column"
}
