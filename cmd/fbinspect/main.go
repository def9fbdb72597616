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

// Command fbinspect is a development harness over the prepare-info
// decoder and BLR encoder: it reads a raw byte dump captured from a
// real server response and runs it through the core, so the core can
// be exercised without a live connection.
package main

import (
	"encoding/hex"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fdbgo/fbwire/blr"
	"github.com/fdbgo/fbwire/fbconfig"
	"github.com/fdbgo/fbwire/fblog"
	"github.com/fdbgo/fbwire/prepareinfo"
)

var configPath string

func main() {
	rootCmd := &cobra.Command{
		Use:   "fbinspect",
		Short: "Inspect raw Firebird prepare-info byte dumps",
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "fbinspect.toml", "path to the TOML config file")

	rootCmd.AddCommand(decodeCmd())
	rootCmd.AddCommand(roundtripCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadConfig() fbconfig.Config {
	cfg := fbconfig.Get(configPath)
	if err := fblog.SetLevel(cfg.LogLevel); err != nil {
		fblog.GetLogger().WithError(err).Warn("fbinspect: ignoring invalid log_level")
	}
	return cfg
}

func decodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "decode <file>",
		Short: "Decode a prepare-info byte dump and print its descriptors",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			loadConfig()
			info, err := decodeFile(args[0])
			if err != nil {
				return err
			}
			printInfo(info)
			return nil
		},
	}
}

func roundtripCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "roundtrip <file>",
		Short: "Decode a prepare-info dump, coerce it, and re-encode it as BLR",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			cfg := loadConfig()
			info, err := decodeFile(args[0])
			if err != nil {
				return err
			}
			printInfo(info)

			for i := range info.Descriptors {
				if err := info.Descriptors[i].Coerce(); err != nil {
					return fmt.Errorf("fbinspect: coerce column %d: %w", i, err)
				}
			}

			msg, err := blr.BLRFor(info.Descriptors)
			if err != nil {
				return fmt.Errorf("fbinspect: encode BLR: %w", err)
			}
			fmt.Printf("\nBLR (%d bytes, initial buffer hint %d):\n%s\n",
				len(msg), cfg.InitialBLRBufferBytes, hex.EncodeToString(msg))
			return nil
		},
	}
}

func decodeFile(path string) (*prepareinfo.PrepareInfo, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("fbinspect: read %q: %w", path, err)
	}
	info, err := prepareinfo.ParsePrepareInfo(buf)
	if err != nil {
		return nil, fmt.Errorf("fbinspect: decode %q: %w", path, err)
	}
	return info, nil
}

func printInfo(info *prepareinfo.PrepareInfo) {
	fmt.Printf("stmt_type: %s\n", info.StmtType)
	fmt.Printf("param_count: %d\n", info.ParamCount)
	fmt.Printf("truncated: %t\n", info.Truncated)
	fmt.Printf("columns (%d):\n", len(info.Descriptors))
	for i, d := range info.Descriptors {
		fmt.Printf("  [%d] %s.%s (sqltype=%d scale=%d data_length=%d null_ind=%t)\n",
			i, d.RelationName, d.FieldName, d.Sqltype, d.Scale, d.DataLength, d.NullInd)
	}
}
