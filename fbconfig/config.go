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

// Package fbconfig loads the small set of tunables the fbinspect CLI
// needs at startup. Only cmd/fbinspect imports this package: the core
// (xsqlda, prepareinfo, blr) stays free of config and I/O concerns.
package fbconfig

import (
	"fmt"
	"os"
	"sync"

	"github.com/BurntSushi/toml"
)

// Config is the repository's top-level TOML document.
type Config struct {
	InitialBLRBufferBytes int    `toml:"initial_blr_buffer_bytes"`
	LogLevel              string `toml:"log_level"`
}

func defaultConfig() Config {
	return Config{
		InitialBLRBufferBytes: 256,
		LogLevel:              "info",
	}
}

var (
	once     sync.Once
	current  Config
	loadErr  error
	loadedAt string
)

// Load reads and decodes the TOML file at path, falling back to
// defaultConfig for any field the file doesn't set. It does not cache
// its result and has no effect on what Get returns.
func Load(path string) (Config, error) {
	cfg := defaultConfig()

	f, err := os.Open(path)
	if err != nil {
		return cfg, fmt.Errorf("fbconfig: open %q: %w", path, err)
	}
	defer f.Close()

	if _, err := toml.NewDecoder(f).Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("fbconfig: decode %q: %w", path, err)
	}
	return cfg, nil
}

// Get returns the process-wide config, loading it from path on first
// call the way a config singleton lazily initializes its
// singleton. A missing or invalid file is not fatal: Get falls back to
// defaultConfig and remembers the error for Err to report.
func Get(path string) Config {
	once.Do(func() {
		cfg, err := Load(path)
		if err != nil {
			current = defaultConfig()
			loadErr = err
			return
		}
		current = cfg
		loadedAt = path
	})
	return current
}

// Err returns whatever error Load produced the one time Get actually
// attempted to load the file, or nil if loading succeeded or Get has
// not been called yet.
func Err() error {
	return loadErr
}

// Path returns the file path Get successfully loaded from, or the
// empty string if no load has succeeded yet.
func Path() string {
	return loadedAt
}
