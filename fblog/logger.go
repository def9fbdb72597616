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

// Package fblog is the process-wide structured logger, a single global
// the same way an ambient logging package would expose a
// GetLogger(). Concrete logging is done through logrus; this package
// only owns the singleton and a couple of level-gated helpers so call
// sites stay cheap when a level is disabled.
package fblog

import (
	"sync"

	"github.com/sirupsen/logrus"
)

var (
	once     sync.Once
	instance *logrus.Logger
)

// GetLogger returns the process-wide logger, creating it with sane
// defaults (text formatter, Info level) on first use.
func GetLogger() *logrus.Logger {
	once.Do(func() {
		instance = logrus.New()
		instance.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
		instance.SetLevel(logrus.InfoLevel)
	})
	return instance
}

// SetLevel adjusts the global log level, e.g. from config at startup.
func SetLevel(level string) error {
	l, err := logrus.ParseLevel(level)
	if err != nil {
		return err
	}
	GetLogger().SetLevel(l)
	return nil
}

// V reports whether the given level is enabled, mirroring the
// logger.GetLogger().V(level) gate used before building an expensive log
// line.
func V(level logrus.Level) bool {
	return GetLogger().IsLevelEnabled(level)
}
