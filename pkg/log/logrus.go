// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package log

import "github.com/sirupsen/logrus"

// LogrusSink adapts a *logrus.Logger to Sink, tagging every event with a
// "category" field the way the teacher's own packages tag perf-stat and
// compiler diagnostic log lines.
type LogrusSink struct {
	logger *logrus.Logger
}

// NewLogrusSink wraps logger as a Sink. A nil logger falls back to logrus's
// package-level standard logger.
func NewLogrusSink(logger *logrus.Logger) *LogrusSink {
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	return &LogrusSink{logger: logger}
}

// Log implements Sink.
func (s *LogrusSink) Log(level Level, category, message string) {
	entry := s.logger.WithField("category", category)

	switch level {
	case LevelDebug:
		entry.Debug(message)
	case LevelInfo:
		entry.Info(message)
	case LevelWarn:
		entry.Warn(message)
	case LevelError:
		entry.Error(message)
	default:
		entry.Info(message)
	}
}
