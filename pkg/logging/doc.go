// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package logging provides structured logging utilities for nvidia-checker.
//
// # Overview
//
// This package wraps the standard library slog package with defaults shared by
// the CLI and its libraries: JSON records on stderr, module and version
// attributes on every record, and source locations for debug logs.
//
// # Log Levels
//
// Supported log levels (case-insensitive, so the "Info" default of the
// --log-level flag works as is):
//   - DEBUG: raw command output and parser decisions, with source location
//   - INFO: run progress (default)
//   - WARN/WARNING: degraded queries, first run without a stored snapshot
//   - ERROR: failures that end the run
//
// # Usage
//
//	logging.SetDefaultStructuredLoggerWithLevel("nvidia-checker", version, "debug")
//	slog.Debug("command output", "command", "nvcc -V", "output", out)
//
// When no level is given, the LOG_LEVEL environment variable is consulted:
//
//	LOG_LEVEL=debug nvidia-checker --latest
package logging
