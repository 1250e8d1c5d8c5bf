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

// Package store persists the most recent snapshot between runs and loads
// target snapshots for comparison.
//
// The store holds a single record. Its path is explicit configuration;
// DefaultPath resolves $XDG_DATA_HOME/nvidia-checker/latest.yaml, falling
// back to ~/.local/share/nvidia-checker/latest.yaml. The record format is
// chosen by extension (.yaml, .yml, .json, .toml).
//
// Load distinguishes a first run from a broken record:
//
//	snap, err := s.Load(ctx)
//	switch {
//	case errors.Is(err, store.ErrNoSnapshot):
//		// first run
//	case err != nil:
//		// DESERIALIZATION_FAILED
//	}
//
// When the default latest.yaml is absent, Load reads a latest.toml left in
// the same directory by earlier releases. Save always writes the configured
// path, replacing the previous record atomically. Concurrent runs are not
// coordinated: the last writer wins.
package store
