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

// Package header provides the common header for nvidia-checker documents
// that are not snapshot records.
//
// Snapshot records carry exactly the seven snapshot keys and no header, so
// that they stay interchangeable with records written by earlier releases.
// Check results, which are written to --output or published alongside a
// snapshot, carry a Header:
//
//	kind: CheckResult
//	apiVersion: nvidia-checker.nvidia.com/v1alpha1
//	metadata:
//	  timestamp: "2025-01-15T10:30:00Z"
//	  version: v0.3.0
package header
