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

// Package snapshot defines the GPU software stack snapshot and compares two
// snapshots field by field.
//
// A Snapshot holds seven strings: the local capture time and the versions of
// the OS, kernel, NVIDIA driver, CUDA toolkit, cuDNN and TensorRT. An empty
// string is a legitimate value meaning "not found on this machine".
//
// Compare checks the six version fields by exact string equality; the
// capture time is never compared:
//
//	report := snapshot.Compare(current, previous)
//	for _, r := range report.Results {
//	    fmt.Printf("%s: %s\n", r.Field.Label(), r.Status)
//	}
package snapshot
