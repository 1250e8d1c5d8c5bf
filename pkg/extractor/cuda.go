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

package extractor

import "strings"

const (
	// CUDABuildMarker identifies the nvcc -V line carrying the toolkit build.
	CUDABuildMarker = "Build"

	// CUDABuildIndex is the whitespace token offset of the build string.
	CUDABuildIndex = 1
)

// CUDAVersion returns the toolkit build from nvcc -V output.
//
//	Build cuda_12.3.r12.3/compiler.33567101_0  ->  cuda_12.3.r12.3
func CUDAVersion(out string) string {
	for _, line := range strings.Split(out, "\n") {
		if !strings.Contains(line, CUDABuildMarker) {
			continue
		}

		tokens := strings.Fields(line)
		if len(tokens) <= CUDABuildIndex {
			return ""
		}

		version, _, _ := strings.Cut(tokens[CUDABuildIndex], "/")
		return version
	}
	return ""
}
