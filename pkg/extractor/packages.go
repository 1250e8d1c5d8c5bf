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

import (
	"slices"
	"strings"
)

const (
	// CuDNNPackageMarker selects cuDNN runtime packages in dpkg -l output.
	CuDNNPackageMarker = "libcudnn8"

	// TensorRTPackageMarker selects TensorRT library packages in dpkg -l output.
	TensorRTPackageMarker = "libnv"

	// PackageVersionIndex is the whitespace token offset of the version in a
	// dpkg -l row:
	//
	//	ii  libcudnn8  8.9.5.29-1+cuda12.2  amd64  cuDNN runtime libraries
	PackageVersionIndex = 2

	// PackageVersionSeparator joins multiple installed versions.
	PackageVersionSeparator = ","
)

// PackageVersions collects the version column of every line containing
// marker, then deduplicates, sorts ascending and joins them with a comma.
// Lines too short to carry a version are ignored.
func PackageVersions(out, marker string) string {
	var versions []string
	for _, line := range strings.Split(out, "\n") {
		if !strings.Contains(line, marker) {
			continue
		}

		tokens := strings.Fields(line)
		if len(tokens) <= PackageVersionIndex {
			continue
		}
		versions = append(versions, tokens[PackageVersionIndex])
	}

	slices.Sort(versions)
	return strings.Join(slices.Compact(versions), PackageVersionSeparator)
}

// CuDNNVersion returns the installed cuDNN package versions.
func CuDNNVersion(out string) string {
	return PackageVersions(out, CuDNNPackageMarker)
}

// TensorRTVersion returns the installed TensorRT package versions.
func TensorRTVersion(out string) string {
	return PackageVersions(out, TensorRTPackageMarker)
}
