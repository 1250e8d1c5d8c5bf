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
	"strings"
	"testing"
)

// FuzzExtractors checks that no extractor panics on arbitrary input and that
// package results are always sorted and free of duplicates.
func FuzzExtractors(f *testing.F) {
	f.Add(ubuntuOSRelease)
	f.Add(proprietaryDriver)
	f.Add(openDriver)
	f.Add(nvccOutput)
	f.Add(dpkgCuDNN)
	f.Add(dpkgTensorRT)
	f.Add("")
	f.Add("\n\n\n")
	f.Add("Build")
	f.Add("Module")
	f.Add("PRETTY_NAME")
	f.Add("libcudnn8 libnv")

	f.Fuzz(func(t *testing.T, input string) {
		_ = OSVersion(input)
		_ = DriverVersion(input)
		_ = CUDAVersion(input)

		if got := KernelVersion(input); strings.HasSuffix(got, "\n") {
			t.Errorf("KernelVersion(%q) kept trailing newline", input)
		}

		for _, marker := range []string{CuDNNPackageMarker, TensorRTPackageMarker} {
			got := PackageVersions(input, marker)
			if got == "" || strings.Contains(input, PackageVersionSeparator) {
				continue
			}
			parts := strings.Split(got, PackageVersionSeparator)
			for i := 1; i < len(parts); i++ {
				if parts[i-1] >= parts[i] {
					t.Errorf("PackageVersions(%q, %q) = %q is not strictly sorted", input, marker, got)
				}
			}
		}
	})
}
