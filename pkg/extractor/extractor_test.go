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
	"testing"

	"github.com/stretchr/testify/assert"
)

const (
	ubuntuOSRelease = `PRETTY_NAME="Ubuntu 22.04.3 LTS"
NAME="Ubuntu"
VERSION_ID="22.04"
VERSION="22.04.3 LTS (Jammy Jellyfish)"
VERSION_CODENAME=jammy
ID=ubuntu
ID_LIKE=debian
`

	proprietaryDriver = `NVRM version: NVIDIA UNIX x86_64 Kernel Module  535.129.03  Thu Oct 19 18:56:32 UTC 2023
GCC version:  gcc version 11.4.0 (Ubuntu 11.4.0-1ubuntu1~22.04)
`

	openDriver = `NVRM version: NVIDIA UNIX Open Kernel Module for x86_64  535.129.03  Release Build  (dvs-builder@U16-I3-B03-4-3)  Tue Oct 31 00:19:30 UTC 2023
GCC version:  gcc version 12.3.0 (Ubuntu 12.3.0-1ubuntu1~22.04)
`

	nvccOutput = `nvcc: NVIDIA (R) Cuda compiler driver
Copyright (c) 2005-2023 NVIDIA Corporation
Built on Fri_Nov__3_17:16:49_PDT_2023
Cuda compilation tools, release 12.3, V12.3.103
Build cuda_12.3.r12.3/compiler.33567101_0
`

	dpkgCuDNN = `ii  libcudnn8                            8.9.5.29-1+cuda12.2                     amd64        cuDNN runtime libraries
ii  libcudnn8-dev                        8.9.5.29-1+cuda12.2                     amd64        cuDNN development libraries and headers
`

	dpkgTensorRT = `ii  libnvinfer-plugin8                   8.6.1.6-1+cuda12.0                      amd64        TensorRT plugin libraries
ii  libnvinfer8                          8.6.1.6-1+cuda12.0                      amd64        TensorRT runtime libraries
ii  libnvonnxparsers8                    8.6.1.6-1+cuda12.0                      amd64        TensorRT ONNX libraries
ii  libnvparsers8                        8.6.1.6-1+cuda12.0                      amd64        TensorRT parsers libraries
ii  tensorrt                             8.6.1.6-1+cuda12.0                      amd64        Meta package for TensorRT
`
)

func TestOSVersion(t *testing.T) {
	tests := []struct {
		name string
		out  string
		want string
	}{
		{"ubuntu", ubuntuOSRelease, "Ubuntu 22.04.3 LTS"},
		{"unquoted", "ID=debian\nPRETTY_NAME=Debian\n", "Debian"},
		{"single quoted", "PRETTY_NAME='Rocky Linux 9.3 (Blue Onyx)'", "Rocky Linux 9.3 (Blue Onyx)"},
		{"value with equals", `PRETTY_NAME="a=b"`, "a=b"},
		{"no pretty name", "NAME=Ubuntu\nID=ubuntu\n", ""},
		{"similar key only", "PRETTY_NAME_EXTRA=x\n", ""},
		{"commented out", "# PRETTY_NAME=\"Old\"\nNAME=x\n", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, OSVersion(tt.out))
		})
	}
}

func TestOSVersion_UnquotesAnyName(t *testing.T) {
	for _, name := range []string{"Ubuntu 24.04.1 LTS", "Red Hat Enterprise Linux 9.4 (Plow)", "x"} {
		assert.Equal(t, name, OSVersion(`PRETTY_NAME="`+name+`"`))
	}
}

func TestKernelVersion(t *testing.T) {
	tests := []struct {
		name string
		out  string
		want string
	}{
		{"trailing newline", "5.15.0-91-generic\n", "5.15.0-91-generic"},
		{"crlf", "6.8.0-1015-aws\r\n", "6.8.0-1015-aws"},
		{"no newline", "6.1.0", "6.1.0"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KernelVersion(tt.out))
		})
	}
}

func TestDriverVersion(t *testing.T) {
	tests := []struct {
		name string
		out  string
		want string
	}{
		{"proprietary module", proprietaryDriver, "535.129.03"},
		{"open kernel module", openDriver, "535.129.03"},
		{"positional fallback", "a b c d e f g 550.54.14 h", "550.54.14"},
		{"repeated whitespace", "NVRM   version:  NVIDIA   UNIX x86_64 Kernel   Module   470.223.02", "470.223.02"},
		{"too few tokens", "NVRM version: NVIDIA", ""},
		{"version on second line ignored", "short\nNVRM version: NVIDIA UNIX x86_64 Kernel Module  535.129.03", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DriverVersion(tt.out))
		})
	}
}

func TestCUDAVersion(t *testing.T) {
	tests := []struct {
		name string
		out  string
		want string
	}{
		{"nvcc 12.3", nvccOutput, "cuda_12.3.r12.3"},
		{"nvcc 11.8", "Build cuda_11.8.r11.8/compiler.31833905_0\n", "cuda_11.8.r11.8"},
		{"no slash", "Build cuda_12.1.r12.1", "cuda_12.1.r12.1"},
		{"marker without token", "Build\n", ""},
		{"built line only", "Built on Fri_Nov__3_17:16:49_PDT_2023\n", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CUDAVersion(tt.out))
		})
	}
}

func TestCUDAVersion_BuildPattern(t *testing.T) {
	for _, v := range []string{"cuda_12.4.r12.4", "cuda_10.2.r10.2", "cuda_1.0.r1.0"} {
		out := "Cuda compilation tools\nBuild " + v + "/compiler.12345_0\n"
		assert.Equal(t, v, CUDAVersion(out))
	}
}

func TestPackageVersions(t *testing.T) {
	tests := []struct {
		name   string
		out    string
		marker string
		want   string
	}{
		{
			name:   "cudnn runtime and dev share version",
			out:    dpkgCuDNN,
			marker: CuDNNPackageMarker,
			want:   "8.9.5.29-1+cuda12.2",
		},
		{
			name: "two cudnn versions",
			out: "ii  libcudnn8  8.9.5.30-1+cuda12.2  amd64  cuDNN runtime\n" +
				"ii  libcudnn8  8.9.5.29-1+cuda12.2  amd64  cuDNN runtime\n",
			marker: CuDNNPackageMarker,
			want:   "8.9.5.29-1+cuda12.2,8.9.5.30-1+cuda12.2",
		},
		{
			name:   "tensorrt ignores meta package",
			out:    dpkgTensorRT,
			marker: TensorRTPackageMarker,
			want:   "8.6.1.6-1+cuda12.0",
		},
		{
			name:   "short line skipped",
			out:    "ii libcudnn8\nii  libcudnn8  8.9.7.29-1+cuda12.2  amd64",
			marker: CuDNNPackageMarker,
			want:   "8.9.7.29-1+cuda12.2",
		},
		{
			name:   "no matches",
			out:    "ii  vim  2:8.2.3995-1ubuntu2  amd64  Vi IMproved\n",
			marker: CuDNNPackageMarker,
			want:   "",
		},
		{
			name:   "empty",
			out:    "",
			marker: TensorRTPackageMarker,
			want:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PackageVersions(tt.out, tt.marker))
		})
	}
}

func TestPackageVersions_SortedDeduplicated(t *testing.T) {
	out := "" +
		"ii  libnvinfer8  8.6.1.6-1  amd64\n" +
		"ii  libnvinfer8  10.0.1.6-1  amd64\n" +
		"ii  libnvinfer8  8.6.1.6-1  amd64\n" +
		"ii  libnvinfer8  8.5.3.1-1  amd64\n"

	// lexicographic, not semantic, ordering
	assert.Equal(t, "10.0.1.6-1,8.5.3.1-1,8.6.1.6-1", PackageVersions(out, TensorRTPackageMarker))
}

func TestWrappers(t *testing.T) {
	assert.Equal(t, "8.9.5.29-1+cuda12.2", CuDNNVersion(dpkgCuDNN))
	assert.Equal(t, "8.6.1.6-1+cuda12.0", TensorRTVersion(dpkgTensorRT))
	assert.Empty(t, CuDNNVersion(dpkgTensorRT))
}
