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

// Package extractor turns the raw text output of system queries into
// normalized version strings.
//
// Every extractor is a pure function of one query's output. None of them
// fail: when the expected pattern is absent the result is the empty string,
// which is a valid, comparable snapshot value.
//
//	extractor.OSVersion(osRelease)       // Ubuntu 22.04.3 LTS
//	extractor.KernelVersion(uname)       // 5.15.0-91-generic
//	extractor.DriverVersion(nvrm)        // 535.129.03
//	extractor.CUDAVersion(nvcc)          // cuda_12.3.r12.3
//	extractor.CuDNNVersion(dpkgCuDNN)    // 8.9.5.29-1+cuda12.2
//	extractor.TensorRTVersion(dpkgTRT)   // 8.6.1.6-1+cuda12.0
//
// Markers, keys and token offsets are exported constants so that a change in
// an upstream output format is pinned down by a single failing test.
package extractor
