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

// Package collector captures the GPU software stack of the local machine as
// a snapshot.Snapshot.
//
// Sources, queried sequentially:
//
//	kernel         uname -r
//	os             /etc/os-release, falling back to /usr/lib/os-release
//	nvidia_driver  /proc/driver/nvidia/version
//	cuda           nvcc -V (PATH, then /usr/local/cuda/bin/nvcc)
//	cudnn          dpkg -l, lines containing "cudnn"
//	tensorrt       dpkg -l, lines containing "TensorRT"
//
// Raw output goes through the pkg/extractor functions. Each command runs
// under its own timeout (defaults.CommandTimeout). A failing command yields
// a COMMAND_FAILED (or TIMEOUT) structured error naming the command unless
// WithAllowMissing is set, in which case the field is left empty. Missing
// files always leave the field empty.
//
// Commands run through k8s.io/utils/exec, so tests inject
// k8s.io/utils/exec/testing fakes:
//
//	c := collector.New(collector.WithExec(fakeExec), collector.WithReadFile(read))
//	snap, err := c.Collect(ctx)
package collector
