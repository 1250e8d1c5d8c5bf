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

// Package cli implements the nvidia-checker command-line interface.
//
// # Overview
//
// nvidia-checker records the versions of the GPU software stack installed on a
// machine (OS, kernel, NVIDIA driver, CUDA, cuDNN and TensorRT), compares them
// with the previous run and/or a target snapshot, and saves the current
// snapshot for the next run.
//
// # Usage
//
//	nvidia-checker [--latest] [--diff LOCATION] [--store PATH] [--log-level LEVEL]
//	               [--allow-missing] [--command-timeout DURATION] [--fail-on-mismatch]
//	               [--output FILE] [--format yaml|json|toml|table]
//	               [--publish cm://NAMESPACE/NAME] [--metrics-file PATH]
//	               [--kubeconfig PATH] [--no-color]
//
// The report is printed to stdout:
//
//	===== Your environment =====
//	checked time: 2024.01.02 03:04:05
//	...
//	Before checked at 2024.01.01 09:00:00
//	===== Check environment =====
//	os: OK
//	nvidia driver: NG
//
// # Flags
//
//   - --latest (NVIDIA_CHECKER_LATEST): compare with the snapshot saved by the previous run
//   - --diff (NVIDIA_CHECKER_DIFF): compare with a target at a path, http(s) URL or cm://namespace/name
//   - --store (NVIDIA_CHECKER_STORE): location of the saved snapshot
//   - --log-level (LOG_LEVEL): debug, info, warn or error
//   - --allow-missing: record empty values for unavailable commands
//   - --fail-on-mismatch: return ErrMismatch when any field is NG
//   - --output, --format: also write the check result document
//   - --publish: apply the captured snapshot to a ConfigMap
//   - --metrics-file: write Prometheus textfile metrics
//
// # Exit Status
//
// Execute exits with status 1 when capture fails, a comparison record cannot be
// loaded, the snapshot cannot be saved, or --fail-on-mismatch finds an NG field.
// The snapshot is saved before any of these errors is returned, except when
// capture itself failed.
package cli
