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

// Package checker runs one environment check.
//
// A run captures the current snapshot through a Collector, prints it, then
// compares it with the previous snapshot (WithLatest) and/or a target
// snapshot (WithTarget), printing one OK/NG line per version field:
//
//	===== Your environment =====
//	checked time: 2024.01.02 03:04:05
//	os: Ubuntu 22.04.3 LTS
//	...
//	Before checked at 2023.12.01 10:00:00
//	===== Check environment =====
//	os: OK
//	kernel: NG
//	...
//
// The captured snapshot is always saved to the Store, even when a reference
// could not be loaded; load errors are returned after the save. A missing
// previous snapshot is reported as a first run, not an error.
//
// Optionally the snapshot is published (e.g. to a ConfigMap) and Prometheus
// textfile metrics are written:
//
//	nvidia_checker_snapshot_info{os,kernel,nvidia_driver,cuda,cudnn,tensorrt} 1
//	nvidia_checker_field_match{comparison,field} 1|0
//	nvidia_checker_capture_duration_seconds
//	nvidia_checker_last_run_timestamp_seconds
//
// Run returns a CheckResult document suitable for serialization.
package checker
