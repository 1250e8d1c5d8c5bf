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
	"regexp"
	"strings"
)

const (
	// DriverModuleToken precedes the driver version on the NVRM line.
	DriverModuleToken = "Module"

	// DriverVersionIndex is the whitespace token offset of the version on the
	// proprietary module line:
	//
	//	NVRM version: NVIDIA UNIX x86_64 Kernel Module  535.129.03  Tue Oct 31 ...
	DriverVersionIndex = 7
)

var driverVersionPattern = regexp.MustCompile(`^\d+(\.\d+)+$`)

// DriverVersion returns the NVIDIA driver version from /proc/driver/nvidia/version.
//
// Only the first line is considered. The version is the first numeric
// dotted token after "Module", which covers both the proprietary and the
// open kernel module lines:
//
//	NVRM version: NVIDIA UNIX Open Kernel Module for x86_64  535.129.03  Release Build ...
//
// Lines without that shape fall back to the token at DriverVersionIndex.
func DriverVersion(out string) string {
	line, _, _ := strings.Cut(out, "\n")
	tokens := strings.Fields(line)

	for i, tok := range tokens {
		if tok != DriverModuleToken {
			continue
		}
		for _, candidate := range tokens[i+1:] {
			if driverVersionPattern.MatchString(candidate) {
				return candidate
			}
		}
		break
	}

	if len(tokens) <= DriverVersionIndex {
		return ""
	}
	return tokens[DriverVersionIndex]
}
