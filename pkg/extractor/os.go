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

	"github.com/NVIDIA/nvidia-checker/pkg/collector/file"
)

// OSPrettyNameKey is the os-release key holding the human-readable OS name.
const OSPrettyNameKey = "PRETTY_NAME"

var osReleaseParser = file.NewParser(
	file.WithKVDelimiter("="),
	file.WithVTrimChars(`"'`),
	file.WithSkipComments(true),
)

// OSVersion returns the PRETTY_NAME value of an os-release document with
// surrounding quotes removed.
//
//	PRETTY_NAME="Ubuntu 22.04.3 LTS"
func OSVersion(out string) string {
	return osReleaseParser.Map(out)[OSPrettyNameKey]
}

// KernelVersion returns uname -r output without its trailing line break.
func KernelVersion(out string) string {
	return strings.TrimRight(out, "\r\n")
}
