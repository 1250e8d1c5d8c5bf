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

// Package file parses line-oriented text such as os-release files and
// command output.
//
// A Parser splits content into lines, drops blank and comment lines, and can
// turn the remaining lines into a key/value map:
//
//	p := file.NewParser(file.WithVTrimChars(`"'`))
//	kv := p.Map("NAME=\"Ubuntu\"\nPRETTY_NAME=\"Ubuntu 22.04.3 LTS\"\n")
//	kv["PRETTY_NAME"] // Ubuntu 22.04.3 LTS
//
// Read loads a file of at most MaxSize bytes and rejects invalid UTF-8.
package file
