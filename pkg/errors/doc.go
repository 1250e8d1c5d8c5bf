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

// Package errors provides structured error types for better observability
// and programmatic error handling across nvidia-checker.
//
// The codes map onto the failure classes of a check run: a query that could
// not be executed (COMMAND_FAILED), a snapshot record that could not be read
// (NOT_FOUND, DESERIALIZATION_FAILED) and a snapshot that could not be
// written (PERSISTENCE_FAILED). A pattern missing from command output is not
// an error at all; the affected field is left empty.
//
// Example usage:
//
//	err := errors.WrapWithContext(
//	    errors.ErrCodeCommandFailed,
//	    "failed to query CUDA version",
//	    cause,
//	    map[string]any{
//	        "command": "nvcc -V",
//	    },
//	)
//
//	if errors.IsCode(err, errors.ErrCodeNotFound) {
//	    // first run, nothing recorded yet
//	}
package errors
