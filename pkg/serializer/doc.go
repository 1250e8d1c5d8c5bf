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

// Package serializer encodes and decodes nvidia-checker documents.
//
// Supported formats:
//   - YAML: default for snapshot records and check results
//   - JSON: machine-readable records
//   - TOML: latest.toml records written by earlier nvidia-checker releases
//   - Table: human-readable flattened output, write-only
//
// Writing:
//
//	w := serializer.NewWriter(serializer.FormatYAML, f)
//	if err := w.Serialize(ctx, snap); err != nil {
//		return err
//	}
//
// Reading, with the format taken from the file extension:
//
//	raw, err := serializer.FromFile[map[string]any](ctx, "target.yaml")
//
// FromFile also accepts http(s):// URLs and ConfigMap URIs of the form
// cm://namespace/name; ConfigMapWriter publishes documents to the same
// ConfigMap layout so that one node's snapshot can serve as another node's
// target.
package serializer
