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

package serializer

import (
	"log/slog"
	"net/url"
	"path"
	"strings"
)

// Format represents a serialization format.
type Format string

const (
	// FormatJSON encodes data as indented JSON.
	FormatJSON Format = "json"
	// FormatYAML encodes data as YAML.
	FormatYAML Format = "yaml"
	// FormatTOML encodes data as TOML.
	FormatTOML Format = "toml"
	// FormatTable renders data as a two-column table. Write-only.
	FormatTable Format = "table"
)

// IsUnknown reports whether f is not one of the supported formats.
func (f Format) IsUnknown() bool {
	switch f {
	case FormatJSON, FormatYAML, FormatTOML, FormatTable:
		return false
	default:
		return true
	}
}

// Extension returns the file extension, without the dot, conventionally
// used for f.
func (f Format) Extension() string {
	if f == FormatTable {
		return "txt"
	}
	return string(f)
}

// SupportedFormats returns a list of all supported output formats.
func SupportedFormats() []string {
	return []string{
		string(FormatYAML),
		string(FormatJSON),
		string(FormatTOML),
		string(FormatTable),
	}
}

// FormatFromPath determines the format from a file path or URL extension.
// Supported extensions:
//   - .yaml, .yml → FormatYAML
//   - .json → FormatJSON
//   - .toml → FormatTOML
//   - .table, .txt → FormatTable
//
// Unknown extensions default to YAML. Matching is case-insensitive.
func FormatFromPath(filePath string) Format {
	p := filePath
	if u, err := url.Parse(filePath); err == nil && u.Scheme != "" && u.Path != "" {
		p = u.Path
	}

	switch strings.ToLower(path.Ext(p)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".json":
		return FormatJSON
	case ".toml":
		return FormatTOML
	case ".table", ".txt":
		return FormatTable
	default:
		slog.Debug("unknown file extension, defaulting to YAML", "filePath", filePath)
		return FormatYAML
	}
}
