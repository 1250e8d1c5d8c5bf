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

package file

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"unicode/utf8"
)

// MaxSize is the largest file, in bytes, accepted by Read.
const MaxSize = 1 << 20

// Option configures a Parser.
type Option func(*Parser)

// Parser parses line-oriented text with customizable settings.
type Parser struct {
	skipComments bool
	kvDelimiter  string
	vTrimChars   string
}

// WithSkipComments sets whether lines starting with '#' are dropped.
// Default is true.
func WithSkipComments(skip bool) Option {
	return func(p *Parser) {
		p.skipComments = skip
	}
}

// WithKVDelimiter sets the key-value delimiter used by Map.
// Default is "=".
func WithKVDelimiter(kvDelim string) Option {
	return func(p *Parser) {
		p.kvDelimiter = kvDelim
	}
}

// WithVTrimChars sets characters trimmed from both ends of values in Map.
// Default is no trimming.
func WithVTrimChars(trimChars string) Option {
	return func(p *Parser) {
		p.vTrimChars = trimChars
	}
}

// NewParser creates a new parser with the provided options.
func NewParser(opts ...Option) *Parser {
	p := &Parser{
		skipComments: true,
		kvDelimiter:  "=",
	}

	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Read returns the content of the file at path.
// An error is returned if the file cannot be read, exceeds the maximum size,
// or contains invalid UTF-8 content.
func (p *Parser) Read(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("file path cannot be empty")
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read file %q: %w", path, err)
	}

	if len(b) > MaxSize {
		return "", fmt.Errorf("file %q exceeds maximum size of %d bytes", path, MaxSize)
	}

	if !utf8.Valid(b) {
		return "", fmt.Errorf("content of file %q is not valid UTF-8", path)
	}

	return string(b), nil
}

// Lines splits content into lines and returns the trimmed, non-empty
// entries, skipping comments when configured.
func (p *Parser) Lines(content string) []string {
	parts := strings.Split(content, "\n")

	result := make([]string, 0, len(parts))
	for _, part := range parts {
		clean := strings.TrimSpace(part)
		if clean == "" {
			continue
		}
		if p.skipComments && strings.HasPrefix(clean, "#") {
			continue
		}
		result = append(result, clean)
	}

	return result
}

// Map parses content into key-value pairs split on the first kvDelimiter.
// Lines without the delimiter are ignored. When a key repeats, the first
// occurrence wins.
func (p *Parser) Map(content string) map[string]string {
	result := make(map[string]string)
	for _, line := range p.Lines(content) {
		key, value, ok := strings.Cut(line, p.kvDelimiter)
		if !ok {
			slog.Debug("skipping line without delimiter",
				"line", line,
				"delimiter", p.kvDelimiter,
			)
			continue
		}

		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		if p.vTrimChars != "" {
			value = strings.Trim(value, p.vTrimChars)
		}

		if _, seen := result[key]; seen {
			continue
		}

		result[key] = value
	}

	return result
}
