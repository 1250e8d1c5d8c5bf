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

package checker

import (
	"sort"
	"testing"

	"github.com/BurntSushi/toml"
	"github.com/NVIDIA/nvidia-checker/pkg/header"
	"github.com/NVIDIA/nvidia-checker/pkg/serializer"
	"github.com/NVIDIA/nvidia-checker/pkg/snapshot"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func testResult() *CheckResult {
	r := &CheckResult{
		RunID:    "run-1",
		Snapshot: current,
		Comparisons: []Comparison{
			{Kind: KindLatest, Source: "/var/lib/latest.yaml", FirstRun: true},
			{
				Kind:      KindTarget,
				Source:    "baseline.yaml",
				CheckedAt: previous.CheckedTime,
				Results:   snapshot.Compare(current, previous).Results,
			},
		},
	}
	r.Init(header.KindCheckResult, header.APIVersion, "v0.1.0")
	return r
}

// keyPaths returns every key path in a decoded document. List elements
// share their parent's path.
func keyPaths(v any, prefix string, out map[string]struct{}) {
	switch t := v.(type) {
	case map[string]any:
		for k, child := range t {
			p := k
			if prefix != "" {
				p = prefix + "." + k
			}
			out[p] = struct{}{}
			keyPaths(child, p, out)
		}
	case []any:
		for _, child := range t {
			keyPaths(child, prefix+"[]", out)
		}
	case []map[string]any:
		for _, child := range t {
			keyPaths(child, prefix+"[]", out)
		}
	}
}

func sortedKeys(m map[string]struct{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func TestCheckResult_FormatsShareKeys(t *testing.T) {
	res := testResult()

	yamlData, err := serializer.Marshal(serializer.FormatYAML, res)
	require.NoError(t, err)
	tomlData, err := serializer.Marshal(serializer.FormatTOML, res)
	require.NoError(t, err)

	var fromYAML, fromTOML map[string]any
	require.NoError(t, yaml.Unmarshal(yamlData, &fromYAML))
	require.NoError(t, toml.Unmarshal(tomlData, &fromTOML))

	yamlKeys := map[string]struct{}{}
	keyPaths(fromYAML, "", yamlKeys)
	tomlKeys := map[string]struct{}{}
	keyPaths(fromTOML, "", tomlKeys)

	assert.Equal(t, sortedKeys(yamlKeys), sortedKeys(tomlKeys))
	assert.Contains(t, tomlKeys, "runId")
	assert.Contains(t, tomlKeys, "comparisons[].results[].field")
	assert.NotContains(t, string(tomlData), "firstRun = false")
	assert.NotContains(t, string(tomlData), "error = ")
}

func TestCheckResult_TOMLRoundTrip(t *testing.T) {
	res := testResult()

	data, err := serializer.Marshal(serializer.FormatTOML, res)
	require.NoError(t, err)

	var got CheckResult
	require.NoError(t, toml.Unmarshal(data, &got))
	assert.Equal(t, *res, got)
}
