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
	"github.com/NVIDIA/nvidia-checker/pkg/header"
	"github.com/NVIDIA/nvidia-checker/pkg/snapshot"
)

// Kind names the reference a comparison was made against.
type Kind string

const (
	// KindLatest compares against the stored previous snapshot.
	KindLatest Kind = "latest"
	// KindTarget compares against a caller-supplied target snapshot.
	KindTarget Kind = "target"
)

// Comparison is the outcome of comparing the current snapshot with one
// reference snapshot.
type Comparison struct {
	Kind   Kind   `json:"kind" yaml:"kind" toml:"kind"`
	Source string `json:"source" yaml:"source" toml:"source"`

	// CheckedAt is the checked_time of the reference snapshot.
	CheckedAt string `json:"checkedAt,omitempty" yaml:"checkedAt,omitempty" toml:"checkedAt,omitempty"`

	// FirstRun is set when no previous snapshot existed.
	FirstRun bool `json:"firstRun,omitempty" yaml:"firstRun,omitempty" toml:"firstRun,omitempty"`

	// Error is set when the reference could not be loaded.
	Error string `json:"error,omitempty" yaml:"error,omitempty" toml:"error,omitempty"`

	Results []snapshot.Result `json:"results,omitempty" yaml:"results,omitempty" toml:"results,omitempty"`
}

// OK reports whether every field matched. Comparisons that could not be
// made are not OK; a first run is.
func (c Comparison) OK() bool {
	if c.Error != "" {
		return false
	}
	return snapshot.Report{Results: c.Results}.OK()
}

// CheckResult is the document produced by one run.
type CheckResult struct {
	header.Header `json:",inline" yaml:",inline"`

	// RunID correlates the result with the run's log lines.
	RunID string `json:"runId" yaml:"runId" toml:"runId"`

	// Snapshot is the captured current environment.
	Snapshot snapshot.Snapshot `json:"snapshot" yaml:"snapshot" toml:"snapshot"`

	Comparisons []Comparison `json:"comparisons,omitempty" yaml:"comparisons,omitempty" toml:"comparisons,omitempty"`
}

// OK reports whether every comparison passed.
func (r *CheckResult) OK() bool {
	for _, c := range r.Comparisons {
		if !c.OK() {
			return false
		}
	}
	return true
}

// Mismatches returns the number of NG fields over all comparisons.
func (r *CheckResult) Mismatches() int {
	n := 0
	for _, c := range r.Comparisons {
		n += len(snapshot.Report{Results: c.Results}.Mismatches())
	}
	return n
}
