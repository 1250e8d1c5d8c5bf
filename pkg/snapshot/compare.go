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

package snapshot

// Status is the outcome of comparing one field.
type Status string

const (
	StatusOK Status = "OK"
	StatusNG Status = "NG"
)

// Result is the comparison of a single field.
type Result struct {
	Field   Field  `json:"field" yaml:"field" toml:"field"`
	Current string `json:"current" yaml:"current" toml:"current"`
	Target  string `json:"target" yaml:"target" toml:"target"`
	Status  Status `json:"status" yaml:"status" toml:"status"`
}

// Report holds one Result per version field, in VersionFields order.
type Report struct {
	Results []Result `json:"results" yaml:"results" toml:"results"`
}

// Compare checks each version field of current against target by exact
// string equality. An empty value only matches another empty value.
func Compare(current, target Snapshot) Report {
	fields := VersionFields()
	report := Report{Results: make([]Result, 0, len(fields))}

	for _, f := range fields {
		status := StatusNG
		if current.Get(f) == target.Get(f) {
			status = StatusOK
		}
		report.Results = append(report.Results, Result{
			Field:   f,
			Current: current.Get(f),
			Target:  target.Get(f),
			Status:  status,
		})
	}

	return report
}

// OK reports whether every field matched.
func (r Report) OK() bool {
	return len(r.Mismatches()) == 0
}

// Mismatches returns the results with status NG.
func (r Report) Mismatches() []Result {
	var out []Result
	for _, res := range r.Results {
		if res.Status != StatusOK {
			out = append(out, res)
		}
	}
	return out
}
