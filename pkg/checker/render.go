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
	"fmt"
	"io"

	"github.com/NVIDIA/nvidia-checker/pkg/snapshot"
	"github.com/fatih/color"
)

const (
	headingEnvironment = "===== Your environment ====="
	headingCheck       = "===== Check environment ====="
)

// printer renders run output for humans.
type printer struct {
	out io.Writer
	ok  *color.Color
	ng  *color.Color
}

// newPrinter returns a printer writing to out. OK and NG are coloured only
// when colored is set, regardless of color.NoColor.
func newPrinter(out io.Writer, colored bool) printer {
	p := printer{
		out: out,
		ok:  color.New(color.FgGreen),
		ng:  color.New(color.FgRed),
	}
	if colored {
		p.ok.EnableColor()
		p.ng.EnableColor()
	} else {
		p.ok.DisableColor()
		p.ng.DisableColor()
	}
	return p
}

func (p printer) environment(s snapshot.Snapshot) {
	fmt.Fprintln(p.out, headingEnvironment)
	for _, f := range snapshot.Fields() {
		fmt.Fprintf(p.out, "%s: %s\n", f.Label(), s.Get(f))
	}
}

func (p printer) previous(checkedAt string) {
	fmt.Fprintf(p.out, "Before checked at %s\n", checkedAt)
}

func (p printer) firstRun(path string) {
	fmt.Fprintf(p.out, "No previous check found at %s; nothing to compare\n", path)
}

func (p printer) target(source string) {
	fmt.Fprintf(p.out, "Target %s\n", source)
}

func (p printer) results(results []snapshot.Result) {
	fmt.Fprintln(p.out, headingCheck)
	for _, r := range results {
		fmt.Fprintf(p.out, "%s: %s\n", r.Field.Label(), p.status(r.Status))
	}
}

func (p printer) status(s snapshot.Status) string {
	if s == snapshot.StatusOK {
		return p.ok.Sprint(string(s))
	}
	return p.ng.Sprint(string(s))
}
