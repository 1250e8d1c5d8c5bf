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

package collector

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/NVIDIA/nvidia-checker/pkg/collector/file"
	"github.com/NVIDIA/nvidia-checker/pkg/defaults"
	"github.com/NVIDIA/nvidia-checker/pkg/extractor"
	"github.com/NVIDIA/nvidia-checker/pkg/snapshot"
	utilexec "k8s.io/utils/exec"
)

const (
	// DriverVersionPath is the kernel driver's version file.
	DriverVersionPath = "/proc/driver/nvidia/version"

	// NvccFallbackPath is tried when nvcc is not on PATH.
	NvccFallbackPath = "/usr/local/cuda/bin/nvcc"

	// CuDNNPackageFilter and TensorRTPackageFilter select dpkg -l lines
	// before version extraction.
	CuDNNPackageFilter    = "cudnn"
	TensorRTPackageFilter = "TensorRT"
)

// OSReleasePaths are tried in order; the first readable file wins.
var OSReleasePaths = []string{"/etc/os-release", "/usr/lib/os-release"}

// Collector captures a Snapshot of the local machine. Queries run one after
// another in a fixed order: kernel, os, nvidia_driver, cuda, cudnn, tensorrt.
type Collector struct {
	exec          utilexec.Interface
	readFile      func(path string) (string, error)
	now           func() time.Time
	timeout       time.Duration
	allowMissing  bool
	osRelease     []string
	driverVersion string
	nvccFallbacks []string
}

// Option configures a Collector.
type Option func(*Collector)

// WithExec sets the command executor.
func WithExec(e utilexec.Interface) Option {
	return func(c *Collector) {
		c.exec = e
	}
}

// WithReadFile sets the function used to read os-release and the driver
// version file.
func WithReadFile(fn func(path string) (string, error)) Option {
	return func(c *Collector) {
		c.readFile = fn
	}
}

// WithClock sets the time source for checked_time.
func WithClock(now func() time.Time) Option {
	return func(c *Collector) {
		c.now = now
	}
}

// WithTimeout sets the per-command timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Collector) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithAllowMissing makes unavailable or failing commands yield empty values
// instead of errors.
func WithAllowMissing(allow bool) Option {
	return func(c *Collector) {
		c.allowMissing = allow
	}
}

// New returns a Collector using the host's executables and files.
func New(opts ...Option) *Collector {
	c := &Collector{
		exec:          utilexec.New(),
		readFile:      file.NewParser().Read,
		now:           time.Now,
		timeout:       defaults.CommandTimeout,
		osRelease:     OSReleasePaths,
		driverVersion: DriverVersionPath,
		nvccFallbacks: []string{NvccFallbackPath},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type query struct {
	field   snapshot.Field
	collect func(context.Context) (string, error)
	extract func(string) string
}

func (c *Collector) queries() []query {
	return []query{
		{snapshot.FieldKernel, c.kernel, extractor.KernelVersion},
		{snapshot.FieldOS, c.osReleaseContent, extractor.OSVersion},
		{snapshot.FieldNvidiaDriver, c.driverContent, extractor.DriverVersion},
		{snapshot.FieldCUDA, c.nvcc, extractor.CUDAVersion},
		{snapshot.FieldCuDNN, c.packages(CuDNNPackageFilter), extractor.CuDNNVersion},
		{snapshot.FieldTensorRT, c.packages(TensorRTPackageFilter), extractor.TensorRTVersion},
	}
}

// Collect runs every query and returns the captured Snapshot. checked_time
// is the local time at which collection started.
func (c *Collector) Collect(ctx context.Context) (snapshot.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return snapshot.Snapshot{}, err
	}

	checked := snapshot.FormatTime(c.now())
	values := make(map[snapshot.Field]string, len(snapshot.VersionFields()))

	for _, q := range c.queries() {
		raw, err := q.collect(ctx)
		if err != nil {
			return snapshot.Snapshot{}, err
		}
		v := q.extract(raw)
		if v == "" {
			slog.Debug("no version found", "field", q.field.String())
		}
		values[q.field] = v
	}

	return snapshot.Snapshot{
		CheckedTime:  checked,
		OS:           values[snapshot.FieldOS],
		Kernel:       values[snapshot.FieldKernel],
		NvidiaDriver: values[snapshot.FieldNvidiaDriver],
		CUDA:         values[snapshot.FieldCUDA],
		CuDNN:        values[snapshot.FieldCuDNN],
		TensorRT:     values[snapshot.FieldTensorRT],
	}, nil
}

func (c *Collector) kernel(ctx context.Context) (string, error) {
	return c.run(ctx, command{name: "uname", args: []string{"-r"}})
}

func (c *Collector) osReleaseContent(ctx context.Context) (string, error) {
	return c.firstFile(ctx, c.osRelease...)
}

func (c *Collector) driverContent(ctx context.Context) (string, error) {
	return c.firstFile(ctx, c.driverVersion)
}

func (c *Collector) nvcc(ctx context.Context) (string, error) {
	cmd := command{name: "nvcc", args: []string{"-V"}}
	path, err := c.lookPath(cmd.name, c.nvccFallbacks...)
	if err != nil {
		return c.fail(ctx, cmd, err)
	}
	cmd.name = path
	return c.run(ctx, cmd)
}

// packages returns the dpkg -l lines containing filter.
func (c *Collector) packages(filter string) func(context.Context) (string, error) {
	return func(ctx context.Context) (string, error) {
		out, err := c.run(ctx, command{name: "dpkg", args: []string{"-l"}})
		if err != nil {
			return "", err
		}
		return filterLines(out, filter), nil
	}
}

// firstFile returns the content of the first readable path. Unreadable
// files are not errors: the field is left empty.
func (c *Collector) firstFile(ctx context.Context, paths ...string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	for _, p := range paths {
		content, err := c.readFile(p)
		if err != nil {
			slog.Debug("file not readable", "path", p, "error", err)
			continue
		}
		slog.Debug("file read", "path", p, "output", content)
		return content, nil
	}
	slog.Warn("no readable file, value will be empty", "paths", paths)
	return "", nil
}

func filterLines(out, substr string) string {
	var b strings.Builder
	for line := range strings.Lines(out) {
		if strings.Contains(line, substr) {
			b.WriteString(line)
		}
	}
	return b.String()
}
