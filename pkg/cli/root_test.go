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

package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/nvidia-checker/pkg/checker"
	"github.com/NVIDIA/nvidia-checker/pkg/collector"
	"github.com/NVIDIA/nvidia-checker/pkg/serializer"
	"github.com/NVIDIA/nvidia-checker/pkg/snapshot"
	"github.com/NVIDIA/nvidia-checker/pkg/store"
)

var testSnapshot = snapshot.Snapshot{
	CheckedTime:  "2024.01.02 03:04:05",
	OS:           "Ubuntu 22.04.3 LTS",
	Kernel:       "5.15.0-91-generic",
	NvidiaDriver: "535.129.03",
	CUDA:         "cuda_12.3.r12.3",
	CuDNN:        "8.9.5.29-1+cuda12.2,8.9.5.30-1+cuda12.2",
	TensorRT:     "8.6.1.6-1+cuda12.0",
}

type staticCollector struct {
	snap snapshot.Snapshot
	opts int
}

func (s staticCollector) Collect(context.Context) (snapshot.Snapshot, error) {
	return s.snap, nil
}

func useCollector(t *testing.T, snap snapshot.Snapshot) {
	t.Helper()
	orig := newCollector
	newCollector = func(opts ...collector.Option) checker.Collector {
		return staticCollector{snap: snap, opts: len(opts)}
	}
	t.Cleanup(func() { newCollector = orig })
}

func runRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.Writer = &out
	err := cmd.Run(context.Background(), append([]string{name}, args...))
	return out.String(), err
}

func TestParseOutputFormat(t *testing.T) {
	tests := []struct {
		name       string
		format     string
		wantFormat serializer.Format
		wantErr    bool
	}{
		{name: "yaml", format: "yaml", wantFormat: serializer.FormatYAML},
		{name: "json", format: "json", wantFormat: serializer.FormatJSON},
		{name: "toml", format: "toml", wantFormat: serializer.FormatTOML},
		{name: "table", format: "table", wantFormat: serializer.FormatTable},
		{name: "upper case", format: "JSON", wantFormat: serializer.FormatJSON},
		{name: "xml", format: "xml", wantErr: true},
		{name: "empty", format: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := &cli.Command{
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "format", Value: tt.format},
				},
				Action: func(_ context.Context, c *cli.Command) error {
					got, err := parseOutputFormat(c)
					if (err != nil) != tt.wantErr {
						t.Errorf("parseOutputFormat() error = %v, wantErr %v", err, tt.wantErr)
						return nil
					}
					if !tt.wantErr && got != tt.wantFormat {
						t.Errorf("parseOutputFormat() = %v, want %v", got, tt.wantFormat)
					}
					return nil
				},
			}
			require.NoError(t, cmd.Run(context.Background(), []string{"test"}))
		})
	}
}

func TestRoot_FirstRunThenLatest(t *testing.T) {
	useCollector(t, testSnapshot)
	storeFile := filepath.Join(t.TempDir(), "latest.yaml")

	out, err := runRoot(t, "--store", storeFile, "--latest")
	require.NoError(t, err)
	assert.Contains(t, out, "===== Your environment =====")
	assert.Contains(t, out, "No previous check found")

	changed := testSnapshot
	changed.NvidiaDriver = "545.23.08"
	useCollector(t, changed)

	out, err = runRoot(t, "--store", storeFile, "--latest")
	require.NoError(t, err)
	assert.Contains(t, out, "Before checked at 2024.01.02 03:04:05")
	assert.Contains(t, out, "nvidia driver: NG\n")
	assert.Contains(t, out, "kernel: OK\n")

	saved, err := store.New(storeFile).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "545.23.08", saved.NvidiaDriver)
}

func TestRoot_DiffFailOnMismatch(t *testing.T) {
	useCollector(t, testSnapshot)
	dir := t.TempDir()

	target := testSnapshot
	target.CUDA = "cuda_12.2.r12.2"
	targetFile := filepath.Join(dir, "baseline.json")
	require.NoError(t, store.New(targetFile).Save(context.Background(), target))

	out, err := runRoot(t, "--store", filepath.Join(dir, "latest.yaml"), "--diff", targetFile)
	require.NoError(t, err)
	assert.Contains(t, out, "cuda: NG\n")

	_, err = runRoot(t, "--store", filepath.Join(dir, "latest.yaml"), "--diff", targetFile, "--fail-on-mismatch")
	require.ErrorIs(t, err, ErrMismatch)
	assert.Contains(t, err.Error(), "1 field(s) NG")
}

func TestRoot_DiffFromEnv(t *testing.T) {
	useCollector(t, testSnapshot)
	dir := t.TempDir()
	targetFile := filepath.Join(dir, "baseline.yaml")
	require.NoError(t, store.New(targetFile).Save(context.Background(), testSnapshot))

	t.Setenv("NVIDIA_CHECKER_DIFF", targetFile)
	t.Setenv("NVIDIA_CHECKER_STORE", filepath.Join(dir, "latest.yaml"))

	out, err := runRoot(t, "--fail-on-mismatch")
	require.NoError(t, err)
	assert.Equal(t, 6, strings.Count(out, ": OK\n"))
}

func TestRoot_MissingTargetStillSaves(t *testing.T) {
	useCollector(t, testSnapshot)
	dir := t.TempDir()
	storeFile := filepath.Join(dir, "latest.yaml")

	_, err := runRoot(t, "--store", storeFile, "--diff", filepath.Join(dir, "absent.yaml"))
	require.Error(t, err)

	_, statErr := os.Stat(storeFile)
	assert.NoError(t, statErr)
}

func TestRoot_OutputFile(t *testing.T) {
	useCollector(t, testSnapshot)
	dir := t.TempDir()
	resultFile := filepath.Join(dir, "result.json")

	_, err := runRoot(t, "--store", filepath.Join(dir, "latest.yaml"), "--latest", "-o", resultFile, "-t", "json")
	require.NoError(t, err)

	res, err := serializer.FromFile[checker.CheckResult](context.Background(), resultFile)
	require.NoError(t, err)
	assert.Equal(t, testSnapshot, res.Snapshot)
	assert.Equal(t, "CheckResult", res.Kind.String())
	require.Len(t, res.Comparisons, 1)
	assert.True(t, res.Comparisons[0].FirstRun)
}

func TestRoot_MetricsFile(t *testing.T) {
	useCollector(t, testSnapshot)
	dir := t.TempDir()
	metricsFile := filepath.Join(dir, "nvidia_checker.prom")

	_, err := runRoot(t, "--store", filepath.Join(dir, "latest.yaml"), "--metrics-file", metricsFile)
	require.NoError(t, err)

	data, err := os.ReadFile(metricsFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "nvidia_checker_snapshot_info")
}

func TestRoot_InvalidArguments(t *testing.T) {
	useCollector(t, testSnapshot)
	storeFile := filepath.Join(t.TempDir(), "latest.yaml")

	_, err := runRoot(t, "--store", storeFile, "--format", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown output format")

	_, err = runRoot(t, "--store", storeFile, "--publish", "gpu-nodes/node-a")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--publish")

	_, statErr := os.Stat(storeFile)
	assert.True(t, os.IsNotExist(statErr), "argument errors abort before capture")
}

func TestUseColor(t *testing.T) {
	orig := color.NoColor
	t.Cleanup(func() { color.NoColor = orig })

	tests := []struct {
		name    string
		noColor bool
		writer  io.Writer
		args    []string
		want    bool
	}{
		{name: "terminal stdout", writer: os.Stdout, want: true},
		{name: "buffer", writer: &bytes.Buffer{}, want: false},
		{name: "no color env", noColor: true, writer: os.Stdout, want: false},
		{name: "no color flag", writer: os.Stdout, args: []string{"--no-color"}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			color.NoColor = tt.noColor
			cmd := newRootCmd()
			cmd.Writer = tt.writer
			cmd.Action = func(_ context.Context, c *cli.Command) error {
				assert.Equal(t, tt.want, useColor(c))
				return nil
			}
			require.NoError(t, cmd.Run(context.Background(), append([]string{name}, tt.args...)))
		})
	}
}

func TestStorePath_Default(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/data")
	t.Setenv("NVIDIA_CHECKER_STORE", "")

	cmd := newRootCmd()
	cmd.Action = func(_ context.Context, c *cli.Command) error {
		p, err := storePath(c)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join("/data", store.AppDir, store.RecordName), p)
		return nil
	}
	require.NoError(t, cmd.Run(context.Background(), []string{name}))
}
