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
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/nvidia-checker/pkg/defaults"
	"github.com/NVIDIA/nvidia-checker/pkg/logging"
)

const (
	name           = "nvidia-checker"
	versionDefault = "dev"
)

var (
	// overridden during build with ldflags
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"
)

var (
	outputFlag = &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage: `Also write the check result to this destination ("-" for stdout).
	Supports: file paths or ConfigMap URIs (cm://namespace/name).`,
	}
	formatFlag = &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"t"},
		Value:   string(defaultOutputFormat),
		Usage:   fmt.Sprintf("Format of the check result (%s)", formatList()),
	}
	kubeconfigFlag = &cli.StringFlag{
		Name:    "kubeconfig",
		Usage:   "Path to kubeconfig used for cm:// locations (default: KUBECONFIG, ~/.kube/config, in-cluster)",
		Sources: cli.EnvVars("KUBECONFIG"),
	}
)

// Execute runs the nvidia-checker command with os.Args. SIGINT and SIGTERM
// cancel the run. It exits with status 1 on error.
func Execute() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigCh
		fmt.Fprintln(os.Stderr, "\nReceived interrupt signal, shutting down...")
		cancel()
	}()

	if err := newRootCmd().Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		cancel()
		os.Exit(1) //nolint:gocritic // cancel is called explicitly above
	}
}

func newRootCmd() *cli.Command {
	return &cli.Command{
		Name:                  name,
		Version:               fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		EnableShellCompletion: true,
		Usage:                 "Check the NVIDIA GPU software stack for changes",
		Description: `Capture the versions of the OS, kernel, NVIDIA driver, CUDA, cuDNN and TensorRT
on this machine, compare them with the previous run and/or a target snapshot, and
save the current snapshot for the next run.

The snapshot is saved on every run, including the first one and runs in which
a comparison record could not be loaded.

# Examples

Capture and save the current environment:
  nvidia-checker

Report what changed since the previous run:
  nvidia-checker --latest

Compare with a known-good snapshot (file, URL or ConfigMap):
  nvidia-checker --diff baseline.yaml
  nvidia-checker --diff https://example.com/gpu/baseline.yaml
  nvidia-checker --diff cm://gpu-nodes/baseline

Fail in CI when anything drifted, writing a JSON result:
  nvidia-checker --latest --diff baseline.yaml --fail-on-mismatch -o result.json -t json

Publish this node's snapshot for use as a target elsewhere:
  nvidia-checker --publish cm://gpu-nodes/$(hostname)`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "latest",
				Usage:   "Compare with the snapshot saved by the previous run",
				Sources: cli.EnvVars("NVIDIA_CHECKER_LATEST"),
			},
			&cli.StringFlag{
				Name:    "diff",
				Usage:   "Compare with the target snapshot at this path, http(s) URL or cm://namespace/name",
				Sources: cli.EnvVars("NVIDIA_CHECKER_DIFF"),
			},
			&cli.StringFlag{
				Name:    "store",
				Usage:   "Path of the saved snapshot (default: $XDG_DATA_HOME/nvidia-checker/latest.yaml or ~/.local/share/nvidia-checker/latest.yaml)",
				Sources: cli.EnvVars("NVIDIA_CHECKER_STORE"),
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Log level (debug, info, warn, error)",
				Value:   "Info",
				Sources: cli.EnvVars(logging.EnvLogLevel),
			},
			&cli.BoolFlag{
				Name:  "allow-missing",
				Usage: "Record empty values for commands that are unavailable or fail instead of aborting",
			},
			&cli.DurationFlag{
				Name:  "command-timeout",
				Usage: "Timeout for each external command",
				Value: defaults.CommandTimeout,
			},
			&cli.BoolFlag{
				Name:  "fail-on-mismatch",
				Usage: "Exit with non-zero status if any compared field is NG",
			},
			&cli.StringFlag{
				Name:  "publish",
				Usage: "Also write the captured snapshot to a ConfigMap (cm://namespace/name)",
			},
			&cli.StringFlag{
				Name:  "metrics-file",
				Usage: "Write Prometheus textfile metrics to this path",
			},
			&cli.BoolFlag{
				Name:  "no-color",
				Usage: "Disable coloured OK/NG output (also disabled by NO_COLOR)",
			},
			outputFlag,
			formatFlag,
			kubeconfigFlag,
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			logLevel := cmd.String("log-level")
			logging.SetDefaultStructuredLoggerWithLevel(name, version, logLevel)
			slog.Debug("starting",
				"name", name,
				"version", version,
				"commit", commit,
				"date", date,
				"logLevel", logLevel)
			return ctx, nil
		},
		Action: checkAction,
	}
}
