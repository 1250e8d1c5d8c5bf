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
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/nvidia-checker/pkg/checker"
	"github.com/NVIDIA/nvidia-checker/pkg/collector"
	"github.com/NVIDIA/nvidia-checker/pkg/defaults"
	"github.com/NVIDIA/nvidia-checker/pkg/serializer"
	"github.com/NVIDIA/nvidia-checker/pkg/store"
)

const defaultOutputFormat = serializer.FormatYAML

// ErrMismatch is returned with --fail-on-mismatch when a field is NG.
var ErrMismatch = errors.New("environment does not match")

// newCollector is replaced in tests.
var newCollector = func(opts ...collector.Option) checker.Collector {
	return collector.New(opts...)
}

func formatList() string {
	return strings.Join(serializer.SupportedFormats(), ", ")
}

// parseOutputFormat returns the --format value if it is a known format.
func parseOutputFormat(cmd *cli.Command) (serializer.Format, error) {
	f := serializer.Format(strings.ToLower(strings.TrimSpace(cmd.String("format"))))
	if f.IsUnknown() {
		return "", fmt.Errorf("unknown output format: %q (supported: %s)", cmd.String("format"), formatList())
	}
	return f, nil
}

// storePath returns --store or the default location.
func storePath(cmd *cli.Command) (string, error) {
	if p := strings.TrimSpace(cmd.String("store")); p != "" {
		return p, nil
	}
	return store.DefaultPath()
}

// useColor reports whether OK/NG are coloured. color.NoColor already
// honours NO_COLOR and a non-terminal stdout; --no-color forces it.
func useColor(cmd *cli.Command) bool {
	if cmd.Bool("no-color") {
		color.NoColor = true
	}
	return !color.NoColor && cmd.Root().Writer == io.Writer(os.Stdout)
}

func checkAction(ctx context.Context, cmd *cli.Command) error {
	outFormat, err := parseOutputFormat(cmd)
	if err != nil {
		return err
	}

	path, err := storePath(cmd)
	if err != nil {
		return err
	}

	kubeconfig := cmd.String("kubeconfig")
	st := store.New(path, store.WithKubeconfig(kubeconfig))

	col := newCollector(
		collector.WithAllowMissing(cmd.Bool("allow-missing")),
		collector.WithTimeout(cmd.Duration("command-timeout")),
	)

	opts := []checker.Option{
		checker.WithLatest(cmd.Bool("latest")),
		checker.WithTarget(cmd.String("diff")),
		checker.WithOutput(cmd.Root().Writer),
		checker.WithColor(useColor(cmd)),
		checker.WithMetricsFile(cmd.String("metrics-file")),
		checker.WithVersion(version),
	}

	if uri := cmd.String("publish"); uri != "" {
		w, err := serializer.NewConfigMapWriterFromURI(uri, serializer.FormatYAML,
			serializer.WithKubeconfig(kubeconfig))
		if err != nil {
			return fmt.Errorf("invalid --publish location: %w", err)
		}
		opts = append(opts, checker.WithPublisher(w))
	}

	runCtx, cancel := context.WithTimeout(ctx, defaults.CheckTimeout)
	defer cancel()

	result, runErr := checker.New(col, st, opts...).Run(runCtx)

	if result != nil && cmd.IsSet("output") {
		if err := writeResult(runCtx, outFormat, cmd.String("output"), result); err != nil {
			runErr = errors.Join(runErr, err)
		}
	}

	if runErr != nil {
		return runErr
	}

	if cmd.Bool("fail-on-mismatch") && !result.OK() {
		return fmt.Errorf("%w: %d field(s) NG", ErrMismatch, result.Mismatches())
	}
	return nil
}

func writeResult(ctx context.Context, format serializer.Format, output string, result *checker.CheckResult) error {
	if output == "-" {
		output = ""
	}

	ser := serializer.NewFileWriterOrStdout(format, output)
	defer func() {
		if closer, ok := ser.(serializer.Closer); ok {
			if err := closer.Close(); err != nil {
				slog.Warn("failed to close serializer", "error", err)
			}
		}
	}()

	if err := ser.Serialize(ctx, result); err != nil {
		return fmt.Errorf("failed to serialize check result: %w", err)
	}
	return nil
}
