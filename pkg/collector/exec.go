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
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	apperrors "github.com/NVIDIA/nvidia-checker/pkg/errors"
	utilexec "k8s.io/utils/exec"
)

// command is one external program invocation.
type command struct {
	name string
	args []string
}

func (c command) String() string {
	return strings.TrimSpace(c.name + " " + strings.Join(c.args, " "))
}

// run executes cmd under its own timeout derived from ctx and returns stdout.
// With allowMissing set, failures of the command itself are logged and
// reported as empty output. Cancellation of ctx is always returned.
func (c *Collector) run(ctx context.Context, cmd command) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	cmdCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	out, err := c.exec.CommandContext(cmdCtx, cmd.name, cmd.args...).Output()
	slog.Debug("command completed",
		"command", cmd.String(),
		"duration", time.Since(start).String(),
		"output", string(out),
		"error", err)

	if err == nil {
		return string(out), nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return "", ctxErr
	}

	return c.fail(cmdCtx, cmd, err)
}

// lookPath resolves name on PATH, then tries each fallback location.
func (c *Collector) lookPath(name string, fallbacks ...string) (string, error) {
	path, err := c.exec.LookPath(name)
	if err == nil {
		return path, nil
	}
	for _, fb := range fallbacks {
		if p, fbErr := c.exec.LookPath(fb); fbErr == nil {
			slog.Debug("resolved executable from fallback location", "name", name, "path", p)
			return p, nil
		}
	}
	return "", err
}

// fail converts a command failure into a coded error, or into empty output
// when allowMissing is set.
func (c *Collector) fail(cmdCtx context.Context, cmd command, err error) (string, error) {
	cmdErr := c.commandError(cmdCtx, cmd, err)
	if c.allowMissing {
		slog.Warn("command unavailable, treating output as empty",
			"command", cmd.String(),
			"code", apperrors.CodeOf(cmdErr),
			"error", err)
		return "", nil
	}
	return "", cmdErr
}

func (c *Collector) commandError(cmdCtx context.Context, cmd command, err error) error {
	errCtx := map[string]any{"command": cmd.String()}

	if errors.Is(cmdCtx.Err(), context.DeadlineExceeded) {
		errCtx["timeout"] = c.timeout.String()
		return apperrors.WrapWithContext(apperrors.ErrCodeTimeout,
			fmt.Sprintf("command %q timed out", cmd), err, errCtx)
	}

	var exitErr utilexec.ExitError
	switch {
	case errors.Is(err, utilexec.ErrExecutableNotFound):
		errCtx["reason"] = "not found"
	case errors.As(err, &exitErr):
		errCtx["reason"] = "exit status"
		errCtx["exit_code"] = exitErr.ExitStatus()
	default:
		errCtx["reason"] = "start failed"
	}
	return apperrors.WrapWithContext(apperrors.ErrCodeCommandFailed,
		fmt.Sprintf("command %q failed", cmd), err, errCtx)
}
