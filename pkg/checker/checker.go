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
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/NVIDIA/nvidia-checker/pkg/header"
	"github.com/NVIDIA/nvidia-checker/pkg/serializer"
	"github.com/NVIDIA/nvidia-checker/pkg/snapshot"
	"github.com/NVIDIA/nvidia-checker/pkg/store"
	"github.com/google/uuid"
)

// Collector captures the current snapshot.
type Collector interface {
	Collect(ctx context.Context) (snapshot.Snapshot, error)
}

// Store loads reference snapshots and persists the current one.
type Store interface {
	Path() string
	Load(ctx context.Context) (snapshot.Snapshot, error)
	LoadTarget(ctx context.Context, location string) (snapshot.Snapshot, error)
	Save(ctx context.Context, snap snapshot.Snapshot) error
}

// Checker runs one check: capture, compare, persist.
type Checker struct {
	collector Collector
	store     Store

	latest      bool
	target      string
	out         io.Writer
	color       bool
	publisher   serializer.Serializer
	metricsFile string
	version     string
	now         func() time.Time
	newRunID    func() string
}

// Option configures a Checker.
type Option func(*Checker)

// WithLatest enables comparison against the stored previous snapshot.
func WithLatest(enabled bool) Option {
	return func(c *Checker) {
		c.latest = enabled
	}
}

// WithTarget enables comparison against the snapshot at location.
func WithTarget(location string) Option {
	return func(c *Checker) {
		c.target = location
	}
}

// WithOutput sets where the human-readable report is written.
func WithOutput(w io.Writer) Option {
	return func(c *Checker) {
		c.out = w
	}
}

// WithColor enables coloured OK/NG statuses.
func WithColor(enabled bool) Option {
	return func(c *Checker) {
		c.color = enabled
	}
}

// WithPublisher also sends the captured snapshot to s, e.g. a ConfigMapWriter.
func WithPublisher(s serializer.Serializer) Option {
	return func(c *Checker) {
		c.publisher = s
	}
}

// WithMetricsFile writes Prometheus textfile metrics to path after the run.
func WithMetricsFile(path string) Option {
	return func(c *Checker) {
		c.metricsFile = path
	}
}

// WithVersion sets the tool version recorded in the result header.
func WithVersion(v string) Option {
	return func(c *Checker) {
		c.version = v
	}
}

// WithClock sets the time source used for timing the run.
func WithClock(now func() time.Time) Option {
	return func(c *Checker) {
		c.now = now
	}
}

// WithRunID fixes the run identifier.
func WithRunID(id string) Option {
	return func(c *Checker) {
		c.newRunID = func() string { return id }
	}
}

// New creates a Checker. Without options it only captures and saves.
func New(col Collector, st Store, opts ...Option) *Checker {
	c := &Checker{
		collector: col,
		store:     st,
		out:       os.Stdout,
		now:       time.Now,
		newRunID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Run captures the current snapshot, compares it with the requested
// references and saves it. The snapshot is saved even when a reference
// could not be loaded; all such errors are joined and returned together
// with the result. A capture failure returns no result and saves nothing.
func (c *Checker) Run(ctx context.Context) (*CheckResult, error) {
	runID := c.newRunID()
	log := slog.With("run_id", runID)
	log.Info("starting check", "latest", c.latest, "target", c.target, "store", c.store.Path())

	p := newPrinter(c.out, c.color)
	var m *metrics
	if c.metricsFile != "" {
		m = newMetrics()
	}

	start := c.now()
	current, err := c.collector.Collect(ctx)
	if err != nil {
		log.Error("failed to capture environment", "error", err)
		return nil, fmt.Errorf("failed to capture environment: %w", err)
	}
	took := c.now().Sub(start)
	log.Debug("environment captured", "duration", took.String())
	m.observeSnapshot(current, took, start)

	result := &CheckResult{RunID: runID, Snapshot: current}
	result.Init(header.KindCheckResult, header.APIVersion, c.version)
	result.Metadata["run-id"] = runID

	p.environment(current)

	var errs []error

	if c.latest {
		cmp, err := c.compareLatest(ctx, current, p)
		if err != nil {
			log.Error("failed to load previous snapshot", "path", c.store.Path(), "error", err)
			errs = append(errs, err)
		}
		result.Comparisons = append(result.Comparisons, cmp)
		m.observeComparison(cmp)
	}

	if c.target != "" {
		cmp, err := c.compareTarget(ctx, current, p)
		if err != nil {
			log.Error("failed to load target snapshot", "target", c.target, "error", err)
			errs = append(errs, err)
		}
		result.Comparisons = append(result.Comparisons, cmp)
		m.observeComparison(cmp)
	}

	if err := c.store.Save(ctx, current); err != nil {
		log.Error("failed to save snapshot", "path", c.store.Path(), "error", err)
		errs = append(errs, err)
	} else {
		log.Info("snapshot saved", "path", c.store.Path())
	}

	if c.publisher != nil {
		if err := c.publisher.Serialize(ctx, current); err != nil {
			log.Error("failed to publish snapshot", "error", err)
			errs = append(errs, fmt.Errorf("failed to publish snapshot: %w", err))
		}
	}

	if c.metricsFile != "" {
		if err := m.write(c.metricsFile); err != nil {
			log.Error("failed to write metrics", "path", c.metricsFile, "error", err)
			errs = append(errs, err)
		}
	}

	log.Info("check complete",
		"comparisons", len(result.Comparisons),
		"mismatches", result.Mismatches(),
		"errors", len(errs))

	return result, errors.Join(errs...)
}

func (c *Checker) compareLatest(ctx context.Context, current snapshot.Snapshot, p printer) (Comparison, error) {
	cmp := Comparison{Kind: KindLatest, Source: c.store.Path()}

	prev, err := c.store.Load(ctx)
	switch {
	case errors.Is(err, store.ErrNoSnapshot):
		cmp.FirstRun = true
		p.firstRun(c.store.Path())
		return cmp, nil
	case err != nil:
		cmp.Error = err.Error()
		return cmp, err
	}

	cmp.CheckedAt = prev.CheckedTime
	cmp.Results = snapshot.Compare(current, prev).Results
	p.previous(prev.CheckedTime)
	p.results(cmp.Results)
	return cmp, nil
}

func (c *Checker) compareTarget(ctx context.Context, current snapshot.Snapshot, p printer) (Comparison, error) {
	cmp := Comparison{Kind: KindTarget, Source: c.target}

	target, err := c.store.LoadTarget(ctx, c.target)
	if err != nil {
		cmp.Error = err.Error()
		return cmp, err
	}

	cmp.CheckedAt = target.CheckedTime
	cmp.Results = snapshot.Compare(current, target).Results
	p.target(c.target)
	p.results(cmp.Results)
	return cmp, nil
}
