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
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/NVIDIA/nvidia-checker/pkg/snapshot"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// metrics holds the gauges exported to a node_exporter textfile.
// Each run owns its registry so runs never share state. A nil *metrics
// records nothing.
type metrics struct {
	registry *prometheus.Registry

	snapshotInfo    *prometheus.GaugeVec
	fieldMatch      *prometheus.GaugeVec
	captureDuration prometheus.Gauge
	lastRun         prometheus.Gauge
}

func newMetrics() *metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	infoLabels := make([]string, 0, len(snapshot.VersionFields()))
	for _, f := range snapshot.VersionFields() {
		infoLabels = append(infoLabels, f.String())
	}

	return &metrics{
		registry: reg,
		snapshotInfo: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "nvidia_checker_snapshot_info",
				Help: "Versions captured in the current snapshot; always 1",
			},
			infoLabels,
		),
		fieldMatch: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "nvidia_checker_field_match",
				Help: "1 when the field matches the reference snapshot, 0 otherwise",
			},
			[]string{"comparison", "field"}, // latest or target; snapshot field key
		),
		captureDuration: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "nvidia_checker_capture_duration_seconds",
				Help: "Time taken to capture the current snapshot",
			},
		),
		lastRun: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "nvidia_checker_last_run_timestamp_seconds",
				Help: "Unix time of the last run",
			},
		),
	}
}

func (m *metrics) observeSnapshot(s snapshot.Snapshot, took time.Duration, at time.Time) {
	if m == nil {
		return
	}
	values := make([]string, 0, len(snapshot.VersionFields()))
	for _, f := range snapshot.VersionFields() {
		values = append(values, labelValue(s.Get(f)))
	}
	if g, err := m.snapshotInfo.GetMetricWithLabelValues(values...); err != nil {
		slog.Warn("skipping snapshot info metric", "error", err)
	} else {
		g.Set(1)
	}
	m.captureDuration.Set(took.Seconds())
	m.lastRun.Set(float64(at.Unix()))
}

func (m *metrics) observeComparison(c Comparison) {
	if m == nil {
		return
	}
	for _, r := range c.Results {
		v := 0.0
		if r.Status == snapshot.StatusOK {
			v = 1
		}
		g, err := m.fieldMatch.GetMetricWithLabelValues(string(c.Kind), r.Field.String())
		if err != nil {
			slog.Warn("skipping field match metric", "field", r.Field.String(), "error", err)
			continue
		}
		g.Set(v)
	}
}

// labelValue replaces invalid UTF-8, which Prometheus rejects in label values.
func labelValue(v string) string {
	return strings.ToValidUTF8(v, "\uFFFD")
}

// write exports the registry to path in the text exposition format.
func (m *metrics) write(path string) error {
	if m == nil {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create metrics directory: %w", err)
	}
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("failed to write metrics to %s: %w", path, err)
	}
	return nil
}
