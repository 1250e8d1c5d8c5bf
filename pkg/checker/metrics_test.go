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
	"strings"
	"testing"
	"time"

	"github.com/NVIDIA/nvidia-checker/pkg/snapshot"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_ObserveSnapshot(t *testing.T) {
	m := newMetrics()
	at := time.Unix(1700000000, 0)
	m.observeSnapshot(current, 1500*time.Millisecond, at)

	assert.InDelta(t, 1.5, testutil.ToFloat64(m.captureDuration), 1e-9)
	assert.InDelta(t, 1700000000, testutil.ToFloat64(m.lastRun), 1e-9)
	assert.Equal(t, 1, testutil.CollectAndCount(m.snapshotInfo))
	assert.InDelta(t, 1, testutil.ToFloat64(m.snapshotInfo.WithLabelValues(
		current.OS, current.Kernel, current.NvidiaDriver, current.CUDA, current.CuDNN, current.TensorRT)), 1e-9)
}

func TestMetrics_ObserveComparison(t *testing.T) {
	m := newMetrics()
	m.observeComparison(Comparison{Kind: KindTarget, Results: snapshot.Compare(current, previous).Results})

	expected := `
# HELP nvidia_checker_field_match 1 when the field matches the reference snapshot, 0 otherwise
# TYPE nvidia_checker_field_match gauge
nvidia_checker_field_match{comparison="target",field="cuda"} 1
nvidia_checker_field_match{comparison="target",field="cudnn"} 1
nvidia_checker_field_match{comparison="target",field="kernel"} 0
nvidia_checker_field_match{comparison="target",field="nvidia_driver"} 1
nvidia_checker_field_match{comparison="target",field="os"} 1
nvidia_checker_field_match{comparison="target",field="tensorrt"} 1
`
	assert.NoError(t, testutil.CollectAndCompare(m.fieldMatch, strings.NewReader(expected)))
}

func TestMetrics_FirstRunHasNoMatches(t *testing.T) {
	m := newMetrics()
	m.observeComparison(Comparison{Kind: KindLatest, FirstRun: true})
	assert.Equal(t, 0, testutil.CollectAndCount(m.fieldMatch))
}

func TestMetrics_InvalidLabelValue(t *testing.T) {
	m := newMetrics()
	s := current
	s.CUDA = "cuda_12.3\xfe"

	assert.NotPanics(t, func() { m.observeSnapshot(s, time.Second, time.Unix(0, 0)) })
	assert.InDelta(t, 1, testutil.ToFloat64(m.snapshotInfo.WithLabelValues(
		s.OS, s.Kernel, s.NvidiaDriver, "cuda_12.3\uFFFD", s.CuDNN, s.TensorRT)), 1e-9)
}

func TestMetrics_NilRecordsNothing(t *testing.T) {
	var m *metrics
	assert.NotPanics(t, func() {
		m.observeSnapshot(current, time.Second, time.Unix(0, 0))
		m.observeComparison(Comparison{Kind: KindLatest, Results: snapshot.Compare(current, previous).Results})
	})
	assert.NoError(t, m.write("/nonexistent/dir/metrics.prom"))
}
