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

import (
	"fmt"
	"time"

	apperrors "github.com/NVIDIA/nvidia-checker/pkg/errors"
)

// TimeLayout is the format of Snapshot.CheckedTime, in local time.
const TimeLayout = "2006.01.02 15:04:05"

// Field names a snapshot key as it appears in persisted records.
type Field string

const (
	FieldCheckedTime  Field = "checked_time"
	FieldOS           Field = "os"
	FieldKernel       Field = "kernel"
	FieldNvidiaDriver Field = "nvidia_driver"
	FieldCUDA         Field = "cuda"
	FieldCuDNN        Field = "cudnn"
	FieldTensorRT     Field = "tensorrt"
)

// String returns the record key.
func (f Field) String() string {
	return string(f)
}

// Label returns the display name used in check output.
func (f Field) Label() string {
	switch f {
	case FieldNvidiaDriver:
		return "nvidia driver"
	case FieldCheckedTime:
		return "checked time"
	default:
		return string(f)
	}
}

// VersionFields returns the compared fields in report order.
func VersionFields() []Field {
	return []Field{
		FieldOS,
		FieldKernel,
		FieldNvidiaDriver,
		FieldCUDA,
		FieldCuDNN,
		FieldTensorRT,
	}
}

// Fields returns every record key, capture time first.
func Fields() []Field {
	return append([]Field{FieldCheckedTime}, VersionFields()...)
}

// Snapshot is one captured or loaded record of the GPU software stack.
// It is a value type; copies never share state.
type Snapshot struct {
	CheckedTime  string `json:"checked_time" yaml:"checked_time" toml:"checked_time"`
	OS           string `json:"os" yaml:"os" toml:"os"`
	Kernel       string `json:"kernel" yaml:"kernel" toml:"kernel"`
	NvidiaDriver string `json:"nvidia_driver" yaml:"nvidia_driver" toml:"nvidia_driver"`
	CUDA         string `json:"cuda" yaml:"cuda" toml:"cuda"`
	CuDNN        string `json:"cudnn" yaml:"cudnn" toml:"cudnn"`
	TensorRT     string `json:"tensorrt" yaml:"tensorrt" toml:"tensorrt"`
}

// FormatTime renders t in TimeLayout using the local time zone.
func FormatTime(t time.Time) string {
	return t.Local().Format(TimeLayout)
}

// Get returns the value of field f, or "" for an unknown field.
func (s Snapshot) Get(f Field) string {
	switch f {
	case FieldCheckedTime:
		return s.CheckedTime
	case FieldOS:
		return s.OS
	case FieldKernel:
		return s.Kernel
	case FieldNvidiaDriver:
		return s.NvidiaDriver
	case FieldCUDA:
		return s.CUDA
	case FieldCuDNN:
		return s.CuDNN
	case FieldTensorRT:
		return s.TensorRT
	default:
		return ""
	}
}

// FromMap builds a Snapshot from a decoded record. Every field must be
// present and hold a string; a null value is read as the empty string.
// Keys outside the snapshot are ignored.
func FromMap(raw map[string]any) (Snapshot, error) {
	if raw == nil {
		return Snapshot{}, apperrors.New(apperrors.ErrCodeDeserialization, "snapshot record is empty")
	}

	values := make(map[Field]string, len(Fields()))
	for _, f := range Fields() {
		v, ok := raw[f.String()]
		if !ok {
			return Snapshot{}, apperrors.NewWithContext(apperrors.ErrCodeDeserialization,
				fmt.Sprintf("snapshot record is missing field %q", f),
				map[string]any{"field": f.String()})
		}

		switch tv := v.(type) {
		case nil:
			values[f] = ""
		case string:
			values[f] = tv
		default:
			return Snapshot{}, apperrors.NewWithContext(apperrors.ErrCodeDeserialization,
				fmt.Sprintf("snapshot field %q must be a string, got %T", f, v),
				map[string]any{"field": f.String()})
		}
	}

	return Snapshot{
		CheckedTime:  values[FieldCheckedTime],
		OS:           values[FieldOS],
		Kernel:       values[FieldKernel],
		NvidiaDriver: values[FieldNvidiaDriver],
		CUDA:         values[FieldCUDA],
		CuDNN:        values[FieldCuDNN],
		TensorRT:     values[FieldTensorRT],
	}, nil
}
