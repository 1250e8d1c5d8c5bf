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

package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	apperrors "github.com/NVIDIA/nvidia-checker/pkg/errors"
	"github.com/NVIDIA/nvidia-checker/pkg/serializer"
	"github.com/NVIDIA/nvidia-checker/pkg/snapshot"
	"github.com/google/renameio/v2"
	"k8s.io/client-go/util/homedir"
)

const (
	// AppDir is the directory under the data home holding the record.
	AppDir = "nvidia-checker"

	// RecordName is the default record file name.
	RecordName = "latest.yaml"

	// LegacyRecordName is the record file name used by earlier releases.
	LegacyRecordName = "latest.toml"

	// EnvXDGDataHome overrides the data home directory.
	EnvXDGDataHome = "XDG_DATA_HOME"

	dirMode  fs.FileMode = 0o755
	fileMode fs.FileMode = 0o644
)

// ErrNoSnapshot is returned, wrapped in a NOT_FOUND error, when no record
// has been stored yet.
var ErrNoSnapshot = errors.New("no stored snapshot")

// Store reads and writes the latest snapshot record at a fixed path.
type Store struct {
	path       string
	kubeconfig string
}

// Option configures a Store.
type Option func(*Store)

// WithKubeconfig sets the kubeconfig used for cm:// targets.
func WithKubeconfig(path string) Option {
	return func(s *Store) {
		s.kubeconfig = path
	}
}

// New returns a Store for the record at path.
func New(path string, opts ...Option) *Store {
	s := &Store{path: path}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// DefaultPath returns the default record location.
func DefaultPath() (string, error) {
	if dataHome := os.Getenv(EnvXDGDataHome); filepath.IsAbs(dataHome) {
		return filepath.Join(dataHome, AppDir, RecordName), nil
	}
	home := homedir.HomeDir()
	if home == "" {
		return "", apperrors.New(apperrors.ErrCodeInvalidRequest,
			"cannot determine home directory; set --store or "+EnvXDGDataHome)
	}
	return filepath.Join(home, ".local", "share", AppDir, RecordName), nil
}

// Path returns the record location.
func (s *Store) Path() string {
	return s.path
}

// Load reads the stored record. A missing record yields a NOT_FOUND error
// wrapping ErrNoSnapshot; an unreadable or malformed one yields
// DESERIALIZATION_FAILED.
func (s *Store) Load(ctx context.Context) (snapshot.Snapshot, error) {
	snap, err := readRecord(ctx, s.path, "")
	if err == nil || !errors.Is(err, ErrNoSnapshot) {
		return snap, err
	}

	if legacy, ok := s.legacyPath(); ok {
		slog.Info("reading legacy snapshot record", "path", legacy)
		return readRecord(ctx, legacy, "")
	}
	return snapshot.Snapshot{}, err
}

func (s *Store) legacyPath() (string, bool) {
	if filepath.Base(s.path) != RecordName {
		return "", false
	}
	p := filepath.Join(filepath.Dir(s.path), LegacyRecordName)
	if _, err := os.Stat(p); err != nil {
		return "", false
	}
	return p, true
}

// LoadTarget reads a target snapshot from a local path, an http(s) URL or
// a cm://namespace/name ConfigMap.
func (s *Store) LoadTarget(ctx context.Context, location string) (snapshot.Snapshot, error) {
	if location == "" {
		return snapshot.Snapshot{}, apperrors.New(apperrors.ErrCodeInvalidRequest, "target location is empty")
	}
	return readRecord(ctx, location, s.kubeconfig)
}

func readRecord(ctx context.Context, location, kubeconfig string) (snapshot.Snapshot, error) {
	errCtx := map[string]any{"path": location}

	raw, err := serializer.FromFileWithKubeconfig[map[string]any](ctx, location, kubeconfig)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return snapshot.Snapshot{}, apperrors.WrapWithContext(apperrors.ErrCodeNotFound,
				fmt.Sprintf("no snapshot at %s", location), ErrNoSnapshot, errCtx)
		}
		return snapshot.Snapshot{}, apperrors.WrapWithContext(apperrors.ErrCodeDeserialization,
			fmt.Sprintf("failed to read snapshot from %s", location), err, errCtx)
	}

	snap, err := snapshot.FromMap(*raw)
	if err != nil {
		return snapshot.Snapshot{}, apperrors.WrapWithContext(apperrors.ErrCodeDeserialization,
			fmt.Sprintf("invalid snapshot record at %s", location), err, errCtx)
	}
	return snap, nil
}

// Save writes snap to the store path, replacing any previous record.
// The record is written to a temporary file in the same directory, synced
// and renamed into place. An existing record keeps its permissions.
func (s *Store) Save(ctx context.Context, snap snapshot.Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	errCtx := map[string]any{"path": s.path}
	persistErr := func(msg string, err error) error {
		return apperrors.WrapWithContext(apperrors.ErrCodePersistence, msg, err, errCtx)
	}

	if s.path == "" {
		return persistErr("store path is empty", nil)
	}

	format := serializer.FormatFromPath(s.path)
	if format == serializer.FormatTable {
		format = serializer.FormatYAML
	}
	content, err := serializer.Marshal(format, snap)
	if err != nil {
		return persistErr("failed to encode snapshot", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, dirMode); err != nil {
		return persistErr(fmt.Sprintf("failed to create directory %s", dir), err)
	}

	if err := renameio.WriteFile(s.path, content, fileMode, renameio.IgnoreUmask()); err != nil {
		return persistErr("failed to write snapshot", err)
	}

	slog.Debug("snapshot saved", "path", s.path, "format", format)
	return nil
}
