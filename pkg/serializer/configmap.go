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

package serializer

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/NVIDIA/nvidia-checker/pkg/defaults"
	"github.com/NVIDIA/nvidia-checker/pkg/header"
	"github.com/NVIDIA/nvidia-checker/pkg/k8s/client"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	accorev1 "k8s.io/client-go/applyconfigurations/core/v1"
	"k8s.io/client-go/rest"
)

const (
	// ConfigMapURIScheme prefixes ConfigMap locations: cm://namespace/name.
	ConfigMapURIScheme = "cm://"

	// ConfigMapFieldManager is the server-side apply field manager.
	ConfigMapFieldManager = "nvidia-checker"

	labelName      = "app.kubernetes.io/name"
	labelComponent = "app.kubernetes.io/component"
	labelVersion   = "app.kubernetes.io/version"
)

// ConfigMapWriter writes serialized documents to a Kubernetes ConfigMap,
// creating or updating it with server-side apply.
type ConfigMapWriter struct {
	namespace  string
	name       string
	format     Format
	kubeconfig string
	client     client.Interface
}

// ConfigMapWriterOption configures a ConfigMapWriter.
type ConfigMapWriterOption func(*ConfigMapWriter)

// WithKubeconfig sets the kubeconfig used to build the client.
func WithKubeconfig(path string) ConfigMapWriterOption {
	return func(w *ConfigMapWriter) {
		w.kubeconfig = path
	}
}

// WithKubeClient injects the client, skipping kubeconfig discovery.
func WithKubeClient(c client.Interface) ConfigMapWriterOption {
	return func(w *ConfigMapWriter) {
		w.client = c
	}
}

// NewConfigMapWriter creates a writer for namespace/name. Unknown and table
// formats fall back to YAML so the ConfigMap stays readable by FromConfigMap.
func NewConfigMapWriter(namespace, name string, format Format, opts ...ConfigMapWriterOption) *ConfigMapWriter {
	if format.IsUnknown() || format == FormatTable {
		slog.Warn("unsupported ConfigMap format, defaulting to YAML", "format", format)
		format = FormatYAML
	}
	w := &ConfigMapWriter{
		namespace: namespace,
		name:      name,
		format:    format,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// NewConfigMapWriterFromURI parses cm://namespace/name and creates a writer.
func NewConfigMapWriterFromURI(uri string, format Format, opts ...ConfigMapWriterOption) (*ConfigMapWriter, error) {
	namespace, name, err := parseConfigMapURI(uri)
	if err != nil {
		return nil, err
	}
	return NewConfigMapWriter(namespace, name, format, opts...), nil
}

// Serialize writes v to the ConfigMap. Data keys:
//   - snapshot.<ext>: the serialized document
//   - format: the format used
//   - timestamp: RFC 3339 time of the write, or of the document header when present
func (w *ConfigMapWriter) Serialize(ctx context.Context, v any) error {
	writeCtx, cancel := context.WithTimeout(ctx, defaults.ConfigMapWriteTimeout)
	defer cancel()

	cs := w.client
	if cs == nil {
		var (
			config *rest.Config
			err    error
		)
		cs, config, err = client.ForKubeconfig(w.kubeconfig)
		if err != nil {
			return fmt.Errorf("failed to get kubernetes client: %w", err)
		}
		slog.Debug("configmap operation",
			"namespace", w.namespace,
			"name", w.name,
			"auth_method", authMethod(config))
	}

	content, err := Marshal(w.format, v)
	if err != nil {
		return fmt.Errorf("failed to serialize document: %w", err)
	}

	kind, version, timestamp := documentInfo(v)

	configMap := accorev1.ConfigMap(w.name, w.namespace).
		WithLabels(map[string]string{
			labelName:      "nvidia-checker",
			labelComponent: strings.ToLower(kind),
			labelVersion:   version,
		}).
		WithData(map[string]string{
			ConfigMapDataKeyPrefix + w.format.Extension(): string(content),
			"format":    string(w.format),
			"timestamp": timestamp,
		})

	slog.Info("applying ConfigMap",
		"namespace", w.namespace,
		"name", w.name,
		"format", w.format)

	_, err = cs.CoreV1().ConfigMaps(w.namespace).Apply(
		writeCtx,
		configMap,
		metav1.ApplyOptions{
			FieldManager: ConfigMapFieldManager,
			Force:        true,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to apply ConfigMap %s/%s: %w", w.namespace, w.name, err)
	}
	return nil
}

// Close is a no-op; it satisfies Closer.
func (w *ConfigMapWriter) Close() error {
	return nil
}

func authMethod(config *rest.Config) string {
	switch {
	case config == nil:
		return "unknown"
	case config.AuthProvider != nil:
		return config.AuthProvider.Name
	case config.ExecProvider != nil:
		return "exec"
	case config.BearerToken != "" || config.BearerTokenFile != "":
		return "bearer-token"
	case config.CertData != nil || config.CertFile != "":
		return "cert"
	default:
		return "default"
	}
}

// documentInfo extracts kind, version and timestamp from documents carrying
// a header, with defaults for plain documents.
func documentInfo(v any) (kind, version, timestamp string) {
	if h, ok := v.(interface {
		GetKind() header.Kind
		GetMetadata() map[string]string
	}); ok {
		if k := h.GetKind(); k.IsValid() {
			kind = k.String()
		}
		md := h.GetMetadata()
		version = md["version"]
		timestamp = md["timestamp"]
	}
	if kind == "" {
		kind = header.KindSnapshot.String()
	}
	if version == "" {
		version = "unknown"
	}
	if timestamp == "" {
		timestamp = time.Now().UTC().Format(time.RFC3339)
	}
	return kind, version, timestamp
}

// parseConfigMapURI splits cm://namespace/name into its components.
func parseConfigMapURI(uri string) (namespace, name string, err error) {
	if !strings.HasPrefix(uri, ConfigMapURIScheme) {
		return "", "", fmt.Errorf("invalid ConfigMap URI: must start with %s", ConfigMapURIScheme)
	}

	namespace, name, ok := strings.Cut(strings.TrimPrefix(uri, ConfigMapURIScheme), "/")
	if !ok {
		return "", "", fmt.Errorf("invalid ConfigMap URI format: expected %snamespace/name, got %s", ConfigMapURIScheme, uri)
	}

	namespace = strings.TrimSpace(namespace)
	name = strings.TrimSpace(name)

	if namespace == "" {
		return "", "", fmt.Errorf("invalid ConfigMap URI: namespace cannot be empty")
	}
	if name == "" {
		return "", "", fmt.Errorf("invalid ConfigMap URI: name cannot be empty")
	}
	if strings.Contains(name, "/") {
		return "", "", fmt.Errorf("invalid ConfigMap URI: name cannot contain '/'")
	}
	return namespace, name, nil
}
