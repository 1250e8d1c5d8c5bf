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

// Package client builds the Kubernetes client used for ConfigMap snapshot
// targets (cm://namespace/name) and for publishing snapshots.
//
// Configuration discovery order:
//  1. explicit kubeconfig path (--kubeconfig)
//  2. KUBECONFIG environment variable
//  3. ~/.kube/config, when present
//  4. in-cluster service account
//
// The auto-discovered client is built once and cached:
//
//	cs, _, err := client.ForKubeconfig("")
//	if err != nil {
//		return fmt.Errorf("failed to get kubernetes client: %w", err)
//	}
//	cm, err := cs.CoreV1().ConfigMaps("gpu-nodes").Get(ctx, "baseline", metav1.GetOptions{})
//
// Tests use k8s.io/client-go/kubernetes/fake, which satisfies Interface.
package client
