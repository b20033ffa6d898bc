// Copyright 2026 Patrick J. Scruggs
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

package logcore

import (
	"os"
	"runtime"
	"strings"
	"sync"
)

var (
	envSnapshot     EnvironmentInfo
	envSnapshotOnce sync.Once
)

// SnapshotEnvironment returns the execution-environment metadata stamped
// onto every entry. Detection inspects well-known environment variables to
// identify managed platforms (Cloud Run, Cloud Functions, Kubernetes); the
// result is computed once per process and reused, so the logger never
// re-reads live environment state mid-lifetime.
func SnapshotEnvironment() EnvironmentInfo {
	envSnapshotOnce.Do(func() {
		envSnapshot = detectEnvironment(os.Getenv)
	})
	return envSnapshot
}

// detectEnvironment builds the snapshot using the supplied variable lookup.
func detectEnvironment(getenv func(string) string) EnvironmentInfo {
	info := EnvironmentInfo{
		OS:             runtime.GOOS,
		Platform:       runtime.GOOS,
		Architecture:   runtime.GOARCH,
		RuntimeVersion: runtime.Version(),
	}

	trimmed := func(key string) string {
		return strings.TrimSpace(getenv(key))
	}

	if detectCloudFunctions(&info, trimmed) {
		return info
	}
	if detectCloudRun(&info, trimmed) {
		return info
	}
	detectKubernetes(&info, trimmed)
	return info
}

// detectCloudFunctions populates labels when running on Cloud Functions.
// Gen 2 functions share K_SERVICE with Cloud Run, so FUNCTION_TARGET is the
// distinguishing variable and must be checked first.
func detectCloudFunctions(info *EnvironmentInfo, trimmed func(string) string) bool {
	service := trimmed("K_SERVICE")
	target := trimmed("FUNCTION_TARGET")
	if service == "" || target == "" {
		return false
	}

	info.Platform = "cloud_functions"
	labels := map[string]string{
		"cloud_function.name":   service,
		"cloud_function.target": target,
	}
	if revision := trimmed("K_REVISION"); revision != "" {
		labels["cloud_function.revision"] = revision
	}
	info.Labels = labels
	return true
}

// detectCloudRun populates labels when running on Cloud Run services.
func detectCloudRun(info *EnvironmentInfo, trimmed func(string) string) bool {
	service := trimmed("K_SERVICE")
	revision := trimmed("K_REVISION")
	if service == "" || revision == "" {
		return false
	}

	info.Platform = "cloud_run"
	labels := map[string]string{
		"cloud_run.service":  service,
		"cloud_run.revision": revision,
	}
	if config := trimmed("K_CONFIGURATION"); config != "" {
		labels["cloud_run.configuration"] = config
	}
	info.Labels = labels
	return true
}

// detectKubernetes populates labels when running inside a Kubernetes pod.
func detectKubernetes(info *EnvironmentInfo, trimmed func(string) string) bool {
	if trimmed("KUBERNETES_SERVICE_HOST") == "" {
		return false
	}

	info.Platform = "kubernetes"
	labels := map[string]string{}
	if ns := firstNonEmpty(trimmed("NAMESPACE_NAME"), trimmed("NAMESPACE")); ns != "" {
		labels["k8s.namespace.name"] = ns
	}
	if pod := firstNonEmpty(trimmed("POD_NAME"), trimmed("HOSTNAME")); pod != "" {
		labels["k8s.pod.name"] = pod
	}
	if len(labels) > 0 {
		info.Labels = labels
	}
	return true
}

// firstNonEmpty returns the first non-empty string from values.
func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
