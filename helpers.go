// Copyright 2025 The Go A2A Authors.
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
//
// SPDX-License-Identifier: Apache-2.0

package a2a

import (
	"maps"
	"slices"
)

// ApplyStatusUpdate replaces the status of task with the status carried by event and
// merges the event metadata into the task metadata.
//
// The history of task is left untouched.
func ApplyStatusUpdate(task *Task, event *TaskStatusUpdateEvent) {
	task.Status = event.Status.Clone()
	if event.Metadata != nil {
		task.Metadata = MergeMetadata(task.Metadata, event.Metadata)
	}
}

// AppendArtifactToTask applies the artifact carried by event to task.
//
// Without the append flag, the artifact with the same ID is replaced in place, or the
// artifact is added at the end when no such artifact exists. With the append flag, the
// parts of the event artifact are added to the existing artifact and its metadata is
// merged; an append for an unknown artifact adds it at the end.
func AppendArtifactToTask(task *Task, event *TaskArtifactUpdateEvent) {
	if event.Artifact == nil {
		return
	}
	incoming := event.Artifact.Clone()

	idx := slices.IndexFunc(task.Artifacts, func(a *Artifact) bool {
		return a != nil && a.ArtifactID == incoming.ArtifactID
	})

	switch {
	case idx == -1:
		task.Artifacts = append(task.Artifacts, incoming)
	case !event.Append:
		task.Artifacts[idx] = incoming
	default:
		existing := task.Artifacts[idx]
		existing.Parts = append(existing.Parts, incoming.Parts...)
		if incoming.Metadata != nil {
			existing.Metadata = MergeMetadata(existing.Metadata, incoming.Metadata)
		}
	}
}

// MergeMetadata returns the union of dst and src, keys of src overriding keys of dst.
// dst is modified in place unless it is nil, in which case a new map is allocated.
func MergeMetadata(dst, src map[string]any) map[string]any {
	if dst == nil {
		dst = make(map[string]any, len(src))
	}
	for k, v := range src {
		dst[k] = cloneValue(v)
	}
	return dst
}

// CloneMetadata returns a deep copy of m, descending into nested maps and slices.
func CloneMetadata(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}

	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch v := v.(type) {
	case map[string]any:
		return CloneMetadata(v)
	case []any:
		out := make([]any, len(v))
		for i, e := range v {
			out[i] = cloneValue(e)
		}
		return out
	case map[string]string:
		return maps.Clone(v)
	case []string:
		return slices.Clone(v)
	default:
		return v
	}
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	return slices.Clone(s)
}
