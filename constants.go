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

// EventKind is the discriminator tag carried in the "kind" member of every wire event.
type EventKind string

// Event kinds of the A2A wire taxonomy.
const (
	// EventKindTask tags a full Task snapshot.
	EventKindTask EventKind = "task"

	// EventKindStatusUpdate tags a TaskStatusUpdateEvent.
	EventKindStatusUpdate EventKind = "status-update"

	// EventKindArtifactUpdate tags a TaskArtifactUpdateEvent.
	EventKindArtifactUpdate EventKind = "artifact-update"

	// EventKindMessage tags a Message.
	EventKindMessage EventKind = "message"
)

// PartKind is the discriminator tag carried in the "kind" member of every part.
type PartKind string

// Part kinds.
const (
	PartKindText PartKind = "text"
	PartKindData PartKind = "data"
	PartKindFile PartKind = "file"
)

// NotificationTokenHeader is the HTTP header carrying the push notification token of a
// PushNotificationConfig.
const NotificationTokenHeader = "X-A2A-Notification-Token"
