// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package task provides task management for the A2A server.
//
// The central type is [TaskManager], the aggregate manager of a single task. It
// folds task snapshots, status updates and artifact updates into the stored
// task and persists the result through a [TaskStore].
//
// The package also provides:
//
//   - [InMemoryTaskStore] and [DatabaseTaskStore], implementations of [TaskStore]
//   - [PushNotificationConfigStore] with in-memory and database implementations
//   - [HTTPPushNotificationSender], which posts the task to registered webhooks
//   - [PushNotificationVerifier], which checks signed notifications on the receiving side
//   - [TaskUpdater], used by agents to publish events for one task
//   - [ResultAggregator], which drives a [TaskManager] from an event stream
//
// A TaskManager holds no lock. Callers must not drive one task id through more
// than one manager concurrently.
package task
