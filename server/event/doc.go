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

// Package event provides the ordered, closable delivery channel for task events.
//
// # Architecture
//
// The package consists of three main components:
//
//   - EventQueue: A bounded queue that buffers events with support for creating
//     child queues (tap mechanism) that receive copies of all published events.
//
//   - EventConsumer: Drains an EventQueue as a channel and stops after the
//     final event of a stream.
//
//   - InMemoryQueueManager: Maps task IDs to their queues so that late
//     subscribers can tap an ongoing stream.
//
// # Usage
//
//	queue, err := event.NewEventQueue(100)
//	if err != nil {
//	    return err
//	}
//	defer queue.Close()
//
//	// Producer
//	go func() {
//	    ev := a2a.NewTaskStatusUpdateEvent(taskID, contextID, status, true)
//	    if err := queue.Publish(ctx, ev); err != nil {
//	        slog.Error("publish failed", "error", err)
//	    }
//	}()
//
//	// Consumer
//	for ev := range event.NewEventConsumer(queue).ConsumeAll(ctx) {
//	    switch e := ev.(type) {
//	    case *a2a.TaskStatusUpdateEvent:
//	        // Handle status update
//	    }
//	}
//
// # Final Events
//
// A stream ends with its final event:
//   - TaskStatusUpdateEvent with Final=true
//   - Any Message
//   - Task in a terminal, input-required or unknown state
//
// When a final event is observed, the consumer closes the queue and stops consuming.
package event
