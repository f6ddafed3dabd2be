// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package tasktest provides test doubles and fixture factories for code built
// on the task package.
//
// The doubles satisfy the task and event interfaces structurally, so the
// package can be imported from the task package's own tests.
package tasktest
