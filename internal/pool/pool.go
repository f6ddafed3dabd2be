// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package pool provides typed object pools for the encode paths of the stores
// and the push notification sender.
package pool

import (
	"bytes"
	"sync"
)

// Pool is a strongly-typed wrapper around [sync.Pool].
type Pool[T any] struct {
	p sync.Pool
}

// Resetter is implemented by pooled values that must be cleared before reuse.
type Resetter interface {
	Reset()
}

// New returns a new [Pool] that uses fn to construct values when the pool is empty.
func New[T any](fn func() T) *Pool[T] {
	return &Pool[T]{
		p: sync.Pool{
			New: func() any {
				return fn()
			},
		},
	}
}

// Get takes a value from the pool.
func (p *Pool[T]) Get() T {
	return p.p.Get().(T)
}

// Put resets x when possible and returns it to the pool.
func (p *Pool[T]) Put(x T) {
	if r, ok := any(x).(Resetter); ok {
		r.Reset()
	}
	p.p.Put(x)
}

// Bytes pools the buffers used to encode JSON columns and webhook bodies.
var Bytes = New(func() *bytes.Buffer {
	return &bytes.Buffer{}
})
