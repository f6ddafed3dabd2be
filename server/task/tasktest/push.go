// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package tasktest

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"slices"
	"sync"

	a2a "github.com/go-a2a/a2a-task"
)

// StubPushNotificationConfigStore returns canned push notification configs.
//
// Unlike the real stores it never assigns IDs and appends on every SetInfo
// call with an empty config ID.
type StubPushNotificationConfigStore struct {
	mu      sync.Mutex
	configs map[string][]*a2a.PushNotificationConfig

	// GetErr, when set, is returned by GetInfo.
	GetErr error
}

// NewStubPushNotificationConfigStore returns an empty stub store.
func NewStubPushNotificationConfigStore() *StubPushNotificationConfigStore {
	return &StubPushNotificationConfigStore{configs: make(map[string][]*a2a.PushNotificationConfig)}
}

// SetInfo stores config for taskID.
func (s *StubPushNotificationConfigStore) SetInfo(ctx context.Context, taskID string, config *a2a.PushNotificationConfig) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	configs := s.configs[taskID]
	if config.ID != "" {
		if i := slices.IndexFunc(configs, func(c *a2a.PushNotificationConfig) bool { return c.ID == config.ID }); i >= 0 {
			configs[i] = config.Clone()
			return nil
		}
	}
	s.configs[taskID] = append(configs, config.Clone())
	return nil
}

// GetInfo returns the configs of taskID.
func (s *StubPushNotificationConfigStore) GetInfo(ctx context.Context, taskID string) ([]*a2a.PushNotificationConfig, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.GetErr != nil {
		return nil, s.GetErr
	}
	out := make([]*a2a.PushNotificationConfig, 0, len(s.configs[taskID]))
	for _, c := range s.configs[taskID] {
		out = append(out, c.Clone())
	}
	return out, nil
}

// DeleteInfo removes configID of taskID, or every config of taskID.
func (s *StubPushNotificationConfigStore) DeleteInfo(ctx context.Context, taskID, configID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if configID == "" {
		delete(s.configs, taskID)
		return nil
	}
	s.configs[taskID] = slices.DeleteFunc(s.configs[taskID], func(c *a2a.PushNotificationConfig) bool {
		return c.ID == configID
	})
	return nil
}

// RecordedRequest is a request seen by FakeHTTPClient, with its body read.
type RecordedRequest struct {
	Method string
	URL    string
	Header http.Header
	Body   []byte
}

// FakeHTTPClient records requests and answers them from a per-URL table.
//
// URLs without a registered response get 200 OK.
type FakeHTTPClient struct {
	mu       sync.Mutex
	requests []RecordedRequest
	statuses map[string]int
	failures map[string]error
}

// NewFakeHTTPClient returns a FakeHTTPClient answering 200 OK.
func NewFakeHTTPClient() *FakeHTTPClient {
	return &FakeHTTPClient{
		statuses: make(map[string]int),
		failures: make(map[string]error),
	}
}

// RespondWith makes requests to url answer with status.
func (c *FakeHTTPClient) RespondWith(url string, status int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.statuses[url] = status
}

// FailWith makes requests to url fail with err.
func (c *FakeHTTPClient) FailWith(url string, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.failures[url] = err
}

// Do records req and returns the configured outcome.
func (c *FakeHTTPClient) Do(req *http.Request) (*http.Response, error) {
	var body []byte
	if req.Body != nil {
		b, err := io.ReadAll(req.Body)
		if err != nil {
			return nil, err
		}
		body = b
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	url := req.URL.String()
	c.requests = append(c.requests, RecordedRequest{
		Method: req.Method,
		URL:    url,
		Header: req.Header.Clone(),
		Body:   body,
	})

	if err, ok := c.failures[url]; ok {
		return nil, err
	}
	status, ok := c.statuses[url]
	if !ok {
		status = http.StatusOK
	}
	return &http.Response{
		StatusCode: status,
		Status:     http.StatusText(status),
		Header:     make(http.Header),
		Body:       io.NopCloser(bytes.NewReader(nil)),
		Request:    req,
	}, nil
}

// Requests returns the recorded requests sorted by URL.
func (c *FakeHTTPClient) Requests() []RecordedRequest {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := slices.Clone(c.requests)
	slices.SortStableFunc(out, func(a, b RecordedRequest) int {
		switch {
		case a.URL < b.URL:
			return -1
		case a.URL > b.URL:
			return 1
		}
		return 0
	})
	return out
}
