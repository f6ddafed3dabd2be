// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package task

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"testing"

	"github.com/go-json-experiment/json"
	"github.com/google/go-cmp/cmp"
	"github.com/lestrrat-go/jwx/v3/jwa"
	"github.com/lestrrat-go/jwx/v3/jwk"
	"github.com/lestrrat-go/jwx/v3/jwt"

	a2a "github.com/go-a2a/a2a-task"
	"github.com/go-a2a/a2a-task/server/task/tasktest"
)

// syncBuffer is a bytes.Buffer safe for concurrent log writes.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func newTestLogger() (*slog.Logger, *syncBuffer) {
	buf := &syncBuffer{}
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug})), buf
}

func TestNewHTTPPushNotificationSender(t *testing.T) {
	t.Parallel()

	hmacKey, err := jwk.Import([]byte("0123456789abcdef0123456789abcdef"))
	if err != nil {
		t.Fatalf("jwk.Import() error = %v", err)
	}

	tests := map[string]struct {
		config  HTTPPushNotificationSenderConfig
		wantErr bool
	}{
		"success: defaults": {
			config: HTTPPushNotificationSenderConfig{ConfigStore: tasktest.NewStubPushNotificationConfigStore()},
		},
		"success: signing key with default algorithm": {
			config: HTTPPushNotificationSenderConfig{
				ConfigStore: tasktest.NewStubPushNotificationConfigStore(),
				SigningKey:  hmacKey,
			},
		},
		"success: signing key with explicit algorithm": {
			config: HTTPPushNotificationSenderConfig{
				ConfigStore:      tasktest.NewStubPushNotificationConfigStore(),
				SigningKey:       hmacKey,
				SigningAlgorithm: "HS512",
			},
		},
		"error: unknown algorithm": {
			config: HTTPPushNotificationSenderConfig{
				ConfigStore:      tasktest.NewStubPushNotificationConfigStore(),
				SigningKey:       hmacKey,
				SigningAlgorithm: "XX999",
			},
			wantErr: true,
		},
		"error: nil config store": {
			config:  HTTPPushNotificationSenderConfig{},
			wantErr: true,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			sender, err := NewHTTPPushNotificationSender(tt.config)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewHTTPPushNotificationSender() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && sender.timeout != DefaultPushNotificationTimeout {
				t.Errorf("timeout = %v, want %v", sender.timeout, DefaultPushNotificationTimeout)
			}
		})
	}
}

func TestHTTPPushNotificationSender_SendNotification(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	task := tasktest.NewTask("task-1", "ctx-1", a2a.TaskStateCompleted)

	t.Run("no configs", func(t *testing.T) {
		t.Parallel()

		client := tasktest.NewFakeHTTPClient()
		sender, err := NewHTTPPushNotificationSender(HTTPPushNotificationSenderConfig{
			Client:      client,
			ConfigStore: tasktest.NewStubPushNotificationConfigStore(),
		})
		if err != nil {
			t.Fatalf("NewHTTPPushNotificationSender() error = %v", err)
		}

		if err := sender.SendNotification(ctx, task); err != nil {
			t.Fatalf("SendNotification() error = %v", err)
		}
		if got := len(client.Requests()); got != 0 {
			t.Errorf("sent %d requests, want 0", got)
		}
	})

	t.Run("posts the task to every endpoint", func(t *testing.T) {
		t.Parallel()

		store := tasktest.NewStubPushNotificationConfigStore()
		_ = store.SetInfo(ctx, task.ID, tasktest.NewPushNotificationConfig("a", "https://a.example.com/hook", "token-a"))
		withAuth := tasktest.NewPushNotificationConfig("b", "https://b.example.com/hook", "")
		withAuth.Authentication = &a2a.PushNotificationAuthenticationInfo{
			Schemes:     []string{"Bearer"},
			Credentials: "credential-b",
		}
		_ = store.SetInfo(ctx, task.ID, withAuth)

		client := tasktest.NewFakeHTTPClient()
		sender, err := NewHTTPPushNotificationSender(HTTPPushNotificationSenderConfig{
			Client:      client,
			ConfigStore: store,
		})
		if err != nil {
			t.Fatalf("NewHTTPPushNotificationSender() error = %v", err)
		}

		if err := sender.SendNotification(ctx, task); err != nil {
			t.Fatalf("SendNotification() error = %v", err)
		}

		reqs := client.Requests()
		if len(reqs) != 2 {
			t.Fatalf("sent %d requests, want 2", len(reqs))
		}
		for _, req := range reqs {
			if req.Method != http.MethodPost {
				t.Errorf("%s: method = %s, want POST", req.URL, req.Method)
			}
			if got := req.Header.Get("Content-Type"); got != "application/json" {
				t.Errorf("%s: Content-Type = %q, want application/json", req.URL, got)
			}
			var got a2a.Task
			if err := json.Unmarshal(req.Body, &got); err != nil {
				t.Fatalf("%s: body is not a task: %v", req.URL, err)
			}
			if diff := cmp.Diff(task, &got); diff != "" {
				t.Errorf("%s: body mismatch (-want +got):\n%s", req.URL, diff)
			}
		}

		if got := reqs[0].Header.Get(a2a.NotificationTokenHeader); got != "token-a" {
			t.Errorf("token header = %q, want %q", got, "token-a")
		}
		if got := reqs[1].Header.Get(a2a.NotificationTokenHeader); got != "" {
			t.Errorf("token header = %q, want none", got)
		}
		if got := reqs[1].Header.Get("Authorization"); got != "Bearer credential-b" {
			t.Errorf("Authorization = %q, want %q", got, "Bearer credential-b")
		}
	})

	t.Run("failed deliveries are logged, not returned", func(t *testing.T) {
		t.Parallel()

		store := tasktest.NewStubPushNotificationConfigStore()
		_ = store.SetInfo(ctx, task.ID, tasktest.NewPushNotificationConfig("ok", "https://ok.example.com", ""))
		_ = store.SetInfo(ctx, task.ID, tasktest.NewPushNotificationConfig("status", "https://status.example.com", ""))
		_ = store.SetInfo(ctx, task.ID, tasktest.NewPushNotificationConfig("down", "https://down.example.com", ""))

		client := tasktest.NewFakeHTTPClient()
		client.RespondWith("https://status.example.com", http.StatusInternalServerError)
		client.FailWith("https://down.example.com", errors.New("connection refused"))

		logger, logs := newTestLogger()
		sender, err := NewHTTPPushNotificationSender(HTTPPushNotificationSenderConfig{
			Client:      client,
			ConfigStore: store,
			Logger:      logger,
		})
		if err != nil {
			t.Fatalf("NewHTTPPushNotificationSender() error = %v", err)
		}

		if err := sender.SendNotification(ctx, task); err != nil {
			t.Fatalf("SendNotification() error = %v", err)
		}
		if got := len(client.Requests()); got != 3 {
			t.Errorf("sent %d requests, want 3", got)
		}

		out := logs.String()
		for _, want := range []string{
			"connection refused",
			"status=500",
			"some push notifications failed to send",
			"failure_count=2",
		} {
			if !strings.Contains(out, want) {
				t.Errorf("logs do not contain %q:\n%s", want, out)
			}
		}
	})

	t.Run("config store error", func(t *testing.T) {
		t.Parallel()

		boom := errors.New("boom")
		store := tasktest.NewStubPushNotificationConfigStore()
		store.GetErr = boom

		sender, err := NewHTTPPushNotificationSender(HTTPPushNotificationSenderConfig{
			Client:      tasktest.NewFakeHTTPClient(),
			ConfigStore: store,
		})
		if err != nil {
			t.Fatalf("NewHTTPPushNotificationSender() error = %v", err)
		}
		if err := sender.SendNotification(ctx, task); !errors.Is(err, boom) {
			t.Errorf("SendNotification() error = %v, want %v", err, boom)
		}
	})

	t.Run("nil task", func(t *testing.T) {
		t.Parallel()

		sender, err := NewHTTPPushNotificationSender(HTTPPushNotificationSenderConfig{
			ConfigStore: tasktest.NewStubPushNotificationConfigStore(),
		})
		if err != nil {
			t.Fatalf("NewHTTPPushNotificationSender() error = %v", err)
		}
		if err := sender.SendNotification(ctx, nil); err == nil {
			t.Error("SendNotification(nil) should fail")
		}
	})
}

func TestHTTPPushNotificationSender_Signing(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	task := tasktest.NewTask("task-1", "ctx-1", a2a.TaskStateWorking)

	key, err := jwk.Import([]byte("0123456789abcdef0123456789abcdef"))
	if err != nil {
		t.Fatalf("jwk.Import() error = %v", err)
	}

	store := tasktest.NewStubPushNotificationConfigStore()
	_ = store.SetInfo(ctx, task.ID, tasktest.NewPushNotificationConfig("a", "https://a.example.com", "token-a"))

	client := tasktest.NewFakeHTTPClient()
	sender, err := NewHTTPPushNotificationSender(HTTPPushNotificationSenderConfig{
		Client:      client,
		ConfigStore: store,
		SigningKey:  key,
	})
	if err != nil {
		t.Fatalf("NewHTTPPushNotificationSender() error = %v", err)
	}

	if err := sender.SendNotification(ctx, task); err != nil {
		t.Fatalf("SendNotification() error = %v", err)
	}

	reqs := client.Requests()
	if len(reqs) != 1 {
		t.Fatalf("sent %d requests, want 1", len(reqs))
	}
	req := reqs[0]

	bearer, ok := strings.CutPrefix(req.Header.Get("Authorization"), "Bearer ")
	if !ok {
		t.Fatalf("Authorization = %q, want a bearer token", req.Header.Get("Authorization"))
	}
	tok, err := jwt.Parse([]byte(bearer), jwt.WithKey(jwa.HS256(), key))
	if err != nil {
		t.Fatalf("jwt.Parse() error = %v", err)
	}

	var digest string
	if err := tok.Get(RequestBodySHA256Claim, &digest); err != nil {
		t.Fatalf("token has no %s claim: %v", RequestBodySHA256Claim, err)
	}
	sum := sha256.Sum256(req.Body)
	if want := hex.EncodeToString(sum[:]); digest != want {
		t.Errorf("%s = %q, want %q", RequestBodySHA256Claim, digest, want)
	}
	if got := req.Header.Get(a2a.NotificationTokenHeader); got != "token-a" {
		t.Errorf("token header = %q, want %q", got, "token-a")
	}
}
