// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package task

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-json-experiment/json"
	"github.com/lestrrat-go/jwx/v3/jwa"
	"github.com/lestrrat-go/jwx/v3/jwk"
	"github.com/lestrrat-go/jwx/v3/jwt"
	"go.opentelemetry.io/otel/metric"

	a2a "github.com/go-a2a/a2a-task"
	"github.com/go-a2a/a2a-task/internal/pool"
	"github.com/go-a2a/a2a-task/internal/telemetry"
)

// DefaultPushNotificationTimeout bounds a single webhook delivery.
const DefaultPushNotificationTimeout = 30 * time.Second

// RequestBodySHA256Claim is the JWT claim carrying the hex SHA-256 digest of the
// notification body.
const RequestBodySHA256Claim = "request_body_sha256"

// PushNotificationSender sends task push notifications.
type PushNotificationSender interface {
	// SendNotification notifies every endpoint registered for task.
	SendNotification(ctx context.Context, task *a2a.Task) error
}

// HTTPClient is the subset of [*http.Client] used by [HTTPPushNotificationSender].
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// HTTPPushNotificationSender posts the task JSON to every push notification
// config registered for the task.
//
// Deliveries run concurrently. A failed delivery is logged and never retried,
// and does not fail the call.
type HTTPPushNotificationSender struct {
	client      HTTPClient
	timeout     time.Duration
	configStore PushNotificationConfigStore
	logger      *slog.Logger
	metrics     *telemetry.PushMetrics

	signingKey jwk.Key
	signingAlg jwa.SignatureAlgorithm
}

var _ PushNotificationSender = (*HTTPPushNotificationSender)(nil)

// HTTPPushNotificationSenderConfig holds configuration for HTTPPushNotificationSender.
type HTTPPushNotificationSenderConfig struct {
	Client      HTTPClient
	Timeout     time.Duration
	ConfigStore PushNotificationConfigStore
	Logger      *slog.Logger
	// Meter receives delivery metrics. It defaults to the global meter provider.
	Meter metric.Meter

	// SigningKey, if set, signs every notification with a JWT sent as a bearer token.
	SigningKey jwk.Key
	// SigningAlgorithm names the JWS algorithm. It defaults from the key type.
	SigningAlgorithm string
}

// NewHTTPPushNotificationSender creates a new HTTP-based push notification sender.
func NewHTTPPushNotificationSender(config HTTPPushNotificationSenderConfig) (*HTTPPushNotificationSender, error) {
	if config.ConfigStore == nil {
		return nil, errors.New("push notification config store cannot be nil")
	}

	timeout := config.Timeout
	if timeout <= 0 {
		timeout = DefaultPushNotificationTimeout
	}

	client := config.Client
	if client == nil {
		client = &http.Client{Timeout: timeout}
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	s := &HTTPPushNotificationSender{
		client:      client,
		timeout:     timeout,
		configStore: config.ConfigStore,
		logger:      logger,
		metrics:     telemetry.NewPushMetrics(config.Meter),
		signingKey:  config.SigningKey,
	}

	if config.SigningKey != nil {
		alg, err := signatureAlgorithm(config.SigningKey, config.SigningAlgorithm)
		if err != nil {
			return nil, err
		}
		s.signingAlg = alg
	}

	return s, nil
}

func signatureAlgorithm(key jwk.Key, name string) (jwa.SignatureAlgorithm, error) {
	if name == "" {
		switch key.KeyType().String() {
		case "oct":
			name = "HS256"
		case "RSA":
			name = "RS256"
		case "EC":
			name = "ES256"
		case "OKP":
			name = "EdDSA"
		default:
			return jwa.SignatureAlgorithm{}, fmt.Errorf("unsupported signing key type %q", key.KeyType())
		}
	}

	alg, ok := jwa.LookupSignatureAlgorithm(name)
	if !ok {
		return jwa.SignatureAlgorithm{}, fmt.Errorf("unknown signing algorithm %q", name)
	}
	return alg, nil
}

// SendNotification posts task to every config registered for it.
//
// Only a failure to load the configs or encode the task is returned.
func (s *HTTPPushNotificationSender) SendNotification(ctx context.Context, task *a2a.Task) error {
	if task == nil {
		return errors.New("task cannot be nil")
	}

	configs, err := s.configStore.GetInfo(ctx, task.ID)
	if err != nil {
		return fmt.Errorf("failed to fetch push notification configs: %w", err)
	}
	if len(configs) == 0 {
		s.logger.DebugContext(ctx, "no push notification configs", "task_id", task.ID)
		return nil
	}

	buf := pool.Bytes.Get()
	defer pool.Bytes.Put(buf)
	if err := json.MarshalWrite(buf, task); err != nil {
		return fmt.Errorf("failed to marshal task: %w", err)
	}
	body := bytes.Clone(buf.Bytes())

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		failures int
	)
	for _, config := range configs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			start := time.Now()
			ok := s.dispatch(ctx, task.ID, body, config)
			s.metrics.RecordDelivery(ctx, start, ok)
			if !ok {
				mu.Lock()
				failures++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if failures > 0 {
		s.logger.WarnContext(ctx, "some push notifications failed to send",
			"task_id", task.ID,
			"success_count", len(configs)-failures,
			"failure_count", failures)
	}
	return nil
}

// dispatch delivers body to one endpoint and reports whether it succeeded.
func (s *HTTPPushNotificationSender) dispatch(ctx context.Context, taskID string, body []byte, config *a2a.PushNotificationConfig) bool {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, config.URL, bytes.NewReader(body))
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to create push notification request",
			"task_id", taskID,
			"url", config.URL,
			"error", err)
		return false
	}
	req.Header.Set("Content-Type", "application/json")
	if config.Token != "" {
		req.Header.Set(a2a.NotificationTokenHeader, config.Token)
	}
	setAuthentication(req, config.Authentication)

	if s.signingKey != nil {
		token, err := s.sign(body)
		if err != nil {
			s.logger.ErrorContext(ctx, "failed to sign push notification",
				"task_id", taskID,
				"url", config.URL,
				"error", err)
			return false
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		s.logger.ErrorContext(ctx, "error sending push notification",
			"task_id", taskID,
			"url", config.URL,
			"error", err)
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		s.logger.ErrorContext(ctx, "error sending push notification",
			"task_id", taskID,
			"url", config.URL,
			"status", resp.StatusCode,
			"error", strings.TrimSpace(string(msg)))
		return false
	}

	s.logger.InfoContext(ctx, "push notification sent", "task_id", taskID, "url", config.URL)
	return true
}

// sign returns a compact JWT binding the notification body.
func (s *HTTPPushNotificationSender) sign(body []byte) (string, error) {
	sum := sha256.Sum256(body)
	tok, err := jwt.NewBuilder().
		IssuedAt(time.Now()).
		Claim(RequestBodySHA256Claim, hex.EncodeToString(sum[:])).
		Build()
	if err != nil {
		return "", err
	}

	signed, err := jwt.Sign(tok, jwt.WithKey(s.signingAlg, s.signingKey))
	if err != nil {
		return "", err
	}
	return string(signed), nil
}

// setAuthentication sets the Authorization header from the credentials of a
// config. Schemes other than Basic and Bearer are ignored.
func setAuthentication(req *http.Request, auth *a2a.PushNotificationAuthenticationInfo) {
	if auth == nil || auth.Credentials == "" {
		return
	}
	for _, scheme := range auth.Schemes {
		switch strings.ToLower(scheme) {
		case "basic":
			req.Header.Set("Authorization", "Basic "+auth.Credentials)
			return
		case "bearer":
			req.Header.Set("Authorization", "Bearer "+auth.Credentials)
			return
		}
	}
}
