// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package task

import (
	"bytes"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-json-experiment/json"
	"github.com/lestrrat-go/jwx/v3/jwa"
	"github.com/lestrrat-go/jwx/v3/jwk"
	"github.com/lestrrat-go/jwx/v3/jwt"
)

// DefaultPushNotificationMaxAge is how old a notification token may be before
// [PushNotificationVerifier] rejects it.
const DefaultPushNotificationMaxAge = 5 * time.Minute

// maxNotificationBody caps the body read by [PushNotificationVerifier.VerifyRequest].
const maxNotificationBody = 10 << 20

// ErrInvalidPushNotification is returned when a push notification fails verification.
var ErrInvalidPushNotification = errors.New("invalid push notification")

// GenerateSigningKey creates an ES256 private key for signing push
// notifications, identified by kid.
func GenerateSigningKey(kid string) (jwk.Key, error) {
	priv, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("failed to generate key pair: %w", err)
	}

	key, err := jwk.Import(priv)
	if err != nil {
		return nil, fmt.Errorf("failed to import key pair: %w", err)
	}
	if err := key.Set(jwk.KeyIDKey, kid); err != nil {
		return nil, err
	}
	if err := key.Set(jwk.AlgorithmKey, jwa.ES256()); err != nil {
		return nil, err
	}
	return key, nil
}

// PublicKeySet returns the public halves of keys as a JWK set, suitable for
// publishing to webhook receivers.
func PublicKeySet(keys ...jwk.Key) (jwk.Set, error) {
	set := jwk.NewSet()
	for _, key := range keys {
		pub, err := jwk.PublicKeyOf(key)
		if err != nil {
			return nil, fmt.Errorf("failed to derive public key: %w", err)
		}
		if err := set.AddKey(pub); err != nil {
			return nil, err
		}
	}
	return set, nil
}

// JWKSHandler serves set as a JSON Web Key Set.
func JWKSHandler(set jwk.Set) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := json.MarshalWrite(w, set); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
}

type verificationKey struct {
	key jwk.Key
	alg jwa.SignatureAlgorithm
}

// PushNotificationVerifier checks notifications signed by [HTTPPushNotificationSender]
// on the receiving side.
//
// A notification is accepted when its bearer token verifies against one of the
// configured keys, was issued within the max age, and its
// [RequestBodySHA256Claim] matches the body.
type PushNotificationVerifier struct {
	keys   []verificationKey
	maxAge time.Duration
	logger *slog.Logger
}

// PushNotificationVerifierConfig holds configuration for PushNotificationVerifier.
type PushNotificationVerifierConfig struct {
	// Keys are the sender's verification keys. Public keys and symmetric keys
	// are both accepted.
	Keys []jwk.Key
	// Algorithm names the JWS algorithm. It defaults from each key type.
	Algorithm string
	MaxAge    time.Duration
	Logger    *slog.Logger
}

// NewPushNotificationVerifier creates a verifier for the given keys.
func NewPushNotificationVerifier(config PushNotificationVerifierConfig) (*PushNotificationVerifier, error) {
	if len(config.Keys) == 0 {
		return nil, errors.New("at least one verification key is required")
	}

	v := &PushNotificationVerifier{
		maxAge: config.MaxAge,
		logger: config.Logger,
	}
	if v.maxAge <= 0 {
		v.maxAge = DefaultPushNotificationMaxAge
	}
	if v.logger == nil {
		v.logger = slog.Default()
	}

	for _, key := range config.Keys {
		alg, err := signatureAlgorithm(key, config.Algorithm)
		if err != nil {
			return nil, err
		}
		v.keys = append(v.keys, verificationKey{key: key, alg: alg})
	}
	return v, nil
}

// Verify checks token against body.
func (v *PushNotificationVerifier) Verify(token string, body []byte) error {
	var (
		tok     jwt.Token
		lastErr error
	)
	for _, k := range v.keys {
		t, err := jwt.Parse([]byte(token), jwt.WithKey(k.alg, k.key))
		if err == nil {
			tok = t
			break
		}
		lastErr = err
	}
	if tok == nil {
		return fmt.Errorf("%w: %v", ErrInvalidPushNotification, lastErr)
	}

	iat, ok := tok.IssuedAt()
	if !ok {
		return fmt.Errorf("%w: token has no issued-at time", ErrInvalidPushNotification)
	}
	if age := time.Since(iat); age > v.maxAge {
		return fmt.Errorf("%w: token issued %s ago", ErrInvalidPushNotification, age.Truncate(time.Second))
	}

	var digest string
	if err := tok.Get(RequestBodySHA256Claim, &digest); err != nil {
		return fmt.Errorf("%w: missing %s claim", ErrInvalidPushNotification, RequestBodySHA256Claim)
	}
	sum := sha256.Sum256(body)
	if digest != hex.EncodeToString(sum[:]) {
		return fmt.Errorf("%w: body digest mismatch", ErrInvalidPushNotification)
	}
	return nil
}

// VerifyRequest reads and verifies the body of r, returning the body.
func (v *PushNotificationVerifier) VerifyRequest(r *http.Request) ([]byte, error) {
	token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	if !ok || token == "" {
		return nil, fmt.Errorf("%w: missing bearer token", ErrInvalidPushNotification)
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxNotificationBody))
	if err != nil {
		return nil, fmt.Errorf("failed to read notification body: %w", err)
	}
	if err := v.Verify(token, body); err != nil {
		return nil, err
	}
	return body, nil
}

// Middleware rejects unverified notifications with 401 Unauthorized before
// they reach next. Verified requests reach next with their body intact.
func (v *PushNotificationVerifier) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := v.VerifyRequest(r)
		if err != nil {
			v.logger.WarnContext(r.Context(), "rejected push notification",
				"remote_addr", r.RemoteAddr,
				"error", err)
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		r.Body = io.NopCloser(bytes.NewReader(body))
		next.ServeHTTP(w, r)
	})
}
