// Package token mints the signed, time-bounded credentials the session
// provider verifies. The claim layout matches what a LiveKit-compatible
// deployment expects: issuer is the provider API key, subject is the stable
// user id, and the video grant carries the room reference and capability
// flags.
package token

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"roomgate/internal/access/models"
	"roomgate/internal/platform/config"
)

// VideoGrant is the room-scoped permission block embedded in the credential.
// Room is always the provider's room reference, never roomgate's internal id.
type VideoGrant struct {
	Room         string `json:"room"`
	RoomJoin     bool   `json:"roomJoin"`
	CanPublish   bool   `json:"canPublish"`
	CanSubscribe bool   `json:"canSubscribe"`
}

// Claims is the full credential payload.
type Claims struct {
	Name  string     `json:"name"`
	Video VideoGrant `json:"video"`
	jwt.RegisteredClaims
}

// Issuer signs credentials with the provider API secret (HS256).
type Issuer struct {
	apiKey string
	secret []byte
	ttl    time.Duration
	clock  func() time.Time
}

// Option configures the Issuer.
type Option func(*Issuer)

// WithClock sets the time source for testability.
func WithClock(clock func() time.Time) Option {
	return func(i *Issuer) {
		if clock != nil {
			i.clock = clock
		}
	}
}

// New constructs an Issuer from signing configuration. The secret has no
// safe default, so an empty one fails construction rather than producing
// forgeable tokens at request time.
func New(cfg config.SigningConfig, opts ...Option) (*Issuer, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("signing API key is required")
	}
	if cfg.APISecret == "" {
		return nil, fmt.Errorf("signing API secret is required")
	}
	ttl := cfg.TokenTTL
	if ttl <= 0 {
		ttl = 6 * time.Hour
	}

	issuer := &Issuer{
		apiKey: cfg.APIKey,
		secret: []byte(cfg.APISecret),
		ttl:    ttl,
		clock:  time.Now,
	}
	for _, opt := range opts {
		opt(issuer)
	}
	return issuer, nil
}

// Issue signs a credential for a fully resolved grant decision.
func (i *Issuer) Issue(_ context.Context, decision *models.GrantDecision) (string, error) {
	now := i.clock()
	claims := &Claims{
		Name: decision.Identity.DisplayName,
		Video: VideoGrant{
			Room:         decision.Room.ExternalRef,
			RoomJoin:     true,
			CanPublish:   decision.Capabilities.CanPublish,
			CanSubscribe: decision.Capabilities.CanSubscribe,
		},
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    i.apiKey,
			Subject:   decision.Identity.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("sign credential: %w", err)
	}
	return signed, nil
}
