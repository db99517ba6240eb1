// Package token implements the bearer token codec: signed, expiring HS256
// JWTs of two kinds (access and refresh).
package token

import (
	"errors"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/golang-jwt/jwt/v5"

	"github.com/swpark/prayernote/internal/errs"
	"github.com/swpark/prayernote/internal/model"
)

// Kind distinguishes access tokens from refresh tokens.
type Kind string

const (
	KindAccess  Kind = "access"
	KindRefresh Kind = "refresh"
)

// Claims is the self-contained claim set carried by every token.
type Claims struct {
	Type Kind `json:"type"`
	jwt.RegisteredClaims
}

// Codec issues and validates tokens with a process-wide signing key.
// It is pure over input + key + clock and holds no mutable state.
type Codec struct {
	key        []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

// New constructs a codec with the given signing key and per-kind TTLs.
func New(key []byte, accessTTL, refreshTTL time.Duration) *Codec {
	return &Codec{key: key, accessTTL: accessTTL, refreshTTL: refreshTTL, now: time.Now}
}

// WithClock overrides the codec clock; used by tests.
func (c *Codec) WithClock(now func() time.Time) *Codec {
	c.now = now
	return c
}

func (c *Codec) ttl(kind Kind) time.Duration {
	if kind == KindRefresh {
		return c.refreshTTL
	}
	return c.accessTTL
}

// Issue signs a token of the given kind for the subject and returns it
// together with its expiry.
func (c *Codec) Issue(subject uuid.UUID, kind Kind) (string, time.Time, error) {
	now := c.now().UTC()
	exp := now.Add(c.ttl(kind))
	claims := Claims{
		Type: kind,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.key)
	return signed, exp, err
}

// Pair issues an access+refresh token pair for the subject.
func (c *Codec) Pair(subject uuid.UUID) (model.Tokens, error) {
	access, exp, err := c.Issue(subject, KindAccess)
	if err != nil {
		return model.Tokens{}, err
	}
	refresh, _, err := c.Issue(subject, KindRefresh)
	if err != nil {
		return model.Tokens{}, err
	}
	return model.Tokens{AccessToken: access, RefreshToken: refresh, ExpiresAt: exp}, nil
}

// Decode verifies signature and expiry and returns the claim set. Failures
// map to errs.ErrTokenMalformed, errs.ErrTokenExpired or errs.ErrBadSignature;
// business rules (kind checks, subject parsing) are the caller's concern.
func (c *Codec) Decode(tokenString string) (*Claims, error) {
	var claims Claims
	parsed, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (any, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, errs.ErrBadSignature
		}
		return c.key, nil
	}, jwt.WithTimeFunc(func() time.Time { return c.now() }))
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, errs.ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, errs.ErrBadSignature
		default:
			return nil, errs.ErrTokenMalformed
		}
	}
	if !parsed.Valid {
		return nil, errs.ErrTokenMalformed
	}
	return &claims, nil
}
