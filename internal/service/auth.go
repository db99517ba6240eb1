// Package service contains application services: authentication, prayers,
// progress entries and dashboard aggregation.
package service

import (
	"context"
	"errors"
	"strings"

	"github.com/gofrs/uuid/v5"

	pkgcrypto "github.com/swpark/prayernote/internal/crypto"
	"github.com/swpark/prayernote/internal/errs"
	"github.com/swpark/prayernote/internal/limiter"
	"github.com/swpark/prayernote/internal/model"
	"github.com/swpark/prayernote/internal/repository"
	"github.com/swpark/prayernote/internal/token"
)

// AuthService defines authentication and account operations.
type AuthService interface {
	// Register creates a new account and returns it with a fresh token pair.
	Register(ctx context.Context, email, password, name string) (model.User, model.Tokens, error)
	// Login authenticates with rate limiting by (email, ip).
	Login(ctx context.Context, email, password, ip string) (model.User, model.Tokens, error)
	// Refresh exchanges a refresh token for a new token pair.
	Refresh(ctx context.Context, refreshToken string) (model.Tokens, error)
	// Authenticate resolves an access token to the live account.
	Authenticate(ctx context.Context, accessToken string) (*model.User, error)
	// UpdateProfile changes the display name and/or password.
	UpdateProfile(ctx context.Context, userID uuid.UUID, name, password *string) (*model.User, error)
	// DeleteAccount removes the account; owned records cascade in the store.
	DeleteAccount(ctx context.Context, userID uuid.UUID) error
}

type AuthServiceImpl struct {
	users repository.UserRepository
	codec *token.Codec
	lim   limiter.Limiter
}

// NewAuthService constructs AuthService with required dependencies.
func NewAuthService(users repository.UserRepository, codec *token.Codec, lim limiter.Limiter) *AuthServiceImpl {
	return &AuthServiceImpl{users: users, codec: codec, lim: lim}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validateCredentials(email, password string) error {
	if email == "" || !strings.Contains(email, "@") {
		return errs.Validationf("email: invalid address")
	}
	if len(password) < 6 {
		return errs.Validationf("password: minimum 6 characters")
	}
	return nil
}

// Register creates a new account and issues its first token pair.
func (s *AuthServiceImpl) Register(ctx context.Context, email, password, name string) (model.User, model.Tokens, error) {
	email = normalizeEmail(email)
	if err := validateCredentials(email, password); err != nil {
		return model.User{}, model.Tokens{}, err
	}
	if strings.TrimSpace(name) == "" {
		return model.User{}, model.Tokens{}, errs.Validationf("name: required")
	}

	uid, err := uuid.NewV4()
	if err != nil {
		return model.User{}, model.Tokens{}, err
	}
	hash, err := pkgcrypto.HashPassword(password)
	if err != nil {
		return model.User{}, model.Tokens{}, err
	}

	u := &model.User{ID: uid, Email: email, PasswordHash: hash, Name: strings.TrimSpace(name)}
	if err := s.users.Create(ctx, u); err != nil {
		return model.User{}, model.Tokens{}, err
	}

	toks, err := s.codec.Pair(uid)
	if err != nil {
		return model.User{}, model.Tokens{}, err
	}
	return *u, toks, nil
}

// Login authenticates with rate limiting by (email, ip). Missing accounts and
// wrong passwords are indistinguishable to the caller.
func (s *AuthServiceImpl) Login(ctx context.Context, email, password, ip string) (model.User, model.Tokens, error) {
	email = normalizeEmail(email)
	ipHash := limiter.HashIP(ip)

	allowed, _, err := s.lim.Allow(ctx, email, ipHash)
	if err != nil {
		return model.User{}, model.Tokens{}, err
	}
	if !allowed {
		return model.User{}, model.Tokens{}, errs.ErrRateLimited
	}

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil || !pkgcrypto.VerifyPassword(password, u.PasswordHash) {
		if blocked, _, ferr := s.lim.Failure(ctx, email, ipHash); ferr == nil && blocked {
			return model.User{}, model.Tokens{}, errs.ErrRateLimited
		}
		// lookup errors masked the same as a wrong password
		return model.User{}, model.Tokens{}, errs.ErrUnauthorized
	}

	_ = s.lim.Success(ctx, email, ipHash)

	toks, err := s.codec.Pair(u.ID)
	if err != nil {
		return model.User{}, model.Tokens{}, err
	}
	return *u, toks, nil
}

// Refresh validates a refresh token and issues a new pair. A deleted account
// invalidates outstanding refresh tokens.
func (s *AuthServiceImpl) Refresh(ctx context.Context, refreshToken string) (model.Tokens, error) {
	u, err := s.resolve(ctx, refreshToken, token.KindRefresh)
	if err != nil {
		return model.Tokens{}, err
	}
	return s.codec.Pair(u.ID)
}

// Authenticate resolves an access token to the live account. Called once per
// authenticated request; performs exactly one store lookup.
func (s *AuthServiceImpl) Authenticate(ctx context.Context, accessToken string) (*model.User, error) {
	return s.resolve(ctx, accessToken, token.KindAccess)
}

// resolve is the identity resolution pipeline, short-circuiting on the first
// failure: decode, kind check, subject parse, store lookup.
func (s *AuthServiceImpl) resolve(ctx context.Context, tokenString string, want token.Kind) (*model.User, error) {
	claims, err := s.codec.Decode(tokenString)
	if err != nil {
		return nil, errs.ErrInvalidToken
	}
	if claims.Type != want {
		return nil, errs.ErrWrongTokenType
	}
	uid, err := uuid.FromString(claims.Subject)
	if err != nil {
		return nil, errs.ErrMalformedSubject
	}
	u, err := s.users.GetByID(ctx, uid)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return nil, errs.ErrPrincipalNotFound
		}
		return nil, err
	}
	return u, nil
}

// UpdateProfile changes the display name and/or password. Both fields are
// validated before anything is written, and the store applies them in one
// statement; a rejected call leaves the prior state intact.
func (s *AuthServiceImpl) UpdateProfile(ctx context.Context, userID uuid.UUID, name, password *string) (*model.User, error) {
	if name == nil && password == nil {
		return nil, errs.Validationf("nothing to update")
	}
	var trimmed *string
	if name != nil {
		t := strings.TrimSpace(*name)
		if t == "" {
			return nil, errs.Validationf("name: required")
		}
		trimmed = &t
	}
	var hash []byte
	if password != nil {
		if len(*password) < 6 {
			return nil, errs.Validationf("password: minimum 6 characters")
		}
		h, err := pkgcrypto.HashPassword(*password)
		if err != nil {
			return nil, err
		}
		hash = h
	}
	return s.users.UpdateProfile(ctx, userID, trimmed, hash)
}

// DeleteAccount removes the account and, through store cascades, everything it owns.
func (s *AuthServiceImpl) DeleteAccount(ctx context.Context, userID uuid.UUID) error {
	return s.users.Delete(ctx, userID)
}
