// Package repository defines storage interfaces implemented by concrete backends.
package repository

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/swpark/prayernote/internal/model"
)

// UserRepository provides account storage.
type UserRepository interface {
	// Create inserts a new user; duplicate email yields errs.ErrAlreadyExists.
	Create(ctx context.Context, u *model.User) error
	// GetByID loads a user by ID.
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	// GetByEmail loads a user by (lowercased) email.
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	// UpdateProfile changes the display name and/or password hash in one
	// statement; nil fields keep current values.
	UpdateProfile(ctx context.Context, id uuid.UUID, name *string, hash []byte) (*model.User, error)
	// Delete removes the account; owned prayers and progress cascade in the store.
	Delete(ctx context.Context, id uuid.UUID) error
}
