// Package users declares the repository contract for persisted user records.
package users

import (
	"context"

	"github.com/lenshive/backend/internal/models"
)

// Repository defines operations for creating and looking up users.
type Repository interface {
	// Create persists a new user. The email must already be normalized to
	// lowercase. Implementations return common.ErrorAlreadyExists when the
	// email is taken; the unique index is the authority, not a prior check.
	Create(ctx context.Context, user *models.User) (*models.User, error)

	// GetByEmail returns the user with the given (lowercase) email, or
	// common.ErrorNotFound.
	GetByEmail(ctx context.Context, email string) (*models.User, error)

	// GetByID returns the user with the given id, or common.ErrorNotFound.
	GetByID(ctx context.Context, id string) (*models.User, error)
}
