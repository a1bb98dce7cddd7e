// Package tokens declares the repository contract for persisted bearer
// tokens. Each user holds at most one token; the table enforces this with a
// primary key on user_id.
package tokens

import (
	"context"

	"github.com/lenshive/backend/internal/models"
)

// Repository defines operations for issuing, retrieving, and revoking tokens.
type Repository interface {
	// Get returns the token owned by userID, or common.ErrorNotFound.
	Get(ctx context.Context, userID string) (*models.AuthToken, error)

	// Create inserts a new token for userID. It returns
	// common.ErrorAlreadyExists when the user already owns a token, so a
	// caller racing another login can re-read the winning row.
	Create(ctx context.Context, userID string, token string) (*models.AuthToken, error)

	// Find looks up a token by its opaque string, or common.ErrorNotFound.
	Find(ctx context.Context, token string) (*models.AuthToken, error)

	// Delete removes the token owned by userID and reports whether one existed.
	Delete(ctx context.Context, userID string) (bool, error)
}
