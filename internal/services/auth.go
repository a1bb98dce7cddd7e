// Package services contains the application services sitting between the
// HTTP layer and the repositories.
package services

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/lenshive/backend/internal/common"
	"github.com/lenshive/backend/internal/config"
	"github.com/lenshive/backend/internal/cryptox"
	"github.com/lenshive/backend/internal/dbx"
	"github.com/lenshive/backend/internal/models"
	"github.com/lenshive/backend/internal/repositories/repomanager"
)

// tokenKeyBytes is the number of random bytes per token; encoded as hex the
// resulting key is 40 characters.
const tokenKeyBytes = 20

type AuthService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	bcryptCost  int
}

func NewAuthService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *AuthService {
	return &AuthService{
		db:          db,
		repomanager: m,
		bcryptCost:  cfg.BcryptCost,
	}
}

// NormalizeEmail lowercases and trims an email address; stored and compared
// emails are always in this form.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a user and their first token in one transaction.
// The returned token is the one subsequent requests must present.
func (s *AuthService) Register(ctx context.Context, email, fullName, password string) (*models.User, string, error) {

	email = NormalizeEmail(email)
	if email == "" || strings.TrimSpace(fullName) == "" {
		return nil, "", common.ErrorValidation
	}

	hash, err := cryptox.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, "", common.ErrorInternal
	}

	user := &models.User{
		Email:        email,
		FullName:     strings.TrimSpace(fullName),
		PasswordHash: hash,
	}

	var token string

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		created, err := s.repomanager.Users(tx).Create(ctx, user)
		if err != nil {
			return err
		}
		user = created

		key, err := common.MakeRandHexString(tokenKeyBytes)
		if err != nil {
			return err
		}

		// A brand-new user cannot hold a token yet, so a plain insert is safe.
		t, err := s.repomanager.Tokens(tx).Create(ctx, user.ID, key)
		if err != nil {
			return err
		}
		token = t.Token

		return nil
	})

	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, "", common.ErrorAlreadyExists
		}
		return nil, "", common.ErrorInternal
	}

	return user, token, nil
}

// Login verifies credentials and returns the user along with their token,
// reusing an existing token when one is live. Unknown emails and wrong
// passwords are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, string, error) {

	user, err := s.repomanager.Users(s.db).GetByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, "", common.ErrorInvalidCredentials
		}
		return nil, "", common.ErrorInternal
	}

	if !cryptox.VerifyPassword(user.PasswordHash, password) {
		return nil, "", common.ErrorInvalidCredentials
	}

	if !user.IsActive {
		return nil, "", common.ErrorUserDisabled
	}

	token, _, err := s.GetOrCreateToken(ctx, user.ID)
	if err != nil {
		return nil, "", common.ErrorInternal
	}

	return user, token, nil
}

// GetOrCreateToken returns the user's live token, generating and persisting
// a fresh one when none exists. Two logins racing for the same user resolve
// to a single winning token: the insert hits the user_id primary key and the
// loser re-reads the winner's row.
func (s *AuthService) GetOrCreateToken(ctx context.Context, userID string) (string, bool, error) {

	repo := s.repomanager.Tokens(s.db)

	var token string
	var created bool

	backoff := retry.WithMaxRetries(3, retry.NewConstant(5*time.Millisecond))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		existing, err := repo.Get(ctx, userID)
		if err == nil {
			token, created = existing.Token, false
			return nil
		}
		if !errors.Is(err, common.ErrorNotFound) {
			return err
		}

		key, err := common.MakeRandHexString(tokenKeyBytes)
		if err != nil {
			return err
		}

		fresh, err := repo.Create(ctx, userID, key)
		if err == nil {
			token, created = fresh.Token, true
			return nil
		}
		if errors.Is(err, common.ErrorAlreadyExists) {
			// Lost the race; the next attempt reads the winner's token.
			return retry.RetryableError(err)
		}
		return err
	})

	if err != nil {
		return "", false, err
	}

	return token, created, nil
}

// ResolveToken authenticates an opaque bearer token. It returns
// common.ErrorUnauthorized for unknown tokens and common.ErrorUserDisabled
// when the owning account is inactive.
func (s *AuthService) ResolveToken(ctx context.Context, token string) (*models.User, error) {

	t, err := s.repomanager.Tokens(s.db).Find(ctx, token)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, common.ErrorInternal
	}

	user, err := s.repomanager.Users(s.db).GetByID(ctx, t.UserID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, common.ErrorInternal
	}

	if !user.IsActive {
		return nil, common.ErrorUserDisabled
	}

	return user, nil
}

// Logout revokes the user's token. It returns common.ErrorNotFound when the
// user held no token to delete.
func (s *AuthService) Logout(ctx context.Context, userID string) error {

	existed, err := s.repomanager.Tokens(s.db).Delete(ctx, userID)
	if err != nil {
		return common.ErrorInternal
	}
	if !existed {
		return common.ErrorNotFound
	}

	return nil
}

// EmailRegistered reports whether the email (case-insensitive) already has an
// account. It backs the register validator's fast-fail check; the unique
// index remains the final authority at insert time.
func (s *AuthService) EmailRegistered(ctx context.Context, email string) (bool, error) {

	_, err := s.repomanager.Users(s.db).GetByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return false, nil
		}
		return false, common.ErrorInternal
	}

	return true, nil
}
