// Package repomanager bundles repository constructors behind one interface so
// services can obtain repositories bound to either a plain connection or a
// transaction handle.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/lenshive/backend/internal/dbx"
	"github.com/lenshive/backend/internal/repositories/tokens"
	"github.com/lenshive/backend/internal/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Tokens(db dbx.DBTX) tokens.Repository
}
