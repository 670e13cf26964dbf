package repomanager

import (
	"context"
	"database/sql"

	"github.com/internova/internova/internal/dbx"
	"github.com/internova/internova/internal/server/repositories/applications"
	"github.com/internova/internova/internal/server/repositories/internships"
	"github.com/internova/internova/internal/server/repositories/messages"
	"github.com/internova/internova/internal/server/repositories/saved"
	"github.com/internova/internova/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Internships(db dbx.DBTX) internships.Repository
	Applications(db dbx.DBTX) applications.Repository
	Saved(db dbx.DBTX) saved.Repository
	Messages(db dbx.DBTX) messages.Repository
}
