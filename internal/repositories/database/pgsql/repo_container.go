package pgsql

import (
	portsrepo "github.com/SscSPs/banking_backoffice_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		UnitOfWork: newPgxUnitOfWorkFactory(dbPool),
		RecordRepo: newPgxRecordRepository(dbPool),
		UserRepo:   newPgxUserRepository(dbPool),
	}
}
